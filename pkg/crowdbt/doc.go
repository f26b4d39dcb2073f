// Package crowdbt implements Crowd-BT, a Bayesian online ranking model for
// noisy pairwise comparisons (Chen et al., "Pairwise Ranking Aggregation in a
// Crowdsourced Setting", WSDM 2013).
//
// Every item carries a Gaussian belief over its latent skill ([Skill]: mean
// Mu and variance SigmaSq). Every annotator carries a Beta belief over the
// probability that it answers truthfully ([Reliability]: Alpha and Beta).
// Each vote updates one annotator and the two compared items immediately;
// there is no batch fitting step.
//
// # Update
//
// [Update] applies one vote. The annotator is moment matched against the
// posterior over its reliability, then both skill means move by a correction
// scaled by their variances, then both variances shrink multiplicatively with
// a floor of [Kappa] so they stay strictly positive.
//
// # Active Selection
//
// [ExpectedInformationGain] scores a candidate comparison by the expected
// divergence between pre- and post-vote beliefs, averaged over both possible
// outcomes. [Model.Next] uses it with an epsilon-greedy policy to choose the
// next pair for a randomly selected annotator.
package crowdbt
