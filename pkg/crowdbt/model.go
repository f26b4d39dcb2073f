package crowdbt

import (
	"math"

	"gonum.org/v1/gonum/mathext"
)

// Model constants, as chosen by the experiments in the Crowd-BT paper.
const (
	Gamma        = 0.1    // weight of annotator information in the gain
	Kappa        = 0.0001 // floor on the variance shrink factor
	MuPrior      = 0.0
	SigmaSqPrior = 1.0
	AlphaPrior   = 10.0
	BetaPrior    = 1.0
	Epsilon      = 0.25 // exploration rate of the selection policy
)

// minVariance bounds the moment-matching denominator away from zero.
const minVariance = 1e-12

// Skill is the Gaussian belief over one item's latent score.
type Skill struct {
	Mu      float64
	SigmaSq float64
}

// PriorSkill returns the belief an item starts with.
func PriorSkill() Skill { return Skill{Mu: MuPrior, SigmaSq: SigmaSqPrior} }

// Reliability is the Beta belief over the probability that an annotator
// reports the true order.
type Reliability struct {
	Alpha float64
	Beta  float64
}

// PriorReliability returns the belief an annotator starts with.
func PriorReliability() Reliability { return Reliability{Alpha: AlphaPrior, Beta: BetaPrior} }

func sigmoid(x float64) float64 { return 1 / (1 + math.Exp(-x)) }

// UpdateReliability moment matches the annotator's belief after it reported
// that winner beat loser. It also returns c, the model probability that the
// winner really ranks above the loser.
//
// When the matched moments are degenerate the previous belief is returned.
func UpdateReliability(r Reliability, winner, loser Skill) (Reliability, float64) {
	alpha, beta := r.Alpha, r.Beta
	s := sigmoid(winner.Mu - loser.Mu)
	c1 := s + 0.5*(winner.SigmaSq+loser.SigmaSq)*s*(1-s)*(1-2*s)
	c2 := 1 - c1
	c := (c1*alpha + c2*beta) / (alpha + beta)

	eta := (c1*(alpha+1)*alpha + c2*alpha*beta) /
		(c * (alpha + beta + 1) * (alpha + beta))
	etaSq := (c1*(alpha+2)*(alpha+1)*alpha + c2*(alpha+1)*alpha*beta) /
		(c * (alpha + beta + 2) * (alpha + beta + 1) * (alpha + beta))

	variance := etaSq - eta*eta
	if !(variance > minVariance) {
		return r, c
	}
	next := Reliability{
		Alpha: (eta - etaSq) * eta / variance,
		Beta:  (eta - etaSq) * (1 - eta) / variance,
	}
	if !positiveFinite(next.Alpha) || !positiveFinite(next.Beta) {
		return r, c
	}
	return next, c
}

func positiveFinite(x float64) bool {
	return x > 0 && !math.IsInf(x, 0) && !math.IsNaN(x)
}

// UpdateMus returns the new means of winner and loser.
func UpdateMus(r Reliability, winner, loser Skill) (float64, float64) {
	d := winner.Mu - loser.Mu
	mult := sigmoid(d+math.Log(r.Alpha/r.Beta)) - sigmoid(d)
	return winner.Mu + winner.SigmaSq*mult, loser.Mu - loser.SigmaSq*mult
}

// UpdateSigmaSqs returns the new variances of winner and loser.
// Each shrinks by at most a factor of Kappa.
func UpdateSigmaSqs(r Reliability, winner, loser Skill) (float64, float64) {
	d := winner.Mu - loser.Mu
	sr := sigmoid(d + math.Log(r.Alpha/r.Beta))
	s := sigmoid(d)
	mult := sr*(1-sr) - s*(1-s)
	return winner.SigmaSq * math.Max(1+winner.SigmaSq*mult, Kappa),
		loser.SigmaSq * math.Max(1+loser.SigmaSq*mult, Kappa)
}

// Update applies one vote and returns the new annotator, winner and loser
// beliefs. All three are computed from the beliefs before the vote.
func Update(r Reliability, winner, loser Skill) (Reliability, Skill, Skill) {
	nr, _ := UpdateReliability(r, winner, loser)
	muW, muL := UpdateMus(r, winner, loser)
	sigW, sigL := UpdateSigmaSqs(r, winner, loser)
	return nr, Skill{Mu: muW, SigmaSq: sigW}, Skill{Mu: muL, SigmaSq: sigL}
}

// DivergenceGaussian is the KL divergence of belief p from belief q.
func DivergenceGaussian(p, q Skill) float64 {
	ratio := p.SigmaSq / q.SigmaSq
	return (p.Mu-q.Mu)*(p.Mu-q.Mu)/(2*q.SigmaSq) + (ratio-1-math.Log(ratio))/2
}

// DivergenceBeta is the KL divergence of Beta belief p from Beta belief q.
func DivergenceBeta(p, q Reliability) float64 {
	return mathext.Lbeta(q.Alpha, q.Beta) - mathext.Lbeta(p.Alpha, p.Beta) +
		(p.Alpha-q.Alpha)*mathext.Digamma(p.Alpha) +
		(p.Beta-q.Beta)*mathext.Digamma(p.Beta) +
		(q.Alpha-p.Alpha+q.Beta-p.Beta)*mathext.Digamma(p.Alpha+p.Beta)
}

// ExpectedInformationGain is the expected divergence between the beliefs
// after and before comparing a with b, weighted by the probability of each
// outcome.
func ExpectedInformationGain(r Reliability, a, b Skill) float64 {
	r1, c := UpdateReliability(r, a, b)
	_, a1, b1 := Update(r, a, b)

	r2, _ := UpdateReliability(r, b, a)
	_, b2, a2 := Update(r, b, a)

	aWins := DivergenceGaussian(a1, a) + DivergenceGaussian(b1, b) + Gamma*DivergenceBeta(r1, r)
	bWins := DivergenceGaussian(a2, a) + DivergenceGaussian(b2, b) + Gamma*DivergenceBeta(r2, r)
	return c*aWins + (1-c)*bWins
}
