// Package pkg provides the libraries behind tourney, a simulator for
// pairwise-comparison tournaments.
//
// # Overview
//
// A tournament ranks N items from a fixed budget of noisy votes. Each vote
// compares two items; which two is decided by a pairing strategy, and the
// outcome follows a hidden true ranking with probability p. Once the budget
// is spent a rank aggregator turns the recorded wins into a ranking, and the
// evaluation metrics measure how far it is from the truth.
//
//   - [ledger] - win matrix and weighted win graph of one tournament
//   - [pairing] - strategies choosing the next pair: random, random
//     Hamiltonian cycles, component stitching, reachability minimising and
//     Crowd-BT active learning
//   - [crowdbt] - Bayesian skill and annotator reliability updates
//   - [vote] - the noisy oracle and the budgeted vote loop
//   - [aggregate] - Bradley-Terry, Schulze, PageRank and Crowd-BT rankings
//   - [metrics] - top-k overlap, Kendall tau and weighted rank distance
//   - [benchmark] - many independent tournaments in parallel, summarised
//
// Supporting packages: [perm] (random cycles, permutation helpers),
// [connectivity] (strongly connected components, node connectivity),
// [cache] (report cache), [observability] (Prometheus and OpenTelemetry
// hooks), [errors] (coded errors) and [buildinfo].
//
// # Conventions
//
// Items are the integers 0..N-1. Rankings are permutations of the items
// listed worst first, so the best item is last.
//
// # Data Flow
//
//	perm/connectivity ──► pairing ──► vote ──► ledger
//	                                             │
//	                       metrics ◄── aggregate ◄┘
//
// # Quick Start
//
//	rng := rand.New(rand.NewPCG(42, 42^0xdeadbeef))
//	l, _ := ledger.New(20)
//	s, _ := pairing.New(pairing.KindRandomCycles, l, rng, pairing.Options{})
//	truth := vote.RandomRanking(20, rng)
//	oracle, _ := vote.NewOracle(truth, 0.9, rng)
//	sim, _ := vote.NewSimulator(l, s, oracle, vote.Config{Budget: 200, Rematch: 1})
//	_ = sim.Run(ctx)
//
//	ranking, _ := aggregate.Schulze{}.Rank(l)
//	tau, _ := metrics.KendallTau(truth, ranking)
//
// # Testing
//
//	go test ./pkg/...            # All tests
//	go test ./pkg/aggregate/...  # Specific package
//	go test -run Example ./...   # Examples only
package pkg
