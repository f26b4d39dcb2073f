// Package benchmark compares pairing strategies and aggregators over many
// independent simulated tournaments.
//
// A [Config] names the tournament shape (items, budget, rematch, noise), the
// strategies and aggregators to compare, and how many trials to run. For
// every strategy and trial the [Runner] builds a fresh ledger, true ranking
// and random stream, runs the vote loop to exhaustion, ranks the result
// with every configured aggregator and scores each ranking against the truth
// with top-k overlap, Kendall tau and weighted rank distance.
//
// Trials share nothing and run in parallel on a bounded errgroup. Every
// trial's randomness is derived from the base seed, the trial number and the
// strategy name, so a report is reproducible regardless of worker count or
// scheduling. Trial t sees the same true ranking under every strategy.
//
// Finished reports are cached under a hash of the normalised configuration.
package benchmark
