// Package vote simulates a budgeted tournament of noisy pairwise votes.
//
// A hidden true ranking (worst first) decides every comparison. The [Oracle]
// reports the truly better item as winner with probability p and the other
// one otherwise. A [Simulator] pulls pairs from a [pairing.Strategy], asks the
// oracle up to Rematch times per pair, and records each answer in the
// [ledger.Ledger] until the vote budget is spent.
//
// The simulator is a two state machine:
//
//	Running --budget reaches 0--> Exhausted
//
// The budget is exact: if it runs out in the middle of a rematch round the
// round is cut short, so the ledger always holds exactly Budget votes.
package vote
