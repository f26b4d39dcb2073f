// Package aggregate turns accumulated comparison evidence into a ranking.
//
// Every [Aggregator] returns a permutation of the item indices ordered worst
// first, best last. Four variants are provided:
//
//   - [BradleyTerry]: a fixed number of minorise-maximise fixed-point sweeps
//     of the Bradley-Terry likelihood over the win matrix.
//   - [Schulze]: the Schulze beat-path method. Handles Condorcet cycles.
//   - [PageRank]: stationary distribution of a damped random walk in which
//     every loss hands weight to the winner.
//   - [CrowdBT]: reads the posterior skill means of an online Crowd-BT
//     model instead of the ledger.
//
// [New] builds a variant from its [Kind] name.
package aggregate
