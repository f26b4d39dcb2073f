// Package pairing decides which two items to compare next.
//
// Every variant implements [Strategy]. Strategies read the tournament's win
// graph from a [ledger.Ledger] but never write to it; the vote simulator owns
// the ledger.
//
// # Variants
//
//   - [Random]: an independent uniform pair on every call.
//   - [RandomCycles]: the edges of a uniformly random Hamiltonian cycle, one
//     cycle per sweep of N calls, so every item is compared twice per sweep.
//   - [Stitch] in biggest or recomputed mode: walks a Hamiltonian cycle that
//     keeps jumping between strongly connected components, always preferring
//     the largest component that still has unvisited items.
//   - [Zip]: interleaves the shuffled components into one cycle.
//   - [Reachability]: builds each cycle by stepping to the unvisited item that
//     is least connected to the current one.
//   - [CrowdBT]: Crowd-BT active selection. It observes every vote.
//
// Use [New] to build a variant from its [Kind] name.
//
// All strategies draw randomness from the *rand.Rand passed at construction
// and are deterministic for a given seed.
package pairing
