// Package perm provides permutation and Hamiltonian-cycle helpers used by the
// pairing strategies.
//
// # Random Cycles
//
// A Hamiltonian cycle over N items is any cyclic order in which each item
// appears once. Rotations of the same order describe the same cycle, so there
// are (N-1)! distinct cyclic sequences, not N!. [RandomCycle] samples one of
// them uniformly with a variant of the Durstenfeld shuffle that pins item 0
// to the first position and shuffles the remaining N-1 positions.
//
// [CycleEdges] turns a cycle into its N undirected edges, each normalised so
// the smaller item comes first. Comparing the closing edge
// (last, first) together with the consecutive pairs touches every item
// exactly twice.
//
// # Permutations
//
// [Seq], [Factorial] and [Generate] enumerate permutations with Heap's
// algorithm. They are mostly used to enumerate the full cycle space in tests.
package perm
