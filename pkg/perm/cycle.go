package perm

import "math/rand/v2"

// Edge is an undirected pair of items with Edge[0] <= Edge[1] once normalised.
type Edge [2]int

// Sorted returns e with its endpoints in ascending order.
func (e Edge) Sorted() Edge {
	if e[0] > e[1] {
		return Edge{e[1], e[0]}
	}
	return e
}

// RandomCycle returns a uniformly random cyclic order of [0, size).
//
// The result always starts with 0; positions 1..size-1 are shuffled by
// swapping index i with a uniform k in [1, i]. Every one of the (size-1)!
// sequences is equally likely. Sizes 0 and 1 have no cycle and return nil.
func RandomCycle(size int, rng *rand.Rand) []int {
	if size <= 1 {
		return nil
	}
	items := Seq(size)
	for i := size - 1; i > 1; i-- {
		k := 1 + rng.IntN(i)
		items[k], items[i] = items[i], items[k]
	}
	return items
}

// CycleEdges returns the len(cycle) edges of a cycle: every consecutive pair
// followed by the closing pair (last, first), each sorted ascending.
func CycleEdges(cycle []int) []Edge {
	if len(cycle) < 2 {
		return nil
	}
	edges := make([]Edge, 0, len(cycle))
	for i := 1; i < len(cycle); i++ {
		edges = append(edges, Edge{cycle[i-1], cycle[i]}.Sorted())
	}
	return append(edges, Edge{cycle[len(cycle)-1], cycle[0]}.Sorted())
}
