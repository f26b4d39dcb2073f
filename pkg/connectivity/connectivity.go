// Package connectivity answers reachability questions about a tournament's
// win graph: its strongly connected components and an approximate count of
// vertex-disjoint paths between two items.
//
// Gonum graphs iterate nodes in map order; every function here sorts node IDs
// before using them so results depend only on graph contents.
package connectivity

import (
	"cmp"
	"slices"

	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/topo"
)

// Components partitions g into strongly connected components.
//
// Members of each component are sorted ascending. Components are ordered by
// decreasing size, then by smallest member.
func Components(g graph.Directed) [][]int {
	sccs := topo.TarjanSCC(g)
	out := make([][]int, 0, len(sccs))
	for _, scc := range sccs {
		ids := make([]int, len(scc))
		for i, n := range scc {
			ids[i] = int(n.ID())
		}
		slices.Sort(ids)
		out = append(out, ids)
	}
	slices.SortFunc(out, func(a, b []int) int {
		if c := cmp.Compare(len(b), len(a)); c != 0 {
			return c
		}
		return cmp.Compare(a[0], b[0])
	})
	return out
}

// Membership maps each node to the index of its component in comps.
func Membership(comps [][]int, n int) []int {
	member := make([]int, n)
	for ci, comp := range comps {
		for _, v := range comp {
			member[v] = ci
		}
	}
	return member
}

// LocalNodeConnectivity approximates the number of internally vertex-disjoint
// directed paths from s to t.
//
// Shortest paths are found greedily by BFS. After each path its inner nodes
// are excluded and, if it was the direct edge s→t, that edge is not reused.
// The count never exceeds min(outdeg(s), indeg(t)). s == t reports zero.
func LocalNodeConnectivity(g graph.Directed, s, t int) int {
	if s == t {
		return 0
	}
	limit := min(g.From(int64(s)).Len(), g.To(int64(t)).Len())
	excluded := map[int64]bool{}
	directUsed := false

	k := 0
	for k < limit {
		path := shortestPath(g, int64(s), int64(t), excluded, directUsed)
		if path == nil {
			break
		}
		if len(path) == 2 {
			directUsed = true
		}
		for _, v := range path[1 : len(path)-1] {
			excluded[v] = true
		}
		k++
	}
	return k
}

// shortestPath runs a BFS from s to t that avoids excluded nodes and, when
// skipDirect is set, the edge s→t. It returns the node sequence or nil.
func shortestPath(g graph.Directed, s, t int64, excluded map[int64]bool, skipDirect bool) []int64 {
	parent := map[int64]int64{s: s}
	queue := []int64{s}
	for len(queue) > 0 {
		u := queue[0]
		queue = queue[1:]
		for _, v := range successors(g, u) {
			if _, seen := parent[v]; seen || excluded[v] {
				continue
			}
			if u == s && v == t && skipDirect {
				continue
			}
			parent[v] = u
			if v == t {
				return walkBack(parent, s, t)
			}
			queue = append(queue, v)
		}
	}
	return nil
}

func successors(g graph.Directed, u int64) []int64 {
	nodes := graph.NodesOf(g.From(u))
	ids := make([]int64, len(nodes))
	for i, n := range nodes {
		ids[i] = n.ID()
	}
	slices.Sort(ids)
	return ids
}

func walkBack(parent map[int64]int64, s, t int64) []int64 {
	path := []int64{t}
	for v := t; v != s; {
		v = parent[v]
		path = append(path, v)
	}
	slices.Reverse(path)
	return path
}
