package connectivity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/graph/simple"
)

func digraph(n int, edges ...[2]int) *simple.DirectedGraph {
	g := simple.NewDirectedGraph()
	for i := range n {
		g.AddNode(simple.Node(i))
	}
	for _, e := range edges {
		g.SetEdge(g.NewEdge(simple.Node(e[0]), simple.Node(e[1])))
	}
	return g
}

func TestComponentsSingletons(t *testing.T) {
	comps := Components(digraph(4))
	assert.Equal(t, [][]int{{0}, {1}, {2}, {3}}, comps)
}

func TestComponentsOrdering(t *testing.T) {
	// {3,4,5} cycle, {1,2} cycle, 0 alone
	g := digraph(6,
		[2]int{3, 4}, [2]int{4, 5}, [2]int{5, 3},
		[2]int{1, 2}, [2]int{2, 1},
		[2]int{0, 1}, [2]int{2, 3},
	)
	comps := Components(g)
	assert.Equal(t, [][]int{{3, 4, 5}, {1, 2}, {0}}, comps)
	assert.Equal(t, []int{2, 1, 1, 0, 0, 0}, Membership(comps, 6))
}

func TestComponentsHamiltonianCycle(t *testing.T) {
	g := digraph(4, [2]int{0, 2}, [2]int{2, 1}, [2]int{1, 3}, [2]int{3, 0})
	assert.Equal(t, [][]int{{0, 1, 2, 3}}, Components(g))
}

func TestLocalNodeConnectivity(t *testing.T) {
	tests := []struct {
		name string
		g    *simple.DirectedGraph
		s, t int
		want int
	}{
		{"no edges", digraph(3), 0, 1, 0},
		{"same node", digraph(2, [2]int{0, 1}), 0, 0, 0},
		{"direct edge", digraph(2, [2]int{0, 1}), 0, 1, 1},
		{"reverse only", digraph(2, [2]int{1, 0}), 0, 1, 0},
		{
			"direct plus two detours",
			digraph(4, [2]int{0, 3}, [2]int{0, 1}, [2]int{1, 3}, [2]int{0, 2}, [2]int{2, 3}),
			0, 3, 3,
		},
		{
			"shared bottleneck",
			// 0->1->3->4 and 0->2->3->4: both paths pass through 3
			digraph(5, [2]int{0, 1}, [2]int{0, 2}, [2]int{1, 3}, [2]int{2, 3}, [2]int{3, 4}),
			0, 4, 1,
		},
		{
			"capped by in-degree",
			digraph(4, [2]int{0, 1}, [2]int{0, 2}, [2]int{1, 3}, [2]int{2, 1}),
			0, 3, 1,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, LocalNodeConnectivity(tt.g, tt.s, tt.t))
		})
	}
}
