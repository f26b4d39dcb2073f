package aggregate

import (
	"math"

	"gonum.org/v1/gonum/graph/network"
	"gonum.org/v1/gonum/graph/simple"

	"github.com/matzehuels/tourney/pkg/errors"
	"github.com/matzehuels/tourney/pkg/ledger"
)

const (
	pageRankDamping   = 0.85
	pageRankTolerance = 1e-10
)

// PageRank ranks items by PageRank on the loss graph, where every loss is an
// edge from loser to winner weighted by its count. Items that collect more
// endorsements from the items they beat rank higher.
type PageRank struct{}

// Rank implements Aggregator.
func (PageRank) Rank(l *ledger.Ledger) ([]int, error) {
	scores, err := PageRankScores(l)
	if err != nil {
		return nil, err
	}
	return RankingFromScores(scores), nil
}

// PageRankScores returns the PageRank of every item. Scores sum to 1 and are
// rounded to the convergence tolerance, so items the graph cannot tell
// apart get identical scores.
func PageRankScores(l *ledger.Ledger) ([]float64, error) {
	if err := errors.ValidateSize(l.Size(), 1); err != nil {
		return nil, err
	}
	g := simple.NewWeightedDirectedGraph(0, 0)
	for i := range l.Size() {
		g.AddNode(simple.Node(i))
	}
	for _, e := range l.Edges() {
		g.SetWeightedEdge(g.NewWeightedEdge(simple.Node(e.Loser), simple.Node(e.Winner), float64(e.Wins)))
	}

	rank := network.PageRank(g, pageRankDamping, pageRankTolerance)
	scores := make([]float64, l.Size())
	for id, s := range rank {
		// gonum sums in map order; equal ranks differ in the last bits.
		scores[id] = math.Round(s/pageRankTolerance) * pageRankTolerance
	}
	return scores, nil
}
