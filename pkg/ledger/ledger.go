package ledger

import (
	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/simple"

	"github.com/matzehuels/tourney/pkg/errors"
)

// Matrix is a square win matrix: m[i][j] is the number of times i beat j.
type Matrix [][]int

// Sum returns the total number of recorded wins in m.
func (m Matrix) Sum() int {
	total := 0
	for _, row := range m {
		for _, v := range row {
			total += v
		}
	}
	return total
}

// Clone returns a deep copy of m.
func (m Matrix) Clone() Matrix {
	out := make(Matrix, len(m))
	for i, row := range m {
		out[i] = append([]int(nil), row...)
	}
	return out
}

// Edge is one directed entry of the win graph.
type Edge struct {
	Winner int
	Loser  int
	Wins   int
}

// Ledger is the tally of wins between N items.
// It is not safe for concurrent use.
type Ledger struct {
	wins  Matrix
	g     *simple.WeightedDirectedGraph
	total int
}

// New returns an empty ledger over n items. n must be at least 1.
func New(n int) (*Ledger, error) {
	if err := errors.ValidateSize(n, 1); err != nil {
		return nil, err
	}
	l := &Ledger{
		wins: make(Matrix, n),
		g:    simple.NewWeightedDirectedGraph(0, 0),
	}
	for i := range n {
		l.wins[i] = make([]int, n)
		l.g.AddNode(simple.Node(i))
	}
	return l, nil
}

// FromMatrix builds a ledger whose state matches the win matrix m.
// The matrix must be square with non-negative entries and a zero diagonal.
func FromMatrix(m Matrix) (*Ledger, error) {
	l, err := New(len(m))
	if err != nil {
		return nil, err
	}
	for i, row := range m {
		if len(row) != len(m) {
			return nil, errors.New(errors.ErrCodeInvalidInput, "row %d has %d columns, want %d", i, len(row), len(m))
		}
		for j, w := range row {
			switch {
			case w < 0:
				return nil, errors.New(errors.ErrCodeInvalidInput, "negative win count at [%d][%d]", i, j)
			case i == j && w != 0:
				return nil, errors.New(errors.ErrCodeInvalidInput, "item %d cannot beat itself", i)
			case w > 0:
				l.add(i, j, w)
			}
		}
	}
	return l, nil
}

// Size returns the number of items.
func (l *Ledger) Size() int { return len(l.wins) }

// Total returns the number of votes recorded so far.
func (l *Ledger) Total() int { return l.total }

// RecordVote adds one win of winner over loser.
func (l *Ledger) RecordVote(winner, loser int) error {
	if err := errors.ValidateIndex(winner, l.Size()); err != nil {
		return err
	}
	if err := errors.ValidateIndex(loser, l.Size()); err != nil {
		return err
	}
	if winner == loser {
		return errors.New(errors.ErrCodeInvalidInput, "item %d cannot be compared with itself", winner)
	}
	l.add(winner, loser, 1)
	return nil
}

func (l *Ledger) add(winner, loser, count int) {
	l.wins[winner][loser] += count
	l.total += count
	l.g.SetWeightedEdge(l.g.NewWeightedEdge(
		simple.Node(winner), simple.Node(loser), float64(l.wins[winner][loser])))
}

// Wins returns how often i beat j. Out of range indices report zero.
func (l *Ledger) Wins(i, j int) int {
	if i < 0 || j < 0 || i >= l.Size() || j >= l.Size() {
		return 0
	}
	return l.wins[i][j]
}

// Graph returns the win graph. Edge i→j has weight Wins(i, j).
// The view stays live and must not be mutated.
func (l *Ledger) Graph() graph.WeightedDirected { return l.g }

// Matrix returns a copy of the win matrix.
func (l *Ledger) Matrix() Matrix { return l.wins.Clone() }

// Edges returns every non-zero entry ordered by winner then loser.
func (l *Ledger) Edges() []Edge {
	var edges []Edge
	for i, row := range l.wins {
		for j, w := range row {
			if w > 0 {
				edges = append(edges, Edge{Winner: i, Loser: j, Wins: w})
			}
		}
	}
	return edges
}
