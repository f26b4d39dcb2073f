package aggregate

import (
	"slices"

	"github.com/matzehuels/tourney/pkg/errors"
	"github.com/matzehuels/tourney/pkg/ledger"
)

// Schulze ranks items with the Schulze beat-path method.
type Schulze struct{}

// Rank implements Aggregator.
func (Schulze) Rank(l *ledger.Ledger) ([]int, error) {
	if err := errors.ValidateSize(l.Size(), 1); err != nil {
		return nil, err
	}
	return SchulzeRanking(StrongestPaths(l.Matrix())), nil
}

// StrongestPaths returns p where p[i][j] is the strength of the strongest
// beat path from i to j.
//
// For every pair only the stronger direction survives; ties keep p[i][j]
// for i < j. A single Floyd-Warshall pass then widens paths.
func StrongestPaths(m ledger.Matrix) ledger.Matrix {
	n := len(m)
	p := m.Clone()
	for i := range n {
		for j := i + 1; j < n; j++ {
			if p[i][j] < p[j][i] {
				p[i][j] = 0
			} else {
				p[j][i] = 0
			}
		}
	}

	for i := range n {
		for j := range n {
			if i == j {
				continue
			}
			for k := range n {
				if k != i && k != j {
					p[j][k] = max(p[j][k], min(p[j][i], p[i][k]))
				}
			}
		}
	}
	return p
}

// SchulzeRanking builds a worst-first order from a strongest path matrix by
// insertion: each item goes immediately before the first ranked item that
// beats it, or at the end.
func SchulzeRanking(p ledger.Matrix) []int {
	if len(p) == 0 {
		return nil
	}
	ranking := []int{0}
	for i := 1; i < len(p); i++ {
		at := len(ranking)
		for idx, j := range ranking {
			if p[i][j] < p[j][i] {
				at = idx
				break
			}
		}
		ranking = slices.Insert(ranking, at, i)
	}
	return ranking
}
