package aggregate

import (
	"github.com/matzehuels/tourney/pkg/errors"
	"github.com/matzehuels/tourney/pkg/ledger"
)

// DefaultIterations is the number of Bradley-Terry sweeps used when none is
// configured.
const DefaultIterations = 20

// BradleyTerry ranks items by Bradley-Terry strength.
type BradleyTerry struct {
	Iterations int
}

// Rank implements Aggregator.
func (b BradleyTerry) Rank(l *ledger.Ledger) ([]int, error) {
	scores, err := BradleyTerryScores(l.Matrix(), b.Iterations)
	if err != nil {
		return nil, err
	}
	return RankingFromScores(scores), nil
}

// BradleyTerryScores estimates the strength of each item from the win matrix
// m by running exactly iterations fixed-point sweeps from uniform scores:
//
//	scores[i] = W_i / Σ_{j≠i} (m[i][j] + m[j][i]) / (scores[i] + scores[j])
//
// where W_i is the total number of wins of i. Terms with a zero score sum are
// skipped and an item with no comparisons keeps its previous score. Scores
// sum to 1 after each sweep.
func BradleyTerryScores(m ledger.Matrix, iterations int) ([]float64, error) {
	n := len(m)
	if err := errors.ValidateSize(n, 2); err != nil {
		return nil, err
	}
	if iterations < 1 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "iterations must be at least 1, got %d", iterations)
	}
	if m.Sum() == 0 {
		return nil, errors.New(errors.ErrCodeDegenerateMatrix, "no comparisons recorded")
	}

	wins := make([]float64, n)
	for i, row := range m {
		for _, w := range row {
			wins[i] += float64(w)
		}
	}

	scores := make([]float64, n)
	for i := range scores {
		scores[i] = 1 / float64(n)
	}
	next := make([]float64, n)

	for range iterations {
		total := 0.0
		for i := range n {
			d := 0.0
			for j := range n {
				if j == i || scores[i]+scores[j] == 0 {
					continue
				}
				d += float64(m[i][j]+m[j][i]) / (scores[i] + scores[j])
			}
			if d == 0 {
				next[i] = scores[i]
			} else {
				next[i] = wins[i] / d
			}
			total += next[i]
		}
		for i := range next {
			scores[i] = next[i] / total
		}
	}
	return scores, nil
}
