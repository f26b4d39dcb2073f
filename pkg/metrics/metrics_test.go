package metrics

import (
	"math"
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/tourney/pkg/errors"
)

func reversed(s []int) []int {
	out := slices.Clone(s)
	slices.Reverse(out)
	return out
}

func TestTopKOverlap(t *testing.T) {
	a := []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}
	tests := []struct {
		name     string
		b        []int
		fraction float64
		want     float64
	}{
		{"identical", a, 0.1, 0},
		{"top swapped out", []int{0, 1, 2, 3, 4, 5, 6, 7, 9, 8}, 0.1, 1},
		{"top two reordered", []int{0, 1, 2, 3, 4, 5, 6, 7, 9, 8}, 0.2, 0},
		{"half shared", []int{0, 1, 2, 3, 4, 5, 6, 8, 7, 9}, 0.2, 0.5},
		{"reversed", reversed(a), 0.5, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := TopKOverlap(a, tt.b, tt.fraction)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-12)
		})
	}
}

func TestTopKOverlapErrors(t *testing.T) {
	_, err := TopKOverlap([]int{0, 1, 2}, []int{0, 1, 2}, 0.1)
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidSize))

	_, err = TopKOverlap([]int{0, 1}, []int{0, 1, 2}, 0.5)
	assert.True(t, errors.Is(err, errors.ErrCodeMismatchedRankings))

	_, err = TopKOverlap([]int{0, 1}, []int{1, 1}, 0.5)
	assert.True(t, errors.Is(err, errors.ErrCodeMismatchedRankings))

	_, err = TopKOverlap([]int{0, 1}, []int{1, 0}, 2)
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidInput))
}

func naiveKendall(a, b []int) float64 {
	pa, pb := positions(a), positions(b)
	n := len(a)
	d := 0
	for i := range n {
		for j := i + 1; j < n; j++ {
			if (pa[i] < pa[j]) != (pb[i] < pb[j]) {
				d++
			}
		}
	}
	return float64(d) / float64(n*(n-1)/2)
}

func TestKendallTau(t *testing.T) {
	a := []int{0, 1, 2, 3}
	got, err := KendallTau(a, a)
	require.NoError(t, err)
	assert.Equal(t, 0.0, got)

	got, err = KendallTau(a, reversed(a))
	require.NoError(t, err)
	assert.Equal(t, 1.0, got)

	got, err = KendallTau(a, []int{1, 0, 2, 3})
	require.NoError(t, err)
	assert.InDelta(t, 1.0/6, got, 1e-12)
}

func TestKendallTauMatchesNaive(t *testing.T) {
	rng := rand.New(rand.NewPCG(8, 8^0xdeadbeef))
	for range 200 {
		n := 2 + rng.IntN(40)
		a, b := rng.Perm(n), rng.Perm(n)
		got, err := KendallTau(a, b)
		require.NoError(t, err)
		assert.InDelta(t, naiveKendall(a, b), got, 1e-12)
	}
}

func TestKendallTauErrors(t *testing.T) {
	_, err := KendallTau([]int{0}, []int{0})
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidSize))
	_, err = KendallTau([]int{0, 1}, []int{0, 2})
	assert.True(t, errors.Is(err, errors.ErrCodeMismatchedRankings))
}

func TestWeightedRankDistance(t *testing.T) {
	a := []int{0, 1, 2, 3, 4}
	got, err := WeightedRankDistance(a, a)
	require.NoError(t, err)
	assert.Equal(t, 0.0, got)

	got, err = WeightedRankDistance([]int{0, 1}, []int{1, 0})
	require.NoError(t, err)
	assert.InDelta(t, 1.0, got, 1e-12)

	// Swapping the two best items costs more than swapping the two worst.
	top, err := WeightedRankDistance(a, []int{0, 1, 2, 4, 3})
	require.NoError(t, err)
	bottom, err := WeightedRankDistance(a, []int{1, 0, 2, 3, 4})
	require.NoError(t, err)
	assert.Greater(t, top, bottom)

	// Two-item swap at the top: weights e^0 and e^-1 over n=5, h=1.
	var total float64
	for k := range 5 {
		total += math.Exp(-float64(k))
	}
	want := math.Sqrt((1 + math.Exp(-1)) / total / 16)
	assert.InDelta(t, want, top, 1e-12)
}

func TestWeightedRankDistanceBounded(t *testing.T) {
	rng := rand.New(rand.NewPCG(9, 9^0xdeadbeef))
	for range 100 {
		n := 2 + rng.IntN(60)
		got, err := WeightedRankDistance(rng.Perm(n), rng.Perm(n))
		require.NoError(t, err)
		assert.GreaterOrEqual(t, got, 0.0)
		assert.LessOrEqual(t, got, 1.0)
	}
}
