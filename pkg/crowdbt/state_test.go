package crowdbt

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/tourney/pkg/errors"
	"github.com/matzehuels/tourney/pkg/perm"
)

func newTestModel(t *testing.T, n int) *Model {
	t.Helper()
	m, err := NewModel(n, 0, rand.New(rand.NewPCG(5, 5^0xdeadbeef)))
	require.NoError(t, err)
	return m
}

func TestNewModel(t *testing.T) {
	m := newTestModel(t, 4)
	assert.Equal(t, 4, m.Size())
	assert.Len(t, m.Annotators(), 4)
	assert.Equal(t, PriorSkill(), m.Skill(2))

	_, err := NewModel(1, 0, rand.New(rand.NewPCG(1, 1)))
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidSize))
}

func TestNextReturnsDistinctItems(t *testing.T) {
	m := newTestModel(t, 5)
	for range 200 {
		a, b := m.Next()
		require.NotEqual(t, a, b)
		require.True(t, a >= 0 && a < 5 && b >= 0 && b < 5)
		require.NoError(t, m.Record(a, b))
	}
}

func TestRecordRequiresPendingPair(t *testing.T) {
	m := newTestModel(t, 4)
	assert.True(t, errors.Is(m.Record(0, 1), errors.ErrCodeInvalidInput))

	a, b := m.Next()
	other := 0
	for other == a || other == b {
		other++
	}
	assert.True(t, errors.Is(m.Record(a, other), errors.ErrCodeInvalidInput))
	require.NoError(t, m.Record(b, a))
	require.NoError(t, m.Record(a, b))
}

// Letting the higher index win every vote ranks items in index order.
func TestRankingRecoversOrder(t *testing.T) {
	const n = 6
	m := newTestModel(t, n)
	for range 3000 {
		a, b := m.Next()
		if a > b {
			require.NoError(t, m.Record(a, b))
		} else {
			require.NoError(t, m.Record(b, a))
		}
	}
	ranking := m.Ranking()
	assert.True(t, perm.IsPermutation(ranking))
	assert.Equal(t, perm.Seq(n), ranking)

	for _, a := range m.Annotators() {
		assert.Greater(t, a.Alpha, 0.0)
		assert.Greater(t, a.Beta, 0.0)
	}
}

func TestRankingStableOnTies(t *testing.T) {
	m := newTestModel(t, 4)
	assert.Equal(t, []int{0, 1, 2, 3}, m.Ranking())
}
