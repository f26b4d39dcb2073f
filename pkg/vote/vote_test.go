package vote

import (
	"context"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/tourney/pkg/errors"
	"github.com/matzehuels/tourney/pkg/ledger"
	"github.com/matzehuels/tourney/pkg/pairing"
	"github.com/matzehuels/tourney/pkg/perm"
)

func newRNG(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0xdeadbeef))
}

func TestRandomRanking(t *testing.T) {
	r := RandomRanking(10, newRNG(1))
	assert.True(t, perm.IsPermutation(r))
	assert.Len(t, r, 10)
}

func TestOracleTruthful(t *testing.T) {
	o, err := NewOracle([]int{2, 0, 1}, 1, newRNG(1))
	require.NoError(t, err)

	// worst to best: 2, 0, 1
	loser, winner := o.Vote(0, 1)
	assert.Equal(t, []int{0, 1}, []int{loser, winner})
	loser, winner = o.Vote(1, 2)
	assert.Equal(t, []int{2, 1}, []int{loser, winner})
	loser, winner = o.Vote(0, 2)
	assert.Equal(t, []int{2, 0}, []int{loser, winner})
}

func TestOracleAlwaysWrong(t *testing.T) {
	o, err := NewOracle([]int{0, 1}, 0, newRNG(1))
	require.NoError(t, err)
	for range 10 {
		loser, winner := o.Vote(0, 1)
		assert.Equal(t, 1, loser)
		assert.Equal(t, 0, winner)
	}
}

func TestOracleNoiseRate(t *testing.T) {
	o, err := NewOracle([]int{0, 1}, 0.8, newRNG(2))
	require.NoError(t, err)
	right := 0
	for range 10000 {
		if _, w := o.Vote(0, 1); w == 1 {
			right++
		}
	}
	assert.InDelta(t, 8000, right, 200)
}

func TestNewOracleRejects(t *testing.T) {
	_, err := NewOracle([]int{0, 0}, 0.5, newRNG(1))
	assert.True(t, errors.Is(err, errors.ErrCodeMismatchedRankings))
	_, err = NewOracle([]int{0, 1}, 1.5, newRNG(1))
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidInput))
}

func newSim(t *testing.T, kind pairing.Kind, n, budget, rematch int, seed uint64) (*Simulator, *ledger.Ledger) {
	t.Helper()
	rng := newRNG(seed)
	l, err := ledger.New(n)
	require.NoError(t, err)
	s, err := pairing.New(kind, l, rng, pairing.Options{})
	require.NoError(t, err)
	o, err := NewOracle(RandomRanking(n, rng), 0.9, rng)
	require.NoError(t, err)
	sim, err := NewSimulator(l, s, o, Config{Budget: budget, Rematch: rematch, Label: string(kind)})
	require.NoError(t, err)
	return sim, l
}

// The ledger holds exactly the budget, whatever the rematch count.
func TestRunSpendsExactBudget(t *testing.T) {
	for _, kind := range pairing.Kinds() {
		for rematch := 1; rematch <= 5; rematch++ {
			for _, budget := range []int{0, 1, 7, 23, 50} {
				sim, l := newSim(t, kind, 6, budget, rematch, uint64(budget*10+rematch))
				assert.Equal(t, budget == 0, sim.State() == Exhausted)

				require.NoError(t, sim.Run(context.Background()))
				assert.Equal(t, Exhausted, sim.State())
				assert.Equal(t, 0, sim.Remaining())
				assert.Equal(t, budget, l.Total(), "%s rematch=%d", kind, rematch)
				assert.Equal(t, budget, l.Matrix().Sum())
			}
		}
	}
}

func TestStepRematchesSamePair(t *testing.T) {
	sim, l := newSim(t, pairing.KindRandom, 5, 10, 3, 4)
	require.NoError(t, sim.Step(context.Background()))
	assert.Equal(t, 3, l.Total())
	assert.Equal(t, 7, sim.Remaining())

	edges := l.Edges()
	pairs := map[perm.Edge]bool{}
	for _, e := range edges {
		pairs[perm.Edge{e.Winner, e.Loser}.Sorted()] = true
	}
	assert.Len(t, pairs, 1)

	// Last round is cut to the remaining budget.
	for range 3 {
		require.NoError(t, sim.Step(context.Background()))
	}
	assert.Equal(t, 10, l.Total())
	assert.Equal(t, Exhausted, sim.State())
	require.NoError(t, sim.Step(context.Background()))
	assert.Equal(t, 10, l.Total())
}

// failingObserver proposes a fixed pair and rejects every outcome.
type failingObserver struct{}

func (failingObserver) Next() pairing.Pair { return pairing.Pair{A: 0, B: 1} }

func (failingObserver) Observe(int, int) error {
	return errors.New(errors.ErrCodeInvalidInput, "rejected")
}

func TestStepCountsVoteWhenObserverFails(t *testing.T) {
	l, err := ledger.New(3)
	require.NoError(t, err)
	o, err := NewOracle([]int{0, 1, 2}, 1, newRNG(1))
	require.NoError(t, err)
	sim, err := NewSimulator(l, failingObserver{}, o, Config{Budget: 5, Rematch: 2})
	require.NoError(t, err)

	require.Error(t, sim.Step(context.Background()))
	assert.Equal(t, 1, l.Total())
	assert.Equal(t, l.Total(), 5-sim.Remaining())
}

func TestRunDeterministic(t *testing.T) {
	simA, la := newSim(t, pairing.KindCCBiggest, 8, 40, 2, 77)
	simB, lb := newSim(t, pairing.KindCCBiggest, 8, 40, 2, 77)
	require.NoError(t, simA.Run(context.Background()))
	require.NoError(t, simB.Run(context.Background()))
	assert.Equal(t, la.Matrix(), lb.Matrix())
}

func TestRunCancelled(t *testing.T) {
	sim, l := newSim(t, pairing.KindRandom, 4, 100, 1, 1)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, sim.Run(ctx), context.Canceled)
	assert.Equal(t, 0, l.Total())
	assert.Equal(t, Running, sim.State())
}

func TestNewSimulatorRejects(t *testing.T) {
	rng := newRNG(1)
	l, err := ledger.New(3)
	require.NoError(t, err)
	s, err := pairing.NewRandom(3, rng)
	require.NoError(t, err)
	o, err := NewOracle([]int{0, 1, 2}, 1, rng)
	require.NoError(t, err)
	short, err := NewOracle([]int{0, 1}, 1, rng)
	require.NoError(t, err)

	tests := []struct {
		name   string
		oracle *Oracle
		cfg    Config
	}{
		{"negative budget", o, Config{Budget: -1, Rematch: 1}},
		{"zero rematch", o, Config{Budget: 1, Rematch: 0}},
		{"size mismatch", short, Config{Budget: 1, Rematch: 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewSimulator(l, s, tt.oracle, tt.cfg)
			assert.True(t, errors.Is(err, errors.ErrCodeInvalidInput), "got %v", err)
		})
	}
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "running", Running.String())
	assert.Equal(t, "exhausted", Exhausted.String())
}
