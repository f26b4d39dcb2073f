package benchmark

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/tourney/pkg/cache"
	"github.com/matzehuels/tourney/pkg/pairing"
)

func smallConfig() Config {
	cfg := Default()
	cfg.Items = 10
	cfg.Budget = 40
	cfg.Trials = 3
	cfg.Workers = 4
	return cfg
}

func TestRunTrial(t *testing.T) {
	cfg := smallConfig()
	for _, kind := range pairing.Kinds() {
		res, err := RunTrial(context.Background(), cfg, kind, 1)
		require.NoError(t, err, kind)
		assert.Equal(t, cfg.Budget, res.Votes)
		assert.Equal(t, string(kind), res.Strategy)
		assert.GreaterOrEqual(t, res.Components, 1)

		_, hasCrowd := res.Scores["crowd-bt"]
		assert.Equal(t, kind == pairing.KindCrowdBT, hasCrowd, kind)
		for agg, s := range res.Scores {
			for _, v := range []float64{s.TopK, s.Kendall, s.Weighted} {
				assert.True(t, v >= 0 && v <= 1, "%s/%s: %v", kind, agg, v)
			}
		}
	}
}

func TestRunTrialDeterministic(t *testing.T) {
	cfg := smallConfig()
	a, err := RunTrial(context.Background(), cfg, pairing.KindRandomCycles, 2)
	require.NoError(t, err)
	b, err := RunTrial(context.Background(), cfg, pairing.KindRandomCycles, 2)
	require.NoError(t, err)
	assert.Equal(t, a.Scores, b.Scores)
}

func TestRunIndependentOfWorkers(t *testing.T) {
	cfg := smallConfig()
	var r Runner

	cfg.Workers = 1
	serial, err := r.Run(context.Background(), cfg)
	require.NoError(t, err)
	cfg.Workers = 8
	parallel, err := r.Run(context.Background(), cfg)
	require.NoError(t, err)

	require.Len(t, serial.Trials, len(cfg.Strategies)*cfg.Trials)
	for i := range serial.Trials {
		assert.Equal(t, serial.Trials[i].Strategy, parallel.Trials[i].Strategy)
		assert.Equal(t, serial.Trials[i].Scores, parallel.Trials[i].Scores)
	}
	assert.Equal(t, serial.Summaries, parallel.Summaries)
}

func TestRunSummaries(t *testing.T) {
	cfg := smallConfig()
	cfg.Strategies = []string{"random", "crowd-bt"}
	cfg.Aggregators = []string{"schulze", "crowd-bt"}

	report, err := (&Runner{Version: "test"}).Run(context.Background(), cfg)
	require.NoError(t, err)
	assert.NotEmpty(t, report.ID)
	assert.Equal(t, "test", report.Version)
	assert.False(t, report.Cached)

	// random has no crowd-bt aggregation: 1 + 2 cells, three metrics each
	assert.Len(t, report.Summaries, 3*len(Metrics))
	_, ok := report.Summary("random", "crowd-bt", MetricKendall)
	assert.False(t, ok)
	s, ok := report.Summary("crowd-bt", "crowd-bt", MetricKendall)
	require.True(t, ok)
	assert.LessOrEqual(t, s.Min, s.Median)
	assert.LessOrEqual(t, s.Median, s.Max)
	assert.GreaterOrEqual(t, s.StdDev, 0.0)
}

func TestRunUsesCache(t *testing.T) {
	c, err := cache.NewFileCache(t.TempDir())
	require.NoError(t, err)
	r := &Runner{Cache: c}
	cfg := smallConfig()
	cfg.Strategies = []string{"random"}
	cfg.Aggregators = []string{"schulze", "pagerank"}

	first, err := r.Run(context.Background(), cfg)
	require.NoError(t, err)
	assert.False(t, first.Cached)

	cfg.Workers = 2 // does not change the key
	second, err := r.Run(context.Background(), cfg)
	require.NoError(t, err)
	assert.True(t, second.Cached)
	assert.Equal(t, first.ID, second.ID)

	r.Refresh = true
	third, err := r.Run(context.Background(), cfg)
	require.NoError(t, err)
	assert.False(t, third.Cached)
	assert.NotEqual(t, first.ID, third.ID)
}

func TestRunInvalidConfig(t *testing.T) {
	cfg := smallConfig()
	cfg.Items = 1
	_, err := (&Runner{}).Run(context.Background(), cfg)
	assert.Error(t, err)
}

func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := (&Runner{}).Run(ctx, smallConfig())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSimulateKeepsState(t *testing.T) {
	cfg := smallConfig()
	cfg.Aggregators = []string{"bradley-terry", "pagerank"}
	out, err := Simulate(context.Background(), cfg, pairing.KindCCBiggest, 0)
	require.NoError(t, err)

	assert.Len(t, out.Truth, cfg.Items)
	assert.Equal(t, cfg.Budget, out.Ledger.Total())
	require.Len(t, out.Rankings, 2)
	for name, ranking := range out.Rankings {
		assert.ElementsMatch(t, out.Truth, ranking, name)
	}
	assert.Equal(t, out.Trial.Votes, out.Ledger.Total())
}
