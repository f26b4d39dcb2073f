package aggregate

import (
	"context"
	"sort"
	"time"

	"github.com/matzehuels/tourney/pkg/crowdbt"
	"github.com/matzehuels/tourney/pkg/errors"
	"github.com/matzehuels/tourney/pkg/ledger"
	"github.com/matzehuels/tourney/pkg/observability"
)

// Aggregator ranks the items of a finished tournament, worst first.
type Aggregator interface {
	Rank(l *ledger.Ledger) ([]int, error)
}

// Kind names an aggregator variant.
type Kind string

const (
	KindBradleyTerry Kind = "bradley-terry"
	KindSchulze      Kind = "schulze"
	KindPageRank     Kind = "pagerank"
	KindCrowdBT      Kind = "crowd-bt"
)

// Kinds lists every registered aggregator in a stable order.
func Kinds() []Kind {
	return []Kind{KindBradleyTerry, KindSchulze, KindPageRank, KindCrowdBT}
}

// Options configures the variants that take parameters.
type Options struct {
	// BTIterations is the number of Bradley-Terry sweeps. Zero uses
	// DefaultIterations.
	BTIterations int
	// Model is the online state read by the crowd-bt aggregator.
	Model *crowdbt.Model
}

// New builds the aggregator for kind.
func New(kind Kind, opts Options) (Aggregator, error) {
	switch kind {
	case KindBradleyTerry:
		iters := opts.BTIterations
		if iters == 0 {
			iters = DefaultIterations
		}
		if iters < 0 {
			return nil, errors.New(errors.ErrCodeInvalidInput, "bradley-terry iterations must be positive, got %d", iters)
		}
		return BradleyTerry{Iterations: iters}, nil
	case KindSchulze:
		return Schulze{}, nil
	case KindPageRank:
		return PageRank{}, nil
	case KindCrowdBT:
		if opts.Model == nil {
			return nil, errors.New(errors.ErrCodeInvalidInput, "crowd-bt aggregation needs the crowd-bt pairing strategy")
		}
		return CrowdBT{Model: opts.Model}, nil
	}
	return nil, errors.New(errors.ErrCodeUnknownAggregator, "unknown aggregator %q (want one of %v)", kind, Kinds())
}

// Measure runs a.Rank and reports its duration to the simulation hooks.
func Measure(ctx context.Context, name string, a Aggregator, l *ledger.Ledger) ([]int, error) {
	start := time.Now()
	ranking, err := a.Rank(l)
	observability.Simulation().OnRankComplete(ctx, name, l.Size(), time.Since(start), err)
	return ranking, err
}

// RankingFromScores orders item indices by ascending score, worst first.
// Equal scores keep index order.
func RankingFromScores(scores []float64) []int {
	ranking := make([]int, len(scores))
	for i := range ranking {
		ranking[i] = i
	}
	sort.SliceStable(ranking, func(i, j int) bool {
		return scores[ranking[i]] < scores[ranking[j]]
	})
	return ranking
}

// CrowdBT ranks by the posterior skill means of an online Crowd-BT model.
// The ledger is only checked for size.
type CrowdBT struct {
	Model *crowdbt.Model
}

// Rank implements Aggregator.
func (c CrowdBT) Rank(l *ledger.Ledger) ([]int, error) {
	if c.Model.Size() != l.Size() {
		return nil, errors.New(errors.ErrCodeInvalidInput,
			"crowd-bt model has %d items, ledger has %d", c.Model.Size(), l.Size())
	}
	return c.Model.Ranking(), nil
}
