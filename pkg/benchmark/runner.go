package benchmark

import (
	"context"
	"fmt"
	"hash/fnv"
	"io"
	"math/rand/v2"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/tourney/pkg/aggregate"
	"github.com/matzehuels/tourney/pkg/cache"
	"github.com/matzehuels/tourney/pkg/connectivity"
	"github.com/matzehuels/tourney/pkg/crowdbt"
	"github.com/matzehuels/tourney/pkg/ledger"
	"github.com/matzehuels/tourney/pkg/metrics"
	"github.com/matzehuels/tourney/pkg/observability"
	"github.com/matzehuels/tourney/pkg/pairing"
	"github.com/matzehuels/tourney/pkg/vote"
)

const reportKeyType = "report"

// Runner executes benchmarks. The zero value runs without caching or
// logging.
type Runner struct {
	Logger  *log.Logger
	Cache   cache.Cache
	Keyer   cache.Keyer
	TTL     time.Duration
	Version string
	// Refresh skips the cache lookup but still stores the new report.
	Refresh bool
}

func (r *Runner) logger() *log.Logger {
	if r.Logger == nil {
		return log.New(io.Discard)
	}
	return r.Logger
}

// Run validates cfg, returns a cached report when one exists and otherwise
// runs every trial.
func (r *Runner) Run(ctx context.Context, cfg Config) (*Report, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg.Strategies = dedupe(cfg.Strategies)
	cfg.Aggregators = dedupe(cfg.Aggregators)
	logger := r.logger()
	c := r.Cache
	if c == nil {
		c = cache.NewNullCache()
	}
	keyer := r.Keyer
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	key := keyer.ReportKey(cfg.normalized())

	if !r.Refresh {
		var cached Report
		hit, err := cache.GetJSON(ctx, c, reportKeyType, key, &cached)
		if err != nil {
			logger.Warn("cache lookup failed", "error", err)
		}
		if hit {
			logger.Debug("using cached report", "id", cached.ID)
			cached.Cached = true
			return &cached, nil
		}
	}

	start := time.Now()
	trials, err := r.runTrials(ctx, cfg)
	if err != nil {
		return nil, err
	}
	summaries, err := summarize(cfg, trials)
	if err != nil {
		return nil, fmt.Errorf("summarize: %w", err)
	}

	report := &Report{
		ID:        uuid.NewString(),
		Version:   r.Version,
		CreatedAt: time.Now().UTC(),
		Duration:  time.Since(start),
		Config:    cfg,
		Trials:    trials,
		Summaries: summaries,
	}
	logger.Info("benchmark finished", "trials", len(trials), "duration", report.Duration.Round(time.Millisecond))

	if err := cache.SetJSON(ctx, c, reportKeyType, key, report, r.TTL); err != nil {
		logger.Warn("cache write failed", "error", err)
	}
	return report, nil
}

func (r *Runner) runTrials(ctx context.Context, cfg Config) ([]Trial, error) {
	logger := r.logger()
	trials := make([]Trial, len(cfg.Strategies)*cfg.Trials)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.Workers)
	for si, strategy := range cfg.Strategies {
		for t := range cfg.Trials {
			g.Go(func() error {
				res, err := RunTrial(gctx, cfg, pairing.Kind(strategy), t)
				if err != nil {
					return fmt.Errorf("%s trial %d: %w", strategy, t, err)
				}
				logger.Debug("trial done", "strategy", strategy, "trial", t, "duration", res.Duration)
				trials[si*cfg.Trials+t] = res
				return nil
			})
		}
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return trials, nil
}

// Outcome is a finished tournament together with the state it produced.
type Outcome struct {
	Truth    []int
	Ledger   *ledger.Ledger
	Rankings map[string][]int
	Trial    Trial
}

// RunTrial runs one tournament of cfg under strategy. The result depends
// only on cfg, strategy and trial.
func RunTrial(ctx context.Context, cfg Config, strategy pairing.Kind, trial int) (Trial, error) {
	out, err := Simulate(ctx, cfg, strategy, trial)
	if err != nil {
		return Trial{}, err
	}
	return out.Trial, nil
}

// Simulate is RunTrial keeping the true ranking, the ledger and every
// aggregated ranking.
func Simulate(ctx context.Context, cfg Config, strategy pairing.Kind, trial int) (out *Outcome, err error) {
	ctx, span := observability.StartSpan(ctx, "benchmark.trial",
		attribute.String("strategy", string(strategy)),
		attribute.Int("trial", trial),
		attribute.Int("items", cfg.Items),
		attribute.Int("budget", cfg.Budget),
	)
	defer func() { observability.EndSpan(span, err) }()
	start := time.Now()

	truthRNG := rand.New(rand.NewPCG(cfg.Seed, uint64(trial)))
	rng := rand.New(rand.NewPCG(cfg.Seed^uint64(trial), nameSeed(string(strategy))))

	truth := vote.RandomRanking(cfg.Items, truthRNG)
	l, err := ledger.New(cfg.Items)
	if err != nil {
		return nil, err
	}
	s, err := pairing.New(strategy, l, rng, pairing.Options{Annotators: cfg.Annotators})
	if err != nil {
		return nil, err
	}
	oracle, err := vote.NewOracle(truth, cfg.P, rng)
	if err != nil {
		return nil, err
	}
	sim, err := vote.NewSimulator(l, s, oracle, vote.Config{
		Budget:  cfg.Budget,
		Rematch: cfg.Rematch,
		Label:   string(strategy),
	})
	if err != nil {
		return nil, err
	}
	if err := sim.Run(ctx); err != nil {
		return nil, err
	}

	opts := aggregate.Options{BTIterations: cfg.BTIterations}
	if m, ok := s.(interface{ Model() *crowdbt.Model }); ok {
		opts.Model = m.Model()
	}

	out = &Outcome{
		Truth:    truth,
		Ledger:   l,
		Rankings: make(map[string][]int, len(cfg.Aggregators)),
		Trial: Trial{
			Strategy:   string(strategy),
			Trial:      trial,
			Votes:      l.Total(),
			Scores:     make(map[string]Scores, len(cfg.Aggregators)),
			Components: len(connectivity.Components(l.Graph())),
		},
	}
	for _, name := range cfg.Aggregators {
		kind := aggregate.Kind(name)
		if kind == aggregate.KindCrowdBT && opts.Model == nil {
			continue
		}
		agg, err := aggregate.New(kind, opts)
		if err != nil {
			return nil, err
		}
		ranking, err := aggregate.Measure(ctx, name, agg, l)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		scores, err := score(truth, ranking, cfg.TopFraction)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		out.Rankings[name] = ranking
		out.Trial.Scores[name] = scores
	}
	out.Trial.Duration = time.Since(start)
	return out, nil
}

func score(truth, ranking []int, fraction float64) (Scores, error) {
	var s Scores
	var err error
	if s.TopK, err = metrics.TopKOverlap(truth, ranking, fraction); err != nil {
		return s, err
	}
	if s.Kendall, err = metrics.KendallTau(truth, ranking); err != nil {
		return s, err
	}
	if s.Weighted, err = metrics.WeightedRankDistance(truth, ranking); err != nil {
		return s, err
	}
	return s, nil
}

// nameSeed gives every strategy its own random stream for the same trial.
func nameSeed(name string) uint64 {
	h := fnv.New64a()
	h.Write([]byte(name))
	return h.Sum64()
}
