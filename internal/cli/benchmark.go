package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/matzehuels/tourney/pkg/benchmark"
	"github.com/matzehuels/tourney/pkg/buildinfo"
	"github.com/matzehuels/tourney/pkg/cache"
	"github.com/matzehuels/tourney/pkg/observability"
)

type benchmarkOptions struct {
	json        bool
	noCache     bool
	refresh     bool
	workers     int
	metricsAddr string
}

// benchmarkCommand creates the benchmark command.
func (c *CLI) benchmarkCommand() *cobra.Command {
	var opts benchmarkOptions

	cmd := &cobra.Command{
		Use:   "benchmark <config>",
		Short: "Compare strategies over many tournaments",
		Long: `Run every configured strategy for the configured number of trials and
summarise how well each aggregator recovers the true ranking.

The configuration is a TOML (.toml) or YAML (.yaml, .yml) file. Fields that
are left out keep their defaults:

  items = 50
  budget = 500
  trials = 20
  strategies = ["random-cycles", "cc-zip", "crowd-bt"]
  aggregators = ["bradley-terry", "schulze", "crowd-bt"]

Reports are cached by configuration; --refresh recomputes and replaces a
cached report.`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeConfigFiles,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runBenchmark(cmd.Context(), args[0], opts)
		},
	}

	cmd.Flags().BoolVar(&opts.json, "json", false, "print the full report as JSON")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the report cache")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "ignore a cached report")
	cmd.Flags().IntVarP(&opts.workers, "workers", "w", 0, "parallel trials (default: from config)")
	cmd.Flags().StringVar(&opts.metricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address while running")

	return cmd
}

func (c *CLI) runBenchmark(ctx context.Context, path string, opts benchmarkOptions) error {
	logger := loggerFromContext(ctx)

	cfg, err := benchmark.Load(path)
	if err != nil {
		return err
	}
	if opts.workers > 0 {
		cfg.Workers = opts.workers
	}
	if opts.noCache && opts.refresh {
		printWarning("--refresh has no effect with --no-cache")
	}

	if opts.metricsAddr != "" {
		stop, err := serveMetrics(opts.metricsAddr, logger)
		if err != nil {
			return err
		}
		defer stop()
	}

	store, err := newCache(opts.noCache)
	if err != nil {
		return err
	}
	defer store.Close()

	runner := &benchmark.Runner{
		Logger:  logger,
		Cache:   store,
		Keyer:   cache.NewScopedKeyer(cache.NewDefaultKeyer(), buildinfo.CacheScope()),
		Version: buildinfo.Version,
		Refresh: opts.refresh,
	}

	var spin *Spinner
	if !opts.json {
		spin = newSpinnerWithContext(ctx, fmt.Sprintf("Running %d trials", len(cfg.Strategies)*cfg.Trials))
		spin.Start()
	}
	report, err := runner.Run(ctx, cfg)
	if spin != nil {
		spin.Stop()
	}
	if err != nil {
		return err
	}

	if opts.json {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}
	printReport(report, path)
	return nil
}

func printReport(r *benchmark.Report, path string) {
	name := r.Config.Name
	if name == "" {
		name = path
	}
	printSuccess("Benchmark %s", StyleTitle.Render(name))
	printKeyValue("report", r.ID)
	printStats(r.Cached,
		fmt.Sprintf("%d items", r.Config.Items),
		fmt.Sprintf("%d votes", r.Config.Budget),
		fmt.Sprintf("%d trials", r.Config.Trials),
		r.Duration.Round(time.Millisecond).String(),
	)
	printNewline()

	rows := make([][]string, 0, len(r.Summaries)/len(benchmark.Metrics))
	for _, strategy := range r.Config.Strategies {
		for _, aggregator := range r.Config.Aggregators {
			row := []string{strategy, aggregator}
			for _, metric := range benchmark.Metrics {
				s, ok := r.Summary(strategy, aggregator, metric)
				if !ok {
					break
				}
				row = append(row, fmt.Sprintf("%.3f ± %.3f", s.Mean, s.StdDev))
			}
			if len(row) == 2+len(benchmark.Metrics) {
				rows = append(rows, row)
			}
		}
	}
	renderTable(os.Stdout, []string{"Strategy", "Aggregator", "Top-k", "Kendall", "Weighted"}, rows)
	printDetail("mean ± std-dev over trials, lower is better")
}

// serveMetrics registers Prometheus hooks and serves them until the
// returned stop function is called.
func serveMetrics(addr string, logger *log.Logger) (func(), error) {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	hooks := observability.NewPrometheusHooks(reg)

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("listen %s: %w", addr, err)
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	srv := &http.Server{Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Warn("metrics server stopped", "error", err)
		}
	}()

	observability.SetSimulationHooks(hooks)
	observability.SetCacheHooks(hooks)
	logger.Info("serving metrics", "addr", "http://"+ln.Addr().String()+"/metrics")

	return func() {
		observability.Reset()
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx)
	}, nil
}
