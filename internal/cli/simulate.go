package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/tourney/pkg/aggregate"
	"github.com/matzehuels/tourney/pkg/benchmark"
	"github.com/matzehuels/tourney/pkg/errors"
	"github.com/matzehuels/tourney/pkg/ledger"
	"github.com/matzehuels/tourney/pkg/pairing"
)

type simulateOptions struct {
	cfg      benchmark.Config
	strategy string
	trial    int
	graph    string
}

// simulateCommand creates the simulate command.
func (c *CLI) simulateCommand() *cobra.Command {
	opts := simulateOptions{
		cfg:      benchmark.Default(),
		strategy: string(pairing.KindRandomCycles),
	}
	opts.cfg.Trials, opts.cfg.Workers = 1, 1
	opts.cfg.Aggregators = nil

	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Run one tournament and score every aggregator",
		Long: `Run one tournament: draw a true ranking, cast noisy votes on the pairs the
strategy proposes, then rank the items with each aggregator and compare the
result against the truth.

The same flags always produce the same tournament. --trial selects a
different true ranking for the same seed.`,
		Example: `  tourney simulate --items 30 --budget 300 --strategy cc-zip
  tourney simulate -s crowd-bt -a crowd-bt,schulze --graph wins.svg`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runSimulate(cmd.Context(), opts)
		},
	}

	f := cmd.Flags()
	f.IntVarP(&opts.cfg.Items, "items", "n", opts.cfg.Items, "number of items")
	f.IntVarP(&opts.cfg.Budget, "budget", "b", opts.cfg.Budget, "number of votes")
	f.IntVar(&opts.cfg.Rematch, "rematch", opts.cfg.Rematch, "votes cast on each proposed pair")
	f.Float64Var(&opts.cfg.P, "p", opts.cfg.P, "probability that a vote agrees with the true ranking")
	f.Uint64Var(&opts.cfg.Seed, "seed", opts.cfg.Seed, "random seed")
	f.IntVar(&opts.trial, "trial", 0, "trial index")
	f.StringVarP(&opts.strategy, "strategy", "s", opts.strategy, "pairing strategy (see 'tourney kinds')")
	f.StringSliceVarP(&opts.cfg.Aggregators, "aggregator", "a", nil, "rank aggregators (default: all that apply)")
	f.IntVar(&opts.cfg.BTIterations, "bt-iterations", opts.cfg.BTIterations, "Bradley-Terry iterations")
	f.IntVar(&opts.cfg.Annotators, "annotators", 0, "crowd-bt annotators (0: one per item)")
	f.Float64Var(&opts.cfg.TopFraction, "top-fraction", opts.cfg.TopFraction, "share of items in the top-k metric")
	f.StringVarP(&opts.graph, "graph", "g", "", "write the win graph to a .dot or .svg file")
	_ = cmd.RegisterFlagCompletionFunc("strategy", completeStrategies)
	_ = cmd.RegisterFlagCompletionFunc("aggregator", completeAggregators)

	return cmd
}

func (c *CLI) runSimulate(ctx context.Context, opts simulateOptions) error {
	logger := loggerFromContext(ctx)
	kind := pairing.Kind(opts.strategy)

	cfg := opts.cfg
	cfg.Strategies = []string{opts.strategy}
	if len(cfg.Aggregators) == 0 {
		cfg.Aggregators = defaultAggregators(kind)
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger.Debug("simulating", "strategy", kind, "items", cfg.Items, "budget", cfg.Budget, "trial", opts.trial)
	prog := newProgress(logger)
	out, err := benchmark.Simulate(ctx, cfg, kind, opts.trial)
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Simulated %d votes", out.Trial.Votes))

	printKeyValue("strategy", opts.strategy)
	printKeyValue("truth", formatRanking(out.Truth))
	printDetail("%d items · %d votes · %d components", cfg.Items, out.Trial.Votes, out.Trial.Components)
	printNewline()

	rows := make([][]string, 0, len(cfg.Aggregators))
	for _, name := range cfg.Aggregators {
		ranking, ok := out.Rankings[name]
		if !ok {
			continue
		}
		s := out.Trial.Scores[name]
		rows = append(rows, []string{
			name,
			fmt.Sprintf("%.3f", s.TopK),
			fmt.Sprintf("%.3f", s.Kendall),
			fmt.Sprintf("%.3f", s.Weighted),
			formatRanking(ranking),
		})
	}
	renderTable(os.Stdout, []string{"Aggregator", "Top-k", "Kendall", "Weighted", "Ranking (best first)"}, rows)

	if opts.graph != "" {
		if err := writeGraph(ctx, opts.graph, out); err != nil {
			return err
		}
		printNewline()
		printSuccess("Wrote win graph")
		printFile(opts.graph)
	}
	return nil
}

// defaultAggregators returns every aggregator that applies to strategy.
func defaultAggregators(strategy pairing.Kind) []string {
	var names []string
	for _, k := range aggregate.Kinds() {
		if k == aggregate.KindCrowdBT && strategy != pairing.KindCrowdBT {
			continue
		}
		names = append(names, string(k))
	}
	return names
}

// writeGraph writes the ledger of out as DOT or SVG, chosen by extension.
// Nodes are shaded by their true position.
func writeGraph(ctx context.Context, path string, out *benchmark.Outcome) error {
	dot := ledger.ToDOT(out.Ledger, ledger.DOTOptions{Ranking: out.Truth})

	var data []byte
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".dot", ".gv":
		data = []byte(dot)
	case ".svg":
		svg, err := ledger.RenderSVG(ctx, dot)
		if err != nil {
			return fmt.Errorf("render graph: %w", err)
		}
		data = svg
	default:
		return errors.New(errors.ErrCodeUnsupported, "graph format %q: want .dot or .svg", ext)
	}
	return os.WriteFile(path, data, 0644)
}
