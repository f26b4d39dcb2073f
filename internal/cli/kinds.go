package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/tourney/pkg/aggregate"
	"github.com/matzehuels/tourney/pkg/pairing"
)

var strategyHelp = map[pairing.Kind]string{
	pairing.KindRandom:       "uniformly random pairs",
	pairing.KindRandomCycles: "edges of uniformly random Hamiltonian cycles",
	pairing.KindCCBiggest:    "cycles stitched through connected components",
	pairing.KindCCZip:        "cycles interleaving connected components",
	pairing.KindCCRecomputed: "stitched cycles, components recomputed per step",
	pairing.KindReachability: "cycles avoiding already connected items",
	pairing.KindCrowdBT:      "active learning by expected information gain",
}

var aggregatorHelp = map[aggregate.Kind]string{
	aggregate.KindBradleyTerry: "maximum-likelihood Bradley-Terry scores",
	aggregate.KindSchulze:      "Schulze beatpath method",
	aggregate.KindPageRank:     "PageRank on the loser→winner graph",
	aggregate.KindCrowdBT:      "posterior means of the crowd-bt strategy",
}

// kindsCommand lists the names accepted by --strategy and --aggregator.
func (c *CLI) kindsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "kinds",
		Short: "List pairing strategies and rank aggregators",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println(StyleTitle.Render("Strategies"))
			for _, k := range pairing.Kinds() {
				printKeyValue(string(k), strategyHelp[k])
			}
			printNewline()
			fmt.Println(StyleTitle.Render("Aggregators"))
			for _, k := range aggregate.Kinds() {
				printKeyValue(string(k), aggregatorHelp[k])
			}
			return nil
		},
	}
}
