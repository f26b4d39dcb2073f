package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/tourney/pkg/aggregate"
	"github.com/matzehuels/tourney/pkg/pairing"
)

// completionCommand creates the completion command for generating shell completions.
func (c *CLI) completionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate a shell completion script for tourney.

Completions cover subcommands and flags, including the strategy and
aggregator names listed by 'tourney kinds'.

  bash:       source <(tourney completion bash)
  zsh:        tourney completion zsh > "${fpath[1]}/_tourney"
  fish:       tourney completion fish | source
  powershell: tourney completion powershell | Out-String | Invoke-Expression`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletionV2(out, true)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
			return nil
		},
	}

	return cmd
}

func kindNames[K ~string](kinds []K) []string {
	names := make([]string, len(kinds))
	for i, k := range kinds {
		names[i] = string(k)
	}
	return names
}

func completeStrategies(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	return kindNames(pairing.Kinds()), cobra.ShellCompDirectiveNoFileComp
}

func completeAggregators(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	return kindNames(aggregate.Kinds()), cobra.ShellCompDirectiveNoFileComp
}

func completeConfigFiles(_ *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return []string{"toml", "yaml", "yml"}, cobra.ShellCompDirectiveFilterFileExt
}
