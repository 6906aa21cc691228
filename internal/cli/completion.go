package cli

import (
	"github.com/spf13/cobra"

	vdbio "github.com/matzehuels/efxvdb/pkg/io"
)

// completionCommand creates the completion command for generating shell completions.
func (c *CLI) completionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for efxvdb.

  $ source <(efxvdb completion bash)
  $ efxvdb completion zsh > "${fpath[1]}/_efxvdb"
  $ efxvdb completion fish | source
  PS> efxvdb completion powershell | Out-String | Invoke-Expression`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(out)
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
}

// registerExportCompletions completes the enumerated export flags and
// restricts DESIGN arguments to design file extensions.
func registerExportCompletions(cmd *cobra.Command) {
	formats := make([]string, len(vdbio.Formats))
	for i, f := range vdbio.Formats {
		formats[i] = string(f)
	}
	_ = cmd.RegisterFlagCompletionFunc("format", cobra.FixedCompletions(formats, cobra.ShellCompDirectiveNoFileComp))
	_ = cmd.RegisterFlagCompletionFunc("duplicates", cobra.FixedCompletions(
		[]string{"first", "last", "strict"}, cobra.ShellCompDirectiveNoFileComp))
	cmd.ValidArgsFunction = func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return []string{"json", "jsonc", "yaml", "yml", "cbor"}, cobra.ShellCompDirectiveFilterFileExt
	}
}
