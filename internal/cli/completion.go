package cli

import (
	"github.com/spf13/cobra"
)

// shells maps a shell name to its completion generator.
var shells = map[string]func(root *cobra.Command, cmd *cobra.Command) error{
	"bash": func(root, cmd *cobra.Command) error {
		return root.GenBashCompletionV2(cmd.OutOrStdout(), true)
	},
	"zsh": func(root, cmd *cobra.Command) error {
		return root.GenZshCompletion(cmd.OutOrStdout())
	},
	"fish": func(root, cmd *cobra.Command) error {
		return root.GenFishCompletion(cmd.OutOrStdout(), true)
	},
	"powershell": func(root, cmd *cobra.Command) error {
		return root.GenPowerShellCompletionWithDesc(cmd.OutOrStdout())
	},
}

func (c *CLI) completionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "completion bash|zsh|fish|powershell",
		Short: "Print a shell completion script",
		Long: `Print a shell completion script for animaut.

  bash        source <(animaut completion bash)
  zsh         animaut completion zsh > "${fpath[1]}/_animaut"
  fish        animaut completion fish > ~/.config/fish/completions/animaut.fish
  powershell  animaut completion powershell | Out-String | Invoke-Expression

Zsh needs "autoload -U compinit; compinit" in ~/.zshrc if completion is
not enabled yet. Start a new shell after installing a script.`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			return shells[args[0]](cmd.Root(), cmd)
		},
	}
}
