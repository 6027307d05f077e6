// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// completionCmd generates shell completion scripts.
var completionCmd = &cobra.Command{
	Use:   "completion [bash|zsh|fish|powershell]",
	Short: "Generate shell completion scripts",
	Long: `Generate shell completion scripts for dreadfort-pkg.

To enable shell completions, run one of the following commands:

` + SubtitleStyle.Render("Bash:") + `
  # Add to ~/.bashrc:
  eval "$(dreadfort-pkg completion bash)"

  # Or install system-wide:
  dreadfort-pkg completion bash > /etc/bash_completion.d/dreadfort-pkg

` + SubtitleStyle.Render("Zsh:") + `
  # Add to ~/.zshrc:
  eval "$(dreadfort-pkg completion zsh)"

  # Or install to fpath:
  dreadfort-pkg completion zsh > "${fpath[1]}/_dreadfort-pkg"

` + SubtitleStyle.Render("Fish:") + `
  dreadfort-pkg completion fish > ~/.config/fish/completions/dreadfort-pkg.fish

` + SubtitleStyle.Render("PowerShell:") + `
  dreadfort-pkg completion powershell | Out-String | Invoke-Expression

  # Or add to $PROFILE:
  dreadfort-pkg completion powershell >> $PROFILE
`,
	DisableFlagsInUseLine: true,
	ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
	Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	RunE: func(cmd *cobra.Command, args []string) error {
		switch args[0] {
		case "bash":
			return cmd.Root().GenBashCompletion(os.Stdout)
		case "zsh":
			return cmd.Root().GenZshCompletion(os.Stdout)
		case "fish":
			return cmd.Root().GenFishCompletion(os.Stdout, true)
		case "powershell":
			return cmd.Root().GenPowerShellCompletionWithDesc(os.Stdout)
		}
		return nil
	},
}
