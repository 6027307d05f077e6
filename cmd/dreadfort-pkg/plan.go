// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// planCmd prints the resolved pipeline without running anything. It is the
// discoverable spelling of `package --dry-run`.
var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Print the resolved build and packaging commands",
	Long: `Print the resolved build and packaging commands.

Shows the exact argument vectors that 'package' would execute, one step
per line, plus the source tarball the packaging step consumes. Nothing
is executed and nothing on disk is checked.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadedConfig(cmd.ErrOrStderr())
		if err != nil {
			return err
		}

		plan, err := resolvePlan(cfg)
		if err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), plan.String())
		fmt.Fprintln(cmd.OutOrStdout())
		fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n",
			SubtitleStyle.Render("source archive"), CmdStyle.Render(plan.Spec.SourceArchive()))
		fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n",
			SubtitleStyle.Render("artifact stem"), CmdStyle.Render(plan.Spec.ArtifactHint()))
		return nil
	},
}
