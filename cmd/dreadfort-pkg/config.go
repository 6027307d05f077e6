// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"strings"

	"dreadfort-pkg/internal/config"

	"github.com/spf13/cobra"
)

var (
	configInitForce bool

	// configCmd is the `dreadfort-pkg config` command tree.
	configCmd = &cobra.Command{
		Use:   "config",
		Short: "Manage dreadfort-pkg configuration",
		Long: `Manage dreadfort-pkg configuration.

Configuration is stored in:
  - Linux: ~/.config/dreadfort-pkg/config.cue
  - macOS: ~/Library/Application Support/dreadfort-pkg/config.cue
  - Windows: %APPDATA%\dreadfort-pkg\config.cue`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
)

func init() {
	configCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return showConfig(cmd)
		},
	})

	configCmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show configuration file path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return showConfigPath(cmd)
		},
	})

	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Create default configuration file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := config.WriteDefaultConfigFile(configInitForce)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s Created default configuration at %s\n",
				SuccessStyle.Render("✓"), path)
			return nil
		},
	}
	initCmd.Flags().BoolVarP(&configInitForce, "force", "f", false, "overwrite an existing config file")
	configCmd.AddCommand(initCmd)
}

func showConfig(cmd *cobra.Command) error {
	cfg, err := loadedConfig(cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()

	keyStyle := CmdStyle
	valueStyle := SuccessStyle

	fmt.Fprintln(out, TitleStyle.Render("Current Configuration"))
	fmt.Fprintln(out)

	path, err := config.ResolvedPath()
	if err == nil && path != "" {
		fmt.Fprintf(out, "%s: %s\n", keyStyle.Render("Config file"), path)
	} else {
		fmt.Fprintf(out, "%s: %s\n", keyStyle.Render("Config file"), SubtitleStyle.Render("(using defaults)"))
	}
	fmt.Fprintln(out)

	fmt.Fprintf(out, "%s: %s\n", keyStyle.Render("project_name"), valueStyle.Render(cfg.ProjectName))
	fmt.Fprintf(out, "%s: %s\n", keyStyle.Render("version_file"), valueStyle.Render(cfg.VersionFile))

	fmt.Fprintln(out)
	fmt.Fprintf(out, "%s:\n", keyStyle.Render("build"))
	fmt.Fprintf(out, "  tool: %s\n", valueStyle.Render(cfg.Build.Tool.String()))

	fmt.Fprintln(out)
	fmt.Fprintf(out, "%s:\n", keyStyle.Render("pkg"))
	fmt.Fprintf(out, "  tool: %s\n", valueStyle.Render(cfg.Package.Tool.String()))
	fmt.Fprintf(out, "  target: %s\n", valueStyle.Render(cfg.Package.Target.String()))
	fmt.Fprintf(out, "  source: %s\n", valueStyle.Render(cfg.Package.Source.String()))
	fmt.Fprintf(out, "  depends: %s\n", valueStyle.Render(strings.Join(cfg.Package.Depends, ", ")))
	fmt.Fprintf(out, "  post_install: %s\n", valueStyle.Render(cfg.Package.PostInstall.String()))
	fmt.Fprintf(out, "  post_remove: %s\n", valueStyle.Render(cfg.Package.PostRemove.String()))

	fmt.Fprintln(out)
	fmt.Fprintf(out, "%s:\n", keyStyle.Render("ui"))
	fmt.Fprintf(out, "  verbose: %s\n", valueStyle.Render(fmt.Sprintf("%v", cfg.UI.Verbose)))

	return nil
}

func showConfigPath(cmd *cobra.Command) error {
	out := cmd.OutOrStdout()

	cfgDir, err := config.ConfigDir()
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Config directory: %s\n", cfgDir)
	fmt.Fprintf(out, "Config file: %s/%s.%s\n", cfgDir, config.ConfigFileName, config.ConfigFileExt)
	return nil
}
