// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"dreadfort-pkg/internal/config"
	"dreadfort-pkg/internal/issue"

	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"

	// Verbose enables verbose output
	verbose bool
	// cfgFile allows specifying a custom config file
	cfgFile string

	// rootCfg is the configuration loaded by initRootConfig. Never nil
	// after initialization.
	rootCfg = config.DefaultConfig()
	// rootCfgErr records a config load/validation failure. Commands that
	// consume configuration must fail on it instead of silently running
	// with the built-in defaults.
	rootCfgErr error

	// rootCmd represents the base command when called without any subcommands
	rootCmd = &cobra.Command{
		Use:   "dreadfort-pkg",
		Short: "Build and package dreadfort as a .deb",
		Long: TitleStyle.Render("dreadfort-pkg") + SubtitleStyle.Render(" - Build and package dreadfort as a .deb") + `

dreadfort-pkg replaces the historical packaging shell script: it reads
the VERSION file, runs the project build tool, then hands the resulting
tarball to fpm to produce a Debian package. Steps run strictly in
sequence and the pipeline halts at the first failure, propagating the
failing tool's exit code.

Every literal of the historical script (tool paths, hook scripts,
dependencies) can be overridden via config.cue.

` + SubtitleStyle.Render("Examples:") + `
  dreadfort-pkg package           Run the build + fpm pipeline
  dreadfort-pkg package --dry-run Show the commands without running them
  dreadfort-pkg plan              Print the resolved argument vectors
  dreadfort-pkg check             Diagnose the packaging environment
  dreadfort-pkg config show       Show current configuration`,
	}
)

func init() {
	cobra.OnInitialize(initRootConfig)

	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/dreadfort-pkg/config.cue)")

	// Add subcommands
	rootCmd.AddCommand(packageCmd)
	rootCmd.AddCommand(planCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(completionCmd)
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	// Use fang.Execute for enhanced Cobra styling
	// Pass version via fang.WithVersion() since fang overrides rootCmd.Version
	if err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			os.Exit(int(exitErr.Code))
		}
		os.Exit(1)
	}
}

// initRootConfig reads in config file and ENV variables if set.
func initRootConfig() {
	// Set custom config file path if provided via --config flag
	if cfgFile != "" {
		config.SetConfigFilePathOverride(cfgFile)
	}

	// Load configuration. Failures are recorded, not swallowed: running
	// the pipeline with the built-in defaults after the user's config was
	// rejected would execute the wrong argv.
	cfg, err := config.Load()
	rootCfgErr = err
	if cfg != nil {
		rootCfg = cfg
	}

	// Apply verbose from config if not set via flag
	if cfg != nil && !verbose {
		verbose = cfg.UI.Verbose
	}
}

// loadedConfig returns the configuration loaded at startup. When loading or
// validation failed it renders the config issue card to errw and returns the
// load error so the command exits non-zero.
func loadedConfig(errw io.Writer) (*config.Config, error) {
	if rootCfgErr != nil {
		fmt.Fprintln(errw, ErrorStyle.Render("Error: ")+formatErrorForDisplay(rootCfgErr, verbose))
		renderIssue(errw, issue.ConfigLoadFailedId)
		return nil, rootCfgErr
	}
	return rootCfg, nil
}

// newLogger creates the step logger for a subcommand. Verbose mode lowers
// the level to debug so skipped steps and tool resolution show up.
func newLogger(prefix string) *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		Prefix: prefix,
	})
	if verbose {
		logger.SetLevel(log.DebugLevel)
	}
	return logger
}

// formatErrorForDisplay formats an error for user display.
// If the error is an ActionableError, it uses the Format method.
// In verbose mode, shows the full error chain.
func formatErrorForDisplay(err error, verboseMode bool) string {
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		return ae.Format(verboseMode)
	}
	return err.Error()
}
