// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"

	"dreadfort-pkg/internal/config"
	"dreadfort-pkg/internal/pkgbuild"

	"github.com/spf13/cobra"
)

var (
	packageDryRun    bool
	packagePreflight bool
	packageSkipBuild bool

	// packageCmd runs the whole pipeline: build tool, then fpm.
	packageCmd = &cobra.Command{
		Use:   "package",
		Short: "Build the project and package it with fpm",
		Long: `Build the project and package it with fpm.

Reads the version file, runs the build tool with the project name as its
single argument, then invokes fpm on the resulting tarball. The packaging
step never runs if the build step fails; the process exits with the
failing tool's exit code.`,
		Args: cobra.NoArgs,
		RunE: runPackage,
	}
)

func init() {
	packageCmd.Flags().BoolVar(&packageDryRun, "dry-run", false, "print the commands without running them")
	packageCmd.Flags().BoolVar(&packagePreflight, "preflight", false, "validate hook scripts and tool paths before running")
	packageCmd.Flags().BoolVar(&packageSkipBuild, "skip-build", false, "run only the packaging step")
}

// specFromConfig maps the loaded configuration plus the version string onto
// the plan input.
func specFromConfig(cfg *config.Config, version string) pkgbuild.Spec {
	return pkgbuild.Spec{
		ProjectName: cfg.ProjectName,
		Version:     version,
		BuildTool:   cfg.Build.Tool.String(),
		PackageTool: cfg.Package.Tool.String(),
		Target:      cfg.Package.Target.String(),
		SourceKind:  cfg.Package.Source.String(),
		Depends:     cfg.Package.Depends,
		PostInstall: cfg.Package.PostInstall.String(),
		PostRemove:  cfg.Package.PostRemove.String(),
	}
}

// resolvePlan reads the version file and constructs the pipeline plan from
// the effective configuration.
func resolvePlan(cfg *config.Config) (*pkgbuild.Plan, error) {
	version, err := pkgbuild.ReadVersionFile(cfg.VersionFile)
	if err != nil {
		return nil, err
	}
	return pkgbuild.NewPlan(specFromConfig(cfg, version)), nil
}

func runPackage(cmd *cobra.Command, args []string) error {
	cfg, err := loadedConfig(cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	plan, err := resolvePlan(cfg)
	if err != nil {
		return err
	}

	runner := pkgbuild.NewRunner()
	runner.SkipBuild = packageSkipBuild
	runner.Logger = newLogger("package")

	if packageDryRun {
		runner.Stdout = cmd.OutOrStdout()
		runner.DryRun(plan)
		return nil
	}

	if packagePreflight {
		if err := runner.LookupTools(plan); err != nil {
			return err
		}
		if err := pkgbuild.ValidateHooks("", plan.Spec); err != nil {
			return err
		}
	}

	if err := runner.Run(cmd.Context(), plan); err != nil {
		var stepErr *pkgbuild.StepError
		if errors.As(err, &stepErr) {
			fmt.Fprintln(cmd.ErrOrStderr(), ErrorStyle.Render("Error: ")+err.Error())
			return &ExitError{Code: stepErr.Code, Err: err}
		}
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s Packaged %s\n",
		SuccessStyle.Render("✓"), CmdStyle.Render(plan.Spec.ArtifactHint()))
	return nil
}
