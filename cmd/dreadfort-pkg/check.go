// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"dreadfort-pkg/internal/issue"
	"dreadfort-pkg/internal/pkgbuild"

	"github.com/spf13/cobra"
)

// checkCmd diagnoses the packaging environment without running the tools.
var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Diagnose the packaging environment",
	Long: `Diagnose the packaging environment.

Verifies everything 'package' needs before it runs: the version file is
readable, the build and packaging tools resolve, and the install/remove
hook scripts exist and parse as shell. The source tarball is reported as
a warning only since the build step normally produces it.

Exits non-zero if any blocking check fails.`,
	Args: cobra.NoArgs,
	RunE: runCheck,
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg, err := loadedConfig(cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	blocking := 0

	pass := func(msg string) {
		fmt.Fprintf(out, "%s %s\n", SuccessStyle.Render("✓"), msg)
	}
	warn := func(msg string) {
		fmt.Fprintf(out, "%s %s\n", WarningStyle.Render("!"), msg)
	}
	fail := func(msg string, id issue.Id) {
		blocking++
		fmt.Fprintf(out, "%s %s\n", ErrorStyle.Render("✗"), msg)
		renderIssue(out, id)
	}

	fmt.Fprintln(out, TitleStyle.Render("dreadfort-pkg environment check"))
	fmt.Fprintln(out)

	// Version file. Later checks still run with a placeholder version so a
	// single missing file doesn't hide unrelated problems.
	version, err := pkgbuild.ReadVersionFile(cfg.VersionFile)
	if err != nil {
		fail(fmt.Sprintf("version file %s is not readable", cfg.VersionFile), issue.VersionFileMissingId)
		version = "0.0.0"
	} else {
		pass(fmt.Sprintf("version file %s (version %q)", cfg.VersionFile, version))
	}

	plan := pkgbuild.NewPlan(specFromConfig(cfg, version))
	runner := pkgbuild.NewRunner()
	runner.Logger = newLogger("check")

	if err := runner.LookupTool(plan.Build); err != nil {
		fail(fmt.Sprintf("build tool %s not resolvable", plan.Build.Argv[0]), issue.BuildToolNotFoundId)
	} else {
		pass(fmt.Sprintf("build tool %s", plan.Build.Argv[0]))
	}

	if err := runner.LookupTool(plan.Package); err != nil {
		fail(fmt.Sprintf("packaging tool %s not resolvable", plan.Package.Argv[0]), issue.PackagingToolNotFoundId)
	} else {
		pass(fmt.Sprintf("packaging tool %s", plan.Package.Argv[0]))
	}

	for _, hook := range []string{plan.Spec.PostInstall, plan.Spec.PostRemove} {
		if err := pkgbuild.ValidateHookScript("", hook); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				fail(fmt.Sprintf("hook script %s is missing", hook), issue.HookScriptMissingId)
			} else {
				fail(fmt.Sprintf("hook script %s does not parse: %v", hook, err), issue.HookScriptInvalidId)
			}
		} else {
			pass(fmt.Sprintf("hook script %s", hook))
		}
	}

	// The build step normally produces the tarball, so its absence is only
	// a problem for `package --skip-build`.
	archive := plan.Spec.SourceArchive()
	if _, err := os.Stat(archive); err != nil {
		warn(fmt.Sprintf("source archive %s not present (the build step creates it)", archive))
		renderIssue(out, issue.SourceArchiveMissingId)
	} else {
		pass(fmt.Sprintf("source archive %s", archive))
	}

	fmt.Fprintln(out)
	if blocking > 0 {
		fmt.Fprintln(out, ErrorStyle.Render(fmt.Sprintf("%d blocking check(s) failed", blocking)))
		return &ExitError{Code: 1, Err: fmt.Errorf("%d blocking check(s) failed", blocking)}
	}
	fmt.Fprintln(out, SuccessStyle.Render("All checks passed"))
	return nil
}

// renderIssue prints the markdown issue card for a failed check. Rendering
// problems degrade to the raw markdown rather than hiding the guidance.
func renderIssue(w io.Writer, id issue.Id) {
	iss := issue.Get(id)
	if iss == nil {
		return
	}
	rendered, err := iss.Render("dark")
	if err != nil {
		fmt.Fprintln(w, string(iss.MarkdownMsg()))
		return
	}
	fmt.Fprint(w, rendered)
}
