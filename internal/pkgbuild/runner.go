// SPDX-License-Identifier: MPL-2.0

package pkgbuild

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"dreadfort-pkg/internal/issue"

	"github.com/charmbracelet/log"
)

// Runner executes a Plan: the build step, then the packaging step, strictly
// in sequence. The packaging step never runs if the build step fails. There
// are no retries and no cleanup; whatever the tools leave on disk stays.
type Runner struct {
	// Dir is the working directory for both tools. Empty means the
	// process working directory.
	Dir string
	// Stdout and Stderr receive the tools' output. Nil defaults to the
	// process streams.
	Stdout io.Writer
	Stderr io.Writer
	// Stdin is handed to the tools unchanged. Nil defaults to the process
	// stdin.
	Stdin io.Reader
	// SkipBuild runs only the packaging step.
	SkipBuild bool
	// Logger receives step start/finish lines. Nil disables step logging.
	Logger *log.Logger
}

// NewRunner creates a Runner wired to the process stdio.
func NewRunner() *Runner {
	return &Runner{
		Stdout: os.Stdout,
		Stderr: os.Stderr,
		Stdin:  os.Stdin,
	}
}

// Run executes the plan's steps in order and stops at the first failure.
// A non-zero tool exit comes back as *StepError carrying the tool's code;
// spawn failures come back as actionable errors.
func (r *Runner) Run(ctx context.Context, plan *Plan) error {
	for _, step := range plan.Steps() {
		if r.SkipBuild && step.Label == StepLabelBuild {
			if r.Logger != nil {
				r.Logger.Debug("skipping step", "step", step.Label)
			}
			continue
		}
		if err := r.runStep(ctx, step); err != nil {
			return err
		}
	}
	return nil
}

// DryRun writes the plan's argument vectors to Stdout without executing
// anything or touching the filesystem.
func (r *Runner) DryRun(plan *Plan) {
	fmt.Fprintln(r.stdout(), plan.String())
}

// runStep spawns one external tool and waits for it.
func (r *Runner) runStep(ctx context.Context, step Step) error {
	if r.Logger != nil {
		r.Logger.Info("running step", "step", step.Label, "cmd", strings.Join(step.Argv, " "))
	}

	result := r.execute(ctx, step)

	if r.Logger != nil && result.Error == nil {
		r.Logger.Info("step finished", "step", step.Label, "exit", result.ExitCode.String())
	}

	return result.Err()
}

// execute runs the step's argv and maps the outcome onto a Result.
// A *exec.ExitError is a normal tool failure (exit code preserved); anything
// else is an infrastructure failure.
func (r *Runner) execute(ctx context.Context, step Step) *Result {
	cmd := exec.CommandContext(ctx, step.Argv[0], step.Argv[1:]...)
	cmd.Dir = r.Dir
	cmd.Stdout = r.stdout()
	cmd.Stderr = r.stderr()
	cmd.Stdin = r.Stdin

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return &Result{Step: step, ExitCode: ExitCode(exitErr.ExitCode())}
		}
		return &Result{
			Step:     step,
			ExitCode: 1,
			Error: issue.NewErrorContext().
				WithOperation(fmt.Sprintf("run %s tool", step.Label)).
				WithResource(step.Argv[0]).
				WithSuggestion("Check that the tool is installed and on your PATH").
				WithSuggestion("Run 'dreadfort-pkg check' to diagnose the environment").
				Wrap(err).
				BuildError(),
		}
	}

	return &Result{Step: step}
}

// LookupTools resolves both tool binaries without running anything. Relative
// paths containing a separator resolve against Dir; bare names resolve via
// PATH. Used by `check` and as a preflight before Run.
func (r *Runner) LookupTools(plan *Plan) error {
	for _, step := range plan.Steps() {
		if r.SkipBuild && step.Label == StepLabelBuild {
			continue
		}
		if err := r.LookupTool(step); err != nil {
			return err
		}
	}
	return nil
}

// LookupTool resolves a single step's tool binary.
func (r *Runner) LookupTool(step Step) error {
	tool := step.Argv[0]

	lookupErr := func(err error) error {
		return issue.NewErrorContext().
			WithOperation(fmt.Sprintf("resolve %s tool", step.Label)).
			WithResource(tool).
			WithSuggestion("Check that the tool is installed and on your PATH").
			WithSuggestion("Adjust the tool path in config.cue if it lives elsewhere").
			Wrap(err).
			BuildError()
	}

	if strings.ContainsRune(tool, os.PathSeparator) {
		path := tool
		if !strings.HasPrefix(path, string(os.PathSeparator)) && r.Dir != "" {
			path = r.Dir + string(os.PathSeparator) + path
		}
		info, err := os.Stat(path)
		if err != nil {
			return lookupErr(err)
		}
		if info.IsDir() {
			return lookupErr(fmt.Errorf("%s is a directory", path))
		}
		return nil
	}

	if _, err := exec.LookPath(tool); err != nil {
		return lookupErr(err)
	}
	return nil
}

func (r *Runner) stdout() io.Writer {
	if r.Stdout != nil {
		return r.Stdout
	}
	return os.Stdout
}

func (r *Runner) stderr() io.Writer {
	if r.Stderr != nil {
		return r.Stderr
	}
	return os.Stderr
}
