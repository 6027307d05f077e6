// SPDX-License-Identifier: MPL-2.0

package pkgbuild

import (
	"fmt"
	"strings"
)

type (
	// Spec holds the resolved inputs for plan construction. The cmd layer
	// maps config onto it so pkgbuild stays decoupled from the config
	// package.
	Spec struct {
		// ProjectName is the package name and the single argument passed
		// to the build tool.
		ProjectName string
		// Version is the version string read from the version file.
		Version string
		// BuildTool is the build command invoked as `<tool> <name>`.
		BuildTool string
		// PackageTool is the packaging command (fpm).
		PackageTool string
		// Target is the package type handed to -t (deb).
		Target string
		// SourceKind is the input kind handed to -s (tar).
		SourceKind string
		// Depends are the -d dependency declarations, in order.
		Depends []string
		// PostInstall is the --after-install hook script path.
		PostInstall string
		// PostRemove is the --after-remove hook script path.
		PostRemove string
	}

	// Step is one external command invocation: the argv plus a short label
	// for logging and error messages.
	Step struct {
		Label string
		Argv  []string
	}

	// Plan is the fully resolved pipeline: the build step followed by the
	// packaging step. Construction is pure; nothing is executed or checked
	// against the filesystem until Runner.Run.
	Plan struct {
		Spec    Spec
		Build   Step
		Package Step
	}
)

// StepLabelBuild and StepLabelPackage identify the two pipeline steps.
const (
	StepLabelBuild   = "build"
	StepLabelPackage = "package"
)

// SourceArchive returns the tarball path the packaging tool consumes,
// `<name>_<version>.tar.gz`.
func (s Spec) SourceArchive() string {
	return fmt.Sprintf("%s_%s.tar.gz", s.ProjectName, s.Version)
}

// ArtifactHint returns the `<name>_<version>` stem the packaging tool derives
// its output name from. The exact artifact name and location belong to the
// tool, not to us.
func (s Spec) ArtifactHint() string {
	return fmt.Sprintf("%s_%s", s.ProjectName, s.Version)
}

// NewPlan constructs the two argument vectors for the given spec.
// Identical specs always produce identical plans.
func NewPlan(spec Spec) *Plan {
	buildArgv := []string{spec.BuildTool, spec.ProjectName}

	pkgArgv := []string{spec.PackageTool}
	for _, dep := range spec.Depends {
		pkgArgv = append(pkgArgv, "-d", dep)
	}
	pkgArgv = append(pkgArgv,
		"-v", spec.Version,
		"-n", spec.ProjectName,
		"-t", spec.Target,
		"--after-install", spec.PostInstall,
		"--after-remove", spec.PostRemove,
		"-s", spec.SourceKind,
		spec.SourceArchive(),
	)

	return &Plan{
		Spec:    spec,
		Build:   Step{Label: StepLabelBuild, Argv: buildArgv},
		Package: Step{Label: StepLabelPackage, Argv: pkgArgv},
	}
}

// Steps returns the pipeline steps in execution order.
func (p *Plan) Steps() []Step {
	return []Step{p.Build, p.Package}
}

// String renders one step per line, shell-quoted only where an argument
// contains whitespace. Used by `plan` and `package --dry-run`.
func (p *Plan) String() string {
	var b strings.Builder
	for i, step := range p.Steps() {
		if i > 0 {
			b.WriteString("\n")
		}
		for j, arg := range step.Argv {
			if j > 0 {
				b.WriteString(" ")
			}
			if strings.ContainsAny(arg, " \t") {
				b.WriteString(fmt.Sprintf("%q", arg))
			} else {
				b.WriteString(arg)
			}
		}
	}
	return b.String()
}
