// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
	"strings"
)

const (
	// TargetDeb produces a Debian package.
	TargetDeb TargetFormat = "deb"
	// TargetRPM produces an RPM package. Supported by fpm; not the
	// default pipeline, but nothing downstream cares.
	TargetRPM TargetFormat = "rpm"

	// SourceTar feeds the packaging tool a tarball.
	SourceTar SourceKind = "tar"
	// SourceDir feeds the packaging tool a directory tree.
	SourceDir SourceKind = "dir"
)

var (
	// ErrInvalidTargetFormat is returned when a TargetFormat value is not recognized.
	ErrInvalidTargetFormat = errors.New("invalid target format")
	// ErrInvalidSourceKind is returned when a SourceKind value is not recognized.
	ErrInvalidSourceKind = errors.New("invalid source kind")
	// ErrInvalidToolPath is returned when a ToolPath value is empty or whitespace-only.
	ErrInvalidToolPath = errors.New("invalid tool path")
	// ErrInvalidHookPath is returned when a hook script path is empty or whitespace-only.
	ErrInvalidHookPath = errors.New("invalid hook script path")
	// ErrInvalidProjectName is returned when the project name is empty or whitespace-only.
	ErrInvalidProjectName = errors.New("invalid project name")
	// ErrInvalidPackageConfig is the sentinel error wrapped by InvalidPackageConfigError.
	ErrInvalidPackageConfig = errors.New("invalid package config")
	// ErrInvalidBuildConfig is the sentinel error wrapped by InvalidBuildConfigError.
	ErrInvalidBuildConfig = errors.New("invalid build config")
	// ErrInvalidConfig is the sentinel error wrapped by InvalidConfigError.
	ErrInvalidConfig = errors.New("invalid config")
)

type (
	// TargetFormat is the package type handed to the packaging tool's -t flag.
	TargetFormat string

	// InvalidTargetFormatError is returned when a TargetFormat value is not
	// recognized. It wraps ErrInvalidTargetFormat for errors.Is() compatibility.
	InvalidTargetFormatError struct {
		Value TargetFormat
	}

	// SourceKind is the input kind handed to the packaging tool's -s flag.
	SourceKind string

	// InvalidSourceKindError is returned when a SourceKind value is not
	// recognized. It wraps ErrInvalidSourceKind for errors.Is() compatibility.
	InvalidSourceKindError struct {
		Value SourceKind
	}

	// ToolPath is a path or PATH-resolvable name of an external tool.
	// A valid value must be non-empty and not whitespace-only.
	ToolPath string

	// InvalidToolPathError is returned when a ToolPath value is empty or
	// whitespace-only. It wraps ErrInvalidToolPath for errors.Is() compatibility.
	InvalidToolPathError struct {
		Value ToolPath
	}

	// HookPath is a path to an install/remove hook script. A valid value
	// must be non-empty and not whitespace-only; existence is checked at
	// preflight time, not here.
	HookPath string

	// InvalidHookPathError is returned when a HookPath value is empty or
	// whitespace-only. It wraps ErrInvalidHookPath for errors.Is() compatibility.
	InvalidHookPathError struct {
		Value HookPath
	}

	// InvalidProjectNameError is returned when the project name is empty or
	// whitespace-only. It wraps ErrInvalidProjectName for errors.Is() compatibility.
	InvalidProjectNameError struct {
		Value string
	}

	// InvalidBuildConfigError is returned when a BuildConfig has invalid fields.
	// It wraps ErrInvalidBuildConfig for errors.Is() compatibility and collects
	// field-level validation errors.
	InvalidBuildConfigError struct {
		FieldErrors []error
	}

	// InvalidPackageConfigError is returned when a PackageConfig has invalid fields.
	// It wraps ErrInvalidPackageConfig for errors.Is() compatibility and collects
	// field-level validation errors.
	InvalidPackageConfigError struct {
		FieldErrors []error
	}

	// InvalidConfigError is returned when a Config has invalid fields.
	// It wraps ErrInvalidConfig for errors.Is() compatibility and collects
	// field-level validation errors from all sub-components.
	InvalidConfigError struct {
		FieldErrors []error
	}

	// BuildConfig configures the build step.
	BuildConfig struct {
		// Tool is the build command, invoked as `<tool> <project_name>`.
		Tool ToolPath `json:"tool" mapstructure:"tool"`
	}

	// PackageConfig configures the packaging step.
	PackageConfig struct {
		// Tool is the packaging command (fpm).
		Tool ToolPath `json:"tool" mapstructure:"tool"`
		// Target is the package type handed to -t.
		Target TargetFormat `json:"target" mapstructure:"target"`
		// Source is the input kind handed to -s.
		Source SourceKind `json:"source" mapstructure:"source"`
		// Depends are the -d dependency declarations, in order.
		Depends []string `json:"depends" mapstructure:"depends"`
		// PostInstall is the --after-install hook script path.
		PostInstall HookPath `json:"post_install" mapstructure:"post_install"`
		// PostRemove is the --after-remove hook script path.
		PostRemove HookPath `json:"post_remove" mapstructure:"post_remove"`
	}

	// UIConfig configures the user interface.
	UIConfig struct {
		// Verbose enables verbose output
		Verbose bool `json:"verbose" mapstructure:"verbose"`
	}

	// Config holds the application configuration. The defaults reproduce
	// the historical packaging script byte for byte; every field exists so
	// one of its literals can be overridden.
	Config struct {
		// ProjectName is the package name and the build tool's argument.
		ProjectName string `json:"project_name" mapstructure:"project_name"`
		// VersionFile is the file whose contents become the version string.
		VersionFile string `json:"version_file" mapstructure:"version_file"`
		// Build configures the build step.
		Build BuildConfig `json:"build" mapstructure:"build"`
		// Package configures the packaging step.
		Package PackageConfig `json:"pkg" mapstructure:"pkg"`
		// UI configures the user interface.
		UI UIConfig `json:"ui" mapstructure:"ui"`
	}
)

// DefaultConfig returns the configuration matching the original dreadfort
// packaging script.
func DefaultConfig() *Config {
	return &Config{
		ProjectName: "dreadfort",
		VersionFile: "VERSION",
		Build: BuildConfig{
			Tool: "./build.sh",
		},
		Package: PackageConfig{
			Tool:        "fpm",
			Target:      TargetDeb,
			Source:      SourceTar,
			Depends:     []string{"python2.7", "python-pip"},
			PostInstall: "pkg/post_install.deb.sh",
			PostRemove:  "pkg/post_remove.deb.sh",
		},
		UI: UIConfig{},
	}
}

// String returns the string representation of the TargetFormat.
func (f TargetFormat) String() string { return string(f) }

// IsValid returns whether the TargetFormat is one of the recognized values.
func (f TargetFormat) IsValid() (bool, []error) {
	switch f {
	case TargetDeb, TargetRPM:
		return true, nil
	default:
		return false, []error{&InvalidTargetFormatError{Value: f}}
	}
}

// Error implements the error interface for InvalidTargetFormatError.
func (e *InvalidTargetFormatError) Error() string {
	return fmt.Sprintf("invalid target format %q (valid: %q, %q)", e.Value, TargetDeb, TargetRPM)
}

// Unwrap returns ErrInvalidTargetFormat for errors.Is() compatibility.
func (e *InvalidTargetFormatError) Unwrap() error { return ErrInvalidTargetFormat }

// String returns the string representation of the SourceKind.
func (k SourceKind) String() string { return string(k) }

// IsValid returns whether the SourceKind is one of the recognized values.
func (k SourceKind) IsValid() (bool, []error) {
	switch k {
	case SourceTar, SourceDir:
		return true, nil
	default:
		return false, []error{&InvalidSourceKindError{Value: k}}
	}
}

// Error implements the error interface for InvalidSourceKindError.
func (e *InvalidSourceKindError) Error() string {
	return fmt.Sprintf("invalid source kind %q (valid: %q, %q)", e.Value, SourceTar, SourceDir)
}

// Unwrap returns ErrInvalidSourceKind for errors.Is() compatibility.
func (e *InvalidSourceKindError) Unwrap() error { return ErrInvalidSourceKind }

// String returns the string representation of the ToolPath.
func (p ToolPath) String() string { return string(p) }

// IsValid returns whether the ToolPath is valid.
// A valid value must be non-empty and not whitespace-only.
func (p ToolPath) IsValid() (bool, []error) {
	if strings.TrimSpace(string(p)) == "" {
		return false, []error{&InvalidToolPathError{Value: p}}
	}
	return true, nil
}

// Error implements the error interface for InvalidToolPathError.
func (e *InvalidToolPathError) Error() string {
	return fmt.Sprintf("invalid tool path %q: must be non-empty", e.Value)
}

// Unwrap returns ErrInvalidToolPath for errors.Is() compatibility.
func (e *InvalidToolPathError) Unwrap() error { return ErrInvalidToolPath }

// String returns the string representation of the HookPath.
func (p HookPath) String() string { return string(p) }

// IsValid returns whether the HookPath is valid.
// A valid value must be non-empty and not whitespace-only.
func (p HookPath) IsValid() (bool, []error) {
	if strings.TrimSpace(string(p)) == "" {
		return false, []error{&InvalidHookPathError{Value: p}}
	}
	return true, nil
}

// Error implements the error interface for InvalidHookPathError.
func (e *InvalidHookPathError) Error() string {
	return fmt.Sprintf("invalid hook script path %q: must be non-empty", e.Value)
}

// Unwrap returns ErrInvalidHookPath for errors.Is() compatibility.
func (e *InvalidHookPathError) Unwrap() error { return ErrInvalidHookPath }

// Error implements the error interface for InvalidProjectNameError.
func (e *InvalidProjectNameError) Error() string {
	return fmt.Sprintf("invalid project name %q: must be non-empty", e.Value)
}

// Unwrap returns ErrInvalidProjectName for errors.Is() compatibility.
func (e *InvalidProjectNameError) Unwrap() error { return ErrInvalidProjectName }

// IsValid returns whether the BuildConfig has valid fields.
func (c BuildConfig) IsValid() (bool, []error) {
	var errs []error
	if valid, fieldErrs := c.Tool.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if len(errs) > 0 {
		return false, []error{&InvalidBuildConfigError{FieldErrors: errs}}
	}
	return true, nil
}

// Error implements the error interface for InvalidBuildConfigError.
func (e *InvalidBuildConfigError) Error() string {
	return fmt.Sprintf("invalid build config: %d field error(s)", len(e.FieldErrors))
}

// Unwrap returns ErrInvalidBuildConfig for errors.Is() compatibility.
func (e *InvalidBuildConfigError) Unwrap() error { return ErrInvalidBuildConfig }

// IsValid returns whether the PackageConfig has valid fields.
// It delegates to Tool, Target, Source, and both hook paths. Depends needs
// no validation: any list (including empty) is passed through as-is.
func (c PackageConfig) IsValid() (bool, []error) {
	var errs []error
	if valid, fieldErrs := c.Tool.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if valid, fieldErrs := c.Target.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if valid, fieldErrs := c.Source.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if valid, fieldErrs := c.PostInstall.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if valid, fieldErrs := c.PostRemove.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if len(errs) > 0 {
		return false, []error{&InvalidPackageConfigError{FieldErrors: errs}}
	}
	return true, nil
}

// Error implements the error interface for InvalidPackageConfigError.
func (e *InvalidPackageConfigError) Error() string {
	return fmt.Sprintf("invalid package config: %d field error(s)", len(e.FieldErrors))
}

// Unwrap returns ErrInvalidPackageConfig for errors.Is() compatibility.
func (e *InvalidPackageConfigError) Unwrap() error { return ErrInvalidPackageConfig }

// IsValid returns whether the Config has valid fields.
// It delegates to ProjectName, VersionFile, Build, and Package checks.
// UI has only bool fields and needs no validation.
func (c Config) IsValid() (bool, []error) {
	var errs []error
	if strings.TrimSpace(c.ProjectName) == "" {
		errs = append(errs, &InvalidProjectNameError{Value: c.ProjectName})
	}
	if strings.TrimSpace(c.VersionFile) == "" {
		errs = append(errs, fmt.Errorf("version_file must be non-empty"))
	}
	if valid, fieldErrs := c.Build.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if valid, fieldErrs := c.Package.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if len(errs) > 0 {
		return false, []error{&InvalidConfigError{FieldErrors: errs}}
	}
	return true, nil
}

// Error implements the error interface for InvalidConfigError.
func (e *InvalidConfigError) Error() string {
	return fmt.Sprintf("invalid config: %d field error(s)", len(e.FieldErrors))
}

// Unwrap returns ErrInvalidConfig for errors.Is() compatibility.
func (e *InvalidConfigError) Unwrap() error { return ErrInvalidConfig }
