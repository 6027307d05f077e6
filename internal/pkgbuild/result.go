// SPDX-License-Identifier: MPL-2.0

package pkgbuild

import (
	"errors"
	"fmt"
	"strconv"
)

// ErrInvalidExitCode is the sentinel error wrapped by InvalidExitCodeError.
var ErrInvalidExitCode = errors.New("invalid exit code")

type (
	// ExitCode represents a process exit status code.
	// Exit codes are in the range 0-255 on POSIX systems.
	// The zero value (0) means success.
	ExitCode int

	// InvalidExitCodeError is returned when an ExitCode is outside the
	// valid range (0-255).
	InvalidExitCodeError struct {
		Value ExitCode
	}

	// Result is the outcome of a single pipeline step.
	Result struct {
		// Step is the step that produced this result.
		Step Step
		// ExitCode is the exit status of the external tool.
		ExitCode ExitCode
		// Error is set for infrastructure failures (tool missing, spawn
		// failure), never for plain non-zero exits.
		Error error
	}

	// StepError signals that an external tool exited non-zero. It carries
	// the tool's exit code so the CLI layer can propagate it as the
	// process exit status.
	StepError struct {
		Step Step
		Code ExitCode
	}
)

// Error implements the error interface.
func (e *InvalidExitCodeError) Error() string {
	return fmt.Sprintf("invalid exit code %d (must be in range 0-255)", e.Value)
}

// Unwrap returns ErrInvalidExitCode so callers can use errors.Is for programmatic detection.
func (e *InvalidExitCodeError) Unwrap() error { return ErrInvalidExitCode }

// IsValid returns whether the ExitCode is in the valid range (0-255),
// and a list of validation errors if it is not.
func (c ExitCode) IsValid() (bool, []error) {
	if c < 0 || c > 255 {
		return false, []error{&InvalidExitCodeError{Value: c}}
	}
	return true, nil
}

// IsSuccess returns true if the exit code indicates successful execution.
func (c ExitCode) IsSuccess() bool { return c == 0 }

// String returns the decimal string representation of the ExitCode.
func (c ExitCode) String() string { return strconv.Itoa(int(c)) }

// Error implements the error interface.
func (e *StepError) Error() string {
	return fmt.Sprintf("%s step failed with exit status %s", e.Step.Label, e.Code)
}

// Succeeded returns true if the step completed with exit code 0 and no
// infrastructure error.
func (r *Result) Succeeded() bool {
	return r.Error == nil && r.ExitCode.IsSuccess()
}

// Err converts the result into an error: nil on success, the infrastructure
// error if one occurred, otherwise a StepError carrying the exit code.
func (r *Result) Err() error {
	if r.Error != nil {
		return r.Error
	}
	if !r.ExitCode.IsSuccess() {
		return &StepError{Step: r.Step, Code: r.ExitCode}
	}
	return nil
}
