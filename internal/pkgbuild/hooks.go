// SPDX-License-Identifier: MPL-2.0

package pkgbuild

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"dreadfort-pkg/internal/issue"

	"mvdan.cc/sh/v3/syntax"
)

// ValidateHookScript checks that a hook script exists and parses as POSIX
// shell. The packaging tool bakes the script into the package verbatim, so a
// syntax error only surfaces at install time on the target machine; this
// catches it before the package is assembled.
func ValidateHookScript(dir, path string) error {
	resolved := path
	if !filepath.IsAbs(resolved) && dir != "" {
		resolved = filepath.Join(dir, path)
	}

	data, err := os.ReadFile(resolved)
	if err != nil {
		return issue.NewErrorContext().
			WithOperation("read hook script").
			WithResource(path).
			WithSuggestion("Restore the script from version control").
			WithSuggestion("Point at a different script in config.cue").
			Wrap(err).
			BuildError()
	}

	if _, err := syntax.NewParser().Parse(strings.NewReader(string(data)), path); err != nil {
		return issue.NewErrorContext().
			WithOperation("validate hook script").
			WithResource(path).
			WithSuggestion("Check the reported line with 'sh -n " + path + "'").
			Wrap(fmt.Errorf("script syntax error: %w", err)).
			BuildError()
	}

	return nil
}

// ValidateHooks runs ValidateHookScript over both hook scripts of the spec.
func ValidateHooks(dir string, spec Spec) error {
	for _, hook := range []string{spec.PostInstall, spec.PostRemove} {
		if err := ValidateHookScript(dir, hook); err != nil {
			return err
		}
	}
	return nil
}
