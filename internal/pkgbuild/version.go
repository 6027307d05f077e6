// SPDX-License-Identifier: MPL-2.0

package pkgbuild

import (
	"os"
	"strings"

	"dreadfort-pkg/internal/issue"
)

// ReadVersionFile reads the project version from the given file.
//
// The contents are taken verbatim except for trailing newlines, which are
// stripped the same way shell command substitution strips them. No further
// trimming, parsing, or validation happens: an empty file yields an empty
// version string and the packaging tool is left to complain about it.
func ReadVersionFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", issue.NewErrorContext().
			WithOperation("read version file").
			WithResource(path).
			WithSuggestion("Create the file with the release version as its only line").
			WithSuggestion("Set the version_file option in config.cue if the file lives somewhere else").
			Wrap(err).
			BuildError()
	}
	return strings.TrimRight(string(data), "\r\n"), nil
}
