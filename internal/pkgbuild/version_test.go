// SPDX-License-Identifier: MPL-2.0

package pkgbuild

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"dreadfort-pkg/internal/issue"
)

func writeVersionFile(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "VERSION")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write version file: %v", err)
	}
	return path
}

func TestReadVersionFile(t *testing.T) {
	tests := []struct {
		name     string
		contents string
		want     string
	}{
		{name: "plain", contents: "1.2.3", want: "1.2.3"},
		{name: "trailing newline", contents: "1.2.3\n", want: "1.2.3"},
		{name: "crlf", contents: "1.2.3\r\n", want: "1.2.3"},
		{name: "multiple trailing newlines", contents: "1.2.3\n\n", want: "1.2.3"},
		// Only trailing newlines are stripped; everything else is verbatim.
		{name: "leading whitespace kept", contents: "  1.2.3\n", want: "  1.2.3"},
		{name: "empty file", contents: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeVersionFile(t, tt.contents)
			got, err := ReadVersionFile(path)
			if err != nil {
				t.Fatalf("ReadVersionFile() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("ReadVersionFile() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestReadVersionFile_Missing(t *testing.T) {
	_, err := ReadVersionFile(filepath.Join(t.TempDir(), "VERSION"))
	if err == nil {
		t.Fatal("ReadVersionFile() should fail for a missing file")
	}

	var ae *issue.ActionableError
	if !errors.As(err, &ae) {
		t.Fatalf("error should be an ActionableError, got %T", err)
	}
	if ae.Operation != "read version file" {
		t.Errorf("Operation = %q", ae.Operation)
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Error("underlying os.ErrNotExist should survive wrapping")
	}

	// Suggestions must only reference knobs that actually exist: the
	// version_file config option, not a CLI flag.
	for _, sug := range ae.Suggestions {
		if strings.Contains(sug, "--version-file") {
			t.Errorf("suggestion references a nonexistent flag: %q", sug)
		}
	}
	found := false
	for _, sug := range ae.Suggestions {
		if strings.Contains(sug, "version_file") {
			found = true
		}
	}
	if !found {
		t.Errorf("no suggestion mentions the version_file config option: %v", ae.Suggestions)
	}
}
