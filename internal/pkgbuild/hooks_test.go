// SPDX-License-Identifier: MPL-2.0

package pkgbuild

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"dreadfort-pkg/internal/issue"
)

func writeHook(t *testing.T, dir, rel, contents string) {
	t.Helper()
	path := filepath.Join(dir, rel)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(contents), 0o755); err != nil {
		t.Fatalf("write hook: %v", err)
	}
}

func TestValidateHookScript(t *testing.T) {
	tests := []struct {
		name     string
		contents string
		wantErr  bool
	}{
		{
			name:     "valid script",
			contents: "#!/bin/sh\npip install dreadfort\nservice dreadfort restart\n",
			wantErr:  false,
		},
		{
			name:     "empty script",
			contents: "",
			wantErr:  false,
		},
		{
			name:     "unterminated quote",
			contents: "#!/bin/sh\necho \"unterminated\n",
			wantErr:  true,
		},
		{
			name:     "dangling then",
			contents: "if true; then\n",
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			writeHook(t, dir, "pkg/post_install.deb.sh", tt.contents)

			err := ValidateHookScript(dir, "pkg/post_install.deb.sh")
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateHookScript() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateHookScript_Missing(t *testing.T) {
	err := ValidateHookScript(t.TempDir(), "pkg/post_install.deb.sh")
	if err == nil {
		t.Fatal("ValidateHookScript() should fail for a missing script")
	}

	var ae *issue.ActionableError
	if !errors.As(err, &ae) {
		t.Fatalf("error should be an ActionableError, got %T", err)
	}
	if ae.Operation != "read hook script" {
		t.Errorf("Operation = %q", ae.Operation)
	}
}

func TestValidateHooks(t *testing.T) {
	dir := t.TempDir()
	writeHook(t, dir, "pkg/post_install.deb.sh", "#!/bin/sh\ntrue\n")
	writeHook(t, dir, "pkg/post_remove.deb.sh", "#!/bin/sh\ntrue\n")

	if err := ValidateHooks(dir, testSpec()); err != nil {
		t.Errorf("ValidateHooks() error = %v", err)
	}

	// Break the second hook; validation must report it.
	writeHook(t, dir, "pkg/post_remove.deb.sh", "while true; do\n")
	if err := ValidateHooks(dir, testSpec()); err == nil {
		t.Error("ValidateHooks() should fail when a hook has a syntax error")
	}
}
