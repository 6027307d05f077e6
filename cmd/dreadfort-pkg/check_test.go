// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"dreadfort-pkg/internal/config"
)

// setupCheckEnv lays out a working directory where every check passes:
// VERSION file, stub tools, parseable hook scripts and the source tarball.
func setupCheckEnv(t *testing.T) *config.Config {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)

	if err := os.WriteFile("VERSION", []byte("4.8.0\n"), 0o644); err != nil {
		t.Fatalf("WriteFile(VERSION) error = %v", err)
	}
	if err := os.MkdirAll(filepath.Join(dir, "pkg"), 0o755); err != nil {
		t.Fatalf("MkdirAll(pkg) error = %v", err)
	}
	for _, hook := range []string{"pkg/post_install.deb.sh", "pkg/post_remove.deb.sh"} {
		if err := os.WriteFile(hook, []byte("#!/bin/sh\nexit 0\n"), 0o755); err != nil {
			t.Fatalf("WriteFile(%s) error = %v", hook, err)
		}
	}
	if err := os.WriteFile("dreadfort_4.8.0.tar.gz", []byte("tar"), 0o644); err != nil {
		t.Fatalf("WriteFile(tarball) error = %v", err)
	}

	cfg := config.DefaultConfig()
	cfg.Build.Tool = config.ToolPath(writeExitScript(t, dir, "build.sh", 0))
	cfg.Package.Tool = config.ToolPath(writeExitScript(t, dir, "fpm.sh", 0))
	return cfg
}

func TestRunCheck(t *testing.T) {
	// Not parallel: changes the working directory and the loaded config.

	t.Run("all checks pass", func(t *testing.T) {
		withRootConfig(t, setupCheckEnv(t))

		var buf bytes.Buffer
		checkCmd.SetOut(&buf)
		t.Cleanup(func() { checkCmd.SetOut(nil) })

		if err := runCheck(checkCmd, nil); err != nil {
			t.Fatalf("runCheck() error = %v\noutput:\n%s", err, buf.String())
		}
		if !strings.Contains(buf.String(), "All checks passed") {
			t.Errorf("output missing pass summary:\n%s", buf.String())
		}
	})

	t.Run("missing version file is blocking", func(t *testing.T) {
		cfg := setupCheckEnv(t)
		if err := os.Remove("VERSION"); err != nil {
			t.Fatalf("Remove(VERSION) error = %v", err)
		}
		withRootConfig(t, cfg)

		var buf bytes.Buffer
		checkCmd.SetOut(&buf)
		t.Cleanup(func() { checkCmd.SetOut(nil) })

		err := runCheck(checkCmd, nil)
		if err == nil {
			t.Fatal("runCheck() error = nil, want blocking failure")
		}
		var exitErr *ExitError
		if !errors.As(err, &exitErr) {
			t.Fatalf("runCheck() error = %T, want *ExitError", err)
		}
		if exitErr.Code != 1 {
			t.Errorf("exit code = %d, want 1", exitErr.Code)
		}
		if !strings.Contains(buf.String(), "not readable") {
			t.Errorf("output missing version file failure:\n%s", buf.String())
		}
	})

	t.Run("unparseable hook is blocking", func(t *testing.T) {
		cfg := setupCheckEnv(t)
		if err := os.WriteFile("pkg/post_install.deb.sh", []byte("if true; then\n"), 0o755); err != nil {
			t.Fatalf("WriteFile(hook) error = %v", err)
		}
		withRootConfig(t, cfg)

		var buf bytes.Buffer
		checkCmd.SetOut(&buf)
		t.Cleanup(func() { checkCmd.SetOut(nil) })

		if err := runCheck(checkCmd, nil); err == nil {
			t.Fatal("runCheck() error = nil, want blocking failure")
		}
		if !strings.Contains(buf.String(), "does not parse") {
			t.Errorf("output missing hook parse failure:\n%s", buf.String())
		}
	})

	t.Run("missing tarball is a warning only", func(t *testing.T) {
		cfg := setupCheckEnv(t)
		if err := os.Remove("dreadfort_4.8.0.tar.gz"); err != nil {
			t.Fatalf("Remove(tarball) error = %v", err)
		}
		withRootConfig(t, cfg)

		var buf bytes.Buffer
		checkCmd.SetOut(&buf)
		t.Cleanup(func() { checkCmd.SetOut(nil) })

		if err := runCheck(checkCmd, nil); err != nil {
			t.Fatalf("runCheck() error = %v, want nil for warning-only failure", err)
		}
		if !strings.Contains(buf.String(), "not present") {
			t.Errorf("output missing tarball warning:\n%s", buf.String())
		}
		// The warning comes with the guidance card, not just one line.
		if !strings.Contains(buf.String(), "skip-build") {
			t.Errorf("output missing the archive guidance card:\n%s", buf.String())
		}
	})
}
