// SPDX-License-Identifier: MPL-2.0

package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func writeConfigFile(t *testing.T, dir, contents string) string {
	t.Helper()
	path := filepath.Join(dir, ConfigFileName+"."+ConfigFileExt)
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write config file: %v", err)
	}
	return path
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.ProjectName != "dreadfort" {
		t.Errorf("ProjectName = %q, want %q", cfg.ProjectName, "dreadfort")
	}
	if cfg.VersionFile != "VERSION" {
		t.Errorf("VersionFile = %q, want %q", cfg.VersionFile, "VERSION")
	}
	if cfg.Build.Tool != "./build.sh" {
		t.Errorf("Build.Tool = %q", cfg.Build.Tool)
	}
	if cfg.Package.Tool != "fpm" {
		t.Errorf("Package.Tool = %q", cfg.Package.Tool)
	}
	if cfg.Package.Target != TargetDeb {
		t.Errorf("Package.Target = %q, want %q", cfg.Package.Target, TargetDeb)
	}
	if cfg.Package.Source != SourceTar {
		t.Errorf("Package.Source = %q, want %q", cfg.Package.Source, SourceTar)
	}
	wantDeps := []string{"python2.7", "python-pip"}
	if len(cfg.Package.Depends) != 2 || cfg.Package.Depends[0] != wantDeps[0] || cfg.Package.Depends[1] != wantDeps[1] {
		t.Errorf("Package.Depends = %v, want %v", cfg.Package.Depends, wantDeps)
	}
	if cfg.Package.PostInstall != "pkg/post_install.deb.sh" {
		t.Errorf("Package.PostInstall = %q", cfg.Package.PostInstall)
	}
	if cfg.Package.PostRemove != "pkg/post_remove.deb.sh" {
		t.Errorf("Package.PostRemove = %q", cfg.Package.PostRemove)
	}
}

func TestLoadWithOptions_DefaultsWhenNoFile(t *testing.T) {
	cfg, path, err := LoadWithOptions(context.Background(), LoadOptions{
		ConfigDirPath: t.TempDir(),
	})
	if err != nil {
		t.Fatalf("LoadWithOptions() error = %v", err)
	}
	if path != "" {
		t.Errorf("resolved path = %q, want empty for defaults", path)
	}
	if cfg.ProjectName != "dreadfort" {
		t.Errorf("ProjectName = %q", cfg.ProjectName)
	}
}

func TestLoadWithOptions_CUEOverrides(t *testing.T) {
	dir := t.TempDir()
	wrote := writeConfigFile(t, dir, `
project_name: "meniscus"
pkg: {
	tool: "/opt/fpm/bin/fpm"
	depends: ["python3", "python3-pip"]
}
`)

	cfg, path, err := LoadWithOptions(context.Background(), LoadOptions{ConfigDirPath: dir})
	if err != nil {
		t.Fatalf("LoadWithOptions() error = %v", err)
	}
	if path != wrote {
		t.Errorf("resolved path = %q, want %q", path, wrote)
	}
	if cfg.ProjectName != "meniscus" {
		t.Errorf("ProjectName = %q, want override", cfg.ProjectName)
	}
	if cfg.Package.Tool != "/opt/fpm/bin/fpm" {
		t.Errorf("Package.Tool = %q, want override", cfg.Package.Tool)
	}
	if len(cfg.Package.Depends) != 2 || cfg.Package.Depends[0] != "python3" {
		t.Errorf("Package.Depends = %v, want override", cfg.Package.Depends)
	}
	// Unset fields keep their defaults.
	if cfg.VersionFile != "VERSION" {
		t.Errorf("VersionFile = %q, want default", cfg.VersionFile)
	}
	if cfg.Package.Target != TargetDeb {
		t.Errorf("Package.Target = %q, want default", cfg.Package.Target)
	}
}

func TestLoadWithOptions_RejectsBadSchema(t *testing.T) {
	tests := []struct {
		name     string
		contents string
	}{
		{name: "wrong type", contents: `project_name: 42`},
		{name: "unknown target", contents: `pkg: target: "msi"`},
		{name: "empty tool", contents: `build: tool: ""`},
		{name: "syntax error", contents: `pkg: {`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			writeConfigFile(t, dir, tt.contents)

			_, _, err := LoadWithOptions(context.Background(), LoadOptions{ConfigDirPath: dir})
			if err == nil {
				t.Errorf("LoadWithOptions() should reject %q", tt.contents)
			}
		})
	}
}

func TestLoadWithOptions_ExplicitPathMissing(t *testing.T) {
	_, _, err := LoadWithOptions(context.Background(), LoadOptions{
		ConfigFilePath: filepath.Join(t.TempDir(), "nope.cue"),
	})
	if err == nil {
		t.Error("LoadWithOptions() should fail for a missing explicit config file")
	}
}

func TestLoadWithOptions_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := LoadWithOptions(ctx, LoadOptions{ConfigDirPath: t.TempDir()})
	if err == nil {
		t.Error("LoadWithOptions() should fail with a canceled context")
	}
}

func TestConfig_IsValid(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		valid  bool
	}{
		{name: "defaults", mutate: func(*Config) {}, valid: true},
		{name: "whitespace project name", mutate: func(c *Config) { c.ProjectName = "  " }, valid: false},
		{name: "empty version file", mutate: func(c *Config) { c.VersionFile = "" }, valid: false},
		{name: "whitespace build tool", mutate: func(c *Config) { c.Build.Tool = " " }, valid: false},
		{name: "bad target", mutate: func(c *Config) { c.Package.Target = "msi" }, valid: false},
		{name: "bad source", mutate: func(c *Config) { c.Package.Source = "zip" }, valid: false},
		{name: "empty hook path", mutate: func(c *Config) { c.Package.PostRemove = "" }, valid: false},
		{name: "no depends is allowed", mutate: func(c *Config) { c.Package.Depends = nil }, valid: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			valid, errs := cfg.IsValid()
			if valid != tt.valid {
				t.Errorf("IsValid() = %v (errs %v), want %v", valid, errs, tt.valid)
			}
		})
	}
}

func TestWriteDefaultConfigFile(t *testing.T) {
	dir := t.TempDir()
	SetConfigDirOverride(dir)
	defer SetConfigDirOverride("")

	path, err := WriteDefaultConfigFile(false)
	if err != nil {
		t.Fatalf("WriteDefaultConfigFile() error = %v", err)
	}
	if filepath.Dir(path) != dir {
		t.Errorf("config written to %q, want under %q", path, dir)
	}

	// The generated file must load cleanly (it is all comments).
	cfg, resolved, err := LoadWithOptions(context.Background(), LoadOptions{ConfigDirPath: dir})
	if err != nil {
		t.Fatalf("generated config does not load: %v", err)
	}
	if resolved != path {
		t.Errorf("resolved path = %q, want %q", resolved, path)
	}
	if cfg.ProjectName != "dreadfort" {
		t.Errorf("generated config changed defaults: ProjectName = %q", cfg.ProjectName)
	}

	// A second run without --force must refuse to overwrite.
	if _, err := WriteDefaultConfigFile(false); err == nil {
		t.Error("WriteDefaultConfigFile() should refuse to overwrite without force")
	}
	if _, err := WriteDefaultConfigFile(true); err != nil {
		t.Errorf("WriteDefaultConfigFile(force) error = %v", err)
	}
}
