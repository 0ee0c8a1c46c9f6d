// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/ananyagoenka/bril/internal/issue"
)

func TestLoadDefaults(t *testing.T) {
	t.Parallel()

	// Empty dir: no config file, so defaults apply.
	cfg, err := Load(LoadOptions{ConfigDirPath: t.TempDir()})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	want := Default()
	if cfg.LogLevel != want.LogLevel || cfg.LogFormat != want.LogFormat || cfg.UI.Color != want.UI.Color {
		t.Errorf("Load() = %+v, want defaults %+v", cfg, want)
	}
}

func TestLoadFromFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	content := "log_level = \"debug\"\nlog_format = \"json\"\n\n[ui]\ncolor = false\n"
	if err := os.WriteFile(filepath.Join(dir, ConfigFileName), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(LoadOptions{ConfigDirPath: dir})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.LogLevel != "debug" || cfg.LogFormat != "json" || cfg.UI.Color {
		t.Errorf("Load() = %+v, want debug/json/no-color", cfg)
	}
}

func TestLoadExplicitPath(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "custom.toml")
	if err := os.WriteFile(path, []byte("log_level = \"error\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(LoadOptions{ConfigFilePath: path})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.LogLevel != "error" {
		t.Errorf("LogLevel = %q, want error", cfg.LogLevel)
	}
	// Unset keys keep their defaults.
	if cfg.LogFormat != "text" {
		t.Errorf("LogFormat = %q, want text", cfg.LogFormat)
	}
}

func TestLoadExplicitPathMissing(t *testing.T) {
	t.Parallel()

	_, err := Load(LoadOptions{ConfigFilePath: filepath.Join(t.TempDir(), "nope.toml")})
	if err == nil {
		t.Fatal("Load() error = nil, want error for missing explicit config file")
	}

	var ae *issue.ActionableError
	if !errors.As(err, &ae) {
		t.Errorf("error type = %T, want *issue.ActionableError", err)
	}
}

func TestLoadMalformedFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, ConfigFileName), []byte("log_level = [broken\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(LoadOptions{ConfigDirPath: dir}); err == nil {
		t.Fatal("Load() error = nil, want error for malformed config file")
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	// t.Setenv forbids t.Parallel.
	t.Setenv("BRIL_LOG_LEVEL", "warn")
	t.Setenv("BRIL_UI_COLOR", "false")

	cfg, err := Load(LoadOptions{ConfigDirPath: t.TempDir()})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.LogLevel != "warn" {
		t.Errorf("LogLevel = %q, want warn (env override)", cfg.LogLevel)
	}
	if cfg.UI.Color {
		t.Error("UI.Color = true, want false (env override)")
	}
}

func TestEnvBeatsFile(t *testing.T) {
	t.Setenv("BRIL_LOG_LEVEL", "error")

	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, ConfigFileName), []byte("log_level = \"debug\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(LoadOptions{ConfigDirPath: dir})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.LogLevel != "error" {
		t.Errorf("LogLevel = %q, want error (env beats file)", cfg.LogLevel)
	}
}
