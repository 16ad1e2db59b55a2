package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad(t *testing.T) {
	t.Setenv("RWN_TEST_OPENER", "my-opener")

	path := writeConfig(t, `
log_level: debug
seed: 42
ignore:
  - templates/**
launch:
  command: ["${RWN_TEST_OPENER}", "--uri"]
`)

	cfg := Default()
	if err := Load(path, cfg); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.LogLevel != slog.LevelDebug {
		t.Errorf("LogLevel = %v, want debug", cfg.LogLevel)
	}
	if cfg.Seed != 42 {
		t.Errorf("Seed = %d, want 42", cfg.Seed)
	}
	if !slices.Equal(cfg.Ignore, []string{"templates/**"}) {
		t.Errorf("Ignore = %v", cfg.Ignore)
	}
	if !slices.Equal(cfg.Launch.Command, []string{"my-opener", "--uri"}) {
		t.Errorf("Launch.Command = %v", cfg.Launch.Command)
	}
}

func TestLoad_EmptyFilenameKeepsDefaults(t *testing.T) {
	cfg := Default()
	if err := Load("", cfg); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.LogLevel != slog.LevelWarn || cfg.Launch.Disabled {
		t.Errorf("defaults changed: %+v", cfg)
	}
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		path    func(t *testing.T) string
		wantMsg string
	}{
		{
			name:    "missing file",
			path:    func(t *testing.T) string { return filepath.Join(t.TempDir(), "nope.yaml") },
			wantMsg: "config file not found",
		},
		{
			name:    "bad yaml",
			path:    func(t *testing.T) string { return writeConfig(t, "launch: [") },
			wantMsg: "failed to parse",
		},
		{
			name:    "empty launch argument",
			path:    func(t *testing.T) string { return writeConfig(t, "launch:\n  command: [\"\"]\n") },
			wantMsg: "validation failed",
		},
		{
			name:    "empty ignore pattern",
			path:    func(t *testing.T) string { return writeConfig(t, "ignore: [\"\"]\n") },
			wantMsg: "validation failed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Load(tt.path(t), Default())
			if err == nil || !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("Load() error = %v, want %q", err, tt.wantMsg)
			}
		})
	}
}
