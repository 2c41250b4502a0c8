package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "canvas.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("WriteFile() failed: %v", err)
	}
	return path
}

func TestEmbeddedDefaultMatchesHardcoded(t *testing.T) {
	cfg, err := parse(defaultCanvasYAML)
	if err != nil {
		t.Fatalf("embedded default does not parse: %v", err)
	}

	want := DefaultConfig()
	if cfg != want {
		t.Errorf("embedded default = %+v, expected %+v", cfg, want)
	}
}

func TestLoadCustomPath(t *testing.T) {
	path := writeConfig(t, `
canvas:
  width: 100
  swap_policy: exchange
runtime:
  fps: 60
server:
  idle_timeout: 5m
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Canvas.Width != 100 {
		t.Errorf("Canvas.Width = %d, expected 100", cfg.Canvas.Width)
	}
	if cfg.Canvas.SwapPolicy != "exchange" {
		t.Errorf("Canvas.SwapPolicy = %q, expected exchange", cfg.Canvas.SwapPolicy)
	}
	if cfg.Runtime.FPS != 60 {
		t.Errorf("Runtime.FPS = %d, expected 60", cfg.Runtime.FPS)
	}
	if cfg.Server.IdleTimeout != 5*time.Minute {
		t.Errorf("Server.IdleTimeout = %v, expected 5m", cfg.Server.IdleTimeout)
	}

	// Unset keys keep their defaults
	if cfg.Canvas.MaxDirtyRegions != 4096 {
		t.Errorf("Canvas.MaxDirtyRegions = %d, expected default 4096", cfg.Canvas.MaxDirtyRegions)
	}
	if cfg.Server.Scene != "bounce" {
		t.Errorf("Server.Scene = %q, expected default bounce", cfg.Server.Scene)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantMsg string
	}{
		{"malformed yaml", "canvas: [", "failed to parse"},
		{"bad swap policy", "canvas:\n  swap_policy: flip\n", "swap_policy"},
		{"fps out of range", "runtime:\n  fps: 0\n", "fps"},
		{"negative size", "canvas:\n  width: -1\n", "must not be negative"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tc.content))
			if err == nil {
				t.Fatal("Load() expected error, got nil")
			}
			if !strings.Contains(err.Error(), tc.wantMsg) {
				t.Errorf("error %q does not mention %q", err, tc.wantMsg)
			}
		})
	}
}

func TestLoadMissingCustomPath(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err == nil {
		t.Fatal("Load() with missing file should fail")
	}
}

func TestLoadFallsBackToDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Getwd() failed: %v", err)
	}
	if err := os.Chdir(t.TempDir()); err != nil {
		t.Fatalf("Chdir() failed: %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg != DefaultConfig() {
		t.Errorf("Load(\"\") = %+v, expected defaults", cfg)
	}
}

func TestExpandHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	got, err := ExpandHome("~/.canvas/sessions.db")
	if err != nil {
		t.Fatalf("ExpandHome() failed: %v", err)
	}
	if want := filepath.Join(home, ".canvas", "sessions.db"); got != want {
		t.Errorf("ExpandHome() = %q, expected %q", got, want)
	}

	if got, _ := ExpandHome("/abs/path"); got != "/abs/path" {
		t.Errorf("ExpandHome() changed an absolute path: %q", got)
	}
}
