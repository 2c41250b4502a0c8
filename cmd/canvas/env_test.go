package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
)

func TestLoadConfigFlagsOverrideFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "canvas.yaml")
	content := "runtime:\n  fps: 20\ncanvas:\n  swap_policy: exchange\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("WriteFile() failed: %v", err)
	}
	flagConfig = path
	t.Cleanup(func() { flagConfig = "" })

	cmd := &cobra.Command{}
	cmd.Flags().IntVar(&flagFPS, "fps", 30, "")
	cmd.Flags().StringVar(&flagSwapPolicy, "swap-policy", "copy", "")

	cfg, err := loadConfig(cmd)
	if err != nil {
		t.Fatalf("loadConfig() failed: %v", err)
	}
	if cfg.Runtime.FPS != 20 || cfg.Canvas.SwapPolicy != "exchange" {
		t.Errorf("unset flags should not override the file: %+v", cfg)
	}

	if err := cmd.Flags().Set("fps", "90"); err != nil {
		t.Fatalf("Set() failed: %v", err)
	}
	cfg, err = loadConfig(cmd)
	if err != nil {
		t.Fatalf("loadConfig() failed: %v", err)
	}
	if cfg.Runtime.FPS != 90 {
		t.Errorf("FPS = %d, expected flag value 90", cfg.Runtime.FPS)
	}

	if err := cmd.Flags().Set("swap-policy", "sideways"); err != nil {
		t.Fatalf("Set() failed: %v", err)
	}
	if _, err := loadConfig(cmd); err == nil {
		t.Error("invalid swap policy flag should fail validation")
	}
}

func TestRuntimeConfig(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Getwd() failed: %v", err)
	}
	if err := os.Chdir(t.TempDir()); err != nil {
		t.Fatalf("Chdir() failed: %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })

	cmd := &cobra.Command{}
	cfg, err := loadConfig(cmd)
	if err != nil {
		t.Fatalf("loadConfig() failed: %v", err)
	}
	cfg.Canvas.Width = 40
	cfg.Runtime.Seed = 9

	rc := runtimeConfig(cfg)
	if rc.ScreenW != 40 || rc.ScreenH != 0 || rc.Seed != 9 || rc.TickRate != cfg.Runtime.FPS {
		t.Errorf("runtimeConfig() = %+v", rc)
	}
}
