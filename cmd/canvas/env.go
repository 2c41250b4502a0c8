package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-canvas/internal/config"
	"github.com/vovakirdan/tui-canvas/internal/core"
	"github.com/vovakirdan/tui-canvas/internal/platform/tui"
	"github.com/vovakirdan/tui-canvas/internal/storage"
)

// loadConfig reads the config file and applies flags the user set
// explicitly. Flags left at their defaults do not override the file.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return cfg, err
	}

	flags := cmd.Flags()
	if flags.Changed("fps") {
		cfg.Runtime.FPS = flagFPS
	}
	if flags.Changed("seed") {
		cfg.Runtime.Seed = flagSeed
	}
	if flags.Changed("db") {
		cfg.Storage.Path = flagDBPath
	}
	if flags.Changed("log-level") {
		cfg.Log.Level = flagLogLevel
	}
	if flags.Changed("width") {
		cfg.Canvas.Width = flagWidth
	}
	if flags.Changed("height") {
		cfg.Canvas.Height = flagHeight
	}
	if flags.Changed("swap-policy") {
		cfg.Canvas.SwapPolicy = flagSwapPolicy
	}
	if flags.Changed("metrics-addr") {
		cfg.Metrics.Address = flagMetricsAddr
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// mustLoadConfig is loadConfig for command handlers.
func mustLoadConfig(cmd *cobra.Command) config.Config {
	cfg, err := loadConfig(cmd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	return cfg
}

// runtimeConfig builds the scene runtime config. A zero size follows the
// terminal.
func runtimeConfig(cfg config.Config) core.RuntimeConfig {
	return core.RuntimeConfig{
		ScreenW:  cfg.Canvas.Width,
		ScreenH:  cfg.Canvas.Height,
		TickRate: cfg.Runtime.FPS,
		Seed:     cfg.Runtime.Seed,
	}
}

// openStore opens the session database. Failure is a warning; scenes still
// play without statistics.
func openStore(path string) *storage.Store {
	store, err := storage.Open(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open session database: %v\n", err)
		return nil
	}
	return store
}

// fileLogger logs to the configured file, since the terminal belongs to the
// canvas during local play. The returned closer must be called on exit.
func fileLogger(cfg config.Config) (*log.Logger, io.Closer) {
	var discard nopCloser

	path, err := config.ExpandHome(cfg.Log.File)
	if err != nil || path == "" {
		return log.New(io.Discard), discard
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return log.New(io.Discard), discard
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return log.New(io.Discard), discard
	}

	logger, err := tui.NewLogger(f, "canvas", cfg.Log.Level)
	if err != nil {
		f.Close()
		return log.New(io.Discard), discard
	}
	return logger, f
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// startMetrics serves /metrics in the background when an address is set.
func startMetrics(ctx context.Context, addr string, logger *log.Logger) {
	if addr == "" {
		return
	}
	go func() {
		if err := tui.ServeMetrics(ctx, addr, logger); err != nil {
			logger.Error("metrics server failed", "error", err)
		}
	}()
}
