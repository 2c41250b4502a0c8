// Package config provides YAML-based configuration loading for the canvas
// runtime, the SSH server and session statistics storage.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/vovakirdan/tui-canvas/internal/render"
)

// Config contains all settings for the canvas platform.
type Config struct {
	Canvas  CanvasConfig  `yaml:"canvas"`
	Runtime RuntimeConfig `yaml:"runtime"`
	Log     LogConfig     `yaml:"log"`
	Metrics MetricsConfig `yaml:"metrics"`
	Server  ServerConfig  `yaml:"server"`
	Storage StorageConfig `yaml:"storage"`
}

// CanvasConfig defines grid size and presentation limits.
type CanvasConfig struct {
	Width           int    `yaml:"width"`  // 0 = terminal width
	Height          int    `yaml:"height"` // 0 = terminal height
	SwapPolicy      string `yaml:"swap_policy"`
	MaxDirtyRegions int    `yaml:"max_dirty_regions"`
	MaxFrameBytes   int    `yaml:"max_frame_bytes"`
}

// RuntimeConfig defines the frame loop.
type RuntimeConfig struct {
	FPS  int   `yaml:"fps"`
	Seed int64 `yaml:"seed"` // 0 = time based
}

// LogConfig defines logger output. Local play logs to File because the
// terminal is owned by the canvas; the SSH server logs to stderr.
type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// MetricsConfig defines the Prometheus endpoint. An empty address disables it.
type MetricsConfig struct {
	Address string `yaml:"address"`
}

// ServerConfig defines the SSH server.
type ServerConfig struct {
	Address     string        `yaml:"address"`
	HostKeyPath string        `yaml:"host_key"`
	IdleTimeout time.Duration `yaml:"idle_timeout"`
	Scene       string        `yaml:"scene"`
}

// StorageConfig defines where session statistics are kept.
type StorageConfig struct {
	Path string `yaml:"path"`
}

// Validate checks value ranges. Width and height may be zero (auto).
func (c Config) Validate() error {
	var errs []error
	if c.Canvas.Width < 0 || c.Canvas.Height < 0 {
		errs = append(errs, fmt.Errorf("canvas size %dx%d must not be negative", c.Canvas.Width, c.Canvas.Height))
	}
	if _, err := render.ParseSwapPolicy(c.Canvas.SwapPolicy); err != nil {
		errs = append(errs, fmt.Errorf("swap_policy: %w", err))
	}
	if c.Canvas.MaxDirtyRegions < 0 {
		errs = append(errs, errors.New("max_dirty_regions must not be negative"))
	}
	if c.Canvas.MaxFrameBytes < 0 {
		errs = append(errs, errors.New("max_frame_bytes must not be negative"))
	}
	if c.Runtime.FPS <= 0 || c.Runtime.FPS > 240 {
		errs = append(errs, fmt.Errorf("fps %d out of range 1-240", c.Runtime.FPS))
	}
	if c.Server.IdleTimeout < 0 {
		errs = append(errs, errors.New("idle_timeout must not be negative"))
	}

	if len(errs) > 0 {
		return fmt.Errorf("config: %w", errors.Join(errs...))
	}
	return nil
}

// Options converts the canvas section to render options.
func (c CanvasConfig) Options() (render.Options, error) {
	policy, err := render.ParseSwapPolicy(c.SwapPolicy)
	if err != nil {
		return render.Options{}, fmt.Errorf("config: %w", err)
	}
	return render.Options{
		SwapPolicy:      policy,
		MaxDirtyRegions: c.MaxDirtyRegions,
		MaxFrameBytes:   c.MaxFrameBytes,
	}, nil
}
