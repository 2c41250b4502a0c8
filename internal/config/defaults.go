package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/canvas.yaml
var defaultCanvasYAML []byte

// DefaultConfig returns the built-in configuration.
func DefaultConfig() Config {
	return Config{
		Canvas: CanvasConfig{
			Width:           0,
			Height:          0,
			SwapPolicy:      "copy",
			MaxDirtyRegions: 4096,
			MaxFrameBytes:   4 << 20,
		},
		Runtime: RuntimeConfig{
			FPS:  30,
			Seed: 0,
		},
		Log: LogConfig{
			Level: "info",
			File:  "~/.canvas/canvas.log",
		},
		Server: ServerConfig{
			Address:     ":23234",
			IdleTimeout: 30 * time.Minute,
			Scene:       "bounce",
		},
		Storage: StorageConfig{
			Path: "~/.canvas/sessions.db",
		},
	}
}
