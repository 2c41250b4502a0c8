package tui

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-canvas/internal/core"
	"github.com/vovakirdan/tui-canvas/internal/registry"
	"github.com/vovakirdan/tui-canvas/internal/render"
	"github.com/vovakirdan/tui-canvas/internal/storage"
)

// resizePollInterval is how often the local terminal size is checked.
const resizePollInterval = 250 * time.Millisecond

// LocalOptions configures a scene run on the local terminal.
type LocalOptions struct {
	// Runtime carries tick rate and seed. A zero screen size follows the
	// terminal, including later resizes.
	Runtime core.RuntimeConfig

	Canvas        render.Options
	Store         *storage.Store
	Logger        *log.Logger
	ScreenshotDir string
}

// Run plays scene on the local terminal until the user quits or ctx is
// cancelled. The terminal is restored before Run returns.
func Run(ctx context.Context, scene registry.Scene, opts LocalOptions) (SessionSummary, error) {
	t, err := OpenTerminal()
	if err != nil {
		return SessionSummary{}, err
	}

	cfg := opts.Runtime
	follow := cfg.ScreenW == 0 || cfg.ScreenH == 0
	if follow {
		cfg.ScreenW, cfg.ScreenH = t.Size()
	}

	canvas, err := render.NewCanvas(cfg.ScreenW, cfg.ScreenH, t, opts.Canvas)
	if err != nil {
		return SessionSummary{}, errors.Join(fmt.Errorf("tui: create canvas: %w", err), t.Restore())
	}

	player := NewPlayer(scene, canvas, cfg, PlayerOptions{
		Input:         t,
		Store:         opts.Store,
		Logger:        opts.Logger,
		ScreenshotDir: opts.ScreenshotDir,
	})

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	if follow {
		go t.WatchSize(ctx, resizePollInterval, player.Resize)
	}

	summary, runErr := player.Run(ctx)
	cancel()

	closeErr := canvas.Close()
	restoreErr := t.Restore()
	return summary, errors.Join(runErr, closeErr, restoreErr)
}
