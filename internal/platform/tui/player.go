package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-canvas/internal/core"
	"github.com/vovakirdan/tui-canvas/internal/registry"
	"github.com/vovakirdan/tui-canvas/internal/render"
	"github.com/vovakirdan/tui-canvas/internal/storage"
)

// Single-byte commands read from the player's input stream.
const (
	keyQuit       = 'q'
	keyCtrlC      = 0x03
	keyRedraw     = 'c'
	keyPause      = 'p'
	keyScreenshot = 's'
)

// ErrInputClosed is returned by Run when the input stream ends.
var ErrInputClosed = errors.New("tui: input closed")

// SessionSummary accumulates what a Player sent during one run.
type SessionSummary struct {
	SceneID     string
	Width       int
	Height      int
	Frames      int
	FullFrames  int
	DirtyFrames int
	IdleFrames  int
	Bytes       int64
	Dropped     int
	SinkErrors  int
	Duration    time.Duration
}

// Add folds one presentation into the summary.
func (s *SessionSummary) Add(stats render.FrameStats) {
	s.Frames++
	switch stats.Mode {
	case render.PresentFull:
		s.FullFrames++
	case render.PresentDirty:
		s.DirtyFrames++
	default:
		s.IdleFrames++
	}
	s.Bytes += int64(stats.Bytes)
	s.Dropped += stats.Dropped
	if stats.Err != nil {
		s.SinkErrors++
	}
}

// Record converts the summary to its stored form.
func (s SessionSummary) Record() storage.SessionRecord {
	return storage.SessionRecord{
		SceneID:     s.SceneID,
		Width:       s.Width,
		Height:      s.Height,
		Frames:      s.Frames,
		FullFrames:  s.FullFrames,
		DirtyFrames: s.DirtyFrames,
		IdleFrames:  s.IdleFrames,
		Bytes:       s.Bytes,
		Dropped:     s.Dropped,
		SinkErrors:  s.SinkErrors,
		Duration:    s.Duration,
	}
}

// PlayerOptions configures a Player. Every field is optional.
type PlayerOptions struct {
	// Input supplies single-byte commands. Nil disables input.
	Input io.Reader

	// Store receives the session record when the run ends.
	Store *storage.Store

	// Logger defaults to a discarding logger.
	Logger *log.Logger

	// ScreenshotDir is where 's' writes the front grid.
	// Defaults to ~/.canvas/screenshots.
	ScreenshotDir string
}

type size struct {
	w, h int
}

// Player drives a scene at a fixed tick rate and presents each frame on a
// Canvas.
type Player struct {
	scene  registry.Scene
	canvas *render.Canvas
	config core.RuntimeConfig
	opts   PlayerOptions
	logger *log.Logger

	resize  chan size
	paused  bool
	summary SessionSummary
}

// NewPlayer creates a player. The canvas must already match cfg's screen
// size.
func NewPlayer(scene registry.Scene, canvas *render.Canvas, cfg core.RuntimeConfig, opts PlayerOptions) *Player {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	return &Player{
		scene:  scene,
		canvas: canvas,
		config: cfg,
		opts:   opts,
		logger: logger,
		resize: make(chan size, 1),
		summary: SessionSummary{
			SceneID: scene.ID(),
			Width:   cfg.ScreenW,
			Height:  cfg.ScreenH,
		},
	}
}

// Resize asks the running loop to resize the canvas before the next frame.
// Safe to call from any goroutine; only the latest size is kept.
func (p *Player) Resize(width, height int) {
	next := size{w: width, h: height}
	select {
	case p.resize <- next:
		return
	default:
	}
	// Replace a pending request that has not been applied yet.
	select {
	case <-p.resize:
	default:
	}
	select {
	case p.resize <- next:
	default:
	}
}

// Run plays the scene until ctx is cancelled, a quit command arrives, the
// input ends or the sink fails. A finished session is saved to the store
// when one is configured.
func (p *Player) Run(ctx context.Context) (SessionSummary, error) {
	start := time.Now()
	p.scene.Reset(p.config)
	metricActiveSessions.Inc()
	defer metricActiveSessions.Dec()

	p.logger.Info("session started",
		"scene", p.scene.ID(),
		"width", p.config.ScreenW,
		"height", p.config.ScreenH,
		"fps", p.config.TickRate,
	)

	done := make(chan struct{})
	defer close(done)

	var commands <-chan byte
	if p.opts.Input != nil {
		commands = readCommands(p.opts.Input, done)
	}

	ticker := time.NewTicker(frameInterval(p.config.TickRate))
	defer ticker.Stop()

	err := p.loop(ctx, ticker.C, commands)

	p.summary.Duration = time.Since(start)
	p.logger.Info("session ended",
		"scene", p.summary.SceneID,
		"frames", p.summary.Frames,
		"full", p.summary.FullFrames,
		"bytes", p.summary.Bytes,
		"duration", p.summary.Duration.Round(time.Millisecond),
	)
	p.save()

	return p.summary, err
}

func (p *Player) loop(ctx context.Context, ticks <-chan time.Time, commands <-chan byte) error {
	for {
		select {
		case <-ctx.Done():
			return nil

		case cmd, ok := <-commands:
			if !ok {
				return ErrInputClosed
			}
			if quit := p.handleCommand(cmd); quit {
				return nil
			}

		case sz := <-p.resize:
			p.applyResize(sz)

		case <-ticks:
			if err := p.frame(); err != nil {
				return err
			}
		}
	}
}

// frame advances, draws and presents one tick.
func (p *Player) frame() error {
	if !p.paused {
		p.scene.Step()
	}
	p.scene.Draw(p.canvas)

	stats := p.canvas.Present()
	p.summary.Add(stats)
	ObserveFrame(stats)

	if stats.Dropped > 0 {
		p.logger.Warn("frame output truncated", "dropped", stats.Dropped, "mode", stats.Mode)
	}
	if stats.Err != nil {
		p.logger.Error("sink write failed", "error", stats.Err)
		return fmt.Errorf("tui: present frame: %w", stats.Err)
	}
	return nil
}

// handleCommand applies one input byte. Returns true on quit.
func (p *Player) handleCommand(cmd byte) bool {
	switch cmd {
	case keyQuit, keyCtrlC:
		return true
	case keyRedraw:
		p.canvas.Invalidate()
	case keyPause:
		p.paused = !p.paused
		p.logger.Debug("pause toggled", "paused", p.paused)
	case keyScreenshot:
		path, err := p.Screenshot()
		if err != nil {
			p.logger.Warn("screenshot failed", "error", err)
		} else {
			p.logger.Info("screenshot saved", "path", path)
		}
	}
	return false
}

func (p *Player) applyResize(sz size) {
	if err := p.canvas.Resize(sz.w, sz.h); err != nil {
		p.logger.Warn("resize rejected", "width", sz.w, "height", sz.h, "error", err)
		return
	}
	p.config.ScreenW = sz.w
	p.config.ScreenH = sz.h
	p.summary.Width = sz.w
	p.summary.Height = sz.h
	p.scene.Reset(p.config)
}

// Screenshot writes the on-screen grid to a text file and returns its path.
func (p *Player) Screenshot() (string, error) {
	dir := p.opts.ScreenshotDir
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("tui: cannot get home directory: %w", err)
		}
		dir = filepath.Join(home, ".canvas", "screenshots")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("tui: cannot create screenshot directory: %w", err)
	}

	// Generate filename with timestamp
	timestamp := time.Now().Format("20060102_150405.000")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", p.scene.ID(), timestamp))

	if err := os.WriteFile(path, []byte(p.canvas.String()+"\n"), 0o600); err != nil {
		return "", fmt.Errorf("tui: cannot write screenshot: %w", err)
	}
	return path, nil
}

func (p *Player) save() {
	if p.opts.Store == nil || p.summary.Frames == 0 {
		return
	}
	if _, err := p.opts.Store.SaveSession(p.summary.Record()); err != nil {
		p.logger.Warn("could not save session", "error", err)
	}
}

// readCommands forwards input bytes until the reader fails or done closes.
// The returned channel is closed when the reader fails.
func readCommands(r io.Reader, done <-chan struct{}) <-chan byte {
	out := make(chan byte, 16)
	go func() {
		defer close(out)
		buf := make([]byte, 64)
		for {
			n, err := r.Read(buf)
			for _, b := range buf[:n] {
				select {
				case out <- b:
				case <-done:
					return
				}
			}
			if err != nil {
				return
			}
		}
	}()
	return out
}
