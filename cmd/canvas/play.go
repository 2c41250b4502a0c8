package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-canvas/internal/platform/tui"
	"github.com/vovakirdan/tui-canvas/internal/registry"
)

var playCmd = &cobra.Command{
	Use:   "play <scene>",
	Short: "Play a scene",
	Long: `Play the specified scene on this terminal.

Controls:
  Q/Ctrl+C   - Quit
  C          - Force a full redraw
  P          - Pause the animation
  S          - Save a screenshot to ~/.canvas/screenshots

Logs are written to the configured log file (default ~/.canvas/canvas.log)
because the terminal is used by the canvas.

Examples:
  canvas play bounce
  canvas play rain --fps 60
  canvas play banner --width 60 --height 10
  canvas play bounce --swap-policy exchange`,
	Args: cobra.ExactArgs(1),
	Run:  runPlay,
}

func runPlay(cmd *cobra.Command, args []string) {
	sceneID := args[0]

	// Check if scene exists
	if !registry.Exists(sceneID) {
		fmt.Fprintf(os.Stderr, "Error: unknown scene %q\n", sceneID)
		fmt.Fprintln(os.Stderr, "Run 'canvas list' to see available scenes.")
		os.Exit(1)
	}

	cfg := mustLoadConfig(cmd)
	opts, err := cfg.Canvas.Options()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	scene, err := registry.Create(sceneID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating scene: %v\n", err)
		os.Exit(1)
	}

	logger, logCloser := fileLogger(cfg)
	defer logCloser.Close()

	store := openStore(cfg.Storage.Path)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	startMetrics(ctx, cfg.Metrics.Address, logger)

	summary, runErr := tui.Run(ctx, scene, tui.LocalOptions{
		Runtime: runtimeConfig(cfg),
		Canvas:  opts,
		Store:   store,
		Logger:  logger,
	})

	// Close store before potential exit
	if store != nil {
		store.Close()
	}

	if runErr != nil && !errors.Is(runErr, tui.ErrInputClosed) {
		fmt.Fprintf(os.Stderr, "Error running scene: %v\n", runErr)
		os.Exit(1)
	}

	printSummary(summary)
}

// printSummary prints a one-line report after a local session.
func printSummary(s tui.SessionSummary) {
	if s.Frames == 0 {
		return
	}
	fmt.Printf("%s: %d frames (%d full, %d dirty, %d idle), %d bytes, %.1f bytes/frame in %s\n",
		s.SceneID, s.Frames, s.FullFrames, s.DirtyFrames, s.IdleFrames,
		s.Bytes, s.Record().BytesPerFrame(), s.Duration.Round(time.Millisecond))
}
