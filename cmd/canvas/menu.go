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

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start with a scene picker menu",
	Long: `Start in interactive menu mode.

The highlighted scene plays in a live preview. Press Enter to play it
full screen; quitting the scene returns to the menu.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Play scene
  X            - Toggle swap policy (copy/exchange)
  Tab          - Session statistics
  Q            - Quit

Examples:
  canvas menu
  canvas menu --fps 60
  canvas menu --db ./sessions.db`,
	Run: runMenu,
}

func runMenu(cmd *cobra.Command, _ []string) {
	cfg := mustLoadConfig(cmd)
	opts, err := cfg.Canvas.Options()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	logger, logCloser := fileLogger(cfg)
	defer logCloser.Close()

	store := openStore(cfg.Storage.Path)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	startMetrics(ctx, cfg.Metrics.Address, logger)

	// The menu is laid out for the terminal; the played scene keeps the
	// configured canvas size.
	menuCfg := runtimeConfig(cfg)
	menuCfg.ScreenW, menuCfg.ScreenH = tui.TerminalSize(os.Stdout)

	// Menu loop
	for ctx.Err() == nil {
		menuResult, err := tui.RunMenu(menuCfg, opts)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			break
		}

		// Keep any size and swap policy changes
		menuCfg = menuResult.Config
		opts = menuResult.Options

		if menuResult.Quit {
			break
		}

		if menuResult.WantsStats {
			goBack, statsErr := tui.RunStats(store, menuCfg.ScreenW, menuCfg.ScreenH)
			if statsErr != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", statsErr)
			}
			if goBack {
				continue // Back to menu
			}
			break // User quit from the stats board
		}

		if menuResult.SceneID == "" {
			break
		}

		scene, err := registry.Create(menuResult.SceneID)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating scene: %v\n", err)
			continue
		}

		runCfg := runtimeConfig(cfg)
		if runCfg.Seed == 0 {
			// Fresh seed for each run
			runCfg.Seed = time.Now().UnixNano()
		}

		_, runErr := tui.Run(ctx, scene, tui.LocalOptions{
			Runtime: runCfg,
			Canvas:  opts,
			Store:   store,
			Logger:  logger,
		})
		if runErr != nil && !errors.Is(runErr, tui.ErrInputClosed) {
			logger.Error("scene failed", "scene", menuResult.SceneID, "error", runErr)
			fmt.Fprintf(os.Stderr, "Error running scene: %v\n", runErr)
		}

		// Loop back to menu
	}

	// Cleanup
	if store != nil {
		store.Close()
	}
}
