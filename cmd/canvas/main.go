// canvas plays animated scenes on a double-buffered terminal canvas that
// only sends the cells that changed since the previous frame.
//
// Usage:
//
//	canvas list              - List available scenes
//	canvas play <scene>      - Play a scene on this terminal
//	canvas menu              - Pick scenes interactively
//	canvas serve             - Serve scenes over SSH
//	canvas stats [scene]     - Show recorded session statistics
//
// Global flags:
//
//	--config <path>        - Config file (default search: ~/.canvas/config.yaml, ./configs/canvas.yaml)
//	--fps <rate>           - Frame rate
//	--seed <value>         - RNG seed for reproducible scenes
//	--db <path>            - Session database path
//	--swap-policy <name>   - copy or exchange
//	--metrics-addr <addr>  - Expose Prometheus metrics on addr
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	// Import scenes to register them
	_ "github.com/vovakirdan/tui-canvas/internal/scenes/banner"
	_ "github.com/vovakirdan/tui-canvas/internal/scenes/bounce"
	_ "github.com/vovakirdan/tui-canvas/internal/scenes/rain"
)

var (
	// Global flags
	flagConfig      string
	flagFPS         int
	flagSeed        int64
	flagDBPath      string
	flagLogLevel    string
	flagWidth       int
	flagHeight      int
	flagSwapPolicy  string
	flagMetricsAddr string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "canvas",
	Short: "Canvas - Double-buffered terminal scenes",
	Long: `Canvas renders animated scenes on a character grid and sends only the
cells that changed since the previous frame.

Available commands:
  list     - Show all available scenes
  play     - Play a scene on this terminal
  menu     - Interactive scene picker with live previews
  serve    - Start SSH server, one canvas per connection
  stats    - View recorded session statistics

Examples:
  canvas list
  canvas play bounce
  canvas play rain --fps 60 --swap-policy exchange
  canvas menu
  canvas serve --ssh :2222 --metrics-addr :9090
  canvas stats rain`,
	SilenceUsage: true,
}

func init() {
	// Global persistent flags
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flagConfig, "config", "", "Path to config YAML")
	pf.IntVar(&flagFPS, "fps", 30, "Frame rate (frames per second)")
	pf.Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	pf.StringVar(&flagDBPath, "db", "~/.canvas/sessions.db", "Path to session database")
	pf.StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	pf.IntVar(&flagWidth, "width", 0, "Canvas width (0 = terminal width)")
	pf.IntVar(&flagHeight, "height", 0, "Canvas height (0 = terminal height)")
	pf.StringVar(&flagSwapPolicy, "swap-policy", "copy", "Back buffer after present: copy or exchange")
	pf.StringVar(&flagMetricsAddr, "metrics-addr", "", "Expose Prometheus /metrics on this address")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(statsCmd)
}
