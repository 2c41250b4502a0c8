package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-canvas/internal/config"
	"github.com/vovakirdan/tui-canvas/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
	flagServeScene  string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the canvas SSH server",
	Long: `Start an SSH server that plays a scene on every connection.

Each connection gets its own canvas sized to the client's terminal. The
client may name a scene as the SSH command; otherwise the default scene
is played. Session statistics from all connections go to the same database.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.canvas/host_key

Examples:
  canvas serve                           # Listen on :23234 with auto-generated key
  canvas serve --ssh :2222               # Listen on port 2222
  canvas serve --scene rain              # Default scene for new connections
  canvas serve --metrics-addr :9090      # Expose Prometheus metrics

Users can connect with:
  ssh -t localhost -p 23234
  ssh -t localhost -p 23234 banner`,
	Run: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23234", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
	serveCmd.Flags().StringVar(&flagServeScene, "scene", "bounce", "Scene played when the client names none")
}

func runServe(cmd *cobra.Command, _ []string) {
	cfg := mustLoadConfig(cmd)

	flags := cmd.Flags()
	if flags.Changed("ssh") {
		cfg.Server.Address = flagSSHAddr
	}
	if flags.Changed("host-key") {
		cfg.Server.HostKeyPath = flagHostKey
	}
	if flags.Changed("idle-timeout") {
		cfg.Server.IdleTimeout = time.Duration(flagIdleTimeout) * time.Minute
	}
	if flags.Changed("scene") {
		cfg.Server.Scene = flagServeScene
	}

	opts, err := cfg.Canvas.Options()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	logger, err := tui.NewLogger(os.Stderr, "canvas-ssh", cfg.Log.Level)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	hostKey, err := config.ExpandHome(cfg.Server.HostKeyPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	store := openStore(cfg.Storage.Path)
	if store != nil {
		defer store.Close()
	}

	server, err := tui.NewSSHServer(tui.SSHServerConfig{
		Address:     cfg.Server.Address,
		HostKeyPath: hostKey,
		IdleTimeout: cfg.Server.IdleTimeout,
		Scene:       cfg.Server.Scene,
		TickRate:    cfg.Runtime.FPS,
		Canvas:      opts,
	}, store, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating server: %v\n", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	startMetrics(ctx, cfg.Metrics.Address, logger)

	fmt.Printf("Starting canvas SSH server on %s\n", server.Addr())
	fmt.Println("Connect with: ssh -t localhost -p 23234")
	fmt.Println("Press Ctrl+C to stop")

	if err := server.ListenAndServe(); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}
