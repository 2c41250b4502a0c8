package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"

	"github.com/vovakirdan/tui-canvas/internal/core"
	"github.com/vovakirdan/tui-canvas/internal/registry"
	"github.com/vovakirdan/tui-canvas/internal/render"
	"github.com/vovakirdan/tui-canvas/internal/storage"
)

// SSHServerConfig holds configuration for the SSH server.
type SSHServerConfig struct {
	// Address is the host:port to listen on (e.g., ":23234").
	Address string

	// HostKeyPath is the path to the host key file.
	// If empty, a key will be auto-generated at ~/.canvas/host_key.
	HostKeyPath string

	// IdleTimeout is how long to wait before closing idle connections.
	IdleTimeout time.Duration

	// Scene is played when the client does not name one as its command.
	Scene string

	// TickRate is the frame rate of every session.
	TickRate int

	// Canvas tunes each session's canvas.
	Canvas render.Options
}

// DefaultSSHServerConfig returns a config with sensible defaults.
func DefaultSSHServerConfig() SSHServerConfig {
	return SSHServerConfig{
		Address:     ":23234",
		IdleTimeout: 30 * time.Minute,
		Scene:       "bounce",
		TickRate:    30,
		Canvas:      render.DefaultOptions(),
	}
}

// SSHServer wraps a Wish SSH server. Every session gets its own Canvas
// whose sink is the SSH channel.
type SSHServer struct {
	config SSHServerConfig
	server *ssh.Server
	store  *storage.Store
	logger *log.Logger
}

// NewSSHServer creates a new SSH server. store may be nil.
func NewSSHServer(cfg SSHServerConfig, store *storage.Store, logger *log.Logger) (*SSHServer, error) {
	if !registry.Exists(cfg.Scene) {
		return nil, fmt.Errorf("tui: unknown default scene %q", cfg.Scene)
	}
	if logger == nil {
		logger = log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Prefix:          "canvas-ssh",
		})
	}

	srv := &SSHServer{
		config: cfg,
		store:  store,
		logger: logger,
	}

	// Resolve host key path
	hostKeyPath := cfg.HostKeyPath
	if hostKeyPath == "" {
		home, homeErr := os.UserHomeDir()
		if homeErr != nil {
			return nil, fmt.Errorf("tui: cannot get home directory: %w", homeErr)
		}
		hostKeyPath = filepath.Join(home, ".canvas", "host_key")
	}

	// Ensure host key directory exists
	hostKeyDir := filepath.Dir(hostKeyPath)
	if mkdirErr := os.MkdirAll(hostKeyDir, 0o700); mkdirErr != nil {
		return nil, fmt.Errorf("tui: cannot create host key directory: %w", mkdirErr)
	}

	server, err := wish.NewServer(
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(hostKeyPath),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		wish.WithMiddleware(
			srv.canvasMiddleware,
			srv.loggingMiddleware,
		),
	)
	if err != nil {
		return nil, fmt.Errorf("tui: cannot create SSH server: %w", err)
	}

	srv.server = server
	return srv, nil
}

// sceneFor picks the scene named by the session command, or the default.
func (s *SSHServer) sceneFor(sshSession ssh.Session) string {
	if cmd := sshSession.Command(); len(cmd) > 0 && registry.Exists(cmd[0]) {
		return cmd[0]
	}
	return s.config.Scene
}

// canvasMiddleware plays a scene for each session with a PTY.
func (s *SSHServer) canvasMiddleware(next ssh.Handler) ssh.Handler {
	return func(sshSession ssh.Session) {
		pty, winCh, ok := sshSession.Pty()
		if !ok {
			s.logger.Warn("no PTY requested", "user", sshSession.User())
			fmt.Fprintln(sshSession.Stderr(), "canvas: a terminal is required, connect with ssh -t")
			_ = sshSession.Exit(1)
			return
		}

		if err := s.play(sshSession, pty, winCh); err != nil {
			s.logger.Warn("session failed", "user", sshSession.User(), "error", err)
		}
		next(sshSession)
	}
}

func (s *SSHServer) play(sshSession ssh.Session, pty ssh.Pty, winCh <-chan ssh.Window) error {
	sceneID := s.sceneFor(sshSession)
	scene, err := registry.Create(sceneID)
	if err != nil {
		return err
	}

	cfg := core.RuntimeConfig{
		ScreenW:  pty.Window.Width,
		ScreenH:  pty.Window.Height,
		TickRate: s.config.TickRate,
		Seed:     time.Now().UnixNano(),
	}

	if _, err := fmt.Fprint(sshSession, enterScreen); err != nil {
		return err
	}
	canvas, err := render.NewCanvas(cfg.ScreenW, cfg.ScreenH, sshSession, s.config.Canvas)
	if err != nil {
		fmt.Fprint(sshSession, leaveScreen)
		return fmt.Errorf("tui: create canvas: %w", err)
	}

	player := NewPlayer(scene, canvas, cfg, PlayerOptions{
		Input:  sshSession,
		Store:  s.store,
		Logger: s.logger.With("user", sshSession.User()),
	})

	ctx, cancel := context.WithCancel(sshSession.Context())
	defer cancel()
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case win, ok := <-winCh:
				if !ok {
					return
				}
				player.Resize(win.Width, win.Height)
			}
		}
	}()

	_, runErr := player.Run(ctx)
	closeErr := canvas.Close()
	fmt.Fprint(sshSession, leaveScreen)

	if errors.Is(runErr, ErrInputClosed) {
		runErr = nil
	}
	return errors.Join(runErr, closeErr)
}

// loggingMiddleware logs SSH session events.
func (s *SSHServer) loggingMiddleware(next ssh.Handler) ssh.Handler {
	return func(sshSession ssh.Session) {
		s.logger.Info("connection opened",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
		)
		next(sshSession)
		s.logger.Info("connection closed",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
		)
	}
}

// ListenAndServe starts the SSH server and blocks until shutdown.
func (s *SSHServer) ListenAndServe() error {
	s.logger.Info("starting SSH server", "address", s.config.Address, "scene", s.config.Scene)

	// Setup signal handling for graceful shutdown
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			s.logger.Error("server error", "error", err)
		}
	}()

	<-done
	s.logger.Info("shutting down...")
	return s.Shutdown()
}

// Shutdown gracefully stops the server.
func (s *SSHServer) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return s.server.Shutdown(ctx)
}

// Addr returns the server's listen address string.
func (s *SSHServer) Addr() string {
	return s.config.Address
}
