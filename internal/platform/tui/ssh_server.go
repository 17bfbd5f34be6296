// Package tui provides the level browser and its SSH server built on Wish.
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

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/bubbletea"

	"github.com/vovakirdan/skyclimb/internal/progression"
	"github.com/vovakirdan/skyclimb/internal/storage"
)

// SSHServerConfig holds configuration for the SSH server.
type SSHServerConfig struct {
	// Address is the host:port to listen on (e.g., ":23234").
	Address string

	// HostKeyPath is the path to the host key file.
	// If empty, a key will be auto-generated at ~/.climb/host_key.
	HostKeyPath string

	// IdleTimeout is how long to wait before closing idle connections.
	IdleTimeout time.Duration
}

// DefaultSSHServerConfig returns a config with sensible defaults.
func DefaultSSHServerConfig() SSHServerConfig {
	return SSHServerConfig{
		Address:     ":23234",
		IdleTimeout: 30 * time.Minute,
	}
}

// SpawnerFactory builds a fresh spawner for one session.
type SpawnerFactory func() (progression.Spawner, error)

// SSHServer serves the level browser over SSH. Every session gets its own
// progression manager; progress is stored under the SSH user name.
type SSHServer struct {
	config     SSHServerConfig
	server     *ssh.Server
	store      storage.Backend
	newSpawner SpawnerFactory
	logger     *log.Logger
}

// NewSSHServer creates a new SSH server with the given configuration. The
// server does not own store; the caller closes it after Shutdown.
func NewSSHServer(cfg SSHServerConfig, store storage.Backend, newSpawner SpawnerFactory, logger *log.Logger) (*SSHServer, error) {
	if logger == nil {
		logger = log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Prefix:          "climb-ssh",
		})
	}

	srv := &SSHServer{
		config:     cfg,
		store:      store,
		newSpawner: newSpawner,
		logger:     logger,
	}

	hostKeyPath := cfg.HostKeyPath
	if hostKeyPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("tui: cannot get home directory: %w", err)
		}
		hostKeyPath = filepath.Join(home, ".climb", "host_key")
	}

	hostKeyDir := filepath.Dir(hostKeyPath)
	if err := os.MkdirAll(hostKeyDir, 0o700); err != nil {
		return nil, fmt.Errorf("tui: cannot create host key directory: %w", err)
	}

	server, err := wish.NewServer(
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(hostKeyPath),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		wish.WithMiddleware(
			bubbletea.Middleware(srv.teaHandler),
			srv.loggingMiddleware,
		),
	)
	if err != nil {
		return nil, fmt.Errorf("tui: cannot create SSH server: %w", err)
	}

	srv.server = server
	return srv, nil
}

// NewSessionManager creates the progression manager for one user. Level
// events are logged with the user name attached.
func (s *SSHServer) NewSessionManager(user string) (*progression.Manager, error) {
	spawner, err := s.newSpawner()
	if err != nil {
		return nil, err
	}

	sessionLog := s.logger.With("user", user)
	var store progression.KeyValueStore
	if s.store != nil {
		store = storage.Profile(s.store, user)
	}

	return progression.New(spawner, store,
		progression.WithLogger(sessionLog),
		progression.WithListener(func(e progression.Event) {
			switch ev := e.(type) {
			case progression.LevelAdvancedEvent:
				sessionLog.Debug("level advanced", "from", ev.From, "to", ev.To)
			case progression.LevelResetEvent:
				sessionLog.Info("level reset", "from", ev.From)
			case progression.BeastModeEnteredEvent:
				sessionLog.Info("beast mode entered", "level", ev.Level)
			}
		}),
	), nil
}

// teaHandler creates a Bubble Tea program for each SSH session.
func (s *SSHServer) teaHandler(sshSession ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, ok := sshSession.Pty()
	if !ok {
		s.logger.Warn("no PTY requested", "user", sshSession.User())
		return nil, nil
	}

	manager, err := s.NewSessionManager(sshSession.User())
	if err != nil {
		s.logger.Error("cannot start session", "user", sshSession.User(), "error", err)
		return nil, nil
	}

	model := NewBrowserModel(manager, sshSession.User(), pty.Window.Width, pty.Window.Height)
	return model, []tea.ProgramOption{
		tea.WithAltScreen(),
	}
}

// loggingMiddleware logs SSH session events.
func (s *SSHServer) loggingMiddleware(next ssh.Handler) ssh.Handler {
	return func(sshSession ssh.Session) {
		s.logger.Info("session started",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
		)
		next(sshSession)
		s.logger.Info("session ended",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
		)
	}
}

// ListenAndServe starts the SSH server and blocks until shutdown.
func (s *SSHServer) ListenAndServe() error {
	s.logger.Info("starting SSH server", "address", s.config.Address)

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-done:
		s.logger.Info("shutting down...")
		return s.Shutdown()
	case err := <-errCh:
		s.logger.Error("server error", "error", err)
		return err
	}
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
