package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/skyclimb/internal/config"
	"github.com/vovakirdan/skyclimb/internal/logging"
	"github.com/vovakirdan/skyclimb/internal/progression"
	"github.com/vovakirdan/skyclimb/internal/spawning"
	"github.com/vovakirdan/skyclimb/internal/storage"
)

// driverMemory keeps progress in memory for the lifetime of the process.
const driverMemory = "memory"

// fatalf prints an error and exits.
func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}

// newLogger builds the process logger. Console output is disabled for
// full-screen commands so it cannot corrupt the terminal.
func newLogger(console bool) (*log.Logger, io.Closer) {
	cfg := logging.DefaultConfig()
	cfg.Level = flagLogLevel
	cfg.Format = flagLogFormat
	cfg.File = flagLogFile
	cfg.Console = console

	logger, closer, err := logging.New(cfg)
	if err != nil {
		fatalf("%v", err)
	}
	return logger, closer
}

// loadSpawnConfig loads spawning.yaml and applies the difficulty preset.
func loadSpawnConfig() config.SpawnConfig {
	cfg, err := config.LoadSpawn(flagConfig)
	if err != nil {
		fatalf("%v", err)
	}

	preset, err := config.ParsePreset(flagDifficulty)
	if err != nil {
		fatalf("%v", err)
	}
	config.ApplySpawnPreset(&cfg, preset)

	if err := cfg.Validate(); err != nil {
		fatalf("%v", err)
	}
	return cfg
}

func newSpawner(cfg config.SpawnConfig, logger *log.Logger) *spawning.System {
	sys, err := spawning.New(cfg, spawning.WithSeed(flagSeed), spawning.WithLogger(logger))
	if err != nil {
		fatalf("%v", err)
	}
	return sys
}

// openBackend opens the storage selected by --driver.
func openBackend() storage.Backend {
	if flagDriver == driverMemory {
		return storage.NewMemory()
	}

	store, err := storage.OpenWithConfig(storage.Config{
		Driver: flagDriver,
		Path:   flagDBPath,
		DSN:    flagDSN,
	})
	if err != nil {
		fatalf("opening progress database: %v", err)
	}
	return store
}

// session bundles what a command needs to drive one progression session.
type session struct {
	logger  *log.Logger
	spawner *spawning.System
	backend storage.Backend
	manager *progression.Manager
	closers []io.Closer
}

// newSession wires config, spawner, logger and (optionally) storage into a
// progression manager.
func newSession(withStorage, console bool, opts ...progression.Option) *session {
	logger, logCloser := newLogger(console)
	s := &session{
		logger:  logger,
		spawner: newSpawner(loadSpawnConfig(), logger),
		closers: []io.Closer{logCloser},
	}

	var store progression.KeyValueStore
	if withStorage {
		s.backend = openBackend()
		s.closers = append(s.closers, s.backend)
		store = storage.Profile(s.backend, flagProfile)
	}

	opts = append([]progression.Option{progression.WithLogger(logger)}, opts...)
	s.manager = progression.New(s.spawner, store, opts...)
	return s
}

// Close releases storage and log files in reverse order.
func (s *session) Close() {
	for i := len(s.closers) - 1; i >= 0; i-- {
		if err := s.closers[i].Close(); err != nil {
			s.logger.Warn("close failed", "error", err)
		}
	}
}
