package tui

import (
	"path/filepath"
	"testing"

	"github.com/vovakirdan/skyclimb/internal/config"
	"github.com/vovakirdan/skyclimb/internal/logging"
	"github.com/vovakirdan/skyclimb/internal/progression"
	"github.com/vovakirdan/skyclimb/internal/spawning"
	"github.com/vovakirdan/skyclimb/internal/storage"
)

func newTestServer(t *testing.T, store storage.Backend) *SSHServer {
	t.Helper()
	cfg := DefaultSSHServerConfig()
	cfg.Address = "127.0.0.1:0"
	cfg.HostKeyPath = filepath.Join(t.TempDir(), "keys", "host_key")

	factory := func() (progression.Spawner, error) {
		return spawning.New(config.DefaultSpawnConfig(), spawning.WithSeed(3))
	}

	srv, err := NewSSHServer(cfg, store, factory, logging.Discard())
	if err != nil {
		t.Fatalf("NewSSHServer() failed: %v", err)
	}
	return srv
}

func TestSessionManagersAreIsolatedPerUser(t *testing.T) {
	store := storage.NewMemory()
	srv := newTestServer(t, store)

	alice, err := srv.NewSessionManager("alice")
	if err != nil {
		t.Fatalf("NewSessionManager() failed: %v", err)
	}
	bob, err := srv.NewSessionManager("bob")
	if err != nil {
		t.Fatalf("NewSessionManager() failed: %v", err)
	}

	alice.SetCurrentLevel(12)
	if bob.CurrentLevel() != 1 || bob.FurthestLevel() != 1 {
		t.Errorf("bob sees alice's progress: current %d, furthest %d", bob.CurrentLevel(), bob.FurthestLevel())
	}

	again, _ := srv.NewSessionManager("alice")
	if again.CurrentLevel() != 1 {
		t.Errorf("new session CurrentLevel() = %d, expected 1", again.CurrentLevel())
	}
	if again.FurthestLevel() != 12 {
		t.Errorf("new session FurthestLevel() = %d, expected 12", again.FurthestLevel())
	}

	if v, ok, _ := store.Get("alice", progression.FurthestLevelKey); !ok || v != "12" {
		t.Errorf("stored value = %q, %v", v, ok)
	}
}

func TestSessionManagerWithoutStore(t *testing.T) {
	srv := newTestServer(t, nil)

	mgr, err := srv.NewSessionManager("guest")
	if err != nil {
		t.Fatalf("NewSessionManager() failed: %v", err)
	}
	mgr.NextLevel()
	if mgr.FurthestLevel() != 1 {
		t.Errorf("FurthestLevel() = %d without storage, expected 1", mgr.FurthestLevel())
	}
}

// hookBackend runs before once, ahead of the first SetMax it forwards.
type hookBackend struct {
	storage.Backend
	before func()
}

func (h *hookBackend) SetMax(profile, key string, value int) error {
	if h.before != nil {
		run := h.before
		h.before = nil
		run()
	}
	return h.Backend.SetMax(profile, key, value)
}

func TestSameUserSessionsNeverLowerFurthest(t *testing.T) {
	mem := storage.NewMemory()
	hook := &hookBackend{Backend: mem}
	srv := newTestServer(t, hook)

	first, err := srv.NewSessionManager("alice")
	if err != nil {
		t.Fatalf("NewSessionManager() failed: %v", err)
	}
	second, err := srv.NewSessionManager("alice")
	if err != nil {
		t.Fatalf("NewSessionManager() failed: %v", err)
	}

	hook.before = func() { second.SetCurrentLevel(30) }
	first.SetCurrentLevel(10)

	if v, _, _ := mem.Get("alice", progression.FurthestLevelKey); v != "30" {
		t.Errorf("stored furthest = %q, expected 30", v)
	}
	if first.FurthestLevel() != 30 || second.FurthestLevel() != 30 {
		t.Errorf("FurthestLevel() = %d/%d, expected 30", first.FurthestLevel(), second.FurthestLevel())
	}
}
