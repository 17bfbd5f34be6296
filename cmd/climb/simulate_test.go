package main

import (
	"testing"

	"github.com/vovakirdan/skyclimb/internal/config"
	"github.com/vovakirdan/skyclimb/internal/progression"
	"github.com/vovakirdan/skyclimb/internal/spawning"
	"github.com/vovakirdan/skyclimb/internal/storage"
)

func newSimManager(t *testing.T) *progression.Manager {
	t.Helper()
	sys, err := spawning.New(config.DefaultSpawnConfig(), spawning.WithSeed(11))
	if err != nil {
		t.Fatalf("spawning.New() failed: %v", err)
	}
	return progression.New(sys, storage.Profile(storage.NewMemory(), "sim"))
}

func TestPlayLevelClimbsEveryFloor(t *testing.T) {
	m := newSimManager(t)

	for _, level := range []int{1, 11, 26, 50} {
		m.SetCurrentLevel(level)
		tally := playLevel(m, 30)

		if want := progression.FloorCountFor(level); tally.floors != want {
			t.Errorf("level %d: played %d floors, expected %d", level, tally.floors, want)
		}
		total := 0
		for _, n := range tally.counts {
			total += n
		}
		if tally.cost > 0 && total == 0 {
			t.Errorf("level %d: cost %d without enemies", level, tally.cost)
		}
	}
}

func TestPlayLevelStopsEndlessLevels(t *testing.T) {
	m := newSimManager(t)
	m.SetCurrentLevel(progression.BeastModeLevel)

	if tally := playLevel(m, 12); tally.floors != 12 {
		t.Errorf("beast level played %d floors, expected 12", tally.floors)
	}
}
