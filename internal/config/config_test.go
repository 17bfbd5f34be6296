package config

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestEmbeddedDefaultMatchesHardcoded(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg, err := LoadSpawn("")
	if err != nil {
		t.Fatalf("LoadSpawn() failed: %v", err)
	}
	if !reflect.DeepEqual(cfg, DefaultSpawnConfig()) {
		t.Errorf("embedded spawning.yaml differs from DefaultSpawnConfig():\n got %+v\nwant %+v", cfg, DefaultSpawnConfig())
	}
}

func TestDefaultSpawnConfigIsValid(t *testing.T) {
	if err := DefaultSpawnConfig().Validate(); err != nil {
		t.Fatalf("Validate() = %v, expected nil", err)
	}
}

func TestLoadSpawnCustomPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "spawn.yaml")
	data := []byte(`
max_level: 50
budget:
  base: 1
  per_level: 1
  floor_scale: 0
  floor_cap: 0
selection:
  max_iterations: 50
enemies:
  - kind: slime
    cost: 1
    unlock_level: 1
    weight_start: 1
    weight_end: 1
`)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadSpawn(path)
	if err != nil {
		t.Fatalf("LoadSpawn() failed: %v", err)
	}
	if cfg.MaxLevel != TunedLevels {
		t.Errorf("MaxLevel = %d, expected %d", cfg.MaxLevel, TunedLevels)
	}
	if len(cfg.Enemies) != 1 || cfg.Enemies[0].Kind != "slime" {
		t.Errorf("Enemies = %+v, expected single slime", cfg.Enemies)
	}
}

func TestLoadSpawnCustomPathErrors(t *testing.T) {
	dir := t.TempDir()

	if _, err := LoadSpawn(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("LoadSpawn() with missing file should fail")
	}

	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("max_level: [oops"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadSpawn(bad); err == nil {
		t.Error("LoadSpawn() with malformed YAML should fail")
	}

	invalid := filepath.Join(dir, "invalid.yaml")
	if err := os.WriteFile(invalid, []byte("max_level: 5\nselection:\n  max_iterations: 1\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	_, err := LoadSpawn(invalid)
	if !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("LoadSpawn() error = %v, expected ErrInvalidConfig", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*SpawnConfig)
	}{
		{"zero max level", func(c *SpawnConfig) { c.MaxLevel = 0 }},
		{"max level below tuned levels", func(c *SpawnConfig) { c.MaxLevel = 10 }},
		{"max level above tuned levels", func(c *SpawnConfig) { c.MaxLevel = 60 }},
		{"negative budget", func(c *SpawnConfig) { c.Budget.Base = -1 }},
		{"no iterations", func(c *SpawnConfig) { c.Selection.MaxIterations = 0 }},
		{"negative enemy cap", func(c *SpawnConfig) { c.Selection.MaxEnemiesPerFloor = -1 }},
		{"no enemies", func(c *SpawnConfig) { c.Enemies = nil }},
		{"empty kind", func(c *SpawnConfig) { c.Enemies[0].Kind = "" }},
		{"duplicate kind", func(c *SpawnConfig) { c.Enemies[1].Kind = c.Enemies[0].Kind }},
		{"zero cost", func(c *SpawnConfig) { c.Enemies[0].Cost = 0 }},
		{"zero unlock", func(c *SpawnConfig) { c.Enemies[0].UnlockLevel = 0 }},
		{"negative weight", func(c *SpawnConfig) { c.Enemies[0].WeightEnd = -1 }},
		{"all zero at level 1", func(c *SpawnConfig) {
			c.Enemies[0].WeightStart = 0
			c.Enemies[1].WeightStart = 0
		}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultSpawnConfig()
			tc.mutate(&cfg)
			if err := cfg.Validate(); !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("Validate() = %v, expected ErrInvalidConfig", err)
			}
		})
	}
}

func TestWeightAt(t *testing.T) {
	e := EnemyConfig{Kind: "red", Cost: 5, UnlockLevel: 15, WeightStart: 1, WeightEnd: 6}

	tests := []struct {
		level int
		want  float64
	}{
		{1, 0},   // locked
		{14, 0},  // locked
		{50, 6},  // end of curve
		{80, 6},  // clamped to max level
		{-3, 0},  // clamped to level 1, locked
	}

	for _, tc := range tests {
		got := e.WeightAt(tc.level, 50)
		if got != tc.want {
			t.Errorf("WeightAt(%d) = %v, want %v", tc.level, got, tc.want)
		}
	}

	if w := e.WeightAt(15, 50); w <= 0 {
		t.Errorf("WeightAt(15) = %v, expected positive once unlocked", w)
	}
}

func TestApplySpawnPreset(t *testing.T) {
	base := DefaultSpawnConfig()

	easy := DefaultSpawnConfig()
	ApplySpawnPreset(&easy, DifficultyEasy)
	if easy.Budget.Base >= base.Budget.Base || easy.Budget.PerLevel >= base.Budget.PerLevel {
		t.Errorf("easy preset should shrink the budget, got %+v", easy.Budget)
	}

	hard := DefaultSpawnConfig()
	ApplySpawnPreset(&hard, DifficultyHard)
	if hard.Budget.Base <= base.Budget.Base {
		t.Errorf("hard preset should grow the budget, got %+v", hard.Budget)
	}

	fixed := DefaultSpawnConfig()
	ApplySpawnPreset(&fixed, DifficultyFixed)
	if fixed.Budget.FloorScale != 0 || fixed.Budget.FloorCap != 0 {
		t.Errorf("fixed preset should remove floor growth, got %+v", fixed.Budget)
	}
	if fixed.Budget.Base != base.Budget.Base {
		t.Errorf("fixed preset should keep base budget, got %v", fixed.Budget.Base)
	}
}

func TestParsePreset(t *testing.T) {
	tests := []struct {
		in      string
		want    DifficultyPreset
		wantErr bool
	}{
		{"", DifficultyNormal, false},
		{"normal", DifficultyNormal, false},
		{"easy", DifficultyEasy, false},
		{"hard", DifficultyHard, false},
		{"fixed", DifficultyFixed, false},
		{"nightmare", "", true},
	}

	for _, tc := range tests {
		got, err := ParsePreset(tc.in)
		if (err != nil) != tc.wantErr {
			t.Errorf("ParsePreset(%q) error = %v, wantErr %v", tc.in, err, tc.wantErr)
			continue
		}
		if got != tc.want {
			t.Errorf("ParsePreset(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
