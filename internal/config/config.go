// Package config provides YAML-based spawn tuning and difficulty presets
// for the climb progression core.
package config

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidConfig is returned (wrapped) when a spawn config fails validation.
var ErrInvalidConfig = errors.New("config: invalid spawn config")

// TunedLevels is the number of levels with their own tuning. Every later
// level reuses the last one, so max_level must match it.
const TunedLevels = 50

// SpawnConfig contains all tuning for the enemy budget system.
type SpawnConfig struct {
	MaxLevel  int             `yaml:"max_level"`
	Budget    BudgetConfig    `yaml:"budget"`
	Selection SelectionConfig `yaml:"selection"`
	Enemies   []EnemyConfig   `yaml:"enemies"`
}

// BudgetConfig defines the per-floor difficulty budget curve.
type BudgetConfig struct {
	Base       float64 `yaml:"base"`
	PerLevel   float64 `yaml:"per_level"`
	FloorScale float64 `yaml:"floor_scale"`
	FloorCap   int     `yaml:"floor_cap"`
}

// SelectionConfig bounds the budget fill loop.
type SelectionConfig struct {
	MaxIterations      int `yaml:"max_iterations"`
	MaxEnemiesPerFloor int `yaml:"max_enemies_per_floor"` // 0 = no cap
}

// EnemyConfig defines cost and weight curve for one enemy kind.
type EnemyConfig struct {
	Kind        string  `yaml:"kind"`
	Cost        int     `yaml:"cost"`
	UnlockLevel int     `yaml:"unlock_level"`
	WeightStart float64 `yaml:"weight_start"`
	WeightEnd   float64 `yaml:"weight_end"`
}

// WeightAt returns the spawn weight of this kind at the given level.
// Levels are clamped to [1, maxLevel].
func (e EnemyConfig) WeightAt(level, maxLevel int) float64 {
	if maxLevel < 1 {
		maxLevel = 1
	}
	level = max(1, min(level, maxLevel))
	if level < e.UnlockLevel {
		return 0
	}

	progress := 0.0
	if maxLevel > 1 {
		progress = float64(level-1) / float64(maxLevel-1)
	}
	progress = clampF(progress, 0.0, 1.0)

	return math.Max(0, e.WeightStart+progress*(e.WeightEnd-e.WeightStart))
}

// Validate checks the config for values the selection loop cannot work with.
func (c SpawnConfig) Validate() error {
	if c.MaxLevel != TunedLevels {
		return fmt.Errorf("%w: max_level must be %d, got %d", ErrInvalidConfig, TunedLevels, c.MaxLevel)
	}
	if c.Budget.Base < 0 || c.Budget.PerLevel < 0 || c.Budget.FloorScale < 0 || c.Budget.FloorCap < 0 {
		return fmt.Errorf("%w: budget parameters must be non-negative", ErrInvalidConfig)
	}
	if c.Selection.MaxIterations < 1 {
		return fmt.Errorf("%w: selection.max_iterations must be >= 1", ErrInvalidConfig)
	}
	if c.Selection.MaxEnemiesPerFloor < 0 {
		return fmt.Errorf("%w: selection.max_enemies_per_floor must be >= 0", ErrInvalidConfig)
	}
	if len(c.Enemies) == 0 {
		return fmt.Errorf("%w: no enemies defined", ErrInvalidConfig)
	}

	seen := make(map[string]bool, len(c.Enemies))
	for _, e := range c.Enemies {
		switch {
		case e.Kind == "":
			return fmt.Errorf("%w: enemy with empty kind", ErrInvalidConfig)
		case seen[e.Kind]:
			return fmt.Errorf("%w: duplicate enemy kind %q", ErrInvalidConfig, e.Kind)
		case e.Cost < 1:
			return fmt.Errorf("%w: enemy %q cost must be >= 1, got %d", ErrInvalidConfig, e.Kind, e.Cost)
		case e.UnlockLevel < 1:
			return fmt.Errorf("%w: enemy %q unlock_level must be >= 1", ErrInvalidConfig, e.Kind)
		case e.WeightStart < 0 || e.WeightEnd < 0:
			return fmt.Errorf("%w: enemy %q has a negative weight", ErrInvalidConfig, e.Kind)
		}
		seen[e.Kind] = true
	}

	// Every level needs at least one drawable kind.
	for level := 1; level <= c.MaxLevel; level++ {
		total := 0.0
		for _, e := range c.Enemies {
			total += e.WeightAt(level, c.MaxLevel)
		}
		if total <= 0 {
			return fmt.Errorf("%w: all spawn weights are zero at level %d", ErrInvalidConfig, level)
		}
	}

	return nil
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset converts a flag value to a preset. Empty means normal.
func ParsePreset(s string) (DifficultyPreset, error) {
	switch DifficultyPreset(s) {
	case "", DifficultyNormal:
		return DifficultyNormal, nil
	case DifficultyEasy, DifficultyHard, DifficultyFixed:
		return DifficultyPreset(s), nil
	}
	return "", fmt.Errorf("config: unknown difficulty preset %q (want easy, normal, hard or fixed)", s)
}

// BudgetMultiplierForPreset returns the budget scale for a difficulty preset.
func BudgetMultiplierForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.75
	case DifficultyHard:
		return 1.3
	default:
		return 1.0
	}
}

// ApplySpawnPreset modifies the config based on a difficulty preset.
func ApplySpawnPreset(cfg *SpawnConfig, preset DifficultyPreset) {
	if preset == DifficultyFixed {
		// Floors no longer get harder within a level.
		cfg.Budget.FloorScale = 0
		cfg.Budget.FloorCap = 0
		return
	}

	mult := BudgetMultiplierForPreset(preset)
	cfg.Budget.Base *= mult
	cfg.Budget.PerLevel *= mult
}

// clampF restricts a float64 to [min, max].
func clampF(val, min, max float64) float64 {
	return math.Max(min, math.Min(max, val))
}
