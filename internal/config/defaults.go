package config

import (
	_ "embed"
)

//go:embed defaults/spawning.yaml
var defaultSpawnYAML []byte

// DefaultSpawnConfig returns the default spawn configuration.
// It mirrors defaults/spawning.yaml and is used if the embedded file fails to parse.
func DefaultSpawnConfig() SpawnConfig {
	return SpawnConfig{
		MaxLevel: TunedLevels,
		Budget: BudgetConfig{
			Base:       2,
			PerLevel:   0.4,
			FloorScale: 3.0,
			FloorCap:   12,
		},
		Selection: SelectionConfig{
			MaxIterations:      200,
			MaxEnemiesPerFloor: 16,
		},
		Enemies: []EnemyConfig{
			{Kind: "blue", Cost: 1, UnlockLevel: 1, WeightStart: 10, WeightEnd: 2},
			{Kind: "yellow", Cost: 2, UnlockLevel: 1, WeightStart: 4, WeightEnd: 5},
			{Kind: "green", Cost: 3, UnlockLevel: 5, WeightStart: 2, WeightEnd: 6},
			{Kind: "red", Cost: 5, UnlockLevel: 15, WeightStart: 1, WeightEnd: 6},
		},
	}
}
