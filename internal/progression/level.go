// Package progression owns the climb's level pointer and derives the full
// configuration of any level: floor count, world width, collectibles and the
// enemy difficulty inputs.
package progression

import (
	"sort"
	"strconv"

	"github.com/zyedidia/generic/mapset"

	"github.com/vovakirdan/skyclimb/internal/config"
	"github.com/vovakirdan/skyclimb/internal/spawning"
)

const (
	// MaxProgressionLevel is the last level with its own difficulty tuning.
	MaxProgressionLevel = config.TunedLevels
	// BeastModeLevel is the first endless level.
	BeastModeLevel = MaxProgressionLevel + 1
)

// FloorCount is either a finite number of floors or unbounded (BEAST MODE).
type FloorCount struct {
	n         int
	unbounded bool
}

// Finite returns a bounded floor count.
func Finite(n int) FloorCount {
	return FloorCount{n: n}
}

// Unbounded returns the endless floor count.
func Unbounded() FloorCount {
	return FloorCount{unbounded: true}
}

// IsUnbounded reports whether the level has no top floor.
func (f FloorCount) IsUnbounded() bool {
	return f.unbounded
}

// Value returns the floor count and true, or 0 and false when unbounded.
func (f FloorCount) Value() (int, bool) {
	if f.unbounded {
		return 0, false
	}
	return f.n, true
}

// Int returns the floor count, or -1 when unbounded.
func (f FloorCount) Int() int {
	if f.unbounded {
		return -1
	}
	return f.n
}

func (f FloorCount) String() string {
	if f.unbounded {
		return "unbounded"
	}
	return strconv.Itoa(f.n)
}

// MarshalYAML writes the count as an integer or the word "unbounded".
func (f FloorCount) MarshalYAML() (any, error) {
	if f.unbounded {
		return "unbounded", nil
	}
	return f.n, nil
}

// Collectible identifies a pickup kind.
type Collectible string

const (
	CollectibleCoin          Collectible = "coin"
	CollectibleGem           Collectible = "gem"
	CollectibleTreasureChest Collectible = "treasure_chest"
	CollectiblePendant       Collectible = "pendant"
)

// collectibleOrder is the introduction order, used for stable listings.
var collectibleOrder = []Collectible{
	CollectibleCoin,
	CollectibleGem,
	CollectibleTreasureChest,
	CollectiblePendant,
}

// CollectibleSet is an unordered set of collectible kinds.
type CollectibleSet struct {
	set mapset.Set[Collectible]
}

// NewCollectibleSet builds a set from the given kinds.
func NewCollectibleSet(kinds ...Collectible) CollectibleSet {
	s := CollectibleSet{set: mapset.New[Collectible]()}
	for _, k := range kinds {
		s.set.Put(k)
	}
	return s
}

// Has reports whether the kind is in the set.
func (s CollectibleSet) Has(k Collectible) bool {
	return s.set.Has(k)
}

// Len returns the number of kinds.
func (s CollectibleSet) Len() int {
	return s.set.Size()
}

// Kinds returns the kinds in introduction order; unknown kinds follow, sorted.
func (s CollectibleSet) Kinds() []Collectible {
	out := make([]Collectible, 0, s.Len())
	known := make(map[Collectible]bool, len(collectibleOrder))
	for _, k := range collectibleOrder {
		known[k] = true
		if s.Has(k) {
			out = append(out, k)
		}
	}

	var extra []Collectible
	s.set.Each(func(k Collectible) {
		if !known[k] {
			extra = append(extra, k)
		}
	})
	sort.Slice(extra, func(i, j int) bool { return extra[i] < extra[j] })

	return append(out, extra...)
}

// IsSupersetOf reports whether every kind of other is also in s.
func (s CollectibleSet) IsSupersetOf(other CollectibleSet) bool {
	superset := true
	other.set.Each(func(k Collectible) {
		if !s.Has(k) {
			superset = false
		}
	})
	return superset
}

// MarshalYAML writes the set as an ordered list.
func (s CollectibleSet) MarshalYAML() (any, error) {
	return s.Kinds(), nil
}

// LevelConfig is the derived configuration of one level. It is never stored;
// every query recomputes it.
type LevelConfig struct {
	LevelNumber              int              `yaml:"level"`
	Phase                    string           `yaml:"phase"`
	Floors                   FloorCount       `yaml:"floors"`
	WorldWidth               int              `yaml:"world_width"`
	Collectibles             CollectibleSet   `yaml:"collectibles"`
	IsEndless                bool             `yaml:"endless"`
	DifficultyBudgetPerFloor int              `yaml:"difficulty_budget_per_floor"`
	EnemySpawnWeights        spawning.Weights `yaml:"enemy_spawn_weights"`
}

// phase maps a level range onto a floor-count range.
type phase struct {
	name        string
	first, last int
	minFloors   int
	maxFloors   int
}

var phases = []phase{
	{name: "tutorial", first: 1, last: 10, minFloors: 10, maxFloors: 12},
	{name: "skill-building", first: 11, last: 25, minFloors: 13, maxFloors: 18},
	{name: "challenge", first: 26, last: 40, minFloors: 19, maxFloors: 25},
	{name: "master", first: 41, last: 50, minFloors: 25, maxFloors: 30},
}

// phaseFor returns the phase holding a capped level (1..50).
func phaseFor(level int) phase {
	for _, ph := range phases {
		if level <= ph.last {
			return ph
		}
	}
	return phases[len(phases)-1]
}

// PhaseName returns the progression phase of a level. BEAST MODE levels
// report "beast".
func PhaseName(level int) string {
	if level >= BeastModeLevel {
		return "beast"
	}
	return phaseFor(max(level, 1)).name
}

// FloorCountFor returns the number of floors of a capped level. Each phase
// spreads its floor range linearly over its levels.
func FloorCountFor(level int) int {
	level = max(1, min(level, MaxProgressionLevel))
	ph := phaseFor(level)

	progress := float64(level-ph.first) / float64(ph.last-ph.first+1)
	span := ph.maxFloors - ph.minFloors + 1
	floors := ph.minFloors + int(progress*float64(span))

	return min(floors, ph.maxFloors)
}

// WorldWidthFor returns the world width in tiles.
func WorldWidthFor(level int) int {
	switch {
	case level < 25:
		return 24
	case level < 50:
		return 32
	default:
		return 40
	}
}

// CollectiblesFor returns the collectible palette. Higher tiers are strict
// supersets of lower ones.
func CollectiblesFor(level int) CollectibleSet {
	switch {
	case level <= 2:
		return NewCollectibleSet(CollectibleCoin)
	case level <= 3:
		return NewCollectibleSet(CollectibleCoin, CollectibleGem)
	case level <= 6:
		return NewCollectibleSet(CollectibleCoin, CollectibleGem, CollectibleTreasureChest)
	default:
		return NewCollectibleSet(CollectibleCoin, CollectibleGem, CollectibleTreasureChest, CollectiblePendant)
	}
}

// ConfigLevel caps a level for difficulty lookups.
func ConfigLevel(level int) int {
	return min(level, MaxProgressionLevel)
}

// BuildLevelConfig derives the configuration of a level (>= 1) from the
// spawner's budget and weight curves.
func BuildLevelConfig(level int, spawner Spawner) LevelConfig {
	configLevel := ConfigLevel(level)
	endless := level >= BeastModeLevel

	floors := Finite(FloorCountFor(configLevel))
	if endless {
		floors = Unbounded()
	}

	return LevelConfig{
		LevelNumber:              level,
		Phase:                    PhaseName(level),
		Floors:                   floors,
		WorldWidth:               WorldWidthFor(configLevel),
		Collectibles:             CollectiblesFor(configLevel),
		IsEndless:                endless,
		DifficultyBudgetPerFloor: spawner.DifficultyBudget(configLevel, 1),
		EnemySpawnWeights:        spawner.SpawnWeights(configLevel),
	}
}
