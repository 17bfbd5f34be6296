package progression

import (
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/skyclimb/internal/spawning"
)

// FurthestLevelKey is the store key of the best level ever reached.
const FurthestLevelKey = "furthest_level_reached"

// Spawner is the enemy budget contract the manager depends on.
// *spawning.System implements it.
type Spawner interface {
	DifficultyBudget(level, floor int) int
	SpawnWeights(level int) spawning.Weights
	SelectEnemies(budget, level int) []spawning.Kind
	TotalCost(enemies []spawning.Kind) int
}

// KeyValueStore is the persistence capability supplied by collaborators.
// Get reports ok=false when the key is absent.
type KeyValueStore interface {
	Get(key string) (value string, ok bool, err error)
	Set(key, value string) error
	Remove(key string) error
}

// MaxStore is implemented by stores that can raise an integer value in a
// single step. The value is written when the stored one is missing, is not a
// positive integer, or is lower.
type MaxStore interface {
	SetMax(key string, value int) error
}

// FloorPlan is the enemy layout of one floor.
type FloorPlan struct {
	Level       int
	ConfigLevel int
	Floor       int
	Budget      int
	Cost        int
	Enemies     []spawning.Kind
}

// Manager owns the current level of one game session. It is created at
// session start and is not safe for concurrent use.
type Manager struct {
	spawner      Spawner
	store        KeyValueStore
	logger       *log.Logger
	listeners    []Listener
	currentLevel int
}

// Option configures a Manager.
type Option func(*Manager)

// WithLogger sets the logger used for persistence and input warnings.
func WithLogger(logger *log.Logger) Option {
	return func(m *Manager) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// WithListener registers a listener for progression events.
func WithListener(l Listener) Option {
	return func(m *Manager) {
		if l != nil {
			m.listeners = append(m.listeners, l)
		}
	}
}

// New creates a session manager starting at level 1. A nil store disables
// persistence; FurthestLevel then always reports 1.
func New(spawner Spawner, store KeyValueStore, opts ...Option) *Manager {
	m := &Manager{
		spawner:      spawner,
		store:        store,
		logger:       log.New(io.Discard),
		currentLevel: 1,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// CurrentLevel returns the active level.
func (m *Manager) CurrentLevel() int {
	return m.currentLevel
}

// LevelConfig derives the configuration of any level. It has no side effects
// beyond a warning for invalid input.
func (m *Manager) LevelConfig(level int) LevelConfig {
	return BuildLevelConfig(m.normalizeLevel(level), m.spawner)
}

// CurrentConfig returns the configuration of the active level.
func (m *Manager) CurrentConfig() LevelConfig {
	return m.LevelConfig(m.currentLevel)
}

// PlanFloor computes the budget and enemy selection of a floor. Floors past
// the level's nominal floor count are allowed.
func (m *Manager) PlanFloor(level, floor int) FloorPlan {
	level = m.normalizeLevel(level)
	configLevel := ConfigLevel(level)
	budget := m.spawner.DifficultyBudget(configLevel, floor)
	enemies := m.spawner.SelectEnemies(budget, configLevel)

	return FloorPlan{
		Level:       level,
		ConfigLevel: configLevel,
		Floor:       floor,
		Budget:      budget,
		Cost:        m.spawner.TotalCost(enemies),
		Enemies:     enemies,
	}
}

// EnemyTypesForFloor returns the enemies to place on a floor.
func (m *Manager) EnemyTypesForFloor(level, floor int) []spawning.Kind {
	return m.PlanFloor(level, floor).Enemies
}

// IsLevelComplete reports whether reaching currentFloor finishes the active
// level. Endless levels never complete.
func (m *Manager) IsLevelComplete(currentFloor int) bool {
	cfg := m.CurrentConfig()
	floors, ok := cfg.Floors.Value()
	if cfg.IsEndless || !ok {
		return false
	}
	return currentFloor >= floors
}

// NextLevel advances to the next level and returns it. There is no upper bound.
func (m *Manager) NextLevel() int {
	m.changeLevel(m.currentLevel + 1)
	return m.currentLevel
}

// SetCurrentLevel jumps directly to a level.
func (m *Manager) SetCurrentLevel(level int) {
	m.changeLevel(m.normalizeLevel(level))
}

// ResetToStart returns to level 1. The furthest level reached is kept.
func (m *Manager) ResetToStart() {
	from := m.currentLevel
	m.currentLevel = 1
	m.logger.Info("progress reset to start", "from", from)
	m.emit(LevelResetEvent{From: from})
}

// IsBeastMode reports whether the active level is endless.
func (m *Manager) IsBeastMode() bool {
	return m.currentLevel >= BeastModeLevel
}

// State returns the state machine position derived from the current level.
func (m *Manager) State() State {
	if m.IsBeastMode() {
		return StateBeastMode
	}
	return StateProgressing
}

// FurthestLevel returns the persisted best level, or 1 when nothing usable
// is stored. It never fails.
func (m *Manager) FurthestLevel() int {
	if m.store == nil {
		return 1
	}

	raw, ok, err := m.store.Get(FurthestLevelKey)
	if err != nil {
		m.logger.Warn("cannot read furthest level", "error", err)
		return 1
	}
	if !ok {
		return 1
	}

	level, err := strconv.Atoi(raw)
	if err != nil || level < 1 {
		m.logger.Warn("ignoring corrupt furthest level", "value", raw)
		return 1
	}
	return level
}

// ClearFurthestLevel forgets the persisted best level. Errors are logged.
func (m *Manager) ClearFurthestLevel() {
	if m.store == nil {
		return
	}
	if err := m.store.Remove(FurthestLevelKey); err != nil {
		m.logger.Warn("cannot clear furthest level", "error", err)
	}
}

// changeLevel moves the pointer, persists progress and notifies listeners.
func (m *Manager) changeLevel(to int) {
	from := m.currentLevel
	m.currentLevel = to
	m.recordFurthest(to)

	m.logger.Debug("level changed", "from", from, "to", to)
	m.emit(LevelAdvancedEvent{From: from, To: to})

	if from < BeastModeLevel && to >= BeastModeLevel {
		m.logger.Info("entering beast mode", "level", to)
		m.emit(BeastModeEnteredEvent{Level: to})
	}
}

// recordFurthest stores level if it beats the persisted value. A failed read
// leaves the stored value alone.
func (m *Manager) recordFurthest(level int) {
	if m.store == nil {
		return
	}

	if ms, ok := m.store.(MaxStore); ok {
		if err := ms.SetMax(FurthestLevelKey, level); err != nil {
			m.logger.Warn("cannot save furthest level", "level", level, "error", err)
		}
		return
	}

	raw, ok, err := m.store.Get(FurthestLevelKey)
	if err != nil {
		m.logger.Warn("cannot read furthest level, not saving", "level", level, "error", err)
		return
	}
	if ok {
		if stored, err := strconv.Atoi(raw); err == nil && stored >= 1 && level <= stored {
			return
		}
	}
	if err := m.store.Set(FurthestLevelKey, strconv.Itoa(level)); err != nil {
		m.logger.Warn("cannot save furthest level", "level", level, "error", err)
	}
}

// normalizeLevel clamps invalid level numbers to 1, or panics in climbdebug builds.
func (m *Manager) normalizeLevel(level int) int {
	if level >= 1 {
		return level
	}
	if strictLevels {
		panic(fmt.Sprintf("progression: invalid level number %d", level))
	}
	m.logger.Warn("invalid level number, using 1", "level", level)
	return 1
}

func (m *Manager) emit(e Event) {
	for _, l := range m.listeners {
		l(e)
	}
}
