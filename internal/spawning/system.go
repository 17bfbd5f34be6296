package spawning

import (
	"fmt"
	"io"
	"math"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/skyclimb/internal/config"
)

// System computes difficulty budgets and fills floors with enemies.
// A System owns its random source and is not safe for concurrent use;
// create one per game session.
type System struct {
	cfg    config.SpawnConfig
	kinds  []Kind // config order, keeps draws reproducible
	costs  map[Kind]int
	rng    *rand.Rand
	logger *log.Logger
}

// Option configures a System.
type Option func(*System)

// WithRand injects the random source used by SelectEnemies.
func WithRand(rng *rand.Rand) Option {
	return func(s *System) {
		if rng != nil {
			s.rng = rng
		}
	}
}

// WithSeed seeds a fresh random source. 0 means seed from the clock.
func WithSeed(seed int64) Option {
	return func(s *System) {
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		s.rng = rand.New(rand.NewSource(seed))
	}
}

// WithLogger sets the logger for selection diagnostics.
func WithLogger(logger *log.Logger) Option {
	return func(s *System) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// New creates a System from a validated spawn config.
func New(cfg config.SpawnConfig, opts ...Option) (*System, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("spawning: %w", err)
	}

	s := &System{
		cfg:    cfg,
		kinds:  make([]Kind, 0, len(cfg.Enemies)),
		costs:  make(map[Kind]int, len(cfg.Enemies)),
		logger: log.New(io.Discard),
	}
	for _, e := range cfg.Enemies {
		k := Kind(e.Kind)
		s.kinds = append(s.kinds, k)
		s.costs[k] = e.Cost
	}

	for _, opt := range opts {
		opt(s)
	}
	if s.rng == nil {
		s.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	return s, nil
}

// MaxLevel returns the highest level with its own tuning.
func (s *System) MaxLevel() int {
	return s.cfg.MaxLevel
}

// CapLevel clamps a level into [1, MaxLevel].
func (s *System) CapLevel(level int) int {
	return max(1, min(level, s.cfg.MaxLevel))
}

// Kinds returns every configured enemy kind in config order.
func (s *System) Kinds() []Kind {
	out := make([]Kind, len(s.kinds))
	copy(out, s.kinds)
	return out
}

// Cost returns the budget cost of a kind, or 0 for unknown kinds.
func (s *System) Cost(k Kind) int {
	return s.costs[k]
}

// TotalCost sums the cost of a selection.
func (s *System) TotalCost(enemies []Kind) int {
	total := 0
	for _, e := range enemies {
		total += s.costs[e]
	}
	return total
}

// DifficultyBudget returns how much enemy cost a floor may hold.
// Non-decreasing in both level and floor; the floor term grows with log2 of
// the floor number and is capped, so endless climbs stay playable.
func (s *System) DifficultyBudget(level, floor int) int {
	level = s.CapLevel(level)
	if floor < 1 {
		floor = 1
	}

	b := s.cfg.Budget
	levelTerm := int(math.Floor(b.Base + b.PerLevel*float64(level-1)))
	floorTerm := int(math.Floor(b.FloorScale * math.Log2(float64(floor))))
	floorTerm = min(floorTerm, b.FloorCap)

	return levelTerm + floorTerm
}

// SpawnWeights returns the weight table for a level.
func (s *System) SpawnWeights(level int) Weights {
	level = s.CapLevel(level)
	w := make(Weights, len(s.cfg.Enemies))
	for _, e := range s.cfg.Enemies {
		w[Kind(e.Kind)] = e.WeightAt(level, s.cfg.MaxLevel)
	}
	return w
}

// SelectEnemies fills a budget with weighted random draws. A draw is kept only
// if its cost fits the remaining budget; the loop ends when no drawable kind
// is affordable, the per-floor cap is reached, or the iteration cap is hit.
// The summed cost of the result never exceeds budget.
func (s *System) SelectEnemies(budget, level int) []Kind {
	if budget <= 0 {
		return nil
	}

	weights := s.SpawnWeights(level)
	total := weights.Total()
	if total <= 0 {
		return nil
	}

	limit := s.cfg.Selection.MaxEnemiesPerFloor
	remaining := budget
	var selected []Kind

	iterations := 0
	for ; iterations < s.cfg.Selection.MaxIterations; iterations++ {
		if limit > 0 && len(selected) >= limit {
			break
		}
		if !s.anyAffordable(weights, remaining) {
			break
		}

		k := s.draw(weights, total)
		if cost := s.costs[k]; cost <= remaining {
			selected = append(selected, k)
			remaining -= cost
		}
	}

	s.logger.Debug("enemies selected",
		"level", s.CapLevel(level),
		"budget", budget,
		"spent", budget-remaining,
		"count", len(selected),
		"iterations", iterations,
	)

	return selected
}

// anyAffordable reports whether some kind with positive weight fits remaining.
func (s *System) anyAffordable(weights Weights, remaining int) bool {
	for _, k := range s.kinds {
		if weights[k] > 0 && s.costs[k] <= remaining {
			return true
		}
	}
	return false
}

// draw picks a kind proportionally to its weight.
func (s *System) draw(weights Weights, total float64) Kind {
	r := s.rng.Float64() * total
	var last Kind
	for _, k := range s.kinds {
		w := weights[k]
		if w <= 0 {
			continue
		}
		if r < w {
			return k
		}
		r -= w
		last = k
	}
	// Float rounding can leave r just above zero after the last kind.
	return last
}
