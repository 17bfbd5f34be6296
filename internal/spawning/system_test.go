package spawning

import (
	"math/rand"
	"reflect"
	"testing"

	"github.com/vovakirdan/skyclimb/internal/config"
)

func newTestSystem(t *testing.T, seed int64) *System {
	t.Helper()
	s, err := New(config.DefaultSpawnConfig(), WithRand(rand.New(rand.NewSource(seed))))
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	return s
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	cfg := config.DefaultSpawnConfig()
	cfg.Enemies = nil
	if _, err := New(cfg); err == nil {
		t.Error("New() with no enemies should fail")
	}
}

func TestDifficultyBudgetValues(t *testing.T) {
	s := newTestSystem(t, 1)

	tests := []struct {
		level, floor, want int
	}{
		{1, 1, 2},         // base only
		{1, 2, 5},         // + 3*log2(2)
		{1, 16, 14},       // floor term hits cap 12
		{1, 1_000_000, 14}, // stays capped
		{50, 1, 21},       // 2 + 0.4*49
		{50, 30, 33},      // capped floor term
		{51, 30, 33},      // level capped at 50
		{0, 0, 2},         // clamped to level 1, floor 1
	}

	for _, tc := range tests {
		got := s.DifficultyBudget(tc.level, tc.floor)
		if got != tc.want {
			t.Errorf("DifficultyBudget(%d, %d) = %d, want %d", tc.level, tc.floor, got, tc.want)
		}
	}
}

func TestDifficultyBudgetMonotonicInFloor(t *testing.T) {
	s := newTestSystem(t, 1)

	for level := 1; level <= 50; level++ {
		prev := s.DifficultyBudget(level, 1)
		for floor := 2; floor <= 30; floor++ {
			got := s.DifficultyBudget(level, floor)
			if got < prev {
				t.Fatalf("level %d: budget dropped from %d to %d at floor %d", level, prev, got, floor)
			}
			prev = got
		}
	}
}

func TestDifficultyBudgetMonotonicInLevel(t *testing.T) {
	s := newTestSystem(t, 1)

	for _, floor := range []int{1, 5, 10, 30, 500} {
		prev := s.DifficultyBudget(1, floor)
		for level := 2; level <= 60; level++ {
			got := s.DifficultyBudget(level, floor)
			if got < prev {
				t.Fatalf("floor %d: budget dropped from %d to %d at level %d", floor, prev, got, level)
			}
			prev = got
		}
	}
}

func TestDifficultyBudgetBounded(t *testing.T) {
	s := newTestSystem(t, 1)
	ceiling := s.DifficultyBudget(50, 1) + config.DefaultSpawnConfig().Budget.FloorCap

	for _, floor := range []int{100, 10_000, 1 << 30} {
		if got := s.DifficultyBudget(80, floor); got > ceiling {
			t.Errorf("DifficultyBudget(80, %d) = %d, expected <= %d", floor, got, ceiling)
		}
	}
}

func TestSpawnWeightsShiftTowardHarderKinds(t *testing.T) {
	s := newTestSystem(t, 1)

	early := s.SpawnWeights(1)
	late := s.SpawnWeights(50)

	if early[KindRed] != 0 || early[KindGreen] != 0 {
		t.Errorf("level 1 weights = %v, expected green and red locked", early)
	}
	if late[KindRed] <= 0 || late[KindGreen] <= 0 {
		t.Errorf("level 50 weights = %v, expected green and red unlocked", late)
	}
	if late.Share(KindBlue) >= early.Share(KindBlue) {
		t.Errorf("blue share should fall: level 1 = %.2f, level 50 = %.2f", early.Share(KindBlue), late.Share(KindBlue))
	}

	for level := 1; level <= 60; level++ {
		w := s.SpawnWeights(level)
		if w.Total() <= 0 {
			t.Fatalf("SpawnWeights(%d) is all zero", level)
		}
		for k, v := range w {
			if v < 0 {
				t.Fatalf("SpawnWeights(%d)[%s] = %v, expected non-negative", level, k, v)
			}
		}
	}

	if !reflect.DeepEqual(s.SpawnWeights(51), s.SpawnWeights(50)) {
		t.Error("SpawnWeights(51) should equal the capped level 50 table")
	}
}

func TestSelectEnemiesZeroBudget(t *testing.T) {
	s := newTestSystem(t, 7)

	for _, level := range []int{1, 10, 50, 99} {
		if got := s.SelectEnemies(0, level); len(got) != 0 {
			t.Errorf("SelectEnemies(0, %d) = %v, expected empty", level, got)
		}
		if got := s.SelectEnemies(-5, level); len(got) != 0 {
			t.Errorf("SelectEnemies(-5, %d) = %v, expected empty", level, got)
		}
	}
}

func TestSelectEnemiesNeverExceedsBudget(t *testing.T) {
	for seed := int64(1); seed <= 20; seed++ {
		s := newTestSystem(t, seed)
		for level := 1; level <= 50; level += 7 {
			for budget := 0; budget <= 40; budget++ {
				got := s.SelectEnemies(budget, level)
				if cost := s.TotalCost(got); cost > budget {
					t.Fatalf("seed %d level %d: cost %d exceeds budget %d (%v)", seed, level, cost, budget, got)
				}
			}
		}
	}
}

func TestSelectEnemiesSpendsCheapBudget(t *testing.T) {
	// Blue costs 1 and always has weight, so the fill only stops at zero.
	s := newTestSystem(t, 3)
	got := s.SelectEnemies(2, 1)
	if cost := s.TotalCost(got); cost != 2 {
		t.Errorf("SelectEnemies(2, 1) spent %d, expected 2 (%v)", cost, got)
	}
}

func TestSelectEnemiesOnlyUsesUnlockedKinds(t *testing.T) {
	s := newTestSystem(t, 11)
	for i := 0; i < 50; i++ {
		for _, k := range s.SelectEnemies(14, 1) {
			if k != KindBlue && k != KindYellow {
				t.Fatalf("level 1 selection contains locked kind %q", k)
			}
		}
	}
}

func TestSelectEnemiesRespectsFloorCap(t *testing.T) {
	cfg := config.DefaultSpawnConfig()
	cfg.Selection.MaxEnemiesPerFloor = 3
	s, err := New(cfg, WithSeed(5))
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}

	if got := s.SelectEnemies(1000, 50); len(got) > 3 {
		t.Errorf("SelectEnemies() returned %d enemies, expected at most 3", len(got))
	}
}

func TestSelectEnemiesTerminatesWhenNothingAffordable(t *testing.T) {
	cfg := config.DefaultSpawnConfig()
	cfg.Enemies = []config.EnemyConfig{
		{Kind: "ogre", Cost: 10, UnlockLevel: 1, WeightStart: 1, WeightEnd: 1},
	}
	s, err := New(cfg, WithSeed(5))
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}

	if got := s.SelectEnemies(9, 1); len(got) != 0 {
		t.Errorf("SelectEnemies(9, 1) = %v, expected empty", got)
	}
	if got := s.SelectEnemies(25, 1); len(got) != 2 {
		t.Errorf("SelectEnemies(25, 1) = %v, expected two ogres", got)
	}
}

func TestSelectEnemiesDeterministic(t *testing.T) {
	a := newTestSystem(t, 12345)
	b := newTestSystem(t, 12345)

	for floor := 1; floor <= 30; floor++ {
		budget := a.DifficultyBudget(30, floor)
		gotA := a.SelectEnemies(budget, 30)
		gotB := b.SelectEnemies(budget, 30)
		if !reflect.DeepEqual(gotA, gotB) {
			t.Fatalf("floor %d: selections differ with same seed: %v vs %v", floor, gotA, gotB)
		}
	}
}

func TestWeightsHelpers(t *testing.T) {
	w := Weights{KindRed: 1, KindBlue: 3}

	if w.Total() != 4 {
		t.Errorf("Total() = %v, expected 4", w.Total())
	}
	if w.Share(KindBlue) != 0.75 {
		t.Errorf("Share(blue) = %v, expected 0.75", w.Share(KindBlue))
	}
	if got := w.Kinds(); !reflect.DeepEqual(got, []Kind{KindBlue, KindRed}) {
		t.Errorf("Kinds() = %v, expected [blue red]", got)
	}
	if (Weights{}).Share(KindBlue) != 0 {
		t.Error("Share() on empty table should be 0")
	}

	counts := Count([]Kind{KindBlue, KindRed, KindBlue})
	if counts[KindBlue] != 2 || counts[KindRed] != 1 {
		t.Errorf("Count() = %v, expected blue=2 red=1", counts)
	}
}
