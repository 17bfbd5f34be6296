package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/skyclimb/internal/progression"
	"github.com/vovakirdan/skyclimb/internal/spawning"
)

var (
	flagSimLevels   int
	flagBeastFloors int
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Climb from level 1 and report enemy totals",
	Long: `Play a session from level 1: every floor of every level is rolled, and
reaching the top floor advances to the next level. Endless levels are played
for --beast-floors floors, after which the run stops.

The furthest level reached is saved to the selected profile.

Examples:
  climb simulate --levels 10
  climb simulate --levels 60 --seed 7 --driver memory`,
	Args: cobra.NoArgs,
	Run:  runSimulate,
}

func init() {
	simulateCmd.Flags().IntVar(&flagSimLevels, "levels", 10, "Number of levels to clear")
	simulateCmd.Flags().IntVar(&flagBeastFloors, "beast-floors", 30, "Floors to play on an endless level")
}

// levelTally sums the enemies of one played level.
type levelTally struct {
	floors int
	cost   int
	counts map[spawning.Kind]int
}

func runSimulate(_ *cobra.Command, _ []string) {
	if flagSimLevels < 1 {
		fatalf("--levels must be at least 1")
	}

	s := newSession(true, true, progression.WithListener(func(e progression.Event) {
		if ev, ok := e.(progression.BeastModeEnteredEvent); ok {
			fmt.Printf("  *** BEAST MODE at level %d ***\n", ev.Level)
		}
	}))
	defer s.Close()

	kinds := s.spawner.Kinds()

	fmt.Printf("  %-5s  %-6s  %-6s", "Level", "Floors", "Cost")
	for _, k := range kinds {
		fmt.Printf("  %-6s", k)
	}
	fmt.Println()

	for played := 0; played < flagSimLevels; played++ {
		level := s.manager.CurrentLevel()
		tally := playLevel(s.manager, flagBeastFloors)

		fmt.Printf("  %-5d  %-6d  %-6d", level, tally.floors, tally.cost)
		for _, k := range kinds {
			fmt.Printf("  %-6d", tally.counts[k])
		}
		fmt.Println()

		if s.manager.IsBeastMode() {
			break
		}
		s.manager.NextLevel()
	}

	fmt.Println()
	fmt.Printf("Stopped at level %d. Furthest level reached (%s): %d\n",
		s.manager.CurrentLevel(), flagProfile, s.manager.FurthestLevel())
}

// playLevel climbs the current level floor by floor until it is complete,
// or for beastFloors floors when it never completes.
func playLevel(m *progression.Manager, beastFloors int) levelTally {
	level := m.CurrentLevel()
	tally := levelTally{counts: make(map[spawning.Kind]int)}

	for floor := 1; ; floor++ {
		plan := m.PlanFloor(level, floor)
		tally.floors++
		tally.cost += plan.Cost
		for _, k := range plan.Enemies {
			tally.counts[k]++
		}

		if m.IsLevelComplete(floor) {
			break
		}
		if m.IsBeastMode() && floor >= beastFloors {
			break
		}
	}
	return tally
}
