package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/skyclimb/internal/spawning"
)

var flagRolls int

var floorCmd = &cobra.Command{
	Use:   "floor <level> <floor>",
	Short: "Roll the enemies of one floor",
	Long: `Compute the difficulty budget of a floor and roll its enemies.
Floors above the level's floor count are allowed.

Examples:
  climb floor 1 1
  climb floor 30 12 --seed 42
  climb floor 60 500 --rolls 5`,
	Args: cobra.ExactArgs(2),
	Run:  runFloor,
}

func init() {
	floorCmd.Flags().IntVar(&flagRolls, "rolls", 1, "Number of independent rolls")
}

func runFloor(_ *cobra.Command, args []string) {
	level, err := strconv.Atoi(args[0])
	if err != nil || level < 1 {
		fatalf("invalid level %q", args[0])
	}
	floor, err := strconv.Atoi(args[1])
	if err != nil || floor < 1 {
		fatalf("invalid floor %q", args[1])
	}

	s := newSession(false, true)
	defer s.Close()

	for roll := 1; roll <= max(flagRolls, 1); roll++ {
		plan := s.manager.PlanFloor(level, floor)
		if roll == 1 {
			fmt.Printf("Level %d floor %d (difficulty level %d): budget %d\n", plan.Level, plan.Floor, plan.ConfigLevel, plan.Budget)
			fmt.Println()
		}

		counts := spawning.Count(plan.Enemies)
		fmt.Printf("  Roll %d: %d enemies, cost %d/%d\n", roll, len(plan.Enemies), plan.Cost, plan.Budget)
		for _, k := range s.spawner.Kinds() {
			if counts[k] > 0 {
				fmt.Printf("    %-8s x%d\n", k, counts[k])
			}
		}
	}
}
