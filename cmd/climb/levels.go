package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/skyclimb/internal/progression"
)

var (
	flagFrom int
	flagTo   int
)

var levelsCmd = &cobra.Command{
	Use:   "levels",
	Short: "Show the configuration of a range of levels",
	Long: `Print one row per level: phase, floors, world width, floor 1 budget and
collectible palette. Levels above 50 are BEAST MODE and have no top floor.

Examples:
  climb levels
  climb levels --from 40 --to 60
  climb levels --difficulty hard`,
	Args: cobra.NoArgs,
	Run:  runLevels,
}

func init() {
	levelsCmd.Flags().IntVar(&flagFrom, "from", 1, "First level")
	levelsCmd.Flags().IntVar(&flagTo, "to", progression.BeastModeLevel, "Last level")
}

func runLevels(_ *cobra.Command, _ []string) {
	if flagFrom < 1 || flagTo < flagFrom {
		fatalf("invalid range %d..%d", flagFrom, flagTo)
	}

	s := newSession(false, true)
	defer s.Close()

	fmt.Printf("  %-5s  %-14s  %-9s  %-5s  %-6s  %s\n", "Level", "Phase", "Floors", "Width", "Budget", "Collectibles")
	fmt.Printf("  %-5s  %-14s  %-9s  %-5s  %-6s  %s\n", "-----", "-----", "------", "-----", "------", "------------")

	for level := flagFrom; level <= flagTo; level++ {
		cfg := s.manager.LevelConfig(level)
		fmt.Printf("  %-5d  %-14s  %-9s  %-5d  %-6d  %s\n",
			cfg.LevelNumber,
			cfg.Phase,
			cfg.Floors,
			cfg.WorldWidth,
			cfg.DifficultyBudgetPerFloor,
			collectibleNames(cfg.Collectibles),
		)
	}
}

func collectibleNames(set progression.CollectibleSet) string {
	kinds := set.Kinds()
	names := make([]string, len(kinds))
	for i, k := range kinds {
		names[i] = string(k)
	}
	return strings.Join(names, ",")
}
