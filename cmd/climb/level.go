package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var flagYAML bool

var levelCmd = &cobra.Command{
	Use:   "level <n>",
	Short: "Show one level in detail",
	Long: `Show the full configuration of a level, including the enemy spawn weights.

Examples:
  climb level 7
  climb level 51 --yaml`,
	Args: cobra.ExactArgs(1),
	Run:  runLevel,
}

func init() {
	levelCmd.Flags().BoolVar(&flagYAML, "yaml", false, "Print the configuration as YAML")
}

func runLevel(_ *cobra.Command, args []string) {
	level, err := strconv.Atoi(args[0])
	if err != nil || level < 1 {
		fatalf("invalid level %q", args[0])
	}

	s := newSession(false, true)
	defer s.Close()

	cfg := s.manager.LevelConfig(level)

	if flagYAML {
		enc := yaml.NewEncoder(os.Stdout)
		enc.SetIndent(2)
		if err := enc.Encode(cfg); err != nil {
			fatalf("encoding level: %v", err)
		}
		enc.Close()
		return
	}

	fmt.Printf("Level %d (%s)\n", cfg.LevelNumber, cfg.Phase)
	fmt.Println()
	fmt.Printf("  Floors:        %s\n", cfg.Floors)
	fmt.Printf("  World width:   %d\n", cfg.WorldWidth)
	fmt.Printf("  Collectibles:  %s\n", collectibleNames(cfg.Collectibles))
	fmt.Printf("  Budget/floor:  %d\n", cfg.DifficultyBudgetPerFloor)
	fmt.Printf("  Endless:       %v\n", cfg.IsEndless)
	fmt.Println()
	fmt.Println("  Spawn weights:")

	w := cfg.EnemySpawnWeights
	for _, k := range w.Kinds() {
		fmt.Printf("    %-8s %6.2f  (%4.1f%%, cost %d)\n", k, w[k], w.Share(k)*100, s.spawner.Cost(k))
	}
}
