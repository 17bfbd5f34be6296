// climb inspects and drives the skyclimb progression core from the terminal.
//
// Usage:
//
//	climb levels                 - Table of level configurations
//	climb level <n>              - One level in detail
//	climb floor <level> <floor>  - Budget and enemies of a floor
//	climb simulate               - Play a session from level 1
//	climb progress               - Show or change saved progress
//	climb browse                 - Interactive level browser
//	climb serve                  - Level browser over SSH
//
// Global flags:
//
//	--seed <value>        - RNG seed for reproducible enemy rolls
//	--db <path>           - SQLite database path (default: ~/.climb/progress.db)
//	--driver <name>       - Storage driver: sqlite, postgres or memory
//	--profile <name>      - Progress profile (default: local)
//	--config <path>       - Custom spawning.yaml
//	--difficulty <preset> - easy, normal, hard or fixed
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/skyclimb/internal/storage"
)

var (
	// Global flags
	flagSeed       int64
	flagDBPath     string
	flagDriver     string
	flagDSN        string
	flagProfile    string
	flagConfig     string
	flagDifficulty string
	flagLogLevel   string
	flagLogFile    string
	flagLogFormat  string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "climb",
	Short: "Skyclimb - level progression and enemy budget inspector",
	Long: `Skyclimb climbs a tower of levels. Every level has a number of floors,
a world width, a collectible palette and an enemy difficulty budget per
floor. From level 51 on the game enters BEAST MODE: floors never end and
difficulty stays at its level 50 peak.

Available commands:
  levels    - Show the configuration of a range of levels
  level     - Show one level in detail
  floor     - Roll the enemies of one floor
  simulate  - Climb from level 1 and report enemy totals
  progress  - Show, reset or set the furthest level reached
  browse    - Interactive level browser
  serve     - Start SSH server for remote browsing

Examples:
  climb levels --from 45 --to 55
  climb level 51 --yaml
  climb floor 30 12 --seed 42
  climb simulate --levels 10
  climb progress show --profile alice
  climb serve --ssh :2222`,
}

func init() {
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", storage.DefaultDBPath, "Path to the SQLite progress database")
	rootCmd.PersistentFlags().StringVar(&flagDriver, "driver", storage.DriverSQLite, "Storage driver: sqlite, postgres, memory")
	rootCmd.PersistentFlags().StringVar(&flagDSN, "dsn", "", "PostgreSQL connection string (with --driver postgres)")
	rootCmd.PersistentFlags().StringVar(&flagProfile, "profile", storage.DefaultProfile, "Progress profile name")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom spawning YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "warn", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to a rotating file")
	rootCmd.PersistentFlags().StringVar(&flagLogFormat, "log-format", "text", "Log format: text, json, logfmt")

	rootCmd.AddCommand(levelsCmd)
	rootCmd.AddCommand(levelCmd)
	rootCmd.AddCommand(floorCmd)
	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(progressCmd)
	rootCmd.AddCommand(browseCmd)
	rootCmd.AddCommand(serveCmd)
}
