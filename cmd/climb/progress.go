package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/skyclimb/internal/progression"
	"github.com/vovakirdan/skyclimb/internal/storage"
)

var progressCmd = &cobra.Command{
	Use:   "progress",
	Short: "Show, reset or set the furthest level reached",
	Long: `Inspect or change the saved progress of a profile.

Examples:
  climb progress show
  climb progress list
  climb progress reset --profile alice
  climb progress set 25`,
}

var progressShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the furthest level of the profile",
	Args:  cobra.NoArgs,
	Run:   runProgressShow,
}

var progressListCmd = &cobra.Command{
	Use:   "list",
	Short: "Print the furthest level of every profile",
	Args:  cobra.NoArgs,
	Run:   runProgressList,
}

var progressResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Forget the furthest level of the profile",
	Args:  cobra.NoArgs,
	Run:   runProgressReset,
}

var progressSetCmd = &cobra.Command{
	Use:   "set <level>",
	Short: "Overwrite the furthest level of the profile",
	Args:  cobra.ExactArgs(1),
	Run:   runProgressSet,
}

func init() {
	progressCmd.AddCommand(progressShowCmd)
	progressCmd.AddCommand(progressListCmd)
	progressCmd.AddCommand(progressResetCmd)
	progressCmd.AddCommand(progressSetCmd)
}

func runProgressShow(_ *cobra.Command, _ []string) {
	s := newSession(true, true)
	defer s.Close()

	furthest := s.manager.FurthestLevel()
	fmt.Printf("Profile %s: furthest level %d", flagProfile, furthest)
	if furthest >= progression.BeastModeLevel {
		fmt.Print(" (BEAST MODE)")
	}
	fmt.Println()
}

func runProgressList(_ *cobra.Command, _ []string) {
	backend := openBackend()
	defer backend.Close()

	values, err := backend.Lookup(progression.FurthestLevelKey)
	if err != nil {
		fatalf("reading progress: %v", err)
	}

	if len(values) == 0 {
		fmt.Println("No progress recorded yet.")
		return
	}

	fmt.Printf("  %-20s  %s\n", "Profile", "Furthest")
	fmt.Printf("  %-20s  %s\n", "-------", "--------")
	for _, profile := range storage.Profiles(values) {
		fmt.Printf("  %-20s  %s\n", profile, values[profile])
	}
}

func runProgressReset(_ *cobra.Command, _ []string) {
	s := newSession(true, true)
	defer s.Close()

	s.manager.ClearFurthestLevel()
	fmt.Printf("Profile %s: progress cleared\n", flagProfile)
}

func runProgressSet(_ *cobra.Command, args []string) {
	level, err := strconv.Atoi(args[0])
	if err != nil || level < 1 {
		fatalf("invalid level %q", args[0])
	}

	backend := openBackend()
	defer backend.Close()

	ns := storage.Profile(backend, flagProfile)
	if err := ns.Set(progression.FurthestLevelKey, strconv.Itoa(level)); err != nil {
		fatalf("saving progress: %v", err)
	}
	fmt.Printf("Profile %s: furthest level set to %d\n", ns.Name(), level)
}
