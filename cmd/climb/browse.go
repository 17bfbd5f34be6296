package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/skyclimb/internal/platform/tui"
)

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Interactive level browser",
	Long: `Open a full-screen browser on the current session. It starts at level 1
and shows every floor of the level with its rolled enemies.

Controls:
  Up/Down    - Select floor
  Enter      - Reroll the selected floor
  N / P      - Next / previous level
  R          - Reset to level 1 (furthest level is kept)
  ?          - More keys
  Q/Esc      - Quit

Examples:
  climb browse
  climb browse --profile alice --difficulty hard`,
	Args: cobra.NoArgs,
	Run:  runBrowse,
}

func runBrowse(_ *cobra.Command, _ []string) {
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}

	s := newSession(true, false)
	defer s.Close()

	if err := tui.RunBrowser(s.manager, flagProfile, width, height); err != nil {
		fatalf("%v", err)
	}
}
