package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/skyclimb/internal/progression"
	"github.com/vovakirdan/skyclimb/internal/spawning"
)

// kindStyles maps enemy kinds to lipgloss styles.
var kindStyles = map[spawning.Kind]lipgloss.Style{
	spawning.KindBlue:   lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
	spawning.KindYellow: lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
	spawning.KindGreen:  lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
	spawning.KindRed:    lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
}

var defaultKindStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))

func kindStyle(k spawning.Kind) lipgloss.Style {
	if s, ok := kindStyles[k]; ok {
		return s
	}
	return defaultKindStyle
}

// enemySummary renders "blue×3 red×1" sorted by kind name, for table cells.
func enemySummary(enemies []spawning.Kind) string {
	if len(enemies) == 0 {
		return "-"
	}

	counts := spawning.Count(enemies)
	kinds := make([]spawning.Kind, 0, len(counts))
	for k := range counts {
		kinds = append(kinds, k)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })

	parts := make([]string, 0, len(kinds))
	for _, k := range kinds {
		parts = append(parts, fmt.Sprintf("%s×%d", k, counts[k]))
	}
	return strings.Join(parts, " ")
}

// renderWeights renders the spawn weight table as colored percentage shares.
func renderWeights(w spawning.Weights) string {
	parts := make([]string, 0, len(w))
	for _, k := range w.Kinds() {
		if w[k] <= 0 {
			continue
		}
		parts = append(parts, kindStyle(k).Render(fmt.Sprintf("%s %.0f%%", k, w.Share(k)*100)))
	}
	return strings.Join(parts, "  ")
}

// renderEnemyRow draws one glyph per enemy, colored by kind.
func renderEnemyRow(enemies []spawning.Kind) string {
	var sb strings.Builder
	for _, k := range enemies {
		sb.WriteString(kindStyle(k).Render("◆"))
	}
	return sb.String()
}

func collectibleList(s progression.CollectibleSet) string {
	kinds := s.Kinds()
	names := make([]string, len(kinds))
	for i, k := range kinds {
		names[i] = string(k)
	}
	return strings.Join(names, ", ")
}

func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	padding := (width - w) / 2
	return strings.Repeat(" ", padding) + text
}
