package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/skyclimb/internal/progression"
)

// Browser layout constants
const (
	beastPreviewFloors = 30 // Floors shown for endless levels
	infoPanelHeight    = 9  // Title, info panel and margins
	footerHeight       = 5  // Floor detail, status and help
	minTableHeight     = 5
)

// BrowserModel is the Bubble Tea model for the level browser. It drives the
// session's progression manager: advancing, resetting and rerolling floors.
type BrowserModel struct {
	manager  *progression.Manager
	profile  string
	config   progression.LevelConfig
	plans    []progression.FloorPlan
	furthest int
	table    table.Model
	help     help.Model
	keys     BrowserKeyMap
	status   string
	width    int
	height   int
	quitting bool
}

// NewBrowserModel creates a browser for the manager's current level.
func NewBrowserModel(manager *progression.Manager, profile string, width, height int) BrowserModel {
	h := help.New()
	h.ShowAll = false

	m := BrowserModel{
		manager: manager,
		profile: profile,
		keys:    DefaultBrowserKeyMap(),
		help:    h,
		width:   width,
		height:  height,
	}
	m.table = m.createTable()
	m.loadLevel()
	m.status = fmt.Sprintf("Welcome back, %s. Furthest level reached: %d.", profile, m.furthest)
	return m
}

// createTable creates a new table sized to the window.
func (m *BrowserModel) createTable() table.Model {
	enemiesWidth := max(m.width-4-6-8-6-6, 20)
	columns := []table.Column{
		{Title: "Floor", Width: 6},
		{Title: "Budget", Width: 8},
		{Title: "Cost", Width: 6},
		{Title: "Enemies", Width: min(enemiesWidth, 48)},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(m.height-infoPanelHeight-footerHeight, minTableHeight)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// loadLevel recomputes the current level's config and rolls every floor.
func (m *BrowserModel) loadLevel() {
	level := m.manager.CurrentLevel()
	m.config = m.manager.CurrentConfig()
	m.furthest = m.manager.FurthestLevel()

	floors, ok := m.config.Floors.Value()
	if !ok {
		floors = beastPreviewFloors
	}

	m.plans = make([]progression.FloorPlan, floors)
	for i := range m.plans {
		m.plans[i] = m.manager.PlanFloor(level, i+1)
	}
	m.updateTableRows()
	m.table.GotoTop()
}

// updateTableRows updates the table with current floor plans.
func (m *BrowserModel) updateTableRows() {
	rows := make([]table.Row, len(m.plans))
	for i, p := range m.plans {
		rows[i] = table.Row{
			fmt.Sprintf("%d", p.Floor),
			fmt.Sprintf("%d", p.Budget),
			fmt.Sprintf("%d", p.Cost),
			enemySummary(p.Enemies),
		}
	}
	m.table.SetRows(rows)
}

// Init initializes the browser model.
func (m BrowserModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the browser.
func (m BrowserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil

		case key.Matches(msg, m.keys.NextLevel):
			level := m.manager.NextLevel()
			m.loadLevel()
			m.status = fmt.Sprintf("Advanced to level %d.", level)
			if level == progression.BeastModeLevel {
				m.status = "BEAST MODE! Floors never end from here."
			}
			return m, nil

		case key.Matches(msg, m.keys.PrevLevel):
			level := m.manager.CurrentLevel()
			if level <= 1 {
				m.status = "Already at level 1."
				return m, nil
			}
			m.manager.SetCurrentLevel(level - 1)
			m.loadLevel()
			m.status = fmt.Sprintf("Back to level %d.", level-1)
			return m, nil

		case key.Matches(msg, m.keys.Reset):
			m.manager.ResetToStart()
			m.loadLevel()
			m.status = fmt.Sprintf("Reset to level 1. Furthest level kept at %d.", m.furthest)
			return m, nil

		case key.Matches(msg, m.keys.Roll):
			if i := m.table.Cursor(); i >= 0 && i < len(m.plans) {
				m.plans[i] = m.manager.PlanFloor(m.manager.CurrentLevel(), i+1)
				m.updateTableRows()
				m.status = fmt.Sprintf("Rerolled floor %d.", i+1)
			}
			return m, nil

		case key.Matches(msg, m.keys.Up), key.Matches(msg, m.keys.Down):
			m.table, cmd = m.table.Update(msg)
			return m, cmd
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		cursor := m.table.Cursor()
		m.table = m.createTable()
		m.updateTableRows()
		m.table.SetCursor(cursor)
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the browser.
func (m BrowserModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229"))

	title := fmt.Sprintf("SKYCLIMB - LEVEL %d", m.config.LevelNumber)
	if m.config.IsEndless {
		title += " - BEAST MODE"
	}
	b.WriteString(titleStyle.Render(centerText(title, m.width)))
	b.WriteString("\n\n")

	b.WriteString(m.renderInfoPanel())
	b.WriteString("\n")

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	b.WriteString(tableStyle.Render(m.table.View()))
	b.WriteString("\n")

	if i := m.table.Cursor(); i >= 0 && i < len(m.plans) {
		p := m.plans[i]
		b.WriteString(fmt.Sprintf(" Floor %d: %s\n", p.Floor, renderEnemyRow(p.Enemies)))
	}

	statusStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("245")).
		Italic(true)
	b.WriteString(statusStyle.Render(" " + m.status))
	b.WriteString("\n")

	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// renderInfoPanel renders the level config summary.
func (m BrowserModel) renderInfoPanel() string {
	labelStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Width(14)

	line := func(label, value string) string {
		return labelStyle.Render(label) + value + "\n"
	}

	var sb strings.Builder
	sb.WriteString(line("Phase", m.config.Phase))
	sb.WriteString(line("Floors", m.config.Floors.String()))
	sb.WriteString(line("World width", fmt.Sprintf("%d tiles", m.config.WorldWidth)))
	sb.WriteString(line("Collectibles", collectibleList(m.config.Collectibles)))
	sb.WriteString(line("Budget/floor", fmt.Sprintf("%d", m.config.DifficultyBudgetPerFloor)))
	sb.WriteString(line("Spawn mix", renderWeights(m.config.EnemySpawnWeights)))
	sb.WriteString(labelStyle.Render("Profile") + fmt.Sprintf("%s (furthest %d, %s)", m.profile, m.furthest, m.manager.State()))

	panelStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	return panelStyle.Render(sb.String())
}

// IsQuitting returns true if user wants to quit.
func (m BrowserModel) IsQuitting() bool {
	return m.quitting
}

// Level returns the level currently shown.
func (m BrowserModel) Level() int {
	return m.config.LevelNumber
}

// Plans returns the rolled floor plans of the shown level.
func (m BrowserModel) Plans() []progression.FloorPlan {
	return m.plans
}

// RunBrowser runs the level browser in the local terminal.
func RunBrowser(manager *progression.Manager, profile string, width, height int) error {
	model := NewBrowserModel(manager, profile, width, height)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
