package tui

import "github.com/charmbracelet/bubbles/key"

// BrowserKeyMap defines the key bindings for the level browser.
type BrowserKeyMap struct {
	Up        key.Binding
	Down      key.Binding
	Roll      key.Binding
	NextLevel key.Binding
	PrevLevel key.Binding
	Reset     key.Binding
	Help      key.Binding
	Quit      key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k BrowserKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Roll, k.NextLevel, k.Reset, k.Help, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k BrowserKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Roll},
		{k.NextLevel, k.PrevLevel, k.Reset},
		{k.Help, k.Quit},
	}
}

// DefaultBrowserKeyMap returns default key bindings.
func DefaultBrowserKeyMap() BrowserKeyMap {
	return BrowserKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "floor up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "floor down"),
		),
		Roll: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "reroll floor"),
		),
		NextLevel: key.NewBinding(
			key.WithKeys("n", "right", "l"),
			key.WithHelp("n", "next level"),
		),
		PrevLevel: key.NewBinding(
			key.WithKeys("p", "left", "h"),
			key.WithHelp("p", "prev level"),
		),
		Reset: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reset to start"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "more keys"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}
