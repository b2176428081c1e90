package tui

import "github.com/charmbracelet/bubbles/key"

// keyMap binds keyboard keys to the three watch buttons.
type keyMap struct {
	Up     key.Binding
	Select key.Binding
	Down   key.Binding
	Help   key.Binding
	Quit   key.Binding
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Select, k.Down, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Select, k.Down},
		{k.Help, k.Quit},
	}
}

var defaultKeyMap = keyMap{
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "up"),
	),
	Select: key.NewBinding(
		key.WithKeys("enter", " ", "s"),
		key.WithHelp("enter/s", "select"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j", "p"),
		key.WithHelp("↓/j", "down"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "help"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}
