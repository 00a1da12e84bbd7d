package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the dashboard key bindings.
type KeyMap struct {
	Quit       key.Binding
	Help       key.Binding
	Pause      key.Binding
	Rerun      key.Binding
	TogglePath key.Binding
	CycleRule  key.Binding
	CycleTheme key.Binding
	Up         key.Binding
	Down       key.Binding
	PageUp     key.Binding
	PageDown   key.Binding
	Home       key.Binding
	End        key.Binding
}

// DefaultKeyMap returns the standard dashboard bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Pause: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "pause sampling"),
		),
		Rerun: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "rerun"),
		),
		TogglePath: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "toggle path"),
		),
		CycleRule: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "next rule"),
		),
		CycleTheme: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "theme"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "scroll down"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup"),
			key.WithHelp("pgup", "page up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown"),
			key.WithHelp("pgdn", "page down"),
		),
		Home: key.NewBinding(
			key.WithKeys("home", "g"),
			key.WithHelp("g", "top"),
		),
		End: key.NewBinding(
			key.WithKeys("end", "G"),
			key.WithHelp("G", "bottom"),
		),
	}
}

// ShortHelp satisfies help.KeyMap for the footer's one line summary.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.CycleRule, k.TogglePath, k.Rerun, k.Help, k.Quit}
}

// FullHelp satisfies help.KeyMap for the expanded overlay.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.CycleRule, k.TogglePath, k.Rerun, k.Pause},
		{k.Up, k.Down, k.PageUp, k.PageDown},
		{k.Home, k.End, k.CycleTheme},
		{k.Help, k.Quit},
	}
}
