package ui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	ToggleLeft   key.Binding
	ToggleBottom key.Binding
	ToggleRight  key.Binding
	Theme        key.Binding
	Settings     key.Binding
	Help         key.Binding
	Quit         key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		ToggleLeft: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1", "left"),
		),
		ToggleBottom: key.NewBinding(
			key.WithKeys("2"),
			key.WithHelp("2", "bottom"),
		),
		ToggleRight: key.NewBinding(
			key.WithKeys("3"),
			key.WithHelp("3", "right"),
		),
		Theme: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "theme"),
		),
		Settings: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "settings"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "more"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.ToggleLeft, k.ToggleBottom, k.ToggleRight, k.Theme, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.ToggleLeft, k.ToggleBottom, k.ToggleRight},
		{k.Theme, k.Settings},
		{k.Help, k.Quit},
	}
}

// settingsKeys are active while the settings overlay is open.
type settingsKeys struct {
	Up     key.Binding
	Down   key.Binding
	Select key.Binding
	Close  key.Binding
}

func defaultSettingsKeys() settingsKeys {
	return settingsKeys{
		Up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑", "up")),
		Down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓", "down")),
		Select: key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", "select")),
		Close:  key.NewBinding(key.WithKeys("esc", "s"), key.WithHelp("esc", "close")),
	}
}
