package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap lists the bindings shown in the help line. Volume keys themselves
// are resolved by the keymap package.
type keyMap struct {
	Volume   key.Binding
	Step     key.Binding
	Slide    key.Binding
	Move     key.Binding
	Select   key.Binding
	Refresh  key.Binding
	Theme    key.Binding
	Launch   key.Binding
	Quit     key.Binding
	ForceEnd key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Volume: key.NewBinding(
			key.WithKeys("`", "1", "2", "3", "4", "5", "6", "7", "8", "9", "0"),
			key.WithHelp("`/1-0", "0-100%"),
		),
		Step: key.NewBinding(
			key.WithKeys("-", "="),
			key.WithHelp("-/=", "±5%"),
		),
		Slide: key.NewBinding(
			key.WithKeys("left", "right", "h", "l"),
			key.WithHelp("←/→", "±1%"),
		),
		Move: key.NewBinding(
			key.WithKeys("up", "down", "k", "j"),
			key.WithHelp("↑/↓", "device"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "use"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh"),
		),
		Theme: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "theme"),
		),
		Launch: key.NewBinding(
			key.WithKeys("w", "p"),
			key.WithHelp("w/p", "mixers"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+q"),
			key.WithHelp("q", "quit"),
		),
		ForceEnd: key.NewBinding(
			key.WithKeys("esc", "ctrl+c"),
		),
	}
}

// ShortHelp implements help.KeyMap
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Volume, k.Step, k.Move, k.Select, k.Quit}
}

// FullHelp implements help.KeyMap
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Volume, k.Step, k.Slide},
		{k.Move, k.Select, k.Refresh},
		{k.Theme, k.Launch, k.Quit},
	}
}
