package viz

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Pause  key.Binding
	Reset  key.Binding
	Theme  key.Binding
	Dedupe key.Binding
	Stats  key.Binding
	Help   key.Binding
	Quit   key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Pause:  key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "pause")),
		Reset:  key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "rebuild grid")),
		Theme:  key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "theme")),
		Dedupe: key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "dedupe links")),
		Stats:  key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "stats")),
		Help:   key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:   key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Pause, k.Theme, k.Stats, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Pause, k.Reset, k.Dedupe},
		{k.Theme, k.Stats, k.Help, k.Quit},
	}
}
