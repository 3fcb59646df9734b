package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up     key.Binding
	Down   key.Binding
	Toggle key.Binding
	Reset  key.Binding
	Rushed key.Binding
	Yank   key.Binding
	Edit   key.Binding
	Help   key.Binding
	Quit   key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "prev")),
		Down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "next")),
		Toggle: key.NewBinding(key.WithKeys(" ", "enter"), key.WithHelp("space", "tick")),
		Reset:  key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reset")),
		Rushed: key.NewBinding(key.WithKeys("R"), key.WithHelp("R", "rushed")),
		Yank:   key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy id")),
		Edit:   key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit file")),
		Help:   key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Down, k.Up, k.Toggle, k.Reset, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Down, k.Up, k.Toggle},
		{k.Reset, k.Rushed, k.Yank, k.Edit},
		{k.Help, k.Quit},
	}
}
