package cli

import "github.com/charmbracelet/bubbles/key"

type tuiKeyMap struct {
	Up        key.Binding
	Down      key.Binding
	Toggle    key.Binding
	Expand    key.Binding
	AddTask   key.Binding
	AddSub    key.Binding
	Decompose key.Binding
	Priority  key.Binding
	Delete    key.Binding
	Logout    key.Binding
	Help      key.Binding
	Quit      key.Binding
}

func defaultTUIKeyMap() tuiKeyMap {
	return tuiKeyMap{
		Up:        key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:      key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Toggle:    key.NewBinding(key.WithKeys(" ", "x"), key.WithHelp("space", "toggle done")),
		Expand:    key.NewBinding(key.WithKeys("enter", "right", "l"), key.WithHelp("enter", "expand")),
		AddTask:   key.NewBinding(key.WithKeys("a", "n"), key.WithHelp("a", "new objective")),
		AddSub:    key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "new sub-directive")),
		Decompose: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "auto-decompose")),
		Priority:  key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "cycle priority")),
		Delete:    key.NewBinding(key.WithKeys("d", "delete"), key.WithHelp("d", "delete")),
		Logout:    key.NewBinding(key.WithKeys("L"), key.WithHelp("L", "logout")),
		Help:      key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "more keys")),
		Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k tuiKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.AddTask, k.Toggle, k.Expand, k.Decompose, k.Help, k.Quit}
}

func (k tuiKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Expand, k.Toggle},
		{k.AddTask, k.AddSub, k.Decompose},
		{k.Priority, k.Delete, k.Logout},
		{k.Help, k.Quit},
	}
}
