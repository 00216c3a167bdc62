package tui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines all key bindings
type keyMap struct {
	Up      key.Binding
	Down    key.Binding
	Tab     key.Binding
	Add     key.Binding
	Target  key.Binding
	Done    key.Binding
	Delete  key.Binding
	Exclude key.Binding
	Comment key.Binding
	Reset   key.Binding
	Help    key.Binding
	Quit    key.Binding
	Escape  key.Binding
}

var keys = keyMap{
	Up:      key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:    key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	Tab:     key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "switch pane")),
	Add:     key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add task")),
	Target:  key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "set target")),
	Done:    key.NewBinding(key.WithKeys("x", "enter"), key.WithHelp("x", "toggle done")),
	Delete:  key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
	Exclude: key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "exclude date")),
	Comment: key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "edit comment")),
	Reset:   key.NewBinding(key.WithKeys("R"), key.WithHelp("R", "reset all")),
	Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
	Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	Escape:  key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
}
