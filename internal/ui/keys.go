package ui

import "github.com/charmbracelet/bubbles/key"

// KeyMap holds the bindings the App handles itself. Panel keys live in
// the panels.
type KeyMap struct {
	Control    key.Binding
	LiveLogs   key.Binding
	Monitoring key.Binding
	LogBrowser key.Binding
	NextTab    key.Binding
	PrevTab    key.Binding
	Help       key.Binding
	Quit       key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Control: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1", "control"),
		),
		LiveLogs: key.NewBinding(
			key.WithKeys("2"),
			key.WithHelp("2", "live logs"),
		),
		Monitoring: key.NewBinding(
			key.WithKeys("3"),
			key.WithHelp("3", "monitoring"),
		),
		LogBrowser: key.NewBinding(
			key.WithKeys("4"),
			key.WithHelp("4", "log browser"),
		),
		NextTab: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("Tab", "next tab"),
		),
		PrevTab: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("S-Tab", "previous tab"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
	}
}
