package ui

import "github.com/charmbracelet/bubbles/key"

type KeyMap struct {
	Quit      key.Binding
	Help      key.Binding
	Tab       key.Binding
	ShiftTab  key.Binding
	Enter     key.Binding
	Back      key.Binding
	Refresh   key.Binding
	Search    key.Binding
	Advanced  key.Binding
	Edit      key.Binding
	Info      key.Binding
	NextPage  key.Binding
	PrevPage  key.Binding
	FirstPage key.Binding
	LastPage  key.Binding
	NextMatch key.Binding
	PrevMatch key.Binding
	Up        key.Binding
	Down      key.Binding
	PageUp    key.Binding
	PageDown  key.Binding
}

var Keys = KeyMap{
	Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	Help:      key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
	Tab:       key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next field")),
	ShiftTab:  key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("S-tab", "prev field")),
	Enter:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select")),
	Back:      key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
	Refresh:   key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
	Search:    key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "find in document")),
	Advanced:  key.NewBinding(key.WithKeys("ctrl+a"), key.WithHelp("ctrl+a", "advanced search")),
	Edit:      key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit query")),
	Info:      key.NewBinding(key.WithKeys("i"), key.WithHelp("i", "query info")),
	NextPage:  key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("->/l", "next page")),
	PrevPage:  key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("<-/h", "prev page")),
	FirstPage: key.NewBinding(key.WithKeys("g"), key.WithHelp("g", "first page")),
	LastPage:  key.NewBinding(key.WithKeys("G"), key.WithHelp("G", "last page")),
	NextMatch: key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "next match")),
	PrevMatch: key.NewBinding(key.WithKeys("N"), key.WithHelp("N", "prev match")),
	Up:        key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("k/up", "up")),
	Down:      key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("j/down", "down")),
	PageUp:    key.NewBinding(key.WithKeys("pgup", "ctrl+u"), key.WithHelp("pgup", "page up")),
	PageDown:  key.NewBinding(key.WithKeys("pgdown", "ctrl+d"), key.WithHelp("pgdn", "page down")),
}
