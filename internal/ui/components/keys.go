package components

import "charm.land/bubbles/v2/key"

// Shared bindings for the form widgets.
var (
	keyUp    = key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up"))
	keyDown  = key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down"))
	keyPrev  = key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "previous"))
	keyNext  = key.NewBinding(key.WithKeys("right", "l", "space"), key.WithHelp("→/l", "next"))
	keyEnter = key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select"))
)
