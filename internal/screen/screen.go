// Package screen defines what the router stacks.
package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/clozeit/internal/ui/layout"
)

// Screen is one full-frame view. View draws only the body; the app adds
// the header and footer around it.
type Screen interface {
	// Init returns the command to run when the screen is shown.
	Init() tea.Cmd

	// Update handles a message and returns the screen to keep plus any
	// follow-up command.
	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders the body for the given size.
	View(width, height int) string

	// Title names the screen in the header.
	Title() string
}

// KeyHintProvider replaces the default footer hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// StatusProvider supplies text for the right side of the header, such as
// the exercise type or the running score.
type StatusProvider interface {
	Status() string
}

// Closer is implemented by screens with background work to cancel when the
// router removes them from the stack.
type Closer interface {
	Close()
}
