package components

import (
	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/clozeit/internal/ui/theme"
)

// Button runs OnPress when enter is pressed while it has focus.
type Button struct {
	Label   string
	Focused bool
	OnPress func() tea.Cmd
}

func NewButton(label string, onPress func() tea.Cmd) Button {
	return Button{Label: label, OnPress: onPress}
}

func (b Button) Update(msg tea.Msg) (Button, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok && b.Focused && b.OnPress != nil && key.Matches(kmsg, keyEnter) {
		return b, b.OnPress()
	}
	return b, nil
}

func (b Button) View() string {
	if b.Focused {
		return theme.ButtonActive.Render("▸ " + b.Label)
	}
	return theme.ButtonInactive.Render(b.Label)
}
