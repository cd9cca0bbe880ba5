package components

import (
	"fmt"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/clozeit/internal/ui/theme"
)

// Picker cycles through a fixed list of options with the left and right
// arrow keys.
type Picker struct {
	Label    string
	Options  []string
	Selected int
	Focused  bool
}

// NewPicker creates a picker with selected as the initial choice. An
// unknown selected value leaves the first option chosen.
func NewPicker(label string, options []string, selected string) Picker {
	p := Picker{Label: label, Options: options}
	for i, o := range options {
		if o == selected {
			p.Selected = i
			break
		}
	}
	return p
}

// Update handles left/right cycling while focused.
func (p Picker) Update(msg tea.Msg) (Picker, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok || !p.Focused || len(p.Options) == 0 {
		return p, nil
	}

	switch {
	case key.Matches(kmsg, keyPrev):
		p.Selected = (p.Selected - 1 + len(p.Options)) % len(p.Options)
	case key.Matches(kmsg, keyNext):
		p.Selected = (p.Selected + 1) % len(p.Options)
	}
	return p, nil
}

// Value returns the chosen option.
func (p Picker) Value() string {
	if len(p.Options) == 0 {
		return ""
	}
	return p.Options[p.Selected]
}

// View renders "Label  ‹ value ›".
func (p Picker) View() string {
	label := lipgloss.NewStyle().Width(16).Foreground(theme.TextDim).Render(p.Label)
	value := fmt.Sprintf("‹ %s ›", p.Value())
	if p.Focused {
		return label + theme.Selected.Render(value)
	}
	return label + theme.Unselected.Render(value)
}
