package components

import (
	"fmt"
	"strconv"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/clozeit/internal/ui/theme"
)

// NumberInput wraps bubbles/textinput for a bounded integer.
type NumberInput struct {
	Model   textinput.Model
	Label   string
	Min     int
	Max     int
	Focused bool
}

// NewNumberInput creates a number input holding value.
func NewNumberInput(label string, value, lo, hi int) NumberInput {
	ti := textinput.New()
	ti.CharLimit = len(strconv.Itoa(hi))
	ti.SetValue(strconv.Itoa(value))
	return NumberInput{Model: ti, Label: label, Min: lo, Max: hi}
}

// Focus gives the input keyboard focus.
func (n *NumberInput) Focus() tea.Cmd {
	n.Focused = true
	return n.Model.Focus()
}

// Blur removes keyboard focus.
func (n *NumberInput) Blur() {
	n.Focused = false
	n.Model.Blur()
}

// Update forwards digits and editing keys to the text input.
func (n NumberInput) Update(msg tea.Msg) (NumberInput, tea.Cmd) {
	if !n.Focused {
		return n, nil
	}
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		key := kmsg.String()
		if len(key) == 1 && (key[0] < '0' || key[0] > '9') {
			return n, nil
		}
	}

	var cmd tea.Cmd
	n.Model, cmd = n.Model.Update(msg)
	return n, cmd
}

// Value parses the input and checks it against the bounds.
func (n NumberInput) Value() (int, error) {
	v, err := strconv.Atoi(n.Model.Value())
	if err != nil {
		return 0, fmt.Errorf("%s must be a number", n.Label)
	}
	if v < n.Min || v > n.Max {
		return 0, fmt.Errorf("%s must be between %d and %d", n.Label, n.Min, n.Max)
	}
	return v, nil
}

// View renders the label, the input and a validity mark.
func (n NumberInput) View() string {
	label := lipgloss.NewStyle().Width(16).Foreground(theme.TextDim).Render(n.Label)
	view := label + n.Model.View()
	if _, err := n.Value(); err != nil {
		view += " " + lipgloss.NewStyle().Foreground(theme.Error).Render("✗")
	}
	return view
}
