package components

import (
	"strings"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/clozeit/internal/ui/theme"
)

// MenuItem is one entry of a Menu. A disabled item shows Hint and cannot
// be selected.
type MenuItem struct {
	Label    string
	Hint     string
	Action   func() tea.Cmd
	Disabled bool
}

// Menu is a vertical list navigated with up/down and activated with enter.
type Menu struct {
	Items    []MenuItem
	Selected int
}

// NewMenu selects the first enabled item.
func NewMenu(items []MenuItem) Menu {
	m := Menu{Items: items, Selected: -1}
	m.step(1)
	if m.Selected < 0 {
		m.Selected = 0
	}
	return m
}

// step moves the selection to the next enabled item in direction dir,
// staying put when there is none.
func (m *Menu) step(dir int) {
	for i := m.Selected + dir; i >= 0 && i < len(m.Items); i += dir {
		if !m.Items[i].Disabled {
			m.Selected = i
			return
		}
	}
}

func (m Menu) Update(msg tea.Msg) (Menu, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch {
	case key.Matches(kmsg, keyUp):
		m.step(-1)
	case key.Matches(kmsg, keyDown):
		m.step(1)
	case key.Matches(kmsg, keyEnter):
		if m.Selected < len(m.Items) {
			if item := m.Items[m.Selected]; !item.Disabled && item.Action != nil {
				return m, item.Action()
			}
		}
	}
	return m, nil
}

func (m Menu) View() string {
	lines := make([]string, len(m.Items))
	for i, item := range m.Items {
		switch {
		case item.Disabled && item.Hint != "":
			lines[i] = theme.Disabled.Render("    " + item.Label + "  (" + item.Hint + ")")
		case item.Disabled:
			lines[i] = theme.Disabled.Render("    " + item.Label)
		case i == m.Selected:
			lines[i] = theme.Selected.Render("  ▸ " + item.Label)
		default:
			lines[i] = theme.Unselected.Render("    " + item.Label)
		}
	}
	return strings.Join(lines, "\n") + "\n"
}
