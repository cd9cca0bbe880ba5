package components

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/clozeit/internal/ui/theme"
)

var panelStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(theme.Border).
	Padding(1, 2)

// ContentWidth is the panel width for a frame, between 20 and 64 columns.
func ContentWidth(frameWidth int) int {
	return min(max(frameWidth-6, 20), 64)
}

func Panel(content string, width int) string {
	return panelStyle.Width(width).Render(content)
}

func Center(content string, width, height int) string {
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}
