package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/clozeit/internal/ui/theme"
)

// ProgressBar is a score bar: green from 50% up, red below.
type ProgressBar struct {
	Label   string
	Percent int
	Width   int
}

// NewProgressBar clamps percent to 0..100.
func NewProgressBar(label string, percent int, width int) ProgressBar {
	return ProgressBar{Label: label, Percent: min(max(percent, 0), 100), Width: width}
}

func (p ProgressBar) View() string {
	var b strings.Builder
	if p.Label != "" {
		b.WriteString(theme.Body.Render(p.Label) + "  ")
	}

	cells := max(p.Width-lipgloss.Width(b.String())-6, 4)
	filled := cells * p.Percent / 100
	fill := theme.Success
	if p.Percent < 50 {
		fill = theme.Error
	}

	b.WriteString(lipgloss.NewStyle().Background(fill).Render(strings.Repeat(" ", filled)))
	b.WriteString(lipgloss.NewStyle().Background(theme.Border).Render(strings.Repeat(" ", cells-filled)))
	b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).Render(fmt.Sprintf("  %d%%", p.Percent)))
	return b.String()
}
