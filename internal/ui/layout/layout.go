// Package layout draws the frame around every screen: a header bar, the
// screen body and a footer of key hints.
package layout

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/clozeit/internal/ui/theme"
)

const (
	MinWidth  = 80
	MinHeight = 24
)

// KeyHint is one "key description" pair in the footer.
type KeyHint struct {
	Key         string
	Description string
}

var (
	bar         = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(theme.Border)
	brandStyle  = lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)
	titleStyle  = lipgloss.NewStyle().Foreground(theme.Text)
	statusStyle = lipgloss.NewStyle().Foreground(theme.Accent)
	keyStyle    = lipgloss.NewStyle().Foreground(theme.Text).Bold(true)
	descStyle   = lipgloss.NewStyle().Foreground(theme.TextDim)
)

func IsTooSmall(width, height int) bool {
	return width < MinWidth || height < MinHeight
}

func RenderMinSizeMessage(width, height int) string {
	msg := fmt.Sprintf("Terminal too small!\n\nPlease resize to at\nleast %d x %d\n\nCurrent: %d x %d",
		MinWidth, MinHeight, width, height)
	return titleStyle.Width(width).Height(height).Align(lipgloss.Center).Render(msg)
}

// RenderHeader puts the app name on the left, title in the middle and
// status on the right.
func RenderHeader(title, status string, width int) string {
	brand := brandStyle.Render("  clozeit")
	mid := titleStyle.Render(title)
	side := statusStyle.Render(status)

	inner := max(width-4, 0)
	bw, mw, sw := lipgloss.Width(brand), lipgloss.Width(mid), lipgloss.Width(side)
	before := max((inner-mw)/2-bw, 1)
	after := max(inner-bw-before-mw-sw, 1)

	line := brand + strings.Repeat(" ", before) + mid + strings.Repeat(" ", after) + side
	return bar.Width(width).Render(line)
}

func RenderFooter(hints []KeyHint, width int) string {
	parts := make([]string, len(hints))
	for i, h := range hints {
		parts[i] = keyStyle.Render(h.Key) + " " + descStyle.Render(h.Description)
	}
	return bar.Width(width).Render("  " + strings.Join(parts, "   "))
}

// RenderFrame stacks header, body and footer, clipping the body to the
// rows left between them.
func RenderFrame(header, content, footer string, width, height int) string {
	rows := max(height-lipgloss.Height(header)-lipgloss.Height(footer), 0)
	body := lipgloss.NewStyle().Width(width).Height(rows).MaxHeight(rows).Render(content)
	return lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
}

// RenderMessage centers msg a few lines down, for loading and error states.
func RenderMessage(width int, style lipgloss.Style, msg string) string {
	return style.Width(width).Align(lipgloss.Center).Render("\n\n\n" + msg)
}
