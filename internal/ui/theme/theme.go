// Package theme holds the palette and shared lipgloss styles.
package theme

import (
	"image/color"

	"charm.land/lipgloss/v2"
)

// Ink on a dark page.
var (
	Primary   = lipgloss.Color("#2DD4BF") // teal
	Secondary = lipgloss.Color("#60A5FA") // blue
	Accent    = lipgloss.Color("#FBBF24") // amber
	Success   = lipgloss.Color("#4ADE80")
	Error     = lipgloss.Color("#F87171")
	Text      = lipgloss.Color("#E5E7EB")
	TextDim   = lipgloss.Color("#9CA3AF")
	Border    = lipgloss.Color("#374151")
	onPrimary = lipgloss.Color("#0B1220")
)

func fg(c color.Color) lipgloss.Style { return lipgloss.NewStyle().Foreground(c) }

var (
	Title    = fg(Primary).Bold(true).Align(lipgloss.Center)
	Subtitle = fg(TextDim).Align(lipgloss.Center)
	Heading  = fg(Secondary).Bold(true)
	Body     = fg(Text)
	Hint     = fg(TextDim).Italic(true)

	Selected   = fg(Primary).Bold(true)
	Unselected = fg(Text)
	Disabled   = fg(Border)

	Correct   = fg(Success).Bold(true)
	Incorrect = fg(Error).Bold(true)
)

// Letter cells of a blank. Revealed letters are the prefix a C-test gives
// away.
var (
	LetterRevealed = fg(TextDim)
	LetterTyped    = fg(Accent).Underline(true)
	LetterEmpty    = fg(Border)
)

var (
	ButtonActive   = lipgloss.NewStyle().Background(Primary).Foreground(onPrimary).Bold(true).Padding(0, 2)
	ButtonInactive = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(Border).Padding(0, 2)

	TabActive   = lipgloss.NewStyle().Background(Primary).Foreground(onPrimary).Bold(true).Padding(0, 1)
	TabInactive = fg(TextDim).Padding(0, 1)
)
