package practice

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/clozeit/internal/exercise"
	"github.com/abhisek/clozeit/internal/ui/components"
	"github.com/abhisek/clozeit/internal/ui/layout"
	"github.com/abhisek/clozeit/internal/ui/theme"
)

func (s *PracticeScreen) View(width, height int) string {
	if s.generating {
		return layout.RenderMessage(width, theme.Hint, "Generating a new text...")
	}

	textWidth := min(width-4, 100)
	var b strings.Builder

	for i, p := range s.ex.Paragraphs {
		if i > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(lipgloss.NewStyle().Width(textWidth).Render(s.renderParagraph(p)))
	}
	b.WriteString("\n\n")
	b.WriteString(s.renderStatus(textWidth))

	return lipgloss.NewStyle().Padding(1, 2).Render(b.String())
}

func (s *PracticeScreen) renderParagraph(p exercise.Paragraph) string {
	var b strings.Builder
	for _, seg := range p.Segments {
		for _, tok := range seg.Tokens {
			if tok.BlankIndex < 0 {
				b.WriteString(theme.Body.Render(tok.Text))
				continue
			}
			b.WriteString(s.renderBlank(tok.BlankIndex))
		}
	}
	return b.String()
}

// renderBlank draws one cell per letter: revealed letters dim, typed
// letters highlighted (green or red once graded), empty cells as "_".
func (s *PracticeScreen) renderBlank(idx int) string {
	blank := s.sess.Blank(idx)
	graded := s.sess.Graded()

	var b strings.Builder
	for i := 0; i < blank.Len(); i++ {
		var (
			ch    string
			style lipgloss.Style
		)
		switch {
		case blank.IsRevealed(i):
			ch, style = string(blank.Letter(i)), theme.LetterRevealed
		case blank.Input(i) != 0:
			ch, style = string(blank.Input(i)), theme.LetterTyped
			if graded {
				style = theme.Incorrect
				if blank.IsCorrect(i) {
					style = theme.Correct
				}
			}
		default:
			ch, style = "_", theme.LetterEmpty
			if graded {
				style = theme.Incorrect
			}
		}
		if !graded && idx == s.blank && i == s.pos {
			style = style.Reverse(true)
		}
		b.WriteString(style.Render(ch))
	}
	return b.String()
}

func (s *PracticeScreen) renderStatus(width int) string {
	switch {
	case s.errMsg != "":
		return theme.Incorrect.Render(s.errMsg)
	case s.sess.Resetting():
		return theme.Hint.Render("Resetting...")
	case s.sess.Graded():
		sc := s.sess.Score()
		line := theme.Heading.Render(fmt.Sprintf("Score: %d / %d", sc.Correct, sc.Total))
		bar := components.NewProgressBar("", sc.Percentage(), min(width, 60)).View()
		return line + "\n" + bar
	case s.blank < 0:
		return theme.Hint.Render("Nothing to fill in here. Press Ctrl+N for a new text or Esc to go back.")
	}
	return theme.Hint.Render(fmt.Sprintf("%s · every %s content word is a gap",
		s.ex.Mode.Label(), ordinal(s.ex.GapFrequency)))
}

func ordinal(n int) string {
	switch n {
	case 1:
		return "single"
	case 2:
		return "2nd"
	case 3:
		return "3rd"
	}
	return fmt.Sprintf("%dth", n)
}
