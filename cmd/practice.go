package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/abhisek/clozeit/internal/exercise"
	"github.com/abhisek/clozeit/internal/passage"
)

var practiceCmd = &cobra.Command{
	Use:   "practice",
	Short: "Practice a gap exercise line by line without the TUI",
	Long: "Builds an exercise from --file, from stdin when --file is \"-\", or from the built-in sample text, " +
		"then asks for each blank in turn and prints the score.",
	RunE: func(cmd *cobra.Command, args []string) error {
		file, _ := cmd.Flags().GetString("file")
		typ, _ := cmd.Flags().GetString("type")
		gap, _ := cmd.Flags().GetInt("gap")

		mode, err := exercise.ParseMode(typ)
		if err != nil {
			return err
		}
		if gap != 0 && (gap < exercise.MinGapFrequency || gap > exercise.MaxGapFrequency) {
			return fmt.Errorf("--gap must be between %d and %d", exercise.MinGapFrequency, exercise.MaxGapFrequency)
		}

		text, err := readPracticeText(file, cmd.InOrStdin())
		if err != nil {
			return err
		}

		in := cmd.InOrStdin()
		if file == "-" {
			// stdin held the passage; answers come from the terminal.
			tty, err := os.Open("/dev/tty")
			if err != nil {
				return fmt.Errorf("open terminal for answers: %w", err)
			}
			defer tty.Close()
			in = tty
		}

		ex := exercise.Build(text, exercise.Options{Mode: mode, GapFrequency: gap})
		_, err = runPractice(in, cmd.OutOrStdout(), ex, terminalWidth())
		return err
	},
}

func init() {
	practiceCmd.Flags().StringP("file", "f", "", "Text file to practice on (\"-\" reads stdin; default: built-in sample)")
	practiceCmd.Flags().StringP("type", "t", string(exercise.ModeCTest), "Exercise type: ctest or cloze")
	practiceCmd.Flags().IntP("gap", "g", 0, "Blank every n-th word, content words only (1-10, 0 = type default)")
}

func readPracticeText(file string, stdin io.Reader) (string, error) {
	var (
		b   []byte
		err error
	)
	switch file {
	case "":
		return passage.SampleText, nil
	case "-":
		b, err = io.ReadAll(stdin)
	default:
		b, err = os.ReadFile(file)
	}
	if err != nil {
		return "", fmt.Errorf("read text: %w", err)
	}
	text := strings.TrimSpace(string(b))
	if text == "" {
		return "", fmt.Errorf("text is empty")
	}
	return text, nil
}

// runPractice prints the gapped passage wrapped at width, reads one answer
// line per blank from in and prints the graded result. Running out of input
// leaves the remaining blanks empty.
func runPractice(in io.Reader, out io.Writer, ex *exercise.Exercise, width int) (exercise.Score, error) {
	sess := ex.NewSession()
	if sess.Len() == 0 {
		fmt.Fprintln(out, "This text has no blanks. Try a longer text or a smaller --gap.")
		return exercise.Score{}, nil
	}

	fmt.Fprintf(out, "%s, %s\n\n", ex.Mode.Label(), gapPhrase(ex.GapFrequency))
	fmt.Fprintln(out, renderGapped(ex, sess, width))
	fmt.Fprintln(out)

	scanner := bufio.NewScanner(in)
	for i, b := range sess.Blanks() {
		if b.Editable() == 0 {
			continue
		}
		fmt.Fprintf(out, "[%d] %s: ", i+1, blankPrompt(b))
		if !scanner.Scan() {
			fmt.Fprintln(out)
			break
		}
		b.Fill(strings.TrimSpace(scanner.Text()))
	}
	if err := scanner.Err(); err != nil {
		return exercise.Score{}, fmt.Errorf("read answers: %w", err)
	}

	score, err := sess.Submit()
	if err != nil {
		return score, err
	}

	fmt.Fprintln(out)
	for i, b := range sess.Blanks() {
		mark := "✓"
		if !b.CheckAnswer() {
			mark = "✗"
		}
		fmt.Fprintf(out, "%s [%d] %s\n", mark, i+1, b.Word())
	}
	fmt.Fprintf(out, "\nScore: %d/%d (%d%%)\n", score.Correct, score.Total, score.Percentage())
	return score, nil
}

// renderGapped writes the passage with each blank as its revealed prefix,
// one underscore per missing letter and its number.
func renderGapped(ex *exercise.Exercise, sess *exercise.Session, width int) string {
	paras := make([]string, 0, len(ex.Paragraphs))
	for _, p := range ex.Paragraphs {
		var sb strings.Builder
		for _, seg := range p.Segments {
			for _, tok := range seg.Tokens {
				if tok.BlankIndex < 0 {
					sb.WriteString(tok.Text)
					continue
				}
				fmt.Fprintf(&sb, "%s[%d]", blankPrompt(sess.Blank(tok.BlankIndex)), tok.BlankIndex+1)
			}
		}
		paras = append(paras, wrapWords(sb.String(), width))
	}
	return strings.Join(paras, "\n\n")
}

const terminalWidthBackup = 80

func terminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return terminalWidthBackup
	}
	return width
}

// wrapWords breaks s on spaces so no line is wider than width display
// cells. Words wider than width get a line of their own.
func wrapWords(s string, width int) string {
	if width <= 0 {
		return s
	}
	var (
		sb      strings.Builder
		lineLen int
	)
	for _, line := range strings.Split(s, "\n") {
		if sb.Len() > 0 {
			sb.WriteByte('\n')
		}
		lineLen = 0
		for _, w := range strings.Fields(line) {
			ww := runewidth.StringWidth(w)
			if lineLen > 0 && lineLen+1+ww > width {
				sb.WriteByte('\n')
				lineLen = 0
			}
			if lineLen > 0 {
				sb.WriteByte(' ')
				lineLen++
			}
			sb.WriteString(w)
			lineLen += ww
		}
	}
	return sb.String()
}

func blankPrompt(b *exercise.Blank) string {
	return string([]rune(b.Word())[:b.Revealed()]) + strings.Repeat("_", b.Editable())
}

// gapPhrase describes the gap rule: word positions count every word, but
// only content words landing on a gap position are blanked.
func gapPhrase(n int) string {
	var every string
	switch n {
	case 1:
		every = "every word"
	case 2:
		every = "every 2nd word"
	case 3:
		every = "every 3rd word"
	default:
		every = fmt.Sprintf("every %dth word", n)
	}
	return every + " (content words only)"
}
