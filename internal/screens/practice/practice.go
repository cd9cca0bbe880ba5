// Package practice is the screen where the learner fills in the blanks of
// an exercise.
package practice

import (
	"fmt"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/clozeit/internal/analysis"
	"github.com/abhisek/clozeit/internal/exercise"
	"github.com/abhisek/clozeit/internal/passage"
	"github.com/abhisek/clozeit/internal/router"
	"github.com/abhisek/clozeit/internal/screen"
	"github.com/abhisek/clozeit/internal/screens/insights"
	"github.com/abhisek/clozeit/internal/textseg"
	"github.com/abhisek/clozeit/internal/ui/layout"
)

// Options holds the optional collaborators of the screen.
type Options struct {
	// Generator enables Ctrl+N (new passage). It also needs Input.Topic.
	Generator passage.Generator
	// Analyzer enables Ctrl+A (text analysis).
	Analyzer analysis.Analyzer
	// Input is what the current passage was generated from.
	Input passage.Input
}

// PracticeScreen implements screen.Screen for an exercise in progress.
type PracticeScreen struct {
	ex   *exercise.Exercise
	sess *exercise.Session
	opts Options

	// blank is the focused blank, -1 when no blank is editable.
	blank int
	pos   int

	// completed is set by the session when a blank becomes fully correct.
	completed  bool
	generating bool
	request    screen.Request
	errMsg     string
}

var _ screen.Screen = (*PracticeScreen)(nil)
var _ screen.KeyHintProvider = (*PracticeScreen)(nil)
var _ screen.StatusProvider = (*PracticeScreen)(nil)
var _ screen.Closer = (*PracticeScreen)(nil)

// New creates a PracticeScreen over ex.
func New(ex *exercise.Exercise, opts Options) *PracticeScreen {
	s := &PracticeScreen{opts: opts}
	s.load(ex)
	return s
}

func (s *PracticeScreen) load(ex *exercise.Exercise) {
	s.ex = ex
	s.sess = ex.NewSession()
	s.sess.OnBlankComplete = func(int) { s.completed = true }
	s.focus(s.nextBlank(-1))
}

func (s *PracticeScreen) Init() tea.Cmd {
	return nil
}

// Close cancels a pending regeneration.
func (s *PracticeScreen) Close() {
	s.request.Cancel()
	s.generating = false
}

func (s *PracticeScreen) Title() string {
	return s.ex.Mode.Label()
}

// Status reports progress while typing and the score once graded.
func (s *PracticeScreen) Status() string {
	if s.sess.Graded() {
		sc := s.sess.Score()
		return fmt.Sprintf("Score %d/%d", sc.Correct, sc.Total)
	}
	return fmt.Sprintf("%d/%d correct", s.sess.Completed(), s.sess.Len())
}

func (s *PracticeScreen) KeyHints() []layout.KeyHint {
	if s.generating {
		return []layout.KeyHint{{Key: "Esc", Description: "Back"}}
	}
	var hints []layout.KeyHint
	if s.sess.Graded() {
		hints = append(hints, layout.KeyHint{Key: "Ctrl+R", Description: "Try again"})
	} else {
		hints = append(hints,
			layout.KeyHint{Key: "Tab", Description: "Next gap"},
			layout.KeyHint{Key: "Enter", Description: "Check"},
			layout.KeyHint{Key: "Ctrl+R", Description: "Reset"},
		)
	}
	if s.canRegenerate() {
		hints = append(hints, layout.KeyHint{Key: "Ctrl+N", Description: "New text"})
	}
	if s.opts.Analyzer != nil {
		hints = append(hints, layout.KeyHint{Key: "Ctrl+A", Description: "Analyze"})
	}
	return append(hints, layout.KeyHint{Key: "Esc", Description: "Back"})
}

func (s *PracticeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case resetDoneMsg:
		s.sess.FinishReset()
		return s, nil

	case passageReadyMsg:
		if !s.generating || !s.request.Finish(msg.RequestID) {
			return s, nil
		}
		s.generating = false
		if msg.Err != nil {
			s.errMsg = "Could not generate a new text. Press Ctrl+N to try again."
			return s, nil
		}
		s.errMsg = ""
		s.load(exercise.Build(msg.Passage.Text, exercise.Options{
			Mode:         s.ex.Mode,
			GapFrequency: s.ex.GapFrequency,
		}))
		return s, nil

	case tea.KeyMsg:
		return s.handleKey(msg)
	}
	return s, nil
}

func (s *PracticeScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	if s.generating {
		return s, nil
	}

	switch msg.String() {
	case "ctrl+r":
		s.sess.Reset()
		s.focus(s.nextBlank(-1))
		return s, tea.Tick(exercise.ResetDuration, func(time.Time) tea.Msg { return resetDoneMsg{} })
	case "ctrl+n":
		return s, s.regenerate()
	case "ctrl+a":
		if s.opts.Analyzer == nil {
			return s, nil
		}
		return s, router.Push(insights.New(s.opts.Analyzer, s.ex.Text))
	}

	if s.sess.Graded() || s.sess.Resetting() || s.blank < 0 {
		return s, nil
	}

	switch msg.String() {
	case "enter":
		_, _ = s.sess.Submit()
	case "tab":
		if i := s.nextBlank(s.blank); i >= 0 {
			s.focus(i)
		}
	case "shift+tab":
		if i := s.prevBlank(s.blank); i >= 0 {
			s.focus(i)
		}
	case "right":
		s.moveRight()
	case "left":
		s.moveLeft()
	case "backspace":
		s.backspace()
	default:
		if r, ok := letter(msg); ok {
			s.typeLetter(r)
		}
	}
	return s, nil
}

// letter returns the printable rune of a plain key press.
func letter(msg tea.KeyMsg) (rune, bool) {
	text := msg.Key().Text
	if utf8.RuneCountInString(text) != 1 {
		return 0, false
	}
	r, _ := utf8.DecodeRuneInString(text)
	if !unicode.IsPrint(r) || unicode.IsSpace(r) {
		return 0, false
	}
	return r, true
}

func (s *PracticeScreen) canRegenerate() bool {
	return s.opts.Generator != nil && s.opts.Input.Topic != ""
}

func (s *PracticeScreen) regenerate() tea.Cmd {
	if !s.canRegenerate() {
		return nil
	}
	if paras := textseg.SplitIntoParagraphs(s.ex.Text); len(paras) > 0 {
		if first, _ := textseg.SplitFirstSentence(paras[0]); strings.TrimSpace(first) != "" {
			s.opts.Input.PriorOpenings = append(s.opts.Input.PriorOpenings, strings.TrimSpace(first))
		}
	}
	s.generating = true
	s.errMsg = ""
	ctx, id := s.request.Start()
	gen, input := s.opts.Generator, s.opts.Input
	return func() tea.Msg {
		p, err := gen.Generate(ctx, input)
		return passageReadyMsg{RequestID: id, Passage: p, Err: err}
	}
}

func (s *PracticeScreen) typeLetter(r rune) {
	b := s.sess.Blank(s.blank)
	s.completed = false
	b.SetLetter(s.pos, string(r))
	if s.completed || s.pos == b.Len()-1 {
		if i := s.nextBlank(s.blank); i >= 0 {
			s.focus(i)
		}
		return
	}
	s.pos = b.Next(s.pos)
}

func (s *PracticeScreen) backspace() {
	b := s.sess.Blank(s.blank)
	if b.Input(s.pos) != 0 {
		b.SetLetter(s.pos, "")
		return
	}
	if s.pos > b.First() {
		s.pos = b.Prev(s.pos)
		b.SetLetter(s.pos, "")
		return
	}
	if i := s.prevBlank(s.blank); i >= 0 {
		s.blank = i
		prev := s.sess.Blank(i)
		s.pos = prev.Len() - 1
		prev.SetLetter(s.pos, "")
	}
}

func (s *PracticeScreen) moveRight() {
	b := s.sess.Blank(s.blank)
	if s.pos < b.Len()-1 {
		s.pos = b.Next(s.pos)
		return
	}
	if i := s.nextBlank(s.blank); i >= 0 {
		s.focus(i)
	}
}

func (s *PracticeScreen) moveLeft() {
	b := s.sess.Blank(s.blank)
	if s.pos > b.First() {
		s.pos = b.Prev(s.pos)
		return
	}
	if i := s.prevBlank(s.blank); i >= 0 {
		s.blank = i
		s.pos = s.sess.Blank(i).Len() - 1
	}
}

func (s *PracticeScreen) focus(i int) {
	s.blank = i
	if i >= 0 {
		s.pos = s.sess.Blank(i).First()
	}
}

// nextBlank returns the first blank after from with an editable position,
// or -1. Single-letter C-test words have none.
func (s *PracticeScreen) nextBlank(from int) int {
	for i := from + 1; i < s.sess.Len(); i++ {
		if s.sess.Blank(i).Editable() > 0 {
			return i
		}
	}
	return -1
}

func (s *PracticeScreen) prevBlank(from int) int {
	for i := from - 1; i >= 0; i-- {
		if s.sess.Blank(i).Editable() > 0 {
			return i
		}
	}
	return -1
}
