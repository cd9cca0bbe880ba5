// Package exercise builds gap exercises from passages and tracks a learner's
// answers to them.
package exercise

import (
	"strings"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"github.com/abhisek/clozeit/internal/textseg"
)

// Options controls how an exercise is built.
type Options struct {
	Mode Mode
	// GapFrequency blanks content words at every n-th word position. Zero
	// selects the mode default; other values are clamped to
	// [MinGapFrequency, MaxGapFrequency].
	GapFrequency int
}

func (o Options) normalize() Options {
	if o.Mode != ModeCloze {
		o.Mode = ModeCTest
	}
	switch {
	case o.GapFrequency == 0:
		o.GapFrequency = o.Mode.DefaultGapFrequency()
	case o.GapFrequency < MinGapFrequency:
		o.GapFrequency = MinGapFrequency
	case o.GapFrequency > MaxGapFrequency:
		o.GapFrequency = MaxGapFrequency
	}
	return o
}

// Token is a piece of passage text. BlankIndex is the index of the blank
// replacing it, or -1 for plain text.
type Token struct {
	textseg.Token
	BlankIndex int
}

// Segment is a run of tokens selected in one pass.
type Segment struct {
	FirstSentence bool
	Tokens        []Token
}

// Paragraph is an ordered list of segments.
type Paragraph struct {
	Segments []Segment
}

// Exercise is a passage prepared for gap filling.
type Exercise struct {
	ID           string
	Mode         Mode
	GapFrequency int
	Text         string
	Paragraphs   []Paragraph
	// Answers holds the target word of each blank in reading order.
	Answers []string
}

// Build prepares text as an exercise. In C-test mode the first sentence of
// the first paragraph is left intact.
func Build(text string, opts Options) *Exercise {
	opts = opts.normalize()
	text = strings.ReplaceAll(text, "\r\n", "\n")
	ex := &Exercise{
		ID:           uuid.NewString(),
		Mode:         opts.Mode,
		GapFrequency: opts.GapFrequency,
		Text:         text,
	}
	for i, p := range textseg.SplitIntoParagraphs(text) {
		var para Paragraph
		if i == 0 && opts.Mode == ModeCTest {
			first, rest := textseg.SplitFirstSentence(p)
			if first != "" {
				para.Segments = append(para.Segments, ex.segment(first, true))
			}
			if rest != "" {
				para.Segments = append(para.Segments, ex.segment(rest, false))
			}
		} else {
			para.Segments = append(para.Segments, ex.segment(p, false))
		}
		ex.Paragraphs = append(ex.Paragraphs, para)
	}
	return ex
}

func (e *Exercise) segment(text string, first bool) Segment {
	seg := Segment{FirstSentence: first}
	for _, t := range textseg.SelectBlanks(text, first, e.GapFrequency) {
		tok := Token{Token: t, BlankIndex: -1}
		if t.IsTarget {
			tok.BlankIndex = len(e.Answers)
			e.Answers = append(e.Answers, t.Text)
		}
		seg.Tokens = append(seg.Tokens, tok)
	}
	return seg
}

// BlankCount returns the number of blanks.
func (e *Exercise) BlankCount() int { return len(e.Answers) }

// NewBlanks creates fresh blanks for every target word.
func (e *Exercise) NewBlanks() []*Blank {
	return lo.Map(e.Answers, func(w string, _ int) *Blank { return NewBlank(w, e.Mode) })
}

// NewSession starts a fresh session over the exercise.
func (e *Exercise) NewSession() *Session {
	return NewSession(e.NewBlanks())
}

// Grade grades a full answer set without keeping state. answers[i] holds the
// letters typed into the editable part of blank i; missing answers count as
// empty. It returns the score and per-blank correctness.
func (e *Exercise) Grade(answers []string) (Score, []bool) {
	s := e.NewSession()
	for i, b := range s.Blanks() {
		if i < len(answers) {
			b.Fill(answers[i])
		}
	}
	score, _ := s.Submit()
	return score, lo.Map(s.Blanks(), func(b *Blank, _ int) bool { return b.CheckAnswer() })
}
