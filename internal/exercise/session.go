package exercise

import (
	"errors"
	"math"
	"time"

	"github.com/samber/lo"
)

// ResetDuration is how long a session reports Resetting after Reset.
const ResetDuration = 300 * time.Millisecond

// ErrAlreadyGraded is returned by Submit when the session was already graded.
var ErrAlreadyGraded = errors.New("exercise already graded")

// Score is the result of grading a session.
type Score struct {
	Correct int `json:"correct"`
	Total   int `json:"total"`
}

// Percentage returns round(100*Correct/Total), or 0 for an empty score.
func (s Score) Percentage() int {
	if s.Total == 0 {
		return 0
	}
	return int(math.Round(100 * float64(s.Correct) / float64(s.Total)))
}

// Session tracks the learner's progress through one exercise. It is not
// safe for concurrent use.
type Session struct {
	blanks    []*Blank
	score     Score
	graded    bool
	resetting bool

	// OnBlankComplete, if set, is called with the blank index whenever a
	// blank becomes complete.
	OnBlankComplete func(index int)
}

// NewSession creates a session over blanks.
func NewSession(blanks []*Blank) *Session {
	s := &Session{blanks: blanks}
	for i, b := range blanks {
		b.OnComplete = func() {
			if s.OnBlankComplete != nil {
				s.OnBlankComplete(i)
			}
		}
	}
	return s
}

// Blanks returns the session's blanks in reading order.
func (s *Session) Blanks() []*Blank { return s.blanks }

// Blank returns the blank at index i.
func (s *Session) Blank(i int) *Blank { return s.blanks[i] }

// Len returns the number of blanks.
func (s *Session) Len() int { return len(s.blanks) }

// Graded reports whether feedback is being shown.
func (s *Session) Graded() bool { return s.graded }

// Resetting reports whether the session is in its brief post-reset state.
func (s *Session) Resetting() bool { return s.resetting }

// FinishReset ends the resetting state.
func (s *Session) FinishReset() { s.resetting = false }

// Score returns the last graded score.
func (s *Session) Score() Score { return s.score }

// Percentage returns the last graded score as a percentage.
func (s *Session) Percentage() int { return s.score.Percentage() }

// Completed returns how many blanks are currently answered correctly.
func (s *Session) Completed() int {
	return lo.CountBy(s.blanks, func(b *Blank) bool { return b.CheckAnswer() })
}

// Submit grades every blank and turns on feedback. Submitting an already
// graded session returns the existing score and ErrAlreadyGraded.
func (s *Session) Submit() (Score, error) {
	if s.graded {
		return s.score, ErrAlreadyGraded
	}
	s.score = Score{Correct: s.Completed(), Total: len(s.blanks)}
	s.graded = true
	return s.score, nil
}

// Reset clears all input, feedback and score.
func (s *Session) Reset() {
	s.graded = false
	s.score = Score{}
	for _, b := range s.blanks {
		b.Reset()
	}
	s.resetting = true
}
