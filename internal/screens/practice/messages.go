package practice

import "github.com/abhisek/clozeit/internal/passage"

// resetDoneMsg ends the brief "resetting" state after Ctrl+R.
type resetDoneMsg struct{}

// passageReadyMsg carries a freshly generated passage, or the error.
type passageReadyMsg struct {
	RequestID string
	Passage *passage.Passage
	Err     error
}
