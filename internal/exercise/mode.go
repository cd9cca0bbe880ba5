package exercise

import (
	"fmt"
	"strings"

	"github.com/abhisek/clozeit/internal/textseg"
)

// Mode selects how a target word is presented.
type Mode string

const (
	// ModeCTest reveals the first half of each target word.
	ModeCTest Mode = "ctest"
	// ModeCloze hides each target word completely.
	ModeCloze Mode = "cloze"
)

// Gap frequency bounds accepted from users.
const (
	MinGapFrequency = 1
	MaxGapFrequency = 10
)

// ParseMode parses a mode name, case-insensitively.
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case ModeCTest:
		return ModeCTest, nil
	case ModeCloze:
		return ModeCloze, nil
	}
	return "", fmt.Errorf("unknown exercise type %q (want ctest or cloze)", s)
}

// DefaultGapFrequency returns the gap frequency used when none is given.
func (m Mode) DefaultGapFrequency() int {
	if m == ModeCloze {
		return textseg.DefaultClozeGap
	}
	return textseg.DefaultCTestGap
}

// RevealedCount returns how many leading letters of an n-letter word are
// shown to the learner.
func (m Mode) RevealedCount(n int) int {
	if m == ModeCTest {
		return (n + 1) / 2
	}
	return 0
}

// Label returns a display name for the mode.
func (m Mode) Label() string {
	if m == ModeCloze {
		return "Cloze Test"
	}
	return "C-Test"
}
