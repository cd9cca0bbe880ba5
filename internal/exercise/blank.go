package exercise

import (
	"fmt"
	"unicode"
)

// BlankState is the progress of a single blank.
type BlankState int

const (
	Unrevealed BlankState = iota
	PartiallyFilled
	Complete
)

func (s BlankState) String() string {
	switch s {
	case Unrevealed:
		return "unrevealed"
	case PartiallyFilled:
		return "partially-filled"
	case Complete:
		return "complete"
	}
	return fmt.Sprintf("BlankState(%d)", int(s))
}

// Blank is one gapped word. Letters before Revealed() are shown and cannot
// be edited; the rest are typed by the learner.
type Blank struct {
	letters  []rune
	input    []rune
	correct  []bool
	revealed int
	complete bool

	// OnComplete, if set, is called each time the blank moves into the
	// Complete state.
	OnComplete func()
}

// NewBlank creates a blank for word in the given mode.
func NewBlank(word string, mode Mode) *Blank {
	letters := []rune(word)
	b := &Blank{
		letters:  letters,
		input:    make([]rune, len(letters)),
		correct:  make([]bool, len(letters)),
		revealed: mode.RevealedCount(len(letters)),
	}
	b.complete = b.CheckAnswer()
	return b
}

// Word returns the answer.
func (b *Blank) Word() string { return string(b.letters) }

// Len returns the number of letters in the word.
func (b *Blank) Len() int { return len(b.letters) }

// Revealed returns the length of the pre-revealed prefix.
func (b *Blank) Revealed() int { return b.revealed }

// Editable returns the number of letters the learner has to type.
func (b *Blank) Editable() int { return len(b.letters) - b.revealed }

// IsRevealed reports whether position i is shown to the learner.
func (b *Blank) IsRevealed(i int) bool { return i < b.revealed }

// Letter returns the answer letter at position i.
func (b *Blank) Letter(i int) rune { return b.letters[i] }

// Input returns what the learner typed at position i, or 0.
func (b *Blank) Input(i int) rune { return b.input[i] }

// IsCorrect reports whether position i matches the answer. Revealed
// positions are always correct.
func (b *Blank) IsCorrect(i int) bool { return i < b.revealed || b.correct[i] }

// Typed returns the editable part as typed so far, with unfilled positions
// as spaces.
func (b *Blank) Typed() string {
	out := make([]rune, 0, b.Editable())
	for i := b.revealed; i < len(b.letters); i++ {
		if b.input[i] == 0 {
			out = append(out, ' ')
		} else {
			out = append(out, b.input[i])
		}
	}
	return string(out)
}

// SetLetter stores value at position i. Only the last rune of value is
// kept; an empty value clears the position. It panics if i is out of range
// or points into the revealed prefix.
func (b *Blank) SetLetter(i int, value string) {
	if i < b.revealed || i >= len(b.letters) {
		panic(fmt.Sprintf("exercise: letter index %d outside editable range [%d,%d)", i, b.revealed, len(b.letters)))
	}
	var r rune
	if rs := []rune(value); len(rs) > 0 {
		r = rs[len(rs)-1]
	}
	b.input[i] = r
	b.correct[i] = r != 0 && unicode.ToLower(r) == unicode.ToLower(b.letters[i])

	was := b.complete
	b.complete = b.CheckAnswer()
	if b.complete && !was && b.OnComplete != nil {
		b.OnComplete()
	}
}

// Fill writes answer into the editable positions in order. Extra runes are
// ignored; missing ones leave positions empty.
func (b *Blank) Fill(answer string) {
	rs := []rune(answer)
	for i := b.revealed; i < len(b.letters); i++ {
		v := ""
		if k := i - b.revealed; k < len(rs) && rs[k] != ' ' {
			v = string(rs[k])
		}
		b.SetLetter(i, v)
	}
}

// CheckAnswer reports whether every position matches the answer,
// ignoring case.
func (b *Blank) CheckAnswer() bool {
	for i := b.revealed; i < len(b.letters); i++ {
		if !b.correct[i] {
			return false
		}
	}
	return true
}

// State returns the blank's current progress.
func (b *Blank) State() BlankState {
	if b.complete {
		return Complete
	}
	for i := b.revealed; i < len(b.letters); i++ {
		if b.input[i] != 0 {
			return PartiallyFilled
		}
	}
	return Unrevealed
}

// Reset clears all input.
func (b *Blank) Reset() {
	clear(b.input)
	clear(b.correct)
	b.complete = b.CheckAnswer()
}

// First returns the first editable position.
func (b *Blank) First() int {
	if b.Editable() == 0 {
		return len(b.letters) - 1
	}
	return b.revealed
}

// Next returns the editable position after i, or i at the end.
func (b *Blank) Next(i int) int {
	if i+1 < len(b.letters) && i+1 >= b.revealed {
		return i + 1
	}
	return i
}

// Prev returns the editable position before i, or i at the start.
func (b *Blank) Prev(i int) int {
	if i-1 >= b.revealed && i-1 < len(b.letters) {
		return i - 1
	}
	return i
}
