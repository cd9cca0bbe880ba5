package passage

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/abhisek/clozeit/internal/textseg"
)

// MaxPassageLength caps generated passages in bytes.
const MaxPassageLength = 8000

// StructuralValidator checks that the passage is non-empty and within the
// length limit.
type StructuralValidator struct{}

func (v *StructuralValidator) Name() string { return "structural" }

func (v *StructuralValidator) Validate(p *Passage, _ Input) *ValidationError {
	if strings.TrimSpace(p.Text) == "" {
		return &ValidationError{Validator: v.Name(), Message: "passage_text is empty", Retryable: true}
	}
	if len(p.Text) > MaxPassageLength {
		return &ValidationError{
			Validator: v.Name(),
			Message:   fmt.Sprintf("passage_text exceeds %d characters", MaxPassageLength),
			Retryable: true,
		}
	}
	return nil
}

// ParagraphCountValidator requires between Min and Max paragraphs.
type ParagraphCountValidator struct {
	Min, Max int
}

func (v *ParagraphCountValidator) Name() string { return "paragraph-count" }

func (v *ParagraphCountValidator) Validate(p *Passage, _ Input) *ValidationError {
	n := len(textseg.SplitIntoParagraphs(p.Text))
	if n < v.Min || n > v.Max {
		return &ValidationError{
			Validator: v.Name(),
			Message:   fmt.Sprintf("got %d paragraphs, want %d-%d", n, v.Min, v.Max),
			Retryable: true,
		}
	}
	return nil
}

// blankMarker matches gap placeholders a model sometimes leaves in the text.
var blankMarker = regexp.MustCompile(`_{3,}|\[\s*(blank|gap)\s*\]|\(\s*\)`)

// NoBlanksValidator rejects passages that already contain gaps.
type NoBlanksValidator struct{}

func (v *NoBlanksValidator) Name() string { return "no-blanks" }

func (v *NoBlanksValidator) Validate(p *Passage, _ Input) *ValidationError {
	if m := blankMarker.FindString(strings.ToLower(p.Text)); m != "" {
		return &ValidationError{
			Validator: v.Name(),
			Message:   fmt.Sprintf("passage contains a gap placeholder %q", m),
			Retryable: true,
		}
	}
	return nil
}
