// Package passage asks a language model for reading passages to turn into
// gap exercises.
package passage

import (
	"context"
	"fmt"
)

// Generator produces reading passages.
type Generator interface {
	// Generate writes one passage for input. The returned passage has passed
	// every configured validator.
	Generate(ctx context.Context, input Input) (*Passage, error)
}

// GenerationError wraps any failure to produce a usable passage. Callers
// show it as a "try again" state and keep the previous exercise.
type GenerationError struct {
	Err error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("failed to generate passage: %v", e.Err)
}

func (e *GenerationError) Unwrap() error { return e.Err }
