package passage

import "fmt"

// Validator checks a generated passage.
// Implementations should be stateless and safe for concurrent use.
type Validator interface {
	// Name returns a short identifier, e.g. "structural".
	Name() string

	// Validate returns nil if p passes.
	Validate(p *Passage, input Input) *ValidationError
}

// ValidationError describes why a passage failed validation.
type ValidationError struct {
	Validator string
	Message   string
	Retryable bool // Whether regeneration is likely to fix this
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validator %q: %s", e.Validator, e.Message)
}
