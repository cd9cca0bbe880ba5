package passage

// Config controls the behavior of the LLMGenerator.
type Config struct {
	// Validators run in order on every generated passage; the first
	// failure stops the pipeline.
	Validators []Validator

	MaxTokens   int
	Temperature float64

	// MaxAttempts bounds regeneration after a retryable validation failure.
	MaxAttempts int

	// MaxPriorOpenings limits how many earlier openings go into the prompt.
	MaxPriorOpenings int
}

// DefaultConfig returns a Config with the standard validator chain.
func DefaultConfig() Config {
	return Config{
		Validators: []Validator{
			&StructuralValidator{},
			&NoBlanksValidator{},
			&ParagraphCountValidator{Min: 3, Max: 4},
		},
		MaxTokens:        1000,
		Temperature:      0.3,
		MaxAttempts:      2,
		MaxPriorOpenings: 5,
	}
}
