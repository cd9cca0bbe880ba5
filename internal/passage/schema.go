package passage

import "github.com/abhisek/clozeit/internal/llm"

// PassageSchema is the structured reply requested from the model.
var PassageSchema = &llm.Schema{
	Name:        "reading-passage",
	Description: "A multi-paragraph reading passage for language learners",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"passage_text": map[string]any{
				"type":        "string",
				"description": "The passage. Paragraphs separated by a blank line. No gaps, blanks or headings.",
			},
		},
		"required":             []any{"passage_text"},
		"additionalProperties": false,
	},
}
