// Package analysis asks a language model to study a passage for vocabulary,
// readability and teaching guidance, and parses its delimited reply.
package analysis

// Difficulty grades a cloze-word candidate.
type Difficulty string

const (
	DifficultyBasic        Difficulty = "basic"
	DifficultyIntermediate Difficulty = "intermediate"
	DifficultyAdvanced     Difficulty = "advanced"
)

// Importance ranks a vocabulary item.
type Importance string

const (
	ImportanceHigh   Importance = "high"
	ImportanceMedium Importance = "medium"
	ImportanceLow    Importance = "low"
)

// ClozeWord is a word the model suggests gapping.
type ClozeWord struct {
	Word       string     `json:"word"`
	Difficulty Difficulty `json:"difficulty"`
	Reason     string     `json:"reason"`
}

// VocabularyItem is a glossary entry for the passage.
type VocabularyItem struct {
	Word       string     `json:"word"`
	Definition string     `json:"definition"`
	Importance Importance `json:"importance"`
}

// Metrics are readability measures estimated by the model.
type Metrics struct {
	ReadabilityScore       float64 `json:"readabilityScore"`
	AverageWordLength      float64 `json:"averageWordLength"`
	SentenceComplexity     float64 `json:"sentenceComplexity"`
	AcademicWordPercentage float64 `json:"academicWordPercentage"`
}

// Metric is one labeled metric value.
type Metric struct {
	Label string
	Value float64
}

// Entries returns the metrics in display order.
func (m Metrics) Entries() []Metric {
	return []Metric{
		{"Readability score", m.ReadabilityScore},
		{"Average word length", m.AverageWordLength},
		{"Sentence complexity", m.SentenceComplexity},
		{"Academic word percentage", m.AcademicWordPercentage},
	}
}

// TeachingGuidance is advice for a teacher using the passage.
type TeachingGuidance struct {
	FocusAreas          []string `json:"focusAreas"`
	SuggestedActivities []string `json:"suggestedActivities"`
	CommonChallenges    []string `json:"commonChallenges"`
}

// Analysis is the full parsed reply. Sections the model left out are empty.
type Analysis struct {
	ClozeWords       []ClozeWord      `json:"clozeWords"`
	Vocabulary       []VocabularyItem `json:"vocabulary"`
	Metrics          Metrics          `json:"metrics"`
	TeachingGuidance TeachingGuidance `json:"teachingGuidance"`
}

// Empty returns an analysis with every collection allocated, so it encodes
// as empty arrays rather than null.
func Empty() *Analysis {
	return &Analysis{
		ClozeWords: []ClozeWord{},
		Vocabulary: []VocabularyItem{},
		TeachingGuidance: TeachingGuidance{
			FocusAreas:          []string{},
			SuggestedActivities: []string{},
			CommonChallenges:    []string{},
		},
	}
}
