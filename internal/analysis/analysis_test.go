package analysis

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/clozeit/internal/llm"
)

const wellFormedReply = `CLOZE_WORDS
[List each word on a new line]
commerce|intermediate|Central to the economic theme
river|basic|Concrete noun with strong context
---

VOCABULARY
metropolitan|Relating to a large city and its suburbs|high
tributary|A river flowing into a larger one|medium
---

METRICS
readabilityScore|62.5
averageWordLength|4.9
sentenceComplexity|0.7
academicWordPercentage|12%
---

TEACHING_GUIDANCE
Focus Areas:
Geographic vocabulary
Cause and effect

Suggested Activities:
- Map labelling
- Timeline construction

Common Challenges:
1. Proper nouns
`

func TestParse_WellFormed(t *testing.T) {
	a := Parse(wellFormedReply)

	require.Len(t, a.ClozeWords, 2)
	assert.Equal(t, ClozeWord{Word: "commerce", Difficulty: DifficultyIntermediate, Reason: "Central to the economic theme"}, a.ClozeWords[0])
	assert.Equal(t, DifficultyBasic, a.ClozeWords[1].Difficulty)

	require.Len(t, a.Vocabulary, 2)
	assert.Equal(t, "metropolitan", a.Vocabulary[0].Word)
	assert.Equal(t, ImportanceHigh, a.Vocabulary[0].Importance)
	assert.Equal(t, "A river flowing into a larger one", a.Vocabulary[1].Definition)

	assert.Equal(t, Metrics{
		ReadabilityScore:       62.5,
		AverageWordLength:      4.9,
		SentenceComplexity:     0.7,
		AcademicWordPercentage: 12,
	}, a.Metrics)

	assert.Equal(t, []string{"Geographic vocabulary", "Cause and effect"}, a.TeachingGuidance.FocusAreas)
	assert.Equal(t, []string{"Map labelling", "Timeline construction"}, a.TeachingGuidance.SuggestedActivities)
	assert.Equal(t, []string{"Proper nouns"}, a.TeachingGuidance.CommonChallenges)
}

func TestParse_DecoratedHeaders(t *testing.T) {
	raw := "## Cloze Words:\n**word**|ADVANCED|why\n---\n**VOCABULARY**\nterm|meaning|High\n"
	a := Parse(raw)

	require.Len(t, a.ClozeWords, 1)
	assert.Equal(t, DifficultyAdvanced, a.ClozeWords[0].Difficulty)
	require.Len(t, a.Vocabulary, 1)
	assert.Equal(t, ImportanceHigh, a.Vocabulary[0].Importance)
}

func TestParse_UnknownLevelsFallBack(t *testing.T) {
	a := Parse("CLOZE_WORDS\nword|expert|reason\n---\nVOCABULARY\nterm|meaning|critical\nother|no importance given\n")

	require.Len(t, a.ClozeWords, 1)
	assert.Equal(t, DifficultyBasic, a.ClozeWords[0].Difficulty)
	require.Len(t, a.Vocabulary, 2)
	assert.Equal(t, ImportanceLow, a.Vocabulary[0].Importance)
	assert.Equal(t, ImportanceLow, a.Vocabulary[1].Importance)
	assert.Equal(t, "no importance given", a.Vocabulary[1].Definition)
}

func TestParse_MissingSections(t *testing.T) {
	a := Parse("METRICS\nreadabilityScore|80\nbogus|1\naverageWordLength|n/a\n")

	assert.Empty(t, a.ClozeWords)
	assert.Empty(t, a.Vocabulary)
	assert.Equal(t, 80.0, a.Metrics.ReadabilityScore)
	assert.Zero(t, a.Metrics.AverageWordLength)
	assert.NotNil(t, a.TeachingGuidance.FocusAreas)
}

func TestParse_EmptyEncodesArrays(t *testing.T) {
	b, err := json.Marshal(Parse(""))
	require.NoError(t, err)
	assert.Contains(t, string(b), `"clozeWords":[]`)
	assert.Contains(t, string(b), `"focusAreas":[]`)
}

func TestParse_GuidanceWithoutSectionHeader(t *testing.T) {
	a := Parse("Focus Areas: Inference\nCommon Challenges:\nIdioms\n")

	assert.Equal(t, []string{"Inference"}, a.TeachingGuidance.FocusAreas)
	assert.Equal(t, []string{"Idioms"}, a.TeachingGuidance.CommonChallenges)
}

func TestParse_PipeLinesOutsideSectionsIgnored(t *testing.T) {
	a := Parse("stray|basic|line\nCLOZE_WORDS\nkept|basic|yes\n")
	require.Len(t, a.ClozeWords, 1)
	assert.Equal(t, "kept", a.ClozeWords[0].Word)
}

func TestMetrics_Entries(t *testing.T) {
	m := Metrics{ReadabilityScore: 1, AcademicWordPercentage: 4}
	e := m.Entries()
	require.Len(t, e, 4)
	assert.Equal(t, "Readability score", e[0].Label)
	assert.Equal(t, 4.0, e[3].Value)
}

func TestLLMAnalyzer_Analyze(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockText(wellFormedReply))
	a := New(mock, DefaultConfig())

	got, err := a.Analyze(context.Background(), "  The Mississippi river shaped the city.  ")
	require.NoError(t, err)
	assert.Len(t, got.ClozeWords, 2)

	require.Len(t, mock.Calls, 1)
	req := mock.Calls[0]
	assert.Nil(t, req.Schema)
	assert.Equal(t, 0.3, req.Temperature)
	assert.Equal(t, systemPrompt, req.System)
	require.Len(t, req.Messages, 1)
	assert.True(t, strings.HasSuffix(req.Messages[0].Content, "Text to analyze: The Mississippi river shaped the city."))
}

func TestLLMAnalyzer_EmptyText(t *testing.T) {
	mock := llm.NewMockProvider()
	_, err := New(mock, DefaultConfig()).Analyze(context.Background(), " \n ")
	assert.ErrorIs(t, err, ErrEmptyText)
	assert.Empty(t, mock.Calls)
}

func TestLLMAnalyzer_ProviderError(t *testing.T) {
	boom := errors.New("boom")
	mock := llm.NewMockProvider(llm.MockResponse{Err: boom})
	_, err := New(mock, DefaultConfig()).Analyze(context.Background(), "text")
	assert.ErrorIs(t, err, boom)
}

func TestLLMAnalyzer_NonTextResponse(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(`{"a":1}`)})
	_, err := New(mock, DefaultConfig()).Analyze(context.Background(), "text")
	var invalid *llm.ErrInvalidResponse
	assert.ErrorAs(t, err, &invalid)
}
