package exercise

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const passage = "Minneapolis is the largest city in Minnesota. It sits on both banks of the Mississippi River, north of the confluence with the Minnesota River.\r\n\r\nThe city is rich in water, with thirteen lakes, wetlands, creeks, and waterfalls."

func reassemble(ex *Exercise) []string {
	var out []string
	for _, p := range ex.Paragraphs {
		var b strings.Builder
		for _, s := range p.Segments {
			for _, tok := range s.Tokens {
				b.WriteString(tok.Text)
			}
		}
		out = append(out, b.String())
	}
	return out
}

func TestParseMode(t *testing.T) {
	m, err := ParseMode(" CTest ")
	require.NoError(t, err)
	assert.Equal(t, ModeCTest, m)

	m, err = ParseMode("cloze")
	require.NoError(t, err)
	assert.Equal(t, ModeCloze, m)

	_, err = ParseMode("multiple-choice")
	assert.Error(t, err)
}

func TestBuild_CTestExemptsFirstSentence(t *testing.T) {
	ex := Build(passage, Options{Mode: ModeCTest})
	require.Len(t, ex.Paragraphs, 2)
	assert.Equal(t, 2, ex.GapFrequency)

	first := ex.Paragraphs[0]
	require.Len(t, first.Segments, 2)
	assert.True(t, first.Segments[0].FirstSentence)
	assert.Equal(t, "Minneapolis is the largest city in Minnesota. ", joinSegment(first.Segments[0]))
	for _, tok := range first.Segments[0].Tokens {
		assert.Equal(t, -1, tok.BlankIndex)
	}
	assert.NotZero(t, ex.BlankCount())
}

func TestBuild_Lossless(t *testing.T) {
	for _, mode := range []Mode{ModeCTest, ModeCloze} {
		ex := Build(passage, Options{Mode: mode})
		want := strings.Split(strings.ReplaceAll(passage, "\r\n", "\n"), "\n\n")
		assert.Equal(t, want, reassemble(ex))
	}
}

func TestBuild_ClozeDefaultsAndIndexes(t *testing.T) {
	ex := Build(passage, Options{Mode: ModeCloze})
	assert.Equal(t, 6, ex.GapFrequency)
	for _, p := range ex.Paragraphs {
		require.Len(t, p.Segments, 1)
		assert.False(t, p.Segments[0].FirstSentence)
	}

	next := 0
	for _, p := range ex.Paragraphs {
		for _, tok := range p.Segments[0].Tokens {
			if tok.IsTarget {
				assert.Equal(t, next, tok.BlankIndex)
				assert.Equal(t, ex.Answers[next], tok.Text)
				next++
			}
		}
	}
	assert.Equal(t, ex.BlankCount(), next)
}

func TestBuild_GapFrequencyClamped(t *testing.T) {
	assert.Equal(t, 10, Build(passage, Options{Mode: ModeCloze, GapFrequency: 42}).GapFrequency)
	assert.Equal(t, 1, Build(passage, Options{Mode: ModeCloze, GapFrequency: -3}).GapFrequency)
	assert.Equal(t, ModeCTest, Build(passage, Options{}).Mode)
}

func TestBuild_UniqueIDs(t *testing.T) {
	a := Build(passage, Options{})
	b := Build(passage, Options{})
	assert.NotEqual(t, a.ID, b.ID)
	assert.Equal(t, a.Answers, b.Answers)
}

func TestExercise_Grade(t *testing.T) {
	ex := Build(passage, Options{Mode: ModeCloze, GapFrequency: 3})
	require.GreaterOrEqual(t, ex.BlankCount(), 2)

	answers := make([]string, ex.BlankCount())
	answers[0] = strings.ToUpper(ex.Answers[0])
	answers[1] = "wrong"

	score, results := ex.Grade(answers)
	assert.Equal(t, Score{Correct: 1, Total: ex.BlankCount()}, score)
	assert.True(t, results[0])
	assert.False(t, results[1])
}

func TestExercise_NewSessionIsFresh(t *testing.T) {
	ex := Build(passage, Options{Mode: ModeCloze, GapFrequency: 2})
	s1 := ex.NewSession()
	s1.Blank(0).Fill(ex.Answers[0])
	s2 := ex.NewSession()
	assert.Equal(t, 1, s1.Completed())
	assert.Equal(t, 0, s2.Completed())
}

func joinSegment(s Segment) string {
	var b strings.Builder
	for _, tok := range s.Tokens {
		b.WriteString(tok.Text)
	}
	return b.String()
}
