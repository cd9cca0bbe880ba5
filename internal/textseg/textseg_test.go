package textseg

import (
	"strings"
	"testing"

	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const minneapolis = `Minneapolis is the largest city in Minnesota. It sits on both banks of the Mississippi River, just north of the river's confluence with the Minnesota River.

The city is abundantly rich in water, with thirteen lakes, wetlands, the Mississippi River, creeks, and waterfalls.

Minneapolis has cold, snowy winters and hot, humid summers.`

func TestIsContentWord(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"the", false},
		{"The", false},
		{"the.", false},
		{"Minneapolis,", true},
		{"river's", true},
		{"", false},
		{"...", false},
		{`"`, false},
		{"LAKES!", true},
		{"'and'", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, IsContentWord(tt.in), "IsContentWord(%q)", tt.in)
	}
}

func TestSplitIntoParagraphs(t *testing.T) {
	got := SplitIntoParagraphs(minneapolis)
	require.Len(t, got, 3)
	assert.True(t, strings.HasPrefix(got[0], "Minneapolis is"))
	assert.True(t, strings.HasPrefix(got[2], "Minneapolis has"))

	assert.Empty(t, SplitIntoParagraphs(""))
	assert.Equal(t, []string{"a", "b"}, SplitIntoParagraphs("a\n  \t\n\n\nb"))
	assert.Equal(t, []string{"one\ntwo"}, SplitIntoParagraphs("one\ntwo"))
}

func TestSplitIntoParagraphs_RoundTrip(t *testing.T) {
	paras := SplitIntoParagraphs(minneapolis)
	again := SplitIntoParagraphs(strings.Join(paras, "\n\n"))
	assert.Equal(t, paras, again)
}

func TestSplitFirstSentence(t *testing.T) {
	tests := []struct {
		name      string
		paragraph string
		first     string
	}{
		{"simple", "Hello world. Second one.", "Hello world. "},
		{"multiple terminators", "Really?! Yes.", "Really?! "},
		{"no terminator", "no end in sight", ""},
		{"leading terminator", ". starts oddly", ""},
		{"single sentence", "Only one.", "Only one."},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			first, rest := SplitFirstSentence(tt.paragraph)
			assert.Equal(t, tt.first, first)
			assert.Equal(t, tt.paragraph, first+rest)
		})
	}
}

func join(tokens []Token) string {
	var b strings.Builder
	for _, tok := range tokens {
		b.WriteString(tok.Text)
	}
	return b.String()
}

func TestSelectBlanks_Lossless(t *testing.T) {
	inputs := []string{
		minneapolis,
		"",
		"   ",
		"Hello,world!!  How are   you?",
		"tabs\tand\nnewlines;colons:commas,",
		"unicode café naïve résumé.",
	}
	for _, in := range inputs {
		for _, gap := range []int{1, 2, 6, 10} {
			assert.Equal(t, in, join(SelectBlanks(in, false, gap)))
			assert.Equal(t, in, join(SelectBlanks(in, true, gap)))
		}
	}
}

func TestSelectBlanks_Deterministic(t *testing.T) {
	a := SelectBlanks(minneapolis, false, 2)
	b := SelectBlanks(minneapolis, false, 2)
	assert.Equal(t, a, b)
}

func TestSelectBlanks_FirstSentenceExempt(t *testing.T) {
	for _, tok := range SelectBlanks(minneapolis, true, 1) {
		assert.False(t, tok.IsTarget, "token %q", tok.Text)
	}
}

func TestSelectBlanks_GapPosition(t *testing.T) {
	tokens := SelectBlanks("alpha bravo charlie delta echo foxtrot golf hotel india juliet kilo lima mike", false, 6)
	targets := Targets(tokens)
	require.Len(t, targets, 2)
	assert.Equal(t, []int{5, 11}, []int{targets[0].Position, targets[1].Position})
	assert.Equal(t, []string{"foxtrot", "lima"}, []string{targets[0].Text, targets[1].Text})
}

func TestSelectBlanks_UnicodeWhitespace(t *testing.T) {
	segment := "rivers \u00a0 lakes\u3000oceans\u2009ponds"
	tokens := SelectBlanks(segment, false, 2)

	var rebuilt strings.Builder
	var words []Token
	for _, tok := range tokens {
		rebuilt.WriteString(tok.Text)
		if tok.IsWord {
			words = append(words, tok)
		} else {
			assert.Equal(t, -1, tok.Position)
			assert.False(t, tok.IsTarget)
		}
	}
	assert.Equal(t, segment, rebuilt.String())

	require.Len(t, words, 4)
	for i, w := range words {
		assert.Equal(t, i, w.Position, w.Text)
	}
	assert.Equal(t, []string{"lakes", "ponds"}, lo.Map(Targets(tokens), func(tok Token, _ int) string { return tok.Text }))
}

func TestSplitUnicodeWhitespace(t *testing.T) {
	paras := SplitIntoParagraphs("First one.\n\u00a0\nSecond one.")
	assert.Equal(t, []string{"First one.", "Second one."}, paras)

	first, rest := SplitFirstSentence("Lakes freeze.\u00a0Rivers flow.")
	assert.Equal(t, "Lakes freeze.\u00a0", first)
	assert.Equal(t, "Rivers flow.", rest)
}

func TestSelectBlanks_SeparatorsDoNotAdvanceCounter(t *testing.T) {
	tokens := SelectBlanks("alpha, bravo. charlie!", false, 2)
	var words []Token
	for _, tok := range tokens {
		if tok.IsWord {
			words = append(words, tok)
		} else {
			assert.Equal(t, -1, tok.Position)
			assert.False(t, tok.IsTarget)
		}
	}
	require.Len(t, words, 3)
	assert.Equal(t, []int{0, 1, 2}, []int{words[0].Position, words[1].Position, words[2].Position})
	assert.True(t, words[1].IsTarget)
	assert.False(t, words[2].IsTarget)
}

func TestSelectBlanks_StopwordsSkippedButCounted(t *testing.T) {
	// "the" sits at position 1 and is a stopword, so nothing there is blanked.
	tokens := SelectBlanks("rivers the lakes", false, 2)
	assert.Empty(t, Targets(tokens))
}

func TestSelectBlanks_GapBelowOne(t *testing.T) {
	targets := Targets(SelectBlanks("rivers lakes", false, 0))
	assert.Len(t, targets, 2)
}
