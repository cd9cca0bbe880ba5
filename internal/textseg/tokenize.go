// Package textseg splits passages into paragraphs, sentences and tokens and
// decides which words become gaps.
package textseg

import (
	"regexp"
	"strings"

	"github.com/samber/lo"
)

// space is any Unicode whitespace; RE2 \s is ASCII only.
const space = `[\s\v\p{Z}\x{0085}\x{FEFF}]`

var separator = regexp.MustCompile(space + `+|[.!?,;:]`)

// Gap frequencies used when the caller does not pick one.
const (
	DefaultClozeGap = 6
	DefaultCTestGap = 2
)

// Token is one piece of a segment. Word tokens carry their ordinal among the
// words of the segment; separators have Position -1.
type Token struct {
	Text     string
	IsWord   bool
	Position int
	IsTarget bool
}

// SelectBlanks tokenizes segment and marks content words at every gap-th word
// position as targets. Words in a first-sentence segment are never targets. A gap below 1
// is treated as 1. Concatenating the Text of the result reproduces segment.
func SelectBlanks(segment string, isFirstSentence bool, gap int) []Token {
	if gap < 1 {
		gap = 1
	}
	var (
		tokens []Token
		pos    int
		last   int
	)
	emitWord := func(w string) {
		if w == "" {
			return
		}
		if strings.TrimSpace(w) == "" {
			tokens = append(tokens, Token{Text: w, Position: -1})
			return
		}
		tokens = append(tokens, Token{
			Text:     w,
			IsWord:   true,
			Position: pos,
			IsTarget: !isFirstSentence && IsContentWord(w) && pos%gap == gap-1,
		})
		pos++
	}
	for _, loc := range separator.FindAllStringIndex(segment, -1) {
		emitWord(segment[last:loc[0]])
		tokens = append(tokens, Token{Text: segment[loc[0]:loc[1]], Position: -1})
		last = loc[1]
	}
	emitWord(segment[last:])
	return tokens
}

// Targets returns the target tokens of tokens in order.
func Targets(tokens []Token) []Token {
	return lo.Filter(tokens, func(t Token, _ int) bool { return t.IsTarget })
}
