package textseg

import "regexp"

var (
	paragraphBreak = regexp.MustCompile(`\n` + space + `*\n`)
	firstSentence  = regexp.MustCompile(`^[^.!?]+[.!?]+` + space + `*`)
)

// SplitIntoParagraphs splits text on blank lines. Empty pieces are dropped;
// order is preserved.
func SplitIntoParagraphs(text string) []string {
	var out []string
	for _, p := range paragraphBreak.Split(text, -1) {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// SplitFirstSentence separates the leading sentence of paragraph, including
// its terminators and trailing whitespace. When the paragraph has no
// terminator the first sentence is empty and rest is the whole paragraph.
// first+rest always equals paragraph.
func SplitFirstSentence(paragraph string) (first, rest string) {
	loc := firstSentence.FindStringIndex(paragraph)
	if loc == nil {
		return "", paragraph
	}
	return paragraph[:loc[1]], paragraph[loc[1]:]
}
