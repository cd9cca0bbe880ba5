package analysis

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/samber/lo"
)

type section int

const (
	sectionNone section = iota
	sectionClozeWords
	sectionVocabulary
	sectionMetrics
	sectionGuidance
)

var sectionHeaders = map[string]section{
	"CLOZE_WORDS":       sectionClozeWords,
	"VOCABULARY":        sectionVocabulary,
	"METRICS":           sectionMetrics,
	"TEACHING_GUIDANCE": sectionGuidance,
}

type guidanceList int

const (
	listNone guidanceList = iota
	listFocusAreas
	listActivities
	listChallenges
)

var guidanceHeaders = map[string]guidanceList{
	"focus areas":          listFocusAreas,
	"suggested activities": listActivities,
	"common challenges":    listChallenges,
}

var bullet = regexp.MustCompile(`^(?:[-*•]|\d+[.)])\s+`)

// Parse reads the model's delimited reply. It never fails: malformed lines
// are skipped and missing sections stay empty.
//
// The reply is a sequence of sections, each introduced by a header line
// (CLOZE_WORDS, VOCABULARY, METRICS, TEACHING_GUIDANCE) and closed by a
// line of dashes. List sections hold pipe-separated fields; the guidance
// section holds "Focus Areas:", "Suggested Activities:" and "Common
// Challenges:" blocks with one item per line.
func Parse(raw string) *Analysis {
	a := Empty()
	cur, list := sectionNone, listNone

	for _, line := range strings.Split(strings.ReplaceAll(raw, "\r\n", "\n"), "\n") {
		line = strings.TrimSpace(line)
		switch {
		case line == "":
			continue
		case isDelimiter(line):
			cur, list = sectionNone, listNone
			continue
		case isInstruction(line):
			continue
		}
		if s, ok := sectionHeaders[headerKey(line)]; ok {
			cur, list = s, listNone
			continue
		}
		if cur == sectionNone || cur == sectionGuidance {
			if l, rest, ok := guidanceHeader(line); ok {
				cur, list = sectionGuidance, l
				if rest != "" {
					a.addGuidance(list, rest)
				}
				continue
			}
		}

		switch cur {
		case sectionClozeWords:
			if w, ok := parseClozeWord(line); ok {
				a.ClozeWords = append(a.ClozeWords, w)
			}
		case sectionVocabulary:
			if v, ok := parseVocabulary(line); ok {
				a.Vocabulary = append(a.Vocabulary, v)
			}
		case sectionMetrics:
			parseMetric(&a.Metrics, line)
		case sectionGuidance:
			a.addGuidance(list, line)
		}
	}
	return a
}

func (a *Analysis) addGuidance(l guidanceList, line string) {
	item := strings.TrimSpace(bullet.ReplaceAllString(line, ""))
	if item == "" {
		return
	}
	g := &a.TeachingGuidance
	switch l {
	case listFocusAreas:
		g.FocusAreas = append(g.FocusAreas, item)
	case listActivities:
		g.SuggestedActivities = append(g.SuggestedActivities, item)
	case listChallenges:
		g.CommonChallenges = append(g.CommonChallenges, item)
	}
}

func isDelimiter(line string) bool {
	return len(line) >= 3 && strings.Trim(line, "-") == ""
}

// isInstruction matches bracketed template lines such as "[End list with ---]".
func isInstruction(line string) bool {
	return strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]")
}

// headerKey normalizes "## Cloze Words:" to "CLOZE_WORDS".
func headerKey(line string) string {
	key := strings.Trim(line, "#*: ")
	key = strings.ToUpper(key)
	return strings.ReplaceAll(key, " ", "_")
}

// guidanceHeader recognizes "Focus Areas:" style lines. Text after the
// colon is returned as the first item.
func guidanceHeader(line string) (guidanceList, string, bool) {
	head, rest, _ := strings.Cut(line, ":")
	l, ok := guidanceHeaders[strings.ToLower(strings.Trim(head, "#* "))]
	if !ok {
		return listNone, "", false
	}
	return l, strings.TrimSpace(rest), true
}

func splitFields(line string) []string {
	line = bullet.ReplaceAllString(line, "")
	return lo.Map(strings.Split(line, "|"), func(f string, _ int) string {
		return strings.TrimSpace(f)
	})
}

func parseClozeWord(line string) (ClozeWord, bool) {
	f := splitFields(line)
	if len(f) < 2 || f[0] == "" {
		return ClozeWord{}, false
	}
	w := ClozeWord{Word: f[0], Difficulty: normalizeDifficulty(f[1])}
	if len(f) > 2 {
		w.Reason = strings.Join(f[2:], " | ")
	}
	return w, true
}

func parseVocabulary(line string) (VocabularyItem, bool) {
	f := splitFields(line)
	if len(f) < 2 || f[0] == "" {
		return VocabularyItem{}, false
	}
	v := VocabularyItem{Word: f[0], Definition: f[1], Importance: ImportanceLow}
	if len(f) > 2 {
		v.Importance = normalizeImportance(f[len(f)-1])
		v.Definition = strings.Join(f[1:len(f)-1], " | ")
	}
	return v, true
}

func parseMetric(m *Metrics, line string) {
	f := splitFields(line)
	if len(f) < 2 {
		return
	}
	val, err := strconv.ParseFloat(strings.TrimSuffix(f[1], "%"), 64)
	if err != nil {
		return
	}
	switch strings.ToLower(f[0]) {
	case "readabilityscore":
		m.ReadabilityScore = val
	case "averagewordlength":
		m.AverageWordLength = val
	case "sentencecomplexity":
		m.SentenceComplexity = val
	case "academicwordpercentage":
		m.AcademicWordPercentage = val
	}
}

func normalizeDifficulty(s string) Difficulty {
	switch d := Difficulty(strings.ToLower(s)); d {
	case DifficultyBasic, DifficultyIntermediate, DifficultyAdvanced:
		return d
	}
	return DifficultyBasic
}

func normalizeImportance(s string) Importance {
	switch i := Importance(strings.ToLower(s)); i {
	case ImportanceHigh, ImportanceMedium, ImportanceLow:
		return i
	}
	return ImportanceLow
}
