package textseg

import "strings"

// stripChars are removed from a token before the stopword lookup.
const stripChars = `.,!?;:'"`

// IsContentWord reports whether token carries meaning on its own, i.e. it is
// not empty after stripping punctuation and is not an English stopword.
func IsContentWord(token string) bool {
	clean := strings.Map(func(r rune) rune {
		if strings.ContainsRune(stripChars, r) {
			return -1
		}
		return r
	}, strings.ToLower(token))
	if clean == "" {
		return false
	}
	_, stop := stopwords[clean]
	return !stop
}

var stopwords = toSet([]string{
	"a", "about", "above", "across", "after", "afterwards", "again", "against",
	"all", "almost", "alone", "along", "already", "also", "although", "always",
	"am", "among", "amongst", "an", "and", "another", "any", "anyhow", "anyone",
	"anything", "anyway", "anywhere", "are", "around", "as", "at", "back", "be",
	"became", "because", "become", "becomes", "becoming", "been", "before",
	"beforehand", "behind", "being", "below", "beside", "besides", "between",
	"beyond", "both", "but", "by", "can", "cannot", "could", "did", "do",
	"does", "doing", "done", "down", "due", "during", "each", "either", "else",
	"elsewhere", "enough", "etc", "even", "ever", "every", "everyone",
	"everything", "everywhere", "except", "few", "for", "former", "formerly",
	"from", "further", "had", "has", "have", "having", "he", "hence", "her",
	"here", "hereafter", "hereby", "herein", "hereupon", "hers", "herself",
	"him", "himself", "his", "how", "however", "i", "ie", "if", "in", "indeed",
	"into", "is", "it", "its", "itself", "just", "last", "latter", "latterly",
	"least", "less", "many", "may", "me", "meanwhile", "might", "mine", "more",
	"moreover", "most", "mostly", "much", "must", "my", "myself", "namely",
	"neither", "never", "nevertheless", "next", "no", "nobody", "none",
	"noone", "nor", "not", "nothing", "now", "nowhere", "of", "off", "often",
	"on", "once", "one", "only", "onto", "or", "other", "others", "otherwise",
	"our", "ours", "ourselves", "out", "over", "own", "per", "perhaps",
	"rather", "same", "seem", "seemed", "seeming", "seems", "several", "she",
	"should", "since", "so", "some", "somehow", "someone", "something",
	"sometime", "sometimes", "somewhere", "still", "such", "than", "that",
	"the", "their", "theirs", "them", "themselves", "then", "thence", "there",
	"thereafter", "thereby", "therefore", "therein", "thereupon", "these",
	"they", "this", "those", "though", "through", "throughout", "thru", "thus",
	"to", "together", "too", "toward", "towards", "under", "until", "up",
	"upon", "us", "very", "via", "was", "we", "well", "were", "what",
	"whatever", "when", "whence", "whenever", "where", "whereafter", "whereas",
	"whereby", "wherein", "whereupon", "wherever", "whether", "which", "while",
	"whither", "who", "whoever", "whole", "whom", "whose", "why", "will",
	"with", "within", "without", "would", "yet", "you", "your", "yours",
	"yourself", "yourselves",
})

func toSet(words []string) map[string]struct{} {
	m := make(map[string]struct{}, len(words))
	for _, w := range words {
		m[w] = struct{}{}
	}
	return m
}
