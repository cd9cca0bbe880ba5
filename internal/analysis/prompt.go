package analysis

const systemPrompt = "You are an expert in educational linguistics and text analysis. " +
	"Provide detailed, structured analysis of texts for language learning purposes."

const analysisTemplate = `Analyze this text for language learning purposes and provide a structured analysis. Format your response exactly as specified below, keeping the exact structure:

CLOZE_WORDS
[List each word on a new line with its difficulty level (basic/intermediate/advanced) and reason for selection, separated by |]
example|basic|Key concept word that demonstrates understanding
[End list with ---]
---

VOCABULARY
[List important vocabulary words with definitions and importance (high/medium/low), separated by |]
example|A representative instance|high
[End list with ---]
---

METRICS
readabilityScore|75
averageWordLength|5.2
sentenceComplexity|0.65
academicWordPercentage|15
[End metrics with ---]
---

TEACHING_GUIDANCE
Focus Areas:
[List each focus area on a new line]
Example focus area 1
Example focus area 2

Suggested Activities:
[List each activity on a new line]
Example activity 1
Example activity 2

Common Challenges:
[List each challenge on a new line]
Example challenge 1
Example challenge 2

Text to analyze: `

func buildUserMessage(text string) string {
	return analysisTemplate + text
}
