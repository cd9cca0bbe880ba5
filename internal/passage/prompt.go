package passage

import (
	"fmt"
	"strings"
)

const systemPrompt = `You are an educational content creator specializing in creating comprehensive, engaging texts for language learners. Create content that is informative, well-structured, and suitable for cloze testing.`

// buildUserMessage renders the generation prompt for input.
func buildUserMessage(input Input, cfg Config) string {
	level := strings.ToLower(string(input.Difficulty))

	var b strings.Builder
	fmt.Fprintf(&b, "Generate a comprehensive text about %s suitable for %s level English learners.\n\n", input.Topic, level)
	b.WriteString("Requirements:\n")
	b.WriteString("- Write 3-4 well-developed paragraphs (at least 100 words each)\n")
	b.WriteString("- Separate paragraphs with a single blank line\n")
	b.WriteString("- Each paragraph should focus on a different aspect of the topic\n")
	fmt.Fprintf(&b, "- Use varied vocabulary and sentence structures appropriate for %s level\n", level)
	b.WriteString("- Ensure smooth transitions between paragraphs\n")
	b.WriteString("- Include specific examples and details\n")
	b.WriteString("- Use clear and informative topic sentences\n")
	b.WriteString("- Maintain coherent flow of ideas\n")
	b.WriteString("- Include factual information and explanations\n")
	b.WriteString("- Make content engaging and educational\n")
	b.WriteString("- Do NOT include any gaps or blanks - return only the raw text\n")

	if openings := buildDedup(input.PriorOpenings, cfg.MaxPriorOpenings); openings != "" {
		b.WriteString("\nDo not start the same way as these earlier texts:\n")
		b.WriteString(openings)
		b.WriteString("\n")
	}

	b.WriteString("\nNote: The text will be processed for cloze testing separately, so just focus on creating clear, well-structured content.")
	return b.String()
}

// buildDedup lists the most recent max openings, one per line.
func buildDedup(openings []string, max int) string {
	if len(openings) == 0 {
		return ""
	}
	if max > 0 && len(openings) > max {
		openings = openings[len(openings)-max:]
	}
	var b strings.Builder
	for i, o := range openings {
		fmt.Fprintf(&b, "%d. %s\n", i+1, strings.TrimSpace(o))
	}
	return strings.TrimRight(b.String(), "\n")
}
