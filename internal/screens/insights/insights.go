// Package insights shows the language analysis of the passage being
// practised.
package insights

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/clozeit/internal/analysis"
	"github.com/abhisek/clozeit/internal/screen"
	"github.com/abhisek/clozeit/internal/ui/layout"
	"github.com/abhisek/clozeit/internal/ui/theme"
)

// Tab is one page of the analysis.
type Tab int

const (
	TabVocabulary Tab = iota
	TabInsights
)

var tabNames = []string{"Vocabulary", "Insights"}

type analysisReadyMsg struct {
	RequestID string
	Analysis *analysis.Analysis
	Err      error
}

// InsightsScreen implements screen.Screen for the analysis view.
type InsightsScreen struct {
	analyzer analysis.Analyzer
	text     string
	result   *analysis.Analysis
	loading  bool
	request  screen.Request
	errMsg   string
	tab      Tab
	offset   int
}

var _ screen.Screen = (*InsightsScreen)(nil)
var _ screen.KeyHintProvider = (*InsightsScreen)(nil)
var _ screen.Closer = (*InsightsScreen)(nil)

// New creates an InsightsScreen that analyzes text when pushed.
func New(analyzer analysis.Analyzer, text string) *InsightsScreen {
	return &InsightsScreen{analyzer: analyzer, text: text, loading: true}
}

func (s *InsightsScreen) Init() tea.Cmd {
	ctx, id := s.request.Start()
	analyzer, text := s.analyzer, s.text
	return func() tea.Msg {
		a, err := analyzer.Analyze(ctx, text)
		return analysisReadyMsg{RequestID: id, Analysis: a, Err: err}
	}
}

func (s *InsightsScreen) Close() {
	s.request.Cancel()
}

func (s *InsightsScreen) Title() string {
	return "Text Analysis"
}

func (s *InsightsScreen) KeyHints() []layout.KeyHint {
	if s.loading || s.errMsg != "" {
		return []layout.KeyHint{{Key: "Esc", Description: "Back"}}
	}
	return []layout.KeyHint{
		{Key: "Tab", Description: "Switch tab"},
		{Key: "↑↓", Description: "Scroll"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *InsightsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case analysisReadyMsg:
		if !s.request.Finish(msg.RequestID) {
			return s, nil
		}
		s.loading = false
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
			return s, nil
		}
		s.result = msg.Analysis

	case tea.KeyMsg:
		if s.result == nil {
			return s, nil
		}
		switch msg.String() {
		case "tab", "right", "shift+tab", "left":
			s.tab = 1 - s.tab
			s.offset = 0
		case "down", "j":
			s.offset++
		case "up", "k":
			s.offset = max(s.offset-1, 0)
		}
	}
	return s, nil
}

func (s *InsightsScreen) View(width, height int) string {
	switch {
	case s.loading:
		return layout.RenderMessage(width, theme.Hint, "Analyzing text...")
	case s.errMsg != "":
		return layout.RenderMessage(width, lipgloss.NewStyle().Foreground(theme.Error),
			"Failed to analyze text: "+s.errMsg+"\n\nPress Esc to go back.")
	}

	cw := min(width-4, 100)
	var body string
	if s.tab == TabVocabulary {
		body = renderVocabulary(s.result.Vocabulary, cw)
	} else {
		body = renderInsights(s.result, cw)
	}

	lines := strings.Split(body, "\n")
	visible := max(height-4, 1)
	s.offset = min(s.offset, max(len(lines)-visible, 0))
	end := min(s.offset+visible, len(lines))

	return lipgloss.NewStyle().Padding(1, 2).Render(
		renderTabs(s.tab) + "\n\n" + strings.Join(lines[s.offset:end], "\n"))
}

func renderTabs(active Tab) string {
	parts := make([]string, len(tabNames))
	for i, name := range tabNames {
		if Tab(i) == active {
			parts[i] = theme.TabActive.Render(name)
		} else {
			parts[i] = theme.TabInactive.Render(name)
		}
	}
	return strings.Join(parts, " ")
}

func renderVocabulary(items []analysis.VocabularyItem, width int) string {
	if len(items) == 0 {
		return theme.Hint.Render("No vocabulary items found.")
	}
	var b strings.Builder
	for _, v := range items {
		b.WriteString(theme.Heading.Render(v.Word))
		b.WriteString("  ")
		b.WriteString(importanceStyle(v.Importance).Render(string(v.Importance)))
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Width(width).PaddingLeft(2).Render(v.Definition))
		b.WriteString("\n\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func importanceStyle(i analysis.Importance) lipgloss.Style {
	switch i {
	case analysis.ImportanceHigh:
		return lipgloss.NewStyle().Foreground(theme.Error)
	case analysis.ImportanceMedium:
		return lipgloss.NewStyle().Foreground(theme.Accent)
	}
	return lipgloss.NewStyle().Foreground(theme.TextDim)
}

func renderInsights(a *analysis.Analysis, width int) string {
	var b strings.Builder

	b.WriteString(theme.Heading.Render("Text metrics"))
	b.WriteString("\n")
	for _, m := range a.Metrics.Entries() {
		b.WriteString(fmt.Sprintf("  %-26s %g\n", m.Label, m.Value))
	}

	section := func(title string, items []string) {
		b.WriteString("\n")
		b.WriteString(theme.Heading.Render(title))
		b.WriteString("\n")
		if len(items) == 0 {
			b.WriteString(theme.Hint.Render("  none"))
			b.WriteString("\n")
			return
		}
		for _, it := range items {
			b.WriteString(lipgloss.NewStyle().Width(width).Render("  • " + it))
			b.WriteString("\n")
		}
	}
	g := a.TeachingGuidance
	section("Focus areas", g.FocusAreas)
	section("Suggested activities", g.SuggestedActivities)
	section("Common challenges", g.CommonChallenges)

	words := make([]string, len(a.ClozeWords))
	for i, w := range a.ClozeWords {
		words[i] = fmt.Sprintf("%s (%s) %s", w.Word, w.Difficulty, w.Reason)
	}
	section("Suggested gap words", words)

	return strings.TrimRight(b.String(), "\n")
}
