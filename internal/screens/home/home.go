package home

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/clozeit/internal/analysis"
	"github.com/abhisek/clozeit/internal/exercise"
	"github.com/abhisek/clozeit/internal/passage"
	"github.com/abhisek/clozeit/internal/router"
	"github.com/abhisek/clozeit/internal/screen"
	"github.com/abhisek/clozeit/internal/screens/practice"
	"github.com/abhisek/clozeit/internal/screens/setup"
	"github.com/abhisek/clozeit/internal/ui/components"
	"github.com/abhisek/clozeit/internal/ui/theme"
)

// HomeScreen is the main menu.
type HomeScreen struct {
	menu components.Menu
}

var _ screen.Screen = (*HomeScreen)(nil)

// New creates a new HomeScreen. generator and analyzer may be nil when no
// LLM provider is configured; the AI entry is then disabled.
func New(generator passage.Generator, analyzer analysis.Analyzer, defaults setup.Defaults) *HomeScreen {
	items := []components.MenuItem{
		{
			Label:    "New AI exercise",
			Hint:     "set an LLM API key to enable",
			Disabled: generator == nil,
			Action: func() tea.Cmd {
				return router.Push(setup.New(generator, analyzer, defaults))
			},
		},
		{
			Label: "Practice with sample text",
			Action: func() tea.Cmd {
				ex := exercise.Build(passage.SampleText, defaults.Exercise)
				return router.Push(practice.New(ex, practice.Options{Analyzer: analyzer}))
			},
		},
		{
			Label:  "Quit",
			Action: func() tea.Cmd { return tea.Quit },
		},
	}

	return &HomeScreen{menu: components.NewMenu(items)}
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	cw := components.ContentWidth(width)

	title := theme.Title.Width(cw).Render("c l o z e i t")
	subtitle := theme.Subtitle.Width(cw).Render("Gap-filling practice for English learners")
	about := lipgloss.NewStyle().Width(cw).Foreground(theme.TextDim).Render(strings.Join([]string{
		"C-Test: the second half of every second word is missing.",
		"Cloze Test: every sixth word is missing entirely.",
	}, "\n"))

	content := lipgloss.JoinVertical(lipgloss.Left,
		title, subtitle, "", components.Panel(h.menu.View(), cw), "", about)
	return components.Center(content, width, height)
}

func (h *HomeScreen) Title() string {
	return "Home"
}
