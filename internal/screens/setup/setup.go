// Package setup lets the learner pick a topic, level, exercise type and gap
// frequency, then generates a passage for the exercise screen.
package setup

import (
	"strconv"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/samber/lo"

	"github.com/abhisek/clozeit/internal/analysis"
	"github.com/abhisek/clozeit/internal/exercise"
	"github.com/abhisek/clozeit/internal/passage"
	"github.com/abhisek/clozeit/internal/router"
	"github.com/abhisek/clozeit/internal/screen"
	"github.com/abhisek/clozeit/internal/screens/practice"
	"github.com/abhisek/clozeit/internal/ui/components"
	"github.com/abhisek/clozeit/internal/ui/layout"
	"github.com/abhisek/clozeit/internal/ui/theme"
)

// Defaults pre-selects the form fields.
type Defaults struct {
	Topic      passage.Topic
	Difficulty passage.Difficulty
	Exercise   exercise.Options
}

type field int

const (
	fieldTopic field = iota
	fieldDifficulty
	fieldType
	fieldGap
	fieldGenerate
	fieldCount
)

var modes = []exercise.Mode{exercise.ModeCTest, exercise.ModeCloze}

type passageReadyMsg struct {
	RequestID string
	Passage *passage.Passage
	Err     error
}

// SetupScreen implements screen.Screen for the exercise setup form.
type SetupScreen struct {
	generator passage.Generator
	analyzer  analysis.Analyzer

	topic      components.Picker
	difficulty components.Picker
	mode       components.Picker
	gap        components.NumberInput
	generate   components.Button
	focus      field

	generating bool
	request    screen.Request
	errMsg     string
}

var _ screen.Screen = (*SetupScreen)(nil)
var _ screen.KeyHintProvider = (*SetupScreen)(nil)
var _ screen.Closer = (*SetupScreen)(nil)

// New creates a SetupScreen. generator must not be nil.
func New(generator passage.Generator, analyzer analysis.Analyzer, d Defaults) *SetupScreen {
	mode := d.Exercise.Mode
	if mode != exercise.ModeCloze {
		mode = exercise.ModeCTest
	}
	gap := d.Exercise.GapFrequency
	if gap == 0 {
		gap = mode.DefaultGapFrequency()
	}

	s := &SetupScreen{
		generator: generator,
		analyzer:  analyzer,
		topic: components.NewPicker("Topic",
			lo.Map(passage.Topics, func(t passage.Topic, _ int) string { return string(t) }),
			string(d.Topic)),
		difficulty: components.NewPicker("Level",
			lo.Map(passage.Difficulties, func(d passage.Difficulty, _ int) string { return d.Label() }),
			d.Difficulty.Label()),
		mode: components.NewPicker("Exercise type",
			lo.Map(modes, func(m exercise.Mode, _ int) string { return m.Label() }),
			mode.Label()),
		gap: components.NewNumberInput("Gap frequency", gap, exercise.MinGapFrequency, exercise.MaxGapFrequency),
	}
	s.generate = components.NewButton("Generate text", s.start)
	s.setFocus(fieldTopic)
	return s
}

func (s *SetupScreen) Init() tea.Cmd {
	return nil
}

// Close cancels generation when the learner backs out.
func (s *SetupScreen) Close() {
	s.request.Cancel()
	s.generating = false
}

func (s *SetupScreen) Title() string {
	return "New Exercise"
}

func (s *SetupScreen) KeyHints() []layout.KeyHint {
	if s.generating {
		return []layout.KeyHint{{Key: "Esc", Description: "Cancel"}}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Field"},
		{Key: "←→", Description: "Change"},
		{Key: "Enter", Description: "Generate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *SetupScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case passageReadyMsg:
		return s.handlePassage(msg)
	case tea.KeyMsg:
		return s.handleKey(msg)
	}
	return s, nil
}

func (s *SetupScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	if s.generating {
		return s, nil
	}

	switch msg.String() {
	case "up", "shift+tab":
		s.setFocus((s.focus - 1 + fieldCount) % fieldCount)
		return s, nil
	case "down", "tab":
		s.setFocus((s.focus + 1) % fieldCount)
		return s, nil
	case "enter":
		return s, s.start()
	}

	var cmd tea.Cmd
	switch s.focus {
	case fieldTopic:
		s.topic, cmd = s.topic.Update(msg)
	case fieldDifficulty:
		s.difficulty, cmd = s.difficulty.Update(msg)
	case fieldType:
		before := s.selectedMode()
		s.mode, cmd = s.mode.Update(msg)
		s.syncGap(before)
	case fieldGap:
		s.gap, cmd = s.gap.Update(msg)
	}
	return s, cmd
}

// syncGap moves the gap frequency to the new mode's default when the
// learner had left it at the old mode's default.
func (s *SetupScreen) syncGap(before exercise.Mode) {
	after := s.selectedMode()
	if after == before {
		return
	}
	if v, err := s.gap.Value(); err == nil && v == before.DefaultGapFrequency() {
		s.gap.Model.SetValue(strconv.Itoa(after.DefaultGapFrequency()))
	}
}

func (s *SetupScreen) setFocus(f field) {
	s.focus = f
	s.topic.Focused = f == fieldTopic
	s.difficulty.Focused = f == fieldDifficulty
	s.mode.Focused = f == fieldType
	s.generate.Focused = f == fieldGenerate
	if f == fieldGap {
		s.gap.Focus()
	} else {
		s.gap.Blur()
	}
}

func (s *SetupScreen) selectedMode() exercise.Mode {
	return modes[s.mode.Selected]
}

func (s *SetupScreen) input() passage.Input {
	return passage.Input{
		Topic:      passage.Topics[s.topic.Selected],
		Difficulty: passage.Difficulties[s.difficulty.Selected],
	}
}

func (s *SetupScreen) start() tea.Cmd {
	if _, err := s.gap.Value(); err != nil {
		s.errMsg = err.Error()
		s.setFocus(fieldGap)
		return nil
	}
	s.generating = true
	s.errMsg = ""
	ctx, id := s.request.Start()
	gen, input := s.generator, s.input()
	return func() tea.Msg {
		p, err := gen.Generate(ctx, input)
		return passageReadyMsg{RequestID: id, Passage: p, Err: err}
	}
}

func (s *SetupScreen) handlePassage(msg passageReadyMsg) (screen.Screen, tea.Cmd) {
	if !s.generating || !s.request.Finish(msg.RequestID) {
		return s, nil
	}
	s.generating = false
	if msg.Err != nil {
		s.errMsg = "Failed to generate text. Press Enter to try again."
		return s, nil
	}

	gap, _ := s.gap.Value()
	ex := exercise.Build(msg.Passage.Text, exercise.Options{Mode: s.selectedMode(), GapFrequency: gap})
	next := practice.New(ex, practice.Options{
		Generator: s.generator,
		Analyzer:  s.analyzer,
		Input:     s.input(),
	})
	return s, router.Replace(next)
}

func (s *SetupScreen) View(width, height int) string {
	if s.generating {
		return layout.RenderMessage(width, theme.Hint,
			"Generating a "+s.difficulty.Value()+" text about "+s.topic.Value()+"...")
	}

	rows := []string{
		s.topic.View(),
		s.difficulty.View(),
		s.mode.View(),
		s.gap.View(),
		"",
		s.generate.View(),
	}
	if s.errMsg != "" {
		rows = append(rows, "", theme.Incorrect.Render(s.errMsg))
	}

	cw := components.ContentWidth(width)
	panel := components.Panel(lipgloss.JoinVertical(lipgloss.Left, rows...), cw)
	return components.Center(panel, width, height)
}
