package components

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
)

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func TestPickerCycles(t *testing.T) {
	p := NewPicker("Type", []string{"C-Test", "Cloze Test"}, "Cloze Test")
	if p.Selected != 1 {
		t.Fatalf("expected initial selection 1, got %d", p.Selected)
	}

	p, _ = p.Update(specialKey(tea.KeyRight))
	if p.Selected != 1 {
		t.Errorf("unfocused picker should ignore keys, got %d", p.Selected)
	}

	p.Focused = true
	p, _ = p.Update(specialKey(tea.KeyRight))
	if p.Value() != "C-Test" {
		t.Errorf("expected wrap to C-Test, got %q", p.Value())
	}
	p, _ = p.Update(specialKey(tea.KeyLeft))
	if p.Value() != "Cloze Test" {
		t.Errorf("expected wrap back to Cloze Test, got %q", p.Value())
	}
}

func TestMenuSkipsDisabled(t *testing.T) {
	fired := ""
	m := NewMenu([]MenuItem{
		{Label: "New AI exercise", Disabled: true, Hint: "no LLM provider"},
		{Label: "Practice", Action: func() tea.Cmd { fired = "practice"; return nil }},
		{Label: "Quit", Action: func() tea.Cmd { fired = "quit"; return nil }},
	})
	if m.Selected != 1 {
		t.Fatalf("expected first enabled item selected, got %d", m.Selected)
	}

	m, _ = m.Update(specialKey(tea.KeyUp))
	if m.Selected != 1 {
		t.Errorf("up should not land on a disabled item, got %d", m.Selected)
	}

	m, _ = m.Update(specialKey(tea.KeyDown))
	m.Update(specialKey(tea.KeyEnter))
	if fired != "quit" {
		t.Errorf("expected quit action, got %q", fired)
	}

	if !strings.Contains(m.View(), "no LLM provider") {
		t.Error("expected disabled hint in view")
	}
}

func TestNumberInput(t *testing.T) {
	n := NewNumberInput("Gap", 6, 1, 10)
	if v, err := n.Value(); err != nil || v != 6 {
		t.Fatalf("expected 6, got %d (%v)", v, err)
	}

	n.Focus()
	n, _ = n.Update(keyPress('x'))
	if n.Model.Value() != "6" {
		t.Errorf("letters should be rejected, got %q", n.Model.Value())
	}

	n.Model.SetValue("11")
	if _, err := n.Value(); err == nil {
		t.Error("expected out-of-range error")
	}
	n.Model.SetValue("")
	if _, err := n.Value(); err == nil {
		t.Error("expected error for empty input")
	}
}

func TestProgressBarClamps(t *testing.T) {
	if p := NewProgressBar("", 140, 30); p.Percent != 100 {
		t.Errorf("expected 100, got %d", p.Percent)
	}
	if p := NewProgressBar("", -5, 30); p.Percent != 0 {
		t.Errorf("expected 0, got %d", p.Percent)
	}
	if !strings.Contains(NewProgressBar("Score", 67, 40).View(), "67%") {
		t.Error("expected percentage in view")
	}
}

func TestButtonFiresOnlyWhenFocused(t *testing.T) {
	pressed := 0
	b := NewButton("Generate", func() tea.Cmd { pressed++; return nil })

	b.Update(specialKey(tea.KeyEnter))
	b.Focused = true
	b.Update(specialKey(tea.KeyEnter))

	if pressed != 1 {
		t.Errorf("expected 1 press, got %d", pressed)
	}
}
