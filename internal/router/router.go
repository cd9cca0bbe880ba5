// Package router keeps the stack of screens the app navigates through.
// Screens never touch the stack directly; they return the commands built by
// Push, Pop and Replace and the app feeds the resulting messages back here.
package router

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/clozeit/internal/screen"
)

type PushScreenMsg struct {
	Screen screen.Screen
}

type PopScreenMsg struct{}

// ReplaceScreenMsg swaps the active screen, so going back skips the
// replaced one.
type ReplaceScreenMsg struct {
	Screen screen.Screen
}

// Push opens s on top of the current screen.
func Push(s screen.Screen) tea.Cmd {
	return func() tea.Msg { return PushScreenMsg{Screen: s} }
}

// Pop returns to the previous screen.
func Pop() tea.Cmd {
	return func() tea.Msg { return PopScreenMsg{} }
}

// Replace puts s in place of the current screen.
func Replace(s screen.Screen) tea.Cmd {
	return func() tea.Msg { return ReplaceScreenMsg{Screen: s} }
}

// Router owns the screen stack. The root screen is never popped.
type Router struct {
	stack []screen.Screen
}

func New(root screen.Screen) *Router {
	return &Router{stack: []screen.Screen{root}}
}

func (r *Router) top() int { return len(r.stack) - 1 }

// Active is the screen on top of the stack.
func (r *Router) Active() screen.Screen {
	return r.stack[r.top()]
}

func (r *Router) Depth() int {
	return len(r.stack)
}

// Update applies navigation messages and hands everything else to the
// active screen. Newly shown screens get their Init command run.
func (r *Router) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case PushScreenMsg:
		r.stack = append(r.stack, msg.Screen)
		return msg.Screen.Init()
	case ReplaceScreenMsg:
		closeScreen(r.Active())
		r.stack[r.top()] = msg.Screen
		return msg.Screen.Init()
	case PopScreenMsg:
		if r.top() > 0 {
			closeScreen(r.Active())
			r.stack = r.stack[:r.top()]
		}
		return nil
	}

	next, cmd := r.Active().Update(msg)
	r.stack[r.top()] = next
	return cmd
}

func (r *Router) View(width, height int) string {
	return r.Active().View(width, height)
}

func closeScreen(s screen.Screen) {
	if c, ok := s.(screen.Closer); ok {
		c.Close()
	}
}
