package layout

import (
	"testing"

	"charm.land/lipgloss/v2"
	"github.com/stretchr/testify/assert"
)

func TestIsTooSmall(t *testing.T) {
	assert.False(t, IsTooSmall(80, 24))
	assert.True(t, IsTooSmall(79, 24))
	assert.True(t, IsTooSmall(80, 23))
}

func TestRenderFrameFillsHeight(t *testing.T) {
	header := RenderHeader("C-Test", "3/10", 80)
	footer := RenderFooter([]KeyHint{{Key: "Esc", Description: "Back"}}, 80)

	frame := RenderFrame(header, "body", footer, 80, 24)

	assert.Equal(t, 24, lipgloss.Height(frame))
	assert.Contains(t, frame, "clozeit")
	assert.Contains(t, frame, "C-Test")
	assert.Contains(t, frame, "3/10")
	assert.Contains(t, frame, "Esc")
	assert.Contains(t, frame, "body")
}

func TestRenderMinSizeMessage(t *testing.T) {
	msg := RenderMinSizeMessage(60, 20)
	assert.Contains(t, msg, "least 80 x 24")
	assert.Contains(t, msg, "Current: 60 x 20")
}
