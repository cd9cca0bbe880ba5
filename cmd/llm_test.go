package cmd

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/abhisek/clozeit/internal/store"
)

func TestPrintUsage(t *testing.T) {
	var out bytes.Buffer
	printUsage(&out,
		[]store.PurposeUsage{
			{Purpose: "passage-gen", Calls: 3, InputTokens: 900, OutputTokens: 1500, AvgLatencyMs: 2100},
			{Purpose: "analysis", Calls: 1, InputTokens: 100, OutputTokens: 500, AvgLatencyMs: 900},
		},
		[]store.ModelUsage{
			{Model: "gpt-4o-mini", Calls: 3, InputTokens: 1_000_000, OutputTokens: 0},
			{Model: "homegrown-7b", Calls: 1, InputTokens: 10, OutputTokens: 10},
		})

	got := out.String()
	assert.Contains(t, got, "TOTAL                  4        1000        2000        3000")
	assert.Contains(t, got, "$0.15")
	assert.Contains(t, got, "TOTAL (partial)")
	assert.Contains(t, got, "No pricing for: homegrown-7b")
}

func TestPrintUsage_Empty(t *testing.T) {
	var out bytes.Buffer
	printUsage(&out, nil, nil)
	assert.Equal(t, "No LLM usage recorded yet.\n", out.String())
}

func TestPrintEvent(t *testing.T) {
	var out bytes.Buffer
	printEvent(&out, &store.LLMEvent{
		ID:        7,
		Timestamp: time.Date(2025, 3, 1, 12, 0, 0, 0, time.Local),
		LLMRequestEventData: store.LLMRequestEventData{
			Provider:     "gemini",
			Model:        "gemini-2.5-flash",
			Purpose:      "analysis",
			ErrorMessage: "rate limited",
			RequestBody:  "[user]\nhello",
		},
	})

	got := out.String()
	assert.Contains(t, got, "ID:        7\n")
	assert.Contains(t, got, "Time:      2025-03-01 12:00:00\n")
	assert.Contains(t, got, "Error:     rate limited\n")
	assert.Contains(t, got, "REQUEST")
	assert.Contains(t, got, "[user]\nhello")
	assert.Contains(t, got, "(not captured)")
}

func TestPrintEventList(t *testing.T) {
	var out bytes.Buffer
	printEventList(&out, nil)
	assert.Equal(t, "No LLM requests recorded.\n", out.String())

	out.Reset()
	printEventList(&out, []store.LLMEvent{{ID: 1, LLMRequestEventData: store.LLMRequestEventData{Purpose: "analysis", Success: true}}})
	assert.Contains(t, out.String(), "analysis")
	assert.Contains(t, out.String(), "✓")
}
