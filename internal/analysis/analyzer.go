package analysis

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/abhisek/clozeit/internal/llm"
)

// ErrEmptyText is returned when there is nothing to analyze.
var ErrEmptyText = errors.New("analysis: text is empty")

// Analyzer produces an Analysis for a passage.
type Analyzer interface {
	Analyze(ctx context.Context, text string) (*Analysis, error)
}

// Config tunes the LLM call.
type Config struct {
	MaxTokens   int
	Temperature float64
}

// DefaultConfig returns the settings used by the CLI and server.
func DefaultConfig() Config {
	return Config{MaxTokens: 1500, Temperature: 0.3}
}

// LLMAnalyzer implements Analyzer on top of an llm.Provider.
type LLMAnalyzer struct {
	provider llm.Provider
	config   Config
}

// New creates an LLMAnalyzer.
func New(provider llm.Provider, cfg Config) *LLMAnalyzer {
	return &LLMAnalyzer{provider: provider, config: cfg}
}

// Analyze sends the passage to the model and parses its reply.
func (a *LLMAnalyzer) Analyze(ctx context.Context, text string) (*Analysis, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrEmptyText
	}

	ctx = llm.WithPurpose(ctx, llm.PurposeAnalysis)
	resp, err := a.provider.Generate(ctx, llm.Request{
		System:      systemPrompt,
		Messages:    llm.UserMessage(buildUserMessage(text)),
		MaxTokens:   a.config.MaxTokens,
		Temperature: a.config.Temperature,
	})
	if err != nil {
		return nil, fmt.Errorf("analysis: %w", err)
	}

	raw, err := resp.Text()
	if err != nil {
		return nil, fmt.Errorf("analysis: %w", err)
	}
	return Parse(raw), nil
}
