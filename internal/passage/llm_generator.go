package passage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/abhisek/clozeit/internal/llm"
)

// LLMGenerator implements Generator using an LLM provider.
type LLMGenerator struct {
	provider llm.Provider
	config   Config
}

// New creates a new LLMGenerator with the given provider and config.
func New(provider llm.Provider, cfg Config) *LLMGenerator {
	if cfg.MaxAttempts < 1 {
		cfg.MaxAttempts = 1
	}
	return &LLMGenerator{provider: provider, config: cfg}
}

// passageOutput is the raw LLM response before validation.
type passageOutput struct {
	PassageText string `json:"passage_text"`
}

// Generate writes one passage, regenerating after retryable validation
// failures up to Config.MaxAttempts times. Every failure is returned as a
// *GenerationError.
func (g *LLMGenerator) Generate(ctx context.Context, input Input) (*Passage, error) {
	ctx = llm.WithPurpose(ctx, llm.PurposePassage)

	req := llm.Request{
		System:      systemPrompt,
		Messages:    llm.UserMessage(buildUserMessage(input, g.config)),
		Schema:      PassageSchema,
		MaxTokens:   g.config.MaxTokens,
		Temperature: g.config.Temperature,
	}

	var lastErr error
	for range g.config.MaxAttempts {
		p, err := g.generateOnce(ctx, req, input)
		if err == nil {
			return p, nil
		}
		lastErr = err

		var verr *ValidationError
		if !errors.As(err, &verr) || !verr.Retryable {
			break
		}
	}
	return nil, &GenerationError{Err: lastErr}
}

func (g *LLMGenerator) generateOnce(ctx context.Context, req llm.Request, input Input) (*Passage, error) {
	resp, err := g.provider.Generate(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("LLM generation failed: %w", err)
	}

	var raw passageOutput
	if err := json.Unmarshal(resp.Content, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse LLM response: %w", err)
	}

	p := &Passage{
		Text:       normalizeText(raw.PassageText),
		Topic:      input.Topic,
		Difficulty: input.Difficulty,
	}

	for _, v := range g.config.Validators {
		if verr := v.Validate(p, input); verr != nil {
			return nil, verr
		}
	}
	return p, nil
}

// normalizeText converts line endings and trims surrounding whitespace.
func normalizeText(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.TrimSpace(s)
}
