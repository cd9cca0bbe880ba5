package llm

import (
	"fmt"

	"github.com/samber/lo"
)

const defaultOpenRouterBaseURL = "https://openrouter.ai/api/v1"

// OpenRouterProvider speaks the OpenAI protocol to OpenRouter. Model IDs
// such as "anthropic/claude-3-haiku" are sent as given.
type OpenRouterProvider struct {
	*OpenAIProvider
}

func NewOpenRouterProvider(cfg OpenRouterConfig) (*OpenRouterProvider, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("openrouter API key is required")
	}
	baseURL, _ := lo.Coalesce(cfg.BaseURL, defaultOpenRouterBaseURL)
	return &OpenRouterProvider{
		OpenAIProvider: newOpenAIProviderRaw(OpenAIConfig{APIKey: cfg.APIKey, Model: cfg.Model, BaseURL: baseURL}),
	}, nil
}
