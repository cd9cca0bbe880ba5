package llm

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/abhisek/clozeit/internal/store"
)

// ErrNotConfigured means no provider was selected and no vendor API key
// was found in the environment.
var ErrNotConfigured = errors.New("no LLM provider configured")

// NewProvider builds the backend named by cfg.Provider and wraps it so that
// each attempt is audited, transient failures are retried and the whole
// call is bounded by cfg.Timeout. eventRepo may be nil.
func NewProvider(ctx context.Context, cfg Config, eventRepo store.EventRepo, logger logrus.FieldLogger) (Provider, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.Provider == "mock" {
		return NewMockProvider(), nil
	}

	base, err := newBackend(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}

	p := WithLogging(base, cfg.Provider, eventRepo, logger)
	p = WithRetry(p, cfg.Retry, logger)
	return WithTimeout(p, cfg.Timeout), nil
}

func newBackend(ctx context.Context, cfg Config) (Provider, error) {
	switch cfg.Provider {
	case "anthropic":
		return NewAnthropicProvider(cfg.Anthropic)
	case "openai":
		return NewOpenAIProvider(cfg.OpenAI)
	case "gemini":
		return NewGeminiProvider(ctx, cfg.Gemini)
	case "openrouter":
		return NewOpenRouterProvider(cfg.OpenRouter)
	}
	return nil, fmt.Errorf("unknown LLM provider: %q", cfg.Provider)
}

// NewProviderFromEnv uses the CLOZEIT_* variables when CLOZEIT_LLM_PROVIDER
// is set and otherwise falls back to DiscoverConfig.
func NewProviderFromEnv(ctx context.Context, eventRepo store.EventRepo, logger logrus.FieldLogger) (Provider, error) {
	cfg := ConfigFromEnv()
	if !hasExplicitProvider() {
		discovered, ok := DiscoverConfig()
		if !ok {
			return nil, ErrNotConfigured
		}
		discovered.Timeout = cfg.Timeout
		cfg = discovered
	}
	return NewProvider(ctx, cfg, eventRepo, logger)
}
