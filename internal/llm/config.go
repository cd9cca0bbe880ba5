package llm

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/samber/lo"
)

// Config selects and configures one LLM backend.
type Config struct {
	// Provider is one of anthropic, openai, gemini, openrouter or mock.
	Provider string

	Anthropic  AnthropicConfig
	OpenAI     OpenAIConfig
	Gemini     GeminiConfig
	OpenRouter OpenRouterConfig
	Retry      RetryConfig

	// Timeout bounds one Generate call, retries included.
	Timeout time.Duration
}

type AnthropicConfig struct {
	APIKey string
	Model  string
}

type OpenAIConfig struct {
	APIKey  string
	Model   string
	BaseURL string // for OpenAI-compatible endpoints
}

type GeminiConfig struct {
	APIKey string
	Model  string
}

type OpenRouterConfig struct {
	APIKey  string
	Model   string
	BaseURL string
}

// RetryConfig shapes the exponential backoff used by WithRetry.
type RetryConfig struct {
	MaxAttempts int
	InitialWait time.Duration
	MaxWait     time.Duration
	Multiplier  float64
}

func DefaultConfig() Config {
	return Config{
		Provider:   "anthropic",
		Anthropic:  AnthropicConfig{Model: "claude-haiku"},
		OpenAI:     OpenAIConfig{Model: "gpt-4o-mini"},
		Gemini:     GeminiConfig{Model: "gemini-flash"},
		OpenRouter: OpenRouterConfig{Model: "google/gemini-2.0-flash-exp"},
		Retry: RetryConfig{
			MaxAttempts: 3,
			InitialWait: time.Second,
			MaxWait:     10 * time.Second,
			Multiplier:  2,
		},
		Timeout: 60 * time.Second,
	}
}

// backend describes where a provider keeps its key and model. envKey is the
// vendor's conventional variable, probed by DiscoverConfig.
type backend struct {
	name   string
	envKey string
	key    func(*Config) *string
	model  func(*Config) *string
}

// backends is in discovery priority order.
var backends = []backend{
	{"gemini", "GEMINI_API_KEY",
		func(c *Config) *string { return &c.Gemini.APIKey },
		func(c *Config) *string { return &c.Gemini.Model }},
	{"openai", "OPENAI_API_KEY",
		func(c *Config) *string { return &c.OpenAI.APIKey },
		func(c *Config) *string { return &c.OpenAI.Model }},
	{"anthropic", "ANTHROPIC_API_KEY",
		func(c *Config) *string { return &c.Anthropic.APIKey },
		func(c *Config) *string { return &c.Anthropic.Model }},
	{"openrouter", "OPENROUTER_API_KEY",
		func(c *Config) *string { return &c.OpenRouter.APIKey },
		func(c *Config) *string { return &c.OpenRouter.Model }},
}

func lookupBackend(name string) (backend, bool) {
	return lo.Find(backends, func(b backend) bool { return b.name == name })
}

// prefixed returns the CLOZEIT_ variable for a backend setting, e.g.
// CLOZEIT_GEMINI_MODEL.
func prefixed(name, setting string) string {
	return "CLOZEIT_" + strings.ToUpper(name) + "_" + setting
}

func setFromEnv(dst *string, name string) {
	if v := os.Getenv(name); v != "" {
		*dst = v
	}
}

// ConfigFromEnv overlays CLOZEIT_* variables on DefaultConfig.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()
	setFromEnv(&cfg.Provider, "CLOZEIT_LLM_PROVIDER")
	for _, b := range backends {
		setFromEnv(b.key(&cfg), prefixed(b.name, "API_KEY"))
		setFromEnv(b.model(&cfg), prefixed(b.name, "MODEL"))
	}
	setFromEnv(&cfg.OpenAI.BaseURL, "CLOZEIT_OPENAI_BASE_URL")

	if d, err := time.ParseDuration(os.Getenv("CLOZEIT_LLM_TIMEOUT")); err == nil && d > 0 {
		cfg.Timeout = d
	}
	return cfg
}

func hasExplicitProvider() bool {
	return os.Getenv("CLOZEIT_LLM_PROVIDER") != ""
}

// DiscoverConfig picks the first backend whose vendor API key variable is
// set. The second result is false when none is.
func DiscoverConfig() (Config, bool) {
	for _, b := range backends {
		if k := os.Getenv(b.envKey); k != "" {
			cfg := DefaultConfig()
			cfg.Provider = b.name
			*b.key(&cfg) = k
			return cfg, true
		}
	}
	return Config{}, false
}

// Validate checks the selected provider is known and has an API key.
func (c Config) Validate() error {
	if c.Provider == "mock" {
		return nil
	}
	b, ok := lookupBackend(c.Provider)
	if !ok {
		return fmt.Errorf("unknown LLM provider: %q", c.Provider)
	}
	if *b.key(&c) == "" {
		return fmt.Errorf("%s is required for the %s provider", prefixed(b.name, "API_KEY"), b.name)
	}
	return nil
}
