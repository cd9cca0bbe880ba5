package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	openai "github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestOpenAIProvider(t *testing.T, handler http.HandlerFunc) *OpenAIProvider {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	config := openai.DefaultConfig("test-key")
	config.BaseURL = server.URL + "/v1"
	return &OpenAIProvider{client: openai.NewClientWithConfig(config), model: "gpt-4o-mini"}
}

func openAIReply(content, finish string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id":    "chatcmpl-test",
			"model": "gpt-4o-mini",
			"choices": []map[string]any{{
				"index":         0,
				"message":       map[string]any{"role": "assistant", "content": content},
				"finish_reason": finish,
			}},
			"usage": map[string]any{"prompt_tokens": 40, "completion_tokens": 25, "total_tokens": 65},
		})
	}
}

func TestOpenAIProvider_Text(t *testing.T) {
	var body struct {
		Messages []struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"messages"`
	}
	p := newTestOpenAIProvider(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		openAIReply("The city sits on a river.", "stop")(w, r)
	})

	resp, err := p.Generate(context.Background(), Request{
		System:    "You write reading passages.",
		Messages:  UserMessage("Write a passage."),
		MaxTokens: 256,
	})
	require.NoError(t, err)

	assert.Equal(t, Usage{InputTokens: 40, OutputTokens: 25, TotalTokens: 65}, resp.Usage)
	assert.Equal(t, StopEnd, resp.StopReason)
	text, err := resp.Text()
	require.NoError(t, err)
	assert.Equal(t, "The city sits on a river.", text)

	require.Len(t, body.Messages, 2)
	assert.Equal(t, "system", body.Messages[0].Role)
	assert.Equal(t, "user", body.Messages[1].Role)
	assert.Equal(t, "Write a passage.", body.Messages[1].Content)
}

func TestOpenAIProvider_SchemaValidated(t *testing.T) {
	var body map[string]any
	p := newTestOpenAIProvider(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		openAIReply(`{"wrong_field":1}`, "stop")(w, r)
	})

	_, err := p.Generate(context.Background(), Request{
		Messages:  UserMessage("Write a passage."),
		Schema:    passageTestSchema(),
		MaxTokens: 100,
	})
	var inv *ErrInvalidResponse
	assert.ErrorAs(t, err, &inv)
	assert.Contains(t, body, "response_format")
}

func TestOpenAIProvider_LengthFinish(t *testing.T) {
	p := newTestOpenAIProvider(t, openAIReply("The city", "length"))

	resp, err := p.Generate(context.Background(), Request{Messages: UserMessage("x"), MaxTokens: 2})
	require.NoError(t, err)
	assert.Equal(t, StopMaxTokens, resp.StopReason)
}

func TestOpenAIProvider_Errors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		check  func(t *testing.T, err error)
	}{
		{"rate limit", http.StatusTooManyRequests, func(t *testing.T, err error) {
			var rl *ErrRateLimit
			assert.ErrorAs(t, err, &rl)
		}},
		{"server error", http.StatusInternalServerError, func(t *testing.T, err error) {
			var unavail *ErrProviderUnavailable
			assert.ErrorAs(t, err, &unavail)
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newTestOpenAIProvider(t, func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tt.status)
				_ = json.NewEncoder(w).Encode(map[string]any{
					"error": map[string]any{"type": "error", "message": "failed"},
				})
			})
			_, err := p.Generate(context.Background(), Request{Messages: UserMessage("test"), MaxTokens: 100})
			require.Error(t, err)
			tt.check(t, err)
		})
	}
}

func TestNewOpenAIProvider(t *testing.T) {
	_, err := NewOpenAIProvider(OpenAIConfig{})
	assert.Error(t, err)

	p, err := NewOpenAIProvider(OpenAIConfig{APIKey: "k", Model: "gpt-4o", BaseURL: "https://example.test/v1"})
	require.NoError(t, err)
	assert.Equal(t, "gpt-4o", p.ModelID())
}
