package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenRouterRequiresKey(t *testing.T) {
	_, err := NewOpenRouterProvider(OpenRouterConfig{Model: "google/gemini-2.0-flash-exp"})
	assert.Error(t, err)
}

func TestOpenRouterDefaultsBaseURL(t *testing.T) {
	p, err := NewOpenRouterProvider(OpenRouterConfig{APIKey: "sk-or-test", Model: "meta-llama/llama-3-8b"})
	require.NoError(t, err)
	assert.Equal(t, "meta-llama/llama-3-8b", p.ModelID())
}

// The vendor-prefixed model ID reaches the API unchanged and the bearer key
// is sent.
func TestOpenRouterPassesModelThrough(t *testing.T) {
	var gotModel, gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Model string `json:"model"`
		}
		_ = json.NewDecoder(r.Body).Decode(&body)
		gotModel, gotAuth = body.Model, r.Header.Get("Authorization")

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"model": "anthropic/claude-3-haiku",
			"choices": []map[string]any{{
				"message":       map[string]any{"role": "assistant", "content": "Ferries cross the bay."},
				"finish_reason": "stop",
			}},
			"usage": map[string]any{"prompt_tokens": 12, "completion_tokens": 5, "total_tokens": 17},
		})
	}))
	t.Cleanup(srv.Close)

	p, err := NewOpenRouterProvider(OpenRouterConfig{
		APIKey:  "sk-or-test",
		Model:   "anthropic/claude-3-haiku",
		BaseURL: srv.URL + "/v1",
	})
	require.NoError(t, err)

	resp, err := p.Generate(context.Background(), Request{Messages: UserMessage("Write one sentence.")})
	require.NoError(t, err)

	assert.Equal(t, "anthropic/claude-3-haiku", gotModel)
	assert.Equal(t, "Bearer sk-or-test", gotAuth)
	text, err := resp.Text()
	require.NoError(t, err)
	assert.Equal(t, "Ferries cross the bay.", text)
	assert.Equal(t, 17, resp.Usage.TotalTokens)
}
