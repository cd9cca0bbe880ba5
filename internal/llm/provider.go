// Package llm talks to hosted language models. Every backend implements
// Provider; callers get either schema-validated JSON or plain text back.
package llm

import (
	"context"
	"encoding/json"
	"fmt"
)

// Provider is the core abstraction for LLM interaction.
type Provider interface {
	// Generate sends a prompt to the LLM. When req.Schema is set the
	// response Content is JSON validated against it; otherwise Content is
	// the reply text encoded as a JSON string (see Response.Text).
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID returns the model identifier this provider is configured to use.
	ModelID() string
}

// Request describes what to send to the LLM.
type Request struct {
	// System is the system prompt.
	System string

	// Messages is the conversation history. Passage generation and text
	// analysis are both single-turn, so this is usually one user message.
	Messages []Message

	// Schema is the JSON Schema the response must conform to. Nil asks for
	// free text.
	Schema *Schema

	MaxTokens int

	// Temperature controls randomness. Range: 0.0 - 1.0. Zero leaves the
	// provider default in place.
	Temperature float64
}

// Message represents a single message in the conversation.
type Message struct {
	Role    Role
	Content string
}

// Role is the message sender role.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// UserMessage is shorthand for a one-message conversation.
func UserMessage(content string) []Message {
	return []Message{{Role: RoleUser, Content: content}}
}

// Schema defines the JSON structure expected from the LLM.
type Schema struct {
	// Name identifies this schema (schema name for OpenAI, cache key for
	// validation). Kebab-case, e.g. "passage".
	Name string

	Description string

	// Definition is the JSON Schema definition as a map.
	Definition map[string]any
}

// Response holds the LLM's output.
type Response struct {
	Content json.RawMessage

	Usage Usage

	// Model is the actual model that served the request.
	Model string

	// StopReason is StopEnd or StopMaxTokens.
	StopReason string
}

// Normalized stop reasons.
const (
	StopEnd       = "end"
	StopMaxTokens = "max_tokens"
)

// Text decodes a free-text response.
func (r *Response) Text() (string, error) {
	var s string
	if err := json.Unmarshal(r.Content, &s); err != nil {
		return "", &ErrInvalidResponse{Content: r.Content, Err: fmt.Errorf("expected text content: %w", err)}
	}
	return s, nil
}

// Usage tracks token consumption for a single request.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}

// TextContent encodes s the way providers return free-text replies.
func TextContent(s string) json.RawMessage {
	b, _ := json.Marshal(s)
	return b
}

// buildContent turns the model's raw reply into Response content. Schema
// requests are validated and must not be truncated; free text is wrapped as
// a JSON string and may be partial.
func buildContent(req Request, text, stopReason string) (json.RawMessage, error) {
	if req.Schema == nil {
		return TextContent(text), nil
	}
	content := json.RawMessage(text)
	if stopReason == StopMaxTokens {
		return nil, &ErrMaxTokensExceeded{Content: content}
	}
	if err := validateResponse(req.Schema, content); err != nil {
		return nil, err
	}
	return content, nil
}

// resolveModel maps a friendly model name to a provider model ID. Unknown
// names pass through.
func resolveModel(name string, models map[string]string) string {
	if id, ok := models[name]; ok {
		return id
	}
	return name
}
