package llm

import (
	"context"
	"encoding/json"
)

// Provider generates structured output from a language model.
type Provider interface {
	// Generate sends req and returns the model output. When req.Schema is
	// set, Content is JSON already validated against it.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID returns the configured model identifier.
	ModelID() string
}

// Request is one generation call. Question batches and learning cards are
// both single-turn: a system prompt plus one user message.
type Request struct {
	System   string
	Messages []Message

	// Schema selects the provider's native structured output. Without it
	// Content is the raw text wrapped as a JSON string.
	Schema *Schema

	MaxTokens int

	// Temperature in [0,1]; zero is deterministic.
	Temperature float64
}

// SingleTurn builds a request with one user message.
func SingleTurn(system, user string, schema *Schema) Request {
	return Request{
		System:   system,
		Messages: []Message{{Role: RoleUser, Content: user}},
		Schema:   schema,
	}
}

// WithLimits returns a copy of r with the token cap and temperature set.
func (r Request) WithLimits(maxTokens int, temperature float64) Request {
	r.MaxTokens = maxTokens
	r.Temperature = temperature
	return r
}

// Message is one conversation turn.
type Message struct {
	Role    Role
	Content string
}

// Role is the sender of a Message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Schema is a named JSON Schema. Name is kebab-case ("checkpoint-questions",
// "learning-card") and doubles as the Anthropic tool name and the OpenAI
// schema name.
type Schema struct {
	Name        string
	Description string
	Definition  map[string]any
}

// Response is the model output for a Request.
type Response struct {
	Content json.RawMessage
	Usage   Usage

	// Model is the model that actually served the call; routers such as
	// OpenRouter may differ from ModelID.
	Model string

	// StopReason is normalized to "end", "max_tokens" or "error".
	StopReason string
}

// Usage is the token count of one call.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}
