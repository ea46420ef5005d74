package llm

import (
	"context"
)

// Provider is the core abstraction for a chat-completion endpoint.
// Consumers call Generate with a Request and receive the model's raw text.
type Provider interface {
	// Generate sends one request to the endpoint and returns its text
	// completion. Parsing the text is left to the caller: a JSON-mode request
	// biases the model toward JSON but does not guarantee it.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID returns the model identifier this provider is configured to use.
	ModelID() string
}

// Request describes what to send to the endpoint.
type Request struct {
	// System is the optional system prompt.
	System string

	// Messages is the conversation. Content generation sends a single
	// user message holding the rendered prompt.
	Messages []Message

	// JSONMode asks the endpoint to respond only with a JSON object
	// (response_format {"type": "json_object"} on OpenAI-compatible APIs).
	JSONMode bool

	// Schema, when set, asks providers with native structured output to
	// constrain the response to this JSON Schema. Nil by default.
	Schema *Schema

	// MaxTokens is the maximum number of tokens in the response.
	// Zero leaves the provider default in place where the API allows it.
	MaxTokens int

	// Temperature controls randomness. Range: 0.0 - 1.0.
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

// Schema is a named JSON Schema.
type Schema struct {
	// Name identifies this schema (schema name for OpenAI, cache key for
	// validation). Kebab-case, e.g. "quiz".
	Name string

	// Description is a human-readable description of what this schema
	// represents.
	Description string

	// Definition is the JSON Schema definition as a map.
	Definition map[string]any
}

// Response holds the endpoint's output.
type Response struct {
	// Text is the completion exactly as returned by the endpoint.
	Text string

	// Usage reports token consumption for this request.
	Usage Usage

	// Model is the actual model that served the request.
	Model string

	// StopReason indicates why generation stopped.
	// Normalized to: "end", "max_tokens"
	StopReason string
}

// Usage tracks token consumption for a single request.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}
