// Package llm abstracts the external content-generation providers.
//
// All quiz content requests are single-turn: one system prompt, one user
// prompt, one response. Providers that support native structured output
// honor the request Schema; the response is then validated JSON.
package llm

import (
	"context"
	"encoding/json"
)

// Provider is the narrow contract the rest of the engine depends on.
type Provider interface {
	// Complete sends a single-turn prompt and returns the response.
	// When req.Schema is set the Content is JSON validated against it.
	Complete(ctx context.Context, req Request) (*Response, error)

	// ModelID returns the model identifier this provider is configured
	// to use.
	ModelID() string
}

// Request describes a single-turn completion request.
type Request struct {
	// System sets the provider's role and constraints. Optional.
	System string

	// Prompt is the user message.
	Prompt string

	// Schema, when set, asks the provider for JSON conforming to it.
	// When nil the response Content is raw text bytes.
	Schema *Schema

	// MaxTokens bounds the response length.
	MaxTokens int

	// Temperature controls randomness, 0.0 (deterministic) to 1.0.
	Temperature float64
}

// Schema is a named JSON Schema for structured output.
type Schema struct {
	// Name identifies the schema to the provider (kebab-case).
	Name string

	// Description tells the provider what the schema represents.
	Description string

	// Definition is the JSON Schema definition as a map.
	Definition map[string]any
}

// Response holds a provider's output.
type Response struct {
	// Content is the raw response bytes. With a Schema on the request
	// this is the validated JSON object; without one it is plain text.
	Content json.RawMessage

	// Usage reports token consumption for this request.
	Usage Usage

	// Model is the model that actually served the request.
	Model string

	// StopReason is normalized to "end" or "max_tokens".
	StopReason string
}

// Text returns the response content as a plain string.
func (r *Response) Text() string {
	return string(r.Content)
}

// Usage tracks token consumption for a single request.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}
