// Package llm defines the completion-backend abstraction used by the
// sevenmind pipeline.
//
// Every cognitive stage is a single prompt+temperature completion call; the
// Provider interface deliberately exposes nothing beyond that. Implementors
// must be safe for concurrent use and must propagate context cancellation
// promptly.
package llm

import "context"

// Usage holds token accounting returned by the backend. Counts are in the
// model's native token unit and may differ between providers for the same
// text.
type Usage struct {
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int
}

// Message is a single entry in a completion conversation.
type Message struct {
	// Role is one of "system", "user", or "assistant".
	Role string

	// Content is the text content of the message.
	Content string
}

// CompletionRequest carries everything one stage call needs. A zero-value
// request is invalid; at minimum Messages must be non-empty.
type CompletionRequest struct {
	// Messages is the ordered prompt. For pipeline stages this is typically a
	// single user message carrying the fully rendered stage prompt.
	Messages []Message

	// SystemPrompt is an optional high-priority instruction injected before
	// Messages. Providers without a dedicated system slot prepend it as a
	// "system"-role message.
	SystemPrompt string

	// Temperature controls output randomness in [0, 1]. Stage calls always
	// set this explicitly from the current temperature vector.
	Temperature float64

	// MaxTokens caps completion length. Zero means provider default.
	MaxTokens int

	// Model selects the model for this call. Callers should pass the result
	// of [ResolveModel]; an empty string means the provider's configured
	// default.
	Model string
}

// CompletionResponse is the result of a successful completion call.
type CompletionResponse struct {
	// Content is the full text of the model's reply. When the backend returns
	// no choices, Content defaults to the empty string rather than failing.
	Content string

	// Usage contains token accounting for this request/response pair.
	Usage Usage
}

// Provider is the abstraction over any completion backend.
//
// Implementations must be safe for concurrent use from multiple goroutines.
type Provider interface {
	// Complete sends req to the model and waits for the full response.
	// Failures are reported as *APIError (non-success HTTP status) or
	// *TransportError (network/URL failure), both unwrappable with errors.As.
	Complete(ctx context.Context, req CompletionRequest) (*CompletionResponse, error)

	// CountTokens estimates how many tokens messages would consume in the
	// model's context window. The result need not be exact but should not
	// undercount.
	CountTokens(messages []Message) (int, error)

	// Name returns a short identifier for the backend ("openai", "anthropic",
	// …) used in logs and metric attributes.
	Name() string
}
