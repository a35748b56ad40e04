package llm

import "context"

// Provider defines the interface for LLM providers.
type Provider interface {
	// Complete sends the full message list and returns the first choice.
	// Errors are classified with Classify.
	Complete(ctx context.Context, req CompletionRequest) (*CompletionResponse, error)
	// Name returns the name of this provider.
	Name() string
}
