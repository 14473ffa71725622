package llmprovider

import (
	"context"

	"restaurant-concierge/pkg/openai"
)

// Provider defines the interface for chat-completion providers. All
// supported upstreams speak the OpenAI-compatible wire format, so the
// request/response types come from pkg/openai.
type Provider interface {
	// CreateChatCompletion sends one chat-completion request.
	CreateChatCompletion(ctx context.Context, req *openai.Request) (*openai.Response, error)

	// Name returns the provider name (e.g. "openai", "deepseek").
	Name() string

	// Model returns the model being used.
	Model() string
}
