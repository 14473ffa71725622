package llmprovider

import (
	"context"

	"restaurant-concierge/pkg/openai"
)

// OpenAIAdapter adapts pkg/openai clients to the Provider interface.
// Named providers (openai, deepseek, qwen) all use the same compatible
// wire format and differ only by base URL and model.
type OpenAIAdapter struct {
	client openai.IClient
	name   string
}

// NewOpenAIAdapter creates a new adapter over an OpenAI-compatible client.
func NewOpenAIAdapter(client openai.IClient, name string) *OpenAIAdapter {
	return &OpenAIAdapter{client: client, name: name}
}

// CreateChatCompletion implements Provider.
func (a *OpenAIAdapter) CreateChatCompletion(ctx context.Context, req *openai.Request) (*openai.Response, error) {
	return a.client.CreateChatCompletion(ctx, req)
}

// Name implements Provider.
func (a *OpenAIAdapter) Name() string { return a.name }

// Model implements Provider.
func (a *OpenAIAdapter) Model() string { return a.client.Model() }
