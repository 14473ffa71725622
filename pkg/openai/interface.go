package openai

import "context"

// IClient defines the interface for the chat-completion client.
// Implementations are safe for concurrent use.
type IClient interface {
	// CreateChatCompletion sends one chat-completion request.
	CreateChatCompletion(ctx context.Context, req *Request) (*Response, error)

	// Model returns the model being used.
	Model() string
}

// New creates a new client with the given configuration.
func New(cfg Config) (IClient, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return newClientImpl(cfg), nil
}
