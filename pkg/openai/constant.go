package openai

import "time"

const (
	// DefaultModel is used when the config leaves Model empty.
	DefaultModel = "gpt-4o-mini"

	// DefaultBaseURL is the OpenAI-compatible API endpoint.
	DefaultBaseURL = "https://api.openai.com/v1"

	// DefaultTimeout is the default HTTP client timeout.
	DefaultTimeout = 60 * time.Second
)
