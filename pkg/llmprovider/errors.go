package llmprovider

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"restaurant-concierge/pkg/openai"
)

var (
	// ErrAllProvidersFailed indicates every provider exhausted its retries.
	ErrAllProvidersFailed = errors.New("all providers failed")

	// ErrNoProvidersConfigured indicates no providers are enabled.
	ErrNoProvidersConfigured = errors.New("no providers configured")
)

// Kind classifies an upstream failure for the retry loop. Retry control
// flow is explicit: the loop consumes Kind instead of re-raising errors.
type Kind int

const (
	// KindFatal failures are never retried.
	KindFatal Kind = iota
	// KindRateLimited failures back off exponentially (2^attempt seconds).
	KindRateLimited
	// KindTransient failures retry after a short fixed delay.
	KindTransient
)

// transientBadRequestHints are substrings of a structured 400
// error.message that indicate transient upstream unavailability rather
// than a malformed request.
var transientBadRequestHints = []string{
	"temporarily unavailable",
	"service unavailable",
	"overloaded",
	"try again",
	"timeout",
}

// Classify maps an error from a provider call to a retry Kind.
//
//   - HTTP 429            -> rate limited
//   - HTTP 400            -> transient only when the structured error
//     message signals upstream unavailability, fatal otherwise
//   - other non-2xx       -> transient
//   - cancelled context   -> fatal (the turn deadline has passed)
//   - transport errors    -> transient
func Classify(err error) Kind {
	if err == nil {
		return KindFatal
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return KindFatal
	}

	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		switch {
		case apiErr.StatusCode == 429:
			return KindRateLimited
		case apiErr.StatusCode == 400:
			msg := strings.ToLower(apiErr.Message)
			for _, hint := range transientBadRequestHints {
				if strings.Contains(msg, hint) {
					return KindTransient
				}
			}
			return KindFatal
		default:
			return KindTransient
		}
	}

	// Transport-level failure (timeout, connection reset, DNS).
	return KindTransient
}

// ProviderError wraps provider-specific errors.
type ProviderError struct {
	Provider string
	Err      error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("provider %s: %v", e.Provider, e.Err)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}
