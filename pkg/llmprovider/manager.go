package llmprovider

import (
	"context"
	"fmt"
	"time"

	"restaurant-concierge/pkg/log"
	"restaurant-concierge/pkg/openai"
)

// Manager orchestrates provider selection, fallback, and retry logic.
type Manager struct {
	providers []Provider
	config    *Config
	logger    log.Logger
}

// Config defines configuration for the provider Manager.
type Config struct {
	// FallbackEnabled tries lower-priority providers after the first
	// one exhausts its retries.
	FallbackEnabled bool
	// RetryAttempts bounds the total calls per provider (default 3).
	RetryAttempts int
	// BackoffUnit scales retry sleeps. Production keeps the default of
	// one second; tests shrink it to keep retry paths fast.
	BackoffUnit time.Duration
	// MaxTotalTimeout caps the entire fallback chain.
	MaxTotalTimeout time.Duration
}

// NewManager creates a new provider Manager.
func NewManager(providers []Provider, config *Config, logger log.Logger) *Manager {
	if config.RetryAttempts <= 0 {
		config.RetryAttempts = 3
	}
	if config.BackoffUnit <= 0 {
		config.BackoffUnit = time.Second
	}
	return &Manager{
		providers: providers,
		config:    config,
		logger:    logger,
	}
}

// CreateChatCompletion iterates through providers in priority order with
// fallback logic.
func (m *Manager) CreateChatCompletion(ctx context.Context, req *openai.Request) (*openai.Response, error) {
	if len(m.providers) == 0 {
		return nil, ErrNoProvidersConfigured
	}

	var cancel context.CancelFunc
	if m.config.MaxTotalTimeout > 0 {
		ctx, cancel = context.WithTimeout(ctx, m.config.MaxTotalTimeout)
		defer cancel()
	}

	var lastErr error
	for _, provider := range m.providers {
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("chain timeout after trying %d provider(s): %w", len(m.providers), ctx.Err())
		default:
		}

		resp, err := m.callWithRetry(ctx, provider, req)
		if err == nil {
			m.logger.Infof(ctx, "llmprovider: %s/%s succeeded, tokens in=%d out=%d",
				provider.Name(), provider.Model(), resp.Usage.PromptTokens, resp.Usage.CompletionTokens)
			return resp, nil
		}

		m.logger.Warnf(ctx, "llmprovider: %s/%s failed: %v", provider.Name(), provider.Model(), err)
		lastErr = &ProviderError{Provider: provider.Name(), Err: err}

		if !m.config.FallbackEnabled {
			break
		}
	}

	return nil, fmt.Errorf("%w: %v", ErrAllProvidersFailed, lastErr)
}

// callWithRetry runs the per-provider retry state machine:
//
//	CALLING -> success            -> SUCCEEDED
//	CALLING -> rate limited       -> sleep 2^attempt units -> CALLING
//	CALLING -> transient failure  -> sleep 1 unit          -> CALLING
//	CALLING -> fatal failure      -> FAILED_FATAL (no retry)
//
// bounded by RetryAttempts total calls.
func (m *Manager) callWithRetry(ctx context.Context, provider Provider, req *openai.Request) (*openai.Response, error) {
	var lastErr error

	for attempt := 1; attempt <= m.config.RetryAttempts; attempt++ {
		resp, err := provider.CreateChatCompletion(ctx, req)
		if err == nil {
			return resp, nil
		}
		lastErr = err

		kind := Classify(err)
		if kind == KindFatal {
			return nil, err
		}
		if attempt == m.config.RetryAttempts {
			break
		}

		delay := m.config.BackoffUnit
		if kind == KindRateLimited {
			delay = m.config.BackoffUnit * (1 << uint(attempt))
		}
		m.logger.Infof(ctx, "llmprovider: %s attempt %d/%d failed (%v), retrying in %s",
			provider.Name(), attempt, m.config.RetryAttempts, err, delay)

		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	return nil, lastErr
}
