package llmprovider

import (
	"context"
	"errors"
	"testing"
	"time"

	"restaurant-concierge/pkg/openai"
)

type mockLogger struct{}

func (m *mockLogger) Debug(ctx context.Context, args ...interface{})                  {}
func (m *mockLogger) Debugf(ctx context.Context, format string, args ...interface{})  {}
func (m *mockLogger) Info(ctx context.Context, args ...interface{})                   {}
func (m *mockLogger) Infof(ctx context.Context, format string, args ...interface{})   {}
func (m *mockLogger) Warn(ctx context.Context, args ...interface{})                   {}
func (m *mockLogger) Warnf(ctx context.Context, format string, args ...interface{})   {}
func (m *mockLogger) Error(ctx context.Context, args ...interface{})                  {}
func (m *mockLogger) Errorf(ctx context.Context, format string, args ...interface{})  {}
func (m *mockLogger) DPanic(ctx context.Context, args ...interface{})                 {}
func (m *mockLogger) DPanicf(ctx context.Context, format string, args ...interface{}) {}
func (m *mockLogger) Panic(ctx context.Context, args ...interface{})                  {}
func (m *mockLogger) Panicf(ctx context.Context, format string, args ...interface{})  {}
func (m *mockLogger) Fatal(ctx context.Context, args ...interface{})                  {}
func (m *mockLogger) Fatalf(ctx context.Context, format string, args ...interface{})  {}

// mockProvider returns scripted results call by call.
type mockProvider struct {
	name    string
	results []error
	resp    *openai.Response
	calls   int
}

func (p *mockProvider) CreateChatCompletion(ctx context.Context, req *openai.Request) (*openai.Response, error) {
	idx := p.calls
	p.calls++
	if idx < len(p.results) && p.results[idx] != nil {
		return nil, p.results[idx]
	}
	if p.resp != nil {
		return p.resp, nil
	}
	return &openai.Response{Choices: []openai.Choice{{Message: openai.Message{Content: "ok"}}}}, nil
}

func (p *mockProvider) Name() string  { return p.name }
func (p *mockProvider) Model() string { return "mock-model" }

func testConfig() *Config {
	return &Config{RetryAttempts: 3, BackoffUnit: time.Millisecond}
}

func rateLimitErr() error {
	return &openai.APIError{StatusCode: 429, Body: `{"error":{"message":"rate limit"}}`, Message: "rate limit"}
}

func TestRetryAfter429(t *testing.T) {
	// Two 429s then success must make exactly 3 outbound calls.
	p := &mockProvider{name: "openai", results: []error{rateLimitErr(), rateLimitErr(), nil}}
	m := NewManager([]Provider{p}, testConfig(), &mockLogger{})

	resp, err := m.CreateChatCompletion(context.Background(), &openai.Request{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Choices[0].Message.Content != "ok" {
		t.Errorf("unexpected response content")
	}
	if p.calls != 3 {
		t.Errorf("outbound calls = %d, want exactly 3", p.calls)
	}
}

func TestRetryBoundExhausted(t *testing.T) {
	p := &mockProvider{name: "openai", results: []error{rateLimitErr(), rateLimitErr(), rateLimitErr(), rateLimitErr()}}
	m := NewManager([]Provider{p}, testConfig(), &mockLogger{})

	_, err := m.CreateChatCompletion(context.Background(), &openai.Request{})
	if err == nil {
		t.Fatal("expected failure after retry exhaustion")
	}
	if !errors.Is(err, ErrAllProvidersFailed) {
		t.Errorf("error = %v, want ErrAllProvidersFailed", err)
	}
	if p.calls != 3 {
		t.Errorf("outbound calls = %d, want 3 (bounded)", p.calls)
	}
}

func TestFatal400NoRetry(t *testing.T) {
	fatal := &openai.APIError{StatusCode: 400, Message: "invalid request: messages is required"}
	p := &mockProvider{name: "openai", results: []error{fatal}}
	m := NewManager([]Provider{p}, testConfig(), &mockLogger{})

	_, err := m.CreateChatCompletion(context.Background(), &openai.Request{})
	if err == nil {
		t.Fatal("expected error")
	}
	if p.calls != 1 {
		t.Errorf("fatal 400 must not retry, got %d calls", p.calls)
	}
}

func TestTransient400Retries(t *testing.T) {
	transient := &openai.APIError{StatusCode: 400, Message: "model temporarily unavailable"}
	p := &mockProvider{name: "openai", results: []error{transient, nil}}
	m := NewManager([]Provider{p}, testConfig(), &mockLogger{})

	if _, err := m.CreateChatCompletion(context.Background(), &openai.Request{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.calls != 2 {
		t.Errorf("transient 400 should retry once, got %d calls", p.calls)
	}
}

func TestServerErrorRetries(t *testing.T) {
	p := &mockProvider{name: "openai", results: []error{
		&openai.APIError{StatusCode: 503, Body: "bad gateway"},
		nil,
	}}
	m := NewManager([]Provider{p}, testConfig(), &mockLogger{})

	if _, err := m.CreateChatCompletion(context.Background(), &openai.Request{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.calls != 2 {
		t.Errorf("5xx should retry, got %d calls", p.calls)
	}
}

func TestFallbackChain(t *testing.T) {
	failing := &mockProvider{name: "openai", results: []error{
		&openai.APIError{StatusCode: 500}, &openai.APIError{StatusCode: 500}, &openai.APIError{StatusCode: 500},
	}}
	healthy := &mockProvider{name: "deepseek"}

	cfg := testConfig()
	cfg.FallbackEnabled = true
	m := NewManager([]Provider{failing, healthy}, cfg, &mockLogger{})

	resp, err := m.CreateChatCompletion(context.Background(), &openai.Request{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp == nil || healthy.calls != 1 {
		t.Errorf("fallback provider not used (calls=%d)", healthy.calls)
	}
}

func TestNoFallbackWhenDisabled(t *testing.T) {
	failing := &mockProvider{name: "openai", results: []error{
		&openai.APIError{StatusCode: 500}, &openai.APIError{StatusCode: 500}, &openai.APIError{StatusCode: 500},
	}}
	second := &mockProvider{name: "deepseek"}

	m := NewManager([]Provider{failing, second}, testConfig(), &mockLogger{})
	if _, err := m.CreateChatCompletion(context.Background(), &openai.Request{}); err == nil {
		t.Fatal("expected error")
	}
	if second.calls != 0 {
		t.Errorf("fallback disabled but second provider was called")
	}
}

func TestNoProviders(t *testing.T) {
	m := NewManager(nil, testConfig(), &mockLogger{})
	if _, err := m.CreateChatCompletion(context.Background(), &openai.Request{}); !errors.Is(err, ErrNoProvidersConfigured) {
		t.Errorf("error = %v, want ErrNoProvidersConfigured", err)
	}
}

func TestClassify(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want Kind
	}{
		{"429", &openai.APIError{StatusCode: 429}, KindRateLimited},
		{"fatal 400", &openai.APIError{StatusCode: 400, Message: "bad schema"}, KindFatal},
		{"transient 400", &openai.APIError{StatusCode: 400, Message: "engine overloaded, try again"}, KindTransient},
		{"500", &openai.APIError{StatusCode: 500}, KindTransient},
		{"transport", errors.New("dial tcp: connection refused"), KindTransient},
		{"deadline", context.DeadlineExceeded, KindFatal},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Classify(tc.err); got != tc.want {
				t.Errorf("Classify = %v, want %v", got, tc.want)
			}
		})
	}
}
