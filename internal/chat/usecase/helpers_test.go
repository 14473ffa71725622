package usecase

import (
	"context"

	"restaurant-concierge/internal/catalog"
	"restaurant-concierge/internal/faq"
	"restaurant-concierge/internal/memory"
	"restaurant-concierge/pkg/llmprovider"
	"restaurant-concierge/pkg/openai"
)

type mockLogger struct{}

func (mockLogger) Debug(ctx context.Context, args ...interface{})                   {}
func (mockLogger) Debugf(ctx context.Context, format string, args ...interface{})   {}
func (mockLogger) Info(ctx context.Context, args ...interface{})                    {}
func (mockLogger) Infof(ctx context.Context, format string, args ...interface{})    {}
func (mockLogger) Warn(ctx context.Context, args ...interface{})                    {}
func (mockLogger) Warnf(ctx context.Context, format string, args ...interface{})    {}
func (mockLogger) Error(ctx context.Context, args ...interface{})                   {}
func (mockLogger) Errorf(ctx context.Context, format string, args ...interface{})   {}
func (mockLogger) DPanic(ctx context.Context, args ...interface{})                  {}
func (mockLogger) DPanicf(ctx context.Context, format string, args ...interface{})  {}
func (mockLogger) Panic(ctx context.Context, args ...interface{})                   {}
func (mockLogger) Panicf(ctx context.Context, format string, args ...interface{})   {}
func (mockLogger) Fatal(ctx context.Context, args ...interface{})                   {}
func (mockLogger) Fatalf(ctx context.Context, format string, args ...interface{})   {}

// scriptedProvider returns canned completions in order, then repeats the
// last one. A nil response entry yields the paired error.
type scriptedProvider struct {
	replies []string
	err     error
	calls   int
}

func (p *scriptedProvider) CreateChatCompletion(ctx context.Context, req *openai.Request) (*openai.Response, error) {
	p.calls++
	if p.err != nil {
		return nil, p.err
	}
	i := p.calls - 1
	if i >= len(p.replies) {
		i = len(p.replies) - 1
	}
	return &openai.Response{
		Choices: []openai.Choice{{Message: openai.Message{Role: "assistant", Content: p.replies[i]}}},
	}, nil
}

func (p *scriptedProvider) Name() string  { return "scripted" }
func (p *scriptedProvider) Model() string { return "test-model" }

func testSnapshot() *catalog.Snapshot {
	return &catalog.Snapshot{
		Menus: []catalog.Menu{{
			ID: "main",
			Categories: []catalog.Category{
				{
					ID:   "pizza",
					Name: "Pizza",
					Items: []catalog.Item{
						{Name: "Pizza Margherita", Price: 450, Calories: 880},
						{Name: "Pizza Pepperoni", Price: 520, Calories: 1020},
						{Name: "Pizza Quattro Formaggi", Price: 590, Calories: 1100},
					},
				},
				{
					ID:   "soups",
					Name: "Soups",
					Items: []catalog.Item{
						{Name: "Tomato Soup", Price: 280, Calories: 190},
						{Name: "Mushroom Cream Soup", Price: 320, Calories: 260},
					},
				},
				{
					ID:   "antipasti",
					Name: "Antipasti",
					Items: []catalog.Item{
						{Name: "Antipasti Misti", Price: 640},
					},
				},
				{
					ID:   "seasonal",
					Name: "Seasonal",
					Items: []catalog.Item{
						{Name: "Chef Special", Price: 0},
					},
				},
			},
		}},
	}
}

func testFAQ() *faq.Service {
	return faq.New([]faq.Entry{
		{ID: "parking", Question: "Do you have parking?", Answer: "Yes, free parking behind the building."},
		{ID: "hours", Question: "What are your opening hours?", Answer: "Daily from 10:00 to 23:00."},
	})
}

// newTestUseCase wires the use case over the fixture catalog and FAQ with
// one scripted provider and no retries beyond the defaults.
func newTestUseCase(p llmprovider.Provider) (*implUseCase, *memory.Store) {
	l := mockLogger{}
	mgr := llmprovider.NewManager(
		[]llmprovider.Provider{p},
		&llmprovider.Config{RetryAttempts: 1},
		l,
	)
	mem := memory.NewStore(memory.DefaultCapacity)
	uc := New(l, mgr, catalog.NewIndex(testSnapshot()), testFAQ(), mem, Config{})
	return uc, mem
}
