package usecase

import (
	"time"

	"restaurant-concierge/internal/catalog"
	"restaurant-concierge/internal/chat"
	"restaurant-concierge/internal/faq"
	"restaurant-concierge/internal/memory"
	"restaurant-concierge/pkg/llmprovider"
	pkgLog "restaurant-concierge/pkg/log"
)

// Config carries the router tunables. The defaults are behavioral
// contracts pinned by tests; treat them as tunable, not optimal.
type Config struct {
	// AttributeThreshold accepts catalog matches for explicit
	// attribute questions (composition, price, calories, ...).
	AttributeThreshold int
	// BareUtteranceThreshold accepts catalog matches for bare short
	// utterances; high to avoid false dish cards.
	BareUtteranceThreshold int
	// HistoryWindow is how many recent turns go into the LLM prompt.
	HistoryWindow int
	// CategoryScanDepth is how many recent turns are scanned for
	// category evidence during follow-up resolution.
	CategoryScanDepth int
	// TurnTimeout bounds one full turn including retries; zero
	// disables the deadline.
	TurnTimeout time.Duration
	// PromptSectionAllowlist restricts catalog sections in the prompt.
	PromptSectionAllowlist []string
	// PromptItemsPerCategory caps items per section in the prompt.
	PromptItemsPerCategory int
	// FAQPromptLimit caps FAQ entries in the prompt.
	FAQPromptLimit int
}

// DefaultConfig returns the production defaults.
func DefaultConfig() Config {
	return Config{
		AttributeThreshold:     150,
		BareUtteranceThreshold: 800,
		HistoryWindow:          10,
		CategoryScanDepth:      10,
		TurnTimeout:            45 * time.Second,
		PromptItemsPerCategory: 8,
		FAQPromptLimit:         12,
	}
}

func (c *Config) applyDefaults() {
	d := DefaultConfig()
	if c.AttributeThreshold <= 0 {
		c.AttributeThreshold = d.AttributeThreshold
	}
	if c.BareUtteranceThreshold <= 0 {
		c.BareUtteranceThreshold = d.BareUtteranceThreshold
	}
	if c.HistoryWindow <= 0 {
		c.HistoryWindow = d.HistoryWindow
	}
	if c.CategoryScanDepth <= 0 {
		c.CategoryScanDepth = d.CategoryScanDepth
	}
	if c.PromptItemsPerCategory <= 0 {
		c.PromptItemsPerCategory = d.PromptItemsPerCategory
	}
	if c.FAQPromptLimit <= 0 {
		c.FAQPromptLimit = d.FAQPromptLimit
	}
}

type implUseCase struct {
	l     pkgLog.Logger
	llm   *llmprovider.Manager
	index *catalog.Index
	faq   *faq.Service
	mem   *memory.Store
	cfg   Config
}

// Ensure implUseCase implements the chat UseCase.
var _ chat.UseCase = (*implUseCase)(nil)

// New creates the router use case.
func New(
	l pkgLog.Logger,
	llm *llmprovider.Manager,
	index *catalog.Index,
	faqSvc *faq.Service,
	mem *memory.Store,
	cfg Config,
) *implUseCase {
	cfg.applyDefaults()
	return &implUseCase{
		l:     l,
		llm:   llm,
		index: index,
		faq:   faqSvc,
		mem:   mem,
		cfg:   cfg,
	}
}
