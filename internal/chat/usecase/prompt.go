package usecase

import (
	"fmt"
	"strings"

	"restaurant-concierge/internal/catalog"
)

// Fixed sampling parameters. The marker grammar is brittle under high
// temperature, so these are pinned rather than configurable.
const (
	samplingTemperature      = 0.3
	samplingTopP             = 0.95
	samplingMaxTokens        = 700
	samplingFrequencyPenalty = 0.1
	samplingPresencePenalty  = 0.1
)

// systemPromptBase states the assistant persona and the marker grammar.
// Marker keywords here must stay in sync with the marker package.
const systemPromptBase = `You are the friendly concierge of our restaurant. You help guests
navigate the menu, answer questions about dishes, and handle delivery,
booking and photo requests. Keep answers short and warm. Never invent
dishes that are not in the menu excerpt below.

When an action is needed, emit a command marker on its own line. The
payload runs to the end of the line:

CHECK_DELIVERY:<address>        guest asked about delivery to an address
PARSE_CATEGORY:<category name>  guest wants a menu section shown
DISH_PHOTO:<dish name>          guest wants a dish card with a photo
GEN_IMAGE:<character>|<dish>    guest wants a fun generated image
PARSE_BOOKING:<booking details> guest wants a table booked
SEARCH:<query>                  guest is looking for something in the menu

Boolean markers may appear anywhere and carry no payload:
SHOW_DELIVERY_BUTTON SHOW_APPS SHOW_HALL_PHOTO SHOW_BAR_PHOTO
SHOW_KASSA_PHOTO SHOW_WC_PHOTO SHOW_REVIEWS SHOW_RESTAURANT_MENU
SHOW_EVENT_OPTIONS

Use CALL_HUMAN when the guest needs a human operator.
Use CONFIRM_AGE_VERIFICATION before discussing alcohol.

Emit at most one payload command per reply.`

// buildSystemPrompt assembles the full system prompt: persona and grammar,
// the catalog excerpt, the FAQ excerpt, and an optional per-turn hint
// derived from the conversation window.
func (uc *implUseCase) buildSystemPrompt(hint string) (string, error) {
	var b strings.Builder
	b.WriteString(systemPromptBase)

	excerpt, err := catalog.BuildPromptExcerpt(
		uc.index.Snapshot(),
		uc.cfg.PromptSectionAllowlist,
		uc.cfg.PromptItemsPerCategory,
	)
	if err != nil {
		return "", err
	}
	b.WriteString("\n\nMenu excerpt (JSON):\n")
	b.WriteString(excerpt)

	if uc.faq != nil && uc.faq.Len() > 0 {
		b.WriteString("\n\nFrequently asked questions:\n")
		b.WriteString(uc.faq.PromptExcerpt(uc.cfg.FAQPromptLimit))
	}

	if hint != "" {
		b.WriteString("\n\n")
		b.WriteString(hint)
	}
	return b.String(), nil
}

// conversationHint derives a steering line for vague recommendation asks
// from category evidence in the recent window.
func (uc *implUseCase) conversationHint(userID, norm string) string {
	if !containsAnyPhrase(norm, recommendationPhrases) {
		return ""
	}
	category, ok := uc.historyCategory(userID)
	if !ok {
		return ""
	}
	return fmt.Sprintf("The guest was just browsing the %s section. Prefer suggestions from it.", category)
}
