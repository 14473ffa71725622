package telegram

import (
	"context"
	"fmt"
	"strings"

	"restaurant-concierge/internal/catalog"
	"restaurant-concierge/internal/chat"
	"restaurant-concierge/internal/marker"
)

const (
	categoryEmptyText = "That section is empty right now. Can I help with something else?"
	searchEmptyText   = "I couldn't find anything matching that in our menu."
	bookingAckText    = "📅 Got it! Our host team will confirm your booking shortly."
	deliveryAckText   = "🚚 Let me check delivery to your address. One moment."
	imageAckText      = "🎨 I'm working on that picture, it will arrive in a moment!"
	callHumanText     = "I've pinged a colleague, they'll join this chat shortly."
	ageVerifyText     = "🔞 This item is for guests over 18. Please confirm your age to continue."
)

const (
	maxCategoryItems = 10
	maxSearchResults = 5
)

// flagMessages render the boolean side-effect markers. Photo flags would
// carry real asset URLs in production config; text stands in here.
var flagMessages = map[marker.Flag]string{
	marker.FlagDeliveryButton: "🛵 Tap here to order delivery: https://delivery.example/order",
	marker.FlagApps:           "📱 Our apps: iOS and Android, search for \"Concierge\".",
	marker.FlagHallPhoto:      "🏛 Here's our main hall.",
	marker.FlagBarPhoto:       "🍸 Here's the bar.",
	marker.FlagKassaPhoto:     "💳 Here's the checkout area.",
	marker.FlagWCPhoto:        "🚻 Restrooms are down the corridor to the right.",
	marker.FlagReviews:        "⭐ Guests' reviews: https://reviews.example/our-restaurant",
	marker.FlagRestaurantMenu: "📖 Full menu: https://menu.example/main",
	marker.FlagEventOptions:   "🎉 Banquets and private events: https://menu.example/events",
}

// flagOrder keeps flag rendering deterministic.
var flagOrder = []marker.Flag{
	marker.FlagDeliveryButton,
	marker.FlagApps,
	marker.FlagHallPhoto,
	marker.FlagBarPhoto,
	marker.FlagKassaPhoto,
	marker.FlagWCPhoto,
	marker.FlagReviews,
	marker.FlagRestaurantMenu,
	marker.FlagEventOptions,
}

// render turns one RouterResponse into Telegram sends: reply text first,
// then the intent payload, then flag attachments.
func (h *handler) render(ctx context.Context, chatID int64, resp chat.RouterResponse) error {
	if strings.TrimSpace(resp.Text) != "" {
		if err := h.bot.SendMessage(ctx, chatID, resp.Text); err != nil {
			return err
		}
	}

	if err := h.renderIntent(ctx, chatID, resp.Intent); err != nil {
		return err
	}

	for _, f := range flagOrder {
		if !resp.Flags[f] {
			continue
		}
		if text, ok := flagMessages[f]; ok {
			if err := h.bot.SendMessage(ctx, chatID, text); err != nil {
				return err
			}
		}
	}

	if resp.AgeVerification {
		if err := h.bot.SendMessage(ctx, chatID, ageVerifyText); err != nil {
			return err
		}
	}
	if resp.CallHuman {
		h.l.Infof(ctx, "telegram render: operator requested for chat %d", chatID)
		if resp.Intent.Kind != chat.IntentCallHuman || strings.TrimSpace(resp.Text) == "" {
			return h.bot.SendMessage(ctx, chatID, callHumanText)
		}
	}
	return nil
}

func (h *handler) renderIntent(ctx context.Context, chatID int64, intent chat.Intent) error {
	switch intent.Kind {
	case chat.IntentShowDishCard:
		if intent.Item == nil {
			return nil
		}
		return h.sendDishCard(ctx, chatID, *intent.Item)

	case chat.IntentShowCategory:
		return h.sendCategory(ctx, chatID, intent.Category)

	case chat.IntentSearch:
		return h.sendSearchResults(ctx, chatID, intent.Query)

	case chat.IntentParseBooking:
		return h.bot.SendMessage(ctx, chatID, bookingAckText)

	case chat.IntentCheckDelivery:
		return h.bot.SendMessage(ctx, chatID, deliveryAckText)

	case chat.IntentGenerateImage:
		return h.bot.SendMessage(ctx, chatID, imageAckText)
	}
	// PLAIN_TEXT, SHOW_FLAG and CALL_HUMAN are covered by the text, flag
	// and call-human passes in render.
	return nil
}

func (h *handler) sendDishCard(ctx context.Context, chatID int64, item catalog.Item) error {
	caption := formatDishCard(item)
	if item.ImageRef != "" {
		return h.bot.SendPhoto(ctx, chatID, item.ImageRef, caption)
	}
	return h.bot.SendMessageWithMode(ctx, chatID, caption, "Markdown")
}

func (h *handler) sendCategory(ctx context.Context, chatID int64, name string) error {
	snap := h.index.Snapshot()
	cat := snap.CategoryByName(name)
	if cat == nil || len(cat.Items) == 0 {
		return h.bot.SendMessage(ctx, chatID, categoryEmptyText)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "*%s*\n", cat.Name)
	shown := 0
	for _, it := range cat.Items {
		if it.Price <= 0 {
			continue
		}
		fmt.Fprintf(&b, "• %s · %.0f\n", it.Name, it.Price)
		shown++
		if shown >= maxCategoryItems {
			break
		}
	}
	if shown == 0 {
		return h.bot.SendMessage(ctx, chatID, categoryEmptyText)
	}
	return h.bot.SendMessageWithMode(ctx, chatID, b.String(), "Markdown")
}

func (h *handler) sendSearchResults(ctx context.Context, chatID int64, query string) error {
	results := h.index.Search(query, h.index.Recommendable())
	if len(results) == 0 {
		return h.bot.SendMessage(ctx, chatID, searchEmptyText)
	}
	if len(results) > maxSearchResults {
		results = results[:maxSearchResults]
	}

	var b strings.Builder
	b.WriteString("Here's what I found:\n")
	for _, r := range results {
		fmt.Fprintf(&b, "• %s · %.0f\n", r.Item.Name, r.Item.Price)
	}
	return h.bot.SendMessage(ctx, chatID, b.String())
}

// formatDishCard renders one item as a Markdown card.
func formatDishCard(item catalog.Item) string {
	var b strings.Builder
	fmt.Fprintf(&b, "*%s*\n", item.Name)

	var facts []string
	if item.Price > 0 {
		facts = append(facts, fmt.Sprintf("%.0f", item.Price))
	}
	if item.Weight > 0 {
		facts = append(facts, fmt.Sprintf("%.0f g", item.Weight))
	}
	if item.Calories > 0 {
		facts = append(facts, fmt.Sprintf("%.0f kcal", item.Calories))
	}
	if len(facts) > 0 {
		b.WriteString(strings.Join(facts, " · "))
		b.WriteString("\n")
	}
	if item.Protein > 0 || item.Fat > 0 || item.Carbohydrate > 0 {
		fmt.Fprintf(&b, "P %.0f / F %.0f / C %.0f\n", item.Protein, item.Fat, item.Carbohydrate)
	}
	if item.Description != "" {
		b.WriteString(item.Description)
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}
