package telegram

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"

	"restaurant-concierge/internal/catalog"
	"restaurant-concierge/internal/chat"
	"restaurant-concierge/internal/model"
	pkgLog "restaurant-concierge/pkg/log"
	pkgResponse "restaurant-concierge/pkg/response"
	pkgTelegram "restaurant-concierge/pkg/telegram"
)

const (
	welcomeText = "👋 Welcome! I'm the restaurant concierge bot.\n\nAsk me about the menu, dishes, delivery or table booking. For example:\n_\"What soups do you have?\"_ or _\"How many calories in the Margherita?\"_"
	helpText    = "*How to use:*\n\nJust type your question in plain language:\n`show the menu`\n`what salads do you have`\n`book a table for 4 on Friday`\n\nI'll answer or connect you with a colleague when needed."
	errorText   = "Something went wrong while handling your message. Please try again."
)

type handler struct {
	l       pkgLog.Logger
	uc      chat.UseCase
	bot     *pkgTelegram.Bot
	index   *catalog.Index
	limiter *chatLimiter
}

// HandleWebhook is the Gin handler for incoming Telegram webhook updates.
// It responds with HTTP 200 immediately and processes the message in a
// background goroutine so slow turns (LLM with retries) never trip the
// Telegram webhook timeout.
func (h *handler) HandleWebhook(c *gin.Context) {
	ctx := c.Request.Context()

	var update pkgTelegram.Update
	if err := c.ShouldBindJSON(&update); err != nil {
		h.l.Errorf(ctx, "telegram handler: failed to parse update: %v", err)
		pkgResponse.Error(c, err, nil)
		return
	}

	// Ignore non-message updates (polls, channel_post, etc.)
	if update.Message == nil {
		pkgResponse.OK(c, map[string]string{"status": "ignored"})
		return
	}

	msg := update.Message
	if h.limiter != nil && msg.Chat != nil && !h.limiter.Allow(msg.Chat.ID) {
		h.l.Warnf(ctx, "telegram handler: chat %d rate limited", msg.Chat.ID)
		pkgResponse.OK(c, map[string]string{"status": "rate_limited"})
		return
	}

	// Process in a goroutine detached from the request context, which is
	// cancelled as soon as the 200 goes out. The request id is carried
	// over so background log lines stay correlated.
	go func() {
		bgCtx := pkgLog.ContextWithRequestID(context.Background(), pkgLog.RequestIDFromContext(ctx))
		if err := h.processMessage(bgCtx, msg); err != nil {
			h.l.Errorf(bgCtx, "telegram handler: background processMessage failed: %v", err)
			_ = h.bot.SendMessage(bgCtx, msg.Chat.ID, errorText)
		}
	}()

	pkgResponse.OK(c, map[string]string{"status": "accepted"})
}

// processMessage handles a single Telegram message.
func (h *handler) processMessage(ctx context.Context, msg *pkgTelegram.Message) error {
	if msg.Text == "" || msg.Chat == nil || msg.From == nil {
		return nil
	}

	switch msg.Text {
	case "/start":
		return h.bot.SendMessageWithMode(ctx, msg.Chat.ID, welcomeText, "Markdown")
	case "/help":
		return h.bot.SendMessageWithMode(ctx, msg.Chat.ID, helpText, "Markdown")
	}

	sc := model.Scope{
		UserID:   fmt.Sprintf("telegram_%d", msg.From.ID),
		Username: msg.From.Username,
	}

	resp, err := h.uc.Route(ctx, sc, chat.RouteInput{Text: msg.Text})
	if err != nil {
		h.l.Errorf(ctx, "telegram handler: Route failed: %v", err)
		return h.bot.SendMessage(ctx, msg.Chat.ID, errorText)
	}

	return h.render(ctx, msg.Chat.ID, resp)
}
