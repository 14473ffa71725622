package telegram

import (
	"github.com/gin-gonic/gin"

	"restaurant-concierge/internal/catalog"
	"restaurant-concierge/internal/chat"
	pkgLog "restaurant-concierge/pkg/log"
	pkgTelegram "restaurant-concierge/pkg/telegram"
)

// Handler is the interface for the Telegram delivery handler.
type Handler interface {
	HandleWebhook(c *gin.Context)
}

// Config carries delivery-level settings.
type Config struct {
	// RateLimitPerMin caps messages per chat; <= 0 disables limiting.
	RateLimitPerMin int
}

// New creates a new Telegram delivery handler.
func New(
	l pkgLog.Logger,
	uc chat.UseCase,
	bot *pkgTelegram.Bot,
	index *catalog.Index,
	cfg Config,
) Handler {
	var limiter *chatLimiter
	if cfg.RateLimitPerMin > 0 {
		limiter = newChatLimiter(cfg.RateLimitPerMin)
	}
	return &handler{
		l:       l,
		uc:      uc,
		bot:     bot,
		index:   index,
		limiter: limiter,
	}
}
