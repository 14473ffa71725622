package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"restaurant-concierge/config"
	_ "restaurant-concierge/docs" // Swagger docs
	"restaurant-concierge/internal/catalog"
	tgDelivery "restaurant-concierge/internal/chat/delivery/telegram"
	"restaurant-concierge/internal/chat/usecase"
	"restaurant-concierge/internal/faq"
	"restaurant-concierge/internal/httpserver"
	"restaurant-concierge/internal/memory"
	"restaurant-concierge/pkg/llmprovider"
	"restaurant-concierge/pkg/log"
	"restaurant-concierge/pkg/telegram"
)

// @title       Restaurant Concierge API
// @description Conversational intent router for a restaurant Telegram bot: catalog search, FAQ, LLM orchestration.
// @version     1
// @host        localhost:8080
// @schemes     http
func main() {
	// 1. Configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Failed to load config: ", err)
		return
	}

	// 2. Logger
	logger := log.Init(log.ZapConfig{
		Level:        cfg.Logger.Level,
		Mode:         cfg.Logger.Mode,
		Encoding:     cfg.Logger.Encoding,
		ColorEnabled: cfg.Logger.ColorEnabled,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info(ctx, "Starting Restaurant Concierge...")
	logger.Infof(ctx, "Environment: %s", cfg.Environment.Name)

	// 3. Catalog and FAQ data. Both are optional at boot: the router
	// degrades to an empty catalog rather than refusing to start.
	var snap *catalog.Snapshot
	if cfg.Catalog.Path != "" {
		snap, err = catalog.LoadSnapshot(cfg.Catalog.Path)
		if err != nil {
			logger.Warnf(ctx, "Catalog not loaded from %s: %v", cfg.Catalog.Path, err)
		} else {
			logger.Infof(ctx, "Catalog loaded: %d items", len(snap.Items()))
		}
	}
	index := catalog.NewIndex(snap)

	var faqSvc *faq.Service
	if cfg.FAQ.Path != "" {
		entries, faqErr := faq.Load(cfg.FAQ.Path)
		if faqErr != nil {
			logger.Warnf(ctx, "FAQ not loaded from %s: %v", cfg.FAQ.Path, faqErr)
		} else {
			faqSvc = faq.New(entries)
			logger.Infof(ctx, "FAQ loaded: %d entries", faqSvc.Len())
		}
	}

	// 4. LLM provider chain
	providers, err := llmprovider.InitializeProviders(&cfg.LLM)
	if err != nil {
		logger.Error(ctx, "Failed to initialize LLM providers: ", err)
		return
	}
	manager := llmprovider.NewManager(providers, &llmprovider.Config{
		FallbackEnabled: cfg.LLM.FallbackEnabled,
		RetryAttempts:   cfg.LLM.RetryAttempts,
		BackoffUnit:     parseDurationOr(cfg.LLM.RetryDelay, time.Second),
		MaxTotalTimeout: parseDurationOr(cfg.LLM.MaxTotalTimeout, 0),
	}, logger)
	logger.Infof(ctx, "LLM providers initialized: %d", len(providers))

	// 5. Router use case
	mem := memory.NewStore(cfg.Memory.Capacity)
	routerUC := usecase.New(logger, manager, index, faqSvc, mem, usecase.Config{
		AttributeThreshold:     cfg.Router.AttributeThreshold,
		BareUtteranceThreshold: cfg.Router.BareUtteranceThreshold,
		HistoryWindow:          cfg.Router.HistoryWindow,
		CategoryScanDepth:      cfg.Router.CategoryScanDepth,
		TurnTimeout:            cfg.Router.TurnTimeout,
		PromptSectionAllowlist: cfg.Catalog.PromptSectionAllowlist,
		PromptItemsPerCategory: cfg.Catalog.PromptItemsPerCategory,
		FAQPromptLimit:         cfg.FAQ.PromptLimit,
	})

	// 6. Telegram delivery
	var telegramHandler tgDelivery.Handler
	if cfg.Telegram.BotToken != "" {
		bot := telegram.NewBot(cfg.Telegram.BotToken)
		telegramHandler = tgDelivery.New(logger, routerUC, bot, index, tgDelivery.Config{
			RateLimitPerMin: cfg.Telegram.RateLimitPerMin,
		})

		// Register webhook: auto-detect ngrok or fall back to manual config
		webhookURL := cfg.Telegram.WebhookURL
		if webhookURL == "" {
			ngrokURL, ngrokErr := detectNgrokURL(ctx, "http://ngrok:4040")
			if ngrokErr != nil {
				logger.Warnf(ctx, "Could not detect ngrok URL: %v", ngrokErr)
			} else {
				webhookURL = ngrokURL + "/webhook/telegram"
				logger.Infof(ctx, "Auto-detected ngrok URL: %s", webhookURL)
			}
		}
		if webhookURL != "" {
			if whErr := bot.SetWebhook(ctx, webhookURL); whErr != nil {
				logger.Warnf(ctx, "Failed to set Telegram webhook: %v", whErr)
			} else {
				logger.Infof(ctx, "Telegram webhook registered at %s", webhookURL)
			}
		}
	} else {
		logger.Warn(ctx, "TELEGRAM_BOT_TOKEN missing, Telegram delivery disabled")
	}

	// 7. HTTP Server
	httpServer, err := httpserver.New(logger, httpserver.Config{
		Port:            cfg.HTTPServer.Port,
		Mode:            cfg.HTTPServer.Mode,
		Environment:     cfg.Environment.Name,
		TelegramHandler: telegramHandler,
	})
	if err != nil {
		logger.Error(ctx, "Failed to initialize HTTP server: ", err)
		return
	}

	// 8. Run
	if err := httpServer.Run(ctx); err != nil {
		logger.Error(ctx, "Failed to run server: ", err)
		return
	}

	logger.Info(ctx, "Server stopped gracefully")
}

// parseDurationOr parses a duration string, falling back on empty or bad input.
func parseDurationOr(s string, fallback time.Duration) time.Duration {
	if s == "" {
		return fallback
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return fallback
	}
	return d
}
