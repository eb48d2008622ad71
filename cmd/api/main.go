package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/shopbot-service/internal/api/http"
	"github.com/spec-kit/shopbot-service/internal/api/http/handlers"
	"github.com/spec-kit/shopbot-service/internal/auth"
	"github.com/spec-kit/shopbot-service/internal/config"
	"github.com/spec-kit/shopbot-service/internal/events"
	"github.com/spec-kit/shopbot-service/internal/observability"
	"github.com/spec-kit/shopbot-service/internal/persistence"
	"github.com/spec-kit/shopbot-service/internal/repository"
	"github.com/spec-kit/shopbot-service/internal/service"
	"github.com/spec-kit/shopbot-service/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	pool := pg.PoolHandle()
	shopRepo := repository.NewShopRepository(pool)
	configRepo := repository.NewChatbotConfigRepository(pool)
	ticketRepo := repository.NewTicketRepository(pool)

	dispatcher := events.NewInMemoryDispatcher()
	metrics := observability.NewMetrics()

	cache := service.NewConfigCache(redis.ClientHandle())
	stats := service.NewStatsService(redis.ClientHandle())

	chatbotService := service.NewChatbotService(service.ChatbotDependencies{
		ConfigRepo: configRepo,
		Cache:      cache,
		Dispatcher: dispatcher,
	})
	ticketService := service.NewTicketService(ticketRepo, dispatcher)
	webhookClient := service.NewChatWebhookClient(cfg.Webhook, logger)
	conversationService := service.NewConversationService(service.ConversationDependencies{
		Chatbots:   chatbotService,
		Tickets:    ticketService,
		Webhook:    webhookClient,
		Stats:      stats,
		Dispatcher: dispatcher,
		Logger:     logger,
	})
	dashboardService := service.NewDashboardService(ticketService, stats)

	notificationService := service.NewNotificationService(dispatcher, logger, cfg.Notification)
	worker.StartNotificationWorker(notificationService)

	verifier := auth.NewSessionTokenVerifier(cfg.Platform.APIKey, cfg.Platform.APISecret)
	shopMiddleware := auth.NewShopMiddleware(verifier, shopRepo)

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Dashboard:      handlers.NewDashboardHandler(dashboardService),
		Chatbot:        handlers.NewChatbotHandler(chatbotService, conversationService),
		Tickets:        handlers.NewTicketsHandler(ticketService),
		Pricing:        handlers.NewPricingHandler(),
		ShopMiddleware: shopMiddleware,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
