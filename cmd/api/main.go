package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/bz-technologies/helpdesk/internal/api/http"
	"github.com/bz-technologies/helpdesk/internal/api/http/handlers"
	"github.com/bz-technologies/helpdesk/internal/assistant"
	"github.com/bz-technologies/helpdesk/internal/assistant/gemini"
	"github.com/bz-technologies/helpdesk/internal/config"
	"github.com/bz-technologies/helpdesk/internal/confirm"
	"github.com/bz-technologies/helpdesk/internal/consent"
	"github.com/bz-technologies/helpdesk/internal/domain"
	"github.com/bz-technologies/helpdesk/internal/events"
	"github.com/bz-technologies/helpdesk/internal/observability"
	"github.com/bz-technologies/helpdesk/internal/persistence"
	"github.com/bz-technologies/helpdesk/internal/repository"
	"github.com/bz-technologies/helpdesk/internal/service"
	"github.com/bz-technologies/helpdesk/internal/web"
	"github.com/bz-technologies/helpdesk/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger, cfg.App.Name)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	metrics := observability.NewMetrics()
	dispatcher := events.NewInMemoryDispatcher()

	redis := persistence.NewRedis(ctx, cfg.Redis, logger)
	defer redis.Close()

	var consentStore consent.Store = consent.NewMemoryStore()
	if redis != nil {
		consentStore = consent.NewRedisStore(redis.Client)
	}

	var seed []domain.Ticket
	if cfg.App.SeedDemo {
		seed = repository.DemoTickets(time.Now())
	}
	ticketRepo := repository.NewTicketRepository(seed...)

	analyzer, sessions := buildAssistant(ctx, cfg.AI, logger)

	notificationService := service.NewNotificationService(dispatcher, logger)
	worker.StartNotificationWorker(notificationService)

	formService := service.NewFormService(service.FormDependencies{
		TicketRepo: ticketRepo,
		Triage:     assistant.NewTriage(analyzer, logger, metrics),
		Dispatcher: dispatcher,
		Logger:     logger,
	})
	listService := service.NewTicketListService(ticketRepo, dispatcher, logger)
	dashboardService := service.NewDashboardService(ticketRepo)
	chatService := service.NewChatService(service.ChatDependencies{
		Sessions:   sessions,
		Dispatcher: dispatcher,
		Logger:     logger,
		Metrics:    metrics,
	})

	sweeper, err := worker.NewSessionSweeper(chatService, cfg.Chat.SweepSchedule, cfg.Chat.SessionIdle(), logger)
	if err != nil {
		logger.Fatal("failed to schedule session sweeper", zap.Error(err))
	}
	sweeper.Start()

	renderer, err := web.NewRenderer()
	if err != nil {
		logger.Fatal("failed to parse templates", zap.Error(err))
	}

	tokens := confirm.NewTokenManager(cfg.Confirm.Secret, cfg.Confirm.TTL())
	consentHandler := handlers.NewConsentHandler(consentStore)

	app := fiber.New(fiber.Config{AppName: cfg.App.Name})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())
	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:        handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, redis, metrics, cfg.AI.Enabled()),
		Tickets:       handlers.NewTicketsHandler(formService, listService, tokens),
		Dashboard:     handlers.NewDashboardHandler(dashboardService),
		Chat:          handlers.NewChatHandler(chatService, logger),
		Consent:       consentHandler,
		Notifications: handlers.NewNotificationsHandler(notificationService),
		Shell:         handlers.NewShellHandler(renderer, dashboardService, listService, consentHandler, logger),
	})

	go func() {
		logger.Info("listening", zap.String("addr", cfg.App.Addr()), zap.Bool("ai_enabled", cfg.AI.Enabled()))
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		logger.Warn("http shutdown", zap.Error(err))
	}
	sweeper.Stop(shutdownCtx)
	chatService.Shutdown(shutdownCtx)
}

func buildAssistant(ctx context.Context, cfg config.AIConfig, logger *zap.Logger) (assistant.Analyzer, assistant.SessionFactory) {
	if !cfg.Enabled() {
		logger.Warn("GEMINI_API_KEY not set, AI features disabled")
		return assistant.Disabled{}, assistant.Disabled{}
	}
	client, err := gemini.New(ctx, cfg, nil)
	if err != nil {
		logger.Error("failed to init gemini client, AI features disabled", zap.Error(err))
		return assistant.Disabled{}, assistant.Disabled{}
	}
	logger.Info("gemini client ready", zap.String("model", cfg.Model))
	return client, client
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
