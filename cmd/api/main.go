package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
	"go.uber.org/zap"

	httptransport "github.com/event-kit/ticketing-service/internal/api/http"
	"github.com/event-kit/ticketing-service/internal/api/http/handlers"
	"github.com/event-kit/ticketing-service/internal/auth"
	"github.com/event-kit/ticketing-service/internal/config"
	"github.com/event-kit/ticketing-service/internal/events"
	"github.com/event-kit/ticketing-service/internal/observability"
	"github.com/event-kit/ticketing-service/internal/persistence"
	"github.com/event-kit/ticketing-service/internal/repository"
	"github.com/event-kit/ticketing-service/internal/service"
	"github.com/event-kit/ticketing-service/internal/worker"
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

	sessions := session.New(session.Config{
		Storage:    persistence.NewSessionStorage(redis),
		Expiration: cfg.Auth.SessionTTL(),
		KeyLookup:  "cookie:session_id",
	})

	pool := pg.PoolHandle()
	ticketRepo := repository.NewTicketRepository(pool)
	eventRepo := repository.NewEventRepository(pool)
	customerRepo := repository.NewCustomerRepository(pool)
	venueRepo := repository.NewVenueRepository(pool)

	dispatcher := events.NewInMemoryDispatcher()

	authService := service.NewAuthService(*cfg)
	ticketService := service.NewTicketService(service.TicketDependencies{
		TicketRepo:   ticketRepo,
		CustomerRepo: customerRepo,
		EventRepo:    eventRepo,
		Dispatcher:   dispatcher,
	})
	eventService := service.NewEventService(eventRepo)
	directoryService := service.NewDirectoryService(venueRepo, customerRepo)
	notificationService := service.NewNotificationService(dispatcher, logger, cfg.Notification)
	worker.StartNotificationWorker(notificationService)

	gate := auth.NewGate(sessions, authService.TokenManager())
	metrics := observability.NewMetrics()

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:    handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Auth:      handlers.NewAuthHandler(authService, sessions),
		Tickets:   handlers.NewTicketsHandler(ticketService),
		Events:    handlers.NewEventsHandler(eventService),
		Venues:    handlers.NewVenuesHandler(directoryService),
		Customers: handlers.NewCustomersHandler(directoryService),
		Admin:     handlers.NewAdminHandler(metrics),
		Gate:      gate,
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
