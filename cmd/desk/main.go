package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/ricardo-aragon/ticashop-desk/internal/api/http"
	"github.com/ricardo-aragon/ticashop-desk/internal/api/http/handlers"
	"github.com/ricardo-aragon/ticashop-desk/internal/auth"
	"github.com/ricardo-aragon/ticashop-desk/internal/config"
	"github.com/ricardo-aragon/ticashop-desk/internal/events"
	"github.com/ricardo-aragon/ticashop-desk/internal/observability"
	"github.com/ricardo-aragon/ticashop-desk/internal/persistence"
	"github.com/ricardo-aragon/ticashop-desk/internal/service"
	"github.com/ricardo-aragon/ticashop-desk/internal/upstream"
	"github.com/ricardo-aragon/ticashop-desk/internal/worker"
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

	metrics := observability.NewMetrics()

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	client := upstream.New(cfg.Upstream, logger, metrics)

	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.SessionTTL())
	sessionStore := auth.NewSessionStore(redis, cfg.Auth.SessionTTL())
	authMiddleware := auth.NewAuthMiddleware(tokens, sessionStore)

	dispatcher := events.NewInMemoryDispatcher()
	sessionManager := service.NewSessionManager(client, sessionStore, tokens, logger, metrics)
	deskService := service.NewDeskService(sessionManager, dispatcher, logger)
	reportService := service.NewReportService(logger)
	notificationService := service.NewNotificationService(dispatcher, redis, logger)

	worker.StartNotificationWorker(notificationService)
	scheduler, err := worker.StartReportScheduler(*cfg, reportService, client, logger)
	if err != nil {
		logger.Fatal("failed to start report scheduler", zap.Error(err))
	}
	defer scheduler.Stop()

	app := fiber.New(fiber.Config{
		AppName: cfg.App.Name,
	})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, redis),
		Auth:           handlers.NewAuthHandler(sessionManager),
		View:           handlers.NewViewHandler(sessionManager, deskService),
		Tickets:        handlers.NewTicketsHandler(sessionManager, deskService),
		Licitaciones:   handlers.NewLicitacionesHandler(sessionManager, deskService),
		Usuarios:       handlers.NewUsuariosHandler(sessionManager, deskService),
		Reportes:       handlers.NewReportesHandler(sessionManager, deskService, reportService),
		Notifications:  handlers.NewNotificationsHandler(notificationService),
		AuthMiddleware: authMiddleware,
		Metrics:        metrics,
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
