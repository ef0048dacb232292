package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/triage-service/internal/api/http"
	"github.com/spec-kit/triage-service/internal/api/http/handlers"
	"github.com/spec-kit/triage-service/internal/auth"
	"github.com/spec-kit/triage-service/internal/broker"
	"github.com/spec-kit/triage-service/internal/classifier"
	"github.com/spec-kit/triage-service/internal/clock"
	"github.com/spec-kit/triage-service/internal/config"
	"github.com/spec-kit/triage-service/internal/events"
	"github.com/spec-kit/triage-service/internal/observability"
	"github.com/spec-kit/triage-service/internal/service"
	"github.com/spec-kit/triage-service/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger, cfg.App)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	redis := broker.NewRedis(ctx, cfg.Redis, logger)
	defer redis.Close()

	metrics := observability.NewMetrics()
	dispatcher := events.NewInMemoryDispatcher()

	notifications := service.NotificationDependencies{
		Dispatcher: dispatcher,
		Recorder:   metrics,
		Logger:     logger,
		Config:     cfg.Notification,
	}
	var fanOut *worker.NotificationWorker
	if redis != nil {
		fanOut = worker.NewNotificationWorker(redis, 0, logger)
		notifications.Publisher = fanOut
		notifications.Channel = cfg.Redis.EventsChannel
	}
	var webhook *worker.NotificationWorker
	if cfg.Notification.Enabled() {
		webhook = worker.NewNotificationWorker(broker.NewWebhook(cfg.Notification.WebhookTimeout()), 0, logger)
		notifications.Webhook = webhook
	}
	worker.StartNotificationWorker(ctx, service.NewNotificationService(notifications), fanOut, webhook)

	store := service.NewTicketStore(service.TicketStoreDependencies{
		Classifier:     classifier.New(classifier.DefaultRegistry()),
		Clock:          clock.Real(),
		InferenceDelay: cfg.Triage.InferenceDelay(),
		ResponseDelay:  cfg.Triage.ResponseDelay(),
		Dispatcher:     dispatcher,
		Logger:         logger,
		SessionTTL:     cfg.Auth.SessionTTL(),
	})
	defer store.Close()

	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.SessionTTLMinutes)

	app := fiber.New(fiber.Config{AppName: cfg.App.Name})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())
	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:            handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, redis, metrics),
		Sessions:          handlers.NewSessionsHandler(tokens),
		Tickets:           handlers.NewTicketsHandler(store),
		Stats:             handlers.NewStatsHandler(store),
		SessionMiddleware: auth.NewSessionMiddleware(tokens),
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
	cancel()
	fanOut.Wait()
	webhook.Wait()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
