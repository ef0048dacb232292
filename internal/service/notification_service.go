package service

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/spec-kit/triage-service/internal/config"
	"github.com/spec-kit/triage-service/internal/events"
)

// Publisher fans an event out to an external channel.
type Publisher interface {
	Publish(ctx context.Context, channel string, payload any) error
}

// ClassificationRecorder counts created tickets per category.
type ClassificationRecorder interface {
	RecordClassification(category string)
}

// NotificationService handles emitting notifications for ticket events.
type NotificationService struct {
	dispatcher events.Dispatcher
	publisher  Publisher
	webhook    Publisher
	recorder   ClassificationRecorder
	channel    string
	logger     *zap.Logger
	cfg        config.NotificationConfig
}

// NotificationDependencies bundles collaborators for NotificationService.
// Publisher, Webhook and Recorder are optional. Webhook receives every event
// with Config.WebhookURL as its channel.
type NotificationDependencies struct {
	Dispatcher events.Dispatcher
	Publisher  Publisher
	Webhook    Publisher
	Recorder   ClassificationRecorder
	Channel    string
	Logger     *zap.Logger
	Config     config.NotificationConfig
}

// NewNotificationService creates the service.
func NewNotificationService(deps NotificationDependencies) *NotificationService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &NotificationService{
		dispatcher: deps.Dispatcher,
		publisher:  deps.Publisher,
		webhook:    deps.Webhook,
		recorder:   deps.Recorder,
		channel:    deps.Channel,
		logger:     logger,
		cfg:        deps.Config,
	}
}

// RegisterHandlers subscribes to events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventTicketCreated, n.handleTicketCreated)
	n.dispatcher.Subscribe(events.EventTicketStatusChanged, n.handleTicketStatusChanged)
}

func (n *NotificationService) handleTicketCreated(ctx context.Context, event events.Event) error {
	n.logger.Info("TicketCreated", zap.String("ticket_id", event.TicketID), zap.Any("payload", event.Payload))
	if payload, ok := event.Payload.(events.TicketCreatedPayload); ok && n.recorder != nil {
		n.recorder.RecordClassification(string(payload.Category))
	}
	return errors.Join(n.fanOut(ctx, event), n.notifyWebhook(ctx, event))
}

func (n *NotificationService) handleTicketStatusChanged(ctx context.Context, event events.Event) error {
	n.logger.Info("TicketStatusChanged", zap.String("ticket_id", event.TicketID), zap.Any("payload", event.Payload))
	return errors.Join(n.fanOut(ctx, event), n.notifyWebhook(ctx, event))
}

func (n *NotificationService) fanOut(ctx context.Context, event events.Event) error {
	if n.publisher == nil || n.channel == "" {
		return nil
	}
	return n.publisher.Publish(ctx, n.channel, event)
}

func (n *NotificationService) notifyWebhook(ctx context.Context, event events.Event) error {
	url := strings.TrimSpace(n.cfg.WebhookURL)
	if n.webhook == nil || url == "" {
		return nil
	}
	n.logger.Debug("notifying webhook",
		zap.String("ticket_id", event.TicketID),
		zap.String("event_type", string(event.Type)))
	return n.webhook.Publish(ctx, url, event)
}
