package worker

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"

	"github.com/spec-kit/triage-service/internal/service"
)

// ErrQueueFull is returned when the fan-out queue cannot take more messages.
var ErrQueueFull = errors.New("notification queue full")

const defaultQueueSize = 256

type message struct {
	channel string
	payload any
}

// NotificationWorker decouples event fan-out from the ticket pipeline. It
// satisfies service.Publisher by queueing, and delivers to the target
// publisher from its own goroutine.
type NotificationWorker struct {
	target service.Publisher
	queue  chan message
	logger *zap.Logger
	wg     sync.WaitGroup
}

// NewNotificationWorker wraps target with a bounded queue.
func NewNotificationWorker(target service.Publisher, queueSize int, logger *zap.Logger) *NotificationWorker {
	if queueSize <= 0 {
		queueSize = defaultQueueSize
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &NotificationWorker{
		target: target,
		queue:  make(chan message, queueSize),
		logger: logger,
	}
}

// Publish enqueues payload without blocking.
func (w *NotificationWorker) Publish(_ context.Context, channel string, payload any) error {
	select {
	case w.queue <- message{channel: channel, payload: payload}:
		return nil
	default:
		w.logger.Warn("dropping notification", zap.String("channel", channel))
		return ErrQueueFull
	}
}

// Run delivers queued messages until ctx is done.
func (w *NotificationWorker) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case msg := <-w.queue:
			if err := w.target.Publish(ctx, msg.channel, msg.payload); err != nil {
				w.logger.Warn("notification delivery failed", zap.String("channel", msg.channel), zap.Error(err))
			}
		}
	}
}

// Wait blocks until a worker started with StartNotificationWorker exits.
// A nil worker returns immediately.
func (w *NotificationWorker) Wait() {
	if w == nil {
		return
	}
	w.wg.Wait()
}

// StartNotificationWorker registers notification handlers and starts
// delivery for each non-nil worker in the background.
func StartNotificationWorker(ctx context.Context, notificationService *service.NotificationService, workers ...*NotificationWorker) {
	if notificationService != nil {
		notificationService.RegisterHandlers()
	}
	for _, w := range workers {
		if w == nil {
			continue
		}
		w.wg.Add(1)
		go func(w *NotificationWorker) {
			defer w.wg.Done()
			w.Run(ctx)
		}(w)
	}
}
