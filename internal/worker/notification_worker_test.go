package worker

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/triage-service/internal/broker"
	"github.com/spec-kit/triage-service/internal/config"
	"github.com/spec-kit/triage-service/internal/events"
	"github.com/spec-kit/triage-service/internal/service"
)

type capturePublisher struct {
	mu       sync.Mutex
	err      error
	channels []string
	got      chan struct{}
}

func newCapturePublisher() *capturePublisher {
	return &capturePublisher{got: make(chan struct{}, 16)}
}

func (c *capturePublisher) Publish(_ context.Context, channel string, _ any) error {
	c.mu.Lock()
	c.channels = append(c.channels, channel)
	c.mu.Unlock()
	c.got <- struct{}{}
	return c.err
}

func waitFor(t *testing.T, ch <-chan struct{}) {
	t.Helper()
	select {
	case <-ch:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for delivery")
	}
}

func TestNotificationWorkerDelivers(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	target := newCapturePublisher()
	w := NewNotificationWorker(target, 4, zap.NewNop())

	dispatcher := events.NewInMemoryDispatcher()
	svc := service.NewNotificationService(service.NotificationDependencies{
		Dispatcher: dispatcher,
		Publisher:  w,
		Channel:    "triage.events",
	})
	StartNotificationWorker(ctx, svc, w)

	require.NoError(t, dispatcher.Publish(ctx, events.Event{Type: events.EventTicketCreated, TicketID: "TKT-1"}))
	waitFor(t, target.got)

	cancel()
	w.Wait()

	target.mu.Lock()
	defer target.mu.Unlock()
	assert.Equal(t, []string{"triage.events"}, target.channels)
}

func TestNotificationWorkerQueueFull(t *testing.T) {
	w := NewNotificationWorker(newCapturePublisher(), 1, nil)

	assert.NoError(t, w.Publish(context.Background(), "c", 1))
	assert.ErrorIs(t, w.Publish(context.Background(), "c", 2), ErrQueueFull)
}

func TestNotificationWorkerSurvivesDeliveryErrors(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	target := newCapturePublisher()
	target.err = errors.New("redis down")
	w := NewNotificationWorker(target, 4, zap.NewNop())
	StartNotificationWorker(ctx, nil, w)

	require.NoError(t, w.Publish(ctx, "c", 1))
	require.NoError(t, w.Publish(ctx, "c", 2))
	waitFor(t, target.got)
	waitFor(t, target.got)
}

func TestNotificationWorkerDeliversToWebhook(t *testing.T) {
	received := make(chan events.Event, 4)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var event events.Event
		if err := json.NewDecoder(r.Body).Decode(&event); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		received <- event
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	hooks := NewNotificationWorker(broker.NewWebhook(time.Second), 4, zap.NewNop())
	dispatcher := events.NewInMemoryDispatcher()
	svc := service.NewNotificationService(service.NotificationDependencies{
		Dispatcher: dispatcher,
		Webhook:    hooks,
		Config:     config.NotificationConfig{WebhookURL: server.URL},
	})
	StartNotificationWorker(ctx, svc, nil, hooks)

	require.NoError(t, dispatcher.Publish(ctx, events.Event{ID: "evt-1", Type: events.EventTicketCreated, TicketID: "TKT-1"}))

	select {
	case event := <-received:
		assert.Equal(t, "evt-1", event.ID)
		assert.Equal(t, events.EventTicketCreated, event.Type)
		assert.Equal(t, "TKT-1", event.TicketID)
	case <-time.After(2 * time.Second):
		t.Fatal("webhook was not called")
	}
}
