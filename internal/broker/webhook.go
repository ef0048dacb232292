package broker

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
)

// ErrWebhookRejected is returned when the endpoint answers with a non-2xx status.
var ErrWebhookRejected = errors.New("webhook rejected notification")

const defaultWebhookTimeout = 5 * time.Second

// Webhook posts JSON payloads to an HTTP endpoint. The channel given to
// Publish is the endpoint URL.
type Webhook struct {
	timeout time.Duration
}

// NewWebhook returns a webhook publisher. A non-positive timeout selects 5s.
func NewWebhook(timeout time.Duration) *Webhook {
	if timeout <= 0 {
		timeout = defaultWebhookTimeout
	}
	return &Webhook{timeout: timeout}
}

// Publish POSTs payload as JSON to url.
func (w *Webhook) Publish(ctx context.Context, url string, payload any) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	timeout := w.timeout
	if deadline, ok := ctx.Deadline(); ok && time.Until(deadline) < timeout {
		timeout = time.Until(deadline)
	}

	agent := fiber.Post(url)
	agent.JSON(payload)
	agent.Timeout(timeout)

	status, body, errs := agent.Bytes()
	if len(errs) > 0 {
		return fmt.Errorf("post webhook: %w", errors.Join(errs...))
	}
	if status < fiber.StatusOK || status >= fiber.StatusMultipleChoices {
		return fmt.Errorf("%w: status %d: %s", ErrWebhookRejected, status, body)
	}
	return nil
}
