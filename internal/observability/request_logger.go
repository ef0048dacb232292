package observability

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// RequestLogger logs each request and records it in metrics.
func RequestLogger(logger *zap.Logger, metrics *Metrics) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		duration := time.Since(start)
		status := c.Response().StatusCode()

		metrics.RecordRequest(RoutePath(c), c.Method(), status, duration)
		logger.Info("request",
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Int("status", status),
			zap.Duration("latency", duration))
		return err
	}
}

// RoutePath returns the registered path template of the matched route, so
// "/tickets/:id" stays one metric key. When only the global middlewares
// matched, it returns "unmatched". Call it after c.Next returns.
func RoutePath(c *fiber.Ctx) string {
	route := c.Route()
	if route == nil || (route.Path == "/" && c.Path() != "/") {
		return "unmatched"
	}
	return route.Path
}
