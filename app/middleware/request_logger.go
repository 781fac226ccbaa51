package middleware

import (
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// RequestLogger tags each request with an id and logs it on completion.
func RequestLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqID := uuid.NewString()
		c.Locals("request_id", reqID)

		start := time.Now()
		err := c.Next()

		slog.Info("request",
			"request_id", reqID,
			"method", c.Method(),
			"path", c.Path(),
			"status", c.Response().StatusCode(),
			"duration", time.Since(start),
		)
		return err
	}
}
