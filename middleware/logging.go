package middleware

import (
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"

	dbmodels "github.com/foodgram-app/backend/database/models"
	"github.com/foodgram-app/backend/utils"
)

// LoggingMiddleware logs HTTP requests in a structured format
func LoggingMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		err := c.Next()

		duration := time.Since(start)
		statusCode := c.Response().StatusCode()

		logLevel := slog.LevelInfo
		if statusCode >= 400 && statusCode < 500 {
			logLevel = slog.LevelWarn
		} else if statusCode >= 500 {
			logLevel = slog.LevelError
		}

		attrs := []any{
			slog.String("type", "http"),
			slog.String("method", c.Method()),
			slog.String("path", c.Path()),
			slog.Int("status", statusCode),
			slog.Duration("duration", duration),
			slog.String("ip", utils.GetIPAddress(c)),
			slog.String("user_agent", utils.GetUserAgent(c)),
			slog.Int("size", len(c.Response().Body())),
		}
		if user, ok := c.Locals("user").(*dbmodels.User); ok {
			attrs = append(attrs, slog.Int64("user_id", user.ID))
		}

		slog.Log(c.Context(), logLevel, "HTTP request", attrs...)
		return err
	}
}
