package middleware

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"

	"github.com/foodgram-app/backend/handlers"
	"github.com/foodgram-app/backend/services"
	"github.com/foodgram-app/backend/utils"
)

// AuthRequired middleware ensures the request carries a valid token
func AuthRequired(webApp *handlers.WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		key := utils.GetTokenKey(c)
		if key == "" {
			return utils.SendUnauthorized(c)
		}

		user, err := webApp.AuthService.Authenticate(c.Context(), key)
		if err != nil {
			if !errors.Is(err, services.ErrInvalidToken) {
				slog.Error("Token lookup failed",
					slog.String("type", "error"),
					slog.String("error", err.Error()))
			}
			return utils.SendUnauthorized(c)
		}

		c.Locals("user", user)
		c.Locals("token_key", key)
		return c.Next()
	}
}

// OptionalAuth middleware resolves the token when present but lets
// anonymous requests through
func OptionalAuth(webApp *handlers.WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		key := utils.GetTokenKey(c)
		if key == "" {
			return c.Next()
		}

		user, err := webApp.AuthService.Authenticate(c.Context(), key)
		if err != nil {
			return c.Next()
		}

		c.Locals("user", user)
		c.Locals("token_key", key)
		return c.Next()
	}
}
