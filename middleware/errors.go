package middleware

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

// CustomErrorHandler renders unhandled errors as wire-shaped JSON
func CustomErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Внутренняя ошибка сервера."

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		code = fiberErr.Code
		if code == fiber.StatusNotFound {
			message = "Страница не найдена."
		} else {
			message = fiberErr.Message
		}
	}

	return c.Status(code).JSON(fiber.Map{"detail": message})
}

// SecurityHeaders adds security headers to responses
func SecurityHeaders() fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Set("X-Content-Type-Options", "nosniff")
		c.Set("X-Frame-Options", "DENY")
		c.Set("Referrer-Policy", "strict-origin-when-cross-origin")
		return c.Next()
	}
}
