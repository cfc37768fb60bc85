package utils

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
)

// SendJSON sends a JSON response using Fiber
func SendJSON(c *fiber.Ctx, statusCode int, data interface{}) error {
	return c.Status(statusCode).JSON(data)
}

// SendSuccess sends a successful JSON response
func SendSuccess(c *fiber.Ctx, data interface{}) error {
	return SendJSON(c, http.StatusOK, data)
}

// SendCreated sends a created resource JSON response
func SendCreated(c *fiber.Ctx, data interface{}) error {
	return SendJSON(c, http.StatusCreated, data)
}

// SendNoContent sends a no content response
func SendNoContent(c *fiber.Ctx) error {
	return c.SendStatus(http.StatusNoContent)
}

// SendFieldErrors sends a bad request response with per-field error
// message lists.
func SendFieldErrors(c *fiber.Ctx, fields map[string][]string) error {
	return SendJSON(c, http.StatusBadRequest, fields)
}

// SendErrors sends a bad request response with a single errors string,
// used by duplicate add/remove actions.
func SendErrors(c *fiber.Ctx, message string) error {
	return SendJSON(c, http.StatusBadRequest, fiber.Map{"errors": message})
}

// SendBadRequest sends a bad request response with a detail message.
func SendBadRequest(c *fiber.Ctx, message string) error {
	return SendJSON(c, http.StatusBadRequest, fiber.Map{"detail": message})
}

// SendUnauthorized sends an unauthorized error response
func SendUnauthorized(c *fiber.Ctx) error {
	return SendJSON(c, http.StatusUnauthorized, fiber.Map{
		"detail": "Учетные данные не были предоставлены.",
	})
}

// SendForbidden sends a forbidden error response
func SendForbidden(c *fiber.Ctx) error {
	return SendJSON(c, http.StatusForbidden, fiber.Map{
		"detail": "У вас недостаточно прав для выполнения данного действия.",
	})
}

// SendNotFound sends a not found error response
func SendNotFound(c *fiber.Ctx) error {
	return SendJSON(c, http.StatusNotFound, fiber.Map{
		"detail": "Страница не найдена.",
	})
}

// SendInternalServerError sends an internal server error response
func SendInternalServerError(c *fiber.Ctx) error {
	return SendJSON(c, http.StatusInternalServerError, fiber.Map{
		"detail": "Внутренняя ошибка сервера.",
	})
}
