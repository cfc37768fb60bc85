package handlers

import (
	"errors"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/foodgram-app/backend/config"
	"github.com/foodgram-app/backend/database"
	dbmodels "github.com/foodgram-app/backend/database/models"
	"github.com/foodgram-app/backend/models"
	"github.com/foodgram-app/backend/services"
	"github.com/foodgram-app/backend/utils"
)

// WebApp represents the web application with all dependencies
type WebApp struct {
	Config        *config.Config
	DB            *database.DB
	Repos         *models.Repositories
	Storage       services.MediaStorage
	AuthService   *services.AuthService
	UserService   *services.UserService
	RecipeService *services.RecipeService
	Version       string
}

// parseInt64 is a utility function to parse int64 from string
func parseInt64(s string) (int64, error) {
	return strconv.ParseInt(s, 10, 64)
}

// CurrentUser extracts the authenticated user from the request context,
// nil for anonymous requests.
func CurrentUser(c *fiber.Ctx) *dbmodels.User {
	user, _ := c.Locals("user").(*dbmodels.User)
	return user
}

// TokenKey extracts the raw token key stored by the auth middleware.
func TokenKey(c *fiber.Ctx) string {
	key, _ := c.Locals("token_key").(string)
	return key
}

// pageParams reads pagination parameters using the configured defaults.
func (webApp *WebApp) pageParams(c *fiber.Ctx) utils.PageParams {
	return utils.ParsePageParams(c, webApp.Config.Pagination.PageSize, webApp.Config.Pagination.MaxPageSize)
}

// sendServiceError maps common service errors to wire responses.
func sendServiceError(c *fiber.Ctx, err error) error {
	var verr *utils.ValidationError
	switch {
	case errors.As(err, &verr):
		return utils.SendFieldErrors(c, verr.Fields)
	case errors.Is(err, services.ErrUserNotFound),
		errors.Is(err, services.ErrRecipeNotFound):
		return utils.SendNotFound(c)
	case errors.Is(err, services.ErrNotRecipeAuthor):
		return utils.SendForbidden(c)
	default:
		return utils.SendInternalServerError(c)
	}
}

// HealthCheck reports service status
func HealthCheck(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		status := "healthy"
		dbStatus := "connected"
		if err := webApp.DB.Pool().Ping(c.Context()); err != nil {
			status = "degraded"
			dbStatus = "disconnected"
		}
		return utils.SendSuccess(c, fiber.Map{
			"status":    status,
			"database":  dbStatus,
			"version":   webApp.Version,
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	}
}
