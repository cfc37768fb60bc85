package handlers

import (
	"errors"
	"log/slog"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/foodgram-app/backend/models"
	"github.com/foodgram-app/backend/services"
	"github.com/foodgram-app/backend/utils"
)

// UsersCreate registers a new account
func UsersCreate(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req models.SignupRequest
		if err := c.BodyParser(&req); err != nil {
			return utils.SendBadRequest(c, "Некорректное тело запроса.")
		}

		user, err := webApp.AuthService.Register(c.Context(), &req)
		if err != nil {
			return sendServiceError(c, err)
		}

		return utils.SendCreated(c, &models.SignupResponse{
			ID:        user.ID,
			Email:     user.Email,
			Username:  user.Username,
			FirstName: user.FirstName,
			LastName:  user.LastName,
		})
	}
}

// UsersList returns a page of user profiles
func UsersList(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		params := webApp.pageParams(c)
		views, total, err := webApp.UserService.ListUsers(c.Context(), CurrentUser(c), params.Limit, params.Offset())
		if err != nil {
			return sendServiceError(c, err)
		}
		return utils.SendSuccess(c, utils.NewPage(c, total, params, views))
	}
}

// UsersDetail returns a single user profile
func UsersDetail(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseInt64(c.Params("id"))
		if err != nil {
			return utils.SendNotFound(c)
		}

		user, err := webApp.UserService.GetUser(c.Context(), id)
		if err != nil {
			return sendServiceError(c, err)
		}

		view, err := webApp.UserService.BuildUserView(c.Context(), user, CurrentUser(c))
		if err != nil {
			return sendServiceError(c, err)
		}
		return utils.SendSuccess(c, view)
	}
}

// UsersMe returns the authenticated user's own profile
func UsersMe(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		viewer := CurrentUser(c)
		view, err := webApp.UserService.BuildUserView(c.Context(), viewer, viewer)
		if err != nil {
			return sendServiceError(c, err)
		}
		return utils.SendSuccess(c, view)
	}
}

// UsersSetAvatar stores a new avatar for the authenticated user
func UsersSetAvatar(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req models.SetAvatarRequest
		if err := c.BodyParser(&req); err != nil {
			return utils.SendBadRequest(c, "Некорректное тело запроса.")
		}

		url, err := webApp.UserService.SetAvatar(c.Context(), CurrentUser(c), req.Avatar)
		if err != nil {
			return sendServiceError(c, err)
		}
		return utils.SendSuccess(c, &models.AvatarResponse{Avatar: url})
	}
}

// UsersDeleteAvatar removes the authenticated user's avatar
func UsersDeleteAvatar(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := webApp.UserService.ClearAvatar(c.Context(), CurrentUser(c)); err != nil {
			if errors.Is(err, services.ErrNoAvatar) {
				return utils.SendBadRequest(c, "Аватар не установлен.")
			}
			return sendServiceError(c, err)
		}
		return utils.SendNoContent(c)
	}
}

// SetPassword changes the authenticated user's password
func SetPassword(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req models.SetPasswordRequest
		if err := c.BodyParser(&req); err != nil {
			return utils.SendBadRequest(c, "Некорректное тело запроса.")
		}

		err := webApp.AuthService.SetPassword(c.Context(), CurrentUser(c), &req)
		if err != nil {
			if errors.Is(err, services.ErrWrongPassword) {
				return utils.SendFieldErrors(c, map[string][]string{
					"current_password": {"Неправильный пароль."},
				})
			}
			return sendServiceError(c, err)
		}
		return utils.SendNoContent(c)
	}
}

// TokenLogin issues an auth token for valid credentials
func TokenLogin(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req models.LoginRequest
		if err := c.BodyParser(&req); err != nil {
			return utils.SendBadRequest(c, "Некорректное тело запроса.")
		}

		key, err := webApp.AuthService.Login(c.Context(), &req)
		if err != nil {
			if errors.Is(err, services.ErrInvalidCredentials) {
				return utils.SendFieldErrors(c, map[string][]string{
					"non_field_errors": {"Невозможно войти с предоставленными учетными данными."},
				})
			}
			return sendServiceError(c, err)
		}
		return utils.SendCreated(c, &models.TokenResponse{AuthToken: key})
	}
}

// TokenLogout revokes the current auth token
func TokenLogout(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := webApp.AuthService.Logout(c.Context(), TokenKey(c)); err != nil {
			if errors.Is(err, services.ErrInvalidToken) {
				return utils.SendUnauthorized(c)
			}
			return sendServiceError(c, err)
		}
		return utils.SendNoContent(c)
	}
}

// SubscriptionsList returns the authors the user follows with their recipes
func SubscriptionsList(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		params := webApp.pageParams(c)
		recipesLimit := 0
		if raw := c.Query("recipes_limit"); raw != "" {
			if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
				recipesLimit = parsed
			}
		}

		views, total, err := webApp.UserService.ListSubscriptions(
			c.Context(), CurrentUser(c), params.Limit, params.Offset(), recipesLimit)
		if err != nil {
			return sendServiceError(c, err)
		}
		return utils.SendSuccess(c, utils.NewPage(c, total, params, views))
	}
}

// Subscribe follows an author
func Subscribe(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authorID, err := parseInt64(c.Params("id"))
		if err != nil {
			return utils.SendNotFound(c)
		}

		view, err := webApp.UserService.Subscribe(c.Context(), CurrentUser(c), authorID)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrSelfSubscribe):
				return utils.SendErrors(c, "Нельзя подписаться на самого себя.")
			case errors.Is(err, services.ErrAlreadySubscribed):
				return utils.SendErrors(c, "Вы уже подписаны на этого пользователя.")
			default:
				return sendServiceError(c, err)
			}
		}

		slog.Info("Subscription added",
			slog.Int64("user_id", CurrentUser(c).ID),
			slog.Int64("author_id", authorID))
		return utils.SendCreated(c, view)
	}
}

// Unsubscribe stops following an author
func Unsubscribe(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authorID, err := parseInt64(c.Params("id"))
		if err != nil {
			return utils.SendNotFound(c)
		}

		if err := webApp.UserService.Unsubscribe(c.Context(), CurrentUser(c), authorID); err != nil {
			if errors.Is(err, services.ErrNotSubscribed) {
				return utils.SendErrors(c, "Вы не были подписаны на этого пользователя.")
			}
			return sendServiceError(c, err)
		}
		return utils.SendNoContent(c)
	}
}
