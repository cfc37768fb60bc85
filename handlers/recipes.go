package handlers

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"

	dbmodels "github.com/foodgram-app/backend/database/models"
	"github.com/foodgram-app/backend/database/repositories"
	"github.com/foodgram-app/backend/models"
	"github.com/foodgram-app/backend/services"
	"github.com/foodgram-app/backend/utils"
)

// parseRecipeFilter reads listing query parameters. The is_favorited and
// is_in_shopping_cart flags only take effect for authenticated viewers
// and only when truthy.
func parseRecipeFilter(c *fiber.Ctx, viewer *dbmodels.User, params utils.PageParams) repositories.RecipeFilter {
	filter := repositories.RecipeFilter{
		Limit:  params.Limit,
		Offset: params.Offset(),
	}

	for _, raw := range c.Context().QueryArgs().PeekMulti("tags") {
		if slug := string(raw); slug != "" {
			filter.TagSlugs = append(filter.TagSlugs, slug)
		}
	}
	if raw := c.Query("author"); raw != "" {
		if authorID, err := parseInt64(raw); err == nil {
			filter.AuthorID = authorID
		}
	}
	if viewer != nil {
		if isTruthy(c.Query("is_favorited")) {
			filter.FavoritedBy = viewer.ID
		}
		if isTruthy(c.Query("is_in_shopping_cart")) {
			filter.InCartOf = viewer.ID
		}
	}
	return filter
}

func isTruthy(value string) bool {
	switch strings.ToLower(value) {
	case "1", "true":
		return true
	default:
		return false
	}
}

// RecipesList returns a filtered page of recipes
func RecipesList(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		viewer := CurrentUser(c)
		params := webApp.pageParams(c)

		views, total, err := webApp.RecipeService.List(c.Context(), viewer, parseRecipeFilter(c, viewer, params))
		if err != nil {
			return sendServiceError(c, err)
		}
		return utils.SendSuccess(c, utils.NewPage(c, total, params, views))
	}
}

// RecipesCreate publishes a new recipe
func RecipesCreate(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req models.RecipeWriteRequest
		if err := c.BodyParser(&req); err != nil {
			return utils.SendBadRequest(c, "Некорректное тело запроса.")
		}

		view, err := webApp.RecipeService.Create(c.Context(), CurrentUser(c), &req)
		if err != nil {
			return sendServiceError(c, err)
		}
		return utils.SendCreated(c, view)
	}
}

// RecipesDetail returns a single recipe
func RecipesDetail(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseInt64(c.Params("id"))
		if err != nil {
			return utils.SendNotFound(c)
		}

		recipe, err := webApp.RecipeService.GetRecipe(c.Context(), id)
		if err != nil {
			return sendServiceError(c, err)
		}

		view, err := webApp.RecipeService.BuildRecipeView(c.Context(), recipe, CurrentUser(c))
		if err != nil {
			return sendServiceError(c, err)
		}
		return utils.SendSuccess(c, view)
	}
}

// RecipesUpdate edits an existing recipe, author only
func RecipesUpdate(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseInt64(c.Params("id"))
		if err != nil {
			return utils.SendNotFound(c)
		}

		var req models.RecipeWriteRequest
		if err := c.BodyParser(&req); err != nil {
			return utils.SendBadRequest(c, "Некорректное тело запроса.")
		}

		view, err := webApp.RecipeService.Update(c.Context(), CurrentUser(c), id, &req)
		if err != nil {
			return sendServiceError(c, err)
		}
		return utils.SendSuccess(c, view)
	}
}

// RecipesDelete removes a recipe, author only
func RecipesDelete(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseInt64(c.Params("id"))
		if err != nil {
			return utils.SendNotFound(c)
		}

		if err := webApp.RecipeService.Delete(c.Context(), CurrentUser(c), id); err != nil {
			return sendServiceError(c, err)
		}
		return utils.SendNoContent(c)
	}
}

// RecipeGetLink returns the short link for a recipe
func RecipeGetLink(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseInt64(c.Params("id"))
		if err != nil {
			return utils.SendNotFound(c)
		}

		recipe, err := webApp.RecipeService.GetRecipe(c.Context(), id)
		if err != nil {
			return sendServiceError(c, err)
		}

		link := fmt.Sprintf("%s/s/%d/", strings.TrimSuffix(webApp.Config.Server.BaseURL, "/"), recipe.ID)
		return utils.SendSuccess(c, &models.ShortLinkResponse{ShortLink: link})
	}
}

// ShortLinkRedirect resolves a short link to the recipe page
func ShortLinkRedirect(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseInt64(c.Params("id"))
		if err != nil {
			return utils.SendNotFound(c)
		}

		if _, err := webApp.RecipeService.GetRecipe(c.Context(), id); err != nil {
			return sendServiceError(c, err)
		}
		return c.Redirect(fmt.Sprintf("/recipes/%d", id), fiber.StatusFound)
	}
}

// FavoriteAdd puts a recipe into the user's favorites
func FavoriteAdd(webApp *WebApp) fiber.Handler {
	return addToSetHandler(webApp, webApp.RecipeService.AddFavorite, "Рецепт уже добавлен в избранное.")
}

// FavoriteRemove takes a recipe out of the user's favorites
func FavoriteRemove(webApp *WebApp) fiber.Handler {
	return removeFromSetHandler(webApp, webApp.RecipeService.RemoveFavorite, "Рецепта нет в избранном.")
}

// ShoppingCartAdd puts a recipe into the user's shopping cart
func ShoppingCartAdd(webApp *WebApp) fiber.Handler {
	return addToSetHandler(webApp, webApp.RecipeService.AddToCart, "Рецепт уже добавлен в список покупок.")
}

// ShoppingCartRemove takes a recipe out of the user's shopping cart
func ShoppingCartRemove(webApp *WebApp) fiber.Handler {
	return removeFromSetHandler(webApp, webApp.RecipeService.RemoveFromCart, "Рецепта нет в списке покупок.")
}

// DownloadShoppingCart streams the aggregated shopping list as a text file
func DownloadShoppingCart(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		list, err := webApp.RecipeService.BuildShoppingList(c.Context(), CurrentUser(c))
		if err != nil {
			return sendServiceError(c, err)
		}

		c.Set(fiber.HeaderContentType, "text/plain; charset=utf-8")
		c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", services.ShoppingListFileName))
		return c.SendString(list)
	}
}

func addToSetHandler(
	webApp *WebApp,
	add func(ctx context.Context, viewer *dbmodels.User, recipeID int64) (*models.RecipeMinified, error),
	duplicateMessage string,
) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseInt64(c.Params("id"))
		if err != nil {
			return utils.SendNotFound(c)
		}

		view, err := add(c.Context(), CurrentUser(c), id)
		if err != nil {
			if errors.Is(err, services.ErrAlreadyAdded) {
				return utils.SendErrors(c, duplicateMessage)
			}
			return sendServiceError(c, err)
		}
		return utils.SendCreated(c, view)
	}
}

func removeFromSetHandler(
	webApp *WebApp,
	remove func(ctx context.Context, viewer *dbmodels.User, recipeID int64) error,
	absentMessage string,
) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseInt64(c.Params("id"))
		if err != nil {
			return utils.SendNotFound(c)
		}

		if err := remove(c.Context(), CurrentUser(c), id); err != nil {
			if errors.Is(err, services.ErrNotAdded) {
				return utils.SendErrors(c, absentMessage)
			}
			return sendServiceError(c, err)
		}
		return utils.SendNoContent(c)
	}
}
