package handlers

import (
	"database/sql"
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/foodgram-app/backend/models"
	"github.com/foodgram-app/backend/utils"
)

// TagsList returns all tags, unpaginated
func TagsList(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tags, err := webApp.Repos.Tag.GetAll(c.Context())
		if err != nil {
			return utils.SendInternalServerError(c)
		}

		views := make([]*models.TagView, len(tags))
		for i, tag := range tags {
			views[i] = models.ConvertTagToView(tag)
		}
		return utils.SendSuccess(c, views)
	}
}

// TagsDetail returns a single tag
func TagsDetail(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseInt64(c.Params("id"))
		if err != nil {
			return utils.SendNotFound(c)
		}

		tag, err := webApp.Repos.Tag.GetByID(c.Context(), id)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return utils.SendNotFound(c)
			}
			return utils.SendInternalServerError(c)
		}
		return utils.SendSuccess(c, models.ConvertTagToView(tag))
	}
}

// IngredientsList returns ingredients, optionally filtered by name prefix
func IngredientsList(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ingredients, err := webApp.Repos.Ingredient.SearchByPrefix(c.Context(), c.Query("name"))
		if err != nil {
			return utils.SendInternalServerError(c)
		}

		views := make([]*models.IngredientView, len(ingredients))
		for i, ingredient := range ingredients {
			views[i] = models.ConvertIngredientToView(ingredient)
		}
		return utils.SendSuccess(c, views)
	}
}

// IngredientsDetail returns a single ingredient
func IngredientsDetail(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseInt64(c.Params("id"))
		if err != nil {
			return utils.SendNotFound(c)
		}

		ingredient, err := webApp.Repos.Ingredient.GetByID(c.Context(), id)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return utils.SendNotFound(c)
			}
			return utils.SendInternalServerError(c)
		}
		return utils.SendSuccess(c, models.ConvertIngredientToView(ingredient))
	}
}
