package main

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"

	"github.com/foodgram-app/backend/handlers"
	"github.com/foodgram-app/backend/middleware"
)

// setupRoutes configures all application routes
func setupRoutes(app *fiber.App, webApp *handlers.WebApp) {
	app.Get("/health", handlers.HealthCheck(webApp))

	// Short link redirect
	app.Get("/s/:id", handlers.ShortLinkRedirect(webApp))

	// Both prefixes serve the same API
	for _, prefix := range []string{"/api", "/api/v1"} {
		api := app.Group(prefix)
		api.Get("/health", handlers.HealthCheck(webApp))

		auth := api.Group("/auth/token")
		auth.Post("/login/", middleware.AuthRateLimit(), handlers.TokenLogin(webApp))
		auth.Post("/logout/", middleware.AuthRequired(webApp), handlers.TokenLogout(webApp))

		users := api.Group("/users")
		users.Get("/", middleware.OptionalAuth(webApp), handlers.UsersList(webApp))
		users.Post("/", middleware.AuthRateLimit(), handlers.UsersCreate(webApp))
		users.Get("/me/", middleware.AuthRequired(webApp), handlers.UsersMe(webApp))
		users.Put("/me/avatar/", middleware.AuthRequired(webApp), handlers.UsersSetAvatar(webApp))
		users.Delete("/me/avatar/", middleware.AuthRequired(webApp), handlers.UsersDeleteAvatar(webApp))
		users.Post("/set_password/", middleware.AuthRequired(webApp), handlers.SetPassword(webApp))
		users.Get("/subscriptions/", middleware.AuthRequired(webApp), handlers.SubscriptionsList(webApp))
		users.Get("/:id/", middleware.OptionalAuth(webApp), handlers.UsersDetail(webApp))
		users.Post("/:id/subscribe/", middleware.AuthRequired(webApp), handlers.Subscribe(webApp))
		users.Delete("/:id/subscribe/", middleware.AuthRequired(webApp), handlers.Unsubscribe(webApp))

		tags := api.Group("/tags")
		tags.Get("/", handlers.TagsList(webApp))
		tags.Get("/:id/", handlers.TagsDetail(webApp))

		ingredients := api.Group("/ingredients")
		ingredients.Get("/", handlers.IngredientsList(webApp))
		ingredients.Get("/:id/", handlers.IngredientsDetail(webApp))

		recipes := api.Group("/recipes")
		recipes.Get("/", middleware.OptionalAuth(webApp), handlers.RecipesList(webApp))
		recipes.Post("/", middleware.AuthRequired(webApp), handlers.RecipesCreate(webApp))
		recipes.Get("/download_shopping_cart/", middleware.AuthRequired(webApp), handlers.DownloadShoppingCart(webApp))
		recipes.Get("/:id/", middleware.OptionalAuth(webApp), handlers.RecipesDetail(webApp))
		recipes.Patch("/:id/", middleware.AuthRequired(webApp), handlers.RecipesUpdate(webApp))
		recipes.Delete("/:id/", middleware.AuthRequired(webApp), handlers.RecipesDelete(webApp))
		recipes.Get("/:id/get-link/", handlers.RecipeGetLink(webApp))
		recipes.Post("/:id/favorite/", middleware.AuthRequired(webApp), handlers.FavoriteAdd(webApp))
		recipes.Delete("/:id/favorite/", middleware.AuthRequired(webApp), handlers.FavoriteRemove(webApp))
		recipes.Post("/:id/shopping_cart/", middleware.AuthRequired(webApp), handlers.ShoppingCartAdd(webApp))
		recipes.Delete("/:id/shopping_cart/", middleware.AuthRequired(webApp), handlers.ShoppingCartRemove(webApp))
	}

	// Unmatched routes
	app.Use(func(c *fiber.Ctx) error {
		slog.Warn("No route matched for request",
			slog.String("type", "http"),
			slog.String("method", c.Method()),
			slog.String("path", c.Path()),
			slog.String("ip", c.IP()),
		)
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"detail": "Страница не найдена.",
		})
	})
}
