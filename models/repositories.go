package models

import (
	"github.com/foodgram-app/backend/database/repositories"
)

// Repositories groups all repository interfaces for easy injection
type Repositories struct {
	User         repositories.UserRepository
	Tag          repositories.TagRepository
	Ingredient   repositories.IngredientRepository
	Recipe       repositories.RecipeRepository
	Favorite     repositories.FavoriteRepository
	ShoppingCart repositories.ShoppingCartRepository
	Subscription repositories.SubscriptionRepository
	Token        repositories.TokenRepository
}

// NewRepositories creates a new repositories group from individual repositories
func NewRepositories(
	user repositories.UserRepository,
	tag repositories.TagRepository,
	ingredient repositories.IngredientRepository,
	recipe repositories.RecipeRepository,
	favorite repositories.FavoriteRepository,
	shoppingCart repositories.ShoppingCartRepository,
	subscription repositories.SubscriptionRepository,
	token repositories.TokenRepository,
) *Repositories {
	return &Repositories{
		User:         user,
		Tag:          tag,
		Ingredient:   ingredient,
		Recipe:       recipe,
		Favorite:     favorite,
		ShoppingCart: shoppingCart,
		Subscription: subscription,
		Token:        token,
	}
}
