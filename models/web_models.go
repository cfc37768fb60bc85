package models

import (
	dbmodels "github.com/foodgram-app/backend/database/models"
)

// UserView is the public representation of a user account.
type UserView struct {
	ID           int64  `json:"id"`
	Email        string `json:"email"`
	Username     string `json:"username"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	IsSubscribed bool   `json:"is_subscribed"`
	Avatar       string `json:"avatar"`
}

// TagView is the public representation of a tag.
type TagView struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// IngredientView is the public representation of a reference ingredient.
type IngredientView struct {
	ID              int64  `json:"id"`
	Name            string `json:"name"`
	MeasurementUnit string `json:"measurement_unit"`
}

// IngredientInRecipeView is an ingredient line inside a recipe view, with
// the amount used by that recipe.
type IngredientInRecipeView struct {
	ID              int64  `json:"id"`
	Name            string `json:"name"`
	MeasurementUnit string `json:"measurement_unit"`
	Amount          int    `json:"amount"`
}

// RecipeView is the full representation of a recipe. The flags
// IsFavorited and IsInShoppingCart are computed per viewer and are
// always false for anonymous requests.
type RecipeView struct {
	ID               int64                     `json:"id"`
	Tags             []*TagView                `json:"tags"`
	Author           *UserView                 `json:"author"`
	Ingredients      []*IngredientInRecipeView `json:"ingredients"`
	IsFavorited      bool                      `json:"is_favorited"`
	IsInShoppingCart bool                      `json:"is_in_shopping_cart"`
	Name             string                    `json:"name"`
	Image            string                    `json:"image"`
	Text             string                    `json:"text"`
	CookingTime      int                       `json:"cooking_time"`
}

// RecipeMinified is the compact recipe shape used by favorite and
// shopping-cart responses and inside subscription listings.
type RecipeMinified struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Image       string `json:"image"`
	CookingTime int    `json:"cooking_time"`
}

// UserWithRecipes extends UserView with the author's recipes, used by
// subscription endpoints.
type UserWithRecipes struct {
	UserView
	Recipes      []*RecipeMinified `json:"recipes"`
	RecipesCount int               `json:"recipes_count"`
}

// SignupRequest is the payload for user registration.
type SignupRequest struct {
	Email     string `json:"email"`
	Username  string `json:"username"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Password  string `json:"password"`
}

// SignupResponse echoes the created account without the subscription
// flag or avatar.
type SignupResponse struct {
	ID        int64  `json:"id"`
	Email     string `json:"email"`
	Username  string `json:"username"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// LoginRequest is the payload for obtaining an auth token.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// TokenResponse carries a freshly issued auth token.
type TokenResponse struct {
	AuthToken string `json:"auth_token"`
}

// SetPasswordRequest is the payload for changing the current user's
// password.
type SetPasswordRequest struct {
	NewPassword     string `json:"new_password"`
	CurrentPassword string `json:"current_password"`
}

// SetAvatarRequest carries a base64 data URI with the new avatar image.
type SetAvatarRequest struct {
	Avatar string `json:"avatar"`
}

// AvatarResponse returns the stored avatar URL.
type AvatarResponse struct {
	Avatar string `json:"avatar"`
}

// IngredientAmountRequest is one ingredient line in a recipe write
// payload.
type IngredientAmountRequest struct {
	ID     int64 `json:"id"`
	Amount int   `json:"amount"`
}

// RecipeWriteRequest is the payload for creating or updating a recipe.
// Image carries a base64 data URI; on update an empty image keeps the
// existing file.
type RecipeWriteRequest struct {
	Ingredients []IngredientAmountRequest `json:"ingredients"`
	Tags        []int64                   `json:"tags"`
	Image       string                    `json:"image"`
	Name        string                    `json:"name"`
	Text        string                    `json:"text"`
	CookingTime int                       `json:"cooking_time"`
}

// ShortLinkResponse carries the short link for a recipe.
type ShortLinkResponse struct {
	ShortLink string `json:"short-link"`
}

// ConvertUserToView converts a database user to its public view.
func ConvertUserToView(user *dbmodels.User, isSubscribed bool, avatarURL string) *UserView {
	return &UserView{
		ID:           user.ID,
		Email:        user.Email,
		Username:     user.Username,
		FirstName:    user.FirstName,
		LastName:     user.LastName,
		IsSubscribed: isSubscribed,
		Avatar:       avatarURL,
	}
}

// ConvertTagToView converts a database tag to its public view.
func ConvertTagToView(tag *dbmodels.Tag) *TagView {
	return &TagView{
		ID:   tag.ID,
		Name: tag.Name,
		Slug: tag.Slug,
	}
}

// ConvertIngredientToView converts a database ingredient to its public
// view.
func ConvertIngredientToView(ingredient *dbmodels.Ingredient) *IngredientView {
	return &IngredientView{
		ID:              ingredient.ID,
		Name:            ingredient.Name,
		MeasurementUnit: ingredient.MeasurementUnit,
	}
}

// ConvertRecipeToMinified converts a database recipe to its compact view.
func ConvertRecipeToMinified(recipe *dbmodels.Recipe, imageURL string) *RecipeMinified {
	return &RecipeMinified{
		ID:          recipe.ID,
		Name:        recipe.Name,
		Image:       imageURL,
		CookingTime: recipe.CookingTime,
	}
}
