// models/recipe.go
package models

import (
	"time"

	"github.com/uptrace/bun"
)

const (
	MinCookingTime = 1
	MaxCookingTime = 32000

	MinIngredientAmount = 1
	MaxIngredientAmount = 32000
)

type Recipe struct {
	bun.BaseModel `bun:"table:recipes,alias:r"`

	ID          int64     `bun:"id,pk,autoincrement"`
	AuthorID    int64     `bun:"author_id,notnull"`
	Name        string    `bun:"name,notnull"`
	Image       string    `bun:"image,notnull"`
	Text        string    `bun:"text,type:text,notnull"`
	CookingTime int       `bun:"cooking_time,notnull"`
	CreatedAt   time.Time `bun:"created_at,notnull,default:current_timestamp"`
}

// RecipeTag links a recipe to a tag.
type RecipeTag struct {
	bun.BaseModel `bun:"table:recipe_tags,alias:rt"`

	ID       int64 `bun:"id,pk,autoincrement"`
	RecipeID int64 `bun:"recipe_id,notnull"`
	TagID    int64 `bun:"tag_id,notnull"`
}

// RecipeIngredient is the quantity of one ingredient required by one recipe.
// The ingredient lines of a recipe are replaced wholesale on every update.
type RecipeIngredient struct {
	bun.BaseModel `bun:"table:recipe_ingredients,alias:ri"`

	ID           int64 `bun:"id,pk,autoincrement"`
	RecipeID     int64 `bun:"recipe_id,notnull"`
	IngredientID int64 `bun:"ingredient_id,notnull"`
	Amount       int   `bun:"amount,notnull"`
}
