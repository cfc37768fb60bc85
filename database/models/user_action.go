// models/user_action.go
package models

import (
	"time"

	"github.com/uptrace/bun"
)

// RecipeAction is the shared shape of a user's personal relationship to a
// recipe: who, which recipe, and when the row was created. Favorite and
// ShoppingCart embed it instead of repeating the fields.
type RecipeAction struct {
	UserID    int64     `bun:"user_id,notnull"`
	RecipeID  int64     `bun:"recipe_id,notnull"`
	CreatedAt time.Time `bun:"created_at,notnull,default:current_timestamp"`
}

type Favorite struct {
	bun.BaseModel `bun:"table:favorites,alias:f"`

	ID int64 `bun:"id,pk,autoincrement"`
	RecipeAction
}

type ShoppingCart struct {
	bun.BaseModel `bun:"table:shopping_carts,alias:sc"`

	ID int64 `bun:"id,pk,autoincrement"`
	RecipeAction
}
