package repositories

import (
	"context"

	"github.com/uptrace/bun"

	"github.com/foodgram-app/backend/database/models"
)

// ShoppingListItem is one aggregated line of a user's shopping list:
// the same ingredient across all recipes in the cart summed into a
// single total.
type ShoppingListItem struct {
	Name            string `bun:"name"`
	MeasurementUnit string `bun:"measurement_unit"`
	TotalAmount     int64  `bun:"total_amount"`
}

type ShoppingCartRepository interface {
	Exists(ctx context.Context, userID, recipeID int64) (bool, error)
	Add(ctx context.Context, userID, recipeID int64) error
	Remove(ctx context.Context, userID, recipeID int64) (bool, error)
	RecipeIDsFor(ctx context.Context, userID int64, recipeIDs []int64) (map[int64]bool, error)
	// AggregateIngredients sums ingredient amounts across every recipe in
	// the user's cart, grouped by (name, unit), ordered by name.
	AggregateIngredients(ctx context.Context, userID int64) ([]ShoppingListItem, error)
}

type shoppingCartRepository struct {
	db *bun.DB
}

func NewShoppingCartRepository(db *bun.DB) ShoppingCartRepository {
	return &shoppingCartRepository{db: db}
}

func (r *shoppingCartRepository) Exists(ctx context.Context, userID, recipeID int64) (bool, error) {
	return r.db.NewSelect().
		Model((*models.ShoppingCart)(nil)).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Exists(ctx)
}

func (r *shoppingCartRepository) Add(ctx context.Context, userID, recipeID int64) error {
	item := &models.ShoppingCart{
		RecipeAction: models.RecipeAction{UserID: userID, RecipeID: recipeID},
	}
	_, err := r.db.NewInsert().Model(item).Exec(ctx)
	return err
}

func (r *shoppingCartRepository) Remove(ctx context.Context, userID, recipeID int64) (bool, error) {
	res, err := r.db.NewDelete().
		Model((*models.ShoppingCart)(nil)).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Exec(ctx)
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

func (r *shoppingCartRepository) RecipeIDsFor(ctx context.Context, userID int64, recipeIDs []int64) (map[int64]bool, error) {
	result := make(map[int64]bool)
	if len(recipeIDs) == 0 {
		return result, nil
	}
	var ids []int64
	err := r.db.NewSelect().
		Model((*models.ShoppingCart)(nil)).
		Column("recipe_id").
		Where("user_id = ?", userID).
		Where("recipe_id IN (?)", bun.In(recipeIDs)).
		Scan(ctx, &ids)
	if err != nil {
		return nil, err
	}
	for _, id := range ids {
		result[id] = true
	}
	return result, nil
}

func (r *shoppingCartRepository) AggregateIngredients(ctx context.Context, userID int64) ([]ShoppingListItem, error) {
	var items []ShoppingListItem
	err := r.db.NewSelect().
		Model((*models.RecipeIngredient)(nil)).
		ColumnExpr("i.name").
		ColumnExpr("i.measurement_unit").
		ColumnExpr("SUM(ri.amount) AS total_amount").
		Join("JOIN ingredients AS i ON i.id = ri.ingredient_id").
		Join("JOIN shopping_carts AS sc ON sc.recipe_id = ri.recipe_id").
		Where("sc.user_id = ?", userID).
		GroupExpr("i.name, i.measurement_unit").
		OrderExpr("i.name ASC").
		Scan(ctx, &items)
	if err != nil {
		return nil, err
	}
	return items, nil
}
