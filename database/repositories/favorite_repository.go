package repositories

import (
	"context"

	"github.com/uptrace/bun"

	"github.com/foodgram-app/backend/database/models"
)

type FavoriteRepository interface {
	Exists(ctx context.Context, userID, recipeID int64) (bool, error)
	Add(ctx context.Context, userID, recipeID int64) error
	Remove(ctx context.Context, userID, recipeID int64) (bool, error)
	// RecipeIDsFor reports which of the given recipes the user has favorited.
	RecipeIDsFor(ctx context.Context, userID int64, recipeIDs []int64) (map[int64]bool, error)
}

type favoriteRepository struct {
	db *bun.DB
}

func NewFavoriteRepository(db *bun.DB) FavoriteRepository {
	return &favoriteRepository{db: db}
}

func (r *favoriteRepository) Exists(ctx context.Context, userID, recipeID int64) (bool, error) {
	return r.db.NewSelect().
		Model((*models.Favorite)(nil)).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Exists(ctx)
}

func (r *favoriteRepository) Add(ctx context.Context, userID, recipeID int64) error {
	fav := &models.Favorite{
		RecipeAction: models.RecipeAction{UserID: userID, RecipeID: recipeID},
	}
	_, err := r.db.NewInsert().Model(fav).Exec(ctx)
	return err
}

func (r *favoriteRepository) Remove(ctx context.Context, userID, recipeID int64) (bool, error) {
	res, err := r.db.NewDelete().
		Model((*models.Favorite)(nil)).
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

func (r *favoriteRepository) RecipeIDsFor(ctx context.Context, userID int64, recipeIDs []int64) (map[int64]bool, error) {
	result := make(map[int64]bool)
	if len(recipeIDs) == 0 {
		return result, nil
	}
	var ids []int64
	err := r.db.NewSelect().
		Model((*models.Favorite)(nil)).
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
