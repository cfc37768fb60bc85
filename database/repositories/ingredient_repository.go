package repositories

import (
	"context"
	"strings"

	"github.com/uptrace/bun"

	"github.com/foodgram-app/backend/database/models"
)

type IngredientRepository interface {
	GetAll(ctx context.Context) ([]*models.Ingredient, error)
	GetByID(ctx context.Context, id int64) (*models.Ingredient, error)
	GetByIDs(ctx context.Context, ids []int64) ([]*models.Ingredient, error)
	// SearchByPrefix returns ingredients whose name starts with the given
	// prefix, case-insensitively. An empty prefix returns everything.
	SearchByPrefix(ctx context.Context, prefix string) ([]*models.Ingredient, error)
	BulkUpsert(ctx context.Context, ingredients []*models.Ingredient) (int64, error)
}

type ingredientRepository struct {
	db *bun.DB
}

func NewIngredientRepository(db *bun.DB) IngredientRepository {
	return &ingredientRepository{db: db}
}

func (r *ingredientRepository) GetAll(ctx context.Context) ([]*models.Ingredient, error) {
	var ingredients []*models.Ingredient
	err := r.db.NewSelect().
		Model(&ingredients).
		Order("name ASC").
		Scan(ctx)
	return ingredients, err
}

func (r *ingredientRepository) GetByID(ctx context.Context, id int64) (*models.Ingredient, error) {
	ingredient := new(models.Ingredient)
	err := r.db.NewSelect().
		Model(ingredient).
		Where("id = ?", id).
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return ingredient, nil
}

func (r *ingredientRepository) GetByIDs(ctx context.Context, ids []int64) ([]*models.Ingredient, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var ingredients []*models.Ingredient
	err := r.db.NewSelect().
		Model(&ingredients).
		Where("id IN (?)", bun.In(ids)).
		Scan(ctx)
	return ingredients, err
}

func (r *ingredientRepository) SearchByPrefix(ctx context.Context, prefix string) ([]*models.Ingredient, error) {
	var ingredients []*models.Ingredient
	query := r.db.NewSelect().
		Model(&ingredients).
		Order("name ASC")

	if prefix != "" {
		query = query.Where(`name ILIKE ? || '%' ESCAPE '\'`, escapeLikePattern(prefix))
	}

	err := query.Scan(ctx)
	return ingredients, err
}

// escapeLikePattern neutralizes LIKE metacharacters so a user-supplied
// prefix matches literally.
func escapeLikePattern(s string) string {
	replacer := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return replacer.Replace(s)
}

// BulkUpsert inserts reference ingredients, silently skipping rows whose
// (name, measurement_unit) pair already exists. Used by the CSV loader.
func (r *ingredientRepository) BulkUpsert(ctx context.Context, ingredients []*models.Ingredient) (int64, error) {
	if len(ingredients) == 0 {
		return 0, nil
	}
	res, err := r.db.NewInsert().
		Model(&ingredients).
		On("CONFLICT (name, measurement_unit) DO NOTHING").
		Exec(ctx)
	if err != nil {
		return 0, err
	}
	inserted, _ := res.RowsAffected()
	return inserted, nil
}
