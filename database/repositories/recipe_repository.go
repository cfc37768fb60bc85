package repositories

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"time"

	"github.com/uptrace/bun"

	"github.com/foodgram-app/backend/database/models"
)

// IngredientLine is one ingredient row of a recipe with the ingredient's
// reference data joined in.
type IngredientLine struct {
	RecipeID        int64  `bun:"recipe_id"`
	IngredientID    int64  `bun:"ingredient_id"`
	Name            string `bun:"name"`
	MeasurementUnit string `bun:"measurement_unit"`
	Amount          int    `bun:"amount"`
}

type RecipeRepository interface {
	GetByID(ctx context.Context, id int64) (*models.Recipe, error)
	List(ctx context.Context, filter RecipeFilter) ([]*models.Recipe, int, error)
	ListByAuthors(ctx context.Context, authorIDs []int64) ([]*models.Recipe, error)
	CountByAuthor(ctx context.Context, authorID int64) (int, error)
	// CreateWithRelations persists the recipe row, its ingredient lines and
	// its tag links inside a single transaction.
	CreateWithRelations(ctx context.Context, recipe *models.Recipe, tagIDs []int64, lines []*models.RecipeIngredient) error
	// UpdateWithRelations saves changed recipe columns and, when a slice is
	// non-nil, replaces the corresponding association set wholesale.
	UpdateWithRelations(ctx context.Context, recipe *models.Recipe, tagIDs []int64, lines []*models.RecipeIngredient) error
	Delete(ctx context.Context, id int64) error
	GetTagsFor(ctx context.Context, recipeIDs []int64) (map[int64][]*models.Tag, error)
	GetIngredientLinesFor(ctx context.Context, recipeIDs []int64) (map[int64][]IngredientLine, error)
}

type recipeRepository struct {
	db *bun.DB
}

func NewRecipeRepository(db *bun.DB) RecipeRepository {
	return &recipeRepository{db: db}
}

func (r *recipeRepository) GetByID(ctx context.Context, id int64) (*models.Recipe, error) {
	recipe := new(models.Recipe)
	err := r.db.NewSelect().
		Model(recipe).
		Where("r.id = ?", id).
		Scan(ctx)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			slog.Error("Database error when getting recipe",
				slog.String("type", "db"),
				slog.String("operation", "GetByID"),
				slog.Int64("recipe_id", id),
				slog.String("error", err.Error()))
		}
		return nil, err
	}
	return recipe, nil
}

func (r *recipeRepository) List(ctx context.Context, filter RecipeFilter) ([]*models.Recipe, int, error) {
	var recipes []*models.Recipe
	query := r.db.NewSelect().
		Model(&recipes).
		Order("r.created_at DESC", "r.id DESC")

	if len(filter.TagSlugs) > 0 {
		query = query.Where(
			"r.id IN (SELECT rt.recipe_id FROM recipe_tags AS rt JOIN tags AS t ON t.id = rt.tag_id WHERE t.slug IN (?))",
			bun.In(filter.TagSlugs))
	}
	if filter.AuthorID > 0 {
		query = query.Where("r.author_id = ?", filter.AuthorID)
	}
	if filter.FavoritedBy > 0 {
		query = query.Where(
			"r.id IN (SELECT f.recipe_id FROM favorites AS f WHERE f.user_id = ?)",
			filter.FavoritedBy)
	}
	if filter.InCartOf > 0 {
		query = query.Where(
			"r.id IN (SELECT sc.recipe_id FROM shopping_carts AS sc WHERE sc.user_id = ?)",
			filter.InCartOf)
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit).Offset(filter.Offset)
	}

	total, err := query.ScanAndCount(ctx)
	if err != nil {
		return nil, 0, err
	}
	return recipes, total, nil
}

func (r *recipeRepository) ListByAuthors(ctx context.Context, authorIDs []int64) ([]*models.Recipe, error) {
	if len(authorIDs) == 0 {
		return nil, nil
	}
	var recipes []*models.Recipe
	err := r.db.NewSelect().
		Model(&recipes).
		Where("author_id IN (?)", bun.In(authorIDs)).
		Order("created_at DESC", "id DESC").
		Scan(ctx)
	return recipes, err
}

func (r *recipeRepository) CountByAuthor(ctx context.Context, authorID int64) (int, error) {
	return r.db.NewSelect().
		Model((*models.Recipe)(nil)).
		Where("author_id = ?", authorID).
		Count(ctx)
}

func (r *recipeRepository) CreateWithRelations(ctx context.Context, recipe *models.Recipe, tagIDs []int64, lines []*models.RecipeIngredient) error {
	recipe.CreatedAt = time.Now()

	return r.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewInsert().Model(recipe).Exec(ctx); err != nil {
			return err
		}
		for _, line := range lines {
			line.RecipeID = recipe.ID
		}
		if _, err := tx.NewInsert().Model(&lines).Exec(ctx); err != nil {
			return err
		}
		links := make([]*models.RecipeTag, len(tagIDs))
		for i, tagID := range tagIDs {
			links[i] = &models.RecipeTag{RecipeID: recipe.ID, TagID: tagID}
		}
		_, err := tx.NewInsert().Model(&links).Exec(ctx)
		return err
	})
}

func (r *recipeRepository) UpdateWithRelations(ctx context.Context, recipe *models.Recipe, tagIDs []int64, lines []*models.RecipeIngredient) error {
	return r.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewUpdate().
			Model(recipe).
			Column("name", "image", "text", "cooking_time").
			WherePK().
			Exec(ctx); err != nil {
			return err
		}

		if lines != nil {
			if _, err := tx.NewDelete().
				Model((*models.RecipeIngredient)(nil)).
				Where("recipe_id = ?", recipe.ID).
				Exec(ctx); err != nil {
				return err
			}
			for _, line := range lines {
				line.RecipeID = recipe.ID
			}
			if _, err := tx.NewInsert().Model(&lines).Exec(ctx); err != nil {
				return err
			}
		}

		if tagIDs != nil {
			if _, err := tx.NewDelete().
				Model((*models.RecipeTag)(nil)).
				Where("recipe_id = ?", recipe.ID).
				Exec(ctx); err != nil {
				return err
			}
			links := make([]*models.RecipeTag, len(tagIDs))
			for i, tagID := range tagIDs {
				links[i] = &models.RecipeTag{RecipeID: recipe.ID, TagID: tagID}
			}
			if _, err := tx.NewInsert().Model(&links).Exec(ctx); err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *recipeRepository) Delete(ctx context.Context, id int64) error {
	_, err := r.db.NewDelete().
		Model((*models.Recipe)(nil)).
		Where("id = ?", id).
		Exec(ctx)
	return err
}

func (r *recipeRepository) GetTagsFor(ctx context.Context, recipeIDs []int64) (map[int64][]*models.Tag, error) {
	result := make(map[int64][]*models.Tag)
	if len(recipeIDs) == 0 {
		return result, nil
	}

	var links []*models.RecipeTag
	err := r.db.NewSelect().
		Model(&links).
		Where("recipe_id IN (?)", bun.In(recipeIDs)).
		Order("id ASC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	if len(links) == 0 {
		return result, nil
	}

	tagIDs := make([]int64, 0, len(links))
	seen := make(map[int64]bool)
	for _, link := range links {
		if !seen[link.TagID] {
			tagIDs = append(tagIDs, link.TagID)
			seen[link.TagID] = true
		}
	}

	var tags []*models.Tag
	err = r.db.NewSelect().
		Model(&tags).
		Where("id IN (?)", bun.In(tagIDs)).
		Scan(ctx)
	if err != nil {
		return nil, err
	}

	tagsByID := make(map[int64]*models.Tag, len(tags))
	for _, tag := range tags {
		tagsByID[tag.ID] = tag
	}
	for _, link := range links {
		if tag, ok := tagsByID[link.TagID]; ok {
			result[link.RecipeID] = append(result[link.RecipeID], tag)
		}
	}
	return result, nil
}

func (r *recipeRepository) GetIngredientLinesFor(ctx context.Context, recipeIDs []int64) (map[int64][]IngredientLine, error) {
	result := make(map[int64][]IngredientLine)
	if len(recipeIDs) == 0 {
		return result, nil
	}

	var lines []IngredientLine
	err := r.db.NewSelect().
		Model((*models.RecipeIngredient)(nil)).
		ColumnExpr("ri.recipe_id").
		ColumnExpr("ri.ingredient_id").
		ColumnExpr("i.name").
		ColumnExpr("i.measurement_unit").
		ColumnExpr("ri.amount").
		Join("JOIN ingredients AS i ON i.id = ri.ingredient_id").
		Where("ri.recipe_id IN (?)", bun.In(recipeIDs)).
		OrderExpr("ri.id ASC").
		Scan(ctx, &lines)
	if err != nil {
		return nil, err
	}

	for _, line := range lines {
		result[line.RecipeID] = append(result[line.RecipeID], line)
	}
	return result, nil
}
