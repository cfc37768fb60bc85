package repositories

import (
	"context"

	"github.com/uptrace/bun"

	"github.com/foodgram-app/backend/database/models"
)

type TagRepository interface {
	GetAll(ctx context.Context) ([]*models.Tag, error)
	GetByID(ctx context.Context, id int64) (*models.Tag, error)
	GetByIDs(ctx context.Context, ids []int64) ([]*models.Tag, error)
	Create(ctx context.Context, tag *models.Tag) error
}

type tagRepository struct {
	db *bun.DB
}

func NewTagRepository(db *bun.DB) TagRepository {
	return &tagRepository{db: db}
}

func (r *tagRepository) GetAll(ctx context.Context) ([]*models.Tag, error) {
	var tags []*models.Tag
	err := r.db.NewSelect().
		Model(&tags).
		Order("name ASC").
		Scan(ctx)
	return tags, err
}

func (r *tagRepository) GetByID(ctx context.Context, id int64) (*models.Tag, error) {
	tag := new(models.Tag)
	err := r.db.NewSelect().
		Model(tag).
		Where("id = ?", id).
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return tag, nil
}

func (r *tagRepository) GetByIDs(ctx context.Context, ids []int64) ([]*models.Tag, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var tags []*models.Tag
	err := r.db.NewSelect().
		Model(&tags).
		Where("id IN (?)", bun.In(ids)).
		Scan(ctx)
	return tags, err
}

func (r *tagRepository) Create(ctx context.Context, tag *models.Tag) error {
	_, err := r.db.NewInsert().Model(tag).Exec(ctx)
	return err
}
