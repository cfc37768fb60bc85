package repositories

import (
	"context"
	"time"

	"github.com/uptrace/bun"

	"github.com/foodgram-app/backend/database/models"
)

type TokenRepository interface {
	Create(ctx context.Context, token *models.AuthToken) error
	GetByKey(ctx context.Context, key string) (*models.AuthToken, error)
	DeleteByKey(ctx context.Context, key string) (bool, error)
}

type tokenRepository struct {
	db *bun.DB
}

func NewTokenRepository(db *bun.DB) TokenRepository {
	return &tokenRepository{db: db}
}

func (r *tokenRepository) Create(ctx context.Context, token *models.AuthToken) error {
	token.CreatedAt = time.Now()
	_, err := r.db.NewInsert().Model(token).Exec(ctx)
	return err
}

func (r *tokenRepository) GetByKey(ctx context.Context, key string) (*models.AuthToken, error) {
	token := new(models.AuthToken)
	err := r.db.NewSelect().
		Model(token).
		Where("key = ?", key).
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return token, nil
}

func (r *tokenRepository) DeleteByKey(ctx context.Context, key string) (bool, error) {
	res, err := r.db.NewDelete().
		Model((*models.AuthToken)(nil)).
		Where("key = ?", key).
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
