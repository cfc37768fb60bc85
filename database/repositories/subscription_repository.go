package repositories

import (
	"context"
	"time"

	"github.com/uptrace/bun"

	"github.com/foodgram-app/backend/database/models"
)

type SubscriptionRepository interface {
	Exists(ctx context.Context, userID, authorID int64) (bool, error)
	Add(ctx context.Context, userID, authorID int64) error
	Remove(ctx context.Context, userID, authorID int64) (bool, error)
	// ListAuthors returns the authors the user follows, newest subscription
	// first, plus the total count for pagination.
	ListAuthors(ctx context.Context, userID int64, limit, offset int) ([]*models.User, int, error)
	// AuthorIDsFor reports which of the given authors the user follows.
	AuthorIDsFor(ctx context.Context, userID int64, authorIDs []int64) (map[int64]bool, error)
}

type subscriptionRepository struct {
	db *bun.DB
}

func NewSubscriptionRepository(db *bun.DB) SubscriptionRepository {
	return &subscriptionRepository{db: db}
}

func (r *subscriptionRepository) Exists(ctx context.Context, userID, authorID int64) (bool, error) {
	return r.db.NewSelect().
		Model((*models.Subscription)(nil)).
		Where("user_id = ? AND author_id = ?", userID, authorID).
		Exists(ctx)
}

func (r *subscriptionRepository) Add(ctx context.Context, userID, authorID int64) error {
	sub := &models.Subscription{
		UserID:    userID,
		AuthorID:  authorID,
		CreatedAt: time.Now(),
	}
	_, err := r.db.NewInsert().Model(sub).Exec(ctx)
	return err
}

func (r *subscriptionRepository) Remove(ctx context.Context, userID, authorID int64) (bool, error) {
	res, err := r.db.NewDelete().
		Model((*models.Subscription)(nil)).
		Where("user_id = ? AND author_id = ?", userID, authorID).
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

func (r *subscriptionRepository) ListAuthors(ctx context.Context, userID int64, limit, offset int) ([]*models.User, int, error) {
	var users []*models.User
	query := r.db.NewSelect().
		Model(&users).
		Join("JOIN subscriptions AS s ON s.author_id = u.id").
		Where("s.user_id = ?", userID).
		OrderExpr("s.created_at DESC, s.id DESC")
	if limit > 0 {
		query = query.Limit(limit).Offset(offset)
	}
	total, err := query.ScanAndCount(ctx)
	if err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

func (r *subscriptionRepository) AuthorIDsFor(ctx context.Context, userID int64, authorIDs []int64) (map[int64]bool, error) {
	result := make(map[int64]bool)
	if len(authorIDs) == 0 {
		return result, nil
	}
	var ids []int64
	err := r.db.NewSelect().
		Model((*models.Subscription)(nil)).
		Column("author_id").
		Where("user_id = ?", userID).
		Where("author_id IN (?)", bun.In(authorIDs)).
		Scan(ctx, &ids)
	if err != nil {
		return nil, err
	}
	for _, id := range ids {
		result[id] = true
	}
	return result, nil
}
