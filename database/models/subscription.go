// models/subscription.go
package models

import (
	"time"

	"github.com/uptrace/bun"
)

// Subscription is a following relationship between a user and a recipe
// author. A CHECK constraint in the schema forbids user_id == author_id.
type Subscription struct {
	bun.BaseModel `bun:"table:subscriptions,alias:s"`

	ID        int64     `bun:"id,pk,autoincrement"`
	UserID    int64     `bun:"user_id,notnull"`
	AuthorID  int64     `bun:"author_id,notnull"`
	CreatedAt time.Time `bun:"created_at,notnull,default:current_timestamp"`
}
