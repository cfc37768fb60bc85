// models/auth_token.go
package models

import (
	"time"

	"github.com/uptrace/bun"
)

// AuthToken is an opaque API token. A user may hold several tokens at once
// (one per device); logout deletes the presented token only.
type AuthToken struct {
	bun.BaseModel `bun:"table:auth_tokens,alias:at"`

	ID        int64     `bun:"id,pk,autoincrement"`
	Key       string    `bun:"key,notnull,unique"`
	UserID    int64     `bun:"user_id,notnull"`
	CreatedAt time.Time `bun:"created_at,notnull,default:current_timestamp"`
}
