// models/tag.go
package models

import "github.com/uptrace/bun"

// Tag is admin-managed reference data. Color is kept for the admin UI but
// never exposed through the API.
type Tag struct {
	bun.BaseModel `bun:"table:tags,alias:t"`

	ID    int64  `bun:"id,pk,autoincrement"`
	Name  string `bun:"name,notnull,unique"`
	Slug  string `bun:"slug,notnull,unique"`
	Color string `bun:"color,default:''"`
}
