// models/ingredient.go
package models

import "github.com/uptrace/bun"

// Ingredient is reference data. The same name may appear under different
// measurement units; uniqueness is on the (name, measurement_unit) pair.
type Ingredient struct {
	bun.BaseModel `bun:"table:ingredients,alias:i"`

	ID              int64  `bun:"id,pk,autoincrement"`
	Name            string `bun:"name,notnull"`
	MeasurementUnit string `bun:"measurement_unit,notnull"`
}
