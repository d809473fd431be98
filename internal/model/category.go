package model

import "time"

// Category represents a top-level product grouping. Names are unique.
type Category struct {
	ID        string    `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

// Subcategory represents a second-level grouping under a Category. Names are
// unique across all subcategories. CategoryID is nullable: seeding leaves it
// null when the parent category cannot be resolved rather than dropping the
// subcategory.
type Subcategory struct {
	ID         string    `json:"id" db:"id"`
	Name       string    `json:"name" db:"name"`
	CategoryID *string   `json:"categoryId" db:"category_id"`
	CreatedAt  time.Time `json:"createdAt" db:"created_at"`
}
