package model

import "time"

// Product represents a catalogue product in the normalised schema.
type Product struct {
	ID            string    `json:"id" db:"id"`
	Name          string    `json:"name" db:"name"`
	Description   string    `json:"description" db:"description"`
	Price         float64   `json:"price" db:"price"`
	Currency      string    `json:"currency" db:"currency"`
	Stock         int       `json:"stock" db:"stock"`
	Rating        float64   `json:"rating" db:"rating"`
	CategoryID    *string   `json:"categoryId" db:"category_id"`
	SubcategoryID *string   `json:"subcategoryId" db:"subcategory_id"`
	CreatedAt     time.Time `json:"createdAt" db:"created_at"`
}

// Default field values applied when a create request omits them.
const (
	DefaultCurrency = "USD"
	DefaultRating   = 1.0
)

// ProductFilter carries the optional query parameters of a product listing.
// Category and Subcategory match category/subcategory names, Search is a
// substring match on product name and description. All matching is
// case-insensitive.
type ProductFilter struct {
	Category    string
	Subcategory string
	Search      string
}

// CreateProductInput is the payload for product creation. Price is a pointer
// so that a missing price can be distinguished from an explicit zero.
type CreateProductInput struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Price       *float64 `json:"price"`
	Currency    string   `json:"currency"`
	Stock       *int     `json:"stock"`
	Rating      *float64 `json:"rating"`
	Category    string   `json:"category"`
	CategoryID  string   `json:"categoryId"`
}

// UpdateProductInput is a partial update: nil fields keep their prior value.
type UpdateProductInput struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
	Currency    *string  `json:"currency"`
	Stock       *int     `json:"stock"`
	Rating      *float64 `json:"rating"`
	CategoryID  *string  `json:"categoryId"`
}

// Empty reports whether the patch carries no fields at all.
func (u *UpdateProductInput) Empty() bool {
	return u.Name == nil && u.Description == nil && u.Price == nil &&
		u.Currency == nil && u.Stock == nil && u.Rating == nil && u.CategoryID == nil
}
