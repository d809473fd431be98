package repository

import (
	"context"

	"catalog-api/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DB is the subset of pgxpool.Pool the repositories need. It is satisfied by
// *pgxpool.Pool in production and by pgxmock.PgxPoolIface in unit tests.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// ProductQuery is a ProductFilter with the category/subcategory names already
// resolved to ids. A nil id means the corresponding filter is absent.
type ProductQuery struct {
	CategoryID    *string
	SubcategoryID *string
	Search        string
}

// CategoryRepository defines the interface for category data access operations.
type CategoryRepository interface {
	// Create inserts a new category. Returns a Conflict error when the name
	// is already taken.
	Create(ctx context.Context, category *model.Category) error

	// GetByID retrieves a single category by its ID. Returns nil when absent.
	GetByID(ctx context.Context, id string) (*model.Category, error)

	// GetByName retrieves a category by case-insensitive name match.
	// Returns nil when absent.
	GetByName(ctx context.Context, name string) (*model.Category, error)

	// List retrieves all categories ordered by name.
	List(ctx context.Context) ([]model.Category, error)
}

// SubcategoryRepository defines the interface for subcategory data access operations.
type SubcategoryRepository interface {
	// Create inserts a new subcategory. Returns a Conflict error when the
	// name is already taken.
	Create(ctx context.Context, subcategory *model.Subcategory) error

	// GetByName retrieves a subcategory by case-insensitive name match.
	// Returns nil when absent.
	GetByName(ctx context.Context, name string) (*model.Subcategory, error)

	// List retrieves all subcategories ordered by name.
	List(ctx context.Context) ([]model.Subcategory, error)
}

// ProductRepository defines the interface for product data access operations.
type ProductRepository interface {
	// List retrieves products matching the resolved query, ordered by name.
	List(ctx context.Context, query ProductQuery) ([]model.Product, error)

	// GetByID retrieves a single product by its ID. Returns nil when absent.
	GetByID(ctx context.Context, id string) (*model.Product, error)

	// Create inserts a new product. Returns a Conflict error when the name
	// is already taken.
	Create(ctx context.Context, product *model.Product) error

	// Update applies the non-nil fields of patch to the product and returns
	// the updated row. Returns a NotFound error when the id is absent.
	Update(ctx context.Context, id string, patch *model.UpdateProductInput) (*model.Product, error)

	// Delete removes the product. Returns a NotFound error when the id is absent.
	Delete(ctx context.Context, id string) error
}
