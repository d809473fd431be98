package service

import (
	"context"

	"catalog-api/internal/model"
)

// CatalogService defines operations for catalogue management.
type CatalogService interface {
	// ListProducts retrieves products matching the filter. An unknown
	// category or subcategory name yields an empty result, not an error.
	ListProducts(ctx context.Context, filter model.ProductFilter) ([]model.Product, error)

	// GetProduct retrieves a single product by ID.
	GetProduct(ctx context.Context, id string) (*model.Product, error)

	// CreateProduct validates the input and creates a new product.
	CreateProduct(ctx context.Context, input *model.CreateProductInput) (*model.Product, error)

	// UpdateProduct applies a partial update to an existing product.
	UpdateProduct(ctx context.Context, id string, patch *model.UpdateProductInput) (*model.Product, error)

	// DeleteProduct removes a product by ID.
	DeleteProduct(ctx context.Context, id string) error

	// ListCategories retrieves all categories.
	ListCategories(ctx context.Context) ([]model.Category, error)
}
