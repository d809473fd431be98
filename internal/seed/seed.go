package seed

import (
	"context"

	"catalog-api/internal/model"
)

// Loader defines the interface for reading the legacy flat product file.
type Loader interface {
	// Load reads a legacy catalogue file and returns its product records.
	Load(ctx context.Context, path string) ([]model.LegacyProduct, error)
}
