package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// schema is the normalised catalogue schema. All statements are idempotent so
// Migrate can run on every startup. Category deletion is blocked while
// subcategories or products reference it (FK NO ACTION): the service exposes
// no category delete endpoint, and the constraint is the backstop.
const schema = `
	CREATE TABLE IF NOT EXISTS categories (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL UNIQUE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);

	CREATE TABLE IF NOT EXISTS subcategories (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL UNIQUE,
		category_id TEXT REFERENCES categories(id),
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);

	CREATE TABLE IF NOT EXISTS products (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL UNIQUE,
		description TEXT NOT NULL DEFAULT '',
		price DECIMAL(10,2) NOT NULL DEFAULT 0 CHECK (price >= 0),
		currency TEXT NOT NULL DEFAULT 'USD',
		stock INTEGER NOT NULL DEFAULT 0 CHECK (stock >= 0),
		rating DECIMAL(3,1) NOT NULL DEFAULT 1.0 CHECK (rating >= 0),
		category_id TEXT REFERENCES categories(id),
		subcategory_id TEXT REFERENCES subcategories(id),
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);

	CREATE INDEX IF NOT EXISTS idx_products_category ON products(category_id);
	CREATE INDEX IF NOT EXISTS idx_products_subcategory ON products(subcategory_id);
	CREATE INDEX IF NOT EXISTS idx_subcategories_category ON subcategories(category_id);
`

// Migrate creates the catalogue tables if they do not exist yet.
func Migrate(ctx context.Context, pool *pgxpool.Pool, logger zerolog.Logger) error {
	logger.Info().Msg("applying database schema")

	if _, err := pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}

	logger.Info().Msg("database schema up to date")
	return nil
}
