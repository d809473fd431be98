package repository

import (
	"context"
	"fmt"

	"catalog-api/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
)

// categoryRepository implements the CategoryRepository interface using PostgreSQL.
type categoryRepository struct {
	db     DB
	logger zerolog.Logger
}

// NewCategoryRepository creates a new PostgreSQL-backed category repository.
func NewCategoryRepository(db DB, logger zerolog.Logger) CategoryRepository {
	return &categoryRepository{
		db:     db,
		logger: logger.With().Str("repository", "category").Logger(),
	}
}

// Create inserts a new category row.
func (r *categoryRepository) Create(ctx context.Context, category *model.Category) error {
	query := `
		INSERT INTO categories (id, name)
		VALUES ($1, $2)
	`

	_, err := r.db.Exec(ctx, query, category.ID, category.Name)
	if err != nil {
		if domainErr := translateConstraintError(err); domainErr != nil {
			r.logger.Debug().Str("name", category.Name).Msg("category name already exists")
			return domainErr
		}
		r.logger.Error().Err(err).Str("name", category.Name).Msg("failed to insert category")
		return fmt.Errorf("failed to insert category: %w", err)
	}

	return nil
}

// GetByID retrieves a single category by its ID.
func (r *categoryRepository) GetByID(ctx context.Context, id string) (*model.Category, error) {
	query := `
		SELECT id, name, created_at
		FROM categories
		WHERE id = $1
	`

	var c model.Category
	err := r.db.QueryRow(ctx, query, id).Scan(&c.ID, &c.Name, &c.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			r.logger.Debug().Str("category_id", id).Msg("category not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("category_id", id).Msg("failed to query category")
		return nil, fmt.Errorf("failed to query category: %w", err)
	}

	return &c, nil
}

// GetByName retrieves a category by case-insensitive name match.
func (r *categoryRepository) GetByName(ctx context.Context, name string) (*model.Category, error) {
	query := `
		SELECT id, name, created_at
		FROM categories
		WHERE LOWER(name) = LOWER($1)
	`

	var c model.Category
	err := r.db.QueryRow(ctx, query, name).Scan(&c.ID, &c.Name, &c.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			r.logger.Debug().Str("name", name).Msg("category not found by name")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("name", name).Msg("failed to query category by name")
		return nil, fmt.Errorf("failed to query category by name: %w", err)
	}

	return &c, nil
}

// List retrieves all categories ordered by name.
func (r *categoryRepository) List(ctx context.Context) ([]model.Category, error) {
	query := `
		SELECT id, name, created_at
		FROM categories
		ORDER BY name
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query categories")
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}
	defer rows.Close()

	var categories []model.Category
	for rows.Next() {
		var c model.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.CreatedAt); err != nil {
			r.logger.Error().Err(err).Msg("failed to scan category row")
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, c)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating category rows")
		return nil, fmt.Errorf("error iterating categories: %w", err)
	}

	return categories, nil
}
