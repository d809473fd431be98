package repository

import (
	"context"
	"fmt"

	"catalog-api/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
)

// subcategoryRepository implements the SubcategoryRepository interface using PostgreSQL.
type subcategoryRepository struct {
	db     DB
	logger zerolog.Logger
}

// NewSubcategoryRepository creates a new PostgreSQL-backed subcategory repository.
func NewSubcategoryRepository(db DB, logger zerolog.Logger) SubcategoryRepository {
	return &subcategoryRepository{
		db:     db,
		logger: logger.With().Str("repository", "subcategory").Logger(),
	}
}

// Create inserts a new subcategory row. CategoryID may be nil when the parent
// category could not be resolved.
func (r *subcategoryRepository) Create(ctx context.Context, subcategory *model.Subcategory) error {
	query := `
		INSERT INTO subcategories (id, name, category_id)
		VALUES ($1, $2, $3)
	`

	_, err := r.db.Exec(ctx, query, subcategory.ID, subcategory.Name, subcategory.CategoryID)
	if err != nil {
		if domainErr := translateConstraintError(err); domainErr != nil {
			r.logger.Debug().Str("name", subcategory.Name).Msg("subcategory name already exists")
			return domainErr
		}
		r.logger.Error().Err(err).Str("name", subcategory.Name).Msg("failed to insert subcategory")
		return fmt.Errorf("failed to insert subcategory: %w", err)
	}

	return nil
}

// GetByName retrieves a subcategory by case-insensitive name match.
func (r *subcategoryRepository) GetByName(ctx context.Context, name string) (*model.Subcategory, error) {
	query := `
		SELECT id, name, category_id, created_at
		FROM subcategories
		WHERE LOWER(name) = LOWER($1)
	`

	var s model.Subcategory
	err := r.db.QueryRow(ctx, query, name).Scan(&s.ID, &s.Name, &s.CategoryID, &s.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			r.logger.Debug().Str("name", name).Msg("subcategory not found by name")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("name", name).Msg("failed to query subcategory by name")
		return nil, fmt.Errorf("failed to query subcategory by name: %w", err)
	}

	return &s, nil
}

// List retrieves all subcategories ordered by name.
func (r *subcategoryRepository) List(ctx context.Context) ([]model.Subcategory, error) {
	query := `
		SELECT id, name, category_id, created_at
		FROM subcategories
		ORDER BY name
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query subcategories")
		return nil, fmt.Errorf("failed to query subcategories: %w", err)
	}
	defer rows.Close()

	var subcategories []model.Subcategory
	for rows.Next() {
		var s model.Subcategory
		if err := rows.Scan(&s.ID, &s.Name, &s.CategoryID, &s.CreatedAt); err != nil {
			r.logger.Error().Err(err).Msg("failed to scan subcategory row")
			return nil, fmt.Errorf("failed to scan subcategory: %w", err)
		}
		subcategories = append(subcategories, s)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating subcategory rows")
		return nil, fmt.Errorf("error iterating subcategories: %w", err)
	}

	return subcategories, nil
}
