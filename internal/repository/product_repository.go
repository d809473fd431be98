package repository

import (
	"context"
	"fmt"
	"strings"

	"catalog-api/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
)

// productRepository implements the ProductRepository interface using PostgreSQL.
type productRepository struct {
	db     DB
	logger zerolog.Logger
}

// NewProductRepository creates a new PostgreSQL-backed product repository.
func NewProductRepository(db DB, logger zerolog.Logger) ProductRepository {
	return &productRepository{
		db:     db,
		logger: logger.With().Str("repository", "product").Logger(),
	}
}

const productColumns = "id, name, description, price, currency, stock, rating, category_id, subcategory_id, created_at"

// escapeLikePattern escapes the LIKE wildcard characters so a search term
// matches literally instead of acting as a pattern.
func escapeLikePattern(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

func scanProduct(row pgx.Row, p *model.Product) error {
	return row.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.Currency,
		&p.Stock, &p.Rating, &p.CategoryID, &p.SubcategoryID, &p.CreatedAt)
}

// List retrieves products matching the resolved query, ordered by name for a
// stable result across calls.
func (r *productRepository) List(ctx context.Context, query ProductQuery) ([]model.Product, error) {
	sql := "SELECT " + productColumns + " FROM products"

	var conditions []string
	var args []any
	if query.CategoryID != nil {
		args = append(args, *query.CategoryID)
		conditions = append(conditions, fmt.Sprintf("category_id = $%d", len(args)))
	}
	if query.SubcategoryID != nil {
		args = append(args, *query.SubcategoryID)
		conditions = append(conditions, fmt.Sprintf("subcategory_id = $%d", len(args)))
	}
	if query.Search != "" {
		args = append(args, "%"+escapeLikePattern(query.Search)+"%")
		conditions = append(conditions,
			fmt.Sprintf("(name ILIKE $%d OR description ILIKE $%d)", len(args), len(args)))
	}
	if len(conditions) > 0 {
		sql += " WHERE " + strings.Join(conditions, " AND ")
	}
	sql += " ORDER BY name"

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query products")
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	var products []model.Product
	for rows.Next() {
		var p model.Product
		if err := scanProduct(rows, &p); err != nil {
			r.logger.Error().Err(err).Msg("failed to scan product row")
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, p)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating product rows")
		return nil, fmt.Errorf("error iterating products: %w", err)
	}

	return products, nil
}

// GetByID retrieves a single product by its ID.
func (r *productRepository) GetByID(ctx context.Context, id string) (*model.Product, error) {
	query := "SELECT " + productColumns + " FROM products WHERE id = $1"

	var p model.Product
	err := scanProduct(r.db.QueryRow(ctx, query, id), &p)
	if err != nil {
		if err == pgx.ErrNoRows {
			r.logger.Debug().Str("product_id", id).Msg("product not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("product_id", id).Msg("failed to query product")
		return nil, fmt.Errorf("failed to query product: %w", err)
	}

	return &p, nil
}

// Create inserts a new product row.
func (r *productRepository) Create(ctx context.Context, product *model.Product) error {
	query := `
		INSERT INTO products (id, name, description, price, currency, stock, rating, category_id, subcategory_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.db.Exec(ctx, query,
		product.ID, product.Name, product.Description, product.Price,
		product.Currency, product.Stock, product.Rating,
		product.CategoryID, product.SubcategoryID)
	if err != nil {
		if domainErr := translateConstraintError(err); domainErr != nil {
			r.logger.Debug().Str("name", product.Name).Msg("product violates a constraint")
			return domainErr
		}
		r.logger.Error().Err(err).Str("name", product.Name).Msg("failed to insert product")
		return fmt.Errorf("failed to insert product: %w", err)
	}

	return nil
}

// Update applies the non-nil fields of patch and returns the updated row.
// Unspecified fields keep their prior value via COALESCE.
func (r *productRepository) Update(ctx context.Context, id string, patch *model.UpdateProductInput) (*model.Product, error) {
	query := `
		UPDATE products
		SET name = COALESCE($2, name),
			description = COALESCE($3, description),
			price = COALESCE($4, price),
			currency = COALESCE($5, currency),
			stock = COALESCE($6, stock),
			rating = COALESCE($7, rating),
			category_id = COALESCE($8, category_id)
		WHERE id = $1
		RETURNING ` + productColumns

	var p model.Product
	err := scanProduct(r.db.QueryRow(ctx, query, id,
		patch.Name, patch.Description, patch.Price, patch.Currency,
		patch.Stock, patch.Rating, patch.CategoryID), &p)
	if err != nil {
		if err == pgx.ErrNoRows {
			r.logger.Debug().Str("product_id", id).Msg("product not found for update")
			return nil, model.ErrProductNotFound
		}
		if domainErr := translateConstraintError(err); domainErr != nil {
			r.logger.Debug().Str("product_id", id).Msg("product update violates a constraint")
			return nil, domainErr
		}
		r.logger.Error().Err(err).Str("product_id", id).Msg("failed to update product")
		return nil, fmt.Errorf("failed to update product: %w", err)
	}

	return &p, nil
}

// Delete removes the product row.
func (r *productRepository) Delete(ctx context.Context, id string) error {
	query := "DELETE FROM products WHERE id = $1"

	tag, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.logger.Error().Err(err).Str("product_id", id).Msg("failed to delete product")
		return fmt.Errorf("failed to delete product: %w", err)
	}

	if tag.RowsAffected() == 0 {
		r.logger.Debug().Str("product_id", id).Msg("product not found for delete")
		return model.ErrProductNotFound
	}

	return nil
}
