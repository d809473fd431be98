package service

import (
	"context"
	"fmt"
	"strings"

	"catalog-api/internal/model"
	"catalog-api/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// catalogService implements CatalogService.
type catalogService struct {
	productRepo     repository.ProductRepository
	categoryRepo    repository.CategoryRepository
	subcategoryRepo repository.SubcategoryRepository
	logger          zerolog.Logger
}

// NewCatalogService creates a new catalogue service.
func NewCatalogService(
	productRepo repository.ProductRepository,
	categoryRepo repository.CategoryRepository,
	subcategoryRepo repository.SubcategoryRepository,
	logger zerolog.Logger,
) CatalogService {
	return &catalogService{
		productRepo:     productRepo,
		categoryRepo:    categoryRepo,
		subcategoryRepo: subcategoryRepo,
		logger:          logger.With().Str("service", "catalog").Logger(),
	}
}

// ListProducts resolves filter names to ids and queries matching products.
// A filter naming a category or subcategory that does not exist returns an
// empty slice rather than an error.
func (s *catalogService) ListProducts(ctx context.Context, filter model.ProductFilter) ([]model.Product, error) {
	query := repository.ProductQuery{
		Search: strings.TrimSpace(filter.Search),
	}

	if name := strings.TrimSpace(filter.Category); name != "" {
		category, err := s.categoryRepo.GetByName(ctx, name)
		if err != nil {
			s.logger.Error().Err(err).Str("category", name).Msg("failed to resolve category filter")
			return nil, fmt.Errorf("failed to resolve category: %w", err)
		}
		if category == nil {
			s.logger.Debug().Str("category", name).Msg("category filter matched nothing")
			return []model.Product{}, nil
		}
		query.CategoryID = &category.ID
	}

	if name := strings.TrimSpace(filter.Subcategory); name != "" {
		subcategory, err := s.subcategoryRepo.GetByName(ctx, name)
		if err != nil {
			s.logger.Error().Err(err).Str("subcategory", name).Msg("failed to resolve subcategory filter")
			return nil, fmt.Errorf("failed to resolve subcategory: %w", err)
		}
		if subcategory == nil {
			s.logger.Debug().Str("subcategory", name).Msg("subcategory filter matched nothing")
			return []model.Product{}, nil
		}
		query.SubcategoryID = &subcategory.ID
	}

	products, err := s.productRepo.List(ctx, query)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list products")
		return nil, fmt.Errorf("failed to list products: %w", err)
	}

	if products == nil {
		products = []model.Product{}
	}

	s.logger.Debug().Int("count", len(products)).Msg("listed products")
	return products, nil
}

// GetProduct retrieves a single product by ID.
func (s *catalogService) GetProduct(ctx context.Context, id string) (*model.Product, error) {
	if id == "" {
		s.logger.Warn().Msg("product ID is empty")
		return nil, model.ErrProductNotFound
	}

	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Str("product_id", id).Msg("failed to get product by ID")
		return nil, fmt.Errorf("failed to get product: %w", err)
	}

	if product == nil {
		s.logger.Debug().Str("product_id", id).Msg("product not found")
		return nil, model.ErrProductNotFound
	}

	return product, nil
}

// CreateProduct validates the input, resolves the category and inserts the
// product with a generated ID.
func (s *catalogService) CreateProduct(ctx context.Context, input *model.CreateProductInput) (*model.Product, error) {
	if err := validateCreateInput(input); err != nil {
		s.logger.Warn().Err(err).Msg("invalid product creation input")
		return nil, err
	}

	categoryID, err := s.resolveCategoryID(ctx, input)
	if err != nil {
		return nil, err
	}

	product := &model.Product{
		ID:          uuid.NewString(),
		Name:        strings.TrimSpace(input.Name),
		Description: input.Description,
		Price:       *input.Price,
		Currency:    model.DefaultCurrency,
		Rating:      model.DefaultRating,
		CategoryID:  categoryID,
	}
	if input.Currency != "" {
		product.Currency = input.Currency
	}
	if input.Stock != nil {
		product.Stock = *input.Stock
	}
	if input.Rating != nil {
		product.Rating = *input.Rating
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		if model.IsConflict(err) {
			s.logger.Debug().Str("name", product.Name).Msg("product name already exists")
			return nil, err
		}
		s.logger.Error().Err(err).Str("name", product.Name).Msg("failed to create product")
		return nil, err
	}

	s.logger.Info().Str("product_id", product.ID).Str("name", product.Name).Msg("product created")
	return product, nil
}

// UpdateProduct applies a partial update to an existing product. An empty
// patch is a no-op: the product is read back unchanged, and a missing id is
// still a NotFound failure.
func (s *catalogService) UpdateProduct(ctx context.Context, id string, patch *model.UpdateProductInput) (*model.Product, error) {
	if id == "" {
		return nil, model.ErrProductNotFound
	}
	if patch == nil || patch.Empty() {
		return s.GetProduct(ctx, id)
	}
	if err := validateUpdateInput(patch); err != nil {
		s.logger.Warn().Err(err).Str("product_id", id).Msg("invalid product update input")
		return nil, err
	}

	product, err := s.productRepo.Update(ctx, id, patch)
	if err != nil {
		if model.IsNotFound(err) || model.IsValidation(err) || model.IsConflict(err) {
			return nil, err
		}
		s.logger.Error().Err(err).Str("product_id", id).Msg("failed to update product")
		return nil, err
	}

	s.logger.Info().Str("product_id", id).Msg("product updated")
	return product, nil
}

// DeleteProduct removes a product by ID.
func (s *catalogService) DeleteProduct(ctx context.Context, id string) error {
	if id == "" {
		return model.ErrProductNotFound
	}

	if err := s.productRepo.Delete(ctx, id); err != nil {
		if model.IsNotFound(err) {
			return err
		}
		s.logger.Error().Err(err).Str("product_id", id).Msg("failed to delete product")
		return err
	}

	s.logger.Info().Str("product_id", id).Msg("product deleted")
	return nil
}

// ListCategories retrieves all categories.
func (s *catalogService) ListCategories(ctx context.Context) ([]model.Category, error) {
	categories, err := s.categoryRepo.List(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list categories")
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}

	if categories == nil {
		categories = []model.Category{}
	}
	return categories, nil
}

// resolveCategoryID maps the input's category reference to a category id.
// An explicit CategoryID wins over a category name. An unknown reference is a
// validation failure: products must be created against an existing category.
func (s *catalogService) resolveCategoryID(ctx context.Context, input *model.CreateProductInput) (*string, error) {
	if input.CategoryID != "" {
		category, err := s.categoryRepo.GetByID(ctx, input.CategoryID)
		if err != nil {
			s.logger.Error().Err(err).Str("category_id", input.CategoryID).Msg("failed to resolve category id")
			return nil, fmt.Errorf("failed to resolve category: %w", err)
		}
		if category == nil {
			return nil, model.ErrUnknownCategory
		}
		return &category.ID, nil
	}

	category, err := s.categoryRepo.GetByName(ctx, strings.TrimSpace(input.Category))
	if err != nil {
		s.logger.Error().Err(err).Str("category", input.Category).Msg("failed to resolve category name")
		return nil, fmt.Errorf("failed to resolve category: %w", err)
	}
	if category == nil {
		return nil, model.ErrUnknownCategory
	}
	return &category.ID, nil
}

func validateCreateInput(input *model.CreateProductInput) error {
	if input == nil {
		return model.ErrMissingFields
	}
	if strings.TrimSpace(input.Name) == "" || input.Price == nil ||
		(strings.TrimSpace(input.Category) == "" && input.CategoryID == "") {
		return model.ErrMissingFields
	}
	if *input.Price < 0 {
		return model.ErrNegativePrice
	}
	if input.Stock != nil && *input.Stock < 0 {
		return model.ErrNegativeStock
	}
	if input.Rating != nil && *input.Rating < 0 {
		return model.ErrNegativeRating
	}
	return nil
}

func validateUpdateInput(patch *model.UpdateProductInput) error {
	if patch.Name != nil && strings.TrimSpace(*patch.Name) == "" {
		return model.NewValidationError("Name must not be empty")
	}
	if patch.Price != nil && *patch.Price < 0 {
		return model.ErrNegativePrice
	}
	if patch.Stock != nil && *patch.Stock < 0 {
		return model.ErrNegativeStock
	}
	if patch.Rating != nil && *patch.Rating < 0 {
		return model.ErrNegativeRating
	}
	return nil
}
