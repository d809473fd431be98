package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"catalog-api/internal/model"
	"catalog-api/internal/repository"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockProductRepository is a mock implementation of repository.ProductRepository.
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) List(ctx context.Context, query repository.ProductQuery) ([]model.Product, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Product), args.Error(1)
}

func (m *MockProductRepository) GetByID(ctx context.Context, id string) (*model.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Product), args.Error(1)
}

func (m *MockProductRepository) Create(ctx context.Context, product *model.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) Update(ctx context.Context, id string, patch *model.UpdateProductInput) (*model.Product, error) {
	args := m.Called(ctx, id, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Product), args.Error(1)
}

func (m *MockProductRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockCategoryRepository is a mock implementation of repository.CategoryRepository.
type MockCategoryRepository struct {
	mock.Mock
}

func (m *MockCategoryRepository) Create(ctx context.Context, category *model.Category) error {
	args := m.Called(ctx, category)
	return args.Error(0)
}

func (m *MockCategoryRepository) GetByID(ctx context.Context, id string) (*model.Category, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Category), args.Error(1)
}

func (m *MockCategoryRepository) GetByName(ctx context.Context, name string) (*model.Category, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Category), args.Error(1)
}

func (m *MockCategoryRepository) List(ctx context.Context) ([]model.Category, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Category), args.Error(1)
}

// MockSubcategoryRepository is a mock implementation of repository.SubcategoryRepository.
type MockSubcategoryRepository struct {
	mock.Mock
}

func (m *MockSubcategoryRepository) Create(ctx context.Context, subcategory *model.Subcategory) error {
	args := m.Called(ctx, subcategory)
	return args.Error(0)
}

func (m *MockSubcategoryRepository) GetByName(ctx context.Context, name string) (*model.Subcategory, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Subcategory), args.Error(1)
}

func (m *MockSubcategoryRepository) List(ctx context.Context) ([]model.Subcategory, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Subcategory), args.Error(1)
}

func newTestService(productRepo *MockProductRepository, categoryRepo *MockCategoryRepository, subcategoryRepo *MockSubcategoryRepository) CatalogService {
	return NewCatalogService(productRepo, categoryRepo, subcategoryRepo, zerolog.Nop())
}

func floatPtr(f float64) *float64 { return &f }
func intPtr(i int) *int           { return &i }
func strPtr(s string) *string     { return &s }

func TestCatalogService_ListProducts(t *testing.T) {
	ctx := context.Background()
	categoryID := "cat-1"
	testProducts := []model.Product{
		{ID: "p1", Name: "Widget", Price: 9.99, CategoryID: &categoryID, CreatedAt: time.Now()},
	}

	t.Run("No filter returns all products", func(t *testing.T) {
		productRepo := new(MockProductRepository)
		categoryRepo := new(MockCategoryRepository)
		subcategoryRepo := new(MockSubcategoryRepository)
		svc := newTestService(productRepo, categoryRepo, subcategoryRepo)

		productRepo.On("List", ctx, repository.ProductQuery{}).Return(testProducts, nil)

		products, err := svc.ListProducts(ctx, model.ProductFilter{})
		require.NoError(t, err)
		assert.Len(t, products, 1)
		productRepo.AssertExpectations(t)
	})

	t.Run("Category filter resolves name to id", func(t *testing.T) {
		productRepo := new(MockProductRepository)
		categoryRepo := new(MockCategoryRepository)
		subcategoryRepo := new(MockSubcategoryRepository)
		svc := newTestService(productRepo, categoryRepo, subcategoryRepo)

		categoryRepo.On("GetByName", ctx, "Electronics").
			Return(&model.Category{ID: categoryID, Name: "Electronics"}, nil)
		productRepo.On("List", ctx, repository.ProductQuery{CategoryID: &categoryID}).
			Return(testProducts, nil)

		products, err := svc.ListProducts(ctx, model.ProductFilter{Category: "Electronics"})
		require.NoError(t, err)
		assert.Len(t, products, 1)
		categoryRepo.AssertExpectations(t)
		productRepo.AssertExpectations(t)
	})

	t.Run("Unknown category name yields empty result, not an error", func(t *testing.T) {
		productRepo := new(MockProductRepository)
		categoryRepo := new(MockCategoryRepository)
		subcategoryRepo := new(MockSubcategoryRepository)
		svc := newTestService(productRepo, categoryRepo, subcategoryRepo)

		categoryRepo.On("GetByName", ctx, "Nonexistent").Return(nil, nil)

		products, err := svc.ListProducts(ctx, model.ProductFilter{Category: "Nonexistent"})
		require.NoError(t, err)
		assert.Empty(t, products)
		assert.NotNil(t, products)
		productRepo.AssertNotCalled(t, "List", mock.Anything, mock.Anything)
	})

	t.Run("Unknown subcategory name yields empty result", func(t *testing.T) {
		productRepo := new(MockProductRepository)
		categoryRepo := new(MockCategoryRepository)
		subcategoryRepo := new(MockSubcategoryRepository)
		svc := newTestService(productRepo, categoryRepo, subcategoryRepo)

		subcategoryRepo.On("GetByName", ctx, "Nonexistent").Return(nil, nil)

		products, err := svc.ListProducts(ctx, model.ProductFilter{Subcategory: "Nonexistent"})
		require.NoError(t, err)
		assert.Empty(t, products)
		productRepo.AssertNotCalled(t, "List", mock.Anything, mock.Anything)
	})

	t.Run("Search filter passes through trimmed", func(t *testing.T) {
		productRepo := new(MockProductRepository)
		categoryRepo := new(MockCategoryRepository)
		subcategoryRepo := new(MockSubcategoryRepository)
		svc := newTestService(productRepo, categoryRepo, subcategoryRepo)

		productRepo.On("List", ctx, repository.ProductQuery{Search: "widget"}).
			Return(testProducts, nil)

		_, err := svc.ListProducts(ctx, model.ProductFilter{Search: "  widget  "})
		require.NoError(t, err)
		productRepo.AssertExpectations(t)
	})

	t.Run("Repository error", func(t *testing.T) {
		productRepo := new(MockProductRepository)
		categoryRepo := new(MockCategoryRepository)
		subcategoryRepo := new(MockSubcategoryRepository)
		svc := newTestService(productRepo, categoryRepo, subcategoryRepo)

		productRepo.On("List", ctx, repository.ProductQuery{}).
			Return(nil, errors.New("database error"))

		products, err := svc.ListProducts(ctx, model.ProductFilter{})
		require.Error(t, err)
		assert.Nil(t, products)
	})
}

func TestCatalogService_GetProduct(t *testing.T) {
	ctx := context.Background()

	t.Run("Found", func(t *testing.T) {
		productRepo := new(MockProductRepository)
		svc := newTestService(productRepo, new(MockCategoryRepository), new(MockSubcategoryRepository))

		productRepo.On("GetByID", ctx, "p1").
			Return(&model.Product{ID: "p1", Name: "Widget"}, nil)

		product, err := svc.GetProduct(ctx, "p1")
		require.NoError(t, err)
		assert.Equal(t, "Widget", product.Name)
	})

	t.Run("Empty id is not found", func(t *testing.T) {
		productRepo := new(MockProductRepository)
		svc := newTestService(productRepo, new(MockCategoryRepository), new(MockSubcategoryRepository))

		_, err := svc.GetProduct(ctx, "")
		assert.ErrorIs(t, err, model.ErrProductNotFound)
		productRepo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
	})

	t.Run("Missing row is not found", func(t *testing.T) {
		productRepo := new(MockProductRepository)
		svc := newTestService(productRepo, new(MockCategoryRepository), new(MockSubcategoryRepository))

		productRepo.On("GetByID", ctx, "missing").Return(nil, nil)

		_, err := svc.GetProduct(ctx, "missing")
		assert.ErrorIs(t, err, model.ErrProductNotFound)
	})
}

func TestCatalogService_CreateProduct(t *testing.T) {
	ctx := context.Background()

	validationCases := []struct {
		name     string
		input    *model.CreateProductInput
		expected error
	}{
		{
			name:     "Missing name",
			input:    &model.CreateProductInput{Price: floatPtr(9.99), Category: "Tools"},
			expected: model.ErrMissingFields,
		},
		{
			name:     "Missing price",
			input:    &model.CreateProductInput{Name: "Widget", Category: "Tools"},
			expected: model.ErrMissingFields,
		},
		{
			name:     "Missing category",
			input:    &model.CreateProductInput{Name: "Widget", Price: floatPtr(9.99)},
			expected: model.ErrMissingFields,
		},
		{
			name:     "Negative price",
			input:    &model.CreateProductInput{Name: "Widget", Price: floatPtr(-1), Category: "Tools"},
			expected: model.ErrNegativePrice,
		},
		{
			name:     "Negative stock",
			input:    &model.CreateProductInput{Name: "Widget", Price: floatPtr(9.99), Stock: intPtr(-1), Category: "Tools"},
			expected: model.ErrNegativeStock,
		},
		{
			name:     "Negative rating",
			input:    &model.CreateProductInput{Name: "Widget", Price: floatPtr(9.99), Rating: floatPtr(-0.5), Category: "Tools"},
			expected: model.ErrNegativeRating,
		},
	}

	for _, tt := range validationCases {
		t.Run(tt.name, func(t *testing.T) {
			productRepo := new(MockProductRepository)
			svc := newTestService(productRepo, new(MockCategoryRepository), new(MockSubcategoryRepository))

			product, err := svc.CreateProduct(ctx, tt.input)
			assert.Nil(t, product)
			assert.ErrorIs(t, err, tt.expected)
			assert.True(t, model.IsValidation(err))
			productRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}

	t.Run("Success applies defaults and resolves category", func(t *testing.T) {
		productRepo := new(MockProductRepository)
		categoryRepo := new(MockCategoryRepository)
		svc := newTestService(productRepo, categoryRepo, new(MockSubcategoryRepository))

		categoryRepo.On("GetByName", ctx, "Tools").
			Return(&model.Category{ID: "cat-1", Name: "Tools"}, nil)
		productRepo.On("Create", ctx, mock.MatchedBy(func(p *model.Product) bool {
			return p.Name == "Widget" &&
				p.Price == 9.99 &&
				p.Currency == model.DefaultCurrency &&
				p.Rating == model.DefaultRating &&
				p.Stock == 0 &&
				p.CategoryID != nil && *p.CategoryID == "cat-1" &&
				p.ID != ""
		})).Return(nil)

		product, err := svc.CreateProduct(ctx, &model.CreateProductInput{
			Name:     "Widget",
			Price:    floatPtr(9.99),
			Category: "Tools",
		})
		require.NoError(t, err)
		require.NotNil(t, product)
		assert.NotEmpty(t, product.ID)
		productRepo.AssertExpectations(t)
	})

	t.Run("Unknown category name is a validation error", func(t *testing.T) {
		productRepo := new(MockProductRepository)
		categoryRepo := new(MockCategoryRepository)
		svc := newTestService(productRepo, categoryRepo, new(MockSubcategoryRepository))

		categoryRepo.On("GetByName", ctx, "Nope").Return(nil, nil)

		product, err := svc.CreateProduct(ctx, &model.CreateProductInput{
			Name:     "Widget",
			Price:    floatPtr(9.99),
			Category: "Nope",
		})
		assert.Nil(t, product)
		assert.ErrorIs(t, err, model.ErrUnknownCategory)
	})

	t.Run("Duplicate name surfaces conflict", func(t *testing.T) {
		productRepo := new(MockProductRepository)
		categoryRepo := new(MockCategoryRepository)
		svc := newTestService(productRepo, categoryRepo, new(MockSubcategoryRepository))

		categoryRepo.On("GetByName", ctx, "Tools").
			Return(&model.Category{ID: "cat-1", Name: "Tools"}, nil)
		productRepo.On("Create", ctx, mock.Anything).Return(model.ErrDuplicateName)

		product, err := svc.CreateProduct(ctx, &model.CreateProductInput{
			Name:     "Widget",
			Price:    floatPtr(9.99),
			Category: "Tools",
		})
		assert.Nil(t, product)
		assert.True(t, model.IsConflict(err))
	})
}

func TestCatalogService_UpdateProduct(t *testing.T) {
	ctx := context.Background()

	t.Run("Empty patch is a no-op update", func(t *testing.T) {
		productRepo := new(MockProductRepository)
		svc := newTestService(productRepo, new(MockCategoryRepository), new(MockSubcategoryRepository))

		productRepo.On("GetByID", ctx, "p1").
			Return(&model.Product{ID: "p1", Name: "Widget", Price: 9.99}, nil)

		product, err := svc.UpdateProduct(ctx, "p1", &model.UpdateProductInput{})
		require.NoError(t, err)
		assert.Equal(t, "Widget", product.Name)
		assert.Equal(t, 9.99, product.Price)
		productRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Empty patch on unknown id is still not found", func(t *testing.T) {
		productRepo := new(MockProductRepository)
		svc := newTestService(productRepo, new(MockCategoryRepository), new(MockSubcategoryRepository))

		productRepo.On("GetByID", ctx, "missing").Return(nil, nil)

		_, err := svc.UpdateProduct(ctx, "missing", &model.UpdateProductInput{})
		assert.ErrorIs(t, err, model.ErrProductNotFound)
		productRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Negative price is rejected before hitting storage", func(t *testing.T) {
		productRepo := new(MockProductRepository)
		svc := newTestService(productRepo, new(MockCategoryRepository), new(MockSubcategoryRepository))

		_, err := svc.UpdateProduct(ctx, "p1", &model.UpdateProductInput{Price: floatPtr(-5)})
		assert.ErrorIs(t, err, model.ErrNegativePrice)
		productRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Unknown id propagates not found", func(t *testing.T) {
		productRepo := new(MockProductRepository)
		svc := newTestService(productRepo, new(MockCategoryRepository), new(MockSubcategoryRepository))

		patch := &model.UpdateProductInput{Price: floatPtr(19.99)}
		productRepo.On("Update", ctx, "missing", patch).Return(nil, model.ErrProductNotFound)

		_, err := svc.UpdateProduct(ctx, "missing", patch)
		assert.ErrorIs(t, err, model.ErrProductNotFound)
	})

	t.Run("Partial update succeeds", func(t *testing.T) {
		productRepo := new(MockProductRepository)
		svc := newTestService(productRepo, new(MockCategoryRepository), new(MockSubcategoryRepository))

		patch := &model.UpdateProductInput{Name: strPtr("Renamed")}
		productRepo.On("Update", ctx, "p1", patch).
			Return(&model.Product{ID: "p1", Name: "Renamed", Price: 9.99}, nil)

		product, err := svc.UpdateProduct(ctx, "p1", patch)
		require.NoError(t, err)
		assert.Equal(t, "Renamed", product.Name)
		assert.Equal(t, 9.99, product.Price)
	})
}

func TestCatalogService_DeleteProduct(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		productRepo := new(MockProductRepository)
		svc := newTestService(productRepo, new(MockCategoryRepository), new(MockSubcategoryRepository))

		productRepo.On("Delete", ctx, "p1").Return(nil)

		err := svc.DeleteProduct(ctx, "p1")
		assert.NoError(t, err)
	})

	t.Run("Unknown id propagates not found", func(t *testing.T) {
		productRepo := new(MockProductRepository)
		svc := newTestService(productRepo, new(MockCategoryRepository), new(MockSubcategoryRepository))

		productRepo.On("Delete", ctx, "missing").Return(model.ErrProductNotFound)

		err := svc.DeleteProduct(ctx, "missing")
		assert.ErrorIs(t, err, model.ErrProductNotFound)
	})
}

func TestCatalogService_ListCategories(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		categoryRepo := new(MockCategoryRepository)
		svc := newTestService(new(MockProductRepository), categoryRepo, new(MockSubcategoryRepository))

		categoryRepo.On("List", ctx).Return([]model.Category{{ID: "c1", Name: "Tools"}}, nil)

		categories, err := svc.ListCategories(ctx)
		require.NoError(t, err)
		assert.Len(t, categories, 1)
	})

	t.Run("Nil result becomes empty slice", func(t *testing.T) {
		categoryRepo := new(MockCategoryRepository)
		svc := newTestService(new(MockProductRepository), categoryRepo, new(MockSubcategoryRepository))

		categoryRepo.On("List", ctx).Return([]model.Category(nil), nil)

		categories, err := svc.ListCategories(ctx)
		require.NoError(t, err)
		assert.NotNil(t, categories)
		assert.Empty(t, categories)
	})
}
