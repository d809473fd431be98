package integration

import (
	"context"
	"fmt"
	"testing"
	"time"

	"catalog-api/internal/database"
	"catalog-api/internal/model"
	"catalog-api/internal/repository"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// TestDB represents a test database instance.
type TestDB struct {
	Container *postgres.PostgresContainer
	Pool      *pgxpool.Pool
	ConnStr   string
}

// SetupTestDB creates a PostgreSQL test container and connection pool.
func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()

	ctx := context.Background()

	postgresContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second)),
	)
	if err != nil {
		t.Fatalf("failed to start postgres container: %v", err)
	}

	connStr, err := postgresContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("failed to get connection string: %v", err)
	}

	poolConfig, err := pgxpool.ParseConfig(connStr)
	if err != nil {
		t.Fatalf("failed to parse connection string: %v", err)
	}
	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		t.Fatalf("failed to create connection pool: %v", err)
	}

	if err := pool.Ping(ctx); err != nil {
		t.Fatalf("failed to ping database: %v", err)
	}

	// Apply the same schema the server applies on startup.
	if err := database.Migrate(ctx, pool, zerolog.Nop()); err != nil {
		t.Fatalf("failed to apply schema: %v", err)
	}

	t.Cleanup(func() {
		pool.Close()
		if err := postgresContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	return &TestDB{
		Container: postgresContainer,
		Pool:      pool,
		ConnStr:   connStr,
	}
}

// SeedCatalog inserts a small catalogue directly through the repositories and
// returns the category ids keyed by name.
func SeedCatalog(t *testing.T, pool *pgxpool.Pool) map[string]string {
	t.Helper()

	ctx := context.Background()
	logger := zerolog.Nop()

	categoryRepo := repository.NewCategoryRepository(pool, logger)
	subcategoryRepo := repository.NewSubcategoryRepository(pool, logger)
	productRepo := repository.NewProductRepository(pool, logger)

	categoryIDs := make(map[string]string)
	for _, name := range []string{"Electronics", "Tools"} {
		category := &model.Category{ID: uuid.NewString(), Name: name}
		if err := categoryRepo.Create(ctx, category); err != nil {
			t.Fatalf("failed to seed category %s: %v", name, err)
		}
		categoryIDs[name] = category.ID
	}

	electronicsID := categoryIDs["Electronics"]
	subcategory := &model.Subcategory{
		ID:         uuid.NewString(),
		Name:       "Accessories",
		CategoryID: &electronicsID,
	}
	if err := subcategoryRepo.Create(ctx, subcategory); err != nil {
		t.Fatalf("failed to seed subcategory: %v", err)
	}

	toolsID := categoryIDs["Tools"]
	products := []model.Product{
		{ID: "P001", Name: "Wireless Mouse", Description: "Ergonomic wireless mouse", Price: 24.99, Currency: "USD", Stock: 12, Rating: 4.5, CategoryID: &electronicsID, SubcategoryID: &subcategory.ID},
		{ID: "P002", Name: "USB-C Hub", Description: "Seven port hub", Price: 39.99, Currency: "USD", Stock: 5, Rating: 4.0, CategoryID: &electronicsID},
		{ID: "P003", Name: "Claw Hammer", Description: "16oz steel hammer", Price: 14.50, Currency: "USD", Stock: 30, Rating: 4.2, CategoryID: &toolsID},
	}
	for i := range products {
		if err := productRepo.Create(ctx, &products[i]); err != nil {
			t.Fatalf("failed to seed product %s: %v", products[i].Name, err)
		}
	}

	return categoryIDs
}

// CleanupDB cleans all data from test tables.
func CleanupDB(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()

	ctx := context.Background()

	tables := []string{"products", "subcategories", "categories"}
	for _, table := range tables {
		_, err := pool.Exec(ctx, fmt.Sprintf("DELETE FROM %s", table))
		if err != nil {
			t.Logf("failed to clean table %s: %v", table, err)
		}
	}
}
