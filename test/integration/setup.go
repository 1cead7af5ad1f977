package integration

import (
	"context"
	"fmt"
	"testing"
	"time"

	"poppes-store/internal/database"
	"poppes-store/internal/model"

	"github.com/jackc/pgx/v5/pgxpool"
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

	if err := database.EnsureSchema(ctx, pool); err != nil {
		t.Fatalf("failed to create schema: %v", err)
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

// TestCatalogue returns the products seeded by SeedProducts.
func TestCatalogue() []model.Product {
	base := time.Now().Add(-24 * time.Hour)
	return []model.Product{
		{
			ID: "P001", Name: "Pure Desi Ghee", Description: "Slow-churned clarified butter",
			Price: 449, Quantity: 15, Unit: "500 grams", InStock: true,
			Category: "dairy", CreatedAt: base,
		},
		{
			ID: "P002", Name: "Wild Forest Honey", Description: "Raw unfiltered honey",
			Price: 250, Quantity: 20, Unit: "250 grams", InStock: true,
			Category: "pantry", CreatedAt: base.Add(1 * time.Hour),
		},
		{
			ID: "P003", Name: "Turmeric Powder", Description: "Stone-ground turmeric",
			Price: 120, Quantity: 0, Unit: "100 grams", InStock: false,
			Category: "spices", CreatedAt: base.Add(2 * time.Hour),
		},
		{
			ID: "P004", Name: "Cold-Pressed Coconut Oil", Description: "Single-origin coconut oil",
			Price: 320, Quantity: 8, Unit: "500 ml", InStock: true,
			Category: "pantry", CreatedAt: base.Add(3 * time.Hour),
		},
	}
}

// SeedProducts inserts the test catalogue into the database.
func SeedProducts(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()

	ctx := context.Background()

	for _, p := range TestCatalogue() {
		_, err := pool.Exec(ctx,
			`INSERT INTO products (id, name, description, price, image, quantity, unit, in_stock, category, created_at)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
			p.ID, p.Name, p.Description, p.Price, p.Image, p.Quantity, p.Unit, p.InStock, p.Category, p.CreatedAt,
		)
		if err != nil {
			t.Fatalf("failed to seed product %s: %v", p.ID, err)
		}
	}
}

// CleanupDB cleans all data from test tables.
func CleanupDB(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()

	ctx := context.Background()

	tables := []string{"orders", "users", "products"}
	for _, table := range tables {
		_, err := pool.Exec(ctx, fmt.Sprintf("DELETE FROM %s", table))
		if err != nil {
			t.Logf("failed to clean table %s: %v", table, err)
		}
	}
}
