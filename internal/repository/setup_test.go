package repository

import (
	"context"
	"testing"
	"time"

	"boutika/internal/model"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// setupTestDB creates a PostgreSQL testcontainer and returns a connection pool.
func setupTestDB(t *testing.T) (*pgxpool.Pool, func()) {
	ctx := context.Background()

	// Start PostgreSQL container
	pgContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("postgres"),
		postgres.WithPassword("postgres"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err)

	// Get connection string
	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	// Create connection pool
	pool, err := pgxpool.New(ctx, connStr)
	require.NoError(t, err)

	// Create schema
	createSchema(t, pool)

	// Cleanup function
	cleanup := func() {
		pool.Close()
		_ = pgContainer.Terminate(ctx)
	}

	return pool, cleanup
}

// createSchema creates the necessary database schema for testing.
func createSchema(t *testing.T, pool *pgxpool.Pool) {
	ctx := context.Background()

	schema := `
		CREATE TABLE IF NOT EXISTS products (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			category TEXT NOT NULL,
			price BIGINT NOT NULL CHECK (price >= 0),
			stock INTEGER NOT NULL CHECK (stock >= 0),
			description TEXT NOT NULL DEFAULT '',
			image_url TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);
		CREATE INDEX IF NOT EXISTS idx_products_category ON products(category);
		CREATE INDEX IF NOT EXISTS idx_products_created_at ON products(created_at DESC);

		CREATE TABLE IF NOT EXISTS analytics_events (
			id TEXT PRIMARY KEY,
			event_type TEXT NOT NULL,
			product_id TEXT,
			user_session_id TEXT NOT NULL,
			page_name TEXT NOT NULL DEFAULT '',
			timestamp TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);
		CREATE INDEX IF NOT EXISTS idx_analytics_events_type ON analytics_events(event_type);
		CREATE INDEX IF NOT EXISTS idx_analytics_events_timestamp ON analytics_events(timestamp DESC);

		CREATE TABLE IF NOT EXISTS analytics_conversions (
			id TEXT PRIMARY KEY,
			user_session_id TEXT NOT NULL,
			total_amount BIGINT NOT NULL,
			items_count INTEGER NOT NULL,
			whatsapp_clicked BOOLEAN NOT NULL DEFAULT FALSE,
			timestamp TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);

		CREATE TABLE IF NOT EXISTS cart_items (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL,
			product_id TEXT NOT NULL REFERENCES products(id) ON DELETE CASCADE,
			quantity INTEGER NOT NULL CHECK (quantity >= 1),
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			UNIQUE (user_id, product_id)
		);
	`

	_, err := pool.Exec(ctx, schema)
	require.NoError(t, err)
}

// seedProducts inserts test products into the database.
func seedProducts(t *testing.T, pool *pgxpool.Pool, products []model.Product) {
	ctx := context.Background()

	query := `
		INSERT INTO products (id, name, category, price, stock, description, image_url, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	for _, p := range products {
		_, err := pool.Exec(ctx, query,
			p.ID, p.Name, p.Category, p.Price, p.Stock, p.Description, p.ImageURL, p.CreatedAt, p.UpdatedAt)
		require.NoError(t, err)
	}
}
