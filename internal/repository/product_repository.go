package repository

import (
	"context"
	"fmt"

	"boutika/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// productRepository implements the ProductRepository interface using PostgreSQL.
type productRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewProductRepository creates a new PostgreSQL-backed product repository.
func NewProductRepository(pool *pgxpool.Pool, logger zerolog.Logger) ProductRepository {
	return &productRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "product").Logger(),
	}
}

const productColumns = "id, name, category, price, stock, description, image_url, created_at, updated_at"

func scanProduct(row pgx.Row, p *model.Product) error {
	return row.Scan(&p.ID, &p.Name, &p.Category, &p.Price, &p.Stock, &p.Description, &p.ImageURL, &p.CreatedAt, &p.UpdatedAt)
}

func (r *productRepository) queryProducts(ctx context.Context, query string, args ...any) ([]model.Product, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []model.Product
	for rows.Next() {
		var p model.Product
		if err := scanProduct(rows, &p); err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating products: %w", err)
	}

	return products, nil
}

// GetAll retrieves the full catalogue ordered by creation time descending.
func (r *productRepository) GetAll(ctx context.Context) ([]model.Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM products
		ORDER BY created_at DESC
	`

	products, err := r.queryProducts(ctx, query)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query products")
		return nil, fmt.Errorf("failed to query products: %w", err)
	}

	return products, nil
}

// GetByID retrieves a single product by its ID.
func (r *productRepository) GetByID(ctx context.Context, id string) (*model.Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM products
		WHERE id = $1
	`

	var p model.Product
	err := scanProduct(r.pool.QueryRow(ctx, query, id), &p)
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

// GetByCategory retrieves the products of one category, newest first.
func (r *productRepository) GetByCategory(ctx context.Context, category string) ([]model.Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM products
		WHERE category = $1
		ORDER BY created_at DESC
	`

	products, err := r.queryProducts(ctx, query, category)
	if err != nil {
		r.logger.Error().Err(err).Str("category", category).Msg("failed to query products by category")
		return nil, fmt.Errorf("failed to query products by category: %w", err)
	}

	return products, nil
}

// Search retrieves products whose name or description contains the query,
// case-insensitively, newest first.
func (r *productRepository) Search(ctx context.Context, search string) ([]model.Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM products
		WHERE name ILIKE '%' || $1 || '%' OR description ILIKE '%' || $1 || '%'
		ORDER BY created_at DESC
	`

	products, err := r.queryProducts(ctx, query, search)
	if err != nil {
		r.logger.Error().Err(err).Str("query", search).Msg("failed to search products")
		return nil, fmt.Errorf("failed to search products: %w", err)
	}

	return products, nil
}

// Create inserts a new product record.
func (r *productRepository) Create(ctx context.Context, p *model.Product) error {
	query := `
		INSERT INTO products (id, name, category, price, stock, description, image_url, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.pool.Exec(ctx, query,
		p.ID, p.Name, p.Category, p.Price, p.Stock, p.Description, p.ImageURL, p.CreatedAt, p.UpdatedAt)
	if err != nil {
		r.logger.Error().Err(err).Str("product_id", p.ID).Msg("failed to insert product")
		return fmt.Errorf("failed to insert product: %w", err)
	}

	return nil
}

// Update overwrites the mutable fields of an existing product.
func (r *productRepository) Update(ctx context.Context, p *model.Product) error {
	query := `
		UPDATE products
		SET name = $2, category = $3, price = $4, stock = $5, description = $6, image_url = $7, updated_at = $8
		WHERE id = $1
	`

	tag, err := r.pool.Exec(ctx, query,
		p.ID, p.Name, p.Category, p.Price, p.Stock, p.Description, p.ImageURL, p.UpdatedAt)
	if err != nil {
		r.logger.Error().Err(err).Str("product_id", p.ID).Msg("failed to update product")
		return fmt.Errorf("failed to update product: %w", err)
	}

	if tag.RowsAffected() == 0 {
		r.logger.Debug().Str("product_id", p.ID).Msg("product not found for update")
		return model.ErrProductNotFound
	}

	return nil
}

// Delete removes a product record.
func (r *productRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
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
