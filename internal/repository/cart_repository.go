package repository

import (
	"context"
	"fmt"
	"time"

	"boutika/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// cartRepository implements the persisted per-user cart using PostgreSQL.
type cartRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewCartRepository creates a new PostgreSQL-backed cart repository.
func NewCartRepository(pool *pgxpool.Pool, logger zerolog.Logger) CartRepository {
	return &cartRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "cart").Logger(),
	}
}

// GetItems retrieves the user's cart rows joined to their product snapshots,
// oldest row first.
func (r *cartRepository) GetItems(ctx context.Context, userID string) ([]model.CartItem, error) {
	query := `
		SELECT c.id, c.user_id, c.product_id, c.quantity, c.created_at,
		       p.id, p.name, p.category, p.price, p.stock, p.description, p.image_url, p.created_at, p.updated_at
		FROM cart_items c
		JOIN products p ON p.id = c.product_id
		WHERE c.user_id = $1
		ORDER BY c.created_at ASC
	`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		r.logger.Error().Err(err).Str("user_id", userID).Msg("failed to query cart items")
		return nil, fmt.Errorf("failed to query cart items: %w", err)
	}
	defer rows.Close()

	var items []model.CartItem
	for rows.Next() {
		var item model.CartItem
		var p model.Product
		err := rows.Scan(
			&item.ID, &item.UserID, &item.ProductID, &item.Quantity, &item.CreatedAt,
			&p.ID, &p.Name, &p.Category, &p.Price, &p.Stock, &p.Description, &p.ImageURL, &p.CreatedAt, &p.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan cart item: %w", err)
		}
		item.Product = &p
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating cart items: %w", err)
	}

	return items, nil
}

// AddItem merges quantity units of a product into the user's cart. At most
// one row exists per (user, product); a repeated add increments it.
func (r *cartRepository) AddItem(ctx context.Context, userID, productID string, quantity int) (*model.CartItem, error) {
	if quantity < 1 {
		quantity = 1
	}

	var existing model.CartItem
	err := r.pool.QueryRow(ctx,
		`SELECT id, quantity FROM cart_items WHERE user_id = $1 AND product_id = $2`,
		userID, productID).Scan(&existing.ID, &existing.Quantity)

	switch err {
	case nil:
		updated := existing.Quantity + quantity
		_, err := r.pool.Exec(ctx,
			`UPDATE cart_items SET quantity = $2 WHERE id = $1`, existing.ID, updated)
		if err != nil {
			r.logger.Error().Err(err).Str("item_id", existing.ID).Msg("failed to merge cart item")
			return nil, fmt.Errorf("failed to merge cart item: %w", err)
		}
		return &model.CartItem{
			ID:        existing.ID,
			UserID:    userID,
			ProductID: productID,
			Quantity:  updated,
		}, nil

	case pgx.ErrNoRows:
		item := &model.CartItem{
			ID:        uuid.NewString(),
			UserID:    userID,
			ProductID: productID,
			Quantity:  quantity,
			CreatedAt: time.Now(),
		}
		_, err := r.pool.Exec(ctx,
			`INSERT INTO cart_items (id, user_id, product_id, quantity, created_at) VALUES ($1, $2, $3, $4, $5)`,
			item.ID, item.UserID, item.ProductID, item.Quantity, item.CreatedAt)
		if err != nil {
			r.logger.Error().Err(err).Str("user_id", userID).Str("product_id", productID).Msg("failed to insert cart item")
			return nil, fmt.Errorf("failed to insert cart item: %w", err)
		}
		return item, nil

	default:
		r.logger.Error().Err(err).Str("user_id", userID).Str("product_id", productID).Msg("failed to look up cart item")
		return nil, fmt.Errorf("failed to look up cart item: %w", err)
	}
}

// UpdateQuantity overwrites the quantity of one cart row. A quantity of zero
// or less deletes the row instead.
func (r *cartRepository) UpdateQuantity(ctx context.Context, itemID string, quantity int) error {
	if quantity <= 0 {
		return r.RemoveItem(ctx, itemID)
	}

	_, err := r.pool.Exec(ctx, `UPDATE cart_items SET quantity = $2 WHERE id = $1`, itemID, quantity)
	if err != nil {
		r.logger.Error().Err(err).Str("item_id", itemID).Msg("failed to update cart item quantity")
		return fmt.Errorf("failed to update cart item quantity: %w", err)
	}

	return nil
}

// RemoveItem deletes one cart row; deleting an absent row is not an error.
func (r *cartRepository) RemoveItem(ctx context.Context, itemID string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM cart_items WHERE id = $1`, itemID)
	if err != nil {
		r.logger.Error().Err(err).Str("item_id", itemID).Msg("failed to remove cart item")
		return fmt.Errorf("failed to remove cart item: %w", err)
	}

	return nil
}

// Clear deletes all of the user's cart rows.
func (r *cartRepository) Clear(ctx context.Context, userID string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM cart_items WHERE user_id = $1`, userID)
	if err != nil {
		r.logger.Error().Err(err).Str("user_id", userID).Msg("failed to clear cart")
		return fmt.Errorf("failed to clear cart: %w", err)
	}

	return nil
}
