package repository

import (
	"context"

	"boutika/internal/model"
)

// ProductRepository defines the interface for product data access operations.
type ProductRepository interface {
	// GetAll retrieves the full catalogue, newest first. The storefront
	// renders the whole set at once; there is no pagination.
	GetAll(ctx context.Context) ([]model.Product, error)

	// GetByID retrieves a single product by its ID.
	GetByID(ctx context.Context, id string) (*model.Product, error)

	// GetByCategory retrieves the products of one category, newest first.
	GetByCategory(ctx context.Context, category string) ([]model.Product, error)

	// Search retrieves products whose name or description contains the
	// query, case-insensitively.
	Search(ctx context.Context, query string) ([]model.Product, error)

	// Create inserts a new product record.
	Create(ctx context.Context, p *model.Product) error

	// Update overwrites the mutable fields of an existing product.
	// Returns model.ErrProductNotFound when no row matches.
	Update(ctx context.Context, p *model.Product) error

	// Delete removes a product record.
	// Returns model.ErrProductNotFound when no row matches.
	Delete(ctx context.Context, id string) error
}

// AnalyticsRepository defines the interface for the append-only analytics
// tables. Events and conversions are never mutated or deleted.
type AnalyticsRepository interface {
	// InsertEvent appends one analytics event. The timestamp is assigned
	// by the database, not taken from the record.
	InsertEvent(ctx context.Context, event *model.AnalyticsEvent) error

	// InsertConversion appends one conversion record, timestamped by the
	// database.
	InsertConversion(ctx context.Context, conv *model.Conversion) error

	// CountEventsByType counts events of one kind without fetching rows.
	CountEventsByType(ctx context.Context, eventType string) (int, error)

	// CountConversions counts all conversion records.
	CountConversions(ctx context.Context) (int, error)

	// RecentViewProductIDs returns the product ids of the most recent
	// product_view events, newest first, bounded by limit.
	RecentViewProductIDs(ctx context.Context, limit int) ([]string, error)
}

// CartRepository defines the persisted cart variant, keyed by user identity
// rather than by browsing session.
type CartRepository interface {
	// GetItems retrieves the user's cart rows with product snapshots.
	GetItems(ctx context.Context, userID string) ([]model.CartItem, error)

	// AddItem merges quantity units of a product into the user's cart,
	// inserting a row or incrementing the existing one.
	AddItem(ctx context.Context, userID, productID string, quantity int) (*model.CartItem, error)

	// UpdateQuantity overwrites the quantity of one cart row.
	UpdateQuantity(ctx context.Context, itemID string, quantity int) error

	// RemoveItem deletes one cart row.
	RemoveItem(ctx context.Context, itemID string) error

	// Clear deletes all of the user's cart rows.
	Clear(ctx context.Context, userID string) error
}
