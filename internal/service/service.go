package service

import (
	"context"
	"io"

	"boutika/internal/catalog"
	"boutika/internal/model"
)

// ImageUpload carries an admin-submitted product image towards the blob
// store.
type ImageUpload struct {
	Filename    string
	ContentType string
	Data        io.Reader
}

// ProductService defines storefront reads and admin mutations over the
// catalogue.
type ProductService interface {
	// List produces the visible product subset for the storefront's
	// filter parameters.
	List(ctx context.Context, q catalog.Query) ([]model.Product, error)

	// GetByID retrieves a single product by ID.
	GetByID(ctx context.Context, id string) (*model.Product, error)

	// Create validates the input, uploads the image and inserts the
	// record. The image is mandatory; an upload failure fails the whole
	// create and nothing is persisted.
	Create(ctx context.Context, input model.ProductInput, image *ImageUpload) (*model.Product, error)

	// Update overwrites an existing product. The image is optional; when
	// omitted the stored image URL is kept.
	Update(ctx context.Context, id string, input model.ProductInput, image *ImageUpload) (*model.Product, error)

	// Delete removes a product.
	Delete(ctx context.Context, id string) error
}

// CartView is a persisted cart with its derived totals.
type CartView struct {
	Items []model.CartItem `json:"items"`
	Total int64            `json:"total"`
	Count int              `json:"count"`
}

// CartService defines operations on the persisted per-user cart variant.
type CartService interface {
	// GetCart retrieves the user's cart with totals recomputed from the
	// current product snapshots.
	GetCart(ctx context.Context, userID string) (*CartView, error)

	// AddToCart merges quantity units of an existing product into the
	// user's cart.
	AddToCart(ctx context.Context, userID, productID string, quantity int) (*model.CartItem, error)

	// UpdateQuantity overwrites one row's quantity; zero or less removes
	// the row.
	UpdateQuantity(ctx context.Context, itemID string, quantity int) error

	// RemoveItem deletes one row; absent rows are a no-op.
	RemoveItem(ctx context.Context, itemID string) error

	// Clear empties the user's cart.
	Clear(ctx context.Context, userID string) error
}
