package model

import "time"

// CartItem is one row of the persisted cart, keyed by user rather than by
// browsing session. At most one row exists per (user, product) pair.
type CartItem struct {
	ID        string    `json:"id" db:"id"`
	UserID    string    `json:"userId" db:"user_id"`
	ProductID string    `json:"productId" db:"product_id"`
	Quantity  int       `json:"quantity" db:"quantity"`
	Product   *Product  `json:"product,omitempty" db:"-"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}
