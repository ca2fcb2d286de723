// Package cart implements the session-scoped shopping cart. A cart is an
// ordered list of lines keyed by product identity; repeated adds merge into
// the existing line instead of creating a duplicate.
package cart

import "boutika/internal/model"

// Line is one cart entry: a product snapshot plus a quantity of at least 1.
// The snapshot goes stale if the admin edits the product afterwards; the
// cart never refreshes it.
type Line struct {
	Product  model.Product `json:"product"`
	Quantity int           `json:"quantity"`
}

// Cart holds the lines of a single browsing session in insertion order.
// It is not safe for concurrent use; Store serialises access per session.
type Cart struct {
	lines []Line
}

// New returns an empty cart.
func New() *Cart {
	return &Cart{}
}

// Add merges qty units of product into the cart. If a line for this product
// already exists its quantity is incremented, otherwise a new line is
// appended. A qty below 1 is treated as 1, matching an add button press.
func (c *Cart) Add(product model.Product, qty int) {
	if qty < 1 {
		qty = 1
	}

	for i := range c.lines {
		if c.lines[i].Product.ID == product.ID {
			c.lines[i].Quantity += qty
			return
		}
	}

	c.lines = append(c.lines, Line{Product: product, Quantity: qty})
}

// UpdateQuantity overwrites the quantity of the line for productID.
// A quantity of zero or less removes the line. Unknown ids are a no-op.
func (c *Cart) UpdateQuantity(productID string, qty int) {
	if qty <= 0 {
		c.Remove(productID)
		return
	}

	for i := range c.lines {
		if c.lines[i].Product.ID == productID {
			c.lines[i].Quantity = qty
			return
		}
	}
}

// Remove deletes the line for productID if present. Removing an absent
// product is not an error.
func (c *Cart) Remove(productID string) {
	for i := range c.lines {
		if c.lines[i].Product.ID == productID {
			c.lines = append(c.lines[:i], c.lines[i+1:]...)
			return
		}
	}
}

// Lines returns a copy of the cart lines in insertion order.
func (c *Cart) Lines() []Line {
	out := make([]Line, len(c.lines))
	copy(out, c.lines)
	return out
}

// Total is the sum of price times quantity over all lines. It is recomputed
// on every call; the cart is small enough that caching would only add
// invalidation bugs.
func (c *Cart) Total() int64 {
	var total int64
	for _, l := range c.lines {
		total += l.Product.Price * int64(l.Quantity)
	}
	return total
}

// Count is the sum of quantities over all lines.
func (c *Cart) Count() int {
	var count int
	for _, l := range c.lines {
		count += l.Quantity
	}
	return count
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.lines = nil
}
