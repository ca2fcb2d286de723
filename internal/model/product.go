package model

import "time"

// Product categories. The catalogue carries exactly three.
const (
	CategoryClothing   = "clothing"
	CategoryFootwear   = "footwear"
	CategoryAppliances = "appliances"
)

// CategoryAll is the pseudo-category meaning "no category filter".
const CategoryAll = "all"

// ValidCategory reports whether c is one of the known product categories.
func ValidCategory(c string) bool {
	switch c {
	case CategoryClothing, CategoryFootwear, CategoryAppliances:
		return true
	}
	return false
}

// Product represents a catalogue product. Prices are whole FCFA units;
// the currency has no minor unit.
type Product struct {
	ID          string    `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Category    string    `json:"category" db:"category"`
	Price       int64     `json:"price" db:"price"`
	Stock       int       `json:"stock" db:"stock"`
	Description string    `json:"description" db:"description"`
	ImageURL    string    `json:"imageUrl" db:"image_url"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt" db:"updated_at"`
}

// ProductInput carries the admin form fields for a product create or update.
// The image itself travels separately as a multipart file.
type ProductInput struct {
	Name        string `json:"name"`
	Category    string `json:"category"`
	Price       int64  `json:"price"`
	Stock       int    `json:"stock"`
	Description string `json:"description"`
}

// Validate checks the form fields before any storage call is made.
func (in *ProductInput) Validate() error {
	if in.Name == "" {
		return NewDomainError(ErrCodeMissingField, "Product name is required")
	}
	if !ValidCategory(in.Category) {
		return ErrInvalidCategory
	}
	if in.Price < 0 {
		return ErrInvalidPrice
	}
	if in.Stock < 0 {
		return ErrInvalidStock
	}
	return nil
}
