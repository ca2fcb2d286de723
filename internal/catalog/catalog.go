// Package catalog holds the storefront's view parameters and price sorting.
// Search and category filtering happen in SQL, one canonical implementation;
// this package only orders what the repository returned.
package catalog

import (
	"sort"

	"boutika/internal/model"
)

// Sort keys accepted by the storefront. SortNewest keeps the backend order,
// which is creation time descending.
const (
	SortNewest    = "newest"
	SortPriceLow  = "price-low"
	SortPriceHigh = "price-high"
)

// ValidSort reports whether s is a known sort key.
func ValidSort(s string) bool {
	switch s {
	case SortNewest, SortPriceLow, SortPriceHigh:
		return true
	}
	return false
}

// Query holds the three independent filter parameters of the catalogue view.
// The zero value means "everything, newest first".
//
// A non-empty search term takes precedence and the category filter is
// ignored for that pass. This mirrors the storefront's behaviour and is
// kept deliberately; whether search should instead compose with the
// category filter is a product decision, not a code one.
type Query struct {
	Search   string
	Category string
	Sort     string
}

// SortProducts returns products ordered by the given sort key. The sort is
// stable, so equal-priced products keep their relative order. An unknown or
// empty key behaves like SortNewest and leaves the slice order untouched.
func SortProducts(products []model.Product, key string) []model.Product {
	out := make([]model.Product, len(products))
	copy(out, products)

	switch key {
	case SortPriceLow:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Price < out[j].Price })
	case SortPriceHigh:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Price > out[j].Price })
	}

	return out
}
