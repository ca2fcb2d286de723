package service

import (
	"context"
	"fmt"

	"boutika/internal/model"
	"boutika/internal/repository"

	"github.com/rs/zerolog"
)

// cartService implements CartService over the persisted per-user cart.
type cartService struct {
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
	logger      zerolog.Logger
}

// NewCartService creates a new persisted-cart service.
func NewCartService(
	cartRepo repository.CartRepository,
	productRepo repository.ProductRepository,
	logger zerolog.Logger,
) CartService {
	return &cartService{
		cartRepo:    cartRepo,
		productRepo: productRepo,
		logger:      logger.With().Str("service", "cart").Logger(),
	}
}

// GetCart retrieves the user's cart with totals recomputed on every read.
func (s *cartService) GetCart(ctx context.Context, userID string) (*CartView, error) {
	items, err := s.cartRepo.GetItems(ctx, userID)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", userID).Msg("failed to get cart")
		return nil, fmt.Errorf("failed to get cart: %w", err)
	}

	view := &CartView{Items: items}
	if view.Items == nil {
		view.Items = []model.CartItem{}
	}
	for _, item := range items {
		if item.Product != nil {
			view.Total += item.Product.Price * int64(item.Quantity)
		}
		view.Count += item.Quantity
	}

	return view, nil
}

// AddToCart merges quantity units of an existing product into the user's
// cart. Unknown products are rejected before touching the cart table.
func (s *cartService) AddToCart(ctx context.Context, userID, productID string, quantity int) (*model.CartItem, error) {
	if quantity < 1 {
		return nil, model.ErrInvalidQuantity
	}

	product, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		s.logger.Error().Err(err).Str("product_id", productID).Msg("failed to verify product for cart add")
		return nil, fmt.Errorf("failed to verify product: %w", err)
	}
	if product == nil {
		return nil, model.ErrProductNotFound
	}

	item, err := s.cartRepo.AddItem(ctx, userID, productID, quantity)
	if err != nil {
		s.logger.Error().Err(err).
			Str("user_id", userID).
			Str("product_id", productID).
			Msg("failed to add cart item")
		return nil, fmt.Errorf("failed to add cart item: %w", err)
	}

	item.Product = product

	s.logger.Debug().
		Str("user_id", userID).
		Str("product_id", productID).
		Int("quantity", item.Quantity).
		Msg("cart item merged")

	return item, nil
}

// UpdateQuantity overwrites one row's quantity; zero or less removes it.
func (s *cartService) UpdateQuantity(ctx context.Context, itemID string, quantity int) error {
	if err := s.cartRepo.UpdateQuantity(ctx, itemID, quantity); err != nil {
		s.logger.Error().Err(err).Str("item_id", itemID).Msg("failed to update cart quantity")
		return fmt.Errorf("failed to update cart quantity: %w", err)
	}
	return nil
}

// RemoveItem deletes one row; absent rows are a no-op.
func (s *cartService) RemoveItem(ctx context.Context, itemID string) error {
	if err := s.cartRepo.RemoveItem(ctx, itemID); err != nil {
		s.logger.Error().Err(err).Str("item_id", itemID).Msg("failed to remove cart item")
		return fmt.Errorf("failed to remove cart item: %w", err)
	}
	return nil
}

// Clear empties the user's cart.
func (s *cartService) Clear(ctx context.Context, userID string) error {
	if err := s.cartRepo.Clear(ctx, userID); err != nil {
		s.logger.Error().Err(err).Str("user_id", userID).Msg("failed to clear cart")
		return fmt.Errorf("failed to clear cart: %w", err)
	}
	return nil
}
