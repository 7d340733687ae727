// Package cart fronts the backend session cart and gates checkout on the
// minimum order amount.
package cart

import (
	"context"
	"fmt"

	"laundrify/config"
	"laundrify/gateway"
	"laundrify/models"
)

// BelowMinimumError blocks checkout until the cart reaches the minimum
// order amount. Recoverable: the user adds more items.
type BelowMinimumError struct {
	Minimum float64
}

func (e *BelowMinimumError) Error() string {
	return fmt.Sprintf("Minimum order amount is ₹%.0f. Please add more items to your cart.", e.Minimum)
}

// Service owns cart reads, mutations, and the checkout gate.
type Service interface {
	Get(ctx context.Context, userID string) (*models.Cart, error)
	Add(ctx context.Context, userID string, item models.CartItem) error
	UpdateQuantity(ctx context.Context, userID, itemID string, quantity int) error
	Remove(ctx context.Context, userID, itemID string) error
	Clear(ctx context.Context, userID string) error
	Checkout(ctx context.Context, userID string) (*models.Cart, error)
}

type DefaultCartService struct {
	Gateway        gateway.CartGateway
	MinOrderAmount float64
}

func NewDefaultCartService(gw gateway.CartGateway) *DefaultCartService {
	return &DefaultCartService{
		Gateway:        gw,
		MinOrderAmount: config.AppConfig.MinOrderAmount,
	}
}

func (s *DefaultCartService) Get(ctx context.Context, userID string) (*models.Cart, error) {
	return s.Gateway.Get(ctx, userID)
}

func (s *DefaultCartService) Add(ctx context.Context, userID string, item models.CartItem) error {
	if item.ServiceRef == "" || item.ItemName == "" {
		return fmt.Errorf("cart items must include a valid service and item")
	}
	if item.Quantity < 1 {
		item.Quantity = 1
	}
	return s.Gateway.Add(ctx, userID, item)
}

func (s *DefaultCartService) UpdateQuantity(ctx context.Context, userID, itemID string, quantity int) error {
	if quantity < 1 {
		return fmt.Errorf("quantity must be at least 1")
	}
	return s.Gateway.UpdateQuantity(ctx, userID, itemID, quantity)
}

func (s *DefaultCartService) Remove(ctx context.Context, userID, itemID string) error {
	return s.Gateway.Remove(ctx, userID, itemID)
}

func (s *DefaultCartService) Clear(ctx context.Context, userID string) error {
	return s.Gateway.Clear(ctx, userID)
}

// Checkout returns the cart snapshot that seeds the order form, or
// *BelowMinimumError when the total is under the minimum.
func (s *DefaultCartService) Checkout(ctx context.Context, userID string) (*models.Cart, error) {
	cart, err := s.Gateway.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if cart.Total() < s.MinOrderAmount {
		return nil, &BelowMinimumError{Minimum: s.MinOrderAmount}
	}
	return cart, nil
}
