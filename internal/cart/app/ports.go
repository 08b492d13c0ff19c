package app

import (
	"context"

	"github.com/dwikikusuma/storefront/internal/cart/domain"
)

// CartRepo owns the live cart of every session.
type CartRepo interface {
	GetOrCreate(ctx context.Context, sessionID string) (*domain.Cart, error)
	Delete(ctx context.Context, sessionID string) error
}

// ProductReader returns ErrProductNotFound for unknown or inactive products.
type ProductReader interface {
	GetProduct(ctx context.Context, productID string) (domain.Product, error)
}
