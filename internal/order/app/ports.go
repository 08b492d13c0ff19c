package app

import (
	"context"

	"github.com/dwikikusuma/storefront/internal/order/domain"
)

// Relay delivers an order to the notification relay. A nil error means the
// relay acknowledged success.
type Relay interface {
	SendOrder(ctx context.Context, p domain.Payload) error
}

// CartSource reads a session's cart. Remove takes back exactly the lines
// that were ordered.
type CartSource interface {
	Lines(ctx context.Context, sessionID string) ([]domain.CartLine, error)
	Remove(ctx context.Context, sessionID string, lines []domain.CartLine) error
}
