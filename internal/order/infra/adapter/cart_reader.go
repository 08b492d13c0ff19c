package adapter

import (
	"context"

	cartapp "github.com/dwikikusuma/storefront/internal/cart/app"
	orderdomain "github.com/dwikikusuma/storefront/internal/order/domain"
)

type CartServiceReader struct {
	svc *cartapp.Service
}

func NewCartServiceReader(svc *cartapp.Service) *CartServiceReader {
	return &CartServiceReader{svc: svc}
}

func (r *CartServiceReader) Lines(ctx context.Context, sessionID string) ([]orderdomain.CartLine, error) {
	cart, err := r.svc.GetCart(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	lines := make([]orderdomain.CartLine, 0, len(cart.Items))
	for _, it := range cart.Items {
		lines = append(lines, orderdomain.CartLine{
			ProductID: it.ID,
			Name:      it.Name,
			Quantity:  it.Quantity,
			Price:     it.Price,
		})
	}
	return lines, nil
}

func (r *CartServiceReader) Remove(ctx context.Context, sessionID string, lines []orderdomain.CartLine) error {
	quantities := make(map[string]int, len(lines))
	for _, l := range lines {
		quantities[l.ProductID] += l.Quantity
	}
	_, err := r.svc.DeductItems(ctx, sessionID, quantities)
	return err
}
