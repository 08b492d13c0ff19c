package adapter

import (
	"context"
	"errors"

	cartapp "github.com/dwikikusuma/storefront/internal/cart/app"
	cartdomain "github.com/dwikikusuma/storefront/internal/cart/domain"
	catalogapp "github.com/dwikikusuma/storefront/internal/catalog/app"
)

type CatalogServiceReader struct {
	svc *catalogapp.Service
}

func NewCatalogServiceReader(svc *catalogapp.Service) *CatalogServiceReader {
	return &CatalogServiceReader{svc: svc}
}

func (r *CatalogServiceReader) GetProduct(ctx context.Context, productID string) (cartdomain.Product, error) {
	p, err := r.svc.GetProduct(ctx, productID)
	if errors.Is(err, catalogapp.ErrNotFound) || errors.Is(err, catalogapp.ErrInvalidInput) {
		return cartdomain.Product{}, cartapp.ErrProductNotFound
	}
	if err != nil {
		return cartdomain.Product{}, err
	}
	if !p.IsActive {
		return cartdomain.Product{}, cartapp.ErrProductNotFound
	}

	return cartdomain.Product{
		ID:          p.ID,
		Name:        p.Name,
		Price:       p.Price,
		Image:       p.Image,
		CategoryID:  p.CategoryID,
		Description: p.Description,
	}, nil
}
