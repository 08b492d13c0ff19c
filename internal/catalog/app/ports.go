package app

import (
	"context"

	"github.com/dwikikusuma/storefront/internal/catalog/domain"
)

// ProductRepo lists are ordered by sort order, then name.
type ProductRepo interface {
	CreateProduct(ctx context.Context, p domain.Product) (domain.Product, error)
	GetProduct(ctx context.Context, id string) (domain.Product, error)
	ListProducts(ctx context.Context) ([]domain.Product, error)
	UpdateProduct(ctx context.Context, p domain.Product) (domain.Product, error)
	DeleteProduct(ctx context.Context, id string) error
}

type CategoryRepo interface {
	CreateCategory(ctx context.Context, c domain.Category) (domain.Category, error)
	GetCategory(ctx context.Context, id string) (domain.Category, error)
	ListCategories(ctx context.Context) ([]domain.Category, error)
	UpdateCategory(ctx context.Context, c domain.Category) (domain.Category, error)
	DeleteCategory(ctx context.Context, id string) error
}

type Repo interface {
	ProductRepo
	CategoryRepo
}
