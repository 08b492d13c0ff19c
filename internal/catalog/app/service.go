package app

import (
	"context"
	"errors"
	"strings"

	"github.com/dwikikusuma/storefront/internal/catalog/domain"
	"github.com/go-playground/validator/v10"
	"golang.org/x/sync/errgroup"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("not found")
)

type Service struct {
	repo      Repo
	validator *validator.Validate
}

func NewService(repo Repo) *Service {
	return &Service{
		repo:      repo,
		validator: newValidator(),
	}
}

func (s *Service) ListCategories(ctx context.Context) ([]domain.Category, error) {
	return s.repo.ListCategories(ctx)
}

func (s *Service) ListProducts(ctx context.Context, f domain.Filter) ([]domain.Product, error) {
	all, err := s.repo.ListProducts(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]domain.Product, 0, len(all))
	for _, p := range all {
		if f.Matches(p) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *Service) GetProduct(ctx context.Context, id string) (domain.Product, error) {
	if strings.TrimSpace(id) == "" {
		return domain.Product{}, ErrInvalidInput
	}
	return s.repo.GetProduct(ctx, id)
}

// Storefront loads categories and the filtered product list concurrently.
func (s *Service) Storefront(ctx context.Context, f domain.Filter) (domain.Storefront, error) {
	var out domain.Storefront

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		cats, err := s.ListCategories(ctx)
		if err != nil {
			return err
		}
		out.Categories = cats
		return nil
	})
	g.Go(func() error {
		products, err := s.ListProducts(ctx, f)
		if err != nil {
			return err
		}
		out.Products = products
		return nil
	})

	if err := g.Wait(); err != nil {
		return domain.Storefront{}, err
	}
	return out, nil
}

func (s *Service) CreateCategory(ctx context.Context, in CategoryInput) (domain.Category, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Icon = strings.TrimSpace(in.Icon)
	if err := s.validate(in); err != nil {
		return domain.Category{}, err
	}

	return s.repo.CreateCategory(ctx, domain.Category{
		Name:      in.Name,
		Icon:      in.Icon,
		SortOrder: in.SortOrder,
	})
}

func (s *Service) UpdateCategory(ctx context.Context, id string, patch CategoryPatch) (domain.Category, error) {
	if patch.Name != nil {
		trimmed := strings.TrimSpace(*patch.Name)
		patch.Name = &trimmed
	}
	if err := s.validate(patch); err != nil {
		return domain.Category{}, err
	}

	c, err := s.repo.GetCategory(ctx, id)
	if err != nil {
		return domain.Category{}, err
	}

	if patch.Name != nil {
		c.Name = *patch.Name
	}
	if patch.Icon != nil {
		c.Icon = strings.TrimSpace(*patch.Icon)
	}
	if patch.SortOrder != nil {
		c.SortOrder = *patch.SortOrder
	}

	return s.repo.UpdateCategory(ctx, c)
}

func (s *Service) DeleteCategory(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return ErrInvalidInput
	}
	return s.repo.DeleteCategory(ctx, id)
}

func (s *Service) CreateProduct(ctx context.Context, in ProductInput) (domain.Product, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.CategoryID = strings.TrimSpace(in.CategoryID)
	if err := s.validate(in); err != nil {
		return domain.Product{}, err
	}
	if err := s.checkCategory(ctx, in.CategoryID); err != nil {
		return domain.Product{}, err
	}

	active := true
	if in.IsActive != nil {
		active = *in.IsActive
	}

	return s.repo.CreateProduct(ctx, domain.Product{
		Name:        in.Name,
		Price:       in.Price,
		Image:       strings.TrimSpace(in.Image),
		CategoryID:  in.CategoryID,
		Description: strings.TrimSpace(in.Description),
		IsActive:    active,
		SortOrder:   in.SortOrder,
	})
}

func (s *Service) UpdateProduct(ctx context.Context, id string, patch ProductPatch) (domain.Product, error) {
	if patch.Name != nil {
		trimmed := strings.TrimSpace(*patch.Name)
		patch.Name = &trimmed
	}
	if err := s.validate(patch); err != nil {
		return domain.Product{}, err
	}

	p, err := s.repo.GetProduct(ctx, id)
	if err != nil {
		return domain.Product{}, err
	}

	if patch.Name != nil {
		p.Name = *patch.Name
	}
	if patch.Price != nil {
		p.Price = *patch.Price
	}
	if patch.Image != nil {
		p.Image = strings.TrimSpace(*patch.Image)
	}
	if patch.CategoryID != nil {
		cat := strings.TrimSpace(*patch.CategoryID)
		if err := s.checkCategory(ctx, cat); err != nil {
			return domain.Product{}, err
		}
		p.CategoryID = cat
	}
	if patch.Description != nil {
		p.Description = strings.TrimSpace(*patch.Description)
	}
	if patch.IsActive != nil {
		p.IsActive = *patch.IsActive
	}
	if patch.SortOrder != nil {
		p.SortOrder = *patch.SortOrder
	}

	return s.repo.UpdateProduct(ctx, p)
}

func (s *Service) DeleteProduct(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return ErrInvalidInput
	}
	return s.repo.DeleteProduct(ctx, id)
}

func (s *Service) checkCategory(ctx context.Context, id string) error {
	if id == "" {
		return nil
	}
	_, err := s.repo.GetCategory(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return invalidField("categoryId", "unknown category")
	}
	return err
}
