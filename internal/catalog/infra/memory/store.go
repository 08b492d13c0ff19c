package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/dwikikusuma/storefront/internal/catalog/app"
	"github.com/dwikikusuma/storefront/internal/catalog/domain"
	"github.com/google/uuid"
)

// Store is an in-process catalog. It backs the storefront when no database
// is configured and is the fixture for most tests.
type Store struct {
	mu         sync.RWMutex
	products   map[string]domain.Product
	categories map[string]domain.Category
	now        func() time.Time
}

func New() *Store {
	return &Store{
		products:   make(map[string]domain.Product),
		categories: make(map[string]domain.Category),
		now:        time.Now,
	}
}

// NewSeeded returns a store holding the default catalog.
func NewSeeded() *Store {
	s := New()
	s.Seed(SeedCategories(), SeedProducts())
	return s
}

func (s *Store) Seed(categories []domain.Category, products []domain.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now().UTC()
	for _, c := range categories {
		c.CreatedAt, c.UpdatedAt = now, now
		s.categories[c.ID] = c
	}
	for _, p := range products {
		p.CreatedAt, p.UpdatedAt = now, now
		s.products[p.ID] = p
	}
}

func (s *Store) CreateProduct(_ context.Context, p domain.Product) (domain.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	now := s.now().UTC()
	p.CreatedAt, p.UpdatedAt = now, now
	s.products[p.ID] = p
	return p, nil
}

func (s *Store) GetProduct(_ context.Context, id string) (domain.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.products[id]
	if !ok {
		return domain.Product{}, app.ErrNotFound
	}
	return p, nil
}

func (s *Store) ListProducts(_ context.Context) ([]domain.Product, error) {
	s.mu.RLock()
	out := make([]domain.Product, 0, len(s.products))
	for _, p := range s.products {
		out = append(out, p)
	}
	s.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].SortOrder != out[j].SortOrder {
			return out[i].SortOrder < out[j].SortOrder
		}
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (s *Store) UpdateProduct(_ context.Context, p domain.Product) (domain.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.products[p.ID]
	if !ok {
		return domain.Product{}, app.ErrNotFound
	}
	p.CreatedAt = existing.CreatedAt
	p.UpdatedAt = s.now().UTC()
	s.products[p.ID] = p
	return p, nil
}

func (s *Store) DeleteProduct(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.products[id]; !ok {
		return app.ErrNotFound
	}
	delete(s.products, id)
	return nil
}

func (s *Store) CreateCategory(_ context.Context, c domain.Category) (domain.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	now := s.now().UTC()
	c.CreatedAt, c.UpdatedAt = now, now
	s.categories[c.ID] = c
	return c, nil
}

func (s *Store) GetCategory(_ context.Context, id string) (domain.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.categories[id]
	if !ok {
		return domain.Category{}, app.ErrNotFound
	}
	return c, nil
}

func (s *Store) ListCategories(_ context.Context) ([]domain.Category, error) {
	s.mu.RLock()
	out := make([]domain.Category, 0, len(s.categories))
	for _, c := range s.categories {
		out = append(out, c)
	}
	s.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].SortOrder != out[j].SortOrder {
			return out[i].SortOrder < out[j].SortOrder
		}
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (s *Store) UpdateCategory(_ context.Context, c domain.Category) (domain.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.categories[c.ID]
	if !ok {
		return domain.Category{}, app.ErrNotFound
	}
	c.CreatedAt = existing.CreatedAt
	c.UpdatedAt = s.now().UTC()
	s.categories[c.ID] = c
	return c, nil
}

// DeleteCategory detaches the category's products rather than deleting them.
func (s *Store) DeleteCategory(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.categories[id]; !ok {
		return app.ErrNotFound
	}
	delete(s.categories, id)

	for pid, p := range s.products {
		if p.CategoryID == id {
			p.CategoryID = ""
			s.products[pid] = p
		}
	}
	return nil
}
