package app

import (
	"context"
	"errors"
	"strings"

	"github.com/dwikikusuma/storefront/internal/cart/domain"
)

var (
	ErrInvalidInput    = errors.New("invalid input")
	ErrProductNotFound = errors.New("product not found")
)

type Service struct {
	repo     CartRepo
	products ProductReader
}

func NewService(repo CartRepo, products ProductReader) *Service {
	return &Service{
		repo:     repo,
		products: products,
	}
}

// Cart returns the live cart of a session, creating an empty one on first use.
func (s *Service) Cart(ctx context.Context, sessionID string) (*domain.Cart, error) {
	if strings.TrimSpace(sessionID) == "" {
		return nil, ErrInvalidInput
	}
	return s.repo.GetOrCreate(ctx, sessionID)
}

func (s *Service) GetCart(ctx context.Context, sessionID string) (domain.Snapshot, error) {
	cart, err := s.Cart(ctx, sessionID)
	if err != nil {
		return domain.Snapshot{}, err
	}
	return cart.Snapshot(), nil
}

func (s *Service) AddItem(ctx context.Context, sessionID, productID string) (domain.Snapshot, error) {
	if strings.TrimSpace(productID) == "" {
		return domain.Snapshot{}, ErrInvalidInput
	}
	cart, err := s.Cart(ctx, sessionID)
	if err != nil {
		return domain.Snapshot{}, err
	}

	p, err := s.products.GetProduct(ctx, productID)
	if err != nil {
		return domain.Snapshot{}, err
	}

	cart.AddItem(p)
	return cart.Snapshot(), nil
}

func (s *Service) UpdateQuantity(ctx context.Context, sessionID, productID string, quantity int) (domain.Snapshot, error) {
	cart, err := s.Cart(ctx, sessionID)
	if err != nil {
		return domain.Snapshot{}, err
	}
	cart.UpdateQuantity(productID, quantity)
	return cart.Snapshot(), nil
}

func (s *Service) RemoveItem(ctx context.Context, sessionID, productID string) (domain.Snapshot, error) {
	cart, err := s.Cart(ctx, sessionID)
	if err != nil {
		return domain.Snapshot{}, err
	}
	cart.RemoveItem(productID)
	return cart.Snapshot(), nil
}

// DeductItems removes the given quantities, keyed by product id.
func (s *Service) DeductItems(ctx context.Context, sessionID string, quantities map[string]int) (domain.Snapshot, error) {
	cart, err := s.Cart(ctx, sessionID)
	if err != nil {
		return domain.Snapshot{}, err
	}
	for id, n := range quantities {
		cart.Deduct(id, n)
	}
	return cart.Snapshot(), nil
}

func (s *Service) ClearCart(ctx context.Context, sessionID string) error {
	cart, err := s.Cart(ctx, sessionID)
	if err != nil {
		return err
	}
	cart.Clear()
	return nil
}
