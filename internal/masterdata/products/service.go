package products

import (
	"context"

	"github.com/adhilst2002-a11y/sports-shop-inventory-management-system/internal/masterdata/shared"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context, filters shared.ListFilters) ([]Product, int, error) {
	return s.repo.List(ctx, filters)
}

func (s *Service) Get(ctx context.Context, id int64) (Product, error) {
	if id <= 0 {
		return Product{}, shared.ErrInvalidID
	}
	return s.repo.Get(ctx, id)
}

// Create persists a new product. Stock always starts at zero; inventory
// arrives through recorded purchases, never through catalog edits.
func (s *Service) Create(ctx context.Context, product Product) (Product, error) {
	if product.Category == "" {
		product.Category = CategoryOther
	}
	product.StockQuantity = 0
	if err := s.validate(product); err != nil {
		return Product{}, err
	}
	return s.repo.Create(ctx, product)
}

func (s *Service) Update(ctx context.Context, id int64, product Product) error {
	if id <= 0 {
		return shared.ErrInvalidID
	}
	if product.Category == "" {
		product.Category = CategoryOther
	}
	if err := s.validate(product); err != nil {
		return err
	}
	return s.repo.Update(ctx, id, product)
}

// Delete removes a product. Returns shared.ErrInUse while purchases or sales
// reference it.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return shared.ErrInvalidID
	}
	return s.repo.Delete(ctx, id)
}
