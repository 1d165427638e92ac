package products

import (
	"fmt"
	"strings"

	"github.com/adhilst2002-a11y/sports-shop-inventory-management-system/internal/masterdata/shared"
)

func (s *Service) validate(p Product) error {
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("%w: product name is required", shared.ErrValidation)
	}
	if strings.TrimSpace(p.SKU) == "" {
		return fmt.Errorf("%w: product SKU is required", shared.ErrValidation)
	}
	if !p.Category.Valid() {
		return fmt.Errorf("%w: unknown category %q", shared.ErrValidation, p.Category)
	}
	if p.UnitPrice.IsNegative() {
		return fmt.Errorf("%w: unit price must be >= 0", shared.ErrValidation)
	}
	if p.LowStockThreshold < 0 {
		return fmt.Errorf("%w: low stock threshold must be >= 0", shared.ErrValidation)
	}
	return nil
}
