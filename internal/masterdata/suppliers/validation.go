package suppliers

import (
	"fmt"
	"strings"

	"github.com/adhilst2002-a11y/sports-shop-inventory-management-system/internal/masterdata/shared"
)

func (s *Service) validate(sup Supplier) error {
	if strings.TrimSpace(sup.Name) == "" {
		return fmt.Errorf("%w: supplier name is required", shared.ErrValidation)
	}
	return nil
}
