package ledger

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/adhilst2002-a11y/sports-shop-inventory-management-system/internal/masterdata/products"
)

// DefaultLowStockLimit caps low-stock listings when the caller passes none.
const DefaultLowStockLimit = 10

// RepositoryPort abstracts repository usage for the service.
type RepositoryPort interface {
	WithTx(ctx context.Context, fn func(context.Context, TxRepository) error) error
	LowStockProducts(ctx context.Context, limit int) ([]products.Product, error)
	SearchProducts(ctx context.Context, query string) ([]products.Product, error)
}

// Service is the only writer of product stock quantities. Every accepted
// purchase or sale lands as one atomic unit: the ledger row and the stock
// change commit together or not at all.
type Service struct {
	repo RepositoryPort
	now  func() time.Time
}

// NewService builds Service.
func NewService(repo RepositoryPort) *Service {
	return &Service{repo: repo, now: time.Now}
}

// RecordPurchase persists a purchase row and increments the product's stock.
func (s *Service) RecordPurchase(ctx context.Context, input PurchaseInput) (Purchase, error) {
	if input.Quantity <= 0 {
		return Purchase{}, ErrInvalidQuantity
	}
	if input.UnitCost.IsNegative() {
		return Purchase{}, ErrInvalidAmount
	}

	purchase := Purchase{
		Reference:   uuid.NewString(),
		ProductID:   input.ProductID,
		SupplierID:  input.SupplierID,
		Quantity:    input.Quantity,
		UnitCost:    input.UnitCost,
		PurchasedAt: s.now().UTC(),
		Notes:       input.Notes,
	}

	err := s.repo.WithTx(ctx, func(ctx context.Context, tx TxRepository) error {
		ok, err := tx.SupplierExists(ctx, input.SupplierID)
		if err != nil {
			return err
		}
		if !ok {
			return ErrSupplierNotFound
		}

		if _, err := tx.GetProductForUpdate(ctx, input.ProductID); err != nil {
			return err
		}

		id, err := tx.InsertPurchase(ctx, purchase)
		if err != nil {
			return err
		}
		purchase.ID = id

		_, err = tx.AdjustStock(ctx, input.ProductID, input.Quantity)
		return err
	})
	if err != nil {
		return Purchase{}, err
	}
	return purchase, nil
}

// RecordSale checks stock sufficiency and, when enough is on hand, persists
// the sale row and decrements the stock in the same transaction. A shortfall
// returns ErrInsufficientStock with no state change.
func (s *Service) RecordSale(ctx context.Context, input SaleInput) (Sale, error) {
	if input.Quantity <= 0 {
		return Sale{}, ErrInvalidQuantity
	}
	if input.UnitPrice != nil && input.UnitPrice.IsNegative() {
		return Sale{}, ErrInvalidAmount
	}

	sale := Sale{
		Reference:    uuid.NewString(),
		ProductID:    input.ProductID,
		Quantity:     input.Quantity,
		SoldAt:       s.now().UTC(),
		CustomerName: input.CustomerName,
		Notes:        input.Notes,
	}

	err := s.repo.WithTx(ctx, func(ctx context.Context, tx TxRepository) error {
		product, err := tx.GetProductForUpdate(ctx, input.ProductID)
		if err != nil {
			return err
		}

		price := product.UnitPrice
		if input.UnitPrice != nil {
			price = *input.UnitPrice
		}
		if price.IsNegative() {
			return ErrInvalidAmount
		}

		if product.StockQuantity < input.Quantity {
			return ErrInsufficientStock
		}

		sale.UnitPrice = price
		id, err := tx.InsertSale(ctx, sale)
		if err != nil {
			return err
		}
		sale.ID = id

		_, err = tx.AdjustStock(ctx, input.ProductID, -input.Quantity)
		return err
	})
	if err != nil {
		return Sale{}, err
	}
	return sale, nil
}

// LowStockProducts lists products at or below their low-stock threshold,
// ordered by ascending stock then name, truncated to limit.
func (s *Service) LowStockProducts(ctx context.Context, limit int) ([]products.Product, error) {
	if limit <= 0 {
		limit = DefaultLowStockLimit
	}
	return s.repo.LowStockProducts(ctx, limit)
}

// SearchProducts matches products by name or SKU, case-insensitively. An
// empty query returns all products.
func (s *Service) SearchProducts(ctx context.Context, query string) ([]products.Product, error) {
	return s.repo.SearchProducts(ctx, query)
}
