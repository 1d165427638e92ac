package ledger

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/adhilst2002-a11y/sports-shop-inventory-management-system/internal/masterdata/products"
	"github.com/adhilst2002-a11y/sports-shop-inventory-management-system/internal/masterdata/shared"
	"github.com/adhilst2002-a11y/sports-shop-inventory-management-system/internal/platform/db"
)

// Repository persists ledger rows in PostgreSQL.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs Repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// TxRepository exposes the transactional operations used by the service.
type TxRepository interface {
	SupplierExists(ctx context.Context, supplierID int64) (bool, error)
	GetProductForUpdate(ctx context.Context, productID int64) (ProductState, error)
	AdjustStock(ctx context.Context, productID int64, delta int64) (int64, error)
	InsertPurchase(ctx context.Context, purchase Purchase) (int64, error)
	InsertSale(ctx context.Context, sale Sale) (int64, error)
}

type txRepository struct {
	tx pgx.Tx
}

// WithTx executes the callback inside a write transaction.
func (r *Repository) WithTx(ctx context.Context, fn func(context.Context, TxRepository) error) error {
	if r == nil {
		return errors.New("ledger repository not initialised")
	}
	return db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		return fn(ctx, &txRepository{tx: tx})
	})
}

// LowStockProducts lists products at or below their threshold, the emptiest
// first, names breaking ties.
func (r *Repository) LowStockProducts(ctx context.Context, limit int) ([]products.Product, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, name, sku, category, description, unit_price, stock_quantity, low_stock_threshold, supplier_id, created_at, updated_at
FROM products
WHERE stock_quantity <= low_stock_threshold
ORDER BY stock_quantity ASC, name ASC
LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanProducts(rows)
}

// SearchProducts matches name or SKU case-insensitively. An empty query
// returns the whole catalog.
func (r *Repository) SearchProducts(ctx context.Context, query string) ([]products.Product, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, name, sku, category, description, unit_price, stock_quantity, low_stock_threshold, supplier_id, created_at, updated_at
FROM products
WHERE ($1 = '' OR name ILIKE $2 OR sku ILIKE $2)
ORDER BY name ASC`, query, "%"+query+"%")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanProducts(rows)
}

func scanProducts(rows pgx.Rows) ([]products.Product, error) {
	result := []products.Product{}
	for rows.Next() {
		var p products.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.SKU, &p.Category, &p.Description,
			&p.UnitPrice, &p.StockQuantity, &p.LowStockThreshold, &p.SupplierID,
			&p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		result = append(result, p)
	}
	return result, rows.Err()
}

func (r *txRepository) SupplierExists(ctx context.Context, supplierID int64) (bool, error) {
	var exists bool
	err := r.tx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM suppliers WHERE id = $1)`, supplierID).Scan(&exists)
	return exists, err
}

// GetProductForUpdate locks the product row for the remainder of the
// transaction. Concurrent mutations of the same product serialise here;
// other products are unaffected.
func (r *txRepository) GetProductForUpdate(ctx context.Context, productID int64) (ProductState, error) {
	var state ProductState
	err := r.tx.QueryRow(ctx, `SELECT id, unit_price, stock_quantity FROM products WHERE id = $1 FOR UPDATE`, productID).
		Scan(&state.ID, &state.UnitPrice, &state.StockQuantity)
	if errors.Is(err, pgx.ErrNoRows) {
		return ProductState{}, ErrProductNotFound
	}
	return state, err
}

// AdjustStock moves the locked product's stock by delta through the catalog's
// conditional-update primitive, so the non-negativity guard holds even if a
// write ever reached the row without the lock.
func (r *txRepository) AdjustStock(ctx context.Context, productID int64, delta int64) (int64, error) {
	newQty, err := products.AdjustStock(ctx, r.tx, productID, delta)
	switch {
	case errors.Is(err, shared.ErrNotFound):
		return 0, ErrProductNotFound
	case errors.Is(err, products.ErrStockExhausted):
		return 0, ErrInsufficientStock
	}
	return newQty, err
}

func (r *txRepository) InsertPurchase(ctx context.Context, purchase Purchase) (int64, error) {
	var id int64
	err := r.tx.QueryRow(ctx, `INSERT INTO purchases (reference, product_id, supplier_id, quantity, unit_cost, purchased_at, notes)
VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`,
		purchase.Reference, purchase.ProductID, purchase.SupplierID,
		purchase.Quantity, purchase.UnitCost, purchase.PurchasedAt, purchase.Notes,
	).Scan(&id)
	return id, err
}

func (r *txRepository) InsertSale(ctx context.Context, sale Sale) (int64, error) {
	var id int64
	err := r.tx.QueryRow(ctx, `INSERT INTO sales (reference, product_id, quantity, unit_price, sold_at, customer_name, notes)
VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`,
		sale.Reference, sale.ProductID, sale.Quantity, sale.UnitPrice,
		sale.SoldAt, sale.CustomerName, sale.Notes,
	).Scan(&id)
	return id, err
}
