package reports

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/adhilst2002-a11y/sports-shop-inventory-management-system/internal/ledger"
)

// Repository aggregates over the ledger tables. All money sums stay NUMERIC
// end to end so many small line items never drift.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs Repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

func (r *Repository) TotalSalesRevenue(ctx context.Context, rng DateRange) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.pool.QueryRow(ctx, `SELECT COALESCE(SUM(quantity * unit_price), 0)
FROM sales
WHERE ($1::date IS NULL OR sold_at::date >= $1::date)
  AND ($2::date IS NULL OR sold_at::date <= $2::date)`, rng.Start, rng.End).Scan(&total)
	return total, err
}

func (r *Repository) TotalPurchaseCost(ctx context.Context, rng DateRange) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.pool.QueryRow(ctx, `SELECT COALESCE(SUM(quantity * unit_cost), 0)
FROM purchases
WHERE ($1::date IS NULL OR purchased_at::date >= $1::date)
  AND ($2::date IS NULL OR purchased_at::date <= $2::date)`, rng.Start, rng.End).Scan(&total)
	return total, err
}

func (r *Repository) RecentSales(ctx context.Context, limit int) ([]ledger.Sale, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, reference, product_id, quantity, unit_price, sold_at, customer_name, notes
FROM sales
ORDER BY sold_at DESC, id DESC
LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	sales := []ledger.Sale{}
	for rows.Next() {
		var s ledger.Sale
		if err := rows.Scan(&s.ID, &s.Reference, &s.ProductID, &s.Quantity, &s.UnitPrice, &s.SoldAt, &s.CustomerName, &s.Notes); err != nil {
			return nil, err
		}
		sales = append(sales, s)
	}
	return sales, rows.Err()
}

func (r *Repository) Summary(ctx context.Context) (Summary, error) {
	var s Summary
	err := r.pool.QueryRow(ctx, `SELECT
	(SELECT COUNT(*) FROM products),
	(SELECT COUNT(*) FROM suppliers),
	(SELECT COALESCE(SUM(stock_quantity), 0) FROM products),
	(SELECT COUNT(*) FROM sales)`).Scan(&s.Products, &s.Suppliers, &s.StockUnits, &s.Sales)
	return s, err
}
