package products

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/adhilst2002-a11y/sports-shop-inventory-management-system/internal/masterdata/shared"
	"github.com/adhilst2002-a11y/sports-shop-inventory-management-system/internal/platform/db"
)

const selectColumns = `id, name, sku, category, description, unit_price, stock_quantity, low_stock_threshold, supplier_id, created_at, updated_at`

type Repository interface {
	List(ctx context.Context, filters shared.ListFilters) ([]Product, int, error)
	Get(ctx context.Context, id int64) (Product, error)
	Create(ctx context.Context, product Product) (Product, error)
	Update(ctx context.Context, id int64, product Product) error
	Delete(ctx context.Context, id int64) error
}

type repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) Repository {
	return &repository{db: db}
}

func (r *repository) List(ctx context.Context, filters shared.ListFilters) ([]Product, int, error) {
	query := `SELECT ` + selectColumns + ` FROM products WHERE 1=1`
	args := []interface{}{}
	argCount := 0

	where := ""
	if filters.Search != "" {
		argCount++
		where += ` AND (name ILIKE $` + strconv.Itoa(argCount) + ` OR sku ILIKE $` + strconv.Itoa(argCount) + `)`
		args = append(args, "%"+filters.Search+"%")
	}
	if filters.Category != nil {
		argCount++
		where += ` AND category = $` + strconv.Itoa(argCount)
		args = append(args, *filters.Category)
	}
	if filters.SupplierID != nil {
		argCount++
		where += ` AND supplier_id = $` + strconv.Itoa(argCount)
		args = append(args, *filters.SupplierID)
	}
	if filters.LowStock {
		where += ` AND stock_quantity <= low_stock_threshold`
	}
	query += where

	var total int
	countArgs := make([]interface{}, len(args))
	copy(countArgs, args)
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM products WHERE 1=1`+where, countArgs...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query += " ORDER BY " + sortOrder(filters.SortBy, filters.SortDir)

	if filters.Limit > 0 {
		argCount++
		query += ` LIMIT $` + strconv.Itoa(argCount)
		args = append(args, filters.Limit)

		argCount++
		query += ` OFFSET $` + strconv.Itoa(argCount)
		offset := (filters.Page - 1) * filters.Limit
		if offset < 0 {
			offset = 0
		}
		args = append(args, offset)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var result []Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, 0, err
		}
		result = append(result, p)
	}
	return result, total, rows.Err()
}

func (r *repository) Get(ctx context.Context, id int64) (Product, error) {
	row := r.db.QueryRow(ctx, `SELECT `+selectColumns+` FROM products WHERE id = $1`, id)
	p, err := scanProduct(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return Product{}, shared.ErrNotFound
	}
	return p, err
}

func (r *repository) Create(ctx context.Context, product Product) (Product, error) {
	query := `INSERT INTO products (name, sku, category, description, unit_price, stock_quantity, low_stock_threshold, supplier_id, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10) RETURNING id`
	now := time.Now()
	err := r.db.QueryRow(ctx, query,
		product.Name, product.SKU, product.Category, product.Description,
		product.UnitPrice, product.StockQuantity, product.LowStockThreshold,
		product.SupplierID, now, now,
	).Scan(&product.ID)
	if err != nil {
		return Product{}, mapPgError(err)
	}
	product.CreatedAt = now
	product.UpdatedAt = now
	return product, nil
}

// Update replaces the catalog fields. Stock quantity is deliberately absent:
// only AdjustStock touches it.
func (r *repository) Update(ctx context.Context, id int64, product Product) error {
	query := `UPDATE products SET name = $1, sku = $2, category = $3, description = $4, unit_price = $5, low_stock_threshold = $6, supplier_id = $7, updated_at = $8 WHERE id = $9`
	tag, err := r.db.Exec(ctx, query,
		product.Name, product.SKU, product.Category, product.Description,
		product.UnitPrice, product.LowStockThreshold, product.SupplierID,
		time.Now(), id,
	)
	if err != nil {
		return mapPgError(err)
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Delete removes a product unless ledger rows still reference it.
func (r *repository) Delete(ctx context.Context, id int64) error {
	tx, err := r.db.BeginTx(ctx, db.TxOptions())
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	var inUse bool
	err = tx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM purchases WHERE product_id = $1)
		OR EXISTS (SELECT 1 FROM sales WHERE product_id = $1)`, id).Scan(&inUse)
	if err != nil {
		return err
	}
	if inUse {
		return shared.ErrInUse
	}

	tag, err := tx.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return mapPgError(err)
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return tx.Commit(ctx)
}

// Queryer is the executor AdjustStock runs against, satisfied by both
// *pgxpool.Pool and pgx.Tx so the ledger can call it mid-transaction.
type Queryer interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// AdjustStock applies delta to stock_quantity as a single conditional update.
// The guard keeps the quantity from ever dipping below zero even when callers
// race; rows for other products are never locked.
func AdjustStock(ctx context.Context, q Queryer, id int64, delta int64) (int64, error) {
	var newQty int64
	err := q.QueryRow(ctx, `UPDATE products
SET stock_quantity = stock_quantity + $1, updated_at = now()
WHERE id = $2 AND stock_quantity + $1 >= 0
RETURNING stock_quantity`, delta, id).Scan(&newQty)
	if errors.Is(err, pgx.ErrNoRows) {
		// Either the product is missing or the delta would go negative.
		var exists bool
		if checkErr := q.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM products WHERE id = $1)`, id).Scan(&exists); checkErr != nil {
			return 0, checkErr
		}
		if !exists {
			return 0, shared.ErrNotFound
		}
		return 0, ErrStockExhausted
	}
	if err != nil {
		return 0, err
	}
	return newQty, nil
}

// ErrStockExhausted signals an AdjustStock delta that would drive the
// quantity negative.
var ErrStockExhausted = errors.New("stock adjustment would go negative")

func scanProduct(row pgx.Row) (Product, error) {
	var p Product
	err := row.Scan(&p.ID, &p.Name, &p.SKU, &p.Category, &p.Description,
		&p.UnitPrice, &p.StockQuantity, &p.LowStockThreshold, &p.SupplierID,
		&p.CreatedAt, &p.UpdatedAt)
	return p, err
}

func mapPgError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505":
			return shared.ErrDuplicate
		case "23503":
			return shared.ErrInUse
		}
	}
	return err
}

func sortOrder(sortBy, sortDir string) string {
	dir := "ASC"
	if sortDir == shared.SortDesc {
		dir = "DESC"
	}
	switch sortBy {
	case "sku":
		return "sku " + dir
	case "name":
		return "name " + dir
	case "unit_price":
		return "unit_price " + dir
	case "stock_quantity":
		return "stock_quantity " + dir
	case "created_at":
		return "created_at " + dir
	default:
		return "name " + dir
	}
}
