package products

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/require"

	"github.com/adhilst2002-a11y/sports-shop-inventory-management-system/internal/masterdata/shared"
)

type stubRow struct {
	scan func(dest ...any) error
}

func (r stubRow) Scan(dest ...any) error { return r.scan(dest...) }

// stubQueryer replays one scripted row per QueryRow call.
type stubQueryer struct {
	rows []stubRow
}

func (q *stubQueryer) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	row := q.rows[0]
	q.rows = q.rows[1:]
	return row
}

func TestAdjustStockReturnsNewQuantity(t *testing.T) {
	q := &stubQueryer{rows: []stubRow{
		{scan: func(dest ...any) error {
			*dest[0].(*int64) = 7
			return nil
		}},
	}}

	newQty, err := AdjustStock(context.Background(), q, 1, -3)
	require.NoError(t, err)
	require.EqualValues(t, 7, newQty)
}

func TestAdjustStockGuardRejectsNegative(t *testing.T) {
	q := &stubQueryer{rows: []stubRow{
		{scan: func(dest ...any) error { return pgx.ErrNoRows }},
		{scan: func(dest ...any) error {
			*dest[0].(*bool) = true
			return nil
		}},
	}}

	_, err := AdjustStock(context.Background(), q, 1, -50)
	require.ErrorIs(t, err, ErrStockExhausted)
}

func TestAdjustStockUnknownProduct(t *testing.T) {
	q := &stubQueryer{rows: []stubRow{
		{scan: func(dest ...any) error { return pgx.ErrNoRows }},
		{scan: func(dest ...any) error {
			*dest[0].(*bool) = false
			return nil
		}},
	}}

	_, err := AdjustStock(context.Background(), q, 42, 1)
	require.ErrorIs(t, err, shared.ErrNotFound)
}
