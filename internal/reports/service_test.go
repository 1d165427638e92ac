package reports

import (
	"context"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/adhilst2002-a11y/sports-shop-inventory-management-system/internal/ledger"
)

type mockRepo struct {
	sales        []ledger.Sale
	purchases    []ledger.Purchase
	revenueCalls int
	costCalls    int
	recentCalls  int
	recentLimit  int
	summary      Summary
}

func inRange(ts time.Time, rng DateRange) bool {
	day := ts.Truncate(24 * time.Hour)
	if rng.Start != nil && day.Before(rng.Start.Truncate(24*time.Hour)) {
		return false
	}
	if rng.End != nil && day.After(rng.End.Truncate(24*time.Hour)) {
		return false
	}
	return true
}

func (r *mockRepo) TotalSalesRevenue(ctx context.Context, rng DateRange) (decimal.Decimal, error) {
	r.revenueCalls++
	total := decimal.Zero
	for _, s := range r.sales {
		if inRange(s.SoldAt, rng) {
			total = total.Add(s.UnitPrice.Mul(decimal.NewFromInt(s.Quantity)))
		}
	}
	return total, nil
}

func (r *mockRepo) TotalPurchaseCost(ctx context.Context, rng DateRange) (decimal.Decimal, error) {
	r.costCalls++
	total := decimal.Zero
	for _, p := range r.purchases {
		if inRange(p.PurchasedAt, rng) {
			total = total.Add(p.UnitCost.Mul(decimal.NewFromInt(p.Quantity)))
		}
	}
	return total, nil
}

func (r *mockRepo) RecentSales(ctx context.Context, limit int) ([]ledger.Sale, error) {
	r.recentCalls++
	r.recentLimit = limit
	if len(r.sales) > limit {
		return r.sales[:limit], nil
	}
	return r.sales, nil
}

func (r *mockRepo) Summary(ctx context.Context) (Summary, error) {
	return r.summary, nil
}

func newTestService(t *testing.T, repo RepositoryPort) *Service {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewService(repo, NewCache(client, time.Minute))
}

func day(value string) time.Time {
	ts, err := time.Parse("2006-01-02", value)
	if err != nil {
		panic(err)
	}
	return ts
}

func saleOf(qty int64, price string, soldAt time.Time) ledger.Sale {
	return ledger.Sale{Quantity: qty, UnitPrice: decimal.RequireFromString(price), SoldAt: soldAt}
}

func TestTotalsExactDecimalArithmetic(t *testing.T) {
	repo := &mockRepo{
		sales: []ledger.Sale{
			saleOf(3, "19.99", day("2026-03-01")),
			saleOf(3, "19.99", day("2026-03-02")),
			saleOf(3, "19.99", day("2026-03-03")),
		},
		purchases: []ledger.Purchase{
			{Quantity: 10, UnitCost: decimal.RequireFromString("7.25"), PurchasedAt: day("2026-03-01")},
		},
	}
	svc := newTestService(t, repo)

	totals, err := svc.Totals(context.Background(), DateRange{})
	require.NoError(t, err)
	require.Equal(t, "179.91", totals.SalesRevenue.String())
	require.Equal(t, "72.5", totals.PurchaseCost.String())
}

func TestTotalsCached(t *testing.T) {
	repo := &mockRepo{sales: []ledger.Sale{saleOf(1, "10.00", day("2026-03-01"))}}
	svc := newTestService(t, repo)
	ctx := context.Background()

	first, err := svc.Totals(ctx, DateRange{})
	require.NoError(t, err)

	second, err := svc.Totals(ctx, DateRange{})
	require.NoError(t, err)

	require.Equal(t, 1, repo.revenueCalls)
	require.Equal(t, 1, repo.costCalls)
	require.True(t, first.SalesRevenue.Equal(second.SalesRevenue))
}

func TestTotalsRangeKeysAreDistinct(t *testing.T) {
	repo := &mockRepo{sales: []ledger.Sale{
		saleOf(1, "10.00", day("2026-03-01")),
		saleOf(1, "25.00", day("2026-04-01")),
	}}
	svc := newTestService(t, repo)
	ctx := context.Background()

	all, err := svc.Totals(ctx, DateRange{})
	require.NoError(t, err)
	require.Equal(t, "35", all.SalesRevenue.String())

	start, end := day("2026-03-01"), day("2026-03-31")
	march, err := svc.Totals(ctx, DateRange{Start: &start, End: &end})
	require.NoError(t, err)
	require.Equal(t, "10", march.SalesRevenue.String())
	require.Equal(t, 2, repo.revenueCalls)
}

func TestTotalsRangeIsInclusive(t *testing.T) {
	repo := &mockRepo{sales: []ledger.Sale{
		saleOf(1, "1.00", day("2026-03-01")),
		saleOf(1, "2.00", day("2026-03-15")),
		saleOf(1, "4.00", day("2026-03-31")),
		saleOf(1, "8.00", day("2026-04-01")),
	}}
	svc := NewService(repo, nil)

	start, end := day("2026-03-01"), day("2026-03-31")
	totals, err := svc.Totals(context.Background(), DateRange{Start: &start, End: &end})
	require.NoError(t, err)
	require.Equal(t, "7", totals.SalesRevenue.String())
}

func TestTotalsSurvivesRedisOutage(t *testing.T) {
	repo := &mockRepo{sales: []ledger.Sale{saleOf(1, "10.00", day("2026-03-01"))}}
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	svc := NewService(repo, NewCache(client, time.Minute))
	mr.Close()

	totals, err := svc.Totals(context.Background(), DateRange{})
	require.NoError(t, err)
	require.Equal(t, "10", totals.SalesRevenue.String())

	totals, err = svc.Totals(context.Background(), DateRange{})
	require.NoError(t, err)
	require.Equal(t, "10", totals.SalesRevenue.String())
	require.Equal(t, 2, repo.revenueCalls)
}

func TestTotalsWorksWithoutCache(t *testing.T) {
	repo := &mockRepo{}
	svc := NewService(repo, nil)

	totals, err := svc.Totals(context.Background(), DateRange{})
	require.NoError(t, err)
	require.True(t, totals.SalesRevenue.IsZero())
	require.True(t, totals.PurchaseCost.IsZero())
}

func TestRecentSalesDefaultLimit(t *testing.T) {
	repo := &mockRepo{sales: []ledger.Sale{saleOf(1, "5.00", day("2026-03-01"))}}
	svc := NewService(repo, nil)

	_, err := svc.RecentSales(context.Background(), 0)
	require.NoError(t, err)
	require.Equal(t, DefaultRecentSalesLimit, repo.recentLimit)

	_, err = svc.RecentSales(context.Background(), 5)
	require.NoError(t, err)
	require.Equal(t, 5, repo.recentLimit)
}

func TestDashboardSummary(t *testing.T) {
	repo := &mockRepo{summary: Summary{Products: 4, Suppliers: 2, StockUnits: 57, Sales: 9}}
	svc := NewService(repo, nil)

	summary, err := svc.DashboardSummary(context.Background())
	require.NoError(t, err)
	require.Equal(t, repo.summary, summary)
}
