package reports

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/singleflight"

	"github.com/adhilst2002-a11y/sports-shop-inventory-management-system/internal/ledger"
)

// RepositoryPort abstracts the aggregation queries.
type RepositoryPort interface {
	TotalSalesRevenue(ctx context.Context, rng DateRange) (decimal.Decimal, error)
	TotalPurchaseCost(ctx context.Context, rng DateRange) (decimal.Decimal, error)
	RecentSales(ctx context.Context, limit int) ([]ledger.Sale, error)
	Summary(ctx context.Context) (Summary, error)
}

// Service produces read-only aggregates over the ledger tables. Totals are
// cached for a short TTL and computed under singleflight so a burst of
// dashboard loads triggers a single query per range.
type Service struct {
	repo  RepositoryPort
	cache *Cache
	group singleflight.Group
}

// NewService builds Service. cache may be nil.
func NewService(repo RepositoryPort, cache *Cache) *Service {
	return &Service{repo: repo, cache: cache}
}

// Totals returns the sales revenue and purchase cost for the inclusive date
// range, zero when no rows match.
func (s *Service) Totals(ctx context.Context, rng DateRange) (Totals, error) {
	key := totalsKey(rng)
	v, err, _ := s.group.Do(key, func() (interface{}, error) {
		var totals Totals
		err := s.cache.FetchJSON(ctx, key, &totals, func(ctx context.Context) (interface{}, error) {
			revenue, err := s.repo.TotalSalesRevenue(ctx, rng)
			if err != nil {
				return nil, err
			}
			cost, err := s.repo.TotalPurchaseCost(ctx, rng)
			if err != nil {
				return nil, err
			}
			return Totals{SalesRevenue: revenue, PurchaseCost: cost}, nil
		})
		return totals, err
	})
	if err != nil {
		return Totals{}, err
	}
	return v.(Totals), nil
}

// TotalSalesRevenue returns the revenue component alone.
func (s *Service) TotalSalesRevenue(ctx context.Context, rng DateRange) (decimal.Decimal, error) {
	totals, err := s.Totals(ctx, rng)
	if err != nil {
		return decimal.Zero, err
	}
	return totals.SalesRevenue, nil
}

// TotalPurchaseCost returns the cost component alone.
func (s *Service) TotalPurchaseCost(ctx context.Context, rng DateRange) (decimal.Decimal, error) {
	totals, err := s.Totals(ctx, rng)
	if err != nil {
		return decimal.Zero, err
	}
	return totals.PurchaseCost, nil
}

// RecentSales lists the latest sales, newest first.
func (s *Service) RecentSales(ctx context.Context, limit int) ([]ledger.Sale, error) {
	if limit <= 0 {
		limit = DefaultRecentSalesLimit
	}
	return s.repo.RecentSales(ctx, limit)
}

// DashboardSummary returns the headline counters.
func (s *Service) DashboardSummary(ctx context.Context) (Summary, error) {
	return s.repo.Summary(ctx)
}

func totalsKey(rng DateRange) string {
	format := func(t *time.Time) string {
		if t == nil {
			return "-"
		}
		return t.Format("2006-01-02")
	}
	return fmt.Sprintf("reports:totals:%s:%s", format(rng.Start), format(rng.End))
}
