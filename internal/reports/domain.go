package reports

import (
	"time"

	"github.com/shopspring/decimal"
)

// DateRange filters aggregates by creation date, both ends inclusive. Nil
// means unbounded.
type DateRange struct {
	Start *time.Time
	End   *time.Time
}

// Totals carries the period-aggregated money figures.
type Totals struct {
	SalesRevenue decimal.Decimal `json:"sales_revenue"`
	PurchaseCost decimal.Decimal `json:"purchase_cost"`
}

// Summary is the dashboard headline block.
type Summary struct {
	Products   int64 `json:"products"`
	Suppliers  int64 `json:"suppliers"`
	StockUnits int64 `json:"stock_units"`
	Sales      int64 `json:"sales"`
}

// DefaultRecentSalesLimit caps the recent-sales listing when the caller
// passes none.
const DefaultRecentSalesLimit = 20
