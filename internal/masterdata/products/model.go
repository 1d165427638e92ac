package products

import (
	"time"

	"github.com/shopspring/decimal"
)

// Category enumerates the product categories carried by the shop.
type Category string

const (
	CategoryCricket  Category = "cricket"
	CategoryFootball Category = "football"
	CategoryTennis   Category = "tennis"
	CategoryApparel  Category = "apparel"
	CategoryOther    Category = "other"
)

// Valid reports whether the category is one of the known values.
func (c Category) Valid() bool {
	switch c {
	case CategoryCricket, CategoryFootball, CategoryTennis, CategoryApparel, CategoryOther:
		return true
	}
	return false
}

// DefaultLowStockThreshold applies when a product is created without one.
const DefaultLowStockThreshold = 5

// Product represents a product entity. StockQuantity is owned by the ledger
// engine; nothing else writes it.
type Product struct {
	ID                int64           `json:"id"`
	Name              string          `json:"name"`
	SKU               string          `json:"sku"`
	Category          Category        `json:"category"`
	Description       string          `json:"description"`
	UnitPrice         decimal.Decimal `json:"unit_price"`
	StockQuantity     int64           `json:"stock_quantity"`
	LowStockThreshold int64           `json:"low_stock_threshold"`
	SupplierID        *int64          `json:"supplier_id,omitempty"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
}

// IsLowStock reports whether the stock is at or below the threshold.
func (p Product) IsLowStock() bool {
	return p.StockQuantity <= p.LowStockThreshold
}
