package ledger

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// Purchase is an immutable stock-in ledger row.
type Purchase struct {
	ID          int64           `json:"id"`
	Reference   string          `json:"reference"`
	ProductID   int64           `json:"product_id"`
	SupplierID  int64           `json:"supplier_id"`
	Quantity    int64           `json:"quantity"`
	UnitCost    decimal.Decimal `json:"unit_cost"`
	PurchasedAt time.Time       `json:"purchased_at"`
	Notes       string          `json:"notes"`
}

// Sale is an immutable stock-out ledger row.
type Sale struct {
	ID           int64           `json:"id"`
	Reference    string          `json:"reference"`
	ProductID    int64           `json:"product_id"`
	Quantity     int64           `json:"quantity"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	SoldAt       time.Time       `json:"sold_at"`
	CustomerName string          `json:"customer_name"`
	Notes        string          `json:"notes"`
}

// PurchaseInput describes a stock-in request.
type PurchaseInput struct {
	ProductID  int64
	SupplierID int64
	Quantity   int64
	UnitCost   decimal.Decimal
	Notes      string
}

// SaleInput describes a stock-out request. UnitPrice nil means "use the
// product's current price".
type SaleInput struct {
	ProductID    int64
	Quantity     int64
	UnitPrice    *decimal.Decimal
	CustomerName string
	Notes        string
}

// ProductState is the slice of a product row the engine locks and mutates.
type ProductState struct {
	ID            int64
	UnitPrice     decimal.Decimal
	StockQuantity int64
}

// ErrProductNotFound indicates an unknown product id.
var ErrProductNotFound = errors.New("ledger: product not found")

// ErrSupplierNotFound indicates an unknown supplier id.
var ErrSupplierNotFound = errors.New("ledger: supplier not found")

// ErrInvalidQuantity indicates a quantity that is not strictly positive.
var ErrInvalidQuantity = errors.New("ledger: quantity must be > 0")

// ErrInvalidAmount indicates a negative monetary amount.
var ErrInvalidAmount = errors.New("ledger: amount must be >= 0")

// ErrInsufficientStock is the normal rejection outcome of a sale whose
// quantity exceeds the stock on hand. State is unchanged; the caller may
// resubmit with a smaller quantity.
var ErrInsufficientStock = errors.New("ledger: insufficient stock")
