package ledger

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/adhilst2002-a11y/sports-shop-inventory-management-system/internal/platform/httpx"
)

// Handler wires HTTP endpoints for recording purchases and sales and for the
// stock queries the dashboard consumes.
type Handler struct {
	logger   *slog.Logger
	service  *Service
	validate *validator.Validate
}

// NewHandler constructs a Handler instance.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{logger: logger, service: service, validate: validator.New()}
}

type purchaseRequest struct {
	ProductID  int64           `json:"product_id" validate:"required"`
	SupplierID int64           `json:"supplier_id" validate:"required"`
	Quantity   int64           `json:"quantity" validate:"required"`
	UnitCost   decimal.Decimal `json:"unit_cost"`
	Notes      string          `json:"notes"`
}

type saleRequest struct {
	ProductID    int64            `json:"product_id" validate:"required"`
	Quantity     int64            `json:"quantity" validate:"required"`
	UnitPrice    *decimal.Decimal `json:"unit_price"`
	CustomerName string           `json:"customer_name"`
	Notes        string           `json:"notes"`
}

func (h *Handler) RecordPurchase(w http.ResponseWriter, r *http.Request) {
	var req purchaseRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "malformed JSON body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}
	purchase, err := h.service.RecordPurchase(r.Context(), PurchaseInput{
		ProductID:  req.ProductID,
		SupplierID: req.SupplierID,
		Quantity:   req.Quantity,
		UnitCost:   req.UnitCost,
		Notes:      req.Notes,
	})
	if err != nil {
		h.respondError(w, "record purchase", err)
		return
	}
	httpx.JSON(w, http.StatusCreated, purchase)
}

func (h *Handler) RecordSale(w http.ResponseWriter, r *http.Request) {
	var req saleRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "malformed JSON body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}
	sale, err := h.service.RecordSale(r.Context(), SaleInput{
		ProductID:    req.ProductID,
		Quantity:     req.Quantity,
		UnitPrice:    req.UnitPrice,
		CustomerName: req.CustomerName,
		Notes:        req.Notes,
	})
	if err != nil {
		h.respondError(w, "record sale", err)
		return
	}
	httpx.JSON(w, http.StatusCreated, sale)
}

func (h *Handler) LowStock(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	result, err := h.service.LowStockProducts(r.Context(), limit)
	if err != nil {
		h.logger.Error("low stock query failed", slog.Any("error", err))
		httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"products": result})
}

func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.SearchProducts(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		h.logger.Error("product search failed", slog.Any("error", err))
		httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"products": result})
}

func (h *Handler) respondError(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, ErrProductNotFound):
		httpx.Problem(w, http.StatusNotFound, "Not Found", "product not found")
	case errors.Is(err, ErrSupplierNotFound):
		httpx.Problem(w, http.StatusNotFound, "Not Found", "supplier not found")
	case errors.Is(err, ErrInvalidQuantity):
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "quantity must be greater than zero")
	case errors.Is(err, ErrInvalidAmount):
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "amount must not be negative")
	case errors.Is(err, ErrInsufficientStock):
		httpx.Problem(w, http.StatusConflict, "Insufficient Stock", "not enough stock to complete the sale")
	default:
		h.logger.Error(op+" failed", slog.Any("error", err))
		httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
	}
}
