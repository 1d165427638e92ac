package products

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/adhilst2002-a11y/sports-shop-inventory-management-system/internal/masterdata/shared"
	"github.com/adhilst2002-a11y/sports-shop-inventory-management-system/internal/platform/httpx"
)

// Handler wires HTTP endpoints for catalog product management.
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

type productRequest struct {
	Name              string          `json:"name" validate:"required"`
	SKU               string          `json:"sku" validate:"required"`
	Category          string          `json:"category"`
	Description       string          `json:"description"`
	UnitPrice         decimal.Decimal `json:"unit_price"`
	LowStockThreshold *int64          `json:"low_stock_threshold"`
	SupplierID        *int64          `json:"supplier_id"`
}

func (req productRequest) toProduct() Product {
	p := Product{
		Name:        req.Name,
		SKU:         req.SKU,
		Category:    Category(req.Category),
		Description: req.Description,
		UnitPrice:   req.UnitPrice,
		SupplierID:  req.SupplierID,
	}
	if req.LowStockThreshold != nil {
		p.LowStockThreshold = *req.LowStockThreshold
	}
	return p
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	filters := shared.ListFilters{
		Page:    queryInt(r, "page", shared.DefaultPage),
		Limit:   queryInt(r, "limit", shared.DefaultLimit),
		Search:  r.URL.Query().Get("search"),
		SortBy:  r.URL.Query().Get("sort"),
		SortDir: r.URL.Query().Get("dir"),
	}
	if c := r.URL.Query().Get("category"); c != "" {
		filters.Category = &c
	}
	if sid := r.URL.Query().Get("supplier_id"); sid != "" {
		if id, err := strconv.ParseInt(sid, 10, 64); err == nil {
			filters.SupplierID = &id
		}
	}

	result, total, err := h.service.List(r.Context(), filters)
	if err != nil {
		h.logger.Error("list products failed", slog.Any("error", err))
		httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"products": result, "total": total})
}

func (h *Handler) Show(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "invalid product id")
		return
	}
	product, err := h.service.Get(r.Context(), id)
	if err != nil {
		h.respondError(w, "get product", err)
		return
	}
	httpx.JSON(w, http.StatusOK, product)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req productRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "malformed JSON body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}
	p := req.toProduct()
	if req.LowStockThreshold == nil {
		p.LowStockThreshold = DefaultLowStockThreshold
	}
	product, err := h.service.Create(r.Context(), p)
	if err != nil {
		h.respondError(w, "create product", err)
		return
	}
	httpx.JSON(w, http.StatusCreated, product)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "invalid product id")
		return
	}
	var req productRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "malformed JSON body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}
	p := req.toProduct()
	if req.LowStockThreshold == nil {
		// An omitted threshold keeps the stored value rather than resetting it.
		current, err := h.service.Get(r.Context(), id)
		if err != nil {
			h.respondError(w, "update product", err)
			return
		}
		p.LowStockThreshold = current.LowStockThreshold
	}
	if err := h.service.Update(r.Context(), id, p); err != nil {
		h.respondError(w, "update product", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "invalid product id")
		return
	}
	if err := h.service.Delete(r.Context(), id); err != nil {
		h.respondError(w, "delete product", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) respondError(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, shared.ErrNotFound):
		httpx.Problem(w, http.StatusNotFound, "Not Found", "product not found")
	case errors.Is(err, shared.ErrInvalidID):
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "invalid product id")
	case errors.Is(err, shared.ErrDuplicate):
		httpx.Problem(w, http.StatusConflict, "Duplicate", "product SKU already exists")
	case errors.Is(err, shared.ErrInUse):
		httpx.Problem(w, http.StatusConflict, "Conflict", "product is referenced by purchases or sales")
	case errors.Is(err, shared.ErrValidation):
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
	default:
		h.logger.Error(op+" failed", slog.Any("error", err))
		httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
	}
}

func queryInt(r *http.Request, key string, fallback int) int {
	v, err := strconv.Atoi(r.URL.Query().Get(key))
	if err != nil || v < 1 {
		return fallback
	}
	return v
}
