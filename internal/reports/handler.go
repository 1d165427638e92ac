package reports

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/adhilst2002-a11y/sports-shop-inventory-management-system/internal/platform/httpx"
)

// Handler serves the reporting endpoints.
type Handler struct {
	logger  *slog.Logger
	service *Service
}

// NewHandler constructs a Handler instance.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{logger: logger, service: service}
}

func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/totals", h.Totals)
	r.Get("/recent-sales", h.RecentSales)
	r.Get("/summary", h.Summary)
}

func (h *Handler) Totals(w http.ResponseWriter, r *http.Request) {
	rng, err := parseRange(r)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}
	totals, err := h.service.Totals(r.Context(), rng)
	if err != nil {
		h.logger.Error("report totals failed", slog.Any("error", err))
		httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
		return
	}
	httpx.JSON(w, http.StatusOK, totals)
}

func (h *Handler) RecentSales(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	sales, err := h.service.RecentSales(r.Context(), limit)
	if err != nil {
		h.logger.Error("recent sales failed", slog.Any("error", err))
		httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"sales": sales})
}

func (h *Handler) Summary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.service.DashboardSummary(r.Context())
	if err != nil {
		h.logger.Error("dashboard summary failed", slog.Any("error", err))
		httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
		return
	}
	httpx.JSON(w, http.StatusOK, summary)
}

func parseRange(r *http.Request) (DateRange, error) {
	var rng DateRange
	if v := r.URL.Query().Get("start"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			return DateRange{}, errInvalidDate("start")
		}
		rng.Start = &t
	}
	if v := r.URL.Query().Get("end"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			return DateRange{}, errInvalidDate("end")
		}
		rng.End = &t
	}
	return rng, nil
}

type errInvalidDate string

func (e errInvalidDate) Error() string {
	return string(e) + " must be a YYYY-MM-DD date"
}
