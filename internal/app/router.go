package app

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/adhilst2002-a11y/sports-shop-inventory-management-system/internal/ledger"
	"github.com/adhilst2002-a11y/sports-shop-inventory-management-system/internal/masterdata/products"
	"github.com/adhilst2002-a11y/sports-shop-inventory-management-system/internal/masterdata/suppliers"
	"github.com/adhilst2002-a11y/sports-shop-inventory-management-system/internal/platform/httpx"
	"github.com/adhilst2002-a11y/sports-shop-inventory-management-system/internal/reports"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger          *slog.Logger
	Config          *Config
	SupplierHandler *suppliers.Handler
	ProductHandler  *products.Handler
	LedgerHandler   *ledger.Handler
	ReportsHandler  *reports.Handler
	Pool            *pgxpool.Pool
}

// NewRouter constructs the chi.Router with application defaults.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Logger: params.Logger,
		Config: params.Config,
	}) {
		r.Use(mw)
	}

	r.Get("/healthz", func(w http.ResponseWriter, req *http.Request) {
		if params.Pool != nil {
			if err := params.Pool.Ping(req.Context()); err != nil {
				httpx.Problem(w, http.StatusServiceUnavailable, "Unavailable", "database unreachable")
				return
			}
		}
		httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api", func(api chi.Router) {
		api.Route("/suppliers", func(sr chi.Router) {
			params.SupplierHandler.MountRoutes(sr)
		})
		api.Route("/products", func(pr chi.Router) {
			params.LedgerHandler.MountProductQueries(pr)
			params.ProductHandler.MountRoutes(pr)
		})
		api.Group(func(wr chi.Router) {
			wr.Use(WriteRateLimiter(params.Config))
			params.LedgerHandler.MountRoutes(wr)
		})
		api.Route("/reports", func(rr chi.Router) {
			params.ReportsHandler.MountRoutes(rr)
		})
	})

	return r
}
