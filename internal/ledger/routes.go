package ledger

import "github.com/go-chi/chi/v5"

func (h *Handler) MountRoutes(r chi.Router) {
	r.Post("/purchases", h.RecordPurchase)
	r.Post("/sales", h.RecordSale)
}

// MountProductQueries registers the stock queries under the products subtree.
func (h *Handler) MountProductQueries(r chi.Router) {
	r.Get("/low-stock", h.LowStock)
	r.Get("/search", h.Search)
}
