package ledger

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func newTestRouter(repo *memoryRepo) http.Handler {
	handler := NewHandler(nil, NewService(repo))
	r := chi.NewRouter()
	handler.MountRoutes(r)
	r.Route("/products", func(pr chi.Router) {
		handler.MountProductQueries(pr)
	})
	return r
}

func postJSON(t *testing.T, router http.Handler, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestRecordSaleEndpoint(t *testing.T) {
	repo := newMemoryRepo()
	seedBat(repo, 10)
	router := newTestRouter(repo)

	rec := postJSON(t, router, "/sales", `{"product_id":1,"quantity":2,"customer_name":"Walk-in"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	var sale Sale
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &sale))
	require.True(t, sale.UnitPrice.Equal(decimal.RequireFromString("149.99")))
	require.EqualValues(t, 8, repo.products[1].StockQuantity)
}

func TestRecordSaleEndpointInsufficientStock(t *testing.T) {
	repo := newMemoryRepo()
	seedBat(repo, 3)
	router := newTestRouter(repo)

	rec := postJSON(t, router, "/sales", `{"product_id":1,"quantity":50}`)
	require.Equal(t, http.StatusConflict, rec.Code)
	require.Contains(t, rec.Body.String(), "Insufficient Stock")
	require.EqualValues(t, 3, repo.products[1].StockQuantity)
}

func TestRecordPurchaseEndpointValidation(t *testing.T) {
	repo := newMemoryRepo()
	seedBat(repo, 0)
	router := newTestRouter(repo)

	rec := postJSON(t, router, "/purchases", `{"supplier_id":1,"quantity":5}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = postJSON(t, router, "/purchases", `not json`)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = postJSON(t, router, "/purchases", `{"product_id":1,"supplier_id":7,"quantity":5,"unit_cost":"10.00"}`)
	require.Equal(t, http.StatusNotFound, rec.Code)

	rec = postJSON(t, router, "/purchases", `{"product_id":1,"supplier_id":1,"quantity":5,"unit_cost":"10.00"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	require.EqualValues(t, 5, repo.products[1].StockQuantity)
}

func TestLowStockEndpoint(t *testing.T) {
	repo := newMemoryRepo()
	seedBat(repo, 2)
	router := newTestRouter(repo)

	req := httptest.NewRequest(http.MethodGet, "/products/low-stock", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "BAT-001")
}
