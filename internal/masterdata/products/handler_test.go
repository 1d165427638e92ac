package products

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"
)

func newTestRouter(repo *fakeRepo) http.Handler {
	h := NewHandler(nil, NewService(repo))
	r := chi.NewRouter()
	h.MountRoutes(r)
	return r
}

func doJSON(t *testing.T, router http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestCreateThresholdDefaulting(t *testing.T) {
	repo := newFakeRepo()
	router := newTestRouter(repo)

	rec := doJSON(t, router, http.MethodPost, "/", `{"name":"English Willow Bat","sku":"BAT-001"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	var created Product
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	require.EqualValues(t, DefaultLowStockThreshold, created.LowStockThreshold)

	rec = doJSON(t, router, http.MethodPost, "/", `{"name":"Display Net","sku":"NET-001","low_stock_threshold":0}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	require.EqualValues(t, 0, created.LowStockThreshold)
}

func TestUpdateKeepsThresholdWhenOmitted(t *testing.T) {
	repo := newFakeRepo()
	router := newTestRouter(repo)

	rec := doJSON(t, router, http.MethodPost, "/", `{"name":"Bat","sku":"BAT-001","low_stock_threshold":7}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	var created Product
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))

	rec = doJSON(t, router, http.MethodPut, "/1", `{"name":"Bat Mk II","sku":"BAT-001"}`)
	require.Equal(t, http.StatusNoContent, rec.Code)
	require.EqualValues(t, 7, repo.items[created.ID].LowStockThreshold)

	rec = doJSON(t, router, http.MethodPut, "/1", `{"name":"Bat Mk II","sku":"BAT-001","low_stock_threshold":2}`)
	require.Equal(t, http.StatusNoContent, rec.Code)
	require.EqualValues(t, 2, repo.items[created.ID].LowStockThreshold)
}
