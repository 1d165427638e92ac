package app

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestMiddlewareStack(t *testing.T) {
	stack := MiddlewareStack(MiddlewareConfig{Config: &Config{AppRequestTimeout: time.Second}})
	require.Len(t, stack, 6)

	handler := http.Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	for i := len(stack) - 1; i >= 0; i-- {
		handler = stack[i](handler)
	}

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/products", nil))
	require.Equal(t, http.StatusNoContent, rec.Code)
	require.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
}

func TestWriteRateLimiter(t *testing.T) {
	limiter := WriteRateLimiter(&Config{WriteRateLimit: 2, WriteRateWindow: time.Minute})
	handler := limiter(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	}))

	for i := 0; i < 2; i++ {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/sales", nil)
		req.RemoteAddr = "10.0.0.9:1234"
		handler.ServeHTTP(rec, req)
		require.Equal(t, http.StatusCreated, rec.Code)
	}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/sales", nil)
	req.RemoteAddr = "10.0.0.9:1234"
	handler.ServeHTTP(rec, req)
	require.Equal(t, http.StatusTooManyRequests, rec.Code)
}
