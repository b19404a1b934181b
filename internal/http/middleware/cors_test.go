package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCORSMiddleware(t *testing.T) {
	called := false
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.WriteHeader(http.StatusOK)
	})

	t.Run("with default origin", func(t *testing.T) {
		called = false
		req := httptest.NewRequest(http.MethodGet, "/api/templates.list", nil)
		w := httptest.NewRecorder()

		CORSMiddleware("")(next).ServeHTTP(w, req)

		assert.True(t, called)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
		assert.Equal(t, "GET, POST, OPTIONS", w.Header().Get("Access-Control-Allow-Methods"))
		assert.Contains(t, w.Header().Get("Access-Control-Allow-Headers"), "X-Owner-ID")
		assert.Empty(t, w.Header().Get("Access-Control-Allow-Credentials"))
	})

	t.Run("with custom origin", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/templates.list", nil)
		w := httptest.NewRecorder()

		CORSMiddleware("https://builder.example.com")(next).ServeHTTP(w, req)

		assert.Equal(t, "https://builder.example.com", w.Header().Get("Access-Control-Allow-Origin"))
		assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))
	})

	t.Run("with OPTIONS request", func(t *testing.T) {
		called = false
		req := httptest.NewRequest(http.MethodOptions, "/api/templates.create", nil)
		w := httptest.NewRecorder()

		CORSMiddleware("")(next).ServeHTTP(w, req)

		assert.False(t, called, "preflight must not reach the handler")
		assert.Equal(t, http.StatusOK, w.Code)
	})
}
