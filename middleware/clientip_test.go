package middleware_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/pipeline/core/handler"
	"github.com/dmitrymomot/pipeline/middleware"
)

func TestClientIP(t *testing.T) {
	t.Parallel()

	t.Run("stores ip in context", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "192.168.1.100:54321"

		var captured string
		w := serve(req, func(ctx *handler.Context) error {
			captured, _ = middleware.GetClientIP(ctx)
			return nil
		}, middleware.ClientIP())

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "192.168.1.100", captured)
		assert.Empty(t, w.Header().Get("X-Client-IP"))
	})

	t.Run("header and proxy precedence", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		req.Header.Set("X-Forwarded-For", "203.0.113.5, 10.0.0.1")

		w := serve(req, text("ok"), middleware.ClientIPWithConfig(middleware.ClientIPConfig{
			StoreInHeader: true,
		}))

		assert.Equal(t, "203.0.113.5", w.Header().Get("X-Client-IP"))
	})

	t.Run("validation rejects with 403", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "10.0.0.1:1234"

		called := false
		w := serve(req, func(*handler.Context) error {
			called = true
			return nil
		}, middleware.ClientIPWithConfig(middleware.ClientIPConfig{
			ValidateFunc: func(_ *handler.Context, ip string) error {
				return errors.New("blocked " + ip)
			},
		}))

		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.False(t, called)
	})
}
