package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/pipeline/core/handler"
	"github.com/dmitrymomot/pipeline/core/response"
	"github.com/dmitrymomot/pipeline/middleware"
)

func TestRequestIDDefaultConfiguration(t *testing.T) {
	t.Parallel()

	var captured string
	w := serve(httptest.NewRequest(http.MethodGet, "/", nil), func(ctx *handler.Context) error {
		id, ok := middleware.GetRequestID(ctx)
		assert.True(t, ok, "request ID should be present in context")
		captured = id
		return response.NoContent().Execute(ctx)
	}, middleware.RequestID())

	assert.Equal(t, http.StatusNoContent, w.Code)
	_, err := uuid.Parse(captured)
	require.NoError(t, err, "default ID should be a UUID")
	assert.Equal(t, captured, w.Header().Get("X-Request-ID"))
}

func TestRequestIDCustomConfiguration(t *testing.T) {
	t.Parallel()

	mw := middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator:   func() string { return "generated" },
		HeaderName:  "X-Trace-ID",
		UseExisting: true,
	})

	t.Run("reuses incoming id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Trace-ID", "incoming")

		w := serve(req, text("ok"), mw)
		assert.Equal(t, "incoming", w.Header().Get("X-Trace-ID"))
	})

	t.Run("generates when missing", func(t *testing.T) {
		w := serve(httptest.NewRequest(http.MethodGet, "/", nil), text("ok"), mw)
		assert.Equal(t, "generated", w.Header().Get("X-Trace-ID"))
	})
}

func TestRequestIDPresentOnErrors(t *testing.T) {
	t.Parallel()

	w := serve(httptest.NewRequest(http.MethodGet, "/", nil), func(*handler.Context) error {
		return response.ErrNotFound
	}, middleware.RequestID())

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestRequestIDSkip(t *testing.T) {
	t.Parallel()

	mw := middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Skip: func(ctx *handler.Context) bool { return ctx.Request().URL.Path == "/health" },
	})

	w := serve(httptest.NewRequest(http.MethodGet, "/health", nil), text("ok"), mw)
	assert.Empty(t, w.Header().Get("X-Request-ID"))
}
