package main

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/pipeline/app"
	"github.com/dmitrymomot/pipeline/core/handler"
	"github.com/dmitrymomot/pipeline/core/logger"
	"github.com/dmitrymomot/pipeline/core/response"
	"github.com/dmitrymomot/pipeline/core/server"
)

func TestRoutes(t *testing.T) {
	t.Parallel()

	cfg := app.Config{AppName: "pipeline <demo>", Server: server.DefaultConfig()}
	a, err := app.NewWithConfig(cfg, app.WithLogger(logger.Nop()))
	require.NoError(t, err)

	a.UseRouting()
	a.UseEndpoints()
	registerRoutes(a, func() time.Time {
		return time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC)
	})
	h := a.Handler()

	tests := []struct {
		target string
		status int
		body   string
	}{
		{"/", http.StatusOK, "Hello world!"},
		{"/bye", http.StatusOK, "Bye world!"},
		{"/hello?name=Ada", http.StatusOK, "Hello Ada!"},
		{"/hello", http.StatusOK, "Hello !"},
		{"/age?year=2000", http.StatusOK, "You are 25 years old!"},
		{"/age", http.StatusOK, "You are 2025 years old!"},
		{"/age?year=abc", http.StatusBadRequest, "Bad Request"},
		{"/does-not-exist", http.StatusNotFound, "Not found!"},
	}

	for _, tt := range tests {
		t.Run(tt.target, func(t *testing.T) {
			w := httptest.NewRecorder()
			ctx := handler.NewContext(w, httptest.NewRequest(http.MethodGet, tt.target, nil))
			if err := h(ctx); err != nil {
				response.ErrorHandler(ctx, err)
			}

			assert.Equal(t, tt.status, w.Code)
			assert.Equal(t, tt.body, w.Body.String())
		})
	}

	t.Run("/about", func(t *testing.T) {
		w := httptest.NewRecorder()
		require.NoError(t, h(handler.NewContext(w, httptest.NewRequest(http.MethodGet, "/about", nil))))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
		assert.Contains(t, w.Body.String(), "<h1>pipeline &lt;demo&gt;</h1>")
		assert.Contains(t, w.Body.String(), "<code>/hello</code>")
	})
}
