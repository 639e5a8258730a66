package router_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/pipeline/core/binder"
	"github.com/dmitrymomot/pipeline/core/handler"
	"github.com/dmitrymomot/pipeline/core/response"
	"github.com/dmitrymomot/pipeline/core/router"
)

func textHandler(body string) binder.Handler {
	return binder.Func0(func() handler.Result {
		return response.OK(body)
	})
}

func invoke(t *testing.T, ep handler.Endpoint, target string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	ctx := handler.NewContext(w, httptest.NewRequest(http.MethodGet, target, nil))
	require.NoError(t, ep.Handler(ctx))
	return w
}

func TestTableExactLookup(t *testing.T) {
	t.Parallel()

	table := router.NewTable()
	require.NoError(t, table.Map("/", textHandler("root")))
	require.NoError(t, table.Map("/hello", textHandler("hello")))
	require.NoError(t, table.Map("/hello/world", textHandler("nested")))

	tests := []struct {
		path  string
		found bool
		body  string
	}{
		{"/", true, "root"},
		{"/hello", true, "hello"},
		{"/hello/world", true, "nested"},
		{"/hello/", false, ""},
		{"/Hello", false, ""},
		{"/hell", false, ""},
		{"/hello/world/", false, ""},
		{"", false, ""},
		{"/bye", false, ""},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			t.Parallel()

			ep, ok := table.Lookup(tt.path)
			assert.Equal(t, tt.found, ok)
			if !tt.found {
				return
			}
			assert.Equal(t, tt.path, ep.Route)
			assert.Equal(t, tt.body, invoke(t, ep, tt.path).Body.String())
		})
	}
}

func TestTableDuplicateRegistrationIsRejected(t *testing.T) {
	t.Parallel()

	// Same outcome on every run: the first registration wins, the second fails.
	for range 5 {
		table := router.NewTable()
		require.NoError(t, table.Map("/bye", textHandler("first")))

		err := table.Map("/bye", textHandler("second"))
		require.Error(t, err)
		assert.ErrorIs(t, err, router.ErrDuplicateRoute)

		err = table.MapFunc("/bye", func(*handler.Context) error { return nil })
		assert.ErrorIs(t, err, router.ErrDuplicateRoute)

		ep, ok := table.Lookup("/bye")
		require.True(t, ok)
		assert.Equal(t, "first", invoke(t, ep, "/bye").Body.String())
		assert.Equal(t, 1, table.Len())
	}
}

func TestTableInvalidRoute(t *testing.T) {
	t.Parallel()

	table := router.NewTable()
	for _, route := range []string{"", "hello", "*"} {
		err := table.Map(route, textHandler("x"))
		assert.ErrorIs(t, err, router.ErrInvalidRoute, "route %q", route)
	}
	assert.Equal(t, 0, table.Len())
}

func TestTableRejectsUnbindableHandler(t *testing.T) {
	t.Parallel()

	table := router.NewTable()
	h := binder.Func1(binder.Query[chan int]("ch"), func(chan int) handler.Result { return nil })

	err := table.Map("/chan", h)
	require.Error(t, err)
	assert.ErrorIs(t, err, binder.ErrUnsupportedParameter)

	_, ok := table.Lookup("/chan")
	assert.False(t, ok)

	assert.ErrorIs(t, table.MapFunc("/nil", nil), binder.ErrNilHandler)
}

func TestTableMustMap(t *testing.T) {
	t.Parallel()

	table := router.NewTable()
	assert.NotPanics(t, func() { table.MustMap("/", textHandler("x")) })
	assert.Panics(t, func() { table.MustMap("/", textHandler("x")) })
}

func TestTableRoutes(t *testing.T) {
	t.Parallel()

	table := router.NewTable()
	for _, route := range []string{"/hello", "/", "/bye", "/age"} {
		require.NoError(t, table.Map(route, textHandler(route)))
	}
	assert.Equal(t, []string{"/", "/age", "/bye", "/hello"}, table.Routes())
	assert.Equal(t, 4, table.Len())
}
