package pipeline_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/pipeline/core/handler"
	"github.com/dmitrymomot/pipeline/core/pipeline"
)

type recorder struct {
	mu    sync.Mutex
	trace []string
}

func (r *recorder) add(s string) {
	r.mu.Lock()
	r.trace = append(r.trace, s)
	r.mu.Unlock()
}

func (r *recorder) middleware(name string) handler.Middleware {
	return func(next handler.HandlerFunc) handler.HandlerFunc {
		return func(ctx *handler.Context) error {
			r.add(name + "-pre")
			err := next(ctx)
			r.add(name + "-post")
			return err
		}
	}
}

func newContext() *handler.Context {
	return handler.NewContext(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
}

func TestBuilderOnionOrder(t *testing.T) {
	t.Parallel()

	rec := &recorder{}
	b := pipeline.New()
	b.Use(rec.middleware("A"))
	b.Use(rec.middleware("B"))
	b.Use(func(handler.HandlerFunc) handler.HandlerFunc {
		return func(*handler.Context) error {
			rec.add("handler")
			return nil
		}
	})

	require.NoError(t, b.Build()(newContext()))
	assert.Equal(t, []string{"A-pre", "B-pre", "handler", "B-post", "A-post"}, rec.trace)
}

func TestBuilderUseFunc(t *testing.T) {
	t.Parallel()

	rec := &recorder{}
	b := pipeline.New(rec.middleware("outer"))
	b.UseFunc(func(ctx *handler.Context, next handler.HandlerFunc) error {
		rec.add("inline-pre")
		defer rec.add("inline-post")
		return next(ctx)
	})

	require.NoError(t, b.Build()(newContext()))
	assert.Equal(t, []string{"outer-pre", "inline-pre", "inline-post", "outer-post"}, rec.trace)
}

func TestBuilderEmptyPipelineIsNoop(t *testing.T) {
	t.Parallel()

	w := httptest.NewRecorder()
	ctx := handler.NewContext(w, httptest.NewRequest(http.MethodGet, "/", nil))

	require.NoError(t, pipeline.New().Build()(ctx))
	assert.False(t, ctx.Written())
}

func TestBuilderBuildIsIdempotent(t *testing.T) {
	t.Parallel()

	var wraps int
	b := pipeline.New(func(next handler.HandlerFunc) handler.HandlerFunc {
		wraps++
		return next
	})

	h1 := b.Build()
	h2 := b.Build()
	require.NotNil(t, h1)
	require.NotNil(t, h2)
	assert.Equal(t, 1, wraps, "middleware must be composed only once")
	assert.True(t, b.Built())
}

func TestBuilderUseAfterBuildPanics(t *testing.T) {
	t.Parallel()

	b := pipeline.New()
	b.Build()

	assert.PanicsWithValue(t, pipeline.ErrAlreadyBuilt, func() {
		b.Use(func(next handler.HandlerFunc) handler.HandlerFunc { return next })
	})
	assert.Equal(t, 0, b.Len())
}

func TestBuilderNilMiddlewarePanics(t *testing.T) {
	t.Parallel()

	b := pipeline.New()
	assert.PanicsWithValue(t, pipeline.ErrNilMiddleware, func() { b.Use(nil) })
	assert.PanicsWithValue(t, pipeline.ErrNilMiddleware, func() { b.UseFunc(nil) })
}

func TestBuildersAreIndependent(t *testing.T) {
	t.Parallel()

	rec1, rec2 := &recorder{}, &recorder{}
	b1 := pipeline.New(rec1.middleware("one"))
	b2 := pipeline.New(rec2.middleware("two"))

	require.NoError(t, b1.Build()(newContext()))
	require.NoError(t, b2.Build()(newContext()))

	assert.Equal(t, []string{"one-pre", "one-post"}, rec1.trace)
	assert.Equal(t, []string{"two-pre", "two-post"}, rec2.trace)
	assert.Equal(t, 1, b1.Len())
	assert.Equal(t, 1, b2.Len())
}

func TestBuilderPropagatesErrors(t *testing.T) {
	t.Parallel()

	sentinel := errors.New("stage failed")
	rec := &recorder{}
	b := pipeline.New(rec.middleware("A"), func(handler.HandlerFunc) handler.HandlerFunc {
		return func(*handler.Context) error { return sentinel }
	})

	err := b.Build()(newContext())
	assert.ErrorIs(t, err, sentinel)
	assert.Equal(t, []string{"A-pre", "A-post"}, rec.trace)
}
