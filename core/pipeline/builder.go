package pipeline

import (
	"errors"
	"sync"

	"github.com/dmitrymomot/pipeline/core/handler"
)

var (
	// ErrAlreadyBuilt is the panic value of Use once Build has been called.
	ErrAlreadyBuilt = errors.New("pipeline: middleware must be registered before Build")

	// ErrNilMiddleware is the panic value of Use when given a nil middleware.
	ErrNilMiddleware = errors.New("pipeline: nil middleware")
)

// Builder collects middleware in registration order and composes them into a
// single request handler. Each Builder owns its list, so several pipelines can
// coexist. The composed handler is built once and reused for every request.
type Builder struct {
	mu          sync.Mutex
	middlewares []handler.Middleware
	built       handler.HandlerFunc
}

// New creates an empty pipeline builder.
func New(middlewares ...handler.Middleware) *Builder {
	b := &Builder{}
	b.Use(middlewares...)
	return b
}

// Use appends middleware to the pipeline.
// It panics after Build has been called or when a middleware is nil.
func (b *Builder) Use(middlewares ...handler.Middleware) {
	for _, mw := range middlewares {
		if mw == nil {
			panic(ErrNilMiddleware)
		}
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if b.built != nil {
		panic(ErrAlreadyBuilt)
	}
	b.middlewares = append(b.middlewares, middlewares...)
}

// UseFunc appends an inline middleware that receives the context and the next handler.
func (b *Builder) UseFunc(fn func(ctx *handler.Context, next handler.HandlerFunc) error) {
	if fn == nil {
		panic(ErrNilMiddleware)
	}
	b.Use(func(next handler.HandlerFunc) handler.HandlerFunc {
		return func(ctx *handler.Context) error {
			return fn(ctx, next)
		}
	})
}

// Build composes the middleware around a terminal no-op handler.
// The first registered middleware is the outermost one: its code before next
// runs first and its code after next runs last.
// Build is idempotent; later calls return the handler built by the first one.
func (b *Builder) Build() handler.HandlerFunc {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.built == nil {
		b.built = chain(b.middlewares, handler.Noop)
	}
	return b.built
}

// Built reports whether Build has been called.
func (b *Builder) Built() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.built != nil
}

// Len returns the number of registered middleware.
func (b *Builder) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.middlewares)
}

// chain builds a single handler from a middleware stack and endpoint.
func chain(middlewares []handler.Middleware, endpoint handler.HandlerFunc) handler.HandlerFunc {
	h := endpoint

	// Wrap in reverse order so the first middleware runs first.
	for i := len(middlewares) - 1; i >= 0; i-- {
		h = middlewares[i](h)
	}

	return h
}
