package router

import (
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"github.com/dmitrymomot/pipeline/core/binder"
	"github.com/dmitrymomot/pipeline/core/handler"
	"github.com/dmitrymomot/pipeline/core/logger"
)

// Table maps exact request paths to endpoints.
// Lookups use plain string equality: no trailing-slash normalization,
// no case folding and no templated segments.
//
// Registration normally completes before the server starts; the table is
// still safe for concurrent use.
type Table struct {
	mu        sync.RWMutex
	endpoints map[string]handler.Endpoint
	logger    *slog.Logger
}

// Option configures a Table.
type Option func(*Table)

// WithLogger sets a logger for registration events.
func WithLogger(log *slog.Logger) Option {
	return func(t *Table) {
		if log != nil {
			t.logger = log
		}
	}
}

// NewTable creates an empty route table.
func NewTable(opts ...Option) *Table {
	t := &Table{
		endpoints: make(map[string]handler.Endpoint),
		logger:    logger.Nop(),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Map compiles h once and registers it under route.
// It fails when the route is malformed, already registered, or when h
// declares a parameter that cannot be bound.
func (t *Table) Map(route string, h binder.Handler) error {
	fn, err := h.Compile()
	if err != nil {
		return fmt.Errorf("route %q: %w", route, err)
	}
	return t.add(route, fn, len(h.Params()))
}

// MapFunc registers a request-shaped handler under route.
func (t *Table) MapFunc(route string, fn handler.HandlerFunc) error {
	if fn == nil {
		return fmt.Errorf("route %q: %w", route, binder.ErrNilHandler)
	}
	return t.add(route, fn, 0)
}

// MustMap is like Map but panics on error.
func (t *Table) MustMap(route string, h binder.Handler) {
	if err := t.Map(route, h); err != nil {
		panic(err)
	}
}

func (t *Table) add(route string, fn handler.HandlerFunc, params int) error {
	if route == "" || route[0] != '/' {
		return fmt.Errorf("%w: '%s'", ErrInvalidRoute, route)
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if _, ok := t.endpoints[route]; ok {
		return fmt.Errorf("%w: '%s'", ErrDuplicateRoute, route)
	}

	t.endpoints[route] = handler.Endpoint{Route: route, Handler: fn}
	t.logger.Debug("route registered",
		logger.Component("router"),
		slog.String("route", route),
		slog.Int("params", params),
	)
	return nil
}

// Lookup returns the endpoint registered for exactly path.
func (t *Table) Lookup(path string) (handler.Endpoint, bool) {
	t.mu.RLock()
	ep, ok := t.endpoints[path]
	t.mu.RUnlock()
	return ep, ok
}

// Routes returns the registered routes in sorted order.
func (t *Table) Routes() []string {
	t.mu.RLock()
	routes := make([]string, 0, len(t.endpoints))
	for route := range t.endpoints {
		routes = append(routes, route)
	}
	t.mu.RUnlock()

	slices.Sort(routes)
	return routes
}

// Len returns the number of registered routes.
func (t *Table) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.endpoints)
}
