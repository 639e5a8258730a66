package router

import "errors"

var (
	// ErrInvalidRoute indicates a route that does not start with '/'.
	ErrInvalidRoute = errors.New("invalid route: must start with '/'")

	// ErrDuplicateRoute indicates the route is already mapped. The existing
	// endpoint is kept.
	ErrDuplicateRoute = errors.New("route already registered")
)
