package handler

// HandlerFunc processes a single request. A returned error is passed to the
// server's error handler, which renders it unless the response was already written.
type HandlerFunc func(ctx *Context) error

// ErrorHandler handles errors during request processing.
type ErrorHandler func(ctx *Context, err error)

// Middleware wraps handlers to add cross-cutting functionality.
type Middleware func(next HandlerFunc) HandlerFunc

// Result is an outcome produced by an endpoint handler.
// Execute sets headers, status code and writes the body into the context's response.
type Result interface {
	StatusCode() int
	Execute(ctx *Context) error
}

// Endpoint pairs a route with its compiled request handler.
type Endpoint struct {
	Route   string
	Handler HandlerFunc
}

// Noop is the terminal handler of a pipeline. It does nothing.
func Noop(*Context) error {
	return nil
}
