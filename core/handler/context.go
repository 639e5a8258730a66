package handler

import (
	"context"
	"net/http"
	"time"
)

// Context carries the request and response of one connection through the pipeline.
// It is owned by a single in-flight request and must not be shared across requests.
// All context.Context methods delegate to the request's context, so handlers can
// observe server shutdown through Done.
type Context struct {
	w        *responseWriter
	r        *http.Request
	endpoint *Endpoint
}

// NewContext creates a Context for the given response writer and request.
func NewContext(w http.ResponseWriter, r *http.Request) *Context {
	return &Context{
		w: newResponseWriter(w),
		r: r,
	}
}

// Deadline returns the time when work done on behalf of this context should be canceled.
func (c *Context) Deadline() (deadline time.Time, ok bool) {
	return c.r.Context().Deadline()
}

// Done returns a channel that's closed when work done on behalf of this context should be canceled.
func (c *Context) Done() <-chan struct{} {
	return c.r.Context().Done()
}

// Err returns a non-nil error value after Done is closed.
func (c *Context) Err() error {
	return c.r.Context().Err()
}

// Value returns the value associated with this context for key, or nil if no value is associated with key.
func (c *Context) Value(key any) any {
	return c.r.Context().Value(key)
}

// SetValue stores a value in the request's context.
func (c *Context) SetValue(key, val any) {
	ctx := context.WithValue(c.r.Context(), key, val)
	c.r = c.r.WithContext(ctx)
}

// Request returns the HTTP request associated with this context.
func (c *Context) Request() *http.Request {
	return c.r
}

// ResponseWriter returns the HTTP response writer associated with this context.
func (c *Context) ResponseWriter() http.ResponseWriter {
	return c.w
}

// SetResponseWriter replaces the response writer. Middleware that post-processes
// the body installs its own writer here and restores the previous one afterwards.
func (c *Context) SetResponseWriter(w http.ResponseWriter) {
	if rw, ok := w.(*responseWriter); ok {
		c.w = rw
		return
	}
	c.w = newResponseWriter(w)
}

// Written reports whether the response status has been sent.
func (c *Context) Written() bool {
	return c.w.Written()
}

// Status returns the status code written so far, or 0.
func (c *Context) Status() int {
	return c.w.Status()
}

// Query returns the first value of the named query string parameter.
// Missing parameters yield an empty string.
func (c *Context) Query(name string) string {
	return c.r.URL.Query().Get(name)
}

// LookupQuery returns the first value of the named query string parameter
// and whether it was present at all.
func (c *Context) LookupQuery(name string) (string, bool) {
	values, ok := c.r.URL.Query()[name]
	if !ok || len(values) == 0 {
		return "", false
	}
	return values[0], true
}

// Endpoint returns the endpoint resolved by the routing stage, if any.
func (c *Context) Endpoint() (Endpoint, bool) {
	if c.endpoint == nil {
		return Endpoint{}, false
	}
	return *c.endpoint, true
}

// SetEndpoint attaches the resolved endpoint to the request.
func (c *Context) SetEndpoint(ep Endpoint) {
	c.endpoint = &ep
}
