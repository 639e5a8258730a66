package response

import (
	"net/http"

	"github.com/dmitrymomot/pipeline/core/handler"
)

const (
	contentTypeText = "text/plain; charset=utf-8"
	contentTypeHTML = "text/html; charset=utf-8"
	contentTypeJSON = "application/json; charset=utf-8"

	notFoundMessage = "Not found!"
)

// RenderFunc writes a response. It is the building block of every Result in this package.
type RenderFunc func(w http.ResponseWriter, r *http.Request) error

type result struct {
	status int
	render RenderFunc
}

// New creates a Result with the given status code and render function.
// Use it to add result variants without touching the dispatcher.
func New(status int, render RenderFunc) handler.Result {
	if status == 0 {
		status = http.StatusOK
	}
	return result{status: status, render: render}
}

// StatusCode returns the status code the result writes.
func (res result) StatusCode() int {
	return res.status
}

// Execute writes the result into the request's response.
func (res result) Execute(ctx *handler.Context) error {
	if res.render == nil {
		ctx.ResponseWriter().WriteHeader(res.status)
		return nil
	}
	return res.render(ctx.ResponseWriter(), ctx.Request())
}

// Render executes the given result with the provided context.
// If execution fails before anything was written, it writes a 500 response.
func Render(ctx *handler.Context, res handler.Result) {
	if res == nil {
		return
	}
	if err := res.Execute(ctx); err != nil && !ctx.Written() {
		http.Error(ctx.ResponseWriter(), err.Error(), http.StatusInternalServerError)
	}
}

// OK creates a text/plain response with 200 OK status.
func OK(message string) handler.Result {
	return StringWithStatus(message, http.StatusOK)
}

// String creates a text/plain response with 200 OK status.
func String(content string) handler.Result {
	return StringWithStatus(content, http.StatusOK)
}

// StringWithStatus creates a text/plain response with custom status code.
func StringWithStatus(content string, status int) handler.Result {
	return bytesResult([]byte(content), contentTypeText, status)
}

// NotFound creates the plain text 404 response used when no route matches.
func NotFound() handler.Result {
	return StringWithStatus(notFoundMessage, http.StatusNotFound)
}

// HTML creates a text/html response with 200 OK status.
func HTML(content string) handler.Result {
	return bytesResult([]byte(content), contentTypeHTML, http.StatusOK)
}

// Bytes creates a response with custom content type and status code.
func Bytes(content []byte, contentType string, status int) handler.Result {
	return bytesResult(content, contentType, status)
}

// NoContent creates a 204 No Content response.
func NoContent() handler.Result {
	return Status(http.StatusNoContent)
}

// Status creates an empty response with the specified status code.
func Status(code int) handler.Result {
	return New(code, nil)
}

func bytesResult(content []byte, contentType string, status int) handler.Result {
	if status == 0 {
		status = http.StatusOK
	}
	return New(status, func(w http.ResponseWriter, r *http.Request) error {
		if contentType != "" {
			w.Header().Set("Content-Type", contentType)
		}
		w.WriteHeader(status)
		if len(content) > 0 {
			_, err := w.Write(content)
			return err
		}
		return nil
	})
}
