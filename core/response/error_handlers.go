package response

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/dmitrymomot/pipeline/core/handler"
)

// statusCode is an interface that errors can implement
// to provide a custom HTTP status code.
type statusCode interface {
	StatusCode() int
}

// convertToHTTPError converts any error to an HTTPError.
func convertToHTTPError(err error) HTTPError {
	var httpErr HTTPError
	if errors.As(err, &httpErr) {
		return httpErr
	}

	status := http.StatusInternalServerError

	var sc statusCode
	if errors.As(err, &sc) {
		status = sc.StatusCode()
	}

	baseErr, ok := httpErrorsByStatus[status]
	switch {
	case ok:
	case status >= http.StatusBadRequest && status <= 599 && http.StatusText(status) != "":
		baseErr = newHTTPError(status, fmt.Sprintf("status_%d", status))
	default:
		baseErr = ErrInternalServerError
	}

	return baseErr.WithError(err)
}

// ErrorHandler is the default error handler that returns plain text errors.
// It checks for HTTPError first, then the StatusCode() method, and defaults to 500.
// Nothing is written when the response has already been started.
func ErrorHandler(ctx *handler.Context, err error) {
	if err == nil || ctx.Written() {
		return
	}
	httpErr := convertToHTTPError(err)
	Render(ctx, StringWithStatus(httpErr.Error(), httpErr.Status))
}

// JSONErrorHandler returns errors as JSON responses.
func JSONErrorHandler(ctx *handler.Context, err error) {
	if err == nil || ctx.Written() {
		return
	}
	httpErr := convertToHTTPError(err)
	Render(ctx, JSONWithStatus(httpErr, httpErr.Status))
}

// StatusOf returns the HTTP status the error handlers would use for err.
// A nil error maps to 200.
func StatusOf(err error) int {
	if err == nil {
		return http.StatusOK
	}
	return convertToHTTPError(err).Status
}
