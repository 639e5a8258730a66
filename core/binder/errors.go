package binder

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
)

// Error variables define common binding failures that can occur during handler
// registration and request processing.
var (
	// ErrFailedToParseQuery indicates a query parameter could not be converted
	// to the handler's declared parameter type.
	ErrFailedToParseQuery = errors.New("failed to parse query parameters")

	// ErrUnsupportedParameter indicates a handler declares a parameter type that is
	// neither string, *handler.Context, nor parsable from a string. It is reported at
	// registration time.
	ErrUnsupportedParameter = errors.New("unsupported handler parameter")

	// ErrEmptyParameterName indicates a query-bound parameter was declared without a name.
	ErrEmptyParameterName = errors.New("parameter name is required")

	// ErrNilHandler indicates a nil handler function was passed to the binder.
	ErrNilHandler = errors.New("nil handler")
)

// BindError describes a query value that failed to parse into its parameter type.
// It maps to 400 Bad Request through its StatusCode method.
type BindError struct {
	Param string
	Value string
	Type  reflect.Type
}

// Error implements the error interface.
func (e *BindError) Error() string {
	return fmt.Sprintf("%s: parameter %q: invalid %s value %q", ErrFailedToParseQuery, e.Param, e.Type, e.Value)
}

// Unwrap allows errors.Is(err, ErrFailedToParseQuery).
func (e *BindError) Unwrap() error {
	return ErrFailedToParseQuery
}

// StatusCode returns the HTTP status code for the error.
func (e *BindError) StatusCode() int {
	return http.StatusBadRequest
}
