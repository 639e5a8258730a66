package server

import (
	"log/slog"
	"time"

	"github.com/dmitrymomot/pipeline/core/handler"
)

// Option configures server behavior.
type Option func(*Server)

// WithLogger sets a custom logger for server operations.
// A nil logger keeps the default no-op logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithErrorHandler sets the handler for errors returned (or panics raised) by the pipeline.
func WithErrorHandler(h handler.ErrorHandler) Option {
	return func(s *Server) {
		if h != nil {
			s.errorHandler = h
		}
	}
}

// WithShutdownTimeout sets the maximum time Shutdown waits for in-flight requests
// when the caller's context has no deadline.
func WithShutdownTimeout(timeout time.Duration) Option {
	return func(s *Server) {
		s.shutdown = timeout
	}
}

// WithReadTimeout sets the deadline for reading the request line and headers.
// Zero disables it.
func WithReadTimeout(timeout time.Duration) Option {
	return func(s *Server) {
		s.readTimeout = timeout
	}
}

// WithWriteTimeout sets the deadline for flushing the response. Zero disables it.
func WithWriteTimeout(timeout time.Duration) Option {
	return func(s *Server) {
		s.writeTimeout = timeout
	}
}

// WithMaxHeaderBytes limits the size of the request line plus headers.
func WithMaxHeaderBytes(n int) Option {
	return func(s *Server) {
		if n > 0 {
			s.maxHeaderBytes = n
		}
	}
}
