package server

import "errors"

var (
	// Lifecycle errors
	ErrServerAlreadyRunning = errors.New("server is already running")
	ErrNotListening         = errors.New("server is not listening")
	ErrListen               = errors.New("failed to bind listening socket")
	ErrNilHandler           = errors.New("request handler is nil")
	ErrShutdownTimeout      = errors.New("shutdown timed out waiting for in-flight requests")

	// Configuration errors
	ErrMissingAddress = errors.New("server address is required")
)
