package server

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"net"
	"net/http"
	"runtime/debug"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dmitrymomot/pipeline/core/handler"
	"github.com/dmitrymomot/pipeline/core/logger"
	"github.com/dmitrymomot/pipeline/core/response"
)

// State is the lifecycle state of a Server.
type State int32

const (
	StateStopped State = iota
	StateListening
)

func (s State) String() string {
	switch s {
	case StateListening:
		return "listening"
	default:
		return "stopped"
	}
}

// Server accepts TCP connections and answers exactly one HTTP/1.1 request per
// connection by running it through a handler.HandlerFunc. Every connection is
// served on its own goroutine. Safe for concurrent use.
type Server struct {
	mu             sync.Mutex
	addr           string
	listener       net.Listener
	cancel         context.CancelFunc
	serving        bool
	closed         bool
	stopping       atomic.Bool
	state          atomic.Int32
	inflight       sync.WaitGroup
	logger         *slog.Logger
	errorHandler   handler.ErrorHandler
	shutdown       time.Duration
	readTimeout    time.Duration
	writeTimeout   time.Duration
	maxHeaderBytes int
}

// New creates a new Server with the given address and options.
// Defaults to plain-text error responses and a no-op logger.
func New(addr string, opts ...Option) *Server {
	s := &Server{
		addr:           addr,
		logger:         logger.Nop(),
		errorHandler:   response.ErrorHandler,
		shutdown:       DefaultShutdownTimeout,
		readTimeout:    DefaultReadTimeout,
		writeTimeout:   DefaultWriteTimeout,
		maxHeaderBytes: DefaultMaxHeaderBytes,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Addr returns the bound address while listening, otherwise the configured one.
func (s *Server) Addr() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.listener != nil {
		return s.listener.Addr().String()
	}
	return s.addr
}

// State reports whether the server is currently accepting connections.
func (s *Server) State() State {
	return State(s.state.Load())
}

// Listen binds the listening socket. Bind failures are wrapped in ErrListen.
func (s *Server) Listen() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.listener != nil || s.serving {
		return ErrServerAlreadyRunning
	}

	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("%w %s: %w", ErrListen, s.addr, err)
	}

	s.listener = ln
	s.closed = false
	s.stopping.Store(false)
	s.state.Store(int32(StateListening))
	return nil
}

// Serve runs the accept loop on the socket bound by Listen until Stop is called,
// ctx is canceled or the socket is closed. It returns nil on a clean stop and
// does not wait for in-flight requests; use Shutdown for that.
func (s *Server) Serve(ctx context.Context, h handler.HandlerFunc) error {
	if h == nil {
		return ErrNilHandler
	}

	s.mu.Lock()
	ln := s.listener
	if ln == nil {
		s.mu.Unlock()
		return ErrNotListening
	}
	if s.serving {
		s.mu.Unlock()
		return ErrServerAlreadyRunning
	}
	s.serving = true
	baseCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	s.cancel = cancel
	s.mu.Unlock()

	stopOnCancel := context.AfterFunc(ctx, func() {
		if err := s.Stop(); err != nil {
			s.logger.Error("failed to stop server on context cancellation", logger.Error(err))
		}
	})
	defer stopOnCancel()

	defer func() {
		s.mu.Lock()
		s.serving = false
		s.mu.Unlock()
	}()

	s.logger.InfoContext(ctx, "server listening",
		logger.Component("server"),
		logger.Addr(ln.Addr().String()),
	)

	var delay time.Duration
	for !s.stopping.Load() {
		conn, err := ln.Accept()
		if err != nil {
			if s.stopping.Load() || errors.Is(err, net.ErrClosed) {
				break
			}

			delay = nextAcceptDelay(delay)
			s.logger.Error("accept failed",
				logger.Component("server"),
				logger.Error(err),
				slog.Duration("retry_in", delay),
			)

			t := time.NewTimer(delay)
			select {
			case <-t.C:
			case <-baseCtx.Done():
				t.Stop()
			}
			continue
		}
		delay = 0

		if !s.track() {
			_ = conn.Close()
			break
		}
		go s.serveConn(baseCtx, conn, h)
	}

	s.state.Store(int32(StateStopped))
	s.logger.Info("server stopped accepting connections", logger.Component("server"))
	return nil
}

// Start binds the socket and runs the accept loop. It blocks until the server stops.
func (s *Server) Start(ctx context.Context, h handler.HandlerFunc) error {
	if err := s.Listen(); err != nil {
		return err
	}
	return s.Serve(ctx, h)
}

// Stop closes the listening socket and cancels the context observed by in-flight
// handlers. It does not wait for them to finish.
// Returns immediately if the server is not listening.
func (s *Server) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.listener == nil {
		return nil
	}

	s.stopping.Store(true)
	s.closed = true
	if s.cancel != nil {
		s.cancel()
	}

	err := s.listener.Close()
	s.listener = nil
	s.state.Store(int32(StateStopped))

	if err != nil && !errors.Is(err, net.ErrClosed) {
		return err
	}
	return nil
}

// Shutdown stops the server and waits for in-flight requests to finish.
// When ctx has no deadline the configured shutdown timeout applies.
func (s *Server) Shutdown(ctx context.Context) error {
	if err := s.Stop(); err != nil {
		return err
	}

	if _, ok := ctx.Deadline(); !ok && s.shutdown > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.shutdown)
		defer cancel()
	}

	done := make(chan struct{})
	go func() {
		s.inflight.Wait()
		close(done)
	}()

	select {
	case <-done:
		s.logger.Info("server shutdown complete", logger.Component("server"))
		return nil
	case <-ctx.Done():
		s.logger.Warn("server shutdown timed out", logger.Component("server"), logger.Error(ctx.Err()))
		return fmt.Errorf("%w: %w", ErrShutdownTimeout, ctx.Err())
	}
}

// Run provides errgroup compatibility for coordinated lifecycle management.
// The returned function serves until ctx is canceled, then waits for
// in-flight requests up to the shutdown timeout.
func (s *Server) Run(ctx context.Context, h handler.HandlerFunc) func() error {
	return func() error {
		if err := s.Start(ctx, h); err != nil {
			return err
		}

		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.shutdown)
		defer cancel()
		return s.Shutdown(shutdownCtx)
	}
}

// track registers a connection as in flight. It reports false once Stop has run.
func (s *Server) track() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return false
	}
	s.inflight.Add(1)
	return true
}

func (s *Server) serveConn(ctx context.Context, conn net.Conn, h handler.HandlerFunc) {
	defer s.inflight.Done()
	defer conn.Close()

	remote := conn.RemoteAddr().String()
	log := s.logger.With(logger.Component("server"), logger.RemoteAddr(remote))

	if s.readTimeout > 0 {
		_ = conn.SetReadDeadline(time.Now().Add(s.readTimeout))
	}

	// Same trick as net/http: cap the header read, lift the cap for the body.
	lr := &io.LimitedReader{R: conn, N: int64(s.maxHeaderBytes) + 4096}
	req, err := http.ReadRequest(bufio.NewReader(lr))
	if err != nil {
		if errors.Is(err, io.EOF) {
			return
		}
		status := http.StatusBadRequest
		if lr.N <= 0 {
			status = http.StatusRequestHeaderFieldsTooLarge
		}
		log.Debug("malformed request", logger.Error(err), logger.StatusCode(status))
		s.writeRaw(log, conn, status)
		return
	}
	lr.N = math.MaxInt64

	req.RemoteAddr = remote
	req = req.WithContext(ctx)

	w := newConnWriter(req)
	s.dispatch(log, w, handler.NewContext(w, req), h)

	if s.writeTimeout > 0 {
		_ = conn.SetWriteDeadline(time.Now().Add(s.writeTimeout))
	}
	if _, err := w.flush(conn); err != nil {
		log.Debug("failed to write response",
			logger.Method(req.Method),
			logger.Path(req.URL.Path),
			logger.Error(err),
		)
	}
}

func (s *Server) dispatch(log *slog.Logger, w *connWriter, ctx *handler.Context, h handler.HandlerFunc) {
	defer func() {
		if v := recover(); v != nil {
			perr := handler.NewPanicError(v, debug.Stack())
			log.Error("panic recovered",
				logger.Method(ctx.Request().Method),
				logger.Path(ctx.Request().URL.Path),
				logger.Error(perr),
				logger.Stack(perr.Stack()),
			)
			// Drop partial output and any writer a middleware left installed.
			w.reset()
			ctx.SetResponseWriter(w)
			s.handleError(log, ctx, perr)
		}
	}()

	if err := h(ctx); err != nil {
		s.handleError(log, ctx, err)
	}
}

func (s *Server) handleError(log *slog.Logger, ctx *handler.Context, err error) {
	defer func() {
		if v := recover(); v != nil {
			log.Error("error handler panicked", logger.Error(handler.NewPanicError(v, debug.Stack())))
		}
	}()
	s.errorHandler(ctx, err)
}

func (s *Server) writeRaw(log *slog.Logger, conn net.Conn, status int) {
	if s.writeTimeout > 0 {
		_ = conn.SetWriteDeadline(time.Now().Add(s.writeTimeout))
	}
	if err := writeStatus(conn, status); err != nil {
		log.Debug("failed to write response", logger.StatusCode(status), logger.Error(err))
	}
}

func nextAcceptDelay(prev time.Duration) time.Duration {
	if prev == 0 {
		return minAcceptDelay
	}
	return min(prev*2, maxAcceptDelay)
}
