// Package server implements the connection acceptor: a raw TCP accept loop that
// answers exactly one HTTP/1.1 request per connection.
//
// Each accepted connection is served on its own goroutine. The request is parsed
// with http.ReadRequest, wrapped in a handler.Context and run through the
// pipeline. The response is buffered and written once with Content-Length and
// Connection: close; connections are never reused.
//
// # Basic Usage
//
//	srv := server.New("localhost:8080",
//		server.WithLogger(log),
//		server.WithShutdownTimeout(10*time.Second),
//	)
//
//	g, ctx := errgroup.WithContext(ctx)
//	g.Go(srv.Run(ctx, pipeline.Build()))
//	if err := g.Wait(); err != nil {
//		log.Error("server failed", logger.Error(err))
//	}
//
// # Lifecycle
//
// Listen binds the socket, Serve runs the accept loop, Start does both. Stop
// closes the socket and cancels the context seen by in-flight handlers without
// waiting for them. Shutdown stops and then waits for in-flight handlers until
// its context is done. Canceling the context passed to Serve is equivalent to
// calling Stop.
//
// # Errors
//
// Errors returned by the pipeline go to the error handler (response.ErrorHandler
// unless WithErrorHandler is set). Panics are recovered into a handler.PanicError
// and reported the same way, which yields a 500 when nothing was written yet.
// Malformed requests receive a 400 without reaching the pipeline.
//
// # Configuration
//
// Config is loadable from the environment:
//
//	var cfg server.Config
//	config.MustLoad(&cfg)
//	srv, err := server.NewFromConfig(cfg, server.WithLogger(log))
package server
