// Package middleware provides optional pipeline stages.
//
// Every constructor returns a handler.Middleware that can be registered on a
// pipeline.Builder (or app.App) in any position. Stages that need to set
// response headers do so before calling next, because handlers write straight
// to the connection's response writer.
//
//	p := pipeline.New(
//		middleware.RequestID(),
//		middleware.Logging(log),
//		middleware.ClientIP(),
//		middleware.RateLimit(middleware.RateLimitConfig{Rate: 10, Burst: 20}),
//		middleware.Compress(),
//		router.Routing(table),
//		router.Endpoints(),
//	)
//
// Available stages:
//
//   - RequestID: assigns a UUID per request, stores it in context and the X-Request-ID header.
//   - Logging: one structured line per completed request with status, size and duration.
//   - ClientIP: resolves the client address through proxy headers (see pkg/clientip).
//   - RateLimit: per-key token bucket; rejected requests get 429 and Retry-After.
//   - Compress: brotli or gzip encoding negotiated from Accept-Encoding.
//
// Each stage has a *WithConfig variant; all configs accept a Skip predicate.
package middleware
