// Package pipeline composes middleware into the single request handler the
// server runs for every connection.
//
//	b := pipeline.New()
//	b.Use(middleware.RequestID())
//	b.Use(router.Routing(table))
//	b.Use(router.Endpoints())
//
//	h := b.Build()
//
// Middleware is folded onion-style. Given A then B, a request runs
// A-pre, B-pre, the inner handler, B-post, A-post. The innermost handler is a
// no-op, so the last stage (usually router.Endpoints) is expected to produce the
// response.
//
// Build runs once, before the server starts. Adding middleware afterwards panics
// with ErrAlreadyBuilt.
package pipeline
