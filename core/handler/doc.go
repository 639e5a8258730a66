// Package handler defines the request processing contracts shared by every stage
// of the pipeline: the per-request Context, HandlerFunc, Middleware, ErrorHandler,
// the Result contract produced by endpoint handlers, and the Endpoint pairing a
// route with its compiled handler.
//
// # Request Context
//
// A Context wraps the inbound *http.Request and the outbound http.ResponseWriter
// of one connection. It implements context.Context by delegating to the request's
// context, so handlers observe server shutdown through ctx.Done():
//
//	func slow(ctx *handler.Context) error {
//		select {
//		case <-time.After(time.Second):
//		case <-ctx.Done():
//			return ctx.Err()
//		}
//		return response.OK("done").Execute(ctx)
//	}
//
// Data passed between pipeline stages uses typed slots instead of a string-keyed
// bag. The routing stage stores the resolved route with SetEndpoint and the
// endpoint stage reads it back with Endpoint:
//
//	if ep, ok := ctx.Endpoint(); ok {
//		return ep.Handler(ctx)
//	}
//
// Loosely keyed values (request IDs and the like) go through SetValue / Value.
//
// # Middleware
//
// Middleware wraps the next handler. Logic placed before the call to next runs on
// the way in, logic placed after it runs on the way out:
//
//	func timing(next handler.HandlerFunc) handler.HandlerFunc {
//		return func(ctx *handler.Context) error {
//			start := time.Now()
//			err := next(ctx)
//			log.Printf("%s took %s", ctx.Request().URL.Path, time.Since(start))
//			return err
//		}
//	}
//
// # Results
//
// A Result knows its status code and how to write itself into a Context.
// New variants only need to implement the two methods; the dispatcher does not
// change. See package response for the built-in variants.
package handler
