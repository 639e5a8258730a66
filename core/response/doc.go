// Package response provides the Result variants returned by handlers and the
// error handlers used by the server.
//
// A handler.Result knows its status code and how to write itself:
//
//	response.OK("Hello world!")           // 200 text/plain
//	response.NotFound()                   // 404 "Not found!"
//	response.JSON(user)                   // 200 application/json
//	response.JSONWithStatus(user, 201)
//	response.Redirect("/login")           // 302
//	response.Templ(components.About())    // 200 text/html via a-h/templ
//	response.Error(response.ErrForbidden) // returns the error to the server
//
// Handlers return a Result; the binder executes it. Middleware and raw handlers
// can execute one directly with Execute(ctx) or Render(ctx, res).
//
// # Errors
//
// ErrorHandler (plain text) and JSONErrorHandler turn an error into a response.
// The status comes from an HTTPError, from any error exposing StatusCode() int,
// or defaults to 500. Neither writes when the response has already started, so
// a handler that failed half-way through a body is left as is.
//
//	err := response.ErrTooManyRequests.WithDetails(map[string]any{"retry_after": "3"})
//
// StatusOf reports the status an error would produce, which is what logging
// middleware records for requests that failed before writing.
package response
