package router

import (
	"github.com/dmitrymomot/pipeline/core/handler"
	"github.com/dmitrymomot/pipeline/core/response"
)

// Routing resolves the request path in the table and attaches the endpoint
// to the context. The next stage is called whether or not a route matched.
func Routing(t *Table) handler.Middleware {
	return func(next handler.HandlerFunc) handler.HandlerFunc {
		return func(ctx *handler.Context) error {
			if ep, ok := t.Lookup(requestPath(ctx)); ok {
				ctx.SetEndpoint(ep)
			}
			return next(ctx)
		}
	}
}

// Endpoints is the terminal stage: it invokes the endpoint attached by Routing,
// or writes a plain text 404 "Not found!" response. It never calls next.
// Register it after Routing; the order is not enforced.
func Endpoints() handler.Middleware {
	return func(handler.HandlerFunc) handler.HandlerFunc {
		return func(ctx *handler.Context) error {
			if ep, ok := ctx.Endpoint(); ok {
				return ep.Handler(ctx)
			}
			return response.NotFound().Execute(ctx)
		}
	}
}

func requestPath(ctx *handler.Context) string {
	r := ctx.Request()
	if r.URL == nil {
		return ""
	}
	return r.URL.Path
}
