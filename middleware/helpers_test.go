package middleware_test

import (
	"net/http"
	"net/http/httptest"

	"github.com/dmitrymomot/pipeline/core/handler"
	"github.com/dmitrymomot/pipeline/core/pipeline"
	"github.com/dmitrymomot/pipeline/core/response"
)

// serve runs req through the middlewares and final handler the same way the server does.
func serve(req *http.Request, final handler.HandlerFunc, mws ...handler.Middleware) *httptest.ResponseRecorder {
	b := pipeline.New(mws...)
	b.Use(func(handler.HandlerFunc) handler.HandlerFunc { return final })

	w := httptest.NewRecorder()
	ctx := handler.NewContext(w, req)
	if err := b.Build()(ctx); err != nil {
		response.ErrorHandler(ctx, err)
	}
	return w
}

// serveRecovering is serve plus the server's panic path: a recovered panic is
// handed to the error handler on the same context.
func serveRecovering(req *http.Request, final handler.HandlerFunc, mws ...handler.Middleware) *httptest.ResponseRecorder {
	b := pipeline.New(mws...)
	b.Use(func(handler.HandlerFunc) handler.HandlerFunc { return final })

	w := httptest.NewRecorder()
	ctx := handler.NewContext(w, req)
	func() {
		defer func() {
			if v := recover(); v != nil {
				response.ErrorHandler(ctx, handler.NewPanicError(v, nil))
			}
		}()
		if err := b.Build()(ctx); err != nil {
			response.ErrorHandler(ctx, err)
		}
	}()
	return w
}

func panics(*handler.Context) error {
	panic("boom")
}

func text(body string) handler.HandlerFunc {
	return func(ctx *handler.Context) error {
		return response.String(body).Execute(ctx)
	}
}
