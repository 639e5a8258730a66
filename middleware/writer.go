package middleware

import (
	"net/http"

	"github.com/dmitrymomot/pipeline/core/handler"
)

// withWriter runs next with w installed as the response writer and restores
// the previous writer afterwards, also when next panics.
func withWriter(ctx *handler.Context, w http.ResponseWriter, next handler.HandlerFunc) error {
	prev := ctx.ResponseWriter()
	ctx.SetResponseWriter(w)
	defer ctx.SetResponseWriter(prev)
	return next(ctx)
}
