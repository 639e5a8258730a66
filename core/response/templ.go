package response

import (
	"fmt"
	"net/http"

	"github.com/a-h/templ"

	"github.com/dmitrymomot/pipeline/core/handler"
)

// Templ creates an HTML response using a templ component with 200 OK status.
// The component is rendered with the request's context, so it can read
// request-scoped values like request IDs.
func Templ(component templ.Component) handler.Result {
	return TemplWithStatus(component, http.StatusOK)
}

// TemplWithStatus creates an HTML response using a templ component with custom status code.
func TemplWithStatus(component templ.Component, status int) handler.Result {
	if component == nil {
		return nil
	}
	if status == 0 {
		status = http.StatusOK
	}
	return New(status, func(w http.ResponseWriter, r *http.Request) error {
		w.Header().Set("Content-Type", contentTypeHTML)
		w.WriteHeader(status)

		if err := component.Render(r.Context(), w); err != nil {
			return fmt.Errorf("templ component render error: %w", err)
		}
		return nil
	})
}
