package response

import (
	"net/http"

	"github.com/dmitrymomot/pipeline/core/handler"
)

// Error returns a result that propagates the given error to the error handler.
// Its status code is derived the same way the error handler derives it.
func Error(err error) handler.Result {
	if err == nil {
		return nil
	}
	return New(convertToHTTPError(err).Status, func(w http.ResponseWriter, r *http.Request) error {
		return err
	})
}
