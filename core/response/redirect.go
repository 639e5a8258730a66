package response

import (
	"net/http"

	"github.com/dmitrymomot/pipeline/core/handler"
)

// Redirect creates a 302 Found (temporary redirect) response.
func Redirect(url string) handler.Result {
	return RedirectWithStatus(url, http.StatusFound)
}

// RedirectPermanent creates a 301 Moved Permanently response.
func RedirectPermanent(url string) handler.Result {
	return RedirectWithStatus(url, http.StatusMovedPermanently)
}

// RedirectSeeOther creates a 303 See Other response.
func RedirectSeeOther(url string) handler.Result {
	return RedirectWithStatus(url, http.StatusSeeOther)
}

// RedirectWithStatus creates a redirect with a custom 3xx status code.
// Codes outside the 3xx range fall back to 302 Found.
func RedirectWithStatus(url string, status int) handler.Result {
	if status < 300 || status > 399 {
		status = http.StatusFound
	}
	return New(status, func(w http.ResponseWriter, r *http.Request) error {
		http.Redirect(w, r, url, status)
		return nil
	})
}
