// internal/app/features/errors/render.go
package errors

import (
	"net/http"

	"github.com/dalemusser/waffle/pantry/httpnav"
	"github.com/dalemusser/waffle/pantry/templates"
	"go.uber.org/zap"
)

// RenderUnauthorized shows a friendly “sign in required” page.
// If backURL is empty, it will default to /login.
func RenderUnauthorized(w http.ResponseWriter, r *http.Request, backURL string) {
	if backURL == "" {
		backURL = "/login"
	}

	data := basePageData(r, "Sign in required")
	data.Message = "Please sign in to continue."
	data.BackURL = backURL

	templates.Render(w, r, "error_forbidden", data)
}

// RenderForbidden shows a friendly access error page with a message.
// If backURL is empty, it resolves a safe back URL with a default fallback.
func RenderForbidden(w http.ResponseWriter, r *http.Request, msg, backURL string) {
	if backURL == "" {
		backURL = httpnav.ResolveBackURL(r, "/")
	}

	data := basePageData(r, "Access denied")
	data.Message = msg
	data.BackURL = backURL

	templates.Render(w, r, "error_forbidden", data)
}

// RenderNotFound shows a friendly not-found page with a message.
func RenderNotFound(w http.ResponseWriter, r *http.Request, msg, backURL string) {
	if msg == "" {
		msg = "We could not find what you were looking for."
	}
	if backURL == "" {
		backURL = httpnav.ResolveBackURL(r, "/")
	}

	data := basePageData(r, "Not found")
	data.Message = msg
	data.BackURL = backURL

	w.WriteHeader(http.StatusNotFound)
	templates.Render(w, r, "error_page", data)
}

// RenderServerError logs the failure and shows a friendly error page.
// The underlying error never reaches the page; msg is what the user
// sees.
func RenderServerError(w http.ResponseWriter, r *http.Request, log *zap.Logger, err error, msg, backURL string) {
	if log != nil {
		log.Error("server error",
			zap.String("path", r.URL.Path),
			zap.Error(err))
	}
	if msg == "" {
		msg = "Something went wrong. Please try again."
	}
	if backURL == "" {
		backURL = httpnav.ResolveBackURL(r, "/")
	}

	data := basePageData(r, "Something went wrong")
	data.Message = msg
	data.BackURL = backURL

	w.WriteHeader(http.StatusInternalServerError)
	templates.Render(w, r, "error_page", data)
}
