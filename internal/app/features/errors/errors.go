// internal/app/features/errors/errors.go
package errors

import (
	"net/http"

	"github.com/dalemusser/waffle/pantry/templates"

	"github.com/edufront/edufront/internal/app/system/auth"
)

// pageData is the basic view model for error pages.
type pageData struct {
	Title      string
	IsLoggedIn bool
	Role       string
	UserName   string
	Message    string
	BackURL    string
}

// Handler is the errors feature handler.
// It just renders templates; no backend calls.
type Handler struct{}

// NewHandler constructs an errors Handler.
func NewHandler() *Handler {
	return &Handler{}
}

// Forbidden renders a friendly "access denied" page.
// GET /forbidden
func (h *Handler) Forbidden(w http.ResponseWriter, r *http.Request) {
	data := basePageData(r, "Access denied")
	data.Message = "You don't have permission to view this page."
	data.BackURL = "/"

	templates.Render(w, r, "error_forbidden", data)
}

// NotFound renders a friendly "not found" page for unmatched routes.
func (h *Handler) NotFound(w http.ResponseWriter, r *http.Request) {
	data := basePageData(r, "Page not found")
	data.Message = "The page you're looking for doesn't exist."
	data.BackURL = "/"

	w.WriteHeader(http.StatusNotFound)
	templates.Render(w, r, "error_page", data)
}

func basePageData(r *http.Request, title string) pageData {
	data := pageData{Title: title}
	if u, ok := auth.CurrentUser(r); ok {
		data.IsLoggedIn = true
		data.Role = u.Role
		data.UserName = u.Name
	}
	return data
}
