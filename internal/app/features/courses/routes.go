// internal/app/features/courses/routes.go
package courses

import (
	"github.com/go-chi/chi/v5"
)

// Routes mounts the course admin pages under whatever base path the
// caller chooses (typically "/admin/courses" from bootstrap). The
// caller is expected to wrap the mount in the sign-in and role
// middleware.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	// LIST (HTMX table swap for paging)
	r.Get("/", h.ServeList)

	// CREATE
	r.Get("/new", h.ServeNew)
	r.Post("/new", h.HandleCreate)
	r.Post("/new/images", h.HandleImageUpload)
	r.Post("/new/images/remove", h.HandleImageRemove)

	// EDIT
	r.Get("/{id}/edit", h.ServeEdit)
	r.Post("/{id}/edit", h.HandleUpdate)
	r.Post("/{id}/edit/images", h.HandleImageUpload)
	r.Post("/{id}/edit/images/remove", h.HandleImageRemove)

	// DELETE
	r.Post("/{id}/delete", h.HandleDelete)

	return r
}
