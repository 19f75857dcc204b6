// internal/app/features/register/routes.go
package register

import "github.com/go-chi/chi/v5"

func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.ServeForm)
	r.Post("/", h.Submit)
	r.Post("/verify", h.Verify)
	r.Post("/resend", h.Resend)
	return r
}
