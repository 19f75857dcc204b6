// internal/app/features/logout/handler.go
package logout

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/edufront/edufront/internal/app/courseedit"
	"github.com/edufront/edufront/internal/app/courselist"
	"github.com/edufront/edufront/internal/app/system/auth"
)

// Handler tears down the session on sign-out.
type Handler struct {
	Sessions *auth.SessionManager
	Views    *courselist.Registry
	Edits    *courseedit.Registry
	Log      *zap.Logger
}

// NewHandler constructs a logout Handler.
func NewHandler(sessions *auth.SessionManager, views *courselist.Registry, edits *courseedit.Registry, logger *zap.Logger) *Handler {
	return &Handler{Sessions: sessions, Views: views, Edits: edits, Log: logger}
}

// Serve clears the session and any server-side view state, then sends
// the user to the login page.
// GET or POST /logout
func (h *Handler) Serve(w http.ResponseWriter, r *http.Request) {
	if u, ok := auth.CurrentUser(r); ok && u.ViewKey != "" {
		if h.Views != nil {
			h.Views.Drop(u.ViewKey)
		}
		if h.Edits != nil {
			h.Edits.Drop(u.ViewKey)
		}
	}
	if err := h.Sessions.SignOut(w, r); err != nil {
		h.Log.Warn("sign-out failed", zap.Error(err))
	}
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}
