// internal/app/features/courses/handler.go
package courses

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/edufront/edufront/internal/app/courseedit"
	"github.com/edufront/edufront/internal/app/courselist"
	uierrors "github.com/edufront/edufront/internal/app/features/errors"
	"github.com/edufront/edufront/internal/app/system/auth"
)

// ImageResolver turns the backend's origin-relative image paths into
// absolute URLs the browser can fetch.
type ImageResolver interface {
	ImageURL(rel string) string
}

// Handler holds the course admin feature's dependencies. Table and
// editor state live in per-session controllers, looked up by the
// view key minted at sign-in.
type Handler struct {
	Lists  *courselist.Registry
	Edits  *courseedit.Registry
	Images ImageResolver
	Log    *zap.Logger
}

// NewHandler constructs a courses Handler.
func NewHandler(lists *courselist.Registry, edits *courseedit.Registry, images ImageResolver, logger *zap.Logger) *Handler {
	return &Handler{Lists: lists, Edits: edits, Images: images, Log: logger}
}

// viewKey returns the session's controller key, or renders the sign-in
// page when the session carries none. The route guards make that rare.
func (h *Handler) viewKey(w http.ResponseWriter, r *http.Request) (string, bool) {
	u, ok := auth.CurrentUser(r)
	if !ok || u.ViewKey == "" {
		uierrors.RenderUnauthorized(w, r, "")
		return "", false
	}
	return u.ViewKey, true
}

func (h *Handler) imageURL(rel string) string {
	if h.Images == nil {
		return rel
	}
	return h.Images.ImageURL(rel)
}
