// internal/app/features/dashboard/handler.go
package dashboard

import (
	"context"
	"net/http"

	"github.com/dalemusser/waffle/pantry/templates"
	"go.uber.org/zap"

	"github.com/edufront/edufront/internal/app/api"
	"github.com/edufront/edufront/internal/app/system/timeouts"
	"github.com/edufront/edufront/internal/app/system/viewdata"
)

// CourseCounter is the slice of the backend client the dashboard uses.
type CourseCounter interface {
	ListCourses(ctx context.Context, page, pageSize int) ([]api.Course, int, error)
}

// Handler renders the admin dashboard.
type Handler struct {
	API CourseCounter
	Log *zap.Logger
}

// NewHandler constructs a dashboard Handler.
func NewHandler(apiClient CourseCounter, logger *zap.Logger) *Handler {
	return &Handler{API: apiClient, Log: logger}
}

type pageData struct {
	viewdata.BaseVM
	CourseCount int
	CountKnown  bool
}

// ServeDashboard handles GET /dashboard.
//
// The course count comes from a minimal list request's count header.
// A backend failure degrades to an unknown count rather than an error
// page; the dashboard is a landing page, not a report.
func (h *Handler) ServeDashboard(w http.ResponseWriter, r *http.Request) {
	data := pageData{BaseVM: viewdata.NewBaseVM(r, "Dashboard", "/")}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	if _, total, err := h.API.ListCourses(ctx, 1, 1); err == nil {
		data.CourseCount = total
		data.CountKnown = true
	} else {
		h.Log.Warn("dashboard course count failed", zap.Error(err))
	}

	templates.Render(w, r, "dashboard", data)
}
