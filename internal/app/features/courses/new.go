// internal/app/features/courses/new.go
package courses

import (
	"context"
	"errors"
	"net/http"

	"github.com/dalemusser/waffle/pantry/templates"

	"github.com/edufront/edufront/internal/app/courseedit"
	uierrors "github.com/edufront/edufront/internal/app/features/errors"
	"github.com/edufront/edufront/internal/app/system/limits"
	"github.com/edufront/edufront/internal/app/system/navigation"
	"github.com/edufront/edufront/internal/app/system/timeouts"
)

// ServeNew resets the session's editor to an empty course and renders
// the create form.
// GET /admin/courses/new
func (h *Handler) ServeNew(w http.ResponseWriter, r *http.Request) {
	key, ok := h.viewKey(w, r)
	if !ok {
		return
	}

	back := navigation.SafeBackURL(r, navigation.CoursesBackURL)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	ctrl := h.Edits.For(key)
	if err := ctrl.LoadForCreate(ctx); err != nil {
		uierrors.RenderServerError(w, r, h.Log, err,
			"Loading the course form failed. Try again shortly.", back)
		return
	}

	view, _ := ctrl.View()
	data := h.buildEditData(r, view, formVM{Status: "0"}, nil, "", "")
	templates.Render(w, r, "course_edit", data)
}

// HandleCreate validates the posted fields and creates the course,
// sending any staged images along.
// POST /admin/courses/new
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	key, ok := h.viewKey(w, r)
	if !ok {
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, limits.MaxCourseFormSize)
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	form := formFromRequest(r)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	ctrl := h.Edits.For(key)
	err := ctrl.Create(ctx, form.controllerForm())
	if err == nil {
		http.Redirect(w, r, "/admin/courses", http.StatusSeeOther)
		return
	}

	view, _ := ctrl.View()

	var verrs courseedit.ValidationErrors
	if errors.As(err, &verrs) {
		data := h.buildEditData(r, view, form, verrs, "", "")
		templates.Render(w, r, "course_edit", data)
		return
	}

	data := h.buildEditData(r, view, form, nil, courseedit.SubmitMessage(err), "")
	templates.Render(w, r, "course_edit", data)
}
