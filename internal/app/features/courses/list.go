// internal/app/features/courses/list.go
package courses

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/dalemusser/waffle/pantry/query"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/edufront/edufront/internal/app/courselist"
	uierrors "github.com/edufront/edufront/internal/app/features/errors"
	"github.com/edufront/edufront/internal/app/system/paging"
	"github.com/edufront/edufront/internal/app/system/timeouts"
	"github.com/edufront/edufront/internal/app/system/viewdata"
)

type rowVM struct {
	ID          string
	Name        string
	Creator     string
	StudyTime   string
	Price       float64
	StatusLabel string
	Language    string
	Level       string
	Categories  string
	ThumbURL    string
	CanModify   bool
}

type listData struct {
	viewdata.BaseVM
	Rows       []rowVM
	Total      int
	Page       int
	PageSize   int
	PageSizes  []int
	TotalPages int
	HasPrev    bool
	HasNext    bool
	PrevPage   int
	NextPage   int
	Window     []int
	Decor      paging.Decorations
	Flash      string
}

// ServeList renders the course table for the requested page, loading
// the page and the reference catalogs through the session's list
// controller.
// GET /admin/courses
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	key, ok := h.viewKey(w, r)
	if !ok {
		return
	}

	page := paging.ParsePage(r)
	pageSize := paging.ParsePageSize(r)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	ctrl := h.Lists.For(key)
	view, err := ctrl.LoadPage(ctx, page, pageSize)
	if err != nil {
		uierrors.RenderServerError(w, r, h.Log, err,
			"Loading the course list failed. Try again shortly.", "/dashboard")
		return
	}

	// A page past the end comes back clamped; follow it so the pager
	// links match what is shown.
	if clamped := view.Page.Clamped(); clamped.Current != page {
		page = clamped.Current
	}

	data := h.buildListData(r, view, query.Get(r, "msg"))

	// HTMX partial table refresh
	if r.Header.Get("HX-Request") != "" && r.Header.Get("HX-Target") == "courses-table-wrap" {
		templates.RenderSnippet(w, "courses_table", data)
		return
	}

	templates.Render(w, r, "courses_list", data)
}

// HandleDelete removes a course and refreshes the table. Failures keep
// the table as it was and surface a reason banner instead.
// POST /admin/courses/{id}/delete
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	key, ok := h.viewKey(w, r)
	if !ok {
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	id := chi.URLParam(r, "id")

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	ctrl := h.Lists.For(key)
	flash := ""
	if err := ctrl.Delete(ctx, id); err != nil {
		if h.Log != nil {
			h.Log.Warn("course delete failed",
				zap.String("course_id", strings.TrimSpace(id)),
				zap.Error(err))
		}
		flash = courselist.FailureReason(err)
	}

	// HTMX flow: swap the refreshed table in place, with the failure
	// reason when the delete did not go through.
	if r.Header.Get("HX-Request") != "" {
		view, _ := ctrl.View()
		data := h.buildListData(r, view, flash)
		templates.RenderSnippet(w, "courses_table", data)
		return
	}

	dest := "/admin/courses"
	if p := strings.TrimSpace(r.FormValue("page")); p != "" {
		dest += "?page=" + url.QueryEscape(p)
	}
	if flash != "" {
		sep := "?"
		if strings.Contains(dest, "?") {
			sep = "&"
		}
		dest += sep + "msg=" + url.QueryEscape(flash)
	}
	http.Redirect(w, r, dest, http.StatusSeeOther)
}

func (h *Handler) buildListData(r *http.Request, view courselist.View, flash string) listData {
	rows := make([]rowVM, 0, len(view.Rows))
	for _, row := range view.Rows {
		thumb := ""
		if row.ImageURL != "" {
			thumb = h.imageURL(row.ImageURL)
		}
		rows = append(rows, rowVM{
			ID:          row.ID,
			Name:        row.Name,
			Creator:     row.Creator,
			StudyTime:   row.StudyTime,
			Price:       row.Price,
			StatusLabel: row.StatusLabel,
			Language:    row.Language,
			Level:       row.Level,
			Categories:  strings.Join(row.Categories, ", "),
			ThumbURL:    thumb,
			CanModify:   row.CanModify,
		})
	}

	page := view.Page.Clamped()
	totalPages := page.TotalPages()
	window := paging.Window(page.Current, totalPages, paging.DefaultWindowSize)

	return listData{
		BaseVM:     viewdata.NewBaseVM(r, "Courses", "/dashboard"),
		Rows:       rows,
		Total:      page.Total,
		Page:       page.Current,
		PageSize:   page.PageSize,
		PageSizes:  paging.AllowedPageSizes,
		TotalPages: totalPages,
		HasPrev:    page.HasPrev(),
		HasNext:    page.HasNext(),
		PrevPage:   page.Current - 1,
		NextPage:   page.Current + 1,
		Window:     window,
		Decor:      paging.Decorate(window, totalPages),
		Flash:      flash,
	}
}
