// Package courselist drives the admin course table: it loads a page of
// courses together with the reference catalogs, denormalizes the rows
// for display, and keeps per-admin view state consistent when page
// loads overlap.
package courselist

import (
	"context"
	"errors"
	"strings"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/edufront/edufront/internal/app/api"
	"github.com/edufront/edufront/internal/app/system/paging"
)

// CatalogAPI is the slice of the backend client the controller uses.
type CatalogAPI interface {
	ListCourses(ctx context.Context, page, pageSize int) ([]api.Course, int, error)
	DeleteCourse(ctx context.Context, id string) error
	Languages(ctx context.Context) ([]api.Option, error)
	Levels(ctx context.Context) ([]api.Option, error)
	Categories(ctx context.Context) ([]api.Option, error)
}

// Row is one course prepared for the table: IDs swapped for labels,
// status normalized, and the modify guard precomputed.
type Row struct {
	ID          string
	Name        string
	Creator     string
	StudyTime   string
	Price       float64
	Status      api.Status
	StatusLabel string
	Language    string
	Level       string
	Categories  []string
	ImageURL    string
	// CanModify is false for removed courses; the table hides their
	// edit and delete controls.
	CanModify bool
}

// View is the table state for one loaded page.
type View struct {
	Rows []Row
	Page paging.PageState
}

// Controller holds one admin's course-table state. Loads that finish
// out of order never roll the view back: each LoadPage takes a fresh
// token, and a load only applies if no newer load has started since.
type Controller struct {
	API CatalogAPI
	Log *zap.Logger

	token atomic.Uint64

	mu     sync.Mutex
	view   View
	loaded bool
}

// New returns a controller bound to the backend client.
func New(apiClient CatalogAPI, logger *zap.Logger) *Controller {
	return &Controller{API: apiClient, Log: logger}
}

// View returns the most recently applied table state.
func (c *Controller) View() (View, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.view, c.loaded
}

// LoadPage fetches the requested page and the three reference catalogs
// concurrently, joining before anything is applied. Any fetch failure
// fails the whole load and leaves the current view untouched. The
// returned View is the controller's state after the call, which is the
// newer load's result when this one arrived stale.
func (c *Controller) LoadPage(ctx context.Context, page, pageSize int) (View, error) {
	token := c.token.Add(1)

	var (
		wg         sync.WaitGroup
		courses    []api.Course
		total      int
		languages  api.Catalog
		levels     api.Catalog
		categories api.Catalog
		errs       [4]error
	)

	wg.Add(4)
	go func() {
		defer wg.Done()
		courses, total, errs[0] = c.API.ListCourses(ctx, page, pageSize)
	}()
	go func() {
		defer wg.Done()
		var opts []api.Option
		if opts, errs[1] = c.API.Languages(ctx); errs[1] == nil {
			languages = api.BuildCatalog(opts)
		}
	}()
	go func() {
		defer wg.Done()
		var opts []api.Option
		if opts, errs[2] = c.API.Levels(ctx); errs[2] == nil {
			levels = api.BuildCatalog(opts)
		}
	}()
	go func() {
		defer wg.Done()
		var opts []api.Option
		if opts, errs[3] = c.API.Categories(ctx); errs[3] == nil {
			categories = api.BuildCatalog(opts)
		}
	}()
	wg.Wait()

	if err := errors.Join(errs[:]...); err != nil {
		return View{}, err
	}

	view := View{
		Rows: make([]Row, 0, len(courses)),
		Page: paging.PageState{Current: page, PageSize: pageSize, Total: total},
	}
	for _, course := range courses {
		view.Rows = append(view.Rows, buildRow(course, languages, levels, categories))
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if token == c.token.Load() {
		c.view = view
		c.loaded = true
	} else if c.Log != nil {
		c.Log.Debug("discarding stale course page load",
			zap.Uint64("token", token),
			zap.Uint64("newest", c.token.Load()))
	}
	return c.view, nil
}

// Delete removes a course and, on success, reloads the current page so
// the table reflects the deletion. On failure the view is untouched
// and the error carries the mapped reason.
func (c *Controller) Delete(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return api.ErrNotFound
	}

	if err := c.API.DeleteCourse(ctx, id); err != nil {
		if c.Log != nil {
			c.Log.Warn("course delete failed", zap.String("course_id", id), zap.Error(err))
		}
		return err
	}

	c.mu.Lock()
	page := c.view.Page
	loaded := c.loaded
	c.mu.Unlock()
	if !loaded {
		page = paging.PageState{Current: 1, PageSize: paging.DefaultPageSize}
	}

	_, err := c.LoadPage(ctx, page.Current, page.PageSize)
	return err
}

// FailureReason translates a delete or load error into the message the
// table shows.
func FailureReason(err error) string {
	switch {
	case errors.Is(err, api.ErrNotFound):
		return "The course no longer exists. Refresh the list."
	case errors.Is(err, api.ErrServer):
		return "The server could not complete the request. Try again shortly."
	default:
		return "Something went wrong. Try again."
	}
}

func buildRow(course api.Course, languages, levels, categories api.Catalog) Row {
	row := Row{
		ID:          course.TrimmedID(),
		Name:        course.Name,
		Creator:     course.Creator,
		StudyTime:   course.StudyTime,
		Price:       course.Price,
		Status:      course.Status.Display(),
		StatusLabel: course.Status.Label(),
		Language:    languages.Label(course.LanguageID),
		Level:       levels.Label(course.LevelID),
		CanModify:   course.Status.Display() != api.StatusRemoved,
	}
	if len(course.ImageURLs) > 0 {
		row.ImageURL = course.ImageURLs[0]
	}
	for _, id := range course.CategoryIDs {
		row.Categories = append(row.Categories, categories.Label(id))
	}
	return row
}
