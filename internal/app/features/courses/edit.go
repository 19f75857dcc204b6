// internal/app/features/courses/edit.go
package courses

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"

	"github.com/edufront/edufront/internal/app/api"
	"github.com/edufront/edufront/internal/app/courseedit"
	uierrors "github.com/edufront/edufront/internal/app/features/errors"
	"github.com/edufront/edufront/internal/app/system/htmlsanitize"
	"github.com/edufront/edufront/internal/app/system/imageset"
	"github.com/edufront/edufront/internal/app/system/limits"
	"github.com/edufront/edufront/internal/app/system/navigation"
	"github.com/edufront/edufront/internal/app/system/timeouts"
	"github.com/edufront/edufront/internal/app/system/viewdata"
)

type slotVM struct {
	Index      int
	IsExisting bool
	URL        string
	Filename   string
	SizeKB     int64
}

type formVM struct {
	Name        string
	Description string
	StudyTime   string
	Status      string
	LanguageID  string
	LevelID     string
	Price       string
	CategoryIDs map[string]bool
}

type editData struct {
	viewdata.BaseVM
	IsNew    bool
	CourseID string
	Form     formVM

	Languages  []api.Option
	Levels     []api.Option
	Categories []api.Option

	Slots        []slotVM
	SlotsFull    bool
	MaxImages    int
	ImageMessage string

	Errors  courseedit.ValidationErrors
	Message string

	ReturnURL string
}

// ServeEdit loads a course into the session's editor and renders the
// edit form.
// GET /admin/courses/{id}/edit
func (h *Handler) ServeEdit(w http.ResponseWriter, r *http.Request) {
	key, ok := h.viewKey(w, r)
	if !ok {
		return
	}

	id := chi.URLParam(r, "id")
	back := navigation.SafeBackURL(r, navigation.CoursesBackURL)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	ctrl := h.Edits.For(key)
	if err := ctrl.Load(ctx, id); err != nil {
		if errors.Is(err, api.ErrNotFound) {
			uierrors.RenderNotFound(w, r, "The course no longer exists.", back)
			return
		}
		uierrors.RenderServerError(w, r, h.Log, err,
			"Loading the course failed. Try again shortly.", back)
		return
	}

	view, _ := ctrl.View()
	data := h.buildEditData(r, view, formFromCourse(view.Course), nil, "", "")
	templates.Render(w, r, "course_edit", data)
}

// HandleUpdate validates the posted fields and submits the multipart
// update, including staged images and recorded removals. Validation
// failures re-render the form as typed with field messages.
// POST /admin/courses/{id}/edit
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
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
	back := navigation.SafeBackURL(r, navigation.CoursesBackURL)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	ctrl := h.Edits.For(key)
	err := ctrl.Submit(ctx, form.controllerForm())
	if err == nil {
		http.Redirect(w, r, back, http.StatusSeeOther)
		return
	}

	view, loaded := ctrl.View()
	if !loaded {
		uierrors.RenderServerError(w, r, h.Log, err,
			"The editing session expired. Open the course again.", back)
		return
	}

	var verrs courseedit.ValidationErrors
	if errors.As(err, &verrs) {
		data := h.buildEditData(r, view, form, verrs, "", "")
		templates.Render(w, r, "course_edit", data)
		return
	}

	data := h.buildEditData(r, view, form, nil, courseedit.SubmitMessage(err), "")
	templates.Render(w, r, "course_edit", data)
}

// HandleImageUpload stages one picked file into the editor's image
// set. Rejections re-render the slots with the reason; nothing is sent
// to the backend until the form is submitted.
// POST /admin/courses/{id}/edit/images
func (h *Handler) HandleImageUpload(w http.ResponseWriter, r *http.Request) {
	key, ok := h.viewKey(w, r)
	if !ok {
		return
	}
	if err := r.ParseMultipartForm(imageset.MaxUploadBytes + (1 << 20)); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	ctrl := h.Edits.For(key)

	msg := ""
	file, header, err := r.FormFile("attachment")
	if err != nil {
		msg = "Pick a file to upload."
	} else {
		defer file.Close()
		// Read one byte past the cap so oversize files fail the size
		// check instead of silently truncating.
		data, readErr := io.ReadAll(io.LimitReader(file, imageset.MaxUploadBytes+1))
		if readErr != nil {
			msg = "Reading the file failed. Try again."
		} else if stageErr := ctrl.StageImage(header.Filename, data); stageErr != nil {
			msg = imageMessage(stageErr)
		}
	}

	h.respondImages(w, r, ctrl, msg)
}

// HandleImageRemove drops the slot at the posted index. Removing a
// stored image only records the URL; deletion happens on submit.
// POST /admin/courses/{id}/edit/images/remove
func (h *Handler) HandleImageRemove(w http.ResponseWriter, r *http.Request) {
	key, ok := h.viewKey(w, r)
	if !ok {
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	ctrl := h.Edits.For(key)
	if i, err := strconv.Atoi(strings.TrimSpace(r.FormValue("slot"))); err == nil {
		ctrl.RemoveImage(i)
	}

	h.respondImages(w, r, ctrl, "")
}

func (h *Handler) respondImages(w http.ResponseWriter, r *http.Request, ctrl *courseedit.Controller, msg string) {
	view, _ := ctrl.View()

	if r.Header.Get("HX-Request") != "" {
		data := h.buildEditData(r, view, formVM{}, nil, "", msg)
		templates.RenderSnippet(w, "course_images", data)
		return
	}

	dest := "/admin/courses/" + view.CourseID + "/edit"
	if view.CourseID == "" {
		dest = "/admin/courses/new"
	}
	http.Redirect(w, r, dest, http.StatusSeeOther)
}

func (h *Handler) buildEditData(r *http.Request, view courseedit.View, form formVM, verrs courseedit.ValidationErrors, msg, imageMsg string) editData {
	back := navigation.SafeBackURL(r, navigation.CoursesBackURL)

	title := "Edit course"
	if view.CourseID == "" {
		title = "New course"
	}

	return editData{
		BaseVM:   viewdata.NewBaseVM(r, title, back),
		IsNew:    view.CourseID == "",
		CourseID: view.CourseID,
		Form:     form,

		Languages:  view.Languages,
		Levels:     view.Levels,
		Categories: view.Categories,

		Slots:        h.slotVMs(view.Slots),
		SlotsFull:    view.SlotsFull,
		MaxImages:    imageset.MaxImages,
		ImageMessage: imageMsg,

		Errors:  verrs,
		Message: msg,

		ReturnURL: back,
	}
}

func (h *Handler) slotVMs(slots []imageset.Slot) []slotVM {
	out := make([]slotVM, 0, len(slots))
	for i, s := range slots {
		vm := slotVM{Index: i, IsExisting: s.Kind == imageset.Existing}
		if vm.IsExisting {
			vm.URL = h.imageURL(s.URL)
		} else {
			vm.Filename = s.Filename
			vm.SizeKB = s.Size / 1024
		}
		out = append(out, vm)
	}
	return out
}

func formFromCourse(c api.Course) formVM {
	cats := make(map[string]bool, len(c.CategoryIDs))
	for _, id := range c.CategoryIDs {
		cats[strconv.Itoa(id)] = true
	}
	return formVM{
		Name:        c.Name,
		Description: c.Description,
		StudyTime:   c.StudyTime,
		Status:      strconv.Itoa(int(c.Status.Display())),
		LanguageID:  strconv.Itoa(c.LanguageID),
		LevelID:     strconv.Itoa(c.LevelID),
		Price:       strconv.FormatFloat(c.Price, 'f', -1, 64),
		CategoryIDs: cats,
	}
}

func formFromRequest(r *http.Request) formVM {
	cats := make(map[string]bool, len(r.Form["categoryIDs"]))
	for _, id := range r.Form["categoryIDs"] {
		cats[strings.TrimSpace(id)] = true
	}
	return formVM{
		Name:        r.FormValue("name"),
		Description: htmlsanitize.Sanitize(r.FormValue("description")),
		StudyTime:   r.FormValue("studyTime"),
		Status:      r.FormValue("status"),
		LanguageID:  r.FormValue("languageID"),
		LevelID:     r.FormValue("levelID"),
		Price:       r.FormValue("price"),
		CategoryIDs: cats,
	}
}

func (f formVM) controllerForm() courseedit.Form {
	ids := make([]string, 0, len(f.CategoryIDs))
	for id := range f.CategoryIDs {
		ids = append(ids, id)
	}
	return courseedit.Form{
		Name:        f.Name,
		Description: f.Description,
		StudyTime:   f.StudyTime,
		Status:      f.Status,
		LanguageID:  f.LanguageID,
		LevelID:     f.LevelID,
		Price:       f.Price,
		CategoryIDs: ids,
	}
}

func imageMessage(err error) string {
	var limitErr *imageset.LimitExceededError
	var extErr *imageset.InvalidExtensionError
	var sizeErr *imageset.TooLargeError
	switch {
	case errors.As(err, &limitErr):
		return "A course can have at most " + strconv.Itoa(limitErr.Limit) + " images."
	case errors.As(err, &extErr):
		return "Only JPG, JPEG, PNG and GIF images are accepted."
	case errors.As(err, &sizeErr):
		return "Images must be 10 MiB or smaller."
	}
	return "The image could not be added. Try again."
}
