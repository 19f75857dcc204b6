// Package courseedit drives the course editor: loading a course with
// its reference catalogs, managing the image slots through an edit
// session, validating the form, and submitting the multipart update.
package courseedit

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/edufront/edufront/internal/app/api"
	"github.com/edufront/edufront/internal/app/system/imageset"
)

// EditAPI is the slice of the backend client the editor uses.
type EditAPI interface {
	GetCourse(ctx context.Context, id string) (api.Course, error)
	UpdateCourse(ctx context.Context, id string, form api.UpdateCourseForm) error
	CreateCourse(ctx context.Context, form api.UpdateCourseForm) error
	Languages(ctx context.Context) ([]api.Option, error)
	Levels(ctx context.Context) ([]api.Option, error)
	Categories(ctx context.Context) ([]api.Option, error)
}

// ValidationErrors maps form field names to their first failure
// message. It satisfies error so Submit can return it directly.
type ValidationErrors map[string]string

func (v ValidationErrors) Error() string {
	fields := make([]string, 0, len(v))
	for f := range v {
		fields = append(fields, f)
	}
	return "invalid fields: " + strings.Join(fields, ", ")
}

// Form is the raw editor input as posted. Everything stays a string
// until validation so a rejected form re-renders exactly as typed.
type Form struct {
	Name        string
	Description string
	StudyTime   string
	Status      string
	LanguageID  string
	LevelID     string
	Price       string
	CategoryIDs []string
}

// View is the editor state prepared for rendering.
type View struct {
	CourseID   string
	Course     api.Course
	Languages  []api.Option
	Levels     []api.Option
	Categories []api.Option
	Slots      []imageset.Slot
	SlotsFull  bool
}

// Controller holds one admin's editor state for the course being
// edited, including the staged image set.
type Controller struct {
	API EditAPI
	Log *zap.Logger

	mu         sync.Mutex
	courseID   string
	course     api.Course
	languages  []api.Option
	levels     []api.Option
	categories []api.Option
	images     imageset.Set
	loaded     bool
}

// New returns a controller bound to the backend client.
func New(apiClient EditAPI, logger *zap.Logger) *Controller {
	return &Controller{API: apiClient, Log: logger}
}

// Load fetches the course and the three reference catalogs
// concurrently, joining before any state is applied. Any failure fails
// the load and leaves the editor untouched. On success the image set
// is re-seeded from the course's stored image URLs, dropping any
// staged uploads from a previous session.
func (c *Controller) Load(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)

	var (
		wg         sync.WaitGroup
		course     api.Course
		languages  []api.Option
		levels     []api.Option
		categories []api.Option
		errs       [4]error
	)

	wg.Add(4)
	go func() {
		defer wg.Done()
		course, errs[0] = c.API.GetCourse(ctx, id)
	}()
	go func() {
		defer wg.Done()
		languages, errs[1] = c.API.Languages(ctx)
	}()
	go func() {
		defer wg.Done()
		levels, errs[2] = c.API.Levels(ctx)
	}()
	go func() {
		defer wg.Done()
		categories, errs[3] = c.API.Categories(ctx)
	}()
	wg.Wait()

	if err := errors.Join(errs[:]...); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.courseID = course.TrimmedID()
	c.course = course
	c.languages = languages
	c.levels = levels
	c.categories = categories
	c.images.Initialize(course.ImageURLs)
	c.loaded = true
	return nil
}

// LoadForCreate fetches just the reference catalogs and resets the
// editor to an empty course for the create form.
func (c *Controller) LoadForCreate(ctx context.Context) error {
	var (
		wg         sync.WaitGroup
		languages  []api.Option
		levels     []api.Option
		categories []api.Option
		errs       [3]error
	)

	wg.Add(3)
	go func() {
		defer wg.Done()
		languages, errs[0] = c.API.Languages(ctx)
	}()
	go func() {
		defer wg.Done()
		levels, errs[1] = c.API.Levels(ctx)
	}()
	go func() {
		defer wg.Done()
		categories, errs[2] = c.API.Categories(ctx)
	}()
	wg.Wait()

	if err := errors.Join(errs[:]...); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.courseID = ""
	c.course = api.Course{}
	c.languages = languages
	c.levels = levels
	c.categories = categories
	c.images.Initialize(nil)
	c.loaded = true
	return nil
}

// View returns the current editor state.
func (c *Controller) View() (View, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return View{
		CourseID:   c.courseID,
		Course:     c.course,
		Languages:  c.languages,
		Levels:     c.levels,
		Categories: c.categories,
		Slots:      c.images.Slots(),
		SlotsFull:  c.images.Full(),
	}, c.loaded
}

// StageImage admits a new upload into the image set. Rejections leave
// the set unchanged and carry the reason to show next to the picker.
func (c *Controller) StageImage(filename string, data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.images.Stage(filename, data); err != nil {
		if c.Log != nil {
			c.Log.Warn("image rejected",
				zap.String("course_id", c.courseID),
				zap.String("filename", filename),
				zap.Error(err))
		}
		return err
	}
	return nil
}

// RemoveImage drops the slot at index i.
func (c *Controller) RemoveImage(i int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.images.Remove(i)
}

// ErrNotLoaded reports a submit on an editor with no loaded course,
// typically after the session's controller was dropped.
var ErrNotLoaded = errors.New("no course loaded")

// Submit validates the form and sends the multipart update for the
// loaded course. A ValidationErrors or ErrNotLoaded return means
// nothing was sent.
func (c *Controller) Submit(ctx context.Context, f Form) error {
	parsed, verrs := f.Validate()
	if len(verrs) > 0 {
		return verrs
	}

	c.mu.Lock()
	if !c.loaded {
		c.mu.Unlock()
		return ErrNotLoaded
	}
	id := c.courseID
	sub := c.images.BuildSubmission()
	c.mu.Unlock()

	for _, slot := range sub.Staged {
		parsed.Attachments = append(parsed.Attachments, api.Attachment{
			Filename: slot.Filename,
			Data:     slot.Data,
		})
	}
	parsed.RemovedImageURLs = sub.RemovedURLs

	if err := c.API.UpdateCourse(ctx, id, parsed); err != nil {
		if c.Log != nil {
			c.Log.Warn("course update failed", zap.String("course_id", id), zap.Error(err))
		}
		return err
	}
	return nil
}

// Create validates the form and creates a new course. Staged images
// from the (unloaded) image set ride along the same way Submit sends
// them.
func (c *Controller) Create(ctx context.Context, f Form) error {
	parsed, verrs := f.Validate()
	if len(verrs) > 0 {
		return verrs
	}

	c.mu.Lock()
	sub := c.images.BuildSubmission()
	c.mu.Unlock()
	for _, slot := range sub.Staged {
		parsed.Attachments = append(parsed.Attachments, api.Attachment{
			Filename: slot.Filename,
			Data:     slot.Data,
		})
	}

	if err := c.API.CreateCourse(ctx, parsed); err != nil {
		if c.Log != nil {
			c.Log.Warn("course create failed", zap.Error(err))
		}
		return err
	}
	return nil
}

// Validate checks the required fields and parses the typed values.
func (f Form) Validate() (api.UpdateCourseForm, ValidationErrors) {
	verrs := ValidationErrors{}
	out := api.UpdateCourseForm{
		Name:        strings.TrimSpace(f.Name),
		Description: f.Description,
		StudyTime:   strings.TrimSpace(f.StudyTime),
	}

	if out.Name == "" {
		verrs["name"] = "Course name is required."
	}
	if out.StudyTime == "" {
		verrs["studyTime"] = "Study time is required."
	}

	if strings.TrimSpace(f.Status) == "" {
		verrs["status"] = "Select a status."
	} else if n, err := strconv.Atoi(strings.TrimSpace(f.Status)); err != nil {
		verrs["status"] = "Select a status."
	} else {
		out.Status = api.Status(n)
	}

	if n, ok := requiredInt(f.LanguageID); ok {
		out.LanguageID = n
	} else {
		verrs["languageID"] = "Select a language."
	}
	if n, ok := requiredInt(f.LevelID); ok {
		out.LevelID = n
	} else {
		verrs["levelID"] = "Select a level."
	}

	if p := strings.TrimSpace(f.Price); p != "" {
		n, err := strconv.ParseFloat(p, 64)
		if err != nil || n < 0 {
			verrs["price"] = "Price must be a non-negative number."
		} else {
			out.Price = n
		}
	}

	for _, raw := range f.CategoryIDs {
		n, ok := requiredInt(raw)
		if !ok {
			continue
		}
		out.CategoryIDs = append(out.CategoryIDs, n)
	}
	if len(out.CategoryIDs) == 0 {
		verrs["categoryIDs"] = "Pick at least one category."
	}

	return out, verrs
}

func requiredInt(raw string) (int, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, false
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return n, true
}

// SubmitMessage turns a Submit error into the banner text the editor
// shows: the backend's own words when it sent any, a generic fallback
// otherwise.
func SubmitMessage(err error) string {
	if text := api.ErrorText(err); text != "" {
		return text
	}
	return "Saving the course failed. Try again."
}
