package api

import (
	"bytes"
	"context"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/edufront/edufront/internal/app/system/httpx"
	"go.uber.org/zap"
)

// TotalCountHeader carries the authoritative total item count on list
// responses. The page length itself is never a substitute: it is
// bounded by pageSize regardless of how many courses exist.
const TotalCountHeader = "X-Total-Count"

// ListCourses fetches one page of courses. The returned total comes
// from the count header and defaults to 0 when absent or unparsable.
func (c *Client) ListCourses(ctx context.Context, page, pageSize int) ([]Course, int, error) {
	build := func(ctx context.Context) (*http.Request, error) {
		u := c.endpoint("api", "Courses")
		q := url.Values{}
		q.Set("page", strconv.Itoa(page))
		q.Set("pageSize", strconv.Itoa(pageSize))
		return http.NewRequestWithContext(ctx, http.MethodGet, u+"?"+q.Encode(), nil)
	}

	var courses []Course
	resp, err := httpx.DoJSON(ctx, c.HTTP, build, &courses, c.Retry)
	if err != nil {
		return nil, 0, mapError(err)
	}

	total := 0
	if v := resp.Header.Get(TotalCountHeader); v != "" {
		if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil && n >= 0 {
			total = n
		} else {
			c.Log.Warn("unparsable count header", zap.String("value", v))
		}
	}

	for i := range courses {
		courses[i].ID = courses[i].TrimmedID()
	}
	return courses, total, nil
}

// GetCourse fetches one course by (trimmed) id.
func (c *Client) GetCourse(ctx context.Context, id string) (Course, error) {
	id = strings.TrimSpace(id)

	build := func(ctx context.Context) (*http.Request, error) {
		return http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint("api", "Courses", url.PathEscape(id)), nil)
	}

	var course Course
	if _, err := httpx.DoJSON(ctx, c.HTTP, build, &course, c.Retry); err != nil {
		return Course{}, mapError(err)
	}
	course.ID = course.TrimmedID()
	return course, nil
}

// UpdateCourse PUTs a multipart update for one course: scalar fields,
// repeated category ids, repeated new image files, and repeated
// removed-image markers.
func (c *Client) UpdateCourse(ctx context.Context, id string, form UpdateCourseForm) error {
	id = strings.TrimSpace(id)

	body, contentType, err := encodeCourseForm(form)
	if err != nil {
		return err
	}

	build := func(ctx context.Context) (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPut,
			c.endpoint("api", "Courses", url.PathEscape(id)), bytes.NewReader(body))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", contentType)
		return req, nil
	}

	_, _, err = httpx.DoWithRetry(ctx, c.HTTP, build, c.Retry)
	return mapError(err)
}

// CreateCourse POSTs a new course using the same multipart shape as
// UpdateCourse.
func (c *Client) CreateCourse(ctx context.Context, form UpdateCourseForm) error {
	body, contentType, err := encodeCourseForm(form)
	if err != nil {
		return err
	}

	build := func(ctx context.Context) (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost,
			c.endpoint("api", "Courses"), bytes.NewReader(body))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", contentType)
		return req, nil
	}

	_, _, err = httpx.DoWithRetry(ctx, c.HTTP, build, c.Retry)
	return mapError(err)
}

// DeleteCourse deletes one course by (trimmed) id.
func (c *Client) DeleteCourse(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)

	build := func(ctx context.Context) (*http.Request, error) {
		return http.NewRequestWithContext(ctx, http.MethodDelete, c.endpoint("api", "Courses", url.PathEscape(id)), nil)
	}

	_, _, err := httpx.DoWithRetry(ctx, c.HTTP, build, c.Retry)
	return mapError(err)
}

// encodeCourseForm builds the multipart body once so retries can
// resend it from a byte slice instead of replaying readers.
func encodeCourseForm(form UpdateCourseForm) ([]byte, string, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	fields := map[string]string{
		"CourseName":  form.Name,
		"Description": form.Description,
		"StudyTime":   form.StudyTime,
		"Status":      strconv.Itoa(int(form.Status)),
		"LanguageID":  strconv.Itoa(form.LanguageID),
		"LevelID":     strconv.Itoa(form.LevelID),
		"Price":       strconv.FormatFloat(form.Price, 'f', -1, 64),
	}
	for name, value := range fields {
		if err := mw.WriteField(name, value); err != nil {
			return nil, "", fmt.Errorf("api: write field %s: %w", name, err)
		}
	}

	for _, id := range form.CategoryIDs {
		if err := mw.WriteField("CategoryIDs", strconv.Itoa(id)); err != nil {
			return nil, "", fmt.Errorf("api: write category id: %w", err)
		}
	}

	for _, att := range form.Attachments {
		fw, err := mw.CreateFormFile("AttachmentFiles", att.Filename)
		if err != nil {
			return nil, "", fmt.Errorf("api: attach %s: %w", att.Filename, err)
		}
		if _, err := fw.Write(att.Data); err != nil {
			return nil, "", fmt.Errorf("api: attach %s: %w", att.Filename, err)
		}
	}

	for _, u := range form.RemovedImageURLs {
		if err := mw.WriteField("RemovedImageUrls", u); err != nil {
			return nil, "", fmt.Errorf("api: write removed url: %w", err)
		}
	}

	if err := mw.Close(); err != nil {
		return nil, "", err
	}
	return buf.Bytes(), mw.FormDataContentType(), nil
}
