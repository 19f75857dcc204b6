package api

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
)

// Status is the course lifecycle state as the backend encodes it.
//
// The backend is inconsistent about the wire encoding: the same field
// arrives sometimes as a JSON number and sometimes as a numeral in a
// string. Normalization happens here, at the client boundary, so the
// rest of the app only ever sees the enum.
type Status int

const (
	StatusDraft   Status = 0
	StatusActive  Status = 1
	StatusRemoved Status = -1
)

// UnmarshalJSON accepts 1, "1", -1, "-1" and so on.
func (s *Status) UnmarshalJSON(data []byte) error {
	raw := string(bytes.Trim(bytes.TrimSpace(data), `"`))
	if raw == "" || raw == "null" {
		*s = StatusDraft
		return nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return fmt.Errorf("api: unparsable status %q", raw)
	}
	*s = Status(n)
	return nil
}

// Known reports whether the value is one of the documented states.
// The admin UI renders anything unknown as removed; whether -1 is a
// genuine backend value or a client-side sentinel is still unconfirmed
// against the backend contract, so we do not rely on it round-tripping.
func (s Status) Known() bool {
	switch s {
	case StatusDraft, StatusActive, StatusRemoved:
		return true
	}
	return false
}

// Display collapses unknown values to StatusRemoved for rendering.
func (s Status) Display() Status {
	if !s.Known() {
		return StatusRemoved
	}
	return s
}

// Label returns the English display label for a status.
func (s Status) Label() string {
	switch s.Display() {
	case StatusActive:
		return "Active"
	case StatusDraft:
		return "Draft"
	default:
		return "Removed"
	}
}

// Course is the backend's course read model.
//
// The backend is known to return identifiers padded with incidental
// whitespace; ID is trimmed during decode via TrimmedID, and callers
// must use the trimmed form for all follow-up requests.
type Course struct {
	ID          string   `json:"courseID"`
	Name        string   `json:"courseName"`
	Description string   `json:"description"`
	Creator     string   `json:"creator"`
	StudyTime   string   `json:"studyTime"`
	Price       float64  `json:"currentPrice"`
	Status      Status   `json:"status"`
	CategoryIDs []int    `json:"categoryIDs"`
	LanguageID  int      `json:"languageID"`
	LevelID     int      `json:"levelID"`
	ImageURLs   []string `json:"imageUrls"`
}

// TrimmedID returns the identifier without surrounding whitespace.
func (c Course) TrimmedID() string {
	return strings.TrimSpace(c.ID)
}

// Option is one entry of a reference catalog (language, level, category).
type Option struct {
	ID   int
	Name string
}

// Catalog is an id -> display-label lookup built from a reference
// catalog response. Missing keys denormalize to "N/A".
type Catalog map[int]string

// MissingLabel is what a dangling foreign key renders as.
const MissingLabel = "N/A"

// Label resolves an id to its display label.
func (c Catalog) Label(id int) string {
	if name, ok := c[id]; ok {
		return name
	}
	return MissingLabel
}

// Attachment is one new image file for a course update.
type Attachment struct {
	Filename string
	Data     []byte
}

// UpdateCourseForm is the multipart payload for PUT /api/Courses/{id}.
type UpdateCourseForm struct {
	Name        string
	Description string
	StudyTime   string
	Status      Status
	LanguageID  int
	LevelID     int
	Price       float64
	CategoryIDs []int

	Attachments      []Attachment
	RemovedImageURLs []string
}
