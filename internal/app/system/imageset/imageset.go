// Package imageset manages the set of course images being edited: up
// to MaxImages slots, each holding either an image already stored on
// the backend or a newly staged upload. Changes are validated against
// the slot limit, the extension allow-list, and the upload size cap
// before they take effect, so a rejected file never disturbs the set.
package imageset

import (
	"fmt"
	"path"
	"strings"
)

// MaxImages is the most images a course may carry.
const MaxImages = 4

// MaxUploadBytes caps a single staged upload at 10 MiB.
const MaxUploadBytes = 10 << 20

// allowedExtensions is the lowercase accept list for staged uploads.
var allowedExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
}

// LimitExceededError is returned when staging a file would push the set
// past MaxImages.
type LimitExceededError struct {
	Limit int
}

func (e *LimitExceededError) Error() string {
	return fmt.Sprintf("image limit of %d reached", e.Limit)
}

// InvalidExtensionError is returned for a staged file whose extension
// is not on the accept list.
type InvalidExtensionError struct {
	Filename string
}

func (e *InvalidExtensionError) Error() string {
	return fmt.Sprintf("%s: file type not allowed (use jpg, jpeg, png, or gif)", e.Filename)
}

// TooLargeError is returned for a staged file over MaxUploadBytes.
type TooLargeError struct {
	Filename string
	Size     int64
}

func (e *TooLargeError) Error() string {
	return fmt.Sprintf("%s: file exceeds the 10 MB limit", e.Filename)
}

// Kind discriminates what a Slot holds.
type Kind int

const (
	// Existing is an image already stored on the backend, identified
	// by its URL.
	Existing Kind = iota
	// Staged is a newly selected upload held in memory until submit.
	Staged
)

// Slot is one image position in the set.
type Slot struct {
	Kind     Kind
	URL      string // Existing: backend image URL
	Filename string // Staged: original upload filename
	Size     int64  // Staged: upload size in bytes
	Data     []byte // Staged: upload contents
}

// Set holds a course's images during an edit session. The zero value
// is an empty set; Initialize resets it to the backend's stored images.
type Set struct {
	slots   []Slot
	removed []string
}

// Initialize replaces the set with the backend's stored image URLs and
// clears any staged uploads and removal records. Duplicate URLs
// collapse to one slot; otherwise removing one copy would mark the URL
// removed while another slot still kept it.
func (s *Set) Initialize(urls []string) {
	s.slots = s.slots[:0]
	s.removed = nil
	seen := make(map[string]bool, len(urls))
	for _, u := range urls {
		if len(s.slots) == MaxImages {
			break
		}
		if seen[u] {
			continue
		}
		seen[u] = true
		s.slots = append(s.slots, Slot{Kind: Existing, URL: u})
	}
}

// Slots returns the current slots in display order.
func (s *Set) Slots() []Slot { return s.slots }

// Len returns the number of occupied slots.
func (s *Set) Len() int { return len(s.slots) }

// Full reports whether the set has no room for another image.
func (s *Set) Full() bool { return len(s.slots) >= MaxImages }

// Validate checks a candidate upload against the slot limit, the
// extension allow-list, and the size cap without changing the set.
// The checks run in that order, so a full set reports the limit error
// even for a file that would also fail the other checks.
func (s *Set) Validate(filename string, size int64) error {
	if s.Full() {
		return &LimitExceededError{Limit: MaxImages}
	}
	ext := strings.ToLower(path.Ext(filename))
	if !allowedExtensions[ext] {
		return &InvalidExtensionError{Filename: filename}
	}
	if size > MaxUploadBytes {
		return &TooLargeError{Filename: filename, Size: size}
	}
	return nil
}

// Stage validates an upload and, if accepted, appends it to the set.
func (s *Set) Stage(filename string, data []byte) error {
	if err := s.Validate(filename, int64(len(data))); err != nil {
		return err
	}
	s.slots = append(s.slots, Slot{
		Kind:     Staged,
		Filename: filename,
		Size:     int64(len(data)),
		Data:     data,
	})
	return nil
}

// Remove deletes the slot at index i. Removing an existing image
// records its URL for the submission's removal list; removing a staged
// upload just discards it. Out-of-range indexes are ignored.
func (s *Set) Remove(i int) {
	if i < 0 || i >= len(s.slots) {
		return
	}
	slot := s.slots[i]
	if slot.Kind == Existing {
		s.removed = append(s.removed, slot.URL)
	}
	s.slots = append(s.slots[:i], s.slots[i+1:]...)
}

// Submission is what a save request needs from the set: the uploads to
// attach and the stored image URLs to delete.
type Submission struct {
	Staged      []Slot
	RemovedURLs []string
}

// BuildSubmission derives the save payload from the current state. It
// does not change the set, so calling it repeatedly yields the same
// result until the next Stage or Remove.
func (s *Set) BuildSubmission() Submission {
	var sub Submission
	for _, slot := range s.slots {
		if slot.Kind == Staged {
			sub.Staged = append(sub.Staged, slot)
		}
	}
	sub.RemovedURLs = append(sub.RemovedURLs, s.removed...)
	return sub
}
