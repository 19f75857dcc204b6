// Package paging computes numbered-page pagination for the admin lists.
//
// The backend paginates by page/pageSize and reports the authoritative
// total through a count header, so this package works purely on those
// numbers: a PageState validated against the allowed page sizes, and a
// bounded window of page numbers centered on the current page for the
// pager controls.
package paging

import (
	"net/http"
	"strconv"

	"github.com/dalemusser/waffle/pantry/query"
)

// DefaultPageSize is the page size used when the request does not name
// a valid one.
const DefaultPageSize = 10

// DefaultWindowSize is how many numbered page controls the pager shows.
const DefaultWindowSize = 5

// AllowedPageSizes is the enumerated set a request may select.
var AllowedPageSizes = []int{10, 20, 50}

// PageState describes one page of a paged list. Total always comes
// from the backend's count header; it is never inferred from the page
// length, which is bounded by PageSize regardless of the total.
type PageState struct {
	Current  int
	PageSize int
	Total    int
}

// TotalPages returns the number of pages, at least 1.
func (p PageState) TotalPages() int {
	if p.PageSize <= 0 || p.Total <= 0 {
		return 1
	}
	n := (p.Total + p.PageSize - 1) / p.PageSize
	if n < 1 {
		return 1
	}
	return n
}

// Clamped returns a copy with Current forced into [1, TotalPages()].
func (p PageState) Clamped() PageState {
	if p.Current < 1 {
		p.Current = 1
	}
	if max := p.TotalPages(); p.Current > max {
		p.Current = max
	}
	return p
}

// HasPrev reports whether a previous page exists.
func (p PageState) HasPrev() bool { return p.Current > 1 }

// HasNext reports whether a next page exists.
func (p PageState) HasNext() bool { return p.Current < p.TotalPages() }

// ParsePage extracts the 1-based "page" query parameter.
// Returns 1 if not present or invalid.
func ParsePage(r *http.Request) int {
	s := query.Get(r, "page")
	if s == "" {
		return 1
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return 1
	}
	return n
}

// ParsePageSize extracts the "pageSize" query parameter, constrained
// to AllowedPageSizes. Returns DefaultPageSize otherwise.
func ParsePageSize(r *http.Request) int {
	s := query.Get(r, "pageSize")
	if s == "" {
		return DefaultPageSize
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return DefaultPageSize
	}
	for _, allowed := range AllowedPageSizes {
		if n == allowed {
			return n
		}
	}
	return DefaultPageSize
}

// Window returns the ordered page numbers to render as pager controls:
// a run of min(size, total) consecutive pages containing current,
// centered on it where possible and re-clamped at both edges.
//
// Callers should not render a pager at all when total <= 1.
func Window(current, total, size int) []int {
	if total < 1 || size < 1 {
		return nil
	}
	if current < 1 {
		current = 1
	}
	if current > total {
		current = total
	}

	start := current - size/2
	if start < 1 {
		start = 1
	}
	end := start + size - 1
	if end > total {
		end = total
	}
	// Re-clamp the start so the window keeps its full width when the
	// current page sits near the right edge.
	if start > end-size+1 {
		start = end - size + 1
		if start < 1 {
			start = 1
		}
	}

	pages := make([]int, 0, end-start+1)
	for p := start; p <= end; p++ {
		pages = append(pages, p)
	}
	return pages
}

// Decorations are the jump-to-first/last controls and ellipses drawn
// around a window.
type Decorations struct {
	ShowFirst        bool // window starts after page 1
	LeadingEllipsis  bool // gap between page 1 and the window
	ShowLast         bool // window ends before the last page
	TrailingEllipsis bool // gap between the window and the last page
}

// Decorate derives the boundary controls for a window over total pages.
func Decorate(window []int, total int) Decorations {
	if len(window) == 0 {
		return Decorations{}
	}
	first := window[0]
	last := window[len(window)-1]
	return Decorations{
		ShowFirst:        first > 1,
		LeadingEllipsis:  first > 2,
		ShowLast:         last < total,
		TrailingEllipsis: last < total-1,
	}
}
