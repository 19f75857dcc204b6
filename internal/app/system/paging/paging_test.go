package paging

import (
	"net/http/httptest"
	"reflect"
	"testing"
)

func TestWindow(t *testing.T) {
	cases := []struct {
		name    string
		current int
		total   int
		size    int
		want    []int
	}{
		{"empty list", 1, 0, 5, nil},
		{"single page", 1, 1, 5, []int{1}},
		{"fewer pages than window", 2, 3, 5, []int{1, 2, 3}},
		{"exactly window size", 3, 5, 5, []int{1, 2, 3, 4, 5}},
		{"centered in middle", 5, 9, 5, []int{3, 4, 5, 6, 7}},
		{"clamped at left edge", 1, 9, 5, []int{1, 2, 3, 4, 5}},
		{"near left edge", 2, 9, 5, []int{1, 2, 3, 4, 5}},
		{"clamped at right edge", 9, 9, 5, []int{5, 6, 7, 8, 9}},
		{"near right edge", 8, 9, 5, []int{5, 6, 7, 8, 9}},
		{"current below range", -3, 9, 5, []int{1, 2, 3, 4, 5}},
		{"current above range", 40, 9, 5, []int{5, 6, 7, 8, 9}},
		{"window of one", 4, 9, 1, []int{4}},
		{"even window", 5, 9, 4, []int{3, 4, 5, 6}},
		{"zero window", 5, 9, 0, nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Window(tc.current, tc.total, tc.size)
			if !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("Window(%d, %d, %d) = %v, want %v",
					tc.current, tc.total, tc.size, got, tc.want)
			}
		})
	}
}

func TestWindowAlwaysContainsCurrent(t *testing.T) {
	for total := 1; total <= 20; total++ {
		for current := 1; current <= total; current++ {
			got := Window(current, total, 5)
			wantLen := 5
			if total < wantLen {
				wantLen = total
			}
			if len(got) != wantLen {
				t.Fatalf("Window(%d, %d, 5) has %d entries, want %d",
					current, total, len(got), wantLen)
			}
			found := false
			for i, p := range got {
				if i > 0 && p != got[i-1]+1 {
					t.Fatalf("Window(%d, %d, 5) = %v is not consecutive", current, total, got)
				}
				if p == current {
					found = true
				}
			}
			if !found {
				t.Fatalf("Window(%d, %d, 5) = %v omits the current page", current, total, got)
			}
		}
	}
}

func TestDecorate(t *testing.T) {
	cases := []struct {
		name   string
		window []int
		total  int
		want   Decorations
	}{
		{"whole range shown", []int{1, 2, 3}, 3, Decorations{}},
		{"window at start", []int{1, 2, 3, 4, 5}, 9, Decorations{ShowLast: true, TrailingEllipsis: true}},
		{"window at end", []int{5, 6, 7, 8, 9}, 9, Decorations{ShowFirst: true, LeadingEllipsis: true}},
		{"window in middle", []int{4, 5, 6, 7, 8}, 12, Decorations{
			ShowFirst: true, LeadingEllipsis: true, ShowLast: true, TrailingEllipsis: true,
		}},
		{"adjacent to first", []int{2, 3, 4, 5, 6}, 6, Decorations{ShowFirst: true}},
		{"adjacent to last", []int{1, 2, 3, 4, 5}, 6, Decorations{ShowLast: true}},
		{"empty window", nil, 9, Decorations{}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Decorate(tc.window, tc.total); got != tc.want {
				t.Fatalf("Decorate(%v, %d) = %+v, want %+v", tc.window, tc.total, got, tc.want)
			}
		})
	}
}

func TestPageStateTotalPages(t *testing.T) {
	cases := []struct {
		name  string
		state PageState
		want  int
	}{
		{"empty", PageState{Current: 1, PageSize: 10, Total: 0}, 1},
		{"partial page", PageState{Current: 1, PageSize: 10, Total: 7}, 1},
		{"exact multiple", PageState{Current: 1, PageSize: 10, Total: 30}, 3},
		{"remainder", PageState{Current: 1, PageSize: 10, Total: 23}, 3},
		{"zero page size", PageState{Current: 1, PageSize: 0, Total: 23}, 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.state.TotalPages(); got != tc.want {
				t.Fatalf("TotalPages() = %d, want %d", got, tc.want)
			}
		})
	}
}

func TestPageStateClamped(t *testing.T) {
	s := PageState{Current: 9, PageSize: 10, Total: 23}
	if got := s.Clamped().Current; got != 3 {
		t.Fatalf("Clamped().Current = %d, want 3", got)
	}
	s = PageState{Current: 0, PageSize: 10, Total: 23}
	if got := s.Clamped().Current; got != 1 {
		t.Fatalf("Clamped().Current = %d, want 1", got)
	}
}

func TestPageStatePrevNext(t *testing.T) {
	s := PageState{Current: 1, PageSize: 10, Total: 23}
	if s.HasPrev() {
		t.Fatal("first page should not have a previous page")
	}
	if !s.HasNext() {
		t.Fatal("first of three pages should have a next page")
	}
	s.Current = 3
	if !s.HasPrev() || s.HasNext() {
		t.Fatalf("last page: HasPrev=%v HasNext=%v", s.HasPrev(), s.HasNext())
	}
}

func TestParsePage(t *testing.T) {
	cases := []struct {
		query string
		want  int
	}{
		{"", 1},
		{"page=3", 3},
		{"page=0", 1},
		{"page=-2", 1},
		{"page=abc", 1},
	}
	for _, tc := range cases {
		r := httptest.NewRequest("GET", "/courses?"+tc.query, nil)
		if got := ParsePage(r); got != tc.want {
			t.Fatalf("ParsePage(%q) = %d, want %d", tc.query, got, tc.want)
		}
	}
}

func TestParsePageSize(t *testing.T) {
	cases := []struct {
		query string
		want  int
	}{
		{"", DefaultPageSize},
		{"pageSize=10", 10},
		{"pageSize=20", 20},
		{"pageSize=50", 50},
		{"pageSize=15", DefaultPageSize},
		{"pageSize=zero", DefaultPageSize},
	}
	for _, tc := range cases {
		r := httptest.NewRequest("GET", "/courses?"+tc.query, nil)
		if got := ParsePageSize(r); got != tc.want {
			t.Fatalf("ParsePageSize(%q) = %d, want %d", tc.query, got, tc.want)
		}
	}
}
