package courselist

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"sync"
	"testing"

	"go.uber.org/zap"

	"github.com/edufront/edufront/internal/app/api"
)

type fakeBackend struct {
	mu        sync.Mutex
	listCalls int

	listFn   func(ctx context.Context, page, pageSize int) ([]api.Course, int, error)
	deleteFn func(ctx context.Context, id string) error

	languages  []api.Option
	levels     []api.Option
	categories []api.Option
	langErr    error
	levelErr   error
	catErr     error
}

func (f *fakeBackend) ListCourses(ctx context.Context, page, pageSize int) ([]api.Course, int, error) {
	f.mu.Lock()
	f.listCalls++
	f.mu.Unlock()
	return f.listFn(ctx, page, pageSize)
}

func (f *fakeBackend) DeleteCourse(ctx context.Context, id string) error {
	if f.deleteFn == nil {
		return nil
	}
	return f.deleteFn(ctx, id)
}

func (f *fakeBackend) Languages(ctx context.Context) ([]api.Option, error) {
	return f.languages, f.langErr
}

func (f *fakeBackend) Levels(ctx context.Context) ([]api.Option, error) {
	return f.levels, f.levelErr
}

func (f *fakeBackend) Categories(ctx context.Context) ([]api.Option, error) {
	return f.categories, f.catErr
}

func (f *fakeBackend) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.listCalls
}

func referenceOptions(f *fakeBackend) {
	f.languages = []api.Option{{ID: 1, Name: "English"}, {ID: 2, Name: "Spanish"}}
	f.levels = []api.Option{{ID: 1, Name: "Beginner"}, {ID: 2, Name: "Advanced"}}
	f.categories = []api.Option{{ID: 3, Name: "Math"}, {ID: 5, Name: "Science"}}
}

func TestLoadPageDenormalizes(t *testing.T) {
	backend := &fakeBackend{}
	referenceOptions(backend)
	backend.listFn = func(_ context.Context, page, pageSize int) ([]api.Course, int, error) {
		if page != 2 || pageSize != 10 {
			t.Errorf("ListCourses(%d, %d), want (2, 10)", page, pageSize)
		}
		return []api.Course{
			{
				ID: "  c-101  ", Name: "Algebra", Creator: "Ada",
				StudyTime: "6h", Price: 19.99, Status: api.StatusActive,
				LanguageID: 1, LevelID: 2, CategoryIDs: []int{3, 9},
				ImageURLs: []string{"/img/a.png"},
			},
			{
				ID: "c-102", Name: "Old course", Status: api.StatusRemoved,
				LanguageID: 42, LevelID: 1, CategoryIDs: []int{5},
			},
		}, 23, nil
	}

	c := New(backend, zap.NewNop())
	view, err := c.LoadPage(context.Background(), 2, 10)
	if err != nil {
		t.Fatalf("LoadPage: %v", err)
	}

	if view.Page.Current != 2 || view.Page.PageSize != 10 || view.Page.Total != 23 {
		t.Fatalf("Page = %+v, want {2 10 23}", view.Page)
	}
	if len(view.Rows) != 2 {
		t.Fatalf("len(Rows) = %d, want 2", len(view.Rows))
	}

	first := view.Rows[0]
	if first.ID != "c-101" {
		t.Errorf("ID = %q, want trimmed c-101", first.ID)
	}
	if first.Language != "English" || first.Level != "Advanced" {
		t.Errorf("labels = %q/%q, want English/Advanced", first.Language, first.Level)
	}
	if !reflect.DeepEqual(first.Categories, []string{"Math", "N/A"}) {
		t.Errorf("Categories = %v, want [Math N/A]", first.Categories)
	}
	if !first.CanModify {
		t.Error("active course should be modifiable")
	}
	if first.ImageURL != "/img/a.png" {
		t.Errorf("ImageURL = %q", first.ImageURL)
	}

	second := view.Rows[1]
	if second.Language != "N/A" {
		t.Errorf("dangling language = %q, want N/A", second.Language)
	}
	if second.CanModify {
		t.Error("removed course must not be modifiable")
	}
	if second.StatusLabel != "Removed" {
		t.Errorf("StatusLabel = %q, want Removed", second.StatusLabel)
	}
}

func TestLoadPageFailsAsAWhole(t *testing.T) {
	backend := &fakeBackend{}
	referenceOptions(backend)
	backend.listFn = func(context.Context, int, int) ([]api.Course, int, error) {
		return []api.Course{{ID: "c-1", Name: "Seeded"}}, 1, nil
	}

	c := New(backend, zap.NewNop())
	if _, err := c.LoadPage(context.Background(), 1, 10); err != nil {
		t.Fatalf("seed load: %v", err)
	}

	backend.levelErr = errors.New("levels unavailable")
	if _, err := c.LoadPage(context.Background(), 2, 10); err == nil {
		t.Fatal("LoadPage should fail when any fetch fails")
	}

	view, ok := c.View()
	if !ok {
		t.Fatal("prior view should survive a failed load")
	}
	if view.Page.Current != 1 || len(view.Rows) != 1 || view.Rows[0].Name != "Seeded" {
		t.Fatalf("view after failed load = %+v, want the seeded page", view)
	}
}

func TestStaleLoadIsDiscarded(t *testing.T) {
	backend := &fakeBackend{}
	referenceOptions(backend)

	inFlight := make(chan struct{})
	release := make(chan struct{})
	backend.listFn = func(_ context.Context, page, _ int) ([]api.Course, int, error) {
		if page == 1 {
			close(inFlight)
			<-release
		}
		return []api.Course{{ID: fmt.Sprintf("page-%d", page)}}, 23, nil
	}

	c := New(backend, zap.NewNop())

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		if _, err := c.LoadPage(context.Background(), 1, 10); err != nil {
			t.Errorf("slow load: %v", err)
		}
	}()

	// Wait for the slow load to be in flight before starting the
	// newer one.
	<-inFlight

	if _, err := c.LoadPage(context.Background(), 2, 10); err != nil {
		t.Fatalf("fast load: %v", err)
	}

	close(release)
	wg.Wait()

	view, ok := c.View()
	if !ok {
		t.Fatal("view should be loaded")
	}
	if view.Page.Current != 2 || view.Rows[0].ID != "page-2" {
		t.Fatalf("view = %+v, want the newer page 2 result", view)
	}
}

func TestDeleteRefreshesCurrentPage(t *testing.T) {
	backend := &fakeBackend{}
	referenceOptions(backend)

	deleted := false
	backend.listFn = func(context.Context, int, int) ([]api.Course, int, error) {
		if deleted {
			return []api.Course{{ID: "c-2"}}, 1, nil
		}
		return []api.Course{{ID: "c-1"}, {ID: "c-2"}}, 2, nil
	}
	backend.deleteFn = func(_ context.Context, id string) error {
		if id != "c-1" {
			t.Errorf("DeleteCourse(%q), want c-1", id)
		}
		deleted = true
		return nil
	}

	c := New(backend, zap.NewNop())
	if _, err := c.LoadPage(context.Background(), 1, 10); err != nil {
		t.Fatalf("LoadPage: %v", err)
	}

	if err := c.Delete(context.Background(), "  c-1  "); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	view, _ := c.View()
	if len(view.Rows) != 1 || view.Rows[0].ID != "c-2" {
		t.Fatalf("view after delete = %+v, want just c-2", view.Rows)
	}
	if backend.calls() != 2 {
		t.Fatalf("list calls = %d, want 2 (initial + refresh)", backend.calls())
	}
}

func TestDeleteFailureLeavesViewAlone(t *testing.T) {
	backend := &fakeBackend{}
	referenceOptions(backend)
	backend.listFn = func(context.Context, int, int) ([]api.Course, int, error) {
		return []api.Course{{ID: "c-1"}}, 1, nil
	}
	backend.deleteFn = func(context.Context, string) error {
		return fmt.Errorf("delete: %w", api.ErrNotFound)
	}

	c := New(backend, zap.NewNop())
	if _, err := c.LoadPage(context.Background(), 1, 10); err != nil {
		t.Fatalf("LoadPage: %v", err)
	}

	err := c.Delete(context.Background(), "c-1")
	if !errors.Is(err, api.ErrNotFound) {
		t.Fatalf("Delete = %v, want ErrNotFound", err)
	}
	if backend.calls() != 1 {
		t.Fatalf("list calls = %d, want 1 (no refresh on failure)", backend.calls())
	}
	if got := FailureReason(err); got != "The course no longer exists. Refresh the list." {
		t.Fatalf("FailureReason = %q", got)
	}
}

func TestFailureReason(t *testing.T) {
	cases := []struct {
		err  error
		want string
	}{
		{api.ErrNotFound, "The course no longer exists. Refresh the list."},
		{api.ErrServer, "The server could not complete the request. Try again shortly."},
		{errors.New("dial tcp: timeout"), "Something went wrong. Try again."},
	}
	for _, tc := range cases {
		if got := FailureReason(tc.err); got != tc.want {
			t.Errorf("FailureReason(%v) = %q, want %q", tc.err, got, tc.want)
		}
	}
}

func TestRegistryIsolatesSessions(t *testing.T) {
	backend := &fakeBackend{}
	referenceOptions(backend)
	backend.listFn = func(context.Context, int, int) ([]api.Course, int, error) {
		return nil, 0, nil
	}

	reg := NewRegistry(backend, zap.NewNop())
	a, b := NewKey(), NewKey()
	if a == b {
		t.Fatal("keys should be unique")
	}
	if reg.For(a) == reg.For(b) {
		t.Fatal("distinct sessions must not share a controller")
	}
	if reg.For(a) != reg.For(a) {
		t.Fatal("a session should get its controller back")
	}

	before := reg.For(a)
	reg.Drop(a)
	if reg.For(a) == before {
		t.Fatal("Drop should discard the controller")
	}
}
