package testutil

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/edufront/edufront/internal/app/api"
)

// WithChiURLParam adds a chi URL parameter to the request context.
// Use this in handler tests that need to access chi.URLParam values.
func WithChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// Course returns a minimal valid course read model for handler and
// controller tests.
func Course(id, name string) api.Course {
	return api.Course{
		ID:          id,
		Name:        name,
		Creator:     "Test Creator",
		StudyTime:   "4 weeks",
		Price:       19.99,
		Status:      api.StatusActive,
		LanguageID:  1,
		LevelID:     2,
		CategoryIDs: []int{3},
	}
}

// Options returns a small reference catalog for tests.
func Options(names ...string) []api.Option {
	out := make([]api.Option, 0, len(names))
	for i, name := range names {
		out = append(out, api.Option{ID: i + 1, Name: name})
	}
	return out
}
