package api

import (
	"context"
	"net/http"

	"github.com/edufront/edufront/internal/app/system/httpx"
)

// The three reference catalogs share a wire shape except for the field
// prefix: {languageId, languageName}, {levelId, levelName},
// {categoryId, categoryName}. They are fetched fresh on every list or
// edit view and never cached across navigations.

type languageRecord struct {
	ID   int    `json:"languageId"`
	Name string `json:"languageName"`
}

type levelRecord struct {
	ID   int    `json:"levelId"`
	Name string `json:"levelName"`
}

type categoryRecord struct {
	ID   int    `json:"categoryId"`
	Name string `json:"categoryName"`
}

// Languages fetches the language catalog in backend order.
func (c *Client) Languages(ctx context.Context) ([]Option, error) {
	var records []languageRecord
	if err := c.getJSON(ctx, c.endpoint("api", "Languages"), &records); err != nil {
		return nil, err
	}
	opts := make([]Option, 0, len(records))
	for _, rec := range records {
		opts = append(opts, Option{ID: rec.ID, Name: rec.Name})
	}
	return opts, nil
}

// Levels fetches the level catalog in backend order.
func (c *Client) Levels(ctx context.Context) ([]Option, error) {
	var records []levelRecord
	if err := c.getJSON(ctx, c.endpoint("api", "Levels"), &records); err != nil {
		return nil, err
	}
	opts := make([]Option, 0, len(records))
	for _, rec := range records {
		opts = append(opts, Option{ID: rec.ID, Name: rec.Name})
	}
	return opts, nil
}

// Categories fetches the category catalog in backend order.
func (c *Client) Categories(ctx context.Context) ([]Option, error) {
	var records []categoryRecord
	if err := c.getJSON(ctx, c.endpoint("api", "Categories"), &records); err != nil {
		return nil, err
	}
	opts := make([]Option, 0, len(records))
	for _, rec := range records {
		opts = append(opts, Option{ID: rec.ID, Name: rec.Name})
	}
	return opts, nil
}

// BuildCatalog indexes options by id for denormalization.
func BuildCatalog(opts []Option) Catalog {
	m := make(Catalog, len(opts))
	for _, o := range opts {
		m[o.ID] = o.Name
	}
	return m
}

func (c *Client) getJSON(ctx context.Context, u string, out any) error {
	build := func(ctx context.Context) (*http.Request, error) {
		return http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	}
	if _, err := httpx.DoJSON(ctx, c.HTTP, build, out, c.Retry); err != nil {
		return mapError(err)
	}
	return nil
}
