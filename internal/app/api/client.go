// Package api holds the typed clients for the two backend origins the
// portal talks to: the catalog API (courses plus reference catalogs)
// and the auth API (login, register, OTP).
//
// The backend owns all business logic and persistence. These clients
// only shape requests, normalize responses (identifier trimming,
// status decoding, image URL joining), and map failures into errors
// the UI layer knows how to present.
package api

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/edufront/edufront/internal/app/system/httpx"
	"go.uber.org/zap"
)

// Client talks to the catalog backend.
type Client struct {
	BaseURL string
	HTTP    *http.Client
	Log     *zap.Logger
	Retry   httpx.RetryConfig
}

// NewClient constructs a catalog client for the given base origin
// (e.g. "http://localhost:5293").
func NewClient(baseURL string, logger *zap.Logger) *Client {
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTP:    &http.Client{Timeout: 30 * time.Second},
		Log:     logger,
		Retry:   httpx.DefaultRetryConfig(),
	}
}

// ImageURL joins an origin-relative image path from the backend with
// the backend's base origin. Absolute URLs pass through untouched.
func (c *Client) ImageURL(rel string) string {
	if rel == "" {
		return ""
	}
	if u, err := url.Parse(rel); err == nil && u.IsAbs() {
		return rel
	}
	if !strings.HasPrefix(rel, "/") {
		rel = "/" + rel
	}
	return c.BaseURL + rel
}

// Ping verifies the backend is reachable with a minimal list request.
// Used by the health endpoint.
func (c *Client) Ping(ctx context.Context) error {
	_, _, err := c.ListCourses(ctx, 1, 1)
	return err
}

func (c *Client) endpoint(parts ...string) string {
	return c.BaseURL + "/" + strings.Join(parts, "/")
}
