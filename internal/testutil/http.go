package testutil

import (
	"net/http"
	"net/http/httptest"

	"github.com/google/uuid"

	"github.com/edufront/edufront/internal/app/system/auth"
)

// AdminUser returns a signed-in admin with a fresh view key.
func AdminUser() *auth.SessionUser {
	return &auth.SessionUser{
		Email:   "admin@test.example",
		Name:    "Test Admin",
		Role:    "admin",
		Token:   "test-token",
		ViewKey: uuid.NewString(),
	}
}

// NewAuthenticatedRequest creates an HTTP request with a user in
// context, bypassing the session middleware.
func NewAuthenticatedRequest(method, target string, user *auth.SessionUser) *http.Request {
	req := httptest.NewRequest(method, target, nil)
	return auth.WithTestUser(req, user)
}
