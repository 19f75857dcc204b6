package login_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/edufront/edufront/internal/app/api"
	"github.com/edufront/edufront/internal/app/features/login"
	"github.com/edufront/edufront/internal/app/system/auth"
)

type fakeAuth struct {
	session api.Session
	err     error

	gotEmail    string
	gotPassword string
}

func (f *fakeAuth) Login(_ context.Context, email, password string) (api.Session, error) {
	f.gotEmail = email
	f.gotPassword = password
	return f.session, f.err
}

func newSessions(t *testing.T) *auth.SessionManager {
	t.Helper()
	sm, err := auth.NewSessionManager(
		"test-session-key-must-be-32-chars-long",
		"test-session",
		"",
		time.Hour,
		false,
		zap.NewNop(),
	)
	if err != nil {
		t.Fatalf("session manager: %v", err)
	}
	return sm
}

func postForm(t *testing.T, h *login.Handler, values url.Values) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest("POST", "/login", strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	h.Submit(rec, req)
	return rec
}

func TestSubmit_Success(t *testing.T) {
	backend := &fakeAuth{session: api.Session{
		Token:    "tok-1",
		Email:    "admin@example.com",
		UserName: "Admin",
		Role:     "admin",
	}}
	h := login.NewHandler(backend, newSessions(t), nil, zap.NewNop())

	rec := postForm(t, h, url.Values{
		"email":    {"  admin@example.com  "},
		"password": {"secret"},
	})

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusSeeOther)
	}
	if loc := rec.Header().Get("Location"); loc != "/dashboard" {
		t.Errorf("Location = %q, want /dashboard", loc)
	}
	if backend.gotEmail != "admin@example.com" {
		t.Errorf("login called with %q, want trimmed email", backend.gotEmail)
	}
	if len(rec.Result().Cookies()) == 0 {
		t.Error("no session cookie set")
	}
}

func TestSubmit_SafeReturnURL(t *testing.T) {
	backend := &fakeAuth{session: api.Session{Role: "admin"}}
	h := login.NewHandler(backend, newSessions(t), nil, zap.NewNop())

	rec := postForm(t, h, url.Values{
		"email":    {"a@b.c"},
		"password": {"secret"},
		"return":   {"/admin/courses?page=2"},
	})

	if loc := rec.Header().Get("Location"); loc != "/admin/courses?page=2" {
		t.Errorf("Location = %q, want the return URL", loc)
	}
}

func TestSubmit_RejectsAbsoluteReturnURL(t *testing.T) {
	backend := &fakeAuth{session: api.Session{Role: "admin"}}
	h := login.NewHandler(backend, newSessions(t), nil, zap.NewNop())

	rec := postForm(t, h, url.Values{
		"email":    {"a@b.c"},
		"password": {"secret"},
		"return":   {"https://evil.example/phish"},
	})

	if loc := rec.Header().Get("Location"); loc != "/dashboard" {
		t.Errorf("Location = %q, want /dashboard for unsafe return", loc)
	}
}

func TestSubmit_MissingFields(t *testing.T) {
	backend := &fakeAuth{}
	h := login.NewHandler(backend, newSessions(t), nil, zap.NewNop())

	// Template rendering may panic without a booted engine; the
	// assertion is that the backend was never called.
	func() {
		defer func() { recover() }()
		postForm(t, h, url.Values{"email": {"a@b.c"}})
	}()

	if backend.gotEmail != "" {
		t.Error("login must not be attempted without a password")
	}
}

func TestSubmit_BackendRejects(t *testing.T) {
	backend := &fakeAuth{err: errors.New("401")}
	h := login.NewHandler(backend, newSessions(t), nil, zap.NewNop())

	var rec *httptest.ResponseRecorder
	func() {
		defer func() { recover() }()
		rec = postForm(t, h, url.Values{
			"email":    {"a@b.c"},
			"password": {"wrong"},
		})
	}()

	if rec != nil && rec.Code == http.StatusSeeOther {
		t.Error("failed login must not redirect")
	}
}
