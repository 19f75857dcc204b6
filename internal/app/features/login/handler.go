// internal/app/features/login/handler.go
package login

import (
	"context"
	"net/http"
	"strings"

	"github.com/dalemusser/waffle/pantry/query"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/dalemusser/waffle/pantry/urlutil"
	"go.uber.org/zap"

	"github.com/edufront/edufront/internal/app/api"
	"github.com/edufront/edufront/internal/app/system/auth"
	"github.com/edufront/edufront/internal/app/system/limits"
	"github.com/edufront/edufront/internal/app/system/normalize"
	"github.com/edufront/edufront/internal/app/system/ratelimit"
	"github.com/edufront/edufront/internal/app/system/timeouts"
	"github.com/edufront/edufront/internal/app/system/viewdata"
)

// Authenticator is the slice of the auth client the login flow uses.
type Authenticator interface {
	Login(ctx context.Context, email, password string) (api.Session, error)
}

// Handler holds the login feature's dependencies.
type Handler struct {
	Auth     Authenticator
	Sessions *auth.SessionManager
	Limits   *ratelimit.LoginLimiter
	Log      *zap.Logger
}

// NewHandler constructs a login Handler.
func NewHandler(authClient Authenticator, sessions *auth.SessionManager, limiter *ratelimit.LoginLimiter, logger *zap.Logger) *Handler {
	return &Handler{Auth: authClient, Sessions: sessions, Limits: limiter, Log: logger}
}

type pageData struct {
	viewdata.BaseVM
	Email     string
	ReturnURL string
	Message   string
}

// ServeForm renders the sign-in page.
// GET /login
func (h *Handler) ServeForm(w http.ResponseWriter, r *http.Request) {
	if _, ok := auth.CurrentUser(r); ok {
		http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
		return
	}

	data := pageData{
		BaseVM:    viewdata.NewBaseVM(r, "Sign in", "/"),
		ReturnURL: urlutil.SafeReturn(query.Get(r, "return"), "", ""),
	}
	templates.Render(w, r, "login", data)
}

// Submit authenticates against the auth backend and stores the session.
// POST /login
func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, limits.MaxAuthFormSize)
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	email := normalize.Email(r.FormValue("email"))
	password := r.FormValue("password")
	returnURL := urlutil.SafeReturn(strings.TrimSpace(r.FormValue("return")), "", "")

	rerender := func(msg string) {
		data := pageData{
			BaseVM:    viewdata.NewBaseVM(r, "Sign in", "/"),
			Email:     email,
			ReturnURL: returnURL,
			Message:   msg,
		}
		templates.Render(w, r, "login", data)
	}

	if email == "" || password == "" {
		rerender("Email and password are required.")
		return
	}

	if h.Limits != nil {
		if allowed, reason := h.Limits.Check(r, email); !allowed {
			rerender(reason)
			return
		}
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	sess, err := h.Auth.Login(ctx, email, password)
	if err != nil {
		h.Log.Warn("login failed", zap.String("email", email), zap.Error(err))
		msg := api.BackendMessage(err)
		if msg == "" {
			msg = "Sign-in failed. Check your email and password."
		}
		rerender(msg)
		return
	}

	if h.Limits != nil {
		h.Limits.ResetEmail(email)
	}

	err = h.Sessions.SignIn(w, r, auth.SessionUser{
		Email: sess.Email,
		Name:  sess.UserName,
		Role:  sess.Role,
		Token: sess.Token,
	})
	if err != nil {
		h.Log.Error("session save failed", zap.Error(err))
		rerender("Sign-in failed. Please try again.")
		return
	}

	dest := returnURL
	if dest == "" {
		dest = "/dashboard"
	}
	http.Redirect(w, r, dest, http.StatusSeeOther)
}
