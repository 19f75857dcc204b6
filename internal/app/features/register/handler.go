// internal/app/features/register/handler.go
package register

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/dalemusser/waffle/pantry/templates"
	"go.uber.org/zap"

	"github.com/edufront/edufront/internal/app/api"
	"github.com/edufront/edufront/internal/app/system/inputval"
	"github.com/edufront/edufront/internal/app/system/limits"
	"github.com/edufront/edufront/internal/app/system/normalize"
	"github.com/edufront/edufront/internal/app/system/timeouts"
	"github.com/edufront/edufront/internal/app/system/viewdata"
)

// ResendWindow is how long a user must wait between OTP mails.
const ResendWindow = 60 * time.Second

// pendingTTL bounds how long an unverified registration is kept.
const pendingTTL = 15 * time.Minute

// Registrar is the slice of the auth client the registration flow uses.
type Registrar interface {
	Register(ctx context.Context, email, username, password string) error
	SendOTP(ctx context.Context, email, purpose string) error
	VerifyOTP(ctx context.Context, email, code, purpose string) error
}

// pending is a registration waiting on OTP verification. The account
// is only created after the code checks out, so the submitted fields
// are held server-side in the meantime.
type pending struct {
	Email    string
	Username string
	Password string
	LastSent time.Time
	Created  time.Time
}

// Handler drives the register-with-OTP flow.
type Handler struct {
	Auth Registrar
	Log  *zap.Logger

	// now is swappable for tests.
	now func() time.Time

	mu      sync.Mutex
	pending map[string]*pending
}

// NewHandler constructs a register Handler.
func NewHandler(authClient Registrar, logger *zap.Logger) *Handler {
	return &Handler{
		Auth:    authClient,
		Log:     logger,
		now:     time.Now,
		pending: make(map[string]*pending),
	}
}

type formData struct {
	viewdata.BaseVM
	Email    string
	Username string
	Message  string
}

type otpData struct {
	viewdata.BaseVM
	Email       string
	Message     string
	ResendAfter int // seconds until another code may be requested
}

// ServeForm renders the registration page.
// GET /register
func (h *Handler) ServeForm(w http.ResponseWriter, r *http.Request) {
	data := formData{BaseVM: viewdata.NewBaseVM(r, "Register", "/login")}
	templates.Render(w, r, "register", data)
}

// Submit validates the form and mails the first OTP.
// POST /register
func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, limits.MaxAuthFormSize)
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	email := normalize.Email(r.FormValue("email"))
	username := normalize.Name(r.FormValue("username"))
	password := r.FormValue("password")
	confirm := r.FormValue("confirm_password")

	rerender := func(msg string) {
		data := formData{
			BaseVM:   viewdata.NewBaseVM(r, "Register", "/login"),
			Email:    email,
			Username: username,
			Message:  msg,
		}
		templates.Render(w, r, "register", data)
	}

	switch {
	case email == "" || username == "" || password == "":
		rerender("All fields are required.")
		return
	case !inputval.IsValidEmail(email):
		rerender("Enter a valid email address.")
		return
	case len(password) < 8:
		rerender("Password must be at least 8 characters.")
		return
	case password != confirm:
		rerender("Passwords do not match.")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	if err := h.Auth.SendOTP(ctx, email, api.OTPRegister); err != nil {
		h.Log.Warn("send otp failed", zap.String("email", email), zap.Error(err))
		msg := api.BackendMessage(err)
		if msg == "" {
			msg = "We could not send a verification code. Try again."
		}
		rerender(msg)
		return
	}

	now := h.now()
	h.mu.Lock()
	h.pending[email] = &pending{
		Email:    email,
		Username: username,
		Password: password,
		LastSent: now,
		Created:  now,
	}
	h.sweepLocked(now)
	h.mu.Unlock()

	h.renderOTP(w, r, email, "We emailed you a verification code.", ResendWindow)
}

// Verify checks the OTP and completes the registration.
// POST /register/verify
func (h *Handler) Verify(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, limits.MaxAuthFormSize)
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	email := normalize.Email(r.FormValue("email"))
	code := strings.TrimSpace(r.FormValue("code"))

	p, ok := h.lookup(email)
	if !ok {
		h.renderExpired(w, r)
		return
	}
	if code == "" {
		h.renderOTP(w, r, email, "Enter the code from your email.", h.resendIn(p))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if err := h.Auth.VerifyOTP(ctx, email, code, api.OTPRegister); err != nil {
		h.Log.Warn("otp verify failed", zap.String("email", email), zap.Error(err))
		msg := api.BackendMessage(err)
		if msg == "" {
			msg = "That code didn't work. Check it and try again."
		}
		h.renderOTP(w, r, email, msg, h.resendIn(p))
		return
	}

	if err := h.Auth.Register(ctx, p.Email, p.Username, p.Password); err != nil {
		h.Log.Error("register failed after otp", zap.String("email", email), zap.Error(err))
		msg := api.BackendMessage(err)
		if msg == "" {
			msg = "Registration failed. Try again."
		}
		h.renderOTP(w, r, email, msg, h.resendIn(p))
		return
	}

	h.mu.Lock()
	delete(h.pending, email)
	h.mu.Unlock()

	http.Redirect(w, r, "/login?registered=1", http.StatusSeeOther)
}

// Resend mails a fresh OTP, subject to the resend window.
// POST /register/resend
func (h *Handler) Resend(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, limits.MaxAuthFormSize)
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	email := normalize.Email(r.FormValue("email"))

	p, ok := h.lookup(email)
	if !ok {
		h.renderExpired(w, r)
		return
	}

	if wait := h.resendIn(p); wait > 0 {
		h.renderOTP(w, r, email,
			fmt.Sprintf("Please wait %d seconds before requesting another code.", int(wait.Seconds())),
			wait)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	if err := h.Auth.SendOTP(ctx, email, api.OTPRegister); err != nil {
		h.Log.Warn("otp resend failed", zap.String("email", email), zap.Error(err))
		h.renderOTP(w, r, email, "We could not send a new code. Try again.", 0)
		return
	}

	h.mu.Lock()
	if cur, ok := h.pending[email]; ok {
		cur.LastSent = h.now()
	}
	h.mu.Unlock()

	h.renderOTP(w, r, email, "A new code is on its way.", ResendWindow)
}

func (h *Handler) lookup(email string) (*pending, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	p, ok := h.pending[email]
	if !ok {
		return nil, false
	}
	if h.now().Sub(p.Created) > pendingTTL {
		delete(h.pending, email)
		return nil, false
	}
	return p, true
}

// resendIn returns how long until another OTP may be sent, zero when
// the window has passed.
func (h *Handler) resendIn(p *pending) time.Duration {
	h.mu.Lock()
	defer h.mu.Unlock()
	wait := ResendWindow - h.now().Sub(p.LastSent)
	if wait < 0 {
		return 0
	}
	return wait
}

// sweepLocked drops expired pending registrations. Caller holds mu.
func (h *Handler) sweepLocked(now time.Time) {
	for email, p := range h.pending {
		if now.Sub(p.Created) > pendingTTL {
			delete(h.pending, email)
		}
	}
}

func (h *Handler) renderOTP(w http.ResponseWriter, r *http.Request, email, msg string, resendAfter time.Duration) {
	data := otpData{
		BaseVM:      viewdata.NewBaseVM(r, "Verify your email", "/register"),
		Email:       email,
		Message:     msg,
		ResendAfter: int(resendAfter.Seconds()),
	}
	templates.Render(w, r, "register_otp", data)
}

func (h *Handler) renderExpired(w http.ResponseWriter, r *http.Request) {
	data := formData{
		BaseVM:  viewdata.NewBaseVM(r, "Register", "/login"),
		Message: "Your registration expired. Start again.",
	}
	templates.Render(w, r, "register", data)
}
