package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/edufront/edufront/internal/app/system/httpx"
	"go.uber.org/zap"
)

// AuthClient talks to the auth backend. It is a separate origin from
// the catalog API. The backend owns credentials, OTP generation, and
// token minting; this client just relays forms and hands the resulting
// session object to the UI shell.
type AuthClient struct {
	BaseURL string
	HTTP    *http.Client
	Log     *zap.Logger
	Retry   httpx.RetryConfig
}

// NewAuthClient constructs an auth client for the given base origin.
func NewAuthClient(baseURL string, logger *zap.Logger) *AuthClient {
	return &AuthClient{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTP:    &http.Client{Timeout: 30 * time.Second},
		Log:     logger,
		Retry:   httpx.RetryConfig{MaxAttempts: 1},
	}
}

// Session is the backend's response to a successful login.
type Session struct {
	Token    string `json:"token"`
	Email    string `json:"email"`
	UserName string `json:"username"`
	Role     string `json:"role"`
}

// OTP purposes accepted by the auth backend.
const (
	OTPRegister      = "register"
	OTPResetPassword = "reset-password"
)

// Login exchanges credentials for a session object.
func (a *AuthClient) Login(ctx context.Context, email, password string) (Session, error) {
	var sess Session
	err := a.postJSON(ctx, "/api/Auth/login", map[string]string{
		"email":    strings.TrimSpace(email),
		"password": password,
	}, &sess)
	return sess, err
}

// Register creates an account. The backend requires a prior verified
// OTP for the same email.
func (a *AuthClient) Register(ctx context.Context, email, username, password string) error {
	return a.postJSON(ctx, "/api/Auth/register", map[string]string{
		"email":    strings.TrimSpace(email),
		"username": strings.TrimSpace(username),
		"password": password,
	}, nil)
}

// SendOTP asks the backend to mail a one-time code.
func (a *AuthClient) SendOTP(ctx context.Context, email, purpose string) error {
	return a.postJSON(ctx, "/api/Auth/send-otp", map[string]string{
		"email": strings.TrimSpace(email),
		"type":  purpose,
	}, nil)
}

// VerifyOTP checks a one-time code.
func (a *AuthClient) VerifyOTP(ctx context.Context, email, code, purpose string) error {
	return a.postJSON(ctx, "/api/Auth/verify-otp", map[string]string{
		"email":   strings.TrimSpace(email),
		"otpCode": strings.TrimSpace(code),
		"type":    strings.TrimSpace(purpose),
	}, nil)
}

// BackendMessage pulls the "message" field out of an auth API error
// body, falling back to the raw text so the UI can show the backend's
// own words.
func BackendMessage(err error) string {
	var herr *httpx.HTTPError
	if !errors.As(err, &herr) || len(herr.Body) == 0 {
		return ""
	}
	var payload struct {
		Message string `json:"message"`
	}
	if json.Unmarshal(herr.Body, &payload) == nil && payload.Message != "" {
		return payload.Message
	}
	return strings.TrimSpace(string(herr.Body))
}

func (a *AuthClient) postJSON(ctx context.Context, path string, payload any, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	build := func(ctx context.Context) (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.BaseURL+path, bytes.NewReader(body))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Accept", "application/json")
		return req, nil
	}

	if _, err := httpx.DoJSON(ctx, a.HTTP, build, out, a.Retry); err != nil {
		return mapError(err)
	}
	return nil
}
