package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"
)

func testAuthClient(t *testing.T, handler http.HandlerFunc) *AuthClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	a := NewAuthClient(srv.URL, zap.NewNop())
	a.HTTP = srv.Client()
	return a
}

func TestLogin(t *testing.T) {
	a := testAuthClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/Auth/login" {
			t.Errorf("path = %q", r.URL.Path)
		}
		var body map[string]string
		json.NewDecoder(r.Body).Decode(&body)
		if body["email"] != "admin@example.com" {
			t.Errorf("email = %q", body["email"])
		}
		json.NewEncoder(w).Encode(Session{Token: "tok-1", Email: "admin@example.com", UserName: "Admin", Role: "admin"})
	})

	sess, err := a.Login(context.Background(), "  admin@example.com ", "secret")
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if sess.Token != "tok-1" || sess.Role != "admin" {
		t.Errorf("session = %+v", sess)
	}
}

func TestLogin_BackendMessage(t *testing.T) {
	a := testAuthClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"message":"Wrong email or password"}`))
	})

	_, err := a.Login(context.Background(), "admin@example.com", "nope")
	if err == nil {
		t.Fatal("expected error")
	}
	if got := BackendMessage(err); got != "Wrong email or password" {
		t.Errorf("BackendMessage = %q", got)
	}
}

func TestBackendMessage_PlainBody(t *testing.T) {
	a := testAuthClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte("otp expired"))
	})

	err := a.VerifyOTP(context.Background(), "a@b.c", "123456", OTPRegister)
	if err == nil {
		t.Fatal("expected error")
	}
	if got := BackendMessage(err); got != "otp expired" {
		t.Errorf("BackendMessage = %q", got)
	}
}

func TestSendOTP(t *testing.T) {
	var gotType string
	a := testAuthClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/Auth/send-otp" {
			t.Errorf("path = %q", r.URL.Path)
		}
		var body map[string]string
		json.NewDecoder(r.Body).Decode(&body)
		gotType = body["type"]
		w.Write([]byte(`{}`))
	})

	if err := a.SendOTP(context.Background(), "a@b.c", OTPRegister); err != nil {
		t.Fatalf("SendOTP failed: %v", err)
	}
	if gotType != "register" {
		t.Errorf("type = %q, want register", gotType)
	}
}
