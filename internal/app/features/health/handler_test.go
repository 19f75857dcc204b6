package health_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/edufront/edufront/internal/app/features/health"
	"go.uber.org/zap"
)

type fakePinger struct {
	err error
}

func (f fakePinger) Ping(context.Context) error { return f.err }

func TestServe_BackendConnected(t *testing.T) {
	handler := health.NewHandler(fakePinger{}, zap.NewNop())

	req := httptest.NewRequest("GET", "/health", nil)
	rec := httptest.NewRecorder()

	handler.Serve(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("expected status %d, got %d", http.StatusOK, rec.Code)
	}

	contentType := rec.Header().Get("Content-Type")
	if contentType != "application/json" {
		t.Errorf("Content-Type: got %q, want %q", contentType, "application/json")
	}

	var response struct {
		Status  string `json:"status"`
		Backend string `json:"backend"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}

	if response.Status != "ok" {
		t.Errorf("status: got %q, want %q", response.Status, "ok")
	}
	if response.Backend != "connected" {
		t.Errorf("backend: got %q, want %q", response.Backend, "connected")
	}
}

func TestServe_BackendDown(t *testing.T) {
	handler := health.NewHandler(fakePinger{err: errors.New("connection refused")}, zap.NewNop())

	req := httptest.NewRequest("GET", "/health", nil)
	rec := httptest.NewRecorder()

	handler.Serve(rec, req)

	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("expected status %d, got %d", http.StatusServiceUnavailable, rec.Code)
	}

	var response struct {
		Status  string `json:"status"`
		Backend string `json:"backend"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}

	if response.Status != "error" {
		t.Errorf("status: got %q, want %q", response.Status, "error")
	}
	if response.Backend != "disconnected" {
		t.Errorf("backend: got %q, want %q", response.Backend, "disconnected")
	}
	if response.Message != "Backend unavailable" {
		t.Errorf("message: got %q", response.Message)
	}
}
