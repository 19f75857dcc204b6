package bootstrap

import (
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"
)

func validAppConfig() AppConfig {
	return AppConfig{
		BackendBaseURL: "http://localhost:5000",
		AuthBaseURL:    "http://localhost:5001",
		SessionKey:     "test-session-key-must-be-32-chars-long",
		SessionName:    "edufront-session",
		SessionMaxAge:  12 * time.Hour,
		CSRFKey:        "test-session-key-must-be-32-chars-long",
	}
}

func TestValidateConfigAcceptsValid(t *testing.T) {
	if err := ValidateConfig(nil, validAppConfig(), zap.NewNop()); err != nil {
		t.Fatalf("ValidateConfig: %v", err)
	}
}

func TestValidateConfigRejectsRelativeBackendURL(t *testing.T) {
	cfg := validAppConfig()
	cfg.BackendBaseURL = "localhost:5000"

	err := ValidateConfig(nil, cfg, zap.NewNop())
	if err == nil {
		t.Fatal("expected an error for a URL without a scheme")
	}
	if !strings.Contains(err.Error(), "backend_base_url") {
		t.Errorf("error = %q, want it to name backend_base_url", err)
	}
}

func TestValidateConfigRejectsEmptySessionKey(t *testing.T) {
	cfg := validAppConfig()
	cfg.SessionKey = ""

	if err := ValidateConfig(nil, cfg, zap.NewNop()); err == nil {
		t.Fatal("expected an error for an empty session key")
	}
}
