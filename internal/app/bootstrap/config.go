// internal/app/bootstrap/config.go
package bootstrap

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// appConfigKeys defines the configuration keys for EduFront.
// These are loaded via WAFFLE's config system with support for:
//   - Config files: backend_base_url, session_name, etc.
//   - Environment variables: EDUFRONT_BACKEND_BASE_URL, EDUFRONT_SESSION_NAME, etc.
//   - Command-line flags: --backend_base_url, --session_name, etc.
var appConfigKeys = []config.AppKey{
	{Name: "backend_base_url", Default: "http://localhost:5000", Desc: "Course API base URL"},
	{Name: "auth_base_url", Default: "", Desc: "Auth API base URL (blank means same as backend_base_url)"},

	{Name: "session_key", Default: "dev-only-change-me-please-0123456789ABCDEF", Desc: "Session signing key (must be strong in production)"},
	{Name: "session_name", Default: "edufront-session", Desc: "Session cookie name"},
	{Name: "session_domain", Default: "", Desc: "Session cookie domain (blank means current host)"},
	{Name: "session_max_age", Default: "12h", Desc: "Session lifetime (e.g., 12h, 30m)"},

	{Name: "csrf_key", Default: "", Desc: "CSRF signing key (blank means session_key)"},

	{Name: "timeout_ping", Default: "2s", Desc: "Timeout for backend health checks"},
	{Name: "timeout_short", Default: "5s", Desc: "Timeout for single backend reads"},
	{Name: "timeout_medium", Default: "10s", Desc: "Timeout for fan-out backend loads"},
	{Name: "timeout_long", Default: "30s", Desc: "Timeout for multipart submissions with uploads"},
}

// LoadConfig loads WAFFLE core config and app-specific config.
//
// It is called early in startup so that both WAFFLE and the app have
// access to configuration before any backends or handlers are built.
//
// WAFFLE's config.LoadWithAppConfig handles:
//   - Loading from .env files
//   - Loading from config.yaml/json/toml files
//   - Reading environment variables (WAFFLE_* for core, EDUFRONT_* for app)
//   - Parsing command-line flags
//   - Merging with precedence: flags > env > files > defaults
func LoadConfig(logger *zap.Logger) (*config.CoreConfig, AppConfig, error) {
	coreCfg, appValues, err := config.LoadWithAppConfig(logger, "EDUFRONT", appConfigKeys)
	if err != nil {
		return nil, AppConfig{}, err
	}

	appCfg := AppConfig{
		BackendBaseURL: strings.TrimRight(appValues.String("backend_base_url"), "/"),
		AuthBaseURL:    strings.TrimRight(appValues.String("auth_base_url"), "/"),

		SessionKey:    appValues.String("session_key"),
		SessionName:   appValues.String("session_name"),
		SessionDomain: appValues.String("session_domain"),
		SessionMaxAge: appValues.Duration("session_max_age", 12*time.Hour),

		CSRFKey: appValues.String("csrf_key"),

		TimeoutPing:   appValues.Duration("timeout_ping", 2*time.Second),
		TimeoutShort:  appValues.Duration("timeout_short", 5*time.Second),
		TimeoutMedium: appValues.Duration("timeout_medium", 10*time.Second),
		TimeoutLong:   appValues.Duration("timeout_long", 30*time.Second),
	}

	// The auth API usually lives on the same origin as the course API.
	if appCfg.AuthBaseURL == "" {
		appCfg.AuthBaseURL = appCfg.BackendBaseURL
	}
	if appCfg.CSRFKey == "" {
		appCfg.CSRFKey = appCfg.SessionKey
	}

	return coreCfg, appCfg, nil
}

// ValidateConfig performs app-specific config validation.
//
// Return nil to accept the loaded config, or an error to abort startup.
// The backend URLs are checked here so a typo fails fast instead of as
// a connection error on the first page load.
func ValidateConfig(coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) error {
	for _, origin := range []struct {
		name  string
		value string
	}{
		{"backend_base_url", appCfg.BackendBaseURL},
		{"auth_base_url", appCfg.AuthBaseURL},
	} {
		u, err := url.Parse(origin.value)
		if err != nil || u.Scheme == "" || u.Host == "" {
			logger.Error("invalid backend origin",
				zap.String("key", origin.name),
				zap.String("value", origin.value))
			return fmt.Errorf("%s must be an absolute URL, got %q", origin.name, origin.value)
		}
	}

	if appCfg.SessionKey == "" {
		return fmt.Errorf("session_key must not be empty")
	}

	return nil
}
