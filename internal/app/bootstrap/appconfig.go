// internal/app/bootstrap/appconfig.go
package bootstrap

import "time"

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// These values come from environment variables, configuration files, or
// command-line flags (loaded in LoadConfig). They represent *app-level*
// configuration, not WAFFLE core configuration.
//
// WAFFLE's CoreConfig handles framework-level settings like HTTP/HTTPS
// ports, TLS, logging level and format, and request limits. AppConfig
// is everything specific to this app: the backend origins, session
// cookie settings, and timeout budgets for backend calls.
type AppConfig struct {
	// Course backend configuration
	BackendBaseURL string // Course API origin (e.g., https://api.example.com)
	AuthBaseURL    string // Auth API origin (blank means same as BackendBaseURL)

	// Session management configuration
	SessionKey    string        // Secret key for signing session cookies (must be strong in production)
	SessionName   string        // Cookie name for sessions (default: edufront-session)
	SessionDomain string        // Cookie domain (blank means current host)
	SessionMaxAge time.Duration // Session lifetime

	// CSRF protection
	CSRFKey string // Secret key for CSRF tokens (defaults to SessionKey)

	// Timeout budgets for backend calls
	TimeoutPing   time.Duration // Health checks
	TimeoutShort  time.Duration // Single reads
	TimeoutMedium time.Duration // Fan-out loads
	TimeoutLong   time.Duration // Multipart submissions with uploads
}
