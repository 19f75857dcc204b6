// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	"github.com/dalemusser/waffle/config"
	"github.com/dalemusser/waffle/pantry/fileserver"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"github.com/gorilla/csrf"
	"go.uber.org/zap"

	coursesfeature "github.com/edufront/edufront/internal/app/features/courses"
	dashboardfeature "github.com/edufront/edufront/internal/app/features/dashboard"
	errorsfeature "github.com/edufront/edufront/internal/app/features/errors"
	healthfeature "github.com/edufront/edufront/internal/app/features/health"
	loginfeature "github.com/edufront/edufront/internal/app/features/login"
	logoutfeature "github.com/edufront/edufront/internal/app/features/logout"
	registerfeature "github.com/edufront/edufront/internal/app/features/register"
	"github.com/edufront/edufront/internal/app/system/auth"
	"github.com/edufront/edufront/internal/app/system/ratelimit"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, backend clients, and Startup
// hooks have completed. It creates the session manager, boots the
// template engine, applies CSRF protection, and mounts the feature
// routers: login, logout, register, dashboard, health, and the course
// admin pages.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	// Secure cookies are enabled in production mode.
	secure := coreCfg.Env == "prod"
	sessionMgr, err := auth.NewSessionManager(
		appCfg.SessionKey,
		appCfg.SessionName,
		appCfg.SessionDomain,
		appCfg.SessionMaxAge,
		secure,
		logger,
	)
	if err != nil {
		logger.Error("session manager init failed", zap.Error(err))
		return nil, err
	}

	// Initialize and boot the template engine once at startup.
	// Dev mode enables template reloading for faster iteration.
	eng := templates.New(coreCfg.Env == "dev")
	if err := eng.Boot(logger); err != nil {
		logger.Error("template engine boot failed", zap.Error(err))
		return nil, err
	}
	templates.UseEngine(eng, logger)

	r := chi.NewRouter()

	// Global auth middleware: loads SessionUser into context if logged in.
	// This makes the current user available to all handlers via auth.CurrentUser(r).
	r.Use(sessionMgr.LoadSessionUser)

	// Every mutating route in the app is a browser form or HTMX post.
	r.Use(csrf.Protect(
		[]byte(appCfg.CSRFKey),
		csrf.Secure(secure),
		csrf.Path("/"),
	))

	// Health check endpoint for load balancers and orchestrators.
	// Reports whether the course backend answers.
	healthHandler := healthfeature.NewHandler(deps.API, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	// Static assets with pre-compressed file support (gzip/brotli)
	r.Handle("/static/*", fileserver.Handler("/static", "public"))

	// Authentication
	loginHandler := loginfeature.NewHandler(deps.Auth, sessionMgr, ratelimit.NewLoginLimiter(), logger)
	r.Mount("/login", loginfeature.Routes(loginHandler))

	logoutHandler := logoutfeature.NewHandler(sessionMgr, deps.Lists, deps.Edits, logger)
	r.Mount("/logout", logoutfeature.Routes(logoutHandler))

	registerHandler := registerfeature.NewHandler(deps.Auth, logger)
	r.Mount("/register", registerfeature.Routes(registerHandler))

	// Error pages
	errorsHandler := errorsfeature.NewHandler()
	r.Get("/forbidden", errorsHandler.Forbidden)
	r.NotFound(errorsHandler.NotFound)

	// Signed-in pages
	dashboardHandler := dashboardfeature.NewHandler(deps.API, logger)
	r.Group(func(pr chi.Router) {
		pr.Use(sessionMgr.RequireSignedIn)
		pr.Mount("/dashboard", dashboardfeature.Routes(dashboardHandler))
	})

	// Course administration
	coursesHandler := coursesfeature.NewHandler(deps.Lists, deps.Edits, deps.API, logger)
	r.Group(func(pr chi.Router) {
		pr.Use(sessionMgr.RequireSignedIn)
		pr.Use(sessionMgr.RequireRole("admin"))
		pr.Mount("/admin/courses", coursesfeature.Routes(coursesHandler))
	})

	// The root is just a springboard into the app.
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		if _, ok := auth.CurrentUser(r); ok {
			http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
			return
		}
		http.Redirect(w, r, "/login", http.StatusSeeOther)
	})

	return r, nil
}
