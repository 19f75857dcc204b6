// internal/app/bootstrap/db.go
package bootstrap

import (
	"context"

	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"

	"github.com/edufront/edufront/internal/app/api"
	"github.com/edufront/edufront/internal/app/courseedit"
	"github.com/edufront/edufront/internal/app/courselist"
	"github.com/edufront/edufront/internal/app/system/timeouts"
)

// ConnectDB builds the backend clients and the per-session controller
// registries. The course backend is pinged once so a dead origin shows
// up in the startup log, but an unreachable backend does not block
// startup: the health endpoint keeps reporting it and every page
// degrades to its error state.
func ConnectDB(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) (DBDeps, error) {
	apiClient := api.NewClient(appCfg.BackendBaseURL, logger)
	authClient := api.NewAuthClient(appCfg.AuthBaseURL, logger)

	pingCtx, cancel := context.WithTimeout(ctx, timeouts.Ping())
	defer cancel()
	if err := apiClient.Ping(pingCtx); err != nil {
		logger.Warn("course backend unreachable at startup",
			zap.String("backend", appCfg.BackendBaseURL),
			zap.Error(err))
	} else {
		logger.Info("course backend reachable",
			zap.String("backend", appCfg.BackendBaseURL))
	}

	return DBDeps{
		API:   apiClient,
		Auth:  authClient,
		Lists: courselist.NewRegistry(apiClient, logger),
		Edits: courseedit.NewRegistry(apiClient, logger),
	}, nil
}

// EnsureSchema is a no-op: the course backend owns all storage.
func EnsureSchema(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	return nil
}
