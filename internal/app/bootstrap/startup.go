// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"

	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"

	"github.com/edufront/edufront/internal/app/resources"
	"github.com/edufront/edufront/internal/app/system/timeouts"
)

// Startup runs one-time application initialization after backend
// clients are built, but before the HTTP handler is. It loads the
// shared template partials and applies the configured timeout budgets.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	resources.LoadSharedTemplates()

	timeouts.Configure(timeouts.Config{
		Ping:   appCfg.TimeoutPing,
		Short:  appCfg.TimeoutShort,
		Medium: appCfg.TimeoutMedium,
		Long:   appCfg.TimeoutLong,
	})

	return nil
}
