// internal/app/bootstrap/shutdown.go
package bootstrap

import (
	"context"

	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// Shutdown drops every session's screen state.
func Shutdown(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	if deps.Screens != nil {
		logger.Info("purging screen state", zap.Int("entries", deps.Screens.Len()))
		deps.Screens.Purge()
	}
	return nil
}
