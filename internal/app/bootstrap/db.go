// internal/app/bootstrap/db.go
package bootstrap

import (
	"context"
	"fmt"

	"github.com/dalemusser/eventdash/internal/app/system/backend"
	"github.com/dalemusser/eventdash/internal/app/system/screens"
	"github.com/dalemusser/eventdash/internal/app/system/timeouts"
	"github.com/dalemusser/waffle/config"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"
)

// ConnectDB builds the backend API client, its metrics and the screen
// state registry. Nothing here dials the network.
func ConnectDB(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) (DBDeps, error) {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	metrics, err := backend.NewMetrics(reg)
	if err != nil {
		return DBDeps{}, fmt.Errorf("register backend metrics: %w", err)
	}

	api, err := backend.New(appCfg.APIBaseURL,
		backend.WithTimeout(appCfg.APITimeout),
		backend.WithLogger(logger),
		backend.WithMetrics(metrics),
	)
	if err != nil {
		return DBDeps{}, fmt.Errorf("backend client: %w", err)
	}

	logger.Info("backend client ready",
		zap.String("base_url", api.BaseURL()),
		zap.Duration("timeout", appCfg.APITimeout))

	return DBDeps{
		API:     api,
		Screens: screens.NewRegistry(appCfg.ScreenCapacity, appCfg.ScreenTTL, logger),
		Metrics: reg,
	}, nil
}

// EnsureSchema probes the backend. There is no schema to create; an
// unreachable backend is logged and startup continues so the dashboard
// can show friendly errors until it comes back.
func EnsureSchema(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	ctx, cancel := timeouts.WithTimeout(ctx, timeouts.Ping(), logger, "backend probe")
	defer cancel()
	if err := deps.API.Ping(ctx); err != nil {
		logger.Warn("backend API not reachable at startup", zap.String("base_url", deps.API.BaseURL()), zap.Error(err))
		return nil
	}
	logger.Info("backend API reachable")
	return nil
}
