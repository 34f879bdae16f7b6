// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"

	"github.com/dalemusser/waffle/config"
	"github.com/salacoste/wb-erp-system-daytona-FE-sub000/internal/app/system/timeouts"
	"go.uber.org/zap"
)

// unmountPoller stops the sync status poller; set by Startup, used by Shutdown.
var unmountPoller func()

// Startup runs once after DB connections and schema setup are complete,
// but before the HTTP handler is built and requests are served.
//
// It applies the configured timeouts and mounts the sync status poller,
// which polls once immediately and then on its interval. Returning an error
// aborts startup.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	timeouts.Configure(timeouts.Config{
		Upstream: appCfg.UpstreamTimeout,
		Request:  appCfg.RequestTimeout,
	})

	// The poller outlives Startup's context; Shutdown stops it.
	unmount, err := deps.SyncPoller.Mount(context.Background())
	if err != nil {
		logger.Error("failed to start sync status poller", zap.Error(err))
		return err
	}
	unmountPoller = unmount

	logger.Info("sync status poller started",
		zap.Duration("interval", deps.SyncPoller.Interval()),
	)
	return nil
}
