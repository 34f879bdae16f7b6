// internal/app/bootstrap/db.go
package bootstrap

import (
	"context"
	"fmt"

	"github.com/dalemusser/waffle/config"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	preferencestore "github.com/salacoste/wb-erp-system-daytona-FE-sub000/internal/app/store/preferences"
	"github.com/salacoste/wb-erp-system-daytona-FE-sub000/internal/app/system/analyticsapi"
	"github.com/salacoste/wb-erp-system-daytona-FE-sub000/internal/app/system/indexes"
	"github.com/salacoste/wb-erp-system-daytona-FE-sub000/internal/app/system/syncstatus"
	"github.com/salacoste/wb-erp-system-daytona-FE-sub000/internal/app/system/validators"
	"go.uber.org/zap"
)

// ConnectDB connects to MongoDB (unless preferences are kept in memory) and
// builds the analytics API client and the sync status poller.
//
// WAFFLE calls this after configuration is loaded but before EnsureSchema and
// Startup. The poller is created stopped; Startup mounts it.
func ConnectDB(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) (DBDeps, error) {
	var deps DBDeps

	if appCfg.UsesMongo() {
		poolCfg := wafflemongo.DefaultPoolConfig()
		if appCfg.MongoMaxPoolSize > 0 {
			poolCfg.MaxPoolSize = appCfg.MongoMaxPoolSize
		}
		if appCfg.MongoMinPoolSize > 0 {
			poolCfg.MinPoolSize = appCfg.MongoMinPoolSize
		}

		client, err := wafflemongo.ConnectWithPool(ctx, appCfg.MongoURI, appCfg.MongoDatabase, poolCfg)
		if err != nil {
			return DBDeps{}, err
		}
		deps.MongoClient = client
		deps.MongoDatabase = client.Database(appCfg.MongoDatabase)
		deps.Preferences = preferencestore.New(deps.MongoDatabase)

		logger.Info("connected to MongoDB",
			zap.String("database", appCfg.MongoDatabase),
			zap.Uint64("max_pool_size", poolCfg.MaxPoolSize),
			zap.Uint64("min_pool_size", poolCfg.MinPoolSize),
		)
	} else {
		deps.Preferences = preferencestore.NewMemory()
		logger.Info("using in-memory preference store")
	}

	client, err := analyticsapi.New(analyticsapi.Config{
		BaseURL: appCfg.AnalyticsBaseURL,
		Token:   appCfg.AnalyticsToken,
		Timeout: appCfg.UpstreamTimeout,
	}, logger.Named("analytics"))
	if err != nil {
		return DBDeps{}, fmt.Errorf("analytics client: %w", err)
	}
	deps.Analytics = client
	logger.Info("configured analytics API client", zap.String("base_url", appCfg.AnalyticsBaseURL))

	deps.SyncPoller = syncstatus.NewPoller(client, syncstatus.NewTracker(),
		appCfg.SyncPollInterval, appCfg.SyncPollTimeout, logger.Named("syncstatus"))

	return deps, nil
}

// EnsureSchema creates the preference collection, its validator and indexes.
// It is a no-op with the memory store. The context has a timeout based on
// coreCfg.IndexBootTimeout.
func EnsureSchema(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	db := deps.MongoDatabase
	if db == nil {
		return nil
	}

	logger.Info("ensuring collections and validators")
	if err := validators.EnsureAll(ctx, db); err != nil {
		logger.Error("failed to ensure validators", zap.Error(err))
		return err
	}

	logger.Info("ensuring database indexes")
	if err := indexes.EnsureAll(ctx, db); err != nil {
		logger.Error("failed to ensure indexes", zap.Error(err))
		return err
	}

	logger.Info("database schema ensured successfully")
	return nil
}
