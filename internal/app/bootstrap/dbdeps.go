// internal/app/bootstrap/dbdeps.go
package bootstrap

import (
	preferencestore "github.com/salacoste/wb-erp-system-daytona-FE-sub000/internal/app/store/preferences"
	"github.com/salacoste/wb-erp-system-daytona-FE-sub000/internal/app/system/analyticsapi"
	"github.com/salacoste/wb-erp-system-daytona-FE-sub000/internal/app/system/syncstatus"
	"go.mongodb.org/mongo-driver/mongo"
)

// DBDeps holds database and backend dependencies for this WAFFLE app.
//
// It is created in ConnectDB and passed to EnsureSchema, Startup,
// BuildHandler and Shutdown. Shutdown closes what ConnectDB opened.
type DBDeps struct {
	// MongoDB client and database; nil with the memory preference store
	MongoClient   *mongo.Client
	MongoDatabase *mongo.Database

	// Preferences is the storage behind the preference bridge.
	Preferences preferencestore.Backend

	// Analytics is the remote analytics API client.
	Analytics *analyticsapi.Client

	// SyncPoller keeps the sync status tracker current.
	SyncPoller *syncstatus.Poller
}
