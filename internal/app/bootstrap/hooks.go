// internal/app/bootstrap/hooks.go
package bootstrap

import (
	"github.com/dalemusser/waffle/app"
)

// Hooks wires this app into the WAFFLE lifecycle.
// Each function is called in order by app.Run, from configuration
// loading through DB setup, one-time startup work, HTTP handler
// construction, and finally graceful shutdown.
var Hooks = app.Hooks[AppConfig, DBDeps]{
	Name:           "wbdash",       // used only for logging/diagnostics
	LoadConfig:     LoadConfig,     // load core + app config
	ValidateConfig: ValidateConfig, // validate URIs, keys and thresholds
	ConnectDB:      ConnectDB,      // connect MongoDB, build the analytics client and poller
	EnsureSchema:   EnsureSchema,   // preference collection validator + indexes
	Startup:        Startup,        // mount the sync status poller
	BuildHandler:   BuildHandler,   // build the HTTP router + middleware stack
	Shutdown:       Shutdown,       // stop the poller, disconnect MongoDB
}
