// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"
	"time"

	"github.com/dalemusser/waffle/config"
	"github.com/dalemusser/waffle/middleware"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	comparisonfeature "github.com/salacoste/wb-erp-system-daytona-FE-sub000/internal/app/features/comparison"
	dailytablefeature "github.com/salacoste/wb-erp-system-daytona-FE-sub000/internal/app/features/dailytable"
	errorsfeature "github.com/salacoste/wb-erp-system-daytona-FE-sub000/internal/app/features/errors"
	healthfeature "github.com/salacoste/wb-erp-system-daytona-FE-sub000/internal/app/features/health"
	periodfeature "github.com/salacoste/wb-erp-system-daytona-FE-sub000/internal/app/features/period"
	preferencesfeature "github.com/salacoste/wb-erp-system-daytona-FE-sub000/internal/app/features/preferences"
	syncstatusfeature "github.com/salacoste/wb-erp-system-daytona-FE-sub000/internal/app/features/syncstatus"
	preferencestore "github.com/salacoste/wb-erp-system-daytona-FE-sub000/internal/app/store/preferences"
	"github.com/salacoste/wb-erp-system-daytona-FE-sub000/internal/app/system/browserid"
	"github.com/salacoste/wb-erp-system-daytona-FE-sub000/internal/app/system/csrfguard"
	"github.com/salacoste/wb-erp-system-daytona-FE-sub000/internal/app/system/delta"
	"github.com/salacoste/wb-erp-system-daytona-FE-sub000/internal/app/system/derived"
	"github.com/salacoste/wb-erp-system-daytona-FE-sub000/internal/app/system/latest"
	"github.com/salacoste/wb-erp-system-daytona-FE-sub000/internal/app/system/timeouts"
	"go.uber.org/zap"
)

// devTrustedOrigins are accepted by the CSRF origin check outside prod.
var devTrustedOrigins = []string{
	"localhost:8080",
	"localhost:3000",
	"127.0.0.1:8080",
	"127.0.0.1:3000",
}

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup, and
// the Startup hook have completed. Every /api route runs behind the browser
// identity middleware; only the preference writes carry CSRF protection,
// since the rest of the API is read-only.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	// Secure cookies are enabled in production mode.
	secure := coreCfg.Env == "prod"

	browserMgr, err := browserid.NewManager(appCfg.BrowserCookieKey, appCfg.BrowserCookieName, appCfg.BrowserCookieMaxAge, secure, logger.Named("browserid"))
	if err != nil {
		logger.Error("browser id manager init failed", zap.Error(err))
		return nil, err
	}

	errorsHandler := errorsfeature.NewHandler(logger)

	csrfCfg := csrfguard.Config{
		Key:          appCfg.CSRFKey,
		Secure:       secure,
		Domain:       appCfg.CookieDomain,
		ErrorHandler: http.HandlerFunc(errorsHandler.CSRFFailure),
	}
	if !secure {
		csrfCfg.TrustedOrigins = devTrustedOrigins
	}
	protect, err := csrfguard.New(csrfCfg)
	if err != nil {
		logger.Error("csrf guard init failed", zap.Error(err))
		return nil, err
	}

	prefs := preferencestore.NewBridge(deps.Preferences, logger.Named("preferences"))
	guard := latest.NewGuard()

	r := chi.NewRouter()

	// ─────────────────────────────────────────────────────────────────────────────
	// Global Middleware (applies to ALL routes)
	// ─────────────────────────────────────────────────────────────────────────────

	// Request timeout middleware: prevents requests from hanging indefinitely.
	r.Use(chimw.Timeout(timeouts.Request()))

	// CORS middleware: must be early in the chain to handle preflight requests.
	r.Use(middleware.CORSFromConfig(coreCfg))

	// Security headers middleware: adds X-Frame-Options, X-Content-Type-Options, etc.
	r.Use(middleware.SecurityHeadersFromConfig(coreCfg))

	r.NotFound(errorsHandler.NotFound)
	r.MethodNotAllowed(errorsHandler.MethodNotAllowed)

	// Health check endpoints for load balancers and orchestrators.
	// A nil client must stay a nil interface so the check reports "disabled".
	var mongoPinger healthfeature.Pinger
	if deps.MongoClient != nil {
		mongoPinger = deps.MongoClient
	}
	healthHandler := healthfeature.NewHandler(mongoPinger, deps.SyncPoller.Tracker(), logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))
	healthfeature.MountRootEndpoints(r, healthHandler)

	// ─────────────────────────────────────────────────────────────────────────────
	// Dashboard API (browser identity on every request)
	// ─────────────────────────────────────────────────────────────────────────────
	comparisonHandler := comparisonfeature.NewHandler(deps.Analytics, prefs, guard, comparisonfeature.Options{
		Deltas:    delta.New(appCfg.DeltaNeutralThreshold),
		Derived:   derived.NewCalculator(appCfg.COGSCoverageThreshold),
		Formatter: delta.NewFormatter(appCfg.DisplayLocale, appCfg.DeltaDisplayCap),
		Now:       time.Now,
	}, logger)
	dailyHandler := dailytablefeature.NewHandler(deps.Analytics, time.Now, logger)
	preferencesHandler := preferencesfeature.NewHandler(prefs, logger)
	periodHandler := periodfeature.NewHandler(time.Now)
	syncHandler := syncstatusfeature.NewHandler(deps.SyncPoller)

	r.Route("/api", func(r chi.Router) {
		r.Use(browserMgr.Middleware)

		r.Mount("/comparison", comparisonfeature.Routes(comparisonHandler))
		r.Mount("/daily", dailytablefeature.Routes(dailyHandler))
		r.Mount("/preferences", preferencesfeature.Routes(preferencesHandler, protect))
		r.Mount("/period", periodfeature.Routes(periodHandler))
		r.Mount("/sync-status", syncstatusfeature.Routes(syncHandler))
	})

	return r, nil
}
