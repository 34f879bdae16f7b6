// internal/app/bootstrap/appconfig.go
package bootstrap

import "time"

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// These values come from environment variables, configuration files, or
// command-line flags (loaded in LoadConfig). WAFFLE's CoreConfig covers the
// framework-level settings (ports, TLS, logging, CORS, body limits).
type AppConfig struct {
	// Preference storage: "mongo" or "memory"
	PreferenceStore string

	// MongoDB connection configuration
	MongoURI         string
	MongoDatabase    string
	MongoMaxPoolSize uint64
	MongoMinPoolSize uint64

	// Remote analytics API
	AnalyticsBaseURL string
	AnalyticsToken   string
	UpstreamTimeout  time.Duration

	// Browser identity cookie
	BrowserCookieKey    string
	BrowserCookieName   string
	BrowserCookieMaxAge time.Duration
	CookieDomain        string

	CSRFKey string

	// Comparison engine
	COGSCoverageThreshold float64 // percent of catalog items with a cost basis
	DeltaNeutralThreshold float64 // percent below which a change is neutral
	DeltaDisplayCap       float64
	DisplayLocale         string

	// Sync status polling
	SyncPollInterval time.Duration
	SyncPollTimeout  time.Duration

	RequestTimeout time.Duration
}

// UsesMongo reports whether preferences are persisted in MongoDB.
func (c AppConfig) UsesMongo() bool {
	return c.PreferenceStore != PreferenceStoreMemory
}
