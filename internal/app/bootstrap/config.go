// internal/app/bootstrap/config.go
package bootstrap

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/dalemusser/waffle/config"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.uber.org/zap"
	"golang.org/x/text/language"
)

// EnvVarPrefix is the prefix for environment variables.
const EnvVarPrefix = "WBDASH"

// Preference store backends.
const (
	PreferenceStoreMongo  = "mongo"
	PreferenceStoreMemory = "memory"
)

// appConfigKeys defines the configuration keys for this application.
// These are loaded via WAFFLE's config system with support for:
//   - Config files: mongo_uri, analytics_base_url, etc.
//   - Environment variables: WBDASH_MONGO_URI, WBDASH_ANALYTICS_BASE_URL, etc.
//   - Command-line flags: --mongo_uri, --analytics_base_url, etc.
var appConfigKeys = []config.AppKey{
	{Name: "preference_store", Default: PreferenceStoreMongo, Desc: "Preference storage: 'mongo' or 'memory'"},
	{Name: "mongo_uri", Default: "mongodb://localhost:27017", Desc: "MongoDB connection URI"},
	{Name: "mongo_database", Default: "wbdash", Desc: "MongoDB database name"},
	{Name: "mongo_max_pool_size", Default: 50, Desc: "MongoDB max connection pool size (default: 50)"},
	{Name: "mongo_min_pool_size", Default: 5, Desc: "MongoDB min connection pool size (default: 5)"},

	// Analytics API
	{Name: "analytics_base_url", Default: "http://localhost:9000", Desc: "Base URL of the analytics API"},
	{Name: "analytics_token", Default: "", Desc: "Bearer token for the analytics API (blank sends none)"},
	{Name: "upstream_timeout", Default: "15s", Desc: "Budget for the analytics API calls of one request"},

	// Browser identity
	{Name: "browser_cookie_key", Default: "dev-only-browser-key-change-me-0123456789", Desc: "Browser id cookie signing key (32+ chars in production)"},
	{Name: "browser_cookie_name", Default: "wbdash-browser", Desc: "Browser id cookie name"},
	{Name: "browser_cookie_max_age", Default: "8760h", Desc: "Browser id cookie max age"},
	{Name: "cookie_domain", Default: "", Desc: "Cookie domain (blank means current host)"},

	{Name: "csrf_key", Default: "dev-only-csrf-key-change-me-0123", Desc: "CSRF token key (exactly 32 chars)"},

	// Comparison engine
	{Name: "cogs_coverage_threshold", Default: "80", Desc: "Minimum COGS coverage percent for profit figures"},
	{Name: "delta_neutral_threshold", Default: "0.1", Desc: "Percent change below which a delta is neutral"},
	{Name: "delta_display_cap", Default: "999", Desc: "Largest percent rendered verbatim"},
	{Name: "display_locale", Default: "ru", Desc: "BCP 47 locale for rendered numbers"},

	// Sync status polling
	{Name: "sync_poll_interval", Default: "1m", Desc: "Interval between sync status polls"},
	{Name: "sync_poll_timeout", Default: "10s", Desc: "Timeout of one sync status poll"},

	{Name: "request_timeout", Default: "30s", Desc: "Overall HTTP handler timeout"},
}

// LoadConfig loads WAFFLE core config and app-specific config.
//
// WAFFLE's config.LoadWithAppConfig handles .env files, config files,
// environment variables (WAFFLE_* for core, WBDASH_* for app) and flags,
// merged with precedence flags > env > files > defaults.
func LoadConfig(logger *zap.Logger) (*config.CoreConfig, AppConfig, error) {
	coreCfg, appValues, err := config.LoadWithAppConfig(logger, EnvVarPrefix, appConfigKeys)
	if err != nil {
		return nil, AppConfig{}, err
	}

	appCfg := AppConfig{
		PreferenceStore:  appValues.String("preference_store"),
		MongoURI:         appValues.String("mongo_uri"),
		MongoDatabase:    appValues.String("mongo_database"),
		MongoMaxPoolSize: uint64(appValues.Int("mongo_max_pool_size")),
		MongoMinPoolSize: uint64(appValues.Int("mongo_min_pool_size")),

		AnalyticsBaseURL: appValues.String("analytics_base_url"),
		AnalyticsToken:   appValues.String("analytics_token"),
		UpstreamTimeout:  appValues.Duration("upstream_timeout", 15*time.Second),

		BrowserCookieKey:    appValues.String("browser_cookie_key"),
		BrowserCookieName:   appValues.String("browser_cookie_name"),
		BrowserCookieMaxAge: appValues.Duration("browser_cookie_max_age", 365*24*time.Hour),
		CookieDomain:        appValues.String("cookie_domain"),

		CSRFKey:       appValues.String("csrf_key"),
		DisplayLocale: appValues.String("display_locale"),

		SyncPollInterval: appValues.Duration("sync_poll_interval", time.Minute),
		SyncPollTimeout:  appValues.Duration("sync_poll_timeout", 10*time.Second),

		RequestTimeout: appValues.Duration("request_timeout", 30*time.Second),
	}

	// WAFFLE has no float accessor; these are read as strings.
	floats := []struct {
		key string
		dst *float64
	}{
		{"cogs_coverage_threshold", &appCfg.COGSCoverageThreshold},
		{"delta_neutral_threshold", &appCfg.DeltaNeutralThreshold},
		{"delta_display_cap", &appCfg.DeltaDisplayCap},
	}
	for _, f := range floats {
		v, err := strconv.ParseFloat(appValues.String(f.key), 64)
		if err != nil {
			return nil, AppConfig{}, fmt.Errorf("%s: %w", f.key, err)
		}
		*f.dst = v
	}

	return coreCfg, appCfg, nil
}

// ValidateConfig performs app-specific config validation.
func ValidateConfig(coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) error {
	var errs []error

	switch appCfg.PreferenceStore {
	case PreferenceStoreMongo:
		if err := wafflemongo.ValidateURI(appCfg.MongoURI); err != nil {
			errs = append(errs, fmt.Errorf("invalid MongoDB URI: %w", err))
		}
	case PreferenceStoreMemory:
		logger.Warn("preferences are kept in memory and lost on restart")
	default:
		errs = append(errs, fmt.Errorf("preference_store must be %q or %q, got %q",
			PreferenceStoreMongo, PreferenceStoreMemory, appCfg.PreferenceStore))
	}

	if u, err := url.Parse(appCfg.AnalyticsBaseURL); err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		errs = append(errs, fmt.Errorf("analytics_base_url must be an absolute http(s) URL, got %q", appCfg.AnalyticsBaseURL))
	}
	if len(appCfg.CSRFKey) != 32 {
		errs = append(errs, errors.New("csrf_key must be exactly 32 characters"))
	}
	if appCfg.COGSCoverageThreshold <= 0 || appCfg.COGSCoverageThreshold > 100 {
		errs = append(errs, fmt.Errorf("cogs_coverage_threshold must be in (0, 100], got %v", appCfg.COGSCoverageThreshold))
	}
	if appCfg.DeltaNeutralThreshold <= 0 {
		errs = append(errs, fmt.Errorf("delta_neutral_threshold must be positive, got %v", appCfg.DeltaNeutralThreshold))
	}
	if appCfg.DeltaDisplayCap <= 0 {
		errs = append(errs, fmt.Errorf("delta_display_cap must be positive, got %v", appCfg.DeltaDisplayCap))
	}
	if _, err := language.Parse(appCfg.DisplayLocale); err != nil {
		errs = append(errs, fmt.Errorf("display_locale %q: %w", appCfg.DisplayLocale, err))
	}
	if appCfg.SyncPollInterval <= 0 {
		errs = append(errs, errors.New("sync_poll_interval must be positive"))
	}

	if err := errors.Join(errs...); err != nil {
		logger.Error("invalid configuration", zap.Error(err))
		return err
	}
	return nil
}
