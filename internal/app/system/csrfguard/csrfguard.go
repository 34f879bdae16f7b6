// Package csrfguard configures gorilla/csrf for the JSON API.
//
// Safe requests receive the masked token in the X-CSRF-Token response header;
// unsafe requests must echo it in the same request header along with the
// csrf cookie.
package csrfguard

import (
	"errors"
	"net/http"

	"github.com/gorilla/csrf"
)

const (
	DefaultCookieName = "wbdash_csrf"
	HeaderName        = "X-CSRF-Token"
)

var ErrShortKey = errors.New("csrf key must be 32 bytes")

// Config controls the protection middleware.
type Config struct {
	Key        string
	Secure     bool
	CookieName string
	Domain     string
	// TrustedOrigins are host[:port] values accepted in the Origin header.
	TrustedOrigins []string
	ErrorHandler   http.Handler
}

// New returns the protection middleware. Without Secure, requests are marked
// plaintext so the TLS-only Referer check is skipped on local http.
func New(cfg Config) (func(http.Handler) http.Handler, error) {
	if len(cfg.Key) != 32 {
		return nil, ErrShortKey
	}
	if cfg.CookieName == "" {
		cfg.CookieName = DefaultCookieName
	}

	opts := []csrf.Option{
		csrf.Secure(cfg.Secure),
		csrf.Path("/"),
		csrf.CookieName(cfg.CookieName),
		csrf.RequestHeader(HeaderName),
		csrf.SameSite(csrf.SameSiteLaxMode),
	}
	if cfg.ErrorHandler != nil {
		opts = append(opts, csrf.ErrorHandler(cfg.ErrorHandler))
	}
	if len(cfg.TrustedOrigins) > 0 {
		opts = append(opts, csrf.TrustedOrigins(cfg.TrustedOrigins))
	}
	if cfg.Domain != "" {
		opts = append(opts, csrf.Domain(cfg.Domain))
	}
	protect := csrf.Protect([]byte(cfg.Key), opts...)

	return func(next http.Handler) http.Handler {
		inner := protect(exposeToken(next))
		if cfg.Secure {
			return inner
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			inner.ServeHTTP(w, csrf.PlaintextHTTPRequest(r))
		})
	}, nil
}

func exposeToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions:
			w.Header().Set(HeaderName, csrf.Token(r))
		}
		next.ServeHTTP(w, r)
	})
}
