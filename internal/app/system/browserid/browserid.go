// Package browserid issues a signed cookie that identifies one browser. UI
// preferences are scoped by this identifier; it carries no user identity.
package browserid

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/securecookie"
	"github.com/gorilla/sessions"
	"go.uber.org/zap"
)

// DefaultCookieName is used when no name is configured.
const DefaultCookieName = "wbdash-browser"

const idKey = "browser_id"

type ctxKey struct{}

// ErrWeakKey is returned when the signing key is unsuitable for secure cookies.
var ErrWeakKey = errors.New("browser id signing key too weak; provide ≥32 random chars")

// Manager reads or mints the browser id on every request.
type Manager struct {
	store  *sessions.CookieStore
	name   string
	logger *zap.Logger
}

// NewManager builds a Manager signing cookies with key. In secure mode the key
// must be at least 32 bytes; in dev mode a weak key only logs a warning.
func NewManager(key, name string, maxAge time.Duration, secure bool, logger *zap.Logger) (*Manager, error) {
	if key == "" {
		return nil, ErrWeakKey
	}
	if len(key) < 32 {
		if secure {
			return nil, ErrWeakKey
		}
		logger.Warn("browser id key is weak; 32+ random chars required in production",
			zap.Int("length", len(key)))
	}
	if name == "" {
		name = DefaultCookieName
	}

	store := sessions.NewCookieStore([]byte(key))
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   int(maxAge.Seconds()),
		Secure:   secure,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}

	return &Manager{store: store, name: name, logger: logger}, nil
}

// Middleware ensures every request carries a browser id in its context,
// setting the cookie when the browser does not have a valid one yet.
func (m *Manager) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess, err := m.store.Get(r, m.name)
		if err != nil {
			m.logger.Debug("browser id cookie rejected",
				zap.String("reason", classify(err)))
		}

		id, _ := sess.Values[idKey].(string)
		if _, perr := uuid.Parse(id); perr != nil {
			id = uuid.NewString()
			sess.Values[idKey] = id
			if err := sess.Save(r, w); err != nil {
				m.logger.Warn("browser id cookie save failed", zap.Error(err))
			}
		}

		next.ServeHTTP(w, r.WithContext(WithID(r.Context(), id)))
	})
}

// FromContext returns the browser id placed by Middleware.
func FromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(ctxKey{}).(string)
	return id, ok && id != ""
}

// WithID returns ctx carrying id. Tests use it to bypass the cookie.
func WithID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

func classify(err error) string {
	var scErr securecookie.Error
	if !errors.As(err, &scErr) {
		return "unknown"
	}
	if !scErr.IsDecode() {
		return "backend"
	}
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "expired timestamp"):
		return "expired"
	case strings.Contains(msg, "mac"):
		return "mac_invalid"
	default:
		return "decode_failed"
	}
}
