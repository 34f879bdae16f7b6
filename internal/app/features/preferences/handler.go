// Package preferences serves the per-browser UI preferences.
//
// Endpoints:
//   - GET /api/preferences        all preferences, defaults filled in
//   - GET /api/preferences/{key}  one preference
//   - PUT /api/preferences/{key}  replace one preference (csrf protected)
//
// Storage is best-effort: a write that fails to persist still answers 204 and
// a read that finds nothing usable answers the default.
package preferences

import (
	"context"
	"net/http"
	"sort"

	"github.com/go-chi/chi/v5"
	preferencestore "github.com/salacoste/wb-erp-system-daytona-FE-sub000/internal/app/store/preferences"
	"github.com/salacoste/wb-erp-system-daytona-FE-sub000/internal/app/system/browserid"
	"github.com/salacoste/wb-erp-system-daytona-FE-sub000/internal/app/system/jsonutil"
	"github.com/salacoste/wb-erp-system-daytona-FE-sub000/internal/domain/models"
	"go.uber.org/zap"
)

// entry binds one preference key to its typed read and write.
type entry struct {
	get func(ctx context.Context, b *preferencestore.Bridge, browser string) any
	put func(w http.ResponseWriter, r *http.Request, b *preferencestore.Bridge, browser string) bool
}

func typed[T preferencestore.Validator](key string, fallback func() T) entry {
	return entry{
		get: func(ctx context.Context, b *preferencestore.Bridge, browser string) any {
			return preferencestore.Get(ctx, b, browser, key, fallback())
		},
		put: func(w http.ResponseWriter, r *http.Request, b *preferencestore.Bridge, browser string) bool {
			var v T
			if err := jsonutil.Decode(w, r, &v); err != nil {
				jsonutil.BadRequest(w, err.Error())
				return false
			}
			if !v.Valid() {
				jsonutil.BadRequest(w, "invalid value for "+key)
				return false
			}
			preferencestore.Set(r.Context(), b, browser, key, v)
			return true
		},
	}
}

var registry = map[string]entry{
	models.PrefViewMode:       typed(models.PrefViewMode, models.DefaultViewPreference),
	models.PrefLegend:         typed(models.PrefLegend, models.DefaultLegendPreference),
	models.PrefComparisonMode: typed(models.PrefComparisonMode, models.DefaultComparisonModePreference),
	models.PrefSections:       typed(models.PrefSections, models.DefaultSectionPreference),
}

// Keys returns the known preference keys in sorted order.
func Keys() []string {
	keys := make([]string, 0, len(registry))
	for k := range registry {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Handler serves preference reads and writes.
type Handler struct {
	prefs  *preferencestore.Bridge
	logger *zap.Logger
}

// NewHandler creates a preferences Handler.
func NewHandler(prefs *preferencestore.Bridge, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{prefs: prefs, logger: logger}
}

// browser returns the caller's identity. Its absence means the identity
// middleware is not mounted.
func (h *Handler) browser(w http.ResponseWriter, r *http.Request) (string, bool) {
	id, ok := browserid.FromContext(r.Context())
	if !ok {
		h.logger.Error("preferences request without browser id", zap.String("path", r.URL.Path))
		jsonutil.InternalError(w)
	}
	return id, ok
}

// List handles GET /api/preferences.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	id, ok := h.browser(w, r)
	if !ok {
		return
	}
	out := make(map[string]any, len(registry))
	for key, e := range registry {
		out[key] = e.get(r.Context(), h.prefs, id)
	}
	jsonutil.OK(w, out)
}

// Get handles GET /api/preferences/{key}.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")
	e, known := registry[key]
	if !known {
		jsonutil.NotFound(w, "unknown preference "+key)
		return
	}
	id, ok := h.browser(w, r)
	if !ok {
		return
	}
	jsonutil.OK(w, e.get(r.Context(), h.prefs, id))
}

// Put handles PUT /api/preferences/{key}.
func (h *Handler) Put(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")
	e, known := registry[key]
	if !known {
		jsonutil.NotFound(w, "unknown preference "+key)
		return
	}
	id, ok := h.browser(w, r)
	if !ok {
		return
	}
	if e.put(w, r, h.prefs, id) {
		jsonutil.NoContent(w)
	}
}
