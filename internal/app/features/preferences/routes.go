package preferences

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Routes returns a router with the preference endpoints.
//
// When mounted at /api/preferences:
//   - GET /api/preferences
//   - GET /api/preferences/{key}
//   - PUT /api/preferences/{key}
//
// protect wraps every route so reads hand out the csrf token that writes must
// echo. A nil protect leaves the routes unguarded.
func Routes(h *Handler, protect func(http.Handler) http.Handler) http.Handler {
	r := chi.NewRouter()
	if protect != nil {
		r.Use(protect)
	}
	r.Get("/", h.List)
	r.Get("/{key}", h.Get)
	r.Put("/{key}", h.Put)
	return r
}
