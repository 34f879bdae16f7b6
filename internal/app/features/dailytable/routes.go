package dailytable

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Routes returns a router with the daily table endpoints.
//
// When mounted at /api/daily:
//   - GET /api/daily
//   - GET /api/daily/export.csv
func Routes(h *Handler) http.Handler {
	r := chi.NewRouter()
	r.Get("/", h.Get)
	r.Get("/export.csv", h.Export)
	return r
}
