package comparison

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Routes returns a router with the comparison endpoint.
//
// When mounted at /api/comparison:
//   - GET /api/comparison
func Routes(h *Handler) http.Handler {
	r := chi.NewRouter()
	r.Get("/", h.Get)
	return r
}
