// internal/app/features/period/period.go
package period

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/salacoste/wb-erp-system-daytona-FE-sub000/internal/app/system/jsonutil"
	"github.com/salacoste/wb-erp-system-daytona-FE-sub000/internal/app/system/periods"
	"github.com/salacoste/wb-erp-system-daytona-FE-sub000/internal/app/system/periodurl"
	"github.com/salacoste/wb-erp-system-daytona-FE-sub000/internal/domain/models"
)

// Handler resolves period selections without touching upstream data.
type Handler struct {
	now func() time.Time
}

// NewHandler creates a period Handler. A nil now uses time.Now.
func NewHandler(now func() time.Time) *Handler {
	if now == nil {
		now = time.Now
	}
	return &Handler{now: now}
}

// Response is the canonical form of the requested selection.
type Response struct {
	Selection   periodurl.Selection           `json:"selection"`
	Query       string                        `json:"query"`
	Label       periods.Label                 `json:"label"`
	Comparisons map[string]periods.Comparison `json:"comparisons"`
	Defaults    map[string]models.PeriodKey   `json:"defaults"`
}

// Routes returns a router with the period endpoint mounted at /.
func Routes(h *Handler) http.Handler {
	r := chi.NewRouter()
	r.Get("/", h.Get)
	return r
}

// Get handles GET /api/period. Malformed parameters resolve to the default
// period of the requested type; the response query is what the page URL
// should be replaced with.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	now := h.now()
	q := r.URL.Query()
	sel := periodurl.Parse(q, now)

	resp := Response{
		Selection:   sel,
		Query:       periodurl.Canonical(q, sel),
		Label:       periods.LabelFor(sel.Period),
		Comparisons: make(map[string]periods.Comparison, 2),
		Defaults: map[string]models.PeriodKey{
			string(models.PeriodWeek):  periods.Default(models.PeriodWeek, now),
			string(models.PeriodMonth): periods.Default(models.PeriodMonth, now),
		},
	}
	for _, mode := range []models.ComparisonMode{models.WoW, models.MoM} {
		cmp, err := periods.Resolve(sel.Period, mode)
		if err != nil {
			continue
		}
		resp.Comparisons[string(mode)] = cmp
	}
	jsonutil.OK(w, resp)
}
