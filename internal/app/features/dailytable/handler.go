// Package dailytable serves the per-day totals table of a period and its CSV export.
//
// Endpoints:
//   - GET /api/daily?week=2026-W05&sort=net_sales&dir=asc
//   - GET /api/daily/export.csv?week=2026-W05&sort=net_sales&dir=asc
//
// A toggle=<column> parameter applies one header click to the sort given by
// sort/dir. Unknown or unsortable columns fall back to the default sort.
package dailytable

import (
	"context"
	"net/http"
	"net/url"
	"time"

	errorsfeature "github.com/salacoste/wb-erp-system-daytona-FE-sub000/internal/app/features/errors"
	"github.com/salacoste/wb-erp-system-daytona-FE-sub000/internal/app/system/derived"
	"github.com/salacoste/wb-erp-system-daytona-FE-sub000/internal/app/system/jsonutil"
	"github.com/salacoste/wb-erp-system-daytona-FE-sub000/internal/app/system/periodurl"
	"github.com/salacoste/wb-erp-system-daytona-FE-sub000/internal/app/system/table"
	"github.com/salacoste/wb-erp-system-daytona-FE-sub000/internal/app/system/timeouts"
	"github.com/salacoste/wb-erp-system-daytona-FE-sub000/internal/domain/models"
	"go.uber.org/zap"
)

// Query parameters.
const (
	ParamSort   = "sort"
	ParamDir    = "dir"
	ParamToggle = "toggle"
)

// Source fetches the per-day rows of a period.
type Source interface {
	Daily(ctx context.Context, key models.PeriodKey) ([]models.DailyRow, error)
}

// Handler serves the daily table endpoints.
type Handler struct {
	src     Source
	columns []table.ColumnDef
	errLog  *errorsfeature.ErrorLogger
	logger  *zap.Logger
	now     func() time.Time
}

// NewHandler creates a daily table Handler. A nil now uses time.Now.
func NewHandler(src Source, now func() time.Time, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if now == nil {
		now = time.Now
	}
	return &Handler{
		src:     src,
		columns: table.DailyColumns(),
		errLog:  errorsfeature.NewErrorLogger(logger),
		logger:  logger,
		now:     now,
	}
}

// Response is the body of GET /api/daily.
type Response struct {
	Selection periodurl.Selection `json:"selection"`
	Query     string              `json:"query"`
	table.View
}

// Get handles GET /api/daily.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	sel, view, ok := h.load(w, r, q)
	if !ok {
		return
	}
	jsonutil.OK(w, Response{
		Selection: sel,
		Query:     periodurl.Canonical(withSort(q, view.Sort), sel),
		View:      view,
	})
}

// Export handles GET /api/daily/export.csv. Rows are written in the requested
// sort order followed by the totals row.
func (h *Handler) Export(w http.ResponseWriter, r *http.Request) {
	sel, view, ok := h.load(w, r, r.URL.Query())
	if !ok {
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="daily-`+sel.Period.String()+`.csv"`)
	if err := table.WriteCSV(w, view); err != nil {
		// headers are gone; the client sees a truncated file
		h.errLog.Log(r, "daily export write failed", err)
	}
}

func (h *Handler) load(w http.ResponseWriter, r *http.Request, q url.Values) (periodurl.Selection, table.View, bool) {
	sel := periodurl.Parse(q, h.now())
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Upstream(), h.logger, "daily rows")
	rows, err := h.src.Daily(ctx, sel.Period)
	cancel()
	if err != nil {
		h.errLog.Upstream(w, r, "daily rows fetch failed", err)
		return sel, table.View{}, false
	}
	state := h.sortState(q)
	return sel, table.NewView(Enrich(rows), h.columns, state), true
}

// sortState reads sort/dir and applies toggle. Anything unrecognized yields
// the default sort.
func (h *Handler) sortState(q url.Values) table.SortState {
	state := table.DefaultSort
	if col := q.Get(ParamSort); h.sortable(col) {
		state = table.SortState{Column: col, Direction: table.Desc}
		if table.SortDirection(q.Get(ParamDir)) == table.Asc {
			state.Direction = table.Asc
		}
	}
	if col := q.Get(ParamToggle); h.sortable(col) {
		state = state.Toggle(col)
	}
	return state
}

func (h *Handler) sortable(key string) bool {
	col, ok := table.Find(h.columns, key)
	return ok && col.Sortable
}

// withSort replaces the toggle parameter by the effective sort so the
// canonical query reproduces this view.
func withSort(q url.Values, s table.SortState) url.Values {
	out := make(url.Values, len(q))
	for k, v := range q {
		out[k] = append([]string(nil), v...)
	}
	out.Del(ParamToggle)
	out.Set(ParamSort, s.Column)
	out.Set(ParamDir, string(s.Direction))
	return out
}

// Enrich returns copies of rows with the theoretical profit of each day
// added. A day with any unknown input gets a nil profit.
func Enrich(rows []models.DailyRow) []models.DailyRow {
	out := make([]models.DailyRow, len(rows))
	for i, r := range rows {
		m := make(map[string]*float64, len(r.Metrics)+1)
		for k, v := range r.Metrics {
			m[k] = v
		}
		m[table.KeyTheoreticalProfit] = derived.TheoreticalProfit(derived.ProfitInputs{
			OrdersAmount:     r.Value(table.KeyOrdersAmount),
			COGS:             r.Value(table.KeyCOGS),
			AdvertisingSpend: r.Value(table.KeyAdvertising),
			LogisticsCost:    r.Value(table.KeyLogistics),
			StorageCost:      r.Value(table.KeyStorage),
		}).Value
		out[i] = models.DailyRow{Date: r.Date, Metrics: m}
	}
	return out
}
