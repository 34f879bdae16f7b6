// Package comparison serves the period-over-period comparison of the seller's
// analytics: both periods' raw metrics, their deltas, and the derived metrics.
//
// Endpoint:
//   - GET /api/comparison?week=2026-W05&type=week&mode=wow
//
// The period comes from the same query parameters the page URL carries; mode
// falls back to the browser's stored comparison_mode preference. A request
// superseded by a newer one from the same browser answers 409.
package comparison

import (
	"context"
	"net/http"
	"net/url"
	"time"

	errorsfeature "github.com/salacoste/wb-erp-system-daytona-FE-sub000/internal/app/features/errors"
	preferencestore "github.com/salacoste/wb-erp-system-daytona-FE-sub000/internal/app/store/preferences"
	"github.com/salacoste/wb-erp-system-daytona-FE-sub000/internal/app/system/analyticsapi"
	"github.com/salacoste/wb-erp-system-daytona-FE-sub000/internal/app/system/browserid"
	"github.com/salacoste/wb-erp-system-daytona-FE-sub000/internal/app/system/delta"
	"github.com/salacoste/wb-erp-system-daytona-FE-sub000/internal/app/system/derived"
	"github.com/salacoste/wb-erp-system-daytona-FE-sub000/internal/app/system/jsonutil"
	"github.com/salacoste/wb-erp-system-daytona-FE-sub000/internal/app/system/latest"
	"github.com/salacoste/wb-erp-system-daytona-FE-sub000/internal/app/system/periods"
	"github.com/salacoste/wb-erp-system-daytona-FE-sub000/internal/app/system/periodurl"
	"github.com/salacoste/wb-erp-system-daytona-FE-sub000/internal/app/system/timeouts"
	"github.com/salacoste/wb-erp-system-daytona-FE-sub000/internal/domain/models"
	"go.uber.org/zap"
)

// ParamMode is the query parameter overriding the stored comparison mode.
const ParamMode = "mode"

// Source fetches both sides of a comparison.
type Source interface {
	Pair(ctx context.Context, cmp periods.Comparison) (analyticsapi.PairResult, error)
}

// Options carries the calculators configured at startup.
type Options struct {
	Deltas    delta.Calculator
	Derived   derived.Calculator
	Formatter *delta.Formatter
	Now       func() time.Time
}

// Handler serves the comparison endpoint.
type Handler struct {
	src    Source
	prefs  *preferencestore.Bridge
	guard  *latest.Guard
	errLog *errorsfeature.ErrorLogger
	logger *zap.Logger

	deltas  delta.Calculator
	derived derived.Calculator
	format  *delta.Formatter
	now     func() time.Time
}

// NewHandler creates a comparison Handler. Zero-valued options select defaults.
func NewHandler(src Source, prefs *preferencestore.Bridge, guard *latest.Guard, opts Options, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.Deltas.NeutralThreshold <= 0 {
		opts.Deltas = delta.New(0)
	}
	if opts.Derived.CoverageThreshold <= 0 {
		opts.Derived = derived.NewCalculator(0)
	}
	if opts.Formatter == nil {
		opts.Formatter = delta.NewFormatter("en", 0)
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if guard == nil {
		guard = latest.NewGuard()
	}
	return &Handler{
		src:     src,
		prefs:   prefs,
		guard:   guard,
		errLog:  errorsfeature.NewErrorLogger(logger),
		logger:  logger,
		deltas:  opts.Deltas,
		derived: opts.Derived,
		format:  opts.Formatter,
		now:     opts.Now,
	}
}

// DerivedPair holds the derived metric sets of both periods.
type DerivedPair struct {
	Current  derived.Set `json:"current"`
	Previous derived.Set `json:"previous"`
}

// Coverage reports whether COGS data is complete enough for profit figures.
type Coverage struct {
	Current    float64 `json:"current"`
	Previous   float64 `json:"previous"`
	Threshold  float64 `json:"threshold"`
	Sufficient bool    `json:"sufficient"`
}

// Response is the body of GET /api/comparison.
type Response struct {
	Selection     periodurl.Selection `json:"selection"`
	Query         string              `json:"query"`
	Comparison    periods.Comparison  `json:"comparison"`
	Metrics       []MetricDelta       `json:"metrics"`
	Derived       DerivedPair         `json:"derived"`
	DerivedDeltas []MetricDelta       `json:"derived_deltas"`
	Coverage      Coverage            `json:"coverage"`
}

// Get handles GET /api/comparison.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	sel := periodurl.Parse(q, h.now())

	browser, _ := browserid.FromContext(r.Context())
	mode, ok := h.mode(r.Context(), browser, q.Get(ParamMode))
	if !ok {
		jsonutil.BadRequest(w, "mode must be wow or mom")
		return
	}

	cmp, err := periods.Resolve(sel.Period, mode)
	if err != nil {
		jsonutil.BadRequest(w, err.Error())
		return
	}

	ticket := h.guard.Begin(browser + "/comparison")
	defer h.guard.Done(ticket)

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Upstream(), h.logger, "comparison")
	pair, err := h.src.Pair(ctx, cmp)
	cancel()
	if !h.guard.IsCurrent(ticket) {
		h.logger.Debug("dropping superseded comparison",
			zap.String("browser_id", browser),
			zap.Stringer("period", cmp.Current))
		jsonutil.Stale(w)
		return
	}
	if err != nil {
		h.errLog.Upstream(w, r, "comparison fetch failed", err)
		return
	}

	jsonutil.OK(w, h.build(sel, q, cmp, pair))
}

func (h *Handler) build(sel periodurl.Selection, q url.Values, cmp periods.Comparison, pair analyticsapi.PairResult) Response {
	cur := h.derived.ForPeriod(pair.Current)
	prev := h.derived.ForPeriod(pair.Previous)

	return Response{
		Selection:     sel,
		Query:         periodurl.Canonical(q, sel),
		Comparison:    cmp,
		Metrics:       h.rawDeltas(pair.Current, pair.Previous),
		Derived:       DerivedPair{Current: cur, Previous: prev},
		DerivedDeltas: h.derivedDeltas(cur, prev),
		Coverage: Coverage{
			Current:    cur.COGSCoverage,
			Previous:   prev.COGSCoverage,
			Threshold:  h.derived.CoverageThreshold,
			Sufficient: cur.COGSCoverage >= h.derived.CoverageThreshold,
		},
	}
}

// mode picks the comparison mode: an explicit query value wins, else the
// stored preference. An explicit but unknown value reports !ok.
func (h *Handler) mode(ctx context.Context, browser, raw string) (models.ComparisonMode, bool) {
	if raw != "" {
		m := models.ParseComparisonMode(raw, "")
		return m, m.Valid()
	}
	if h.prefs == nil || browser == "" {
		return models.DefaultComparisonModePreference().Mode, true
	}
	p := preferencestore.Get(ctx, h.prefs, browser, models.PrefComparisonMode, models.DefaultComparisonModePreference())
	return p.Mode, true
}
