// Package periodurl maps the period selection to and from the query parameters
// week, month and type. It is the only externally visible persisted contract, so
// Parse(Write(v, s)) must reproduce s for every valid selection.
package periodurl

import (
	"net/url"
	"time"

	"github.com/salacoste/wb-erp-system-daytona-FE-sub000/internal/app/system/periods"
	"github.com/salacoste/wb-erp-system-daytona-FE-sub000/internal/domain/models"
)

// Query parameter names.
const (
	ParamWeek  = "week"
	ParamMonth = "month"
	ParamType  = "type"
)

// Selection is the period the user is looking at.
type Selection struct {
	Type   models.PeriodKind `json:"type"`
	Period models.PeriodKey  `json:"period"`
}

// Default returns the default selection of the given type at now.
func Default(kind models.PeriodKind, now time.Time) Selection {
	if kind != models.PeriodMonth {
		kind = models.PeriodWeek
	}
	return Selection{Type: kind, Period: periods.Default(kind, now)}
}

// Parse reads the selection from values. Malformed or inconsistent values fall
// back to the default period of the requested type; Parse never fails.
func Parse(values url.Values, now time.Time) Selection {
	kind := models.PeriodKind(values.Get(ParamType))
	switch kind {
	case models.PeriodWeek, models.PeriodMonth:
	default:
		// no explicit type: infer from whichever parameter is present
		kind = models.PeriodWeek
		if values.Get(ParamWeek) == "" && values.Get(ParamMonth) != "" {
			kind = models.PeriodMonth
		}
	}

	if kind == models.PeriodMonth {
		if p, err := models.ParseMonth(values.Get(ParamMonth)); err == nil {
			return Selection{Type: models.PeriodMonth, Period: p}
		}
		return Default(models.PeriodMonth, now)
	}
	if p, err := models.ParseWeek(values.Get(ParamWeek)); err == nil {
		return Selection{Type: models.PeriodWeek, Period: p}
	}
	return Default(models.PeriodWeek, now)
}

// Write returns a copy of values with the selection applied. Unrelated
// parameters are preserved; the parameter of the other period kind is removed.
func Write(values url.Values, sel Selection) url.Values {
	out := make(url.Values, len(values)+2)
	for k, v := range values {
		out[k] = append([]string(nil), v...)
	}

	switch sel.Period.Kind() {
	case models.PeriodMonth:
		out.Set(ParamMonth, sel.Period.String())
		out.Del(ParamWeek)
		out.Set(ParamType, string(models.PeriodMonth))
	case models.PeriodWeek:
		out.Set(ParamWeek, sel.Period.String())
		out.Del(ParamMonth)
		out.Set(ParamType, string(models.PeriodWeek))
	}
	return out
}

// Canonical returns the encoded query string for sel on top of values, suitable
// for history.replaceState on the client.
func Canonical(values url.Values, sel Selection) string {
	return Write(values, sel).Encode()
}
