package comparison

import (
	"github.com/salacoste/wb-erp-system-daytona-FE-sub000/internal/app/system/delta"
	"github.com/salacoste/wb-erp-system-daytona-FE-sub000/internal/app/system/derived"
	"github.com/salacoste/wb-erp-system-daytona-FE-sub000/internal/domain/models"
)

// metricSpec describes one raw metric of the period payload. Cost metrics are
// inverted: a decrease is the desired outcome.
type metricSpec struct {
	key    string
	invert bool
	get    func(models.PeriodMetrics) *float64
}

var rawMetrics = []metricSpec{
	{"orders_count", false, func(m models.PeriodMetrics) *float64 { return m.OrdersCount }},
	{"orders_amount", false, func(m models.PeriodMetrics) *float64 { return m.OrdersAmount }},
	{"net_sales", false, func(m models.PeriodMetrics) *float64 { return m.NetSales }},
	{"payout_total", false, func(m models.PeriodMetrics) *float64 { return m.PayoutTotal }},
	{"returns_amount", true, func(m models.PeriodMetrics) *float64 { return m.Returns }},
	{"cogs", true, func(m models.PeriodMetrics) *float64 { return m.COGS }},
	{"advertising_spend", true, func(m models.PeriodMetrics) *float64 { return m.AdvertisingSpend }},
	{"logistics_cost", true, func(m models.PeriodMetrics) *float64 { return m.LogisticsCost }},
	{"storage_cost", true, func(m models.PeriodMetrics) *float64 { return m.StorageCost }},
}

type derivedSpec struct {
	key    string
	invert bool
	get    func(derived.Set) derived.Result
}

// Ratios of spend to revenue are inverted like the costs they measure.
var derivedMetrics = []derivedSpec{
	{"theoretical_profit", false, func(s derived.Set) derived.Result { return s.TheoreticalProfit }},
	{"gross_profit", false, func(s derived.Set) derived.Result { return s.GrossProfit }},
	{"margin_pct", false, func(s derived.Set) derived.Result { return s.MarginPct }},
	{"drr", true, func(s derived.Set) derived.Result { return s.DRR }},
	{"drrz", true, func(s derived.Set) derived.Result { return s.DRRz }},
	{"storage_ratio", true, func(s derived.Set) derived.Result { return s.StorageRatio }},
}

// MetricDelta is one metric across both periods. Delta is nil when either
// side is unknown; the display strings are then empty.
type MetricDelta struct {
	Key          string       `json:"key"`
	Current      *float64     `json:"current"`
	Previous     *float64     `json:"previous"`
	Inverted     bool         `json:"inverted"`
	Delta        *delta.Value `json:"delta"`
	PercentText  string       `json:"percent_text,omitempty"`
	AbsoluteText string       `json:"absolute_text,omitempty"`
}

func (h *Handler) metricDelta(key string, cur, prev *float64, invert bool) MetricDelta {
	md := MetricDelta{Key: key, Current: cur, Previous: prev, Inverted: invert}
	md.Delta = h.deltas.CalculateOptional(cur, prev, invert)
	if md.Delta != nil {
		md.PercentText = h.format.Percent(*md.Delta)
		md.AbsoluteText = h.format.Absolute(*md.Delta)
	}
	return md
}

func (h *Handler) rawDeltas(cur, prev models.PeriodMetrics) []MetricDelta {
	out := make([]MetricDelta, 0, len(rawMetrics))
	for _, s := range rawMetrics {
		out = append(out, h.metricDelta(s.key, s.get(cur), s.get(prev), s.invert))
	}
	return out
}

func (h *Handler) derivedDeltas(cur, prev derived.Set) []MetricDelta {
	out := make([]MetricDelta, 0, len(derivedMetrics))
	for _, s := range derivedMetrics {
		out = append(out, h.metricDelta(s.key, s.get(cur).Value, s.get(prev).Value, s.invert))
	}
	return out
}
