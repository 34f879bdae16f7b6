// Package derived computes composite business metrics from partial upstream data.
//
// Every metric reports completeness. A result is complete only when every input it
// requires is known; an incomplete result never carries a value. Partial sums are
// deliberately not reported: treating unknown costs as zero understates cost and
// overstates profit, which is worse than showing nothing.
package derived

import (
	"sort"

	"github.com/salacoste/wb-erp-system-daytona-FE-sub000/internal/domain/models"
)

// DefaultCoverageThreshold is the minimum COGS coverage (percent) for profit figures.
const DefaultCoverageThreshold = 80.0

// Input names reported in Result.MissingInputs and Result.Breakdown.
const (
	InputOrdersAmount = "orders_amount"
	InputNetSales     = "net_sales"
	InputPayout       = "payout_total"
	InputCOGS         = "cogs"
	InputAdvertising  = "advertising_spend"
	InputLogistics    = "logistics_cost"
	InputStorage      = "storage_cost"
	InputCOGSCoverage = "cogs_coverage"
)

// Result is the outcome of one derived metric.
type Result struct {
	Value         *float64           `json:"value"`
	IsComplete    bool               `json:"is_complete"`
	MissingInputs []string           `json:"missing_inputs"`
	Breakdown     map[string]float64 `json:"breakdown"`
}

// Missing reports whether name is among the missing inputs.
func (r Result) Missing(name string) bool {
	i := sort.SearchStrings(r.MissingInputs, name)
	return i < len(r.MissingInputs) && r.MissingInputs[i] == name
}

// builder collects inputs and enforces the completeness gate.
type builder struct {
	missing   map[string]struct{}
	breakdown map[string]float64
}

func newBuilder() *builder {
	return &builder{
		missing:   make(map[string]struct{}),
		breakdown: make(map[string]float64),
	}
}

// need records a required input and returns its value (0 when absent).
func (b *builder) need(name string, v *float64) float64 {
	if v == nil {
		b.missing[name] = struct{}{}
		return 0
	}
	b.breakdown[name] = *v
	return *v
}

func (b *builder) markMissing(name string) {
	b.missing[name] = struct{}{}
}

func (b *builder) complete() bool { return len(b.missing) == 0 }

// result finalizes; value is dropped unless every input was known.
func (b *builder) result(value float64) Result {
	r := Result{
		IsComplete:    b.complete(),
		MissingInputs: make([]string, 0, len(b.missing)),
		Breakdown:     b.breakdown,
	}
	for name := range b.missing {
		r.MissingInputs = append(r.MissingInputs, name)
	}
	sort.Strings(r.MissingInputs)
	if r.IsComplete {
		r.Value = &value
	}
	return r
}

// ProfitInputs are the five components of theoretical profit.
type ProfitInputs struct {
	OrdersAmount     *float64
	COGS             *float64
	AdvertisingSpend *float64
	LogisticsCost    *float64
	StorageCost      *float64
}

// TheoreticalProfit = orders − COGS − advertising − logistics − storage.
// The value is reported only when all five inputs are known.
func TheoreticalProfit(in ProfitInputs) Result {
	b := newBuilder()
	v := b.need(InputOrdersAmount, in.OrdersAmount) -
		b.need(InputCOGS, in.COGS) -
		b.need(InputAdvertising, in.AdvertisingSpend) -
		b.need(InputLogistics, in.LogisticsCost) -
		b.need(InputStorage, in.StorageCost)
	return b.result(v)
}

// Coverage returns itemsWithCost / totalItems × 100, or 0 when there are no items.
func Coverage(itemsWithCost, totalItems int) float64 {
	if totalItems <= 0 {
		return 0
	}
	return float64(itemsWithCost) / float64(totalItems) * 100
}

// ratio returns num / den × 100 with den guarded against zero and absence.
func ratio(numName string, num *float64, denName string, den *float64) Result {
	b := newBuilder()
	n := b.need(numName, num)
	d := b.need(denName, den)
	if den != nil && d == 0 {
		b.markMissing(denName)
	}
	if !b.complete() {
		return b.result(0)
	}
	return b.result(n / d * 100)
}

// DRR is advertising spend as a percentage of net sales.
func DRR(advertising, netSales *float64) Result {
	return ratio(InputAdvertising, advertising, InputNetSales, netSales)
}

// DRRz is advertising spend as a percentage of gross orders revenue.
func DRRz(advertising, ordersAmount *float64) Result {
	return ratio(InputAdvertising, advertising, InputOrdersAmount, ordersAmount)
}

// StorageRatio is storage cost as a percentage of revenue.
func StorageRatio(storage, revenue *float64) Result {
	return ratio(InputStorage, storage, InputNetSales, revenue)
}

// Calculator applies the coverage gate to profit figures.
type Calculator struct {
	CoverageThreshold float64
}

// NewCalculator returns a Calculator. A non-positive threshold selects the default.
func NewCalculator(coverageThreshold float64) Calculator {
	if coverageThreshold <= 0 {
		coverageThreshold = DefaultCoverageThreshold
	}
	return Calculator{CoverageThreshold: coverageThreshold}
}

// GrossProfit = payout − COGS, suppressed when COGS coverage is below the threshold.
func (c Calculator) GrossProfit(payout, cogs *float64, coveragePct float64) Result {
	b := newBuilder()
	v := b.need(InputPayout, payout) - b.need(InputCOGS, cogs)
	b.breakdown[InputCOGSCoverage] = coveragePct
	if coveragePct < c.CoverageThreshold {
		b.markMissing(InputCOGSCoverage)
	}
	return b.result(v)
}

// Margin = gross profit / net sales × 100, under the same coverage gate.
func (c Calculator) Margin(payout, cogs, netSales *float64, coveragePct float64) Result {
	gp := c.GrossProfit(payout, cogs, coveragePct)

	b := newBuilder()
	for k, v := range gp.Breakdown {
		b.breakdown[k] = v
	}
	for _, name := range gp.MissingInputs {
		b.markMissing(name)
	}
	ns := b.need(InputNetSales, netSales)
	if netSales != nil && ns == 0 {
		b.markMissing(InputNetSales)
	}
	if !b.complete() {
		return b.result(0)
	}
	return b.result(*gp.Value / ns * 100)
}

// Set is the full derived metric set for one period.
type Set struct {
	TheoreticalProfit Result  `json:"theoretical_profit"`
	GrossProfit       Result  `json:"gross_profit"`
	MarginPct         Result  `json:"margin_pct"`
	DRR               Result  `json:"drr"`
	DRRz              Result  `json:"drrz"`
	StorageRatio      Result  `json:"storage_ratio"`
	COGSCoverage      float64 `json:"cogs_coverage"`
}

// ForPeriod computes every derived metric from one period payload.
func (c Calculator) ForPeriod(m models.PeriodMetrics) Set {
	coverage := Coverage(m.ItemsWithCOGS, m.TotalItems)
	return Set{
		TheoreticalProfit: TheoreticalProfit(ProfitInputs{
			OrdersAmount:     m.OrdersAmount,
			COGS:             m.COGS,
			AdvertisingSpend: m.AdvertisingSpend,
			LogisticsCost:    m.LogisticsCost,
			StorageCost:      m.StorageCost,
		}),
		GrossProfit:  c.GrossProfit(m.PayoutTotal, m.COGS, coverage),
		MarginPct:    c.Margin(m.PayoutTotal, m.COGS, m.NetSales, coverage),
		DRR:          DRR(m.AdvertisingSpend, m.NetSales),
		DRRz:         DRRz(m.AdvertisingSpend, m.OrdersAmount),
		StorageRatio: StorageRatio(m.StorageCost, m.NetSales),
		COGSCoverage: coverage,
	}
}
