package derived

import (
	"math"
	"testing"

	"github.com/salacoste/wb-erp-system-daytona-FE-sub000/internal/domain/models"
)

func f(v float64) *float64 { return &v }

func TestTheoreticalProfit_AllInputs(t *testing.T) {
	got := TheoreticalProfit(ProfitInputs{
		OrdersAmount:     f(84377),
		COGS:             f(35818),
		AdvertisingSpend: f(3728),
		LogisticsCost:    f(17566),
		StorageCost:      f(2024),
	})

	if !got.IsComplete {
		t.Fatalf("IsComplete = false, missing %v", got.MissingInputs)
	}
	if got.Value == nil || *got.Value != 25241 {
		t.Errorf("Value = %v, want 25241", got.Value)
	}
	if len(got.MissingInputs) != 0 {
		t.Errorf("MissingInputs = %v, want none", got.MissingInputs)
	}
	if got.Breakdown[InputLogistics] != 17566 {
		t.Errorf("Breakdown[logistics] = %v, want 17566", got.Breakdown[InputLogistics])
	}
}

func TestTheoreticalProfit_OnlyAdvertisingKnown(t *testing.T) {
	got := TheoreticalProfit(ProfitInputs{AdvertisingSpend: f(2102.66)})

	if got.IsComplete {
		t.Error("IsComplete = true, want false")
	}
	if got.Value != nil {
		t.Errorf("Value = %v, want nil", *got.Value)
	}
	for _, name := range []string{InputOrdersAmount, InputCOGS, InputLogistics, InputStorage} {
		if !got.Missing(name) {
			t.Errorf("MissingInputs %v should contain %q", got.MissingInputs, name)
		}
	}
	if got.Missing(InputAdvertising) {
		t.Error("advertising_spend is known and must not be listed as missing")
	}
	if len(got.MissingInputs) != 4 {
		t.Errorf("len(MissingInputs) = %d, want 4", len(got.MissingInputs))
	}
}

func TestTheoreticalProfit_AnyNullIsIncomplete(t *testing.T) {
	full := ProfitInputs{
		OrdersAmount:     f(1000),
		COGS:             f(10),
		AdvertisingSpend: f(10),
		LogisticsCost:    f(10),
		StorageCost:      f(10),
	}
	// a partial sum would be strongly positive here; the gate must still hold
	drops := map[string]func(p *ProfitInputs){
		InputOrdersAmount: func(p *ProfitInputs) { p.OrdersAmount = nil },
		InputCOGS:         func(p *ProfitInputs) { p.COGS = nil },
		InputAdvertising:  func(p *ProfitInputs) { p.AdvertisingSpend = nil },
		InputLogistics:    func(p *ProfitInputs) { p.LogisticsCost = nil },
		InputStorage:      func(p *ProfitInputs) { p.StorageCost = nil },
	}

	for name, drop := range drops {
		t.Run(name, func(t *testing.T) {
			in := full
			drop(&in)
			got := TheoreticalProfit(in)
			if got.IsComplete || got.Value != nil {
				t.Errorf("TheoreticalProfit without %s = %+v, want incomplete nil", name, got)
			}
			if !got.Missing(name) {
				t.Errorf("MissingInputs %v should contain %q", got.MissingInputs, name)
			}
		})
	}
}

func TestCalculator_GrossProfit(t *testing.T) {
	c := NewCalculator(0)

	tests := []struct {
		name       string
		payout     *float64
		cogs       *float64
		coverage   float64
		wantValue  *float64
		wantMissed string
	}{
		{"covered", f(50000), f(20000), 95, f(30000), ""},
		{"exactly at threshold", f(50000), f(20000), 80, f(30000), ""},
		{"below threshold", f(50000), f(20000), 79.9, nil, InputCOGSCoverage},
		{"payout absent", nil, f(20000), 100, nil, InputPayout},
		{"cogs absent", f(50000), nil, 100, nil, InputCOGS},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := c.GrossProfit(tt.payout, tt.cogs, tt.coverage)
			if tt.wantValue == nil {
				if got.Value != nil || got.IsComplete {
					t.Errorf("GrossProfit() = %+v, want suppressed", got)
				}
				if !got.Missing(tt.wantMissed) {
					t.Errorf("MissingInputs = %v, want %q", got.MissingInputs, tt.wantMissed)
				}
				return
			}
			if got.Value == nil || *got.Value != *tt.wantValue {
				t.Errorf("GrossProfit() value = %v, want %v", got.Value, *tt.wantValue)
			}
		})
	}
}

func TestCalculator_Margin(t *testing.T) {
	c := NewCalculator(80)

	got := c.Margin(f(50000), f(20000), f(60000), 90)
	if got.Value == nil || math.Abs(*got.Value-50) > 1e-9 {
		t.Errorf("Margin() = %v, want 50", got.Value)
	}

	got = c.Margin(f(50000), f(20000), f(60000), 50)
	if got.Value != nil || !got.Missing(InputCOGSCoverage) {
		t.Errorf("Margin() below coverage = %+v, want suppressed", got)
	}

	got = c.Margin(f(50000), f(20000), f(0), 90)
	if got.Value != nil || !got.Missing(InputNetSales) {
		t.Errorf("Margin() zero net sales = %+v, want suppressed", got)
	}

	got = c.Margin(f(50000), f(20000), nil, 90)
	if got.Value != nil || !got.Missing(InputNetSales) {
		t.Errorf("Margin() absent net sales = %+v, want suppressed", got)
	}
}

func TestRatios(t *testing.T) {
	tests := []struct {
		name string
		fn   func() Result
		want *float64
	}{
		{"DRR", func() Result { return DRR(f(500), f(10000)) }, f(5)},
		{"DRR zero sales", func() Result { return DRR(f(500), f(0)) }, nil},
		{"DRR absent sales", func() Result { return DRR(f(500), nil) }, nil},
		{"DRR absent spend", func() Result { return DRR(nil, f(100)) }, nil},
		{"DRRz", func() Result { return DRRz(f(250), f(1000)) }, f(25)},
		{"DRRz zero orders", func() Result { return DRRz(f(250), f(0)) }, nil},
		{"StorageRatio", func() Result { return StorageRatio(f(30), f(600)) }, f(5)},
		{"StorageRatio zero revenue", func() Result { return StorageRatio(f(30), f(0)) }, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.fn()
			if tt.want == nil {
				if got.Value != nil || got.IsComplete {
					t.Errorf("%s = %+v, want nil incomplete", tt.name, got)
				}
				return
			}
			if got.Value == nil || math.Abs(*got.Value-*tt.want) > 1e-9 {
				t.Errorf("%s = %v, want %v", tt.name, got.Value, *tt.want)
			}
		})
	}
}

func TestCoverage(t *testing.T) {
	if got := Coverage(40, 50); got != 80 {
		t.Errorf("Coverage(40, 50) = %v, want 80", got)
	}
	if got := Coverage(0, 0); got != 0 {
		t.Errorf("Coverage(0, 0) = %v, want 0", got)
	}
}

func TestCalculator_ForPeriod(t *testing.T) {
	c := NewCalculator(0)
	set := c.ForPeriod(models.PeriodMetrics{
		OrdersAmount:     f(84377),
		NetSales:         f(70000),
		PayoutTotal:      f(52000),
		COGS:             f(35818),
		AdvertisingSpend: f(3728),
		LogisticsCost:    f(17566),
		StorageCost:      f(2024),
		ItemsWithCOGS:    45,
		TotalItems:       50,
	})

	if set.COGSCoverage != 90 {
		t.Errorf("COGSCoverage = %v, want 90", set.COGSCoverage)
	}
	if set.TheoreticalProfit.Value == nil || *set.TheoreticalProfit.Value != 25241 {
		t.Errorf("TheoreticalProfit = %v, want 25241", set.TheoreticalProfit.Value)
	}
	if set.GrossProfit.Value == nil || *set.GrossProfit.Value != 16182 {
		t.Errorf("GrossProfit = %v, want 16182", set.GrossProfit.Value)
	}
	if !set.DRR.IsComplete || !set.DRRz.IsComplete || !set.StorageRatio.IsComplete {
		t.Error("ratio metrics should be complete")
	}
}
