package periodurl

import (
	"net/url"
	"testing"
	"time"

	"github.com/salacoste/wb-erp-system-daytona-FE-sub000/internal/domain/models"
)

var now = time.Date(2026, time.October, 14, 12, 0, 0, 0, time.UTC)

func TestParse(t *testing.T) {
	tests := []struct {
		name     string
		query    string
		wantType models.PeriodKind
		want     string
	}{
		{"week", "week=2026-W05&type=week", models.PeriodWeek, "2026-W05"},
		{"month", "month=2025-12&type=month", models.PeriodMonth, "2025-12"},
		{"week without type", "week=2026-W10", models.PeriodWeek, "2026-W10"},
		{"month without type", "month=2026-02", models.PeriodMonth, "2026-02"},
		{"invalid week falls back", "week=invalid-week&type=week", models.PeriodWeek, "2026-W41"},
		{"week 53 in 52 week year", "week=2025-W53", models.PeriodWeek, "2026-W41"},
		{"month value in week param", "week=2026-05&type=week", models.PeriodWeek, "2026-W41"},
		{"invalid month falls back", "month=2026-13&type=month", models.PeriodMonth, "2026-09"},
		{"unknown type", "type=year&week=2026-W03", models.PeriodWeek, "2026-W03"},
		{"type month with only week", "type=month&week=2026-W03", models.PeriodMonth, "2026-09"},
		{"empty", "", models.PeriodWeek, "2026-W41"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := url.ParseQuery(tt.query)
			if err != nil {
				t.Fatalf("ParseQuery: %v", err)
			}
			got := Parse(v, now)
			if got.Type != tt.wantType {
				t.Errorf("Type = %s, want %s", got.Type, tt.wantType)
			}
			if got.Period.String() != tt.want {
				t.Errorf("Period = %s, want %s", got.Period, tt.want)
			}
		})
	}
}

func TestWrite_PreservesUnrelated(t *testing.T) {
	in := url.Values{"tab": {"costs"}, "month": {"2026-01"}, "sort": {"net_sales"}}
	p, _ := models.NewWeek(2026, 7)

	out := Write(in, Selection{Type: models.PeriodWeek, Period: p})

	if out.Get("tab") != "costs" || out.Get("sort") != "net_sales" {
		t.Errorf("unrelated params lost: %v", out)
	}
	if out.Get(ParamWeek) != "2026-W07" || out.Get(ParamType) != "week" {
		t.Errorf("period params = %v", out)
	}
	if out.Has(ParamMonth) {
		t.Errorf("month param should be removed: %v", out)
	}
	if in.Get(ParamMonth) != "2026-01" || in.Has(ParamWeek) {
		t.Errorf("input mutated: %v", in)
	}
}

func TestRoundTrip(t *testing.T) {
	var sels []Selection
	for y := 2019; y <= 2027; y++ {
		for w := 1; w <= models.ISOWeeksInYear(y); w++ {
			p, err := models.NewWeek(y, w)
			if err != nil {
				t.Fatalf("NewWeek(%d, %d): %v", y, w, err)
			}
			sels = append(sels, Selection{Type: models.PeriodWeek, Period: p})
		}
		for m := time.January; m <= time.December; m++ {
			p, err := models.NewMonth(y, m)
			if err != nil {
				t.Fatalf("NewMonth(%d, %d): %v", y, m, err)
			}
			sels = append(sels, Selection{Type: models.PeriodMonth, Period: p})
		}
	}

	base := url.Values{"week": {"garbage"}, "other": {"x"}}
	for _, sel := range sels {
		got := Parse(Write(base, sel), now)
		if got != sel {
			t.Fatalf("Parse(Write(%v)) = %v", sel, got)
		}
		encoded, err := url.ParseQuery(Canonical(base, sel))
		if err != nil {
			t.Fatalf("Canonical(%v) not parseable: %v", sel, err)
		}
		if got := Parse(encoded, now); got != sel {
			t.Fatalf("Parse(Canonical(%v)) = %v", sel, got)
		}
	}
}
