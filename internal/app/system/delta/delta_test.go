package delta

import (
	"math"
	"testing"
)

func TestCalculate(t *testing.T) {
	tests := []struct {
		name     string
		current  float64
		previous float64
		invert   bool
		wantAbs  float64
		wantPct  float64
		wantDir  Direction
	}{
		{"growth", 120, 100, false, 20, 20, Positive},
		{"decline", 80, 100, false, -20, -20, Negative},
		{"cost decline is positive", 80, 100, true, -20, -20, Positive},
		{"cost growth is negative", 120, 100, true, 20, 20, Negative},
		{"below neutral threshold", 100.05, 100, false, 0.05, 0.05, Neutral},
		{"below neutral threshold inverted", 99.95, 100, true, -0.05, -0.05, Neutral},
		{"just above threshold", 100.2, 100, false, 0.2, 0.2, Positive},
		{"unchanged", 100, 100, false, 0, 0, Neutral},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Calculate(tt.current, tt.previous, tt.invert)
			if math.Abs(got.Absolute-tt.wantAbs) > 1e-9 {
				t.Errorf("Absolute = %v, want %v", got.Absolute, tt.wantAbs)
			}
			if got.Percent == nil {
				t.Fatal("Percent = nil, want value")
			}
			if math.Abs(*got.Percent-tt.wantPct) > 1e-6 {
				t.Errorf("Percent = %v, want %v", *got.Percent, tt.wantPct)
			}
			if got.Direction != tt.wantDir {
				t.Errorf("Direction = %q, want %q", got.Direction, tt.wantDir)
			}
		})
	}
}

func TestCalculate_ZeroPrevious(t *testing.T) {
	got := Calculate(500, 0, false)
	if got.Percent != nil {
		t.Errorf("Percent = %v, want nil", *got.Percent)
	}
	if got.HasPercent() {
		t.Error("HasPercent() = true, want false")
	}
	if got.Absolute != 500 {
		t.Errorf("Absolute = %v, want 500", got.Absolute)
	}
	if got.Direction != Neutral {
		t.Errorf("Direction = %q, want neutral", got.Direction)
	}
}

func TestCalculate_NeutralIffBelowThreshold(t *testing.T) {
	c := New(DefaultNeutralThreshold)
	previous := []float64{1, 3, 7.5, 100, 2500, -40}
	steps := []float64{-2, -0.5, -0.001, -0.0009, 0, 0.0004, 0.00099, 0.0011, 0.3, 4}

	for _, prev := range previous {
		for _, s := range steps {
			cur := prev + prev*s
			plain := c.Calculate(cur, prev, false)
			inverted := c.Calculate(cur, prev, true)

			neutral := math.Abs(*plain.Percent) < DefaultNeutralThreshold
			if (plain.Direction == Neutral) != neutral {
				t.Errorf("prev=%v cur=%v pct=%v: Direction=%q, neutral expected=%v",
					prev, cur, *plain.Percent, plain.Direction, neutral)
			}
			if inverted.Direction != plain.Direction.Flip() {
				t.Errorf("prev=%v cur=%v: inverted=%q plain=%q", prev, cur, inverted.Direction, plain.Direction)
			}
		}
	}
}

func TestCalculator_CustomThreshold(t *testing.T) {
	c := New(5)
	if got := c.Calculate(104, 100, false).Direction; got != Neutral {
		t.Errorf("4%% change with 5%% threshold = %q, want neutral", got)
	}
	if got := New(0).NeutralThreshold; got != DefaultNeutralThreshold {
		t.Errorf("New(0).NeutralThreshold = %v, want default", got)
	}
}

func TestCalculateOptional(t *testing.T) {
	c := New(0)
	cur, prev := 10.0, 5.0

	if got := c.CalculateOptional(nil, &prev, false); got != nil {
		t.Errorf("CalculateOptional(nil, 5) = %+v, want nil", got)
	}
	if got := c.CalculateOptional(&cur, nil, false); got != nil {
		t.Errorf("CalculateOptional(10, nil) = %+v, want nil", got)
	}
	got := c.CalculateOptional(&cur, &prev, false)
	if got == nil || *got.Percent != 100 {
		t.Errorf("CalculateOptional(10, 5) = %+v, want +100%%", got)
	}
}

func TestDirection_Flip(t *testing.T) {
	if Positive.Flip() != Negative || Negative.Flip() != Positive || Neutral.Flip() != Neutral {
		t.Error("Flip() mapping is wrong")
	}
}

func TestFormatter_Percent(t *testing.T) {
	f := NewFormatter("en", 999)
	pct := func(v float64) Value { return Value{Percent: &v} }

	tests := []struct {
		name string
		in   Value
		want string
	}{
		{"positive", pct(12.34), "+12.3%"},
		{"negative", pct(-4), "-4.0%"},
		{"capped", pct(1500), "999+%"},
		{"capped negative", pct(-2500), "-999+%"},
		{"at cap", pct(999), "+999.0%"},
		{"no comparison", Value{}, "—"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := f.Percent(tt.in); got != tt.want {
				t.Errorf("Percent() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFormatter_DoesNotClampValue(t *testing.T) {
	v := Calculate(3000, 100, false)
	_ = NewFormatter("en", 999).Percent(v)
	if *v.Percent != 2900 {
		t.Errorf("Percent = %v, want 2900", *v.Percent)
	}
}

func TestFormatter_Absolute(t *testing.T) {
	f := NewFormatter("not a locale!", 0)
	if got := f.Absolute(Value{Absolute: 500}); got != "+500" {
		t.Errorf("Absolute(500) = %q, want +500", got)
	}
	if got := f.Absolute(Value{Absolute: -20}); got != "-20" {
		t.Errorf("Absolute(-20) = %q, want -20", got)
	}
}
