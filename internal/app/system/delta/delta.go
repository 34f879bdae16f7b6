// Package delta computes period-over-period changes and their semantic direction.
//
// Direction is semantic, not arithmetic: for cost-type metrics (advertising spend,
// logistics, storage) a decrease is the desired outcome, so callers pass invert=true
// and a falling value reports Positive.
package delta

import "math"

// DefaultNeutralThreshold is the percentage magnitude below which a change is Neutral.
const DefaultNeutralThreshold = 0.1

// Direction is the semantic direction of a change.
type Direction string

const (
	Positive Direction = "positive"
	Negative Direction = "negative"
	Neutral  Direction = "neutral"
)

// Flip swaps Positive and Negative. Neutral is unchanged.
func (d Direction) Flip() Direction {
	switch d {
	case Positive:
		return Negative
	case Negative:
		return Positive
	}
	return d
}

// Value is the change between two snapshots of one metric.
// Percent is nil when the previous value is zero: there is no comparison
// available, which is neither 0% nor infinity.
type Value struct {
	Absolute  float64   `json:"absolute"`
	Percent   *float64  `json:"percent"`
	Direction Direction `json:"direction"`
}

// HasPercent reports whether a percentage comparison is available.
func (v Value) HasPercent() bool { return v.Percent != nil }

// Calculator computes deltas with a configurable neutral threshold.
type Calculator struct {
	NeutralThreshold float64
}

// New returns a Calculator. A non-positive threshold selects the default.
func New(neutralThreshold float64) Calculator {
	if neutralThreshold <= 0 {
		neutralThreshold = DefaultNeutralThreshold
	}
	return Calculator{NeutralThreshold: neutralThreshold}
}

// Calculate uses the default threshold.
func Calculate(current, previous float64, invert bool) Value {
	return New(DefaultNeutralThreshold).Calculate(current, previous, invert)
}

// Calculate returns the delta from previous to current.
func (c Calculator) Calculate(current, previous float64, invert bool) Value {
	v := Value{Absolute: current - previous, Direction: Neutral}
	if previous == 0 {
		return v
	}

	pct := (current - previous) / previous * 100
	v.Percent = &pct
	v.Direction = c.direction(pct, invert)
	return v
}

// CalculateOptional returns nil when either side is unknown.
func (c Calculator) CalculateOptional(current, previous *float64, invert bool) *Value {
	if current == nil || previous == nil {
		return nil
	}
	v := c.Calculate(*current, *previous, invert)
	return &v
}

func (c Calculator) direction(pct float64, invert bool) Direction {
	if math.Abs(pct) < c.NeutralThreshold || math.IsNaN(pct) {
		return Neutral
	}
	d := Positive
	if pct < 0 {
		d = Negative
	}
	if invert {
		d = d.Flip()
	}
	return d
}
