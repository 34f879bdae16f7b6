// internal/domain/models/period.go
package models

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// PeriodKind distinguishes week-scoped from month-scoped periods.
type PeriodKind string

const (
	PeriodWeek  PeriodKind = "week"
	PeriodMonth PeriodKind = "month"
)

// ComparisonMode selects how the previous period is derived from the current one.
type ComparisonMode string

const (
	WoW ComparisonMode = "wow" // week over week
	MoM ComparisonMode = "mom" // month over month
)

// Valid reports whether m is a recognized comparison mode.
func (m ComparisonMode) Valid() bool {
	return m == WoW || m == MoM
}

// ParseComparisonMode accepts "wow"/"mom" in any case and falls back to fallback.
func ParseComparisonMode(s string, fallback ComparisonMode) ComparisonMode {
	switch ComparisonMode(strings.ToLower(strings.TrimSpace(s))) {
	case WoW:
		return WoW
	case MoM:
		return MoM
	}
	return fallback
}

// ErrInvalidPeriod is returned when a period string or value is malformed.
var ErrInvalidPeriod = errors.New("invalid period")

var (
	weekPattern  = regexp.MustCompile(`^(\d{4})-W(\d{2})$`)
	monthPattern = regexp.MustCompile(`^(\d{4})-(\d{2})$`)
)

// PeriodKey identifies one ISO week or one calendar month.
// The zero value is not a valid period; construct with NewWeek, NewMonth or ParsePeriod.
type PeriodKey struct {
	kind  PeriodKind
	year  int
	index int // ISO week number or calendar month
}

// NewWeek returns the ISO week key for (year, week).
func NewWeek(year, week int) (PeriodKey, error) {
	if year < 1 || year > 9999 {
		return PeriodKey{}, fmt.Errorf("%w: year %d out of range", ErrInvalidPeriod, year)
	}
	if week < 1 || week > ISOWeeksInYear(year) {
		return PeriodKey{}, fmt.Errorf("%w: week %d out of range for %d", ErrInvalidPeriod, week, year)
	}
	return PeriodKey{kind: PeriodWeek, year: year, index: week}, nil
}

// NewMonth returns the calendar month key for (year, month).
func NewMonth(year int, month time.Month) (PeriodKey, error) {
	if year < 1 || year > 9999 {
		return PeriodKey{}, fmt.Errorf("%w: year %d out of range", ErrInvalidPeriod, year)
	}
	if month < time.January || month > time.December {
		return PeriodKey{}, fmt.Errorf("%w: month %d out of range", ErrInvalidPeriod, month)
	}
	return PeriodKey{kind: PeriodMonth, year: year, index: int(month)}, nil
}

// WeekOf returns the ISO week containing t.
func WeekOf(t time.Time) PeriodKey {
	y, w := t.ISOWeek()
	return PeriodKey{kind: PeriodWeek, year: y, index: w}
}

// MonthOf returns the calendar month containing t.
func MonthOf(t time.Time) PeriodKey {
	return PeriodKey{kind: PeriodMonth, year: t.Year(), index: int(t.Month())}
}

// ParsePeriod parses the canonical "YYYY-Www" or "YYYY-MM" form.
func ParsePeriod(s string) (PeriodKey, error) {
	if m := weekPattern.FindStringSubmatch(s); m != nil {
		y, _ := strconv.Atoi(m[1])
		w, _ := strconv.Atoi(m[2])
		return NewWeek(y, w)
	}
	if m := monthPattern.FindStringSubmatch(s); m != nil {
		y, _ := strconv.Atoi(m[1])
		mo, _ := strconv.Atoi(m[2])
		return NewMonth(y, time.Month(mo))
	}
	return PeriodKey{}, fmt.Errorf("%w: %q", ErrInvalidPeriod, s)
}

// ParseWeek parses "YYYY-Www" only.
func ParseWeek(s string) (PeriodKey, error) {
	p, err := ParsePeriod(s)
	if err != nil {
		return PeriodKey{}, err
	}
	if p.kind != PeriodWeek {
		return PeriodKey{}, fmt.Errorf("%w: %q is not a week", ErrInvalidPeriod, s)
	}
	return p, nil
}

// ParseMonth parses "YYYY-MM" only.
func ParseMonth(s string) (PeriodKey, error) {
	p, err := ParsePeriod(s)
	if err != nil {
		return PeriodKey{}, err
	}
	if p.kind != PeriodMonth {
		return PeriodKey{}, fmt.Errorf("%w: %q is not a month", ErrInvalidPeriod, s)
	}
	return p, nil
}

func (p PeriodKey) Kind() PeriodKind { return p.kind }
func (p PeriodKey) Year() int        { return p.year }

// Week returns the ISO week number, or 0 for month keys.
func (p PeriodKey) Week() int {
	if p.kind != PeriodWeek {
		return 0
	}
	return p.index
}

// Month returns the calendar month, or 0 for week keys.
func (p PeriodKey) Month() time.Month {
	if p.kind != PeriodMonth {
		return 0
	}
	return time.Month(p.index)
}

// IsZero reports whether p was never constructed.
func (p PeriodKey) IsZero() bool { return p.kind == "" }

// String returns the canonical form.
func (p PeriodKey) String() string {
	switch p.kind {
	case PeriodWeek:
		return fmt.Sprintf("%04d-W%02d", p.year, p.index)
	case PeriodMonth:
		return fmt.Sprintf("%04d-%02d", p.year, p.index)
	}
	return ""
}

// Range returns the first and last calendar day of the period (UTC midnight, inclusive).
func (p PeriodKey) Range() (start, end time.Time) {
	switch p.kind {
	case PeriodWeek:
		start = isoWeekMonday(p.year, p.index)
		return start, start.AddDate(0, 0, 6)
	case PeriodMonth:
		start = time.Date(p.year, time.Month(p.index), 1, 0, 0, 0, 0, time.UTC)
		return start, start.AddDate(0, 1, -1)
	}
	return time.Time{}, time.Time{}
}

// PrevWeek returns the ISO week immediately before p. p must be a week key.
func (p PeriodKey) PrevWeek() PeriodKey {
	start, _ := p.Range()
	return WeekOf(start.AddDate(0, 0, -7))
}

// PrevMonth returns the calendar month immediately before p. p must be a month key.
func (p PeriodKey) PrevMonth() PeriodKey {
	if p.index == int(time.January) {
		return PeriodKey{kind: PeriodMonth, year: p.year - 1, index: int(time.December)}
	}
	return PeriodKey{kind: PeriodMonth, year: p.year, index: p.index - 1}
}

// ContainingMonth projects a week onto the month holding its Thursday, which is the
// day that decides ISO week-year membership. Month keys are returned unchanged.
func (p PeriodKey) ContainingMonth() PeriodKey {
	if p.kind == PeriodMonth {
		return p
	}
	start, _ := p.Range()
	return MonthOf(start.AddDate(0, 0, 3))
}

// Overlaps reports whether the date ranges of p and o share at least one day.
func (p PeriodKey) Overlaps(o PeriodKey) bool {
	ps, pe := p.Range()
	os, oe := o.Range()
	return !ps.After(oe) && !os.After(pe)
}

// MarshalText implements encoding.TextMarshaler using the canonical form.
func (p PeriodKey) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *PeriodKey) UnmarshalText(b []byte) error {
	parsed, err := ParsePeriod(string(b))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// ISOWeeksInYear returns 52 or 53. December 28 always falls in the last ISO week.
func ISOWeeksInYear(year int) int {
	_, w := time.Date(year, time.December, 28, 0, 0, 0, 0, time.UTC).ISOWeek()
	return w
}

// isoWeekMonday returns the Monday starting ISO week w of year y.
// January 4 is always in week 1.
func isoWeekMonday(y, w int) time.Time {
	jan4 := time.Date(y, time.January, 4, 0, 0, 0, 0, time.UTC)
	offset := (int(jan4.Weekday()) + 6) % 7 // days since Monday
	return jan4.AddDate(0, 0, -offset+(w-1)*7)
}
