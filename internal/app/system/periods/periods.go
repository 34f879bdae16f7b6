// Package periods resolves which two periods a comparison shows.
package periods

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/salacoste/wb-erp-system-daytona-FE-sub000/internal/domain/models"
)

// Label keys. Rendering maps these to localized text such as "Week 5, 2026".
const (
	LabelWeek  = "period.week"
	LabelMonth = "period.month"
)

var (
	ErrSamePeriod      = errors.New("comparison periods are equal")
	ErrOverlap         = errors.New("comparison periods overlap")
	ErrUnsupportedMode = errors.New("unsupported comparison mode")
)

// Label is a locale-agnostic period label: a message key plus its parameters.
type Label struct {
	Key    string            `json:"key"`
	Params map[string]string `json:"params"`
}

// LabelFor builds the label of p.
func LabelFor(p models.PeriodKey) Label {
	start, end := p.Range()
	params := map[string]string{
		"year":  strconv.Itoa(p.Year()),
		"start": start.Format(time.DateOnly),
		"end":   end.Format(time.DateOnly),
	}
	if p.Kind() == models.PeriodWeek {
		params["week"] = strconv.Itoa(p.Week())
		return Label{Key: LabelWeek, Params: params}
	}
	params["month"] = strconv.Itoa(int(p.Month()))
	return Label{Key: LabelMonth, Params: params}
}

// Comparison is a resolved pair of periods.
type Comparison struct {
	Mode          models.ComparisonMode `json:"mode"`
	Current       models.PeriodKey      `json:"current"`
	Previous      models.PeriodKey      `json:"previous"`
	CurrentLabel  Label                 `json:"current_label"`
	PreviousLabel Label                 `json:"previous_label"`
}

// Resolve computes the period to compare current against.
//
// WoW steps back one ISO week. MoM projects a week onto its containing month
// first, then steps back one calendar month. A month selection has no week
// step, so WoW on a month also yields the previous month.
func Resolve(current models.PeriodKey, mode models.ComparisonMode) (Comparison, error) {
	if current.IsZero() {
		return Comparison{}, fmt.Errorf("resolve: %w", models.ErrInvalidPeriod)
	}

	var base, prev models.PeriodKey
	switch mode {
	case models.WoW:
		base = current
		if current.Kind() == models.PeriodWeek {
			prev = current.PrevWeek()
		} else {
			prev = current.PrevMonth()
		}
	case models.MoM:
		base = current.ContainingMonth()
		prev = base.PrevMonth()
	default:
		return Comparison{}, fmt.Errorf("resolve %q: %w", mode, ErrUnsupportedMode)
	}

	if err := Validate(base, prev); err != nil {
		return Comparison{}, err
	}
	return Comparison{
		Mode:          mode,
		Current:       base,
		Previous:      prev,
		CurrentLabel:  LabelFor(base),
		PreviousLabel: LabelFor(prev),
	}, nil
}

// Validate rejects pairs that are equal or share any day.
func Validate(current, previous models.PeriodKey) error {
	if current == previous {
		return fmt.Errorf("%s: %w", current, ErrSamePeriod)
	}
	if current.Overlaps(previous) {
		return fmt.Errorf("%s and %s: %w", current, previous, ErrOverlap)
	}
	return nil
}

// CurrentWeek returns the default week selection: the last completed ISO week before now.
func CurrentWeek(now time.Time) models.PeriodKey {
	return models.WeekOf(now.UTC()).PrevWeek()
}

// CurrentMonth returns the default month selection: the last completed month before now.
func CurrentMonth(now time.Time) models.PeriodKey {
	return models.MonthOf(now.UTC()).PrevMonth()
}

// Default returns the default selection of the given kind.
func Default(kind models.PeriodKind, now time.Time) models.PeriodKey {
	if kind == models.PeriodMonth {
		return CurrentMonth(now)
	}
	return CurrentWeek(now)
}
