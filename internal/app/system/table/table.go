// Package table sorts daily metric rows by column and reduces them to a totals row.
package table

import (
	"slices"
	"strings"

	"github.com/salacoste/wb-erp-system-daytona-FE-sub000/internal/domain/models"
	"github.com/shopspring/decimal"
)

// TotalLabel replaces the date cell of the totals row.
const TotalLabel = "Total"

// DateKey is the column key bound to DailyRow.Date.
const DateKey = "date"

// Kind selects the comparator for a column.
type Kind int

const (
	KindDate Kind = iota
	KindNumber
)

// Align is the horizontal alignment hint for renderers.
type Align string

const (
	AlignLeft  Align = "left"
	AlignRight Align = "right"
)

// ColumnDef is static table configuration.
type ColumnDef struct {
	Key      string `json:"key"`
	Label    string `json:"label"`
	Kind     Kind   `json:"kind"`
	Sortable bool   `json:"sortable"`
	Colorize bool   `json:"colorize"`
	Derived  bool   `json:"derived,omitempty"`
	Width    int    `json:"width,omitempty"`
	Align    Align  `json:"align"`
}

// SortDirection is ascending or descending.
type SortDirection string

const (
	Asc  SortDirection = "asc"
	Desc SortDirection = "desc"
)

// SortState is the current sort column and direction.
type SortState struct {
	Column    string        `json:"column"`
	Direction SortDirection `json:"direction"`
}

// DefaultSort shows the most recent day first.
var DefaultSort = SortState{Column: DateKey, Direction: Desc}

// Toggle returns the state after the user selects column:
// the same column reverses, a new column starts descending.
func (s SortState) Toggle(column string) SortState {
	if s.Column == column {
		if s.Direction == Desc {
			return SortState{Column: column, Direction: Asc}
		}
		return SortState{Column: column, Direction: Desc}
	}
	return SortState{Column: column, Direction: Desc}
}

// Find returns the column definition for key.
func Find(columns []ColumnDef, key string) (ColumnDef, bool) {
	for _, c := range columns {
		if c.Key == key {
			return c, true
		}
	}
	return ColumnDef{}, false
}

// Comparator returns a total order over rows for the given column and direction.
// Absent numbers order below present ones. Ties fall back to the row date, so the
// descending order is always the exact reverse of the ascending one.
func Comparator(col ColumnDef, dir SortDirection) func(a, b models.DailyRow) int {
	return func(a, b models.DailyRow) int {
		c := 0
		if col.Kind == KindNumber {
			c = compareOptional(a.Value(col.Key), b.Value(col.Key))
		}
		if c == 0 {
			c = strings.Compare(a.Date, b.Date)
		}
		if dir == Desc {
			return -c
		}
		return c
	}
}

func compareOptional(a, b *float64) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return -1
	case b == nil:
		return 1
	case *a < *b:
		return -1
	case *a > *b:
		return 1
	}
	return 0
}

// Sort returns a sorted copy of rows. Unknown or non-sortable columns keep the input order.
func Sort(rows []models.DailyRow, columns []ColumnDef, state SortState) []models.DailyRow {
	out := slices.Clone(rows)
	col, ok := Find(columns, state.Column)
	if !ok || !col.Sortable {
		return out
	}
	slices.SortStableFunc(out, Comparator(col, state.Direction))
	return out
}

// TotalsRow is the reduced row shown below the table. Complete reports, per
// numeric column, whether every row contributed a value to the total.
type TotalsRow struct {
	Label    string              `json:"label"`
	Values   map[string]*float64 `json:"values"`
	Complete map[string]bool     `json:"complete"`
}

// Totals sums every numeric column over rows. Absent cells of a raw column are
// skipped and the column is marked incomplete; a column with no known cell stays
// absent. A derived column is all-or-nothing: one absent cell makes its total
// absent, so a partial profit is never reported. Pass the original row set, never
// a sorted view.
func Totals(rows []models.DailyRow, columns []ColumnDef) TotalsRow {
	t := TotalsRow{
		Label:    TotalLabel,
		Values:   make(map[string]*float64),
		Complete: make(map[string]bool),
	}
	for _, col := range columns {
		if col.Kind != KindNumber {
			continue
		}
		sum := decimal.Zero
		known := 0
		for _, r := range rows {
			if v := r.Value(col.Key); v != nil {
				sum = sum.Add(decimal.NewFromFloat(*v))
				known++
			}
		}
		complete := len(rows) > 0 && known == len(rows)
		t.Complete[col.Key] = complete
		if known == 0 || (col.Derived && !complete) {
			t.Values[col.Key] = nil
			continue
		}
		total := sum.InexactFloat64()
		t.Values[col.Key] = &total
	}
	return t
}

// View is a sorted table with its totals.
type View struct {
	Columns []ColumnDef       `json:"columns"`
	Sort    SortState         `json:"sort"`
	Rows    []models.DailyRow `json:"rows"`
	Totals  TotalsRow         `json:"totals"`
}

// NewView sorts rows for display and computes totals from the unsorted input.
func NewView(rows []models.DailyRow, columns []ColumnDef, state SortState) View {
	return View{
		Columns: columns,
		Sort:    state,
		Rows:    Sort(rows, columns, state),
		Totals:  Totals(rows, columns),
	}
}
