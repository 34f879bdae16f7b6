// internal/domain/models/preferences.go
package models

// Preference keys. Each key is stored independently per browser.
const (
	PrefViewMode       = "view_mode"
	PrefLegend         = "legend"
	PrefComparisonMode = "comparison_mode"
	PrefSections       = "sections"
)

// ViewMode is how a widget presents its data.
type ViewMode string

const (
	ViewCards ViewMode = "cards"
	ViewChart ViewMode = "chart"
	ViewTable ViewMode = "table"
)

// ViewPreference is the persisted view toggle.
type ViewPreference struct {
	Mode ViewMode `json:"mode"`
}

// Valid implements the schema check used when reading stored preferences.
func (p ViewPreference) Valid() bool {
	return p.Mode == ViewCards || p.Mode == ViewChart || p.Mode == ViewTable
}

// LegendPreference lists the chart series the user keeps visible.
type LegendPreference struct {
	Visible []string `json:"visible"`
}

func (p LegendPreference) Valid() bool {
	for _, s := range p.Visible {
		if s == "" {
			return false
		}
	}
	return true
}

// ComparisonModePreference is the persisted WoW/MoM selection.
type ComparisonModePreference struct {
	Mode ComparisonMode `json:"mode"`
}

func (p ComparisonModePreference) Valid() bool { return p.Mode.Valid() }

// SectionPreference records which dashboard sections are collapsed.
type SectionPreference struct {
	Collapsed map[string]bool `json:"collapsed"`
}

func (p SectionPreference) Valid() bool { return true }

// Default preference values used when nothing valid is stored. Each call
// returns a fresh value, so callers may modify the result.

func DefaultViewPreference() ViewPreference {
	return ViewPreference{Mode: ViewCards}
}

func DefaultLegendPreference() LegendPreference {
	return LegendPreference{Visible: []string{"orders_amount", "net_sales"}}
}

func DefaultComparisonModePreference() ComparisonModePreference {
	return ComparisonModePreference{Mode: WoW}
}

func DefaultSectionPreference() SectionPreference {
	return SectionPreference{Collapsed: map[string]bool{}}
}
