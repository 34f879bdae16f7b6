package delta

import (
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// DefaultDisplayCap is the largest percentage magnitude rendered verbatim.
const DefaultDisplayCap = 999.0

// Formatter renders deltas for display. Only the rendered text is capped;
// Value.Percent keeps the exact number.
type Formatter struct {
	cap     float64
	printer *message.Printer
}

// NewFormatter returns a Formatter for the given BCP 47 locale ("ru", "en", ...).
// An unparsable locale falls back to English; a non-positive cap selects the default.
func NewFormatter(locale string, displayCap float64) *Formatter {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.English
	}
	if displayCap <= 0 {
		displayCap = DefaultDisplayCap
	}
	return &Formatter{cap: displayCap, printer: message.NewPrinter(tag)}
}

// Percent renders v's percentage, e.g. "+12.3%", "-4.0%", "999+%".
// It returns "—" when no comparison is available.
func (f *Formatter) Percent(v Value) string {
	if v.Percent == nil {
		return "—"
	}
	pct := *v.Percent
	if math.Abs(pct) > f.cap {
		if pct < 0 {
			return f.printer.Sprintf("-%v+%%", int64(f.cap))
		}
		return f.printer.Sprintf("%v+%%", int64(f.cap))
	}
	if pct > 0 {
		return f.printer.Sprintf("+%.1f%%", pct)
	}
	return f.printer.Sprintf("%.1f%%", pct)
}

// Absolute renders the absolute change with a sign and grouping separators.
func (f *Formatter) Absolute(v Value) string {
	if v.Absolute > 0 {
		return f.printer.Sprintf("+%.0f", v.Absolute)
	}
	return f.printer.Sprintf("%.0f", v.Absolute)
}
