package table

import (
	"encoding/csv"
	"io"
	"strconv"
)

// WriteCSV writes the view as CSV: a header of column labels, the sorted rows,
// then the totals row. Absent cells are written empty.
func WriteCSV(w io.Writer, v View) error {
	cw := csv.NewWriter(w)

	header := make([]string, len(v.Columns))
	for i, c := range v.Columns {
		header[i] = c.Label
	}
	if err := cw.Write(header); err != nil {
		return err
	}

	record := make([]string, len(v.Columns))
	for _, r := range v.Rows {
		for i, c := range v.Columns {
			if c.Kind == KindDate {
				record[i] = r.Date
				continue
			}
			record[i] = formatCell(r.Value(c.Key))
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}

	for i, c := range v.Columns {
		if c.Kind == KindDate {
			record[i] = v.Totals.Label
			continue
		}
		record[i] = formatCell(v.Totals.Values[c.Key])
	}
	if err := cw.Write(record); err != nil {
		return err
	}

	cw.Flush()
	return cw.Error()
}

func formatCell(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}
