/*
csv.go - Legacy "Prospetto Presenze" CSV rendering

FORMAT (parsed positionally downstream, every detail is load-bearing):
  - UTF-8 BOM prefix, semicolon separated, LF line endings
  - Row 1: "Servizio Stipendi Pensioni" then one weekday name per real
    day of the month (Italian, full), blank columns up to 31
  - Row 2: blank corner then the numbers 1..31, always all 31
  - One row per operator: name, then P/SW/AG or blank per day, padded
    with blank columns up to 31
*/
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/warp/timesheet-engine/engine"
)

const gridColumns = 31

var italianWeekdays = [7]string{
	"Domenica", "Lunedì", "Martedì", "Mercoledì", "Giovedì", "Venerdì", "Sabato",
}

// WriteCSV renders the grid in the payroll office's legacy format.
func WriteCSV(w io.Writer, g Grid) error {
	var b strings.Builder
	b.WriteString("\uFEFF")

	days := g.DaysInMonth()

	b.WriteString("Servizio Stipendi Pensioni")
	for d := 1; d <= gridColumns; d++ {
		b.WriteByte(';')
		if d <= days {
			day := engine.NewDay(g.Year, g.Month, d)
			b.WriteString(italianWeekdays[int(day.Weekday())])
		}
	}
	b.WriteByte('\n')

	for d := 1; d <= gridColumns; d++ {
		fmt.Fprintf(&b, ";%d", d)
	}
	b.WriteByte('\n')

	for _, row := range g.Rows {
		b.WriteString(row.UserName)
		for d := 1; d <= gridColumns; d++ {
			b.WriteByte(';')
			if d <= len(row.Cells) {
				b.WriteString(row.Cells[d-1])
			}
		}
		b.WriteByte('\n')
	}

	if _, err := io.WriteString(w, b.String()); err != nil {
		return fmt.Errorf("write prospect csv: %w", err)
	}
	return nil
}

// FileName returns the conventional download name for the grid.
func FileName(g Grid, ext string) string {
	return fmt.Sprintf("Prospetto_Presenze_%d_%d.%s", g.Year, int(g.Month), ext)
}
