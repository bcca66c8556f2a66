/*
Package report renders team presence prospects for the payroll office.

PURPOSE:
  The payroll office receives one grid per month: one row per operator,
  one column per day, each working cell coded P (in office), SW (smart
  working) or AG (any other absence). Weekend and holiday cells stay
  blank. The CSV rendering of this grid is a fixed legacy format the
  downstream system parses positionally; do not touch its shape.

KEY CONCEPTS:
  - Grid:          the computed month matrix, renderer-independent
  - WriteCSV:      the legacy semicolon format with UTF-8 BOM (csv.go)
  - WriteXLSX:     the same grid as a spreadsheet (xlsx.go)
  - CoverageAudit: office-presence anomalies over a window (audit.go)

A date is coded from the operator's own calendar: their entry if one is
stored, otherwise the default office day. Holidays use each operator's
own patron saint date, so two operators from different cities can show
a blank cell on different days of the same grid.
*/
package report

import (
	"time"

	"github.com/warp/timesheet-engine/engine"
)

// Cell codes in the prospect grid.
const (
	CodePresent = "P"
	CodeSmart   = "SW"
	CodeAbsent  = "AG"
	CodeBlank   = ""
)

// MaxUsers caps a grid at the legacy sheet's row capacity.
const MaxUsers = 10

// Row is one operator's month.
type Row struct {
	UserName string
	// Cells is indexed by day-of-month minus one.
	Cells []string
}

// Grid is the presence prospect for one calendar month.
type Grid struct {
	Year  int
	Month time.Month
	Rows  []Row
}

// DaysInMonth returns the number of real days in the grid's month.
func (g Grid) DaysInMonth() int {
	return engine.DaysInMonth(g.Year, g.Month)
}

// MonthlyGrid builds the prospect from each operator's state snapshot.
// Rows keep the order of the input slice.
func MonthlyGrid(users []engine.AppState, year int, month time.Month) Grid {
	g := Grid{Year: year, Month: month}
	days := engine.DaysInMonth(year, month)

	for _, user := range users {
		name := user.Settings.UserName
		if name == "" {
			name = "Utente"
		}
		row := Row{UserName: name, Cells: make([]string, days)}

		for i := 0; i < days; i++ {
			day := engine.NewDay(year, month, i+1)
			row.Cells[i] = cellCode(day, user)
		}
		g.Rows = append(g.Rows, row)
	}
	return g
}

// cellCode codes one operator-day. Missing entries count as office
// presence: the default day is an office day.
func cellCode(day engine.Day, user engine.AppState) string {
	if day.IsWeekend() || engine.IsHoliday(day, user.Settings.PatronSaintDate) {
		return CodeBlank
	}

	entry, ok := user.Entries[day.String()]
	if !ok || entry.Causal == engine.CausalUfficio {
		return CodePresent
	}
	if entry.Causal == engine.CausalSmart {
		return CodeSmart
	}
	return CodeAbsent
}
