package engine

import (
	"fmt"
	"time"
)

// =============================================================================
// HOLIDAY CALENDAR - Fixed national holidays + one floating local one
// =============================================================================

// nationalHolidays is the fixed Italian table, evaluated on month/day
// only so it recurs every year. No moving holidays (Easter Monday is
// deliberately absent from the governing table).
var nationalHolidays = []struct {
	Month time.Month
	Day   int
	Name  string
}{
	{time.January, 1, "Capodanno"},
	{time.January, 6, "Epifania"},
	{time.April, 25, "Liberazione"},
	{time.May, 1, "Festa del Lavoro"},
	{time.June, 2, "Festa della Repubblica"},
	{time.August, 15, "Assunzione (Ferragosto)"},
	{time.October, 4, "San Francesco"},
	{time.November, 1, "Ognissanti"},
	{time.December, 8, "Immacolata"},
	{time.December, 25, "Natale"},
	{time.December, 26, "Santo Stefano"},
}

// IsHoliday reports whether day is a national holiday or, when
// patronSaint ("MM-DD") is set, the user's patron-saint day.
func IsHoliday(day Day, patronSaint string) bool {
	for _, h := range nationalHolidays {
		if day.Month() == h.Month && day.DayOfMonth() == h.Day {
			return true
		}
	}
	if patronSaint != "" {
		var m, d int
		fmt.Sscanf(patronSaint, "%d-%d", &m, &d)
		return int(day.Month()) == m && day.DayOfMonth() == d
	}
	return false
}

// HolidayName returns the holiday's display name, or "" when day is not
// a holiday. The patron-saint day has no fixed name.
func HolidayName(day Day, patronSaint string) string {
	for _, h := range nationalHolidays {
		if day.Month() == h.Month && day.DayOfMonth() == h.Day {
			return h.Name
		}
	}
	if IsHoliday(day, patronSaint) {
		return "Santo Patrono"
	}
	return ""
}
