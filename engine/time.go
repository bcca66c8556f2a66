package engine

import (
	"fmt"
	"time"
)

// =============================================================================
// DAY - Day-granularity date (the engine never needs finer resolution)
// =============================================================================

// Day is a calendar date, normalized to midnight UTC. All engine
// calculations key off Day; clock times live in Clock.
type Day struct {
	t time.Time
}

const dayLayout = "2006-01-02"

func NewDay(year int, month time.Month, day int) Day {
	return Day{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// ParseDay parses a canonical ISO date "YYYY-MM-DD".
func ParseDay(s string) (Day, error) {
	t, err := time.Parse(dayLayout, s)
	if err != nil {
		return Day{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return Day{t: t}, nil
}

// MustDay is a test/fixture helper; panics on malformed input.
func MustDay(s string) Day {
	d, err := ParseDay(s)
	if err != nil {
		panic(err)
	}
	return d
}

// Comparison
func (d Day) Before(other Day) bool        { return d.t.Before(other.t) }
func (d Day) After(other Day) bool         { return d.t.After(other.t) }
func (d Day) Equal(other Day) bool         { return d.t.Equal(other.t) }
func (d Day) BeforeOrEqual(other Day) bool { return !d.After(other) }
func (d Day) AfterOrEqual(other Day) bool  { return !d.Before(other) }

// Arithmetic
func (d Day) AddDays(n int) Day   { return Day{t: d.t.AddDate(0, 0, n)} }
func (d Day) AddMonths(n int) Day { return Day{t: d.t.AddDate(0, n, 0)} }

// Properties
func (d Day) Year() int             { return d.t.Year() }
func (d Day) Month() time.Month     { return d.t.Month() }
func (d Day) DayOfMonth() int       { return d.t.Day() }
func (d Day) Weekday() time.Weekday { return d.t.Weekday() }
func (d Day) IsZero() bool          { return d.t.IsZero() }

func (d Day) IsWeekend() bool {
	wd := d.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// String returns the canonical ISO form. Entry maps are keyed by this.
func (d Day) String() string { return d.t.Format(dayLayout) }

// MonthKey returns "YYYY-MM", the key used for paid-hours adjustments.
func (d Day) MonthKey() string { return d.t.Format("2006-01") }

// YearKey returns "YYYY".
func (d Day) YearKey() string { return d.t.Format("2006") }

func DaysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// =============================================================================
// CLOCK - Minutes since midnight, parsed from "HH:MM"
// =============================================================================

// Clock is a time of day expressed in minutes since midnight.
type Clock int

// ParseClock parses "HH:MM". An empty string parses to 00:00, matching
// how unset times behave in stored entries.
func ParseClock(s string) Clock {
	if s == "" {
		return 0
	}
	var h, m int
	fmt.Sscanf(s, "%d:%d", &h, &m)
	return Clock(h*60 + m)
}

func (c Clock) Minutes() int { return int(c) }

func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d", int(c)/60, int(c)%60)
}

// FormatMinutes renders a signed minute count as "1h 05m" / "-0h 30m",
// the display form used for hour-bank balances.
func FormatMinutes(minutes int) string {
	abs := minutes
	prefix := ""
	if minutes < 0 {
		abs = -minutes
		prefix = "-"
	}
	return fmt.Sprintf("%s%dh %02dm", prefix, abs/60, abs%60)
}

// =============================================================================
// CALENDAR WINDOWS
// =============================================================================

// WeekOf returns the Monday..Sunday week containing d. Smart-working
// weekly caps are counted over this window.
func WeekOf(d Day) Period {
	wd := int(d.Weekday())
	if wd == 0 {
		wd = 7 // Sunday closes the week
	}
	start := d.AddDays(-(wd - 1))
	return Period{Start: start, End: start.AddDays(6)}
}

// MonthOf returns the calendar month containing d.
func MonthOf(d Day) Period {
	start := NewDay(d.Year(), d.Month(), 1)
	return Period{Start: start, End: start.AddMonths(1).AddDays(-1)}
}

// YearOf returns the calendar year containing d.
func YearOf(d Day) Period {
	return Period{
		Start: NewDay(d.Year(), time.January, 1),
		End:   NewDay(d.Year(), time.December, 31),
	}
}
