/*
mutate.go - Copy-on-write edits on an AppState snapshot

PURPOSE:
  Every mutation takes a state by value and returns a new one with the
  affected maps cloned first. The input is never touched, so a caller
  holding the old snapshot (a report being rendered, a comparison) keeps
  a consistent view.

ENTRY/OVERRIDE COUPLING:
  A day override exists only because of a swap involving that date, so
  deleting the date's entry deletes its override too. The long/short
  exception makes no sense once the day it served is gone.
*/
package statefile

import (
	"fmt"

	"github.com/warp/timesheet-engine/engine"
)

// PutEntry stores the entry under its own date key, replacing any
// previous record for that date.
func PutEntry(state engine.AppState, entry engine.DailyEntry) (engine.AppState, error) {
	if _, err := engine.ParseDay(entry.Date); err != nil {
		return state, fmt.Errorf("put entry: %w", err)
	}

	out := state
	out.Entries = cloneEntries(state.Entries)
	out.Entries[entry.Date] = entry
	return out, nil
}

// DeleteEntry removes the date's entry and its day override, if any.
func DeleteEntry(state engine.AppState, date string) (engine.AppState, error) {
	if _, ok := state.Entries[date]; !ok {
		return state, fmt.Errorf("delete entry %s: %w", date, ErrEntryNotFound)
	}

	out := state
	out.Entries = cloneEntries(state.Entries)
	delete(out.Entries, date)

	if _, ok := state.DayOverrides[date]; ok {
		out.DayOverrides = cloneOverrides(state.DayOverrides)
		delete(out.DayOverrides, date)
	}
	return out, nil
}

// SwapDays trades the day lengths of two dates: a becomes short and b
// becomes long, recorded as one-off overrides. Worked-time figures for
// both dates change immediately since the calculator consults the
// override map first.
func SwapDays(state engine.AppState, a, b string) (engine.AppState, error) {
	if _, err := engine.ParseDay(a); err != nil {
		return state, fmt.Errorf("swap days: %w", err)
	}
	if _, err := engine.ParseDay(b); err != nil {
		return state, fmt.Errorf("swap days: %w", err)
	}

	out := state
	out.DayOverrides = cloneOverrides(state.DayOverrides)
	out.DayOverrides[a] = engine.DayShort
	out.DayOverrides[b] = engine.DayLong
	return out, nil
}

// SetPaidHours records a month's paid-hours deduction in minutes. Zero
// removes the record rather than storing a no-op.
func SetPaidHours(state engine.AppState, monthKey string, minutes int) engine.AppState {
	out := state
	out.PaidHours = make(map[string]int, len(state.PaidHours))
	for k, v := range state.PaidHours {
		out.PaidHours[k] = v
	}
	if minutes == 0 {
		delete(out.PaidHours, monthKey)
	} else {
		out.PaidHours[monthKey] = minutes
	}
	return out
}

func cloneEntries(in map[string]engine.DailyEntry) map[string]engine.DailyEntry {
	out := make(map[string]engine.DailyEntry, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

func cloneOverrides(in engine.DayOverrides) engine.DayOverrides {
	out := make(engine.DayOverrides, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
