/*
validate.go - Compliance checks against statutory and contractual limits

PURPOSE:
  Re-examines entries against their containing week/month/year windows.
  Everything here is advisory: violations never block saving an entry,
  they only gate export-type operations (the caller's decision, helped
  by HasBlockingViolations).

CHECK FAMILIES:
  Per-date (ValidateDay), smart-working only:
    - monthly cap from the time-effective SmartWorkingRule
    - weekly cap of 2, only under alternated class with monthly limit != 10
    - weekly long-day cap of 1, same gating

  Annual (ValidateAnnual):
    - Art.25 > 3, Art.26 > 3, FS > 4, PESA > 8
    - Ferie > 28 + configured initial days

Each call is a pure re-check over the snapshot; there is no state
machine and no fixed point. Fix the input and call again.
*/
package engine

import (
	"fmt"
	"sort"
)

// ValidateDay returns human-readable violation messages for one date's
// entry, evaluated against its containing week and month. Only Smart
// entries produce checks; any other causal validates clean.
func ValidateDay(day Day, state AppState) []string {
	var errs []string

	entry, ok := state.Entries[day.String()]
	if !ok || entry.Causal != CausalSmart {
		return errs
	}

	swRule := SmartWorkingAt(day, state.Settings.SmartWorkingRules)
	class := TimeClassAt(day, state.Settings.TimeClassRules).Type

	monthCount := countCausalIn(MonthOf(day), state.Entries, CausalSmart)
	if monthCount > swRule.Limit {
		errs = append(errs, fmt.Sprintf(
			"Limite mensile Smart Working superato (%d/%d)", monthCount, swRule.Limit))
	}

	// Weekly caps are waived on the flat class and when the monthly
	// limit is 10.
	if class != TimeClassAlternated || swRule.Limit == 10 {
		return errs
	}

	week := WeekOf(day)
	weekCount := countCausalIn(week, state.Entries, CausalSmart)
	if weekCount > SmartWeekMax {
		errs = append(errs, fmt.Sprintf(
			"Limite settimanale Smart Working superato (%d/%d)", weekCount, SmartWeekMax))
	}

	longWeekCount := 0
	for _, e := range entriesIn(week, state.Entries) {
		if e.Causal != CausalSmart {
			continue
		}
		d, err := ParseDay(e.Date)
		if err != nil {
			continue
		}
		if Classify(d, state.Settings, state.DayOverrides).LongDay {
			longWeekCount++
		}
	}
	if longWeekCount > SmartLongWeekMax {
		errs = append(errs, fmt.Sprintf(
			"Limite settimanale Smart Working in giorni lunghi superato (%d/%d)",
			longWeekCount, SmartLongWeekMax))
	}

	return errs
}

// =============================================================================
// ANNUAL QUOTAS
// =============================================================================

// QuotaViolation is an exceeded annual cap for one causal and year.
type QuotaViolation struct {
	Year   string
	Causal Causal
	Count  int
	Limit  int
}

func (v QuotaViolation) Message() string {
	return fmt.Sprintf("Limite annuale %s superato nel %s (%d/%d)",
		v.Causal, v.Year, v.Count, v.Limit)
}

// ValidateAnnual checks every year present in the entry set against the
// fixed annual caps and the leave entitlement.
func ValidateAnnual(state AppState) []QuotaViolation {
	counts := map[string]map[Causal]int{}
	for dateKey, entry := range state.Entries {
		if len(dateKey) < 4 {
			continue
		}
		year := dateKey[:4]
		if counts[year] == nil {
			counts[year] = map[Causal]int{}
		}
		counts[year][entry.Causal]++
	}

	ferieLimit := FerieBaseEntitlement + state.Settings.InitialFerie
	caps := []struct {
		causal Causal
		limit  int
	}{
		{CausalArt25, Art25YearMax},
		{CausalArt26, Art26YearMax},
		{CausalFS, FSYearMax},
		{CausalPESA, PESAYearMax},
		{CausalFerie, ferieLimit},
	}

	years := make([]string, 0, len(counts))
	for year := range counts {
		years = append(years, year)
	}
	sort.Strings(years)

	var violations []QuotaViolation
	for _, year := range years {
		byCausal := counts[year]
		for _, c := range caps {
			if n := byCausal[c.causal]; n > c.limit {
				violations = append(violations, QuotaViolation{
					Year: year, Causal: c.causal, Count: n, Limit: c.limit,
				})
			}
		}
	}
	return violations
}

// HasBlockingViolations reports whether any per-date advisory or annual
// quota violation exists anywhere in the dataset. Export-type
// operations must refuse while this holds.
func HasBlockingViolations(state AppState) bool {
	if len(state.Entries) == 0 {
		return false
	}
	for dateKey := range state.Entries {
		day, err := ParseDay(dateKey)
		if err != nil {
			continue
		}
		if len(ValidateDay(day, state)) > 0 {
			return true
		}
	}
	return len(ValidateAnnual(state)) > 0
}

// =============================================================================
// WINDOW HELPERS
// =============================================================================

func entriesIn(p Period, entries map[string]DailyEntry) []DailyEntry {
	var in []DailyEntry
	for dateKey, e := range entries {
		d, err := ParseDay(dateKey)
		if err != nil {
			continue
		}
		if p.Contains(d) {
			in = append(in, e)
		}
	}
	return in
}

func countCausalIn(p Period, entries map[string]DailyEntry, causal Causal) int {
	n := 0
	for _, e := range entriesIn(p, entries) {
		if e.Causal == causal {
			n++
		}
	}
	return n
}
