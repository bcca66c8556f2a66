/*
bank.go - Hour bank and monthly summaries

PURPOSE:
  The hour bank is the running signed total of worked-minus-target
  minutes across all recorded history, adjusted by an initial balance
  and by manually recorded "paid hours" deductions per month.

  It is computed as a pure fold over the whole entry set on every read.
  That keeps it trivially correct and testable; if it ever matters at
  scale, cache the fold result keyed by the entry set rather than
  tracking increments.
*/
package engine

import "time"

// HourBank returns the global bank balance in minutes: the configured
// initial balance, plus each stored entry's worked-minus-target delta,
// minus every recorded paid-hours deduction.
func HourBank(state AppState) int {
	bank := state.Settings.BankHoursInitial

	for dateKey, entry := range state.Entries {
		day, err := ParseDay(dateKey)
		if err != nil {
			continue // unkeyable entry, nothing to attribute it to
		}
		e := entry
		stats := CalculateDayStats(day, &e, state.Settings, state.DayOverrides)
		bank += stats.WorkedMinutes - stats.TargetMinutes
	}

	for _, paid := range state.PaidHours {
		bank -= paid
	}
	return bank
}

// MonthSummary aggregates a calendar month's statistics for dashboards.
type MonthSummary struct {
	Year  int
	Month time.Month

	WorkedMinutes int
	TargetMinutes int
	MealVouchers  int
	SmartDays     int
	L104Days      int

	// PaidMinutes is the month's manually recorded paid-hours deduction.
	PaidMinutes int

	// DeltaMinutes = worked - target - paid for this month only.
	DeltaMinutes int

	// SmartLimit is the smart-working monthly cap in force on the 1st.
	SmartLimit int
}

// SummarizeMonth walks every day of the month through the calculator.
func SummarizeMonth(state AppState, year int, month time.Month) MonthSummary {
	first := NewDay(year, month, 1)
	s := MonthSummary{
		Year:        year,
		Month:       month,
		PaidMinutes: state.PaidHours[first.MonthKey()],
		SmartLimit:  SmartWorkingAt(first, state.Settings.SmartWorkingRules).Limit,
	}

	for d := first; d.Month() == month; d = d.AddDays(1) {
		var entry *DailyEntry
		if e, ok := state.Entries[d.String()]; ok {
			entry = &e
		}
		stats := CalculateDayStats(d, entry, state.Settings, state.DayOverrides)

		s.WorkedMinutes += stats.WorkedMinutes
		s.TargetMinutes += stats.TargetMinutes
		if stats.BuonoPasto {
			s.MealVouchers++
		}
		if entry != nil {
			switch entry.Causal {
			case CausalSmart:
				s.SmartDays++
			case CausalL104:
				s.L104Days++
			}
		}
	}

	s.DeltaMinutes = s.WorkedMinutes - s.TargetMinutes - s.PaidMinutes
	return s
}
