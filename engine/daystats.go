/*
daystats.go - Worked-time calculation for a single day

PURPOSE:
  Converts a day's entry (causal, clock-in/out, permit minutes) into
  worked minutes, target minutes and meal-voucher eligibility, using the
  day classification (classify.go).

WORKED-MINUTES RULES (Ufficio/Smart only):
  - Arrivals before 07:30 are not credited: the effective start is
    clamped to 07:30.
  - Flat class or long day: 30-minute break deducted unconditionally.
  - Alternated short day: a raw span of up to 6h counts as-is; between
    6h and 6h30m it counts as exactly 6h (the grace window absorbs the
    overrun instead of deducting a break); past 6h30m the break is
    deducted from the raw span.
  - Clamp at 9h, both before and after adding permit minutes.
  - Leave causals on a workday are credited at the day's target.

MEAL VOUCHER:
  Smart: on flat/long days only. Ufficio: end past 15:12 on flat/long
  days, or end past raw start + 9h25m on a short day. PSTU: flat/long
  days only. Everyone else: no.

KNOWN EDGE CASE:
  An end time before the effective start yields a negative raw span,
  which propagates into WorkedMinutes unclamped. Guarding it is a
  product decision that has not been taken; callers see the negative
  figure as entered.
*/
package engine

// CalculateDayStats computes a day's statistics. A nil entry means the
// date has nothing stored and the default day applies. Pure: identical
// arguments always yield identical output.
func CalculateDayStats(day Day, entry *DailyEntry, settings UserSettings, overrides DayOverrides) DayStats {
	class := Classify(day, settings, overrides)
	target := class.TargetMinutes()

	stats := DayStats{
		TargetMinutes: target,
		IsHoliday:     class.Holiday,
		IsLongDay:     class.LongDay,
		TimeClass:     class.TimeClass,
		Errors:        []string{},
	}

	effectiveCausal := CausalUfficio
	if entry != nil {
		effectiveCausal = entry.Causal
	} else if class.Holiday {
		effectiveCausal = CausalFesta
	}

	// No work expected, no voucher.
	if effectiveCausal == CausalFesta || effectiveCausal == CausalWeekend {
		stats.TargetMinutes = 0
		return stats
	}

	effective := entry
	if effective == nil {
		if class.Weekend {
			stats.TargetMinutes = 0
			return stats
		}
		synthesized := DefaultEntry(day, settings, overrides)
		effective = &synthesized
	}

	startRaw := ParseClock(effective.StartTime).Minutes()
	startEffective := startRaw
	if floor := ParseClock(defaultStartTime).Minutes(); startEffective < floor {
		startEffective = floor
	}
	end := ParseClock(effective.EndTime).Minutes()
	rawDiff := end - startEffective

	worked := 0
	switch {
	case effective.Causal.CountsWorkedTime():
		if class.TimeClass == TimeClassFlat || class.LongDay {
			worked = rawDiff - BreakMinutes
		} else if rawDiff > TargetMinutesShort {
			if rawDiff <= TargetMinutesShort+shortDayGraceMinutes {
				worked = TargetMinutesShort
			} else {
				worked = rawDiff - BreakMinutes
			}
		} else {
			worked = rawDiff
		}
		if worked > WorkedMinutesCap {
			worked = WorkedMinutesCap
		}
	case !class.Holiday && !class.Weekend:
		// Leave causals credit the full target (sick leave, vacation, ...).
		worked = target
	}

	worked += effective.PermessoMinutes
	if worked > WorkedMinutesCap && effective.Causal.CountsWorkedTime() {
		worked = WorkedMinutesCap
	}
	stats.WorkedMinutes = worked

	stats.BuonoPasto = mealVoucher(effective.Causal, class, end, startRaw)
	return stats
}

// mealVoucher decides daily voucher eligibility. Boundaries are strictly
// greater-than, per the governing policy as observed.
func mealVoucher(causal Causal, class DayClass, endMin, startRawMin int) bool {
	fullDay := class.TimeClass == TimeClassFlat || class.LongDay

	switch causal {
	case CausalSmart:
		return fullDay
	case CausalUfficio:
		if fullDay {
			return endMin > ParseClock(flatEndTime).Minutes()
		}
		return endMin > startRawMin+voucherShortElapsedMin
	case CausalPSTU:
		return fullDay
	case CausalFerie, CausalMalattia, CausalL104, CausalArt25, CausalArt26,
		CausalFS, CausalPESA, CausalWeekend, CausalFesta:
		return false
	}
	return false
}
