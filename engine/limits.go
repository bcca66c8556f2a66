package engine

// =============================================================================
// TARGETS AND STATUTORY LIMITS
// =============================================================================

// Daily target minutes per day kind.
const (
	TargetMinutesLong  = 540 // 9h, alternated long day
	TargetMinutesShort = 360 // 6h, alternated short day
	TargetMinutesFlat  = 432 // 7h12m, flat class

	// BreakMinutes is the lunch-break deduction applied to long/flat
	// days and to short days that overrun the grace window.
	BreakMinutes = 30

	// shortDayGraceMinutes: a short day absorbs up to 30 minutes of
	// overrun beyond the 6h target before the break is deducted.
	shortDayGraceMinutes = 30

	// WorkedMinutesCap caps creditable worked time at 9h.
	WorkedMinutesCap = 540
)

// Canonical default clock times for synthesized entries.
const (
	defaultStartTime = "07:30"
	shortEndTime     = "13:30"
	longEndTime      = "17:00"
	flatEndTime      = "15:12"

	// Ufficio meal-voucher thresholds: end-of-day boundary on flat/long
	// days, elapsed-from-raw-start minutes on short alternated days.
	voucherShortElapsedMin = 565
)

// Quota limits. The smart-working monthly cap is time-effective
// (SmartWorkingRule); the rest are fixed.
const (
	SmartWeekMax     = 2 // waived when the monthly limit is 10 or class is flat
	SmartLongWeekMax = 1

	Art25YearMax = 3
	Art26YearMax = 3
	FSYearMax    = 4
	PESAYearMax  = 8

	// FerieBaseEntitlement is the contractual annual leave allowance;
	// InitialFerie from settings is added on top.
	FerieBaseEntitlement = 28
)
