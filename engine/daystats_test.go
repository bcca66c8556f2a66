package engine_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/warp/timesheet-engine/engine"
)

func entry(date string, causal engine.Causal, start, end string, permesso int) *engine.DailyEntry {
	return &engine.DailyEntry{
		Date: date, Causal: causal, StartTime: start, EndTime: end, PermessoMinutes: permesso,
	}
}

// =============================================================================
// CONCRETE SCENARIOS
// =============================================================================

func TestCalculateDayStats_FixedHoliday(t *testing.T) {
	// GIVEN: May 1st (Festa del Lavoro), nothing stored
	// THEN: No work expected, no voucher
	stats := engine.CalculateDayStats(engine.MustDay("2024-05-01"), nil, alternatedSettings(1), nil)

	assert.Equal(t, 0, stats.WorkedMinutes)
	assert.Equal(t, 0, stats.TargetMinutes)
	assert.False(t, stats.BuonoPasto)
	assert.True(t, stats.IsHoliday)
}

func TestCalculateDayStats_LongOfficeDay(t *testing.T) {
	// GIVEN: Monday is long; full office day 07:30-17:00
	stats := engine.CalculateDayStats(engine.MustDay("2024-05-06"),
		entry("2024-05-06", engine.CausalUfficio, "07:30", "17:00", 0),
		alternatedSettings(1), nil)

	// THEN: 570 raw minus the 30-minute break, exactly on target
	assert.Equal(t, 540, stats.WorkedMinutes)
	assert.Equal(t, 540, stats.TargetMinutes)
	assert.True(t, stats.IsLongDay)
	assert.True(t, stats.BuonoPasto, "17:00 is past 07:30+9h25m")
}

func TestCalculateDayStats_FlatOfficeDay(t *testing.T) {
	stats := engine.CalculateDayStats(engine.MustDay("2024-05-07"),
		entry("2024-05-07", engine.CausalUfficio, "07:30", "15:12", 0),
		flatSettings(), nil)

	assert.Equal(t, 432, stats.WorkedMinutes)
	assert.Equal(t, 432, stats.TargetMinutes)
	assert.False(t, stats.BuonoPasto, "voucher requires strictly past 15:12")
}

// =============================================================================
// WORKED-MINUTES RULES
// =============================================================================

func TestCalculateDayStats_ShortDayGraceWindow(t *testing.T) {
	settings := alternatedSettings() // every day short
	day := engine.MustDay("2024-05-07")

	cases := []struct {
		end    string
		worked int
	}{
		{"13:30", 360}, // exactly 6h, counted as-is
		{"13:00", 330}, // under target, no break deducted
		{"14:00", 360}, // 390 raw: grace window absorbs the overrun
		{"14:01", 361}, // 391 raw: break deducted (391 - 30)
		{"15:30", 450}, // well past the window: 480 - 30
	}
	for _, tc := range cases {
		stats := engine.CalculateDayStats(day,
			entry(day.String(), engine.CausalUfficio, "07:30", tc.end, 0), settings, nil)
		assert.Equal(t, tc.worked, stats.WorkedMinutes, "end %s", tc.end)
	}
}

func TestCalculateDayStats_EarlyArrivalNotCredited(t *testing.T) {
	// GIVEN: Clock-in at 06:45 on a short day
	stats := engine.CalculateDayStats(engine.MustDay("2024-05-07"),
		entry("2024-05-07", engine.CausalUfficio, "06:45", "13:30", 0),
		alternatedSettings(), nil)

	// THEN: The span counts from 07:30
	assert.Equal(t, 360, stats.WorkedMinutes)
}

func TestCalculateDayStats_WorkedMinutesCappedAtNineHours(t *testing.T) {
	settings := alternatedSettings(1)
	day := engine.MustDay("2024-05-06") // long Monday

	// A 12-hour office day still credits 9h
	stats := engine.CalculateDayStats(day,
		entry(day.String(), engine.CausalUfficio, "07:30", "19:30", 0), settings, nil)
	assert.Equal(t, 540, stats.WorkedMinutes)

	// Permit minutes cannot push past the cap either
	stats = engine.CalculateDayStats(day,
		entry(day.String(), engine.CausalUfficio, "07:30", "17:00", 120), settings, nil)
	assert.Equal(t, 540, stats.WorkedMinutes)

	// Smart working is capped the same way
	stats = engine.CalculateDayStats(day,
		entry(day.String(), engine.CausalSmart, "07:30", "20:00", 60), settings, nil)
	assert.Equal(t, 540, stats.WorkedMinutes)
}

func TestCalculateDayStats_LeaveCausalsCreditTarget(t *testing.T) {
	settings := alternatedSettings(1)

	for _, causal := range []engine.Causal{
		engine.CausalFerie, engine.CausalMalattia, engine.CausalL104,
		engine.CausalArt25, engine.CausalArt26, engine.CausalFS, engine.CausalPESA,
	} {
		stats := engine.CalculateDayStats(engine.MustDay("2024-05-06"),
			entry("2024-05-06", causal, "", "", 0), settings, nil)
		assert.Equal(t, 540, stats.WorkedMinutes, "causal %s credits the long-day target", causal)
		assert.False(t, stats.BuonoPasto, "no voucher on %s", causal)
	}
}

func TestCalculateDayStats_PermitMinutesAddToPartialDay(t *testing.T) {
	// GIVEN: Short PSTU day worked 07:30-11:30 with 120' of permit
	stats := engine.CalculateDayStats(engine.MustDay("2024-05-07"),
		entry("2024-05-07", engine.CausalPSTU, "07:30", "11:30", 120),
		alternatedSettings(), nil)

	// THEN: Target credit plus permit (PSTU is not clock-based)
	assert.Equal(t, 360+120, stats.WorkedMinutes)
}

func TestCalculateDayStats_NegativeSpanPropagates(t *testing.T) {
	// GIVEN: End before start (misconfigured entry)
	stats := engine.CalculateDayStats(engine.MustDay("2024-05-07"),
		entry("2024-05-07", engine.CausalUfficio, "09:00", "08:00", 0),
		alternatedSettings(), nil)

	// THEN: The negative figure is preserved, not clamped or rejected
	assert.Equal(t, -60, stats.WorkedMinutes)
}

func TestCalculateDayStats_DefaultDaySynthesis(t *testing.T) {
	settings := alternatedSettings(1)

	// A plain weekday with nothing stored computes as a default office day
	stats := engine.CalculateDayStats(engine.MustDay("2024-05-07"), nil, settings, nil)
	assert.Equal(t, 360, stats.WorkedMinutes)
	assert.Equal(t, 360, stats.TargetMinutes)

	// A weekend with nothing stored stays zero
	stats = engine.CalculateDayStats(engine.MustDay("2024-05-04"), nil, settings, nil)
	assert.Equal(t, 0, stats.WorkedMinutes)
	assert.Equal(t, 0, stats.TargetMinutes)
}

func TestCalculateDayStats_IsPure(t *testing.T) {
	settings := alternatedSettings(1, 4)
	overrides := engine.DayOverrides{"2024-05-06": engine.DayShort}
	e := entry("2024-05-06", engine.CausalUfficio, "07:15", "16:40", 30)

	first := engine.CalculateDayStats(engine.MustDay("2024-05-06"), e, settings, overrides)
	second := engine.CalculateDayStats(engine.MustDay("2024-05-06"), e, settings, overrides)
	assert.Equal(t, first, second)
}

// =============================================================================
// MEAL VOUCHER
// =============================================================================

func TestMealVoucher_SmartOnlyOnFullDays(t *testing.T) {
	settings := alternatedSettings(1)

	long := engine.CalculateDayStats(engine.MustDay("2024-05-06"),
		entry("2024-05-06", engine.CausalSmart, "07:30", "17:00", 0), settings, nil)
	assert.True(t, long.BuonoPasto)

	short := engine.CalculateDayStats(engine.MustDay("2024-05-07"),
		entry("2024-05-07", engine.CausalSmart, "07:30", "20:00", 0), settings, nil)
	assert.False(t, short.BuonoPasto, "short alternated smart days never earn a voucher")

	flat := engine.CalculateDayStats(engine.MustDay("2024-05-07"),
		entry("2024-05-07", engine.CausalSmart, "07:30", "13:00", 0), flatSettings(), nil)
	assert.True(t, flat.BuonoPasto, "flat smart days always earn one, regardless of hours")
}

func TestMealVoucher_UfficioBoundaries(t *testing.T) {
	// Flat/long: strictly past 15:12
	at := engine.CalculateDayStats(engine.MustDay("2024-05-07"),
		entry("2024-05-07", engine.CausalUfficio, "07:30", "15:12", 0), flatSettings(), nil)
	assert.False(t, at.BuonoPasto)

	past := engine.CalculateDayStats(engine.MustDay("2024-05-07"),
		entry("2024-05-07", engine.CausalUfficio, "07:30", "15:13", 0), flatSettings(), nil)
	assert.True(t, past.BuonoPasto)

	// Short alternated: strictly past raw start + 9h25m, from the
	// actual uncapped start
	settings := alternatedSettings()
	boundary := engine.CalculateDayStats(engine.MustDay("2024-05-07"),
		entry("2024-05-07", engine.CausalUfficio, "07:00", "16:25", 0), settings, nil)
	assert.False(t, boundary.BuonoPasto, "16:25 equals 07:00+565'")

	earned := engine.CalculateDayStats(engine.MustDay("2024-05-07"),
		entry("2024-05-07", engine.CausalUfficio, "07:00", "16:26", 0), settings, nil)
	assert.True(t, earned.BuonoPasto)
}

func TestMealVoucher_PSTUOnFullDaysOnly(t *testing.T) {
	settings := alternatedSettings(1)

	long := engine.CalculateDayStats(engine.MustDay("2024-05-06"),
		entry("2024-05-06", engine.CausalPSTU, "07:30", "17:00", 60), settings, nil)
	assert.True(t, long.BuonoPasto)

	short := engine.CalculateDayStats(engine.MustDay("2024-05-07"),
		entry("2024-05-07", engine.CausalPSTU, "07:30", "13:30", 60), settings, nil)
	assert.False(t, short.BuonoPasto)
}
