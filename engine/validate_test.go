package engine_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/timesheet-engine/engine"
)

// smartWeek returns a state whose week of 2024-05-06 holds n consecutive
// smart-working days starting on the Monday.
func smartWeek(n int, settings engine.UserSettings) engine.AppState {
	state := engine.NewAppState()
	state.Settings = settings
	day := engine.MustDay("2024-05-06")
	for i := 0; i < n; i++ {
		d := day.AddDays(i)
		state.Entries[d.String()] = *entry(d.String(), engine.CausalSmart, "07:30", "13:30", 0)
	}
	return state
}

func TestValidateDay_NonSmartEntriesValidateClean(t *testing.T) {
	state := smartWeek(3, alternatedSettings(1))
	state.Entries["2024-05-09"] = *entry("2024-05-09", engine.CausalUfficio, "07:30", "13:30", 0)

	assert.Empty(t, engine.ValidateDay(engine.MustDay("2024-05-09"), state))
	assert.Empty(t, engine.ValidateDay(engine.MustDay("2024-05-10"), state), "no entry at all")
}

func TestValidateDay_WeeklyCapExceeded(t *testing.T) {
	// GIVEN: Three smart days Mon-Wed, alternated class, monthly limit 8
	state := smartWeek(3, alternatedSettings(2))

	// WHEN: Validating the Monday
	errs := engine.ValidateDay(engine.MustDay("2024-05-06"), state)

	// THEN: Only the weekly cap fires; three days are within the month's 8
	require.Len(t, errs, 1)
	assert.Equal(t, "Limite settimanale Smart Working superato (3/2)", errs[0])
}

func TestValidateDay_MonthlyCapExceeded(t *testing.T) {
	// GIVEN: Monthly limit lowered to 1 in force before the entries
	settings := alternatedSettings(2)
	settings.SmartWorkingRules = []engine.SmartWorkingRule{{StartDate: "2020-01-01", Limit: 1}}
	state := smartWeek(3, settings)

	errs := engine.ValidateDay(engine.MustDay("2024-05-06"), state)

	assert.Contains(t, errs, "Limite mensile Smart Working superato (3/1)")
	assert.Contains(t, errs, "Limite settimanale Smart Working superato (3/2)")
}

func TestValidateDay_WeeklyCapWaivedAtLimitTen(t *testing.T) {
	// GIVEN: The same three-day smart week, but a monthly limit of 10
	settings := alternatedSettings(2)
	settings.SmartWorkingRules = []engine.SmartWorkingRule{{StartDate: "2020-01-01", Limit: 10}}
	state := smartWeek(3, settings)

	assert.Empty(t, engine.ValidateDay(engine.MustDay("2024-05-06"), state))
}

func TestValidateDay_WeeklyCapWaivedOnFlatClass(t *testing.T) {
	state := smartWeek(3, flatSettings())

	assert.Empty(t, engine.ValidateDay(engine.MustDay("2024-05-06"), state))
}

func TestValidateDay_LongDayWeeklyCap(t *testing.T) {
	// GIVEN: Monday and Thursday long; smart on both plus the Tuesday
	state := engine.NewAppState()
	state.Settings = alternatedSettings(1, 4)
	for _, date := range []string{"2024-05-06", "2024-05-07", "2024-05-09"} {
		state.Entries[date] = *entry(date, engine.CausalSmart, "07:30", "17:00", 0)
	}

	errs := engine.ValidateDay(engine.MustDay("2024-05-06"), state)

	require.Len(t, errs, 2)
	assert.Contains(t, errs, "Limite settimanale Smart Working superato (3/2)")
	assert.Contains(t, errs, "Limite settimanale Smart Working in giorni lunghi superato (2/1)")
}

func TestValidateDay_OverrideCountsTowardLongDayCap(t *testing.T) {
	// GIVEN: Two smart days on short weekdays, one swapped long via override
	state := engine.NewAppState()
	state.Settings = alternatedSettings(1)
	for _, date := range []string{"2024-05-06", "2024-05-07"} {
		state.Entries[date] = *entry(date, engine.CausalSmart, "07:30", "17:00", 0)
	}
	state.DayOverrides = engine.DayOverrides{
		"2024-05-06": engine.DayShort,
		"2024-05-07": engine.DayLong,
	}

	// THEN: Only the overridden Tuesday is long, so the cap of 1 holds
	assert.Empty(t, engine.ValidateDay(engine.MustDay("2024-05-06"), state))
}

// =============================================================================
// ANNUAL QUOTAS
// =============================================================================

func statePacked(causal engine.Causal, n int) engine.AppState {
	state := engine.NewAppState()
	day := engine.MustDay("2024-01-01")
	for i := 0; i < n; i++ {
		d := day.AddDays(i)
		state.Entries[d.String()] = engine.DailyEntry{Date: d.String(), Causal: causal}
	}
	return state
}

func TestValidateAnnual_CapsPerCausal(t *testing.T) {
	cases := []struct {
		causal engine.Causal
		limit  int
	}{
		{engine.CausalArt25, 3},
		{engine.CausalArt26, 3},
		{engine.CausalFS, 4},
		{engine.CausalPESA, 8},
	}
	for _, tc := range cases {
		t.Run(string(tc.causal), func(t *testing.T) {
			// At the cap: clean
			assert.Empty(t, engine.ValidateAnnual(statePacked(tc.causal, tc.limit)))

			// One past the cap: one violation with the cap in the message
			vs := engine.ValidateAnnual(statePacked(tc.causal, tc.limit+1))
			require.Len(t, vs, 1)
			assert.Equal(t, tc.causal, vs[0].Causal)
			assert.Equal(t, "2024", vs[0].Year)
			assert.Equal(t, fmt.Sprintf("Limite annuale %s superato nel 2024 (%d/%d)",
				tc.causal, tc.limit+1, tc.limit), vs[0].Message())
		})
	}
}

func TestValidateAnnual_FerieEntitlementIncludesCarryover(t *testing.T) {
	// GIVEN: 30 vacation days recorded against a 28+3 entitlement
	state := statePacked(engine.CausalFerie, 30)
	state.Settings.InitialFerie = 3

	assert.Empty(t, engine.ValidateAnnual(state))

	// WHEN: Carryover shrinks to 1, the same 30 days breach 29
	state.Settings.InitialFerie = 1
	vs := engine.ValidateAnnual(state)
	require.Len(t, vs, 1)
	assert.Equal(t, 29, vs[0].Limit)
	assert.Equal(t, 30, vs[0].Count)
}

func TestValidateAnnual_YearsReportedInOrder(t *testing.T) {
	state := engine.NewAppState()
	for _, date := range []string{"2025-03-03", "2025-03-04", "2025-03-05", "2025-03-06",
		"2023-03-06", "2023-03-07", "2023-03-08", "2023-03-09"} {
		state.Entries[date] = engine.DailyEntry{Date: date, Causal: engine.CausalArt25}
	}

	vs := engine.ValidateAnnual(state)

	require.Len(t, vs, 2)
	assert.Equal(t, "2023", vs[0].Year)
	assert.Equal(t, "2025", vs[1].Year)
}

func TestHasBlockingViolations(t *testing.T) {
	// Empty state is clean
	assert.False(t, engine.HasBlockingViolations(engine.NewAppState()))

	// A compliant week is clean
	assert.False(t, engine.HasBlockingViolations(smartWeek(2, alternatedSettings(2))))

	// The weekly smart cap blocks
	assert.True(t, engine.HasBlockingViolations(smartWeek(3, alternatedSettings(2))))

	// An annual quota alone blocks too
	assert.True(t, engine.HasBlockingViolations(statePacked(engine.CausalArt25, 4)))
}
