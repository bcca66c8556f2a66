package statefile_test

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/timesheet-engine/engine"
	"github.com/warp/timesheet-engine/statefile"
)

func sampleState() engine.AppState {
	state := engine.NewAppState()
	state.Settings.UserName = "Rossi Mario"
	state.Entries = map[string]engine.DailyEntry{
		"2024-02-05": {Date: "2024-02-05", Causal: engine.CausalUfficio, StartTime: "07:30", EndTime: "13:30"},
		"2024-05-06": {Date: "2024-05-06", Causal: engine.CausalSmart, StartTime: "07:30", EndTime: "17:00"},
		"2024-06-10": {Date: "2024-06-10", Causal: engine.CausalFerie},
		"2024-07-15": {Date: "2024-07-15", Causal: engine.CausalFerie},
		"2024-09-02": {Date: "2024-09-02", Causal: engine.CausalFerie},
	}
	state.PaidHours = map[string]int{"2024-05": 30, "2024-02": 10}
	state.DayOverrides = engine.DayOverrides{"2024-05-06": engine.DayShort, "2024-02-05": engine.DayLong}
	return state
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, statefile.Save(&buf, sampleState(), statefile.Options{}))
	wire := buf.String()

	got, err := statefile.Load(&buf)
	require.NoError(t, err)

	assert.Equal(t, sampleState(), got)
	assert.Contains(t, wire, `"permessoMinutes"`, "camelCase wire keys")
}

func TestLoad_MergesDefaultsIntoSparseFile(t *testing.T) {
	// GIVEN: A hand-written file with just a name and one entry
	raw := `{
	  "settings": {"userName": "Verdi"},
	  "entries": {"2024-05-06": {"date": "2024-05-06", "causal": "Smart"}}
	}`

	got, err := statefile.Load(strings.NewReader(raw))
	require.NoError(t, err)

	// THEN: Every rule series and scalar default is filled back in
	assert.Equal(t, "Verdi", got.Settings.UserName)
	require.NotEmpty(t, got.Settings.LongDayRules)
	assert.Equal(t, []int{1, 4}, got.Settings.LongDayRules[0].Days)
	require.NotEmpty(t, got.Settings.SmartWorkingRules)
	assert.Equal(t, 8, got.Settings.SmartWorkingRules[0].Limit)
	assert.Equal(t, engine.TimeClassAlternated, got.Settings.TimeClassRules[0].Type)
	assert.Equal(t, "09-04", got.Settings.PatronSaintDate)
	assert.InDelta(t, 2.16, got.Settings.MonthlyFerieAccrual, 1e-9)
	assert.NotNil(t, got.PaidHours)
	assert.NotNil(t, got.DayOverrides)
}

func TestLoad_RejectsMalformedJSON(t *testing.T) {
	_, err := statefile.Load(strings.NewReader("{nope"))
	assert.Error(t, err)
}

func TestSave_RefusesNonCompliantState(t *testing.T) {
	// GIVEN: Four Art.25 days in one year, one past the annual cap
	state := engine.NewAppState()
	for _, date := range []string{"2024-03-04", "2024-03-05", "2024-03-06", "2024-03-07"} {
		state.Entries[date] = engine.DailyEntry{Date: date, Causal: engine.CausalArt25}
	}

	var buf bytes.Buffer
	err := statefile.Save(&buf, state, statefile.Options{})

	require.ErrorIs(t, err, statefile.ErrStateNonCompliant)
	var cerr *statefile.ComplianceError
	require.ErrorAs(t, err, &cerr)
	assert.Contains(t, cerr.Violations, "Limite annuale Art.25 superato nel 2024 (4/3)")
	assert.Zero(t, buf.Len(), "nothing written on refusal")

	// WHEN: Forced, the same state writes fine
	require.NoError(t, statefile.Save(&buf, state, statefile.Options{Force: true}))
	assert.NotZero(t, buf.Len())
}

func TestSave_MonthRangeFiltersEntriesOnly(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, statefile.Save(&buf, sampleState(), statefile.Options{
		Range:     statefile.RangeMonth,
		Reference: engine.MustDay("2024-05-15"),
	}))

	got, err := statefile.Load(&buf)
	require.NoError(t, err)

	assert.Equal(t, []string{"2024-05-06"}, keys(got.Entries))

	// Paid hours and overrides travel whole, only entries are narrowed
	assert.Equal(t, sampleState().PaidHours, got.PaidHours)
	assert.Equal(t, sampleState().DayOverrides, got.DayOverrides)
}

func TestSave_QuarterRangeStartsAtReferenceMonth(t *testing.T) {
	// GIVEN: Entries in Feb, May, Jun, Jul and Sep 2024
	var buf bytes.Buffer
	require.NoError(t, statefile.Save(&buf, sampleState(), statefile.Options{
		Range:     statefile.RangeQuarter,
		Reference: engine.MustDay("2024-06-01"),
	}))

	got, err := statefile.Load(&buf)
	require.NoError(t, err)

	// THEN: The window is Jun-Aug, not the calendar quarter around June
	assert.ElementsMatch(t, []string{"2024-06-10", "2024-07-15"}, keys(got.Entries))
	assert.NotContains(t, got.Entries, "2024-05-06")
	assert.NotContains(t, got.Entries, "2024-09-02")
}

func TestSaveFile_ReplacesAtomically(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "state.json")

	require.NoError(t, statefile.SaveFile(path, sampleState(), statefile.Options{}))

	got, err := statefile.LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, sampleState(), got)

	// No temp litter left behind
	names, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, names, 1)

	// Indented output, not a single line
	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, json.Valid(raw))
	assert.Greater(t, bytes.Count(raw, []byte("\n")), 5)
}

func keys(entries map[string]engine.DailyEntry) []string {
	out := make([]string, 0, len(entries))
	for k := range entries {
		out = append(out, k)
	}
	return out
}
