package sqlite_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/timesheet-engine/engine"
	"github.com/warp/timesheet-engine/store"
	"github.com/warp/timesheet-engine/store/sqlite"
)

func newStore(t *testing.T) *sqlite.Store {
	t.Helper()
	s, err := sqlite.New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func fullState() engine.AppState {
	state := engine.NewAppState()
	state.Settings.UserName = "Rossi Mario"
	state.Settings.InitialFerie = 3
	state.Settings.BankHoursInitial = -45
	state.Settings.LongDayRules = []engine.LongDayRule{
		{StartDate: "2020-01-01", Days: []int{1, 4}},
		{StartDate: "2024-03-01", Days: []int{2}},
	}
	state.Settings.SmartWorkingRules = []engine.SmartWorkingRule{
		{StartDate: "2020-01-01", Limit: 8},
		{StartDate: "2024-06-01", Limit: 10},
	}
	state.Settings.TimeClassRules = []engine.TimeClassRule{
		{StartDate: "2020-01-01", Type: engine.TimeClassAlternated},
	}
	state.Entries = map[string]engine.DailyEntry{
		"2024-05-06": {Date: "2024-05-06", Causal: engine.CausalSmart,
			StartTime: "07:30", EndTime: "13:30", Notes: "da casa"},
		"2024-05-07": {Date: "2024-05-07", Causal: engine.CausalPSTU,
			StartTime: "07:30", EndTime: "12:00", PermessoMinutes: 90, SpringRequest: true},
	}
	state.PaidHours = map[string]int{"2024-05": 30}
	state.DayOverrides = engine.DayOverrides{"2024-05-07": engine.DayLong}
	return state
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	require.NoError(t, s.SaveState(ctx, "rossi", fullState()))

	got, err := s.LoadState(ctx, "rossi")
	require.NoError(t, err)
	assert.Equal(t, fullState(), got)
}

func TestLoadState_UnknownUser(t *testing.T) {
	s := newStore(t)

	_, err := s.LoadState(context.Background(), "nobody")
	assert.ErrorIs(t, err, store.ErrUserNotFound)
}

func TestSaveState_ReplacesWholeSnapshot(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()
	require.NoError(t, s.SaveState(ctx, "rossi", fullState()))

	// WHEN: Saving a snapshot with the May 7th entry and override gone
	next := fullState()
	delete(next.Entries, "2024-05-07")
	next.DayOverrides = engine.DayOverrides{}
	next.PaidHours = map[string]int{}
	require.NoError(t, s.SaveState(ctx, "rossi", next))

	// THEN: The removed rows do not linger from the previous save
	got, err := s.LoadState(ctx, "rossi")
	require.NoError(t, err)
	assert.NotContains(t, got.Entries, "2024-05-07")
	assert.Empty(t, got.DayOverrides)
	assert.Empty(t, got.PaidHours)
}

func TestLoadState_EmptyRuleSeriesFallsBackToDefaults(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	state := engine.NewAppState()
	state.Settings.LongDayRules = nil
	state.Settings.SmartWorkingRules = nil
	state.Settings.TimeClassRules = nil
	require.NoError(t, s.SaveState(ctx, "verdi", state))

	got, err := s.LoadState(ctx, "verdi")
	require.NoError(t, err)
	assert.NotEmpty(t, got.Settings.LongDayRules)
	assert.NotEmpty(t, got.Settings.SmartWorkingRules)
	assert.NotEmpty(t, got.Settings.TimeClassRules)
}

func TestReopen_KeepsData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := sqlite.New(path)
	require.NoError(t, err)
	require.NoError(t, s.SaveState(context.Background(), "rossi", fullState()))
	require.NoError(t, s.Close())

	s, err = sqlite.New(path)
	require.NoError(t, err)
	defer s.Close()

	got, err := s.LoadState(context.Background(), "rossi")
	require.NoError(t, err)
	assert.Equal(t, fullState(), got)
}

func TestListUsers_Sorted(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()
	require.NoError(t, s.SaveState(ctx, "verdi", engine.NewAppState()))
	require.NoError(t, s.SaveState(ctx, "bianchi", engine.NewAppState()))
	require.NoError(t, s.SaveState(ctx, "rossi", engine.NewAppState()))

	users, err := s.ListUsers(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"bianchi", "rossi", "verdi"}, users)
}
