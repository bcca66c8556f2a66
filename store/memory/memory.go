// Package memory provides a map-backed Store implementation.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/warp/timesheet-engine/engine"
	"github.com/warp/timesheet-engine/store"
)

// Store keeps snapshots in memory. Safe for concurrent use. Snapshots
// are deep-copied on the way in and out so callers cannot alias the
// stored maps.
type Store struct {
	mu     sync.RWMutex
	states map[string]engine.AppState
}

func New() *Store {
	return &Store{states: make(map[string]engine.AppState)}
}

func (s *Store) LoadState(_ context.Context, user string) (engine.AppState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	state, ok := s.states[user]
	if !ok {
		return engine.AppState{}, store.ErrUserNotFound
	}
	return copyState(state), nil
}

func (s *Store) SaveState(_ context.Context, user string, state engine.AppState) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.states[user] = copyState(state)
	return nil
}

func (s *Store) ListUsers(_ context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	users := make([]string, 0, len(s.states))
	for user := range s.states {
		users = append(users, user)
	}
	sort.Strings(users)
	return users, nil
}

func copyState(in engine.AppState) engine.AppState {
	out := in
	out.Entries = make(map[string]engine.DailyEntry, len(in.Entries))
	for k, v := range in.Entries {
		out.Entries[k] = v
	}
	out.PaidHours = make(map[string]int, len(in.PaidHours))
	for k, v := range in.PaidHours {
		out.PaidHours[k] = v
	}
	out.DayOverrides = make(engine.DayOverrides, len(in.DayOverrides))
	for k, v := range in.DayOverrides {
		out.DayOverrides[k] = v
	}
	out.Settings.LongDayRules = append([]engine.LongDayRule(nil), in.Settings.LongDayRules...)
	out.Settings.SmartWorkingRules = append([]engine.SmartWorkingRule(nil), in.Settings.SmartWorkingRules...)
	out.Settings.TimeClassRules = append([]engine.TimeClassRule(nil), in.Settings.TimeClassRules...)
	return out
}
