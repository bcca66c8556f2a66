/*
Package statefile reads and writes AppState exchange files.

PURPOSE:
  The exchange format is indented JSON with camelCase keys, one file per
  user. Files written elsewhere may omit settings series; Load merges
  the defaults back in so the engine never sees an empty timeline.

EXPORT SAFETY:
  Save refuses to write a state that fails compliance checks. The point
  of an export is downstream payroll processing, and shipping a file the
  validator rejects just moves the error to a worse place. Callers that
  need a raw dump regardless can set Options.Force.

SEE ALSO:
  - engine:       the AppState type and the compliance checks
  - mutate.go:    copy-on-write entry edits on a loaded state
*/
package statefile

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/warp/timesheet-engine/engine"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrStateNonCompliant is returned by Save when the state carries
	// blocking violations and Force is not set.
	ErrStateNonCompliant = errors.New("state has blocking violations")

	// ErrEntryNotFound is returned by mutations addressing a date with
	// no stored entry.
	ErrEntryNotFound = errors.New("no entry for date")
)

// ComplianceError lists the violations that blocked a Save. It unwraps
// to ErrStateNonCompliant.
type ComplianceError struct {
	Violations []string
}

func (e *ComplianceError) Error() string {
	return fmt.Sprintf("%v: %s", ErrStateNonCompliant, strings.Join(e.Violations, "; "))
}

func (e *ComplianceError) Unwrap() error { return ErrStateNonCompliant }

// =============================================================================
// LOADING
// =============================================================================

// Load decodes a state file and merges defaults for anything the file
// left out, so a partially edited or hand-written file still yields a
// fully usable state.
func Load(r io.Reader) (engine.AppState, error) {
	state := engine.NewAppState()

	dec := json.NewDecoder(r)
	if err := dec.Decode(&state); err != nil {
		return engine.AppState{}, fmt.Errorf("decode state: %w", err)
	}

	mergeDefaults(&state)
	return state, nil
}

// LoadFile is Load over a file path.
func LoadFile(path string) (engine.AppState, error) {
	f, err := os.Open(path)
	if err != nil {
		return engine.AppState{}, fmt.Errorf("open state file: %w", err)
	}
	defer f.Close()

	state, err := Load(f)
	if err != nil {
		return engine.AppState{}, fmt.Errorf("%s: %w", path, err)
	}
	return state, nil
}

// mergeDefaults fills in whatever the file omitted. Rule series must
// never be empty: resolution falls back per series, but an absent series
// in a stored file means "never customised", which is the default.
func mergeDefaults(state *engine.AppState) {
	defaults := engine.DefaultSettings()

	if state.Entries == nil {
		state.Entries = map[string]engine.DailyEntry{}
	}
	if state.PaidHours == nil {
		state.PaidHours = map[string]int{}
	}
	if state.DayOverrides == nil {
		state.DayOverrides = engine.DayOverrides{}
	}
	if len(state.Settings.LongDayRules) == 0 {
		state.Settings.LongDayRules = defaults.LongDayRules
	}
	if len(state.Settings.SmartWorkingRules) == 0 {
		state.Settings.SmartWorkingRules = defaults.SmartWorkingRules
	}
	if len(state.Settings.TimeClassRules) == 0 {
		state.Settings.TimeClassRules = defaults.TimeClassRules
	}
	if state.Settings.PatronSaintDate == "" {
		state.Settings.PatronSaintDate = defaults.PatronSaintDate
	}
	if state.Settings.MonthlyFerieAccrual == 0 {
		state.Settings.MonthlyFerieAccrual = defaults.MonthlyFerieAccrual
	}
}

// =============================================================================
// SAVING
// =============================================================================

// Range selects which slice of the calendar an export carries.
type Range string

const (
	RangeAll     Range = "all"
	RangeMonth   Range = "month"
	RangeQuarter Range = "quarter"
)

// Options controls Save behaviour.
type Options struct {
	// Range narrows the exported entries; zero value means RangeAll.
	Range Range

	// Reference anchors month/quarter ranges. Ignored for RangeAll.
	Reference engine.Day

	// Force writes the file even when compliance checks fail.
	Force bool
}

// Save writes the state as indented JSON. Unless Force is set, a state
// with blocking violations is refused with a *ComplianceError.
func Save(w io.Writer, state engine.AppState, opts Options) error {
	if !opts.Force && engine.HasBlockingViolations(state) {
		return &ComplianceError{Violations: collectViolations(state)}
	}

	out := filterRange(state, opts)

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode state: %w", err)
	}
	return nil
}

// SaveFile is Save over a file path. The file is written via a
// temporary sibling and renamed into place, so readers never observe a
// half-written export.
func SaveFile(path string, state engine.AppState, opts Options) error {
	tmp, err := os.CreateTemp(dirOf(path), ".timesheet-*.json")
	if err != nil {
		return fmt.Errorf("create temp state file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := Save(tmp, state, opts); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp state file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("replace state file: %w", err)
	}
	return nil
}

func dirOf(path string) string {
	if i := strings.LastIndexByte(path, os.PathSeparator); i >= 0 {
		return path[:i]
	}
	return "."
}

// collectViolations gathers every message the validator produces, the
// per-date ones first, annual quotas after.
func collectViolations(state engine.AppState) []string {
	var msgs []string

	for _, dateKey := range sortedKeys(state.Entries) {
		day, err := engine.ParseDay(dateKey)
		if err != nil {
			continue
		}
		for _, m := range engine.ValidateDay(day, state) {
			msgs = append(msgs, dateKey+": "+m)
		}
	}
	for _, v := range engine.ValidateAnnual(state) {
		msgs = append(msgs, v.Message())
	}
	return msgs
}

// filterRange narrows entries to the months the range covers. Paid
// hours and day overrides travel whole: they are settings-like context
// a narrowed export still needs. RangeAll passes the state through
// untouched. A quarter runs three months forward from the reference
// month, same window the prospect grid uses.
func filterRange(state engine.AppState, opts Options) engine.AppState {
	if opts.Range == "" || opts.Range == RangeAll {
		return state
	}

	months := map[string]bool{}
	first := engine.NewDay(opts.Reference.Year(), opts.Reference.Month(), 1)
	switch opts.Range {
	case RangeMonth:
		months[first.MonthKey()] = true
	case RangeQuarter:
		for i := 0; i < 3; i++ {
			months[first.AddMonths(i).MonthKey()] = true
		}
	}

	out := state
	out.Entries = map[string]engine.DailyEntry{}

	for dateKey, e := range state.Entries {
		if len(dateKey) >= 7 && months[dateKey[:7]] {
			out.Entries[dateKey] = e
		}
	}
	return out
}

func sortedKeys(entries map[string]engine.DailyEntry) []string {
	keys := make([]string, 0, len(entries))
	for k := range entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
