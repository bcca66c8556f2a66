/*
Package sqlite provides the SQLite-backed Store implementation.

PURPOSE:
  Persists one timesheet snapshot per user across normalized tables.
  In production the same patterns apply to PostgreSQL - only minor SQL
  dialect differences.

KEY TABLES:
  users:            One row per known user (settings scalars live here)
  entries:          One row per user per calendar date
  long_day_rules:   Long-day weekday timeline (days as JSON array)
  sw_rules:         Smart-working monthly limit timeline
  time_class_rules: Time-class timeline
  paid_hours:       Per-month paid-hours deductions in minutes
  day_overrides:    One-off long/short swaps per date

SNAPSHOT SEMANTICS:
  SaveState replaces the user's whole snapshot in one transaction: the
  user row is upserted, every dependent table's rows for that user are
  deleted and re-inserted. Readers either see the old snapshot or the
  new one, never a mix.

CONCURRENCY:
  Uses sync.RWMutex for thread-safety. In production with PostgreSQL,
  database-level concurrency control handles this instead.

WAL MODE:
  SQLite is opened with WAL (Write-Ahead Logging) for better
  concurrency: multiple readers don't block and crash recovery is
  cleaner.

MIGRATION:
  Schema is auto-migrated on New(). For production, use a proper
  migration tool (golang-migrate, goose) with versioned migrations.

SEE ALSO:
  - store/store.go: Interface definition
  - store/memory:   In-memory implementation for testing
*/
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"

	_ "github.com/mattn/go-sqlite3"
	"github.com/warp/timesheet-engine/engine"
	"github.com/warp/timesheet-engine/store"
)

// Store implements store.Store using SQLite.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// New creates a new SQLite store with the given database path.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// migrate creates the database schema.
func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS users (
		user TEXT PRIMARY KEY,
		user_name TEXT NOT NULL DEFAULT '',
		initial_ferie INTEGER NOT NULL DEFAULT 0,
		monthly_ferie_accrual REAL NOT NULL DEFAULT 0,
		bank_hours_initial INTEGER NOT NULL DEFAULT 0,
		patron_saint_date TEXT NOT NULL DEFAULT ''
	);

	CREATE TABLE IF NOT EXISTS entries (
		user TEXT NOT NULL REFERENCES users(user) ON DELETE CASCADE,
		date TEXT NOT NULL,
		causal TEXT NOT NULL,
		start_time TEXT NOT NULL DEFAULT '',
		end_time TEXT NOT NULL DEFAULT '',
		permesso_minutes INTEGER NOT NULL DEFAULT 0,
		notes TEXT NOT NULL DEFAULT '',
		spring_request BOOLEAN NOT NULL DEFAULT FALSE,
		PRIMARY KEY (user, date)
	);

	CREATE INDEX IF NOT EXISTS idx_entries_user_date
		ON entries(user, date);

	CREATE TABLE IF NOT EXISTS long_day_rules (
		user TEXT NOT NULL REFERENCES users(user) ON DELETE CASCADE,
		start_date TEXT NOT NULL,
		days_json TEXT NOT NULL,
		PRIMARY KEY (user, start_date)
	);

	CREATE TABLE IF NOT EXISTS sw_rules (
		user TEXT NOT NULL REFERENCES users(user) ON DELETE CASCADE,
		start_date TEXT NOT NULL,
		monthly_limit INTEGER NOT NULL,
		PRIMARY KEY (user, start_date)
	);

	CREATE TABLE IF NOT EXISTS time_class_rules (
		user TEXT NOT NULL REFERENCES users(user) ON DELETE CASCADE,
		start_date TEXT NOT NULL,
		class_type TEXT NOT NULL,
		PRIMARY KEY (user, start_date)
	);

	CREATE TABLE IF NOT EXISTS paid_hours (
		user TEXT NOT NULL REFERENCES users(user) ON DELETE CASCADE,
		month TEXT NOT NULL,
		minutes INTEGER NOT NULL,
		PRIMARY KEY (user, month)
	);

	CREATE TABLE IF NOT EXISTS day_overrides (
		user TEXT NOT NULL REFERENCES users(user) ON DELETE CASCADE,
		date TEXT NOT NULL,
		length TEXT NOT NULL,
		PRIMARY KEY (user, date)
	);
	`

	_, err := s.db.Exec(schema)
	return err
}

// =============================================================================
// LOAD
// =============================================================================

// LoadState reassembles the user's snapshot from the normalized tables.
func (s *Store) LoadState(ctx context.Context, user string) (engine.AppState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	state := engine.NewAppState()

	row := s.db.QueryRowContext(ctx, `
		SELECT user_name, initial_ferie, monthly_ferie_accrual,
		       bank_hours_initial, patron_saint_date
		FROM users WHERE user = ?`, user)
	err := row.Scan(
		&state.Settings.UserName,
		&state.Settings.InitialFerie,
		&state.Settings.MonthlyFerieAccrual,
		&state.Settings.BankHoursInitial,
		&state.Settings.PatronSaintDate,
	)
	if err == sql.ErrNoRows {
		return engine.AppState{}, fmt.Errorf("load %q: %w", user, store.ErrUserNotFound)
	}
	if err != nil {
		return engine.AppState{}, fmt.Errorf("load user %q: %w", user, err)
	}

	if err := s.loadEntries(ctx, user, &state); err != nil {
		return engine.AppState{}, err
	}
	if err := s.loadRules(ctx, user, &state); err != nil {
		return engine.AppState{}, err
	}
	if err := s.loadPaidHours(ctx, user, &state); err != nil {
		return engine.AppState{}, err
	}
	if err := s.loadOverrides(ctx, user, &state); err != nil {
		return engine.AppState{}, err
	}
	return state, nil
}

func (s *Store) loadEntries(ctx context.Context, user string, state *engine.AppState) error {
	rows, err := s.db.QueryContext(ctx, `
		SELECT date, causal, start_time, end_time, permesso_minutes, notes, spring_request
		FROM entries WHERE user = ? ORDER BY date`, user)
	if err != nil {
		return fmt.Errorf("load entries: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var e engine.DailyEntry
		var causal string
		if err := rows.Scan(&e.Date, &causal, &e.StartTime, &e.EndTime,
			&e.PermessoMinutes, &e.Notes, &e.SpringRequest); err != nil {
			return fmt.Errorf("scan entry: %w", err)
		}
		e.Causal = engine.Causal(causal)
		state.Entries[e.Date] = e
	}
	return rows.Err()
}

func (s *Store) loadRules(ctx context.Context, user string, state *engine.AppState) error {
	rows, err := s.db.QueryContext(ctx, `
		SELECT start_date, days_json FROM long_day_rules
		WHERE user = ? ORDER BY start_date`, user)
	if err != nil {
		return fmt.Errorf("load long day rules: %w", err)
	}
	defer rows.Close()

	var longDay []engine.LongDayRule
	for rows.Next() {
		var r engine.LongDayRule
		var daysJSON string
		if err := rows.Scan(&r.StartDate, &daysJSON); err != nil {
			return fmt.Errorf("scan long day rule: %w", err)
		}
		if err := json.Unmarshal([]byte(daysJSON), &r.Days); err != nil {
			return fmt.Errorf("decode long day rule %s: %w", r.StartDate, err)
		}
		longDay = append(longDay, r)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	swRows, err := s.db.QueryContext(ctx, `
		SELECT start_date, monthly_limit FROM sw_rules
		WHERE user = ? ORDER BY start_date`, user)
	if err != nil {
		return fmt.Errorf("load sw rules: %w", err)
	}
	defer swRows.Close()

	var sw []engine.SmartWorkingRule
	for swRows.Next() {
		var r engine.SmartWorkingRule
		if err := swRows.Scan(&r.StartDate, &r.Limit); err != nil {
			return fmt.Errorf("scan sw rule: %w", err)
		}
		sw = append(sw, r)
	}
	if err := swRows.Err(); err != nil {
		return err
	}

	tcRows, err := s.db.QueryContext(ctx, `
		SELECT start_date, class_type FROM time_class_rules
		WHERE user = ? ORDER BY start_date`, user)
	if err != nil {
		return fmt.Errorf("load time class rules: %w", err)
	}
	defer tcRows.Close()

	var tc []engine.TimeClassRule
	for tcRows.Next() {
		var r engine.TimeClassRule
		var classType string
		if err := tcRows.Scan(&r.StartDate, &classType); err != nil {
			return fmt.Errorf("scan time class rule: %w", err)
		}
		r.Type = engine.TimeClassType(classType)
		tc = append(tc, r)
	}
	if err := tcRows.Err(); err != nil {
		return err
	}

	// A user saved before ever touching a series has no rows for it;
	// the defaults that applied at save time still apply.
	defaults := engine.DefaultSettings()
	if len(longDay) == 0 {
		longDay = defaults.LongDayRules
	}
	if len(sw) == 0 {
		sw = defaults.SmartWorkingRules
	}
	if len(tc) == 0 {
		tc = defaults.TimeClassRules
	}

	state.Settings.LongDayRules = longDay
	state.Settings.SmartWorkingRules = sw
	state.Settings.TimeClassRules = tc
	return nil
}

func (s *Store) loadPaidHours(ctx context.Context, user string, state *engine.AppState) error {
	rows, err := s.db.QueryContext(ctx, `
		SELECT month, minutes FROM paid_hours WHERE user = ?`, user)
	if err != nil {
		return fmt.Errorf("load paid hours: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var month string
		var minutes int
		if err := rows.Scan(&month, &minutes); err != nil {
			return fmt.Errorf("scan paid hours: %w", err)
		}
		state.PaidHours[month] = minutes
	}
	return rows.Err()
}

func (s *Store) loadOverrides(ctx context.Context, user string, state *engine.AppState) error {
	rows, err := s.db.QueryContext(ctx, `
		SELECT date, length FROM day_overrides WHERE user = ?`, user)
	if err != nil {
		return fmt.Errorf("load day overrides: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var date, length string
		if err := rows.Scan(&date, &length); err != nil {
			return fmt.Errorf("scan day override: %w", err)
		}
		state.DayOverrides[date] = engine.DayLength(length)
	}
	return rows.Err()
}

// =============================================================================
// SAVE
// =============================================================================

// SaveState replaces the user's snapshot in one transaction.
func (s *Store) SaveState(ctx context.Context, user string, state engine.AppState) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin save: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO users (user, user_name, initial_ferie, monthly_ferie_accrual,
		                   bank_hours_initial, patron_saint_date)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(user) DO UPDATE SET
			user_name = excluded.user_name,
			initial_ferie = excluded.initial_ferie,
			monthly_ferie_accrual = excluded.monthly_ferie_accrual,
			bank_hours_initial = excluded.bank_hours_initial,
			patron_saint_date = excluded.patron_saint_date`,
		user,
		state.Settings.UserName,
		state.Settings.InitialFerie,
		state.Settings.MonthlyFerieAccrual,
		state.Settings.BankHoursInitial,
		state.Settings.PatronSaintDate,
	)
	if err != nil {
		return fmt.Errorf("save user %q: %w", user, err)
	}

	for _, table := range []string{
		"entries", "long_day_rules", "sw_rules", "time_class_rules",
		"paid_hours", "day_overrides",
	} {
		if _, err := tx.ExecContext(ctx,
			"DELETE FROM "+table+" WHERE user = ?", user); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}

	for _, e := range state.Entries {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO entries
			(user, date, causal, start_time, end_time, permesso_minutes, notes, spring_request)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			user, e.Date, string(e.Causal), e.StartTime, e.EndTime,
			e.PermessoMinutes, e.Notes, e.SpringRequest)
		if err != nil {
			return fmt.Errorf("save entry %s: %w", e.Date, err)
		}
	}

	for _, r := range state.Settings.LongDayRules {
		daysJSON, err := json.Marshal(r.Days)
		if err != nil {
			return fmt.Errorf("encode long day rule %s: %w", r.StartDate, err)
		}
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO long_day_rules (user, start_date, days_json)
			VALUES (?, ?, ?)`,
			user, r.StartDate, string(daysJSON)); err != nil {
			return fmt.Errorf("save long day rule %s: %w", r.StartDate, err)
		}
	}

	for _, r := range state.Settings.SmartWorkingRules {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO sw_rules (user, start_date, monthly_limit)
			VALUES (?, ?, ?)`,
			user, r.StartDate, r.Limit); err != nil {
			return fmt.Errorf("save sw rule %s: %w", r.StartDate, err)
		}
	}

	for _, r := range state.Settings.TimeClassRules {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO time_class_rules (user, start_date, class_type)
			VALUES (?, ?, ?)`,
			user, r.StartDate, string(r.Type)); err != nil {
			return fmt.Errorf("save time class rule %s: %w", r.StartDate, err)
		}
	}

	for month, minutes := range state.PaidHours {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO paid_hours (user, month, minutes)
			VALUES (?, ?, ?)`,
			user, month, minutes); err != nil {
			return fmt.Errorf("save paid hours %s: %w", month, err)
		}
	}

	for date, length := range state.DayOverrides {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO day_overrides (user, date, length)
			VALUES (?, ?, ?)`,
			user, date, string(length)); err != nil {
			return fmt.Errorf("save day override %s: %w", date, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit save: %w", err)
	}
	return nil
}

// ListUsers returns every known user, sorted.
func (s *Store) ListUsers(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `SELECT user FROM users ORDER BY user`)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	var users []string
	for rows.Next() {
		var user string
		if err := rows.Scan(&user); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, user)
	}
	return users, rows.Err()
}
