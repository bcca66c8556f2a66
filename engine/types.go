/*
Package engine implements the timesheet calculation and validation core.

PURPOSE:
  This package turns a day's raw entry plus time-varying user
  configuration into worked-time statistics, and checks a calendar of
  entries against statutory and contractual limits (smart-working
  quotas, annual leave caps, meal-voucher eligibility, hour bank).

KEY CONCEPTS:
  - Day/Clock:     date and time-of-day primitives (see time.go)
  - Causal:        closed reason-code set for a day (see causal.go)
  - Timeline:      time-effective configuration resolution (timeline.go)
  - DayClass:      holiday/weekend/long-day/time-class verdict (classify.go)
  - DayStats:      worked vs target minutes + voucher flag (daystats.go)
  - AppState:      the whole calendar + settings snapshot the aggregate
                   functions fold over

DESIGN PRINCIPLES:
  1. Purity: every function is a computation over its arguments. No I/O,
     no hidden state, safe to call concurrently on immutable input.
  2. Snapshots: callers mutate state copy-on-write; the engine never
     mutates what it is handed.
  3. Minutes: worked time is integer minutes; only fractional presence
     days use decimal.Decimal.

USAGE:
  stats := engine.CalculateDayStats(day, entry, settings, overrides)
  msgs  := engine.ValidateDay(day, state)
  pres  := engine.PresenceInPeriod(period, state.Entries, settings, overrides)

SEE ALSO:
  - statefile: JSON exchange of AppState snapshots
  - report:    monthly presence grid derived from these stats
*/
package engine

// =============================================================================
// DAILY ENTRY
// =============================================================================

// DailyEntry is one stored record per calendar date. Absence of an entry
// means "default day": office, or holiday when the calendar says so.
type DailyEntry struct {
	Date            string `json:"date"` // ISO YYYY-MM-DD, the map key
	Causal          Causal `json:"causal"`
	StartTime       string `json:"startTime"` // HH:MM
	EndTime         string `json:"endTime"`   // HH:MM
	PermessoMinutes int    `json:"permessoMinutes"`
	Notes           string `json:"notes,omitempty"`
	SpringRequest   bool   `json:"springRequest,omitempty"` // filed on the HR system
}

// =============================================================================
// TIME-EFFECTIVE CONFIGURATION RULES
// =============================================================================
// Each series is an append-only edit history; the rule in force on a day
// is the one with the latest start date not after it (see timeline.go).

// LongDayRule flags which weekdays are 9-hour days under the alternated
// time class. Days uses 0=Sunday..6=Saturday; at most two entries.
type LongDayRule struct {
	StartDate string `json:"startDate"`
	Days      []int  `json:"days"`
}

// SmartWorkingRule sets the monthly smart-working day cap (6, 8 or 10).
type SmartWorkingRule struct {
	StartDate string `json:"startDate"`
	Limit     int    `json:"limit"`
}

// TimeClassType selects between alternating long/short targets and a
// uniform 7h12m target.
type TimeClassType string

const (
	TimeClassAlternated TimeClassType = "alternated"
	TimeClassFlat       TimeClassType = "flat"
)

// TimeClassRule switches the working-time class from a given date.
type TimeClassRule struct {
	StartDate string        `json:"startDate"`
	Type      TimeClassType `json:"type"`
}

func (r LongDayRule) EffectiveFrom() string      { return r.StartDate }
func (r SmartWorkingRule) EffectiveFrom() string { return r.StartDate }
func (r TimeClassRule) EffectiveFrom() string    { return r.StartDate }

// =============================================================================
// DAY OVERRIDES - One-off long/short swaps
// =============================================================================

// DayLength is the override value for a single date. An override takes
// absolute precedence over the long-day timeline for that date.
type DayLength string

const (
	DayLong  DayLength = "long"
	DayShort DayLength = "short"
)

// DayOverrides maps ISO date -> long/short exception. Created only by a
// swap; removed when the date's entry is deleted.
type DayOverrides map[string]DayLength

// =============================================================================
// USER SETTINGS
// =============================================================================

// UserSettings aggregates the three rule timelines plus scalar settings.
// Immutable during a calculation; edited only through explicit updates.
type UserSettings struct {
	UserName            string             `json:"userName"`
	InitialFerie        int                `json:"initialFerie"`
	MonthlyFerieAccrual float64            `json:"monthlyFerieAccrual"`
	BankHoursInitial    int                `json:"bankHoursInitial"` // minutes
	PatronSaintDate     string             `json:"patronSaintDate"`  // MM-DD
	LongDayRules        []LongDayRule      `json:"longDayConfigs"`
	SmartWorkingRules   []SmartWorkingRule `json:"swConfigs"`
	TimeClassRules      []TimeClassRule    `json:"timeClassConfigs"`
}

// DefaultSettings returns the settings a fresh state starts from:
// alternated class with Monday and Thursday long, eight smart-working
// days a month, patron saint on September 4th.
func DefaultSettings() UserSettings {
	return UserSettings{
		MonthlyFerieAccrual: 2.16,
		PatronSaintDate:     "09-04",
		LongDayRules:        []LongDayRule{{StartDate: defaultRuleStart, Days: []int{1, 4}}},
		SmartWorkingRules:   []SmartWorkingRule{{StartDate: defaultRuleStart, Limit: defaultSmartLimit}},
		TimeClassRules:      []TimeClassRule{{StartDate: defaultRuleStart, Type: TimeClassAlternated}},
	}
}

// =============================================================================
// APP STATE - The unit aggregate functions operate over
// =============================================================================

// AppState is the calendar of entries plus settings, per-month paid-hours
// adjustments and one-off day overrides. Entries are keyed by their own
// Date field; that is the only internal consistency constraint.
type AppState struct {
	Entries      map[string]DailyEntry `json:"entries"`
	Settings     UserSettings          `json:"settings"`
	PaidHours    map[string]int        `json:"paidHours"` // YYYY-MM -> minutes
	DayOverrides DayOverrides          `json:"dayOverrides,omitempty"`
}

// NewAppState returns an empty state with default settings.
func NewAppState() AppState {
	return AppState{
		Entries:      map[string]DailyEntry{},
		Settings:     DefaultSettings(),
		PaidHours:    map[string]int{},
		DayOverrides: DayOverrides{},
	}
}

// =============================================================================
// DAY STATS - The calculator's output contract
// =============================================================================

// DayStats is the computed result for a single day.
type DayStats struct {
	WorkedMinutes int           `json:"workedMinutes"`
	TargetMinutes int           `json:"targetMinutes"`
	BuonoPasto    bool          `json:"buonoPasto"`
	IsHoliday     bool          `json:"isHoliday"`
	IsLongDay     bool          `json:"isLongDay"`
	TimeClass     TimeClassType `json:"timeClass"`

	// Errors is kept for structural symmetry with the validator's
	// output; the calculator itself never populates it.
	Errors []string `json:"errors"`
}
