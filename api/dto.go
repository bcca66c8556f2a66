/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication. These types decouple
  the internal domain model from the external API contract, allowing:
  - Field renaming without breaking clients
  - API-specific validation
  - Version evolution

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients

VALIDATION:
  Validation is done in handlers, not in DTOs. DTOs are pure data carriers.

SEE ALSO:
  - handlers.go: Uses these types
  - engine/types.go: The domain types these project
*/
package api

import (
	"github.com/warp/timesheet-engine/engine"
	"github.com/warp/timesheet-engine/report"
)

// =============================================================================
// RESPONSE TYPES
// =============================================================================

// DayDTO is one date's computed statistics plus advisory messages.
type DayDTO struct {
	Date     string             `json:"date"`
	Entry    *engine.DailyEntry `json:"entry,omitempty"`
	Stats    engine.DayStats    `json:"stats"`
	Messages []string           `json:"messages"`
}

// MonthDTO is a month summary with every day's statistics.
type MonthDTO struct {
	Month        string              `json:"month"` // YYYY-MM
	Summary      engine.MonthSummary `json:"summary"`
	DeltaDisplay string              `json:"deltaDisplay"`
	Days         []DayDTO            `json:"days"`
}

// PresenceDTO is the presence-day total over a window.
type PresenceDTO struct {
	From     string `json:"from"`
	To       string `json:"to"`
	Presence string `json:"presence"` // decimal, two places
}

// DashboardDTO aggregates what the landing view shows.
type DashboardDTO struct {
	BankMinutes     int                     `json:"bankMinutes"`
	BankDisplay     string                  `json:"bankDisplay"`
	Month           engine.MonthSummary     `json:"month"`
	Ferie           engine.FerieBalance     `json:"ferie"`
	FerieAccrued    string                  `json:"ferieAccrued"` // decimal
	QuotaViolations []engine.QuotaViolation `json:"quotaViolations"`
}

// ValidationDTO is the full compliance picture for a user's state.
type ValidationDTO struct {
	Blocking bool                    `json:"blocking"`
	Days     map[string][]string     `json:"days"`
	Annual   []engine.QuotaViolation `json:"annual"`
}

// ErrorResponse is the error envelope for non-2xx responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// =============================================================================
// REQUEST TYPES
// =============================================================================

// SwapRequest trades the day lengths of two dates.
type SwapRequest struct {
	DateA string `json:"dateA"`
	DateB string `json:"dateB"`
}

// PaidHoursRequest sets a month's paid-hours deduction in minutes.
type PaidHoursRequest struct {
	Minutes int `json:"minutes"`
}

// GridRequest is a multi-operator prospect rendering request.
type GridRequest struct {
	Year   int               `json:"year"`
	Month  int               `json:"month"`
	Format string            `json:"format"` // "csv" or "xlsx"
	Users  []engine.AppState `json:"users"`

	// Quarter widens the coverage audit to three months.
	Quarter bool `json:"quarter"`
}

// GridBlockedResponse reports the audit anomalies that blocked a grid.
type GridBlockedResponse struct {
	Error     string           `json:"error"`
	Anomalies []report.Anomaly `json:"anomalies"`
}
