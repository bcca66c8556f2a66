/*
handlers.go - HTTP API handlers for the timesheet engine

PURPOSE:
  Exposes the calculation and validation engine via REST API. Handles
  HTTP request/response, JSON serialization, and delegates to the
  engine, statefile and report packages.

ENDPOINTS:
  Days:
    GET    /api/days/{date}            Computed stats + advisory messages
    GET    /api/days/{date}/default    The synthesized default entry

  Entries:
    PUT    /api/entries/{date}         Store/replace the date's entry
    DELETE /api/entries/{date}         Remove entry (and its override)
    POST   /api/swap                   Trade day lengths of two dates

  Aggregates:
    GET    /api/months/{month}         Month summary + per-day stats
    GET    /api/presence?from=&to=     Presence days over a window
    GET    /api/dashboard?month=       Bank, delta, ferie, quotas

  Settings:
    GET    /api/settings
    PUT    /api/settings
    PUT    /api/paid-hours/{month}

  Compliance and export:
    GET    /api/validation             Per-day + annual violations
    GET    /api/export?range=&month=   State JSON (403 while blocked)
    POST   /api/report/grid            Prospect CSV/XLSX download

MULTI-USER:
  Every route addresses one user's state, selected with ?user=; absent,
  the handler's default user applies. The first write creates the user.

REQUEST FLOW:
  1. Parse HTTP request
  2. Load the user's snapshot
  3. Call domain logic
  4. Save the transformed snapshot (writes only)
  5. Serialize response

ERROR HANDLING:
  Errors are returned as JSON with appropriate HTTP status:
  - 400: Validation errors, invalid input
  - 403: Export blocked by compliance violations or audit anomalies
  - 404: Unknown date entry or user
  - 500: Internal errors

SEE ALSO:
  - dto.go: Request/response data structures
  - server.go: Router setup and middleware
*/
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/warp/timesheet-engine/engine"
	"github.com/warp/timesheet-engine/report"
	"github.com/warp/timesheet-engine/statefile"
	"github.com/warp/timesheet-engine/store"
)

// DefaultUser is the user addressed when ?user= is absent.
const DefaultUser = "default"

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Store store.Store

	// Defaults seeds the settings of users that have no stored state
	// yet, so deployment-wide choices like the patron saint date apply
	// before a user ever saves anything.
	Defaults engine.UserSettings
}

// NewHandler creates a new handler over the given store. The defaults
// seed fresh users' settings.
func NewHandler(s store.Store, defaults engine.UserSettings) *Handler {
	return &Handler{Store: s, Defaults: defaults}
}

func userOf(r *http.Request) string {
	if u := r.URL.Query().Get("user"); u != "" {
		return u
	}
	return DefaultUser
}

// loadState returns the user's snapshot, or a fresh one when the user
// does not exist yet. Reads on an unknown user see the default state
// rather than a 404: a new user's calendar is all default days.
func (h *Handler) loadState(r *http.Request) (engine.AppState, error) {
	state, err := h.Store.LoadState(r.Context(), userOf(r))
	if errors.Is(err, store.ErrUserNotFound) {
		fresh := engine.NewAppState()
		if len(h.Defaults.TimeClassRules) > 0 {
			fresh.Settings = h.Defaults
		}
		return fresh, nil
	}
	return state, err
}

// =============================================================================
// DAY HANDLERS
// =============================================================================

// GetDay returns one date's computed statistics.
// GET /api/days/{date}
func (h *Handler) GetDay(w http.ResponseWriter, r *http.Request) {
	day, err := engine.ParseDay(chi.URLParam(r, "date"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid date", err)
		return
	}

	state, err := h.loadState(r)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load state", err)
		return
	}

	writeJSON(w, http.StatusOK, h.dayDTO(day, state))
}

// GetDefaultEntry returns the entry the calculator would synthesize for
// a date with nothing stored.
// GET /api/days/{date}/default
func (h *Handler) GetDefaultEntry(w http.ResponseWriter, r *http.Request) {
	day, err := engine.ParseDay(chi.URLParam(r, "date"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid date", err)
		return
	}

	state, err := h.loadState(r)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load state", err)
		return
	}

	entry := engine.DefaultEntry(day, state.Settings, state.DayOverrides)
	writeJSON(w, http.StatusOK, entry)
}

func (h *Handler) dayDTO(day engine.Day, state engine.AppState) DayDTO {
	var entry *engine.DailyEntry
	if e, ok := state.Entries[day.String()]; ok {
		entry = &e
	}

	messages := engine.ValidateDay(day, state)
	if messages == nil {
		messages = []string{}
	}

	return DayDTO{
		Date:     day.String(),
		Entry:    entry,
		Stats:    engine.CalculateDayStats(day, entry, state.Settings, state.DayOverrides),
		Messages: messages,
	}
}

// =============================================================================
// ENTRY HANDLERS
// =============================================================================

// PutEntry stores or replaces the date's entry.
// PUT /api/entries/{date}
func (h *Handler) PutEntry(w http.ResponseWriter, r *http.Request) {
	date := chi.URLParam(r, "date")
	day, err := engine.ParseDay(date)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid date", err)
		return
	}

	var entry engine.DailyEntry
	if err := json.NewDecoder(r.Body).Decode(&entry); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid entry body", err)
		return
	}
	entry.Date = date
	if _, err := engine.ParseCausal(string(entry.Causal)); err != nil {
		writeError(w, http.StatusBadRequest, "Unknown causal", err)
		return
	}

	state, err := h.loadState(r)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load state", err)
		return
	}

	next, err := statefile.PutEntry(state, entry)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Failed to store entry", err)
		return
	}
	if err := h.Store.SaveState(r.Context(), userOf(r), next); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save state", err)
		return
	}

	writeJSON(w, http.StatusOK, h.dayDTO(day, next))
}

// DeleteEntry removes the date's entry and its day override.
// DELETE /api/entries/{date}
func (h *Handler) DeleteEntry(w http.ResponseWriter, r *http.Request) {
	date := chi.URLParam(r, "date")

	state, err := h.loadState(r)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load state", err)
		return
	}

	next, err := statefile.DeleteEntry(state, date)
	if errors.Is(err, statefile.ErrEntryNotFound) {
		writeError(w, http.StatusNotFound, "No entry for date", err)
		return
	}
	if err != nil {
		writeError(w, http.StatusBadRequest, "Failed to delete entry", err)
		return
	}
	if err := h.Store.SaveState(r.Context(), userOf(r), next); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save state", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// SwapDays trades the day lengths of two dates.
// POST /api/swap
func (h *Handler) SwapDays(w http.ResponseWriter, r *http.Request) {
	var req SwapRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid swap body", err)
		return
	}

	state, err := h.loadState(r)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load state", err)
		return
	}

	next, err := statefile.SwapDays(state, req.DateA, req.DateB)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Failed to swap days", err)
		return
	}
	if err := h.Store.SaveState(r.Context(), userOf(r), next); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save state", err)
		return
	}

	writeJSON(w, http.StatusOK, next.DayOverrides)
}

// =============================================================================
// AGGREGATE HANDLERS
// =============================================================================

// GetMonth returns the month summary with every day's statistics.
// GET /api/months/{month}   (month = YYYY-MM)
func (h *Handler) GetMonth(w http.ResponseWriter, r *http.Request) {
	monthKey := chi.URLParam(r, "month")
	first, err := engine.ParseDay(monthKey + "-01")
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid month", err)
		return
	}

	state, err := h.loadState(r)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load state", err)
		return
	}

	summary := engine.SummarizeMonth(state, first.Year(), first.Month())
	dto := MonthDTO{
		Month:        monthKey,
		Summary:      summary,
		DeltaDisplay: engine.FormatMinutes(summary.DeltaMinutes),
	}
	for d := first; d.Month() == first.Month(); d = d.AddDays(1) {
		dto.Days = append(dto.Days, h.dayDTO(d, state))
	}

	writeJSON(w, http.StatusOK, dto)
}

// GetPresence returns the presence-day total over [from, to].
// GET /api/presence?from=YYYY-MM-DD&to=YYYY-MM-DD
func (h *Handler) GetPresence(w http.ResponseWriter, r *http.Request) {
	from, err := engine.ParseDay(r.URL.Query().Get("from"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid from date", err)
		return
	}
	to, err := engine.ParseDay(r.URL.Query().Get("to"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid to date", err)
		return
	}
	if to.Before(from) {
		writeError(w, http.StatusBadRequest, "Window end precedes start", nil)
		return
	}

	state, err := h.loadState(r)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load state", err)
		return
	}

	presence := engine.PresenceInPeriod(engine.Period{Start: from, End: to},
		state.Entries, state.Settings, state.DayOverrides)

	writeJSON(w, http.StatusOK, PresenceDTO{
		From:     from.String(),
		To:       to.String(),
		Presence: presence.StringFixed(2),
	})
}

// GetDashboard returns the landing-view aggregates.
// GET /api/dashboard?month=YYYY-MM
func (h *Handler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	monthKey := r.URL.Query().Get("month")
	if monthKey == "" {
		monthKey = time.Now().UTC().Format("2006-01")
	}
	first, err := engine.ParseDay(monthKey + "-01")
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid month", err)
		return
	}

	state, err := h.loadState(r)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load state", err)
		return
	}

	bank := engine.HourBank(state)
	dto := DashboardDTO{
		BankMinutes:     bank,
		BankDisplay:     engine.FormatMinutes(bank),
		Month:           engine.SummarizeMonth(state, first.Year(), first.Month()),
		Ferie:           engine.FerieBalanceFor(state, first.Year()),
		FerieAccrued:    engine.FerieAccrued(state.Settings, int(first.Month())).StringFixed(2),
		QuotaViolations: engine.ValidateAnnual(state),
	}
	if dto.QuotaViolations == nil {
		dto.QuotaViolations = []engine.QuotaViolation{}
	}

	writeJSON(w, http.StatusOK, dto)
}

// =============================================================================
// SETTINGS HANDLERS
// =============================================================================

// GetSettings returns the user's settings.
// GET /api/settings
func (h *Handler) GetSettings(w http.ResponseWriter, r *http.Request) {
	state, err := h.loadState(r)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load state", err)
		return
	}
	writeJSON(w, http.StatusOK, state.Settings)
}

// PutSettings replaces the user's settings. Rule series are append-only
// edit histories; an empty series falls back to the defaults.
// PUT /api/settings
func (h *Handler) PutSettings(w http.ResponseWriter, r *http.Request) {
	var settings engine.UserSettings
	if err := json.NewDecoder(r.Body).Decode(&settings); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid settings body", err)
		return
	}

	state, err := h.loadState(r)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load state", err)
		return
	}

	state.Settings = settings
	if err := h.Store.SaveState(r.Context(), userOf(r), state); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save state", err)
		return
	}
	writeJSON(w, http.StatusOK, settings)
}

// PutPaidHours sets a month's paid-hours deduction.
// PUT /api/paid-hours/{month}
func (h *Handler) PutPaidHours(w http.ResponseWriter, r *http.Request) {
	monthKey := chi.URLParam(r, "month")
	if _, err := engine.ParseDay(monthKey + "-01"); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid month", err)
		return
	}

	var req PaidHoursRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid paid hours body", err)
		return
	}
	if req.Minutes < 0 {
		writeError(w, http.StatusBadRequest, "Paid hours cannot be negative", nil)
		return
	}

	state, err := h.loadState(r)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load state", err)
		return
	}

	next := statefile.SetPaidHours(state, monthKey, req.Minutes)
	if err := h.Store.SaveState(r.Context(), userOf(r), next); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save state", err)
		return
	}
	writeJSON(w, http.StatusOK, next.PaidHours)
}

// =============================================================================
// COMPLIANCE AND EXPORT HANDLERS
// =============================================================================

// GetValidation returns the full compliance picture.
// GET /api/validation
func (h *Handler) GetValidation(w http.ResponseWriter, r *http.Request) {
	state, err := h.loadState(r)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load state", err)
		return
	}

	dto := ValidationDTO{
		Blocking: engine.HasBlockingViolations(state),
		Days:     map[string][]string{},
		Annual:   engine.ValidateAnnual(state),
	}
	if dto.Annual == nil {
		dto.Annual = []engine.QuotaViolation{}
	}

	dates := make([]string, 0, len(state.Entries))
	for date := range state.Entries {
		dates = append(dates, date)
	}
	sort.Strings(dates)
	for _, date := range dates {
		day, err := engine.ParseDay(date)
		if err != nil {
			continue
		}
		if msgs := engine.ValidateDay(day, state); len(msgs) > 0 {
			dto.Days[date] = msgs
		}
	}

	writeJSON(w, http.StatusOK, dto)
}

// Export returns the state as a downloadable JSON file. Refused with
// 403 while the state carries blocking violations.
// GET /api/export?range=all|month|quarter&month=YYYY-MM
func (h *Handler) Export(w http.ResponseWriter, r *http.Request) {
	opts := statefile.Options{Range: statefile.Range(r.URL.Query().Get("range"))}
	switch opts.Range {
	case "", statefile.RangeAll:
		opts.Range = statefile.RangeAll
	case statefile.RangeMonth, statefile.RangeQuarter:
		ref, err := engine.ParseDay(r.URL.Query().Get("month") + "-01")
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid month", err)
			return
		}
		opts.Reference = ref
	default:
		writeError(w, http.StatusBadRequest,
			fmt.Sprintf("Unknown range %q", opts.Range), nil)
		return
	}

	state, err := h.loadState(r)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load state", err)
		return
	}

	w.Header().Set("Content-Disposition", `attachment; filename="timesheet.json"`)
	w.Header().Set("Content-Type", "application/json")
	if err := statefile.Save(w, state, opts); err != nil {
		var cerr *statefile.ComplianceError
		if errors.As(err, &cerr) {
			w.Header().Del("Content-Disposition")
			writeJSON(w, http.StatusForbidden, struct {
				Error      string   `json:"error"`
				Violations []string `json:"violations"`
			}{Error: "Export blocked by compliance violations", Violations: cerr.Violations})
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to export state", err)
	}
}

// PostGrid renders the prospect grid from uploaded operator states.
// The grid is refused while the coverage audit reports anomalies.
// POST /api/report/grid
func (h *Handler) PostGrid(w http.ResponseWriter, r *http.Request) {
	var req GridRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid grid body", err)
		return
	}
	if req.Month < 1 || req.Month > 12 {
		writeError(w, http.StatusBadRequest, "Month out of range", nil)
		return
	}
	if len(req.Users) == 0 || len(req.Users) > report.MaxUsers {
		writeError(w, http.StatusBadRequest,
			fmt.Sprintf("Need between 1 and %d operator states", report.MaxUsers), nil)
		return
	}

	month := time.Month(req.Month)
	window := report.MonthPeriod(req.Year, month)
	if req.Quarter {
		window = report.QuarterPeriod(req.Year, month)
	}
	if anomalies := report.CoverageAudit(req.Users, window); len(anomalies) > 0 {
		writeJSON(w, http.StatusForbidden, GridBlockedResponse{
			Error:     "Grid blocked by coverage anomalies",
			Anomalies: anomalies,
		})
		return
	}

	grid := report.MonthlyGrid(req.Users, req.Year, month)
	switch req.Format {
	case "", "csv":
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		w.Header().Set("Content-Disposition",
			fmt.Sprintf("attachment; filename=%q", report.FileName(grid, "csv")))
		if err := report.WriteCSV(w, grid); err != nil {
			writeError(w, http.StatusInternalServerError, "Failed to render grid", err)
		}
	case "xlsx":
		w.Header().Set("Content-Type",
			"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		w.Header().Set("Content-Disposition",
			fmt.Sprintf("attachment; filename=%q", report.FileName(grid, "xlsx")))
		if err := report.WriteXLSX(w, grid); err != nil {
			writeError(w, http.StatusInternalServerError, "Failed to render grid", err)
		}
	default:
		writeError(w, http.StatusBadRequest,
			fmt.Sprintf("Unknown format %q", req.Format), nil)
	}
}

// =============================================================================
// RESPONSE HELPERS
// =============================================================================

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}
