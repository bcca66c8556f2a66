/*
audit.go - Office coverage audit

PURPOSE:
  The office must never be physically empty on a working day. The audit
  walks a window and flags every weekday where no operator is in the
  office, counting a date with no stored entry as office presence (the
  default day is an office day).

  Grid exports are meant to be blocked while anomalies exist; that is
  the caller's decision, helped by the anomaly list being non-empty.
*/
package report

import (
	"time"

	"github.com/warp/timesheet-engine/engine"
)

// EmptyOfficeMessage is the anomaly text for an uncovered working day.
const EmptyOfficeMessage = "Ufficio Vuoto: nessun operatore presente fisicamente"

// Anomaly is one uncovered working day.
type Anomaly struct {
	Date    string `json:"date"`
	Message string `json:"message"`
}

// CoverageAudit flags every weekday in the period where nobody is in
// the office. Holidays are skipped using the first operator's patron
// saint date, the team being assumed to share a workplace.
func CoverageAudit(users []engine.AppState, p engine.Period) []Anomaly {
	patronSaint := ""
	if len(users) > 0 {
		patronSaint = users[0].Settings.PatronSaintDate
	}

	var anomalies []Anomaly
	for d := p.Start; d.BeforeOrEqual(p.End); d = d.AddDays(1) {
		if d.IsWeekend() || engine.IsHoliday(d, patronSaint) {
			continue
		}

		anyInOffice := false
		for _, u := range users {
			entry, ok := u.Entries[d.String()]
			if !ok || entry.Causal == engine.CausalUfficio {
				anyInOffice = true
				break
			}
		}
		if !anyInOffice {
			anomalies = append(anomalies, Anomaly{Date: d.String(), Message: EmptyOfficeMessage})
		}
	}
	return anomalies
}

// MonthPeriod is the audit window for one month.
func MonthPeriod(year int, month time.Month) engine.Period {
	return engine.MonthOf(engine.NewDay(year, month, 1))
}

// QuarterPeriod is the audit window for the three months starting at
// the given one.
func QuarterPeriod(year int, month time.Month) engine.Period {
	start := engine.NewDay(year, month, 1)
	return engine.Period{Start: start, End: start.AddMonths(3).AddDays(-1)}
}
