package engine

import "github.com/shopspring/decimal"

// =============================================================================
// PERIOD AGGREGATION - Presence days over a date range
// =============================================================================

// PresenceInPeriod sums presence days over every calendar date in the
// period, inclusive. Weekends are skipped. Full-presence causals count
// 1.0; a study permit (PSTU) counts the day minus the absent fraction;
// everything else counts 0.
func PresenceInPeriod(period Period, entries map[string]DailyEntry, settings UserSettings, overrides DayOverrides) decimal.Decimal {
	presence := decimal.Zero

	for d := period.Start; d.BeforeOrEqual(period.End); d = d.AddDays(1) {
		if d.IsWeekend() {
			continue
		}

		var entry *DailyEntry
		causal := CausalUfficio
		if e, ok := entries[d.String()]; ok {
			entry = &e
			causal = e.Causal
		} else if IsHoliday(d, settings.PatronSaintDate) {
			causal = CausalFesta
		}

		switch causal {
		case CausalUfficio, CausalSmart, CausalFerie, CausalFS:
			presence = presence.Add(decimal.NewFromInt(1))
		case CausalPSTU:
			presence = presence.Add(pstuPresence(d, entry, settings, overrides))
		case CausalMalattia, CausalL104, CausalArt25, CausalArt26, CausalPESA,
			CausalWeekend, CausalFesta:
			// full-day absence
		}
	}
	return presence
}

// pstuPresence is 1 minus the absent fraction of the day's target. A
// zero target (holiday mid-permit) falls back to the short-day 6h.
func pstuPresence(day Day, entry *DailyEntry, settings UserSettings, overrides DayOverrides) decimal.Decimal {
	stats := CalculateDayStats(day, entry, settings, overrides)
	target := stats.TargetMinutes
	if target == 0 {
		target = TargetMinutesShort
	}

	permesso := 0
	if entry != nil {
		permesso = entry.PermessoMinutes
	}

	p := decimal.NewFromInt(1).Sub(
		decimal.NewFromInt(int64(permesso)).Div(decimal.NewFromInt(int64(target))))
	if p.IsNegative() {
		return decimal.Zero
	}
	return p
}
