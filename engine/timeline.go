package engine

import "sort"

// =============================================================================
// TIMELINE RESOLUTION - "Which rule is in force on this date?"
// =============================================================================
// The three configuration series (long-day, smart-working, time-class)
// share one resolver. Records carry a canonical ISO start date, so plain
// string comparison orders them correctly.

// defaultRuleStart anchors the hard-coded fallback rules applied when a
// series has no record in force on a date.
const defaultRuleStart = "2020-01-01"

const defaultSmartLimit = 8

// Effective is any configuration record with a start date.
type Effective interface {
	EffectiveFrom() string // ISO YYYY-MM-DD
}

// ResolveAt returns the record with the latest start date not after day,
// or fallback when no record qualifies. Storage order is irrelevant:
// resolution works on a sorted copy.
func ResolveAt[T Effective](day Day, records []T, fallback T) T {
	sorted := make([]T, len(records))
	copy(sorted, records)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].EffectiveFrom() > sorted[j].EffectiveFrom()
	})

	date := day.String()
	for _, r := range sorted {
		if date >= r.EffectiveFrom() {
			return r
		}
	}
	return fallback
}

// TimeClassAt resolves the time class in force on a day.
func TimeClassAt(day Day, rules []TimeClassRule) TimeClassRule {
	return ResolveAt(day, rules, TimeClassRule{StartDate: defaultRuleStart, Type: TimeClassAlternated})
}

// SmartWorkingAt resolves the smart-working rule in force on a day.
func SmartWorkingAt(day Day, rules []SmartWorkingRule) SmartWorkingRule {
	return ResolveAt(day, rules, SmartWorkingRule{StartDate: defaultRuleStart, Limit: defaultSmartLimit})
}

// longDayFromRules tests whether day's weekday is flagged long by the
// rule in force. Overrides are layered on top in Classify; this is only
// the recurring base rule.
func longDayFromRules(day Day, rules []LongDayRule) bool {
	rule := ResolveAt(day, rules, LongDayRule{StartDate: defaultRuleStart})
	for _, wd := range rule.Days {
		if wd == int(day.Weekday()) {
			return true
		}
	}
	return false
}
