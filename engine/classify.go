package engine

// =============================================================================
// DAY CLASSIFIER - Holiday / weekend / long-short / time-class verdict
// =============================================================================

// DayClass is the classifier's verdict for a single date. LongDay is
// meaningful only under the alternated class; flat days are never long.
type DayClass struct {
	Holiday   bool
	Weekend   bool
	LongDay   bool
	TimeClass TimeClassType
}

// Classify combines the rule timelines, the holiday calendar and the
// one-off override map. Precedence for LongDay: the override map always
// wins over the recurring long-day rule.
func Classify(day Day, settings UserSettings, overrides DayOverrides) DayClass {
	class := TimeClassAt(day, settings.TimeClassRules).Type

	long := false
	if class == TimeClassAlternated {
		if length, ok := overrides[day.String()]; ok {
			long = length == DayLong
		} else {
			long = longDayFromRules(day, settings.LongDayRules)
		}
	}

	return DayClass{
		Holiday:   IsHoliday(day, settings.PatronSaintDate),
		Weekend:   day.IsWeekend(),
		LongDay:   long,
		TimeClass: class,
	}
}

// TargetMinutes returns the day's expected working minutes: zero on
// holidays and weekends, otherwise per time class and day length.
func (c DayClass) TargetMinutes() int {
	if c.Holiday || c.Weekend {
		return 0
	}
	if c.TimeClass == TimeClassFlat {
		return TargetMinutesFlat
	}
	if c.LongDay {
		return TargetMinutesLong
	}
	return TargetMinutesShort
}

// DefaultEntry synthesizes the entry assumed for a date with nothing
// stored: Festa on holidays, otherwise office hours matching the day's
// class and length. Callers use it to suggest defaults and to compute
// statistics for unset days.
func DefaultEntry(day Day, settings UserSettings, overrides DayOverrides) DailyEntry {
	class := Classify(day, settings, overrides)

	if class.Holiday {
		return DailyEntry{
			Date:      day.String(),
			Causal:    CausalFesta,
			StartTime: "00:00",
			EndTime:   "00:00",
			Notes:     "Giorno Festivo",
		}
	}

	endTime := shortEndTime
	notes := "Default Ufficio (Corta)"
	switch {
	case class.TimeClass == TimeClassFlat:
		endTime = flatEndTime
	case class.LongDay:
		endTime = longEndTime
		notes = "Default Ufficio (Lunga)"
	}

	return DailyEntry{
		Date:      day.String(),
		Causal:    CausalUfficio,
		StartTime: defaultStartTime,
		EndTime:   endTime,
		Notes:     notes,
	}
}
