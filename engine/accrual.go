package engine

import "github.com/shopspring/decimal"

// =============================================================================
// ANNUAL LEAVE (FERIE) BALANCE
// =============================================================================

// FerieBalance is the annual-leave position for one calendar year.
type FerieBalance struct {
	Year        int
	Entitlement int             // 28 + configured initial days
	Used        int             // count of Ferie entries in the year
	Remaining   decimal.Decimal // entitlement - used
}

// FerieBalanceFor counts Ferie days taken in the year against the
// contractual entitlement.
func FerieBalanceFor(state AppState, year int) FerieBalance {
	prefix := NewDay(year, 1, 1).YearKey()
	used := 0
	for dateKey, entry := range state.Entries {
		if len(dateKey) >= 4 && dateKey[:4] == prefix && entry.Causal == CausalFerie {
			used++
		}
	}

	entitlement := FerieBaseEntitlement + state.Settings.InitialFerie
	return FerieBalance{
		Year:        year,
		Entitlement: entitlement,
		Used:        used,
		Remaining:   decimal.NewFromInt(int64(entitlement - used)),
	}
}

// FerieAccrued projects the leave accrued by the end of monthsElapsed
// months at the configured monthly rate. Deterministic: the schedule is
// known in advance, so a projection is just rate times months.
func FerieAccrued(settings UserSettings, monthsElapsed int) decimal.Decimal {
	rate := decimal.NewFromFloat(settings.MonthlyFerieAccrual)
	return rate.Mul(decimal.NewFromInt(int64(monthsElapsed)))
}
