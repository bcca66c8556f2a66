package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/warp/timesheet-engine/engine"
)

var statsCmd = &cobra.Command{
	Use:   "stats <date>",
	Short: "Show one day's computed statistics",
	Args:  cobra.ExactArgs(1),
	RunE:  runStats,
}

func runStats(cmd *cobra.Command, args []string) error {
	day, err := engine.ParseDay(args[0])
	if err != nil {
		return err
	}
	state, err := loadState()
	if err != nil {
		return err
	}

	var entry *engine.DailyEntry
	causal := "default"
	if e, ok := state.Entries[day.String()]; ok {
		entry = &e
		causal = string(e.Causal)
	}
	stats := engine.CalculateDayStats(day, entry, state.Settings, state.DayOverrides)

	fmt.Printf("%s (%s)\n", day, causal)
	fmt.Printf("  worked:  %s\n", engine.FormatMinutes(stats.WorkedMinutes))
	fmt.Printf("  target:  %s\n", engine.FormatMinutes(stats.TargetMinutes))
	fmt.Printf("  voucher: %v\n", stats.BuonoPasto)
	if stats.IsHoliday {
		fmt.Printf("  holiday: %s\n", engine.HolidayName(day, state.Settings.PatronSaintDate))
	}

	for _, msg := range engine.ValidateDay(day, state) {
		fmt.Printf("  ! %s\n", msg)
	}
	return nil
}
