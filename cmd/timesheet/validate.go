package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"
	"github.com/warp/timesheet-engine/engine"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the whole state against every limit",
	Args:  cobra.NoArgs,
	RunE:  runValidate,
}

func runValidate(cmd *cobra.Command, args []string) error {
	state, err := loadState()
	if err != nil {
		return err
	}

	violations := 0

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
		for _, msg := range engine.ValidateDay(day, state) {
			fmt.Printf("%s: %s\n", date, msg)
			violations++
		}
	}

	for _, v := range engine.ValidateAnnual(state) {
		fmt.Println(v.Message())
		violations++
	}

	if violations > 0 {
		fmt.Fprintf(os.Stderr, "%d violation(s); export is blocked\n", violations)
		os.Exit(1)
	}
	fmt.Println("ok")
	return nil
}
