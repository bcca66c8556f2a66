package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/warp/timesheet-engine/engine"
)

var bankCmd = &cobra.Command{
	Use:   "bank",
	Short: "Show the hour bank and annual leave balances",
	Args:  cobra.NoArgs,
	RunE:  runBank,
}

func runBank(cmd *cobra.Command, args []string) error {
	state, err := loadState()
	if err != nil {
		return err
	}

	year := time.Now().UTC().Year()
	ferie := engine.FerieBalanceFor(state, year)

	fmt.Printf("%-16s%s\n", "hour bank", engine.FormatMinutes(engine.HourBank(state)))
	fmt.Printf("%-16s%d / %d days (%s left)\n", "ferie",
		ferie.Used, ferie.Entitlement, ferie.Remaining.StringFixed(0))
	return nil
}
