package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/warp/timesheet-engine/engine"
)

var monthCmd = &cobra.Command{
	Use:   "month <YYYY-MM>",
	Short: "Show a month's summary",
	Args:  cobra.ExactArgs(1),
	RunE:  runMonth,
}

func runMonth(cmd *cobra.Command, args []string) error {
	first, err := engine.ParseDay(args[0] + "-01")
	if err != nil {
		return fmt.Errorf("invalid month %q: %w", args[0], err)
	}
	state, err := loadState()
	if err != nil {
		return err
	}

	s := engine.SummarizeMonth(state, first.Year(), first.Month())

	fmt.Printf("%s %d\n", s.Month, s.Year)
	fmt.Println("--------------------------------")
	fmt.Printf("%-16s%s\n", "worked", engine.FormatMinutes(s.WorkedMinutes))
	fmt.Printf("%-16s%s\n", "target", engine.FormatMinutes(s.TargetMinutes))
	fmt.Printf("%-16s%s\n", "paid hours", engine.FormatMinutes(s.PaidMinutes))
	fmt.Printf("%-16s%s\n", "delta", engine.FormatMinutes(s.DeltaMinutes))
	fmt.Println("--------------------------------")
	fmt.Printf("%-16s%d\n", "meal vouchers", s.MealVouchers)
	fmt.Printf("%-16s%d / %d\n", "smart days", s.SmartDays, s.SmartLimit)
	fmt.Printf("%-16s%d\n", "104 days", s.L104Days)
	return nil
}
