package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/warp/timesheet-engine/engine"
	"github.com/warp/timesheet-engine/report"
	"github.com/warp/timesheet-engine/statefile"
)

var (
	gridFormat  string
	gridOut     string
	gridQuarter bool
	gridForce   bool
)

var gridCmd = &cobra.Command{
	Use:   "grid <YYYY-MM> <state-file>...",
	Short: "Render the team presence prospect",
	Long: `grid builds the payroll prospect from one or more exported state
files, one row per operator. The coverage audit runs first and blocks
the rendering while any working day leaves the office empty.`,
	Args: cobra.MinimumNArgs(2),
	RunE: runGrid,
}

func init() {
	gridCmd.Flags().StringVar(&gridFormat, "format", "csv", "output format: csv, xlsx")
	gridCmd.Flags().StringVar(&gridOut, "out", "", "output path (default: conventional name)")
	gridCmd.Flags().BoolVar(&gridQuarter, "quarter", false, "audit three months instead of one")
	gridCmd.Flags().BoolVar(&gridForce, "force", false, "render despite coverage anomalies")
}

func runGrid(cmd *cobra.Command, args []string) error {
	first, err := engine.ParseDay(args[0] + "-01")
	if err != nil {
		return fmt.Errorf("invalid month %q: %w", args[0], err)
	}

	var users []engine.AppState
	for _, path := range args[1:] {
		state, err := statefile.LoadFile(path)
		if err != nil {
			return err
		}
		users = append(users, state)
	}
	if len(users) > report.MaxUsers {
		return fmt.Errorf("at most %d operators per grid", report.MaxUsers)
	}

	window := report.MonthPeriod(first.Year(), first.Month())
	if gridQuarter {
		window = report.QuarterPeriod(first.Year(), first.Month())
	}
	if anomalies := report.CoverageAudit(users, window); len(anomalies) > 0 {
		for _, a := range anomalies {
			fmt.Fprintf(os.Stderr, "%s: %s\n", a.Date, a.Message)
		}
		if !gridForce {
			return fmt.Errorf("%d coverage anomalies; use --force to render anyway", len(anomalies))
		}
	}

	grid := report.MonthlyGrid(users, first.Year(), first.Month())

	var render func(f *os.File) error
	switch gridFormat {
	case "csv":
		render = func(f *os.File) error { return report.WriteCSV(f, grid) }
	case "xlsx":
		render = func(f *os.File) error { return report.WriteXLSX(f, grid) }
	default:
		return fmt.Errorf("unknown format %q", gridFormat)
	}

	out := gridOut
	if out == "" {
		out = report.FileName(grid, gridFormat)
	}
	f, err := os.Create(out)
	if err != nil {
		return err
	}
	if err := render(f); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}

	fmt.Printf("wrote %s (%d operators, %s %d)\n",
		out, len(users), first.Month(), first.Year())
	return nil
}
