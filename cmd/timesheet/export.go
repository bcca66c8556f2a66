package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/warp/timesheet-engine/engine"
	"github.com/warp/timesheet-engine/statefile"
)

var (
	exportRange string
	exportMonth string
	exportOut   string
	exportForce bool
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Re-export the state file, optionally narrowed to a window",
	Long: `export writes a compliance-checked copy of the state file. A state
carrying blocking violations is refused unless --force is given.`,
	Args: cobra.NoArgs,
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVar(&exportRange, "range", "all", "all, month or quarter")
	exportCmd.Flags().StringVar(&exportMonth, "month", "", "reference month YYYY-MM for month/quarter")
	exportCmd.Flags().StringVar(&exportOut, "out", "export.json", "output path")
	exportCmd.Flags().BoolVar(&exportForce, "force", false, "export despite blocking violations")
}

func runExport(cmd *cobra.Command, args []string) error {
	opts := statefile.Options{Range: statefile.Range(exportRange), Force: exportForce}
	switch opts.Range {
	case statefile.RangeAll:
	case statefile.RangeMonth, statefile.RangeQuarter:
		ref, err := engine.ParseDay(exportMonth + "-01")
		if err != nil {
			return fmt.Errorf("--range %s needs --month YYYY-MM", opts.Range)
		}
		opts.Reference = ref
	default:
		return fmt.Errorf("unknown range %q", exportRange)
	}

	state, err := loadState()
	if err != nil {
		return err
	}

	err = statefile.SaveFile(exportOut, state, opts)
	var cerr *statefile.ComplianceError
	if errors.As(err, &cerr) {
		for _, v := range cerr.Violations {
			fmt.Fprintln(os.Stderr, v)
		}
		return fmt.Errorf("export blocked by %d violation(s); use --force to override",
			len(cerr.Violations))
	}
	if err != nil {
		return err
	}

	fmt.Printf("wrote %s\n", exportOut)
	return nil
}
