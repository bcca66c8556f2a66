/*
root.go - CLI entry and shared state-file plumbing

PURPOSE:
  The timesheet CLI works directly on exported state files, no server
  involved. Every subcommand reads one or more JSON snapshots and runs
  the same engine the server does.

COMMANDS:
  stats <date>       One day's computed statistics
  month <YYYY-MM>    Month summary
  bank               Hour bank balance
  validate           Compliance check; exit code 1 while blocking
  grid <YYYY-MM>     Prospect CSV/XLSX from one or more state files
  export             Filtered re-export of the state file
*/
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/warp/timesheet-engine/engine"
	"github.com/warp/timesheet-engine/statefile"
)

var statePath string

var rootCmd = &cobra.Command{
	Use:   "timesheet",
	Short: "Timesheet calculation and validation engine",
	Long: `timesheet computes worked time, meal vouchers, hour bank and
compliance violations from an exported state file.`,
}

// Execute is the entry point called from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&statePath, "state", "timesheet.json",
		"path to the state file")

	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(monthCmd)
	rootCmd.AddCommand(bankCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(gridCmd)
	rootCmd.AddCommand(exportCmd)
}

func loadState() (engine.AppState, error) {
	return statefile.LoadFile(statePath)
}
