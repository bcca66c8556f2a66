/*
xlsx.go - Spreadsheet rendering of the prospect grid

Same layout as the CSV, minus the legacy quirks the CSV keeps for its
positional parser: the spreadsheet still writes all 31 day columns so
the two renderings line up cell for cell.
*/
package report

import (
	"fmt"
	"io"

	"github.com/warp/timesheet-engine/engine"
	"github.com/xuri/excelize/v2"
)

// WriteXLSX renders the grid as a single-sheet workbook.
func WriteXLSX(w io.Writer, g Grid) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(f.GetActiveSheetIndex())
	days := g.DaysInMonth()

	if err := setCell(f, sheet, 1, 1, "Servizio Stipendi Pensioni"); err != nil {
		return err
	}
	for d := 1; d <= gridColumns; d++ {
		if d <= days {
			day := engine.NewDay(g.Year, g.Month, d)
			if err := setCell(f, sheet, d+1, 1, italianWeekdays[int(day.Weekday())]); err != nil {
				return err
			}
		}
		if err := setCell(f, sheet, d+1, 2, d); err != nil {
			return err
		}
	}

	for i, row := range g.Rows {
		r := i + 3
		if err := setCell(f, sheet, 1, r, row.UserName); err != nil {
			return err
		}
		for d := 1; d <= days && d <= len(row.Cells); d++ {
			if row.Cells[d-1] == CodeBlank {
				continue
			}
			if err := setCell(f, sheet, d+1, r, row.Cells[d-1]); err != nil {
				return err
			}
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write prospect xlsx: %w", err)
	}
	return nil
}

func setCell(f *excelize.File, sheet string, col, row int, value any) error {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return fmt.Errorf("cell %d,%d: %w", col, row, err)
	}
	if err := f.SetCellValue(sheet, cell, value); err != nil {
		return fmt.Errorf("set cell %s: %w", cell, err)
	}
	return nil
}
