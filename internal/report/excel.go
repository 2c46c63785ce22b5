package report

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/wonny/screener/internal/contracts"
)

const resultSheet = "Results"

// WriteXLSX writes the result table to an Excel workbook at path
func WriteXLSX(path string, run *contracts.ScreenRun) error {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(resultSheet)
	if err != nil {
		return fmt.Errorf("create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("delete default sheet: %w", err)
	}

	factors := factorColumns(run)
	header := append([]string{"Rank", "Ticker", "Name"}, factors...)
	header = append(header, "Composite Score", "Passed")

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#DDEBF7"}},
	})
	if err != nil {
		return fmt.Errorf("create header style: %w", err)
	}

	for col, title := range header {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return fmt.Errorf("header cell name: %w", err)
		}
		if err := f.SetCellValue(resultSheet, cell, title); err != nil {
			return fmt.Errorf("write header: %w", err)
		}
		if err := f.SetCellStyle(resultSheet, cell, cell, headerStyle); err != nil {
			return fmt.Errorf("style header: %w", err)
		}
	}

	for i, res := range run.Results {
		rowNum := i + 2
		values := []interface{}{res.Rank, res.Ticker, res.Name}
		for _, name := range factors {
			if v := res.Factors[name]; v != nil {
				values = append(values, *v)
			} else {
				values = append(values, nil)
			}
		}
		values = append(values, res.CompositeScore, res.PassedFilters)

		for col, v := range values {
			if v == nil {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(col+1, rowNum)
			if err != nil {
				return fmt.Errorf("cell name: %w", err)
			}
			if err := f.SetCellValue(resultSheet, cell, v); err != nil {
				return fmt.Errorf("write row %d: %w", rowNum, err)
			}
		}
	}

	if err := f.SetColWidth(resultSheet, "B", "C", 18); err != nil {
		return fmt.Errorf("set column width: %w", err)
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}
	return nil
}
