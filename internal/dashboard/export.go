package dashboard

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/rbc-health/malaria-dashboard/internal/analytics"
)

const (
	facilitySheet = "Facilities"
	monthlySheet  = "Monthly Trend"
)

var monthlyColumns = []string{"Date", "Year", "Month", "Malaria_cases_OPD"}

// WriteWorkbook writes the aggregate rows and the monthly series of view as
// a two-sheet xlsx workbook.
func WriteWorkbook(w io.Writer, view analytics.View) error {
	f := excelize.NewFile()
	defer f.Close()

	f.SetSheetName("Sheet1", facilitySheet)
	if err := writeHeader(f, facilitySheet, analytics.Columns); err != nil {
		return err
	}
	for i, r := range view.Rows {
		row := i + 2
		f.SetCellValue(facilitySheet, fmt.Sprintf("A%d", row), r.FacilityName)
		f.SetCellValue(facilitySheet, fmt.Sprintf("B%d", row), r.TotalCases)
		f.SetCellValue(facilitySheet, fmt.Sprintf("C%d", row), r.AverageCases)
		f.SetCellValue(facilitySheet, fmt.Sprintf("D%d", row), r.MaximumCases)
	}

	f.NewSheet(monthlySheet)
	if err := writeHeader(f, monthlySheet, monthlyColumns); err != nil {
		return err
	}
	for i, p := range view.Monthly {
		row := i + 2
		f.SetCellValue(monthlySheet, fmt.Sprintf("A%d", row), p.Date.Format("2006-01-02"))
		f.SetCellValue(monthlySheet, fmt.Sprintf("B%d", row), p.Year)
		f.SetCellValue(monthlySheet, fmt.Sprintf("C%d", row), p.Month)
		f.SetCellValue(monthlySheet, fmt.Sprintf("D%d", row), p.Cases)
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func writeHeader(f *excelize.File, sheet string, headers []string) error {
	for i, header := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		f.SetCellValue(sheet, cell, header)
		f.SetColWidth(sheet, col, col, 18)
	}
	return nil
}
