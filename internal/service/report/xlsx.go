package report

import (
	"fmt"
	"strconv"

	"github.com/xuri/excelize/v2"

	"github.com/Aayush-Sood101/newspaper-management-backend/internal/domain/models"
)

const (
	// ContentTypeXLSX is the MIME type of the encoded workbook.
	ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

	nameColWidth  = 20
	dayColWidth   = 8
	totalColWidth = 12
)

// SheetName returns the workbook sheet name for a report period.
func SheetName(month, year int) string {
	return fmt.Sprintf("Report-%d-%d", month, year)
}

// Filename returns the attachment filename for a report period.
func Filename(month, year int) string {
	return fmt.Sprintf("newspaper-report-%d-%d.xlsx", month, year)
}

// EncodeXLSX serializes a monthly report into an xlsx workbook: a header
// row (newspaper name, one column per day number, total) and one data row
// per newspaper.
func EncodeXLSX(rep *models.MonthlyReport) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	sheet := SheetName(rep.Month, rep.Year)
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	header := make([]interface{}, 0, rep.DaysInMonth+2)
	header = append(header, "Newspaper Name")
	for day := 1; day <= rep.DaysInMonth; day++ {
		header = append(header, strconv.Itoa(day))
	}
	header = append(header, "Total Cost")

	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return nil, fmt.Errorf("write header: %w", err)
	}

	for i, row := range rep.Rows {
		values := make([]interface{}, 0, len(header))
		values = append(values, row.NewspaperName)
		for _, amount := range row.Days {
			values = append(values, amount)
		}
		values = append(values, row.Total)

		cell := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return nil, fmt.Errorf("write row %d: %w", i+1, err)
		}
	}

	if err := setColumnWidths(f, sheet, rep.DaysInMonth); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("encode workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func setColumnWidths(f *excelize.File, sheet string, daysInMonth int) error {
	if err := f.SetColWidth(sheet, "A", "A", nameColWidth); err != nil {
		return fmt.Errorf("size name column: %w", err)
	}

	firstDay, err := excelize.ColumnNumberToName(2)
	if err != nil {
		return fmt.Errorf("resolve day column: %w", err)
	}
	lastDay, err := excelize.ColumnNumberToName(1 + daysInMonth)
	if err != nil {
		return fmt.Errorf("resolve day column: %w", err)
	}
	if err := f.SetColWidth(sheet, firstDay, lastDay, dayColWidth); err != nil {
		return fmt.Errorf("size day columns: %w", err)
	}

	totalCol, err := excelize.ColumnNumberToName(2 + daysInMonth)
	if err != nil {
		return fmt.Errorf("resolve total column: %w", err)
	}
	if err := f.SetColWidth(sheet, totalCol, totalCol, totalColWidth); err != nil {
		return fmt.Errorf("size total column: %w", err)
	}
	return nil
}
