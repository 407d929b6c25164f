package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"menulens/internal/domain"
)

const sheetName = "Menu"

// WriteXLSX writes menu items as an Excel workbook with one sheet. Section
// headings get a bold style so the exported sheet reads like the menu.
func WriteXLSX(w io.Writer, restaurantName string, items []domain.MenuItem) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	idx, err := f.NewSheet(sheetName)
	if err != nil {
		return fmt.Errorf("creating sheet: %w", err)
	}
	f.SetActiveSheet(idx)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("removing default sheet: %w", err)
	}

	boldStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("creating style: %w", err)
	}

	row := 1
	if restaurantName != "" {
		cell := fmt.Sprintf("A%d", row)
		if err := f.SetCellValue(sheetName, cell, restaurantName); err != nil {
			return fmt.Errorf("writing title: %w", err)
		}
		_ = f.SetCellStyle(sheetName, cell, cell, boldStyle)
		row += 2
	}

	header := make([]interface{}, len(columns))
	for i, c := range columns {
		header[i] = c
	}
	if err := f.SetSheetRow(sheetName, fmt.Sprintf("A%d", row), &header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	_ = f.SetCellStyle(sheetName, fmt.Sprintf("A%d", row), fmt.Sprintf("D%d", row), boldStyle)
	row++

	for i := range items {
		cells := itemToRow(&items[i])
		values := make([]interface{}, len(cells))
		for j, c := range cells {
			values[j] = c
		}
		start := fmt.Sprintf("A%d", row)
		if err := f.SetSheetRow(sheetName, start, &values); err != nil {
			return fmt.Errorf("writing row %d: %w", row, err)
		}
		if items[i].IsCategoryMarker() {
			_ = f.SetCellStyle(sheetName, start, start, boldStyle)
		}
		row++
	}

	_ = f.SetColWidth(sheetName, "A", "B", 28)
	_ = f.SetColWidth(sheetName, "D", "D", 60)

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}
