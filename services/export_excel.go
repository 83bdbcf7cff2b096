package services

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"
)

// GenerateCatalogExcel creates an Excel workbook of the supplier
// catalog and returns the file contents as a byte slice.
func GenerateCatalogExcel(rows []SupplierRow) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	const sheetName = "Supplier Catalog"

	defaultSheet := f.GetSheetName(0)
	if err := f.SetSheetName(defaultSheet, sheetName); err != nil {
		return nil, fmt.Errorf("set sheet name: %w", err)
	}

	columns := []string{"A", "B", "C", "D", "E"}
	widths := []float64{24, 16, 44, 10, 14}
	for i, col := range columns {
		if err := f.SetColWidth(sheetName, col, col, widths[i]); err != nil {
			return nil, fmt.Errorf("set col width %s: %w", col, err)
		}
	}

	// Column header style: bold, white text, charcoal background.
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Bold:  true,
			Color: "#FFFFFF",
			Size:  11,
		},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#333333"},
			Pattern: 1,
		},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
	})
	if err != nil {
		return nil, fmt.Errorf("create header style: %w", err)
	}

	priceStyle, err := f.NewStyle(&excelize.Style{
		NumFmt: 4, // #,##0.00
	})
	if err != nil {
		return nil, fmt.Errorf("create price style: %w", err)
	}

	headers := []string{"Supplier", "SKU", "Product Name", "Unit", "Price"}
	for i, h := range headers {
		cell := fmt.Sprintf("%s1", columns[i])
		if err := f.SetCellValue(sheetName, cell, h); err != nil {
			return nil, fmt.Errorf("set header cell %s: %w", cell, err)
		}
	}
	if err := f.SetCellStyle(sheetName, "A1", "E1", headerStyle); err != nil {
		return nil, fmt.Errorf("style header row: %w", err)
	}

	for i, row := range rows {
		r := i + 2
		values := []any{row.SupplierName, row.SKU, row.ProductName, row.Unit, row.Price}
		for c, v := range values {
			cell := fmt.Sprintf("%s%d", columns[c], r)
			if err := f.SetCellValue(sheetName, cell, v); err != nil {
				return nil, fmt.Errorf("set cell %s: %w", cell, err)
			}
		}
		if err := f.SetCellStyle(sheetName, fmt.Sprintf("E%d", r), fmt.Sprintf("E%d", r), priceStyle); err != nil {
			return nil, fmt.Errorf("style price cell: %w", err)
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}
