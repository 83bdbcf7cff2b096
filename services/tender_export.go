package services

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
)

// GenerateTenderCSV renders a priced tender as CSV: one row per line
// with the chosen supplier, resolved cost and suggested pricing.
func GenerateTenderCSV(state TenderState) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	header := []string{
		"Line No", "Description", "Unit", "Qty",
		"Supplier", "SKU", "Cost Per Unit",
		"Suggested Unit Price", "Suggested Line Total",
	}
	if err := w.Write(header); err != nil {
		return nil, fmt.Errorf("write CSV header: %w", err)
	}

	for i := range state.Lines {
		line := &state.Lines[i]

		var supplierName, sku string
		if line.ChosenSourceID != "" {
			for _, opt := range line.SupplierOptions {
				if opt.SourceID == line.ChosenSourceID {
					supplierName = opt.SupplierName
					sku = opt.SKU
					break
				}
			}
		}

		rec := []string{
			strconv.Itoa(line.LineNo),
			line.Description,
			line.Unit,
			formatFloat(line.Qty),
			supplierName,
			sku,
			formatFloat(line.CostPerUnit),
			formatFloat(line.SuggestedUnitPrice),
			formatFloat(line.SuggestedLineTotal),
		}
		if err := w.Write(rec); err != nil {
			return nil, fmt.Errorf("write CSV row %d: %w", i+1, err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("flush CSV: %w", err)
	}
	return buf.Bytes(), nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
