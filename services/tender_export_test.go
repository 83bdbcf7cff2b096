package services

import (
	"bytes"
	"encoding/csv"
	"testing"
)

func TestGenerateTenderCSV(t *testing.T) {
	state := TenderState{
		Lines: []TenderLine{
			{
				LineNo:      1,
				Description: "Corex board 600x450",
				Unit:        "Each",
				Qty:         10,
				SupplierOptions: []SupplierOption{
					{SourceID: "r2", SupplierName: "SignCo", SKU: "SS-88412", Price: 99},
				},
				ChosenSourceID:     "r2",
				CostPerUnit:        99,
				SuggestedUnitPrice: 123.75,
				SuggestedLineTotal: 1237.5,
			},
			{LineNo: 2, Description: "Unmatched line", Qty: 1},
		},
	}

	content, err := GenerateTenderCSV(state)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	records, err := csv.NewReader(bytes.NewReader(content)).ReadAll()
	if err != nil {
		t.Fatalf("generated CSV does not parse: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("expected header plus 2 rows, got %d", len(records))
	}
	if records[0][0] != "Line No" {
		t.Errorf("unexpected header: %v", records[0])
	}
	if records[1][4] != "SignCo" || records[1][5] != "SS-88412" {
		t.Errorf("expected chosen supplier in row, got %v", records[1])
	}
	if records[1][8] != "1237.5" {
		t.Errorf("expected line total 1237.5, got %q", records[1][8])
	}
	if records[2][4] != "" {
		t.Errorf("expected empty supplier for unmatched line, got %q", records[2][4])
	}
}
