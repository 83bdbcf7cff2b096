package services

import (
	"bytes"
	"testing"

	"github.com/xuri/excelize/v2"
)

func TestGenerateCatalogExcel(t *testing.T) {
	rows := []SupplierRow{
		{SupplierName: "ACME", SKU: "600450", ProductName: "Corex Board", Unit: "Each", Price: 125.50},
		{SupplierName: "SignCo", SKU: "", ProductName: "PVC banner 3x6m", Unit: "Each", Price: 899},
	}

	content, err := GenerateCatalogExcel(rows)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(content))
	if err != nil {
		t.Fatalf("generated workbook does not open: %v", err)
	}
	defer f.Close()

	got, err := f.GetRows("Supplier Catalog")
	if err != nil {
		t.Fatalf("missing catalog sheet: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected header plus 2 rows, got %d", len(got))
	}
	if got[0][0] != "Supplier" || got[0][4] != "Price" {
		t.Errorf("unexpected header row: %v", got[0])
	}
	if got[1][0] != "ACME" || got[1][2] != "Corex Board" {
		t.Errorf("unexpected first data row: %v", got[1])
	}
}

func TestGenerateCatalogExcelEmpty(t *testing.T) {
	content, err := GenerateCatalogExcel(nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(content) == 0 {
		t.Error("expected a non-empty workbook even with no rows")
	}
}

func TestGenerateCatalogExcelRoundTrip(t *testing.T) {
	rows := []SupplierRow{
		{SupplierName: "ACME", SKU: "600450", ProductName: "Corex Board", Unit: "Each", Price: 125.50},
	}
	content, err := GenerateCatalogExcel(rows)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// The exported workbook must be importable again.
	parsed, err := ParseTabularFile(bytes.NewReader(content), "catalog.xlsx")
	if err != nil {
		t.Fatalf("export does not re-import: %v", err)
	}
	back := CoerceSupplierRows(parsed, "fallback")
	if len(back) != 1 {
		t.Fatalf("expected 1 re-imported row, got %d", len(back))
	}
	if back[0].SupplierName != "ACME" || back[0].Price != 125.50 {
		t.Errorf("round trip mismatch: %+v", back[0])
	}
}
