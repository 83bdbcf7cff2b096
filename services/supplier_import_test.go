package services

import (
	"strings"
	"testing"
)

func TestCoerceSupplierRows(t *testing.T) {
	raw := []map[string]string{
		{"supplier": "ACME", "sku": "600450", "product name": "Corex Board", "unit": "Each", "price": "125.50"},
		{"sku": "", "product name": "Banner 3x6m", "price": "R 1,899.00"},
		{"sku": "", "product name": "", "price": "10"},        // no identity
		{"sku": "X1", "product name": "Thing", "price": ""},   // no price
		{"sku": "X2", "product name": "Thing", "price": "-5"}, // negative price
		{"sku": "X3", "product name": "Thing", "price": "0"},  // zero price
	}

	rows := CoerceSupplierRows(raw, "fallback-supplier")
	if len(rows) != 2 {
		t.Fatalf("expected 2 valid rows, got %d", len(rows))
	}
	if rows[0].SupplierName != "ACME" || rows[0].Price != 125.50 {
		t.Errorf("unexpected first row: %+v", rows[0])
	}
	if rows[1].SupplierName != "fallback-supplier" {
		t.Errorf("expected fallback supplier name, got %q", rows[1].SupplierName)
	}
	if rows[1].Price != 1899 {
		t.Errorf("expected parsed price 1899, got %v", rows[1].Price)
	}
}

func TestPickFieldStrictBeatsLoose(t *testing.T) {
	// "price" matches strictly; "unit price notes" only by containment.
	raw := map[string]string{
		"price":            "100",
		"unit price notes": "999",
	}
	if got := pickField(raw, priceAliases); got != "100" {
		t.Errorf("pickField = %q, want strict match 100", got)
	}
}

func TestPickFieldLooseFallback(t *testing.T) {
	raw := map[string]string{"selling price zar": "250"}
	if got := pickField(raw, priceAliases); got != "250" {
		t.Errorf("pickField = %q, want 250 via containment", got)
	}
}

func TestDedupKey(t *testing.T) {
	withSKU := SupplierRow{SKU: "600450", ProductName: "Corex Board"}
	if got := DedupKey(withSKU); got != "sku:600450" {
		t.Errorf("DedupKey = %q, want sku:600450", got)
	}

	noSKU := SupplierRow{ProductName: "Corex  Board"}
	if got := DedupKey(noSKU); got != "name:"+Canon("Corex Board") {
		t.Errorf("DedupKey = %q, want canonical name key", got)
	}
}

func TestCollapseToCheapest(t *testing.T) {
	rows := []SupplierRow{
		{SupplierName: "A", SKU: "600450", Price: 120},
		{SupplierName: "B", SKU: "600450", Price: 99},
		{SupplierName: "C", SKU: "600450", Price: 150},
		{SupplierName: "A", ProductName: "Banner", Price: 500},
	}

	out := CollapseToCheapest(rows)
	if len(out) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(out))
	}
	if out[0].SupplierName != "B" || out[0].Price != 99 {
		t.Errorf("expected cheapest offer to win, got %+v", out[0])
	}
	if out[1].ProductName != "Banner" {
		t.Errorf("expected first-appearance order preserved, got %+v", out[1])
	}
}

func TestPriceString(t *testing.T) {
	tests := []struct {
		input float64
		want  string
	}{
		{125.5, "125.5"},
		{1899, "1899"},
		{0.1, "0.1"},
	}
	for _, tt := range tests {
		if got := PriceString(tt.input); got != tt.want {
			t.Errorf("PriceString(%v) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestImportSupplierRows(t *testing.T) {
	good := "Product Name,SKU,Price\nCorex Board,600450,125.50\nSubtotal,,\n"
	bad := "just some text with no shape"

	res, err := ImportSupplierRows([]ImportFile{
		{Name: "acme.csv", Reader: strings.NewReader(good)},
		{Name: "broken.pdf", Reader: strings.NewReader(bad)},
	}, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(res.Rows) != 1 {
		t.Fatalf("expected 1 valid row, got %d", len(res.Rows))
	}
	if res.Rows[0].SupplierName != "acme" {
		t.Errorf("expected supplier derived from file name, got %q", res.Rows[0].SupplierName)
	}
	if res.Rows[0].SourceFile != "acme.csv" {
		t.Errorf("expected source file acme.csv, got %q", res.Rows[0].SourceFile)
	}
	if res.Skipped != 1 {
		t.Errorf("expected 1 skipped row, got %d", res.Skipped)
	}
	if len(res.FileErrors) != 1 {
		t.Errorf("expected 1 file error, got %v", res.FileErrors)
	}
}

func TestImportSupplierRowsAllInvalid(t *testing.T) {
	if _, err := ImportSupplierRows([]ImportFile{
		{Name: "empty.csv", Reader: strings.NewReader("Notes\nnothing useful\n")},
	}, false); err == nil {
		t.Error("expected error when no valid rows were imported")
	}
}

func TestImportSupplierRowsCheapestOnly(t *testing.T) {
	data := "Product Name,SKU,Price\nCorex Board,600450,125.50\nCorex Board,600450,99.00\n"
	res, err := ImportSupplierRows([]ImportFile{
		{Name: "acme.csv", Reader: strings.NewReader(data)},
	}, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Rows) != 1 {
		t.Fatalf("expected 1 collapsed row, got %d", len(res.Rows))
	}
	if res.Rows[0].Price != 99 {
		t.Errorf("expected cheapest price 99, got %v", res.Rows[0].Price)
	}
}
