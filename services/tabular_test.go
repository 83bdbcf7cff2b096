package services

import (
	"errors"
	"strings"
	"testing"
)

func TestParseTabularFileCSV(t *testing.T) {
	csvData := "Product Name,SKU,Price\nCorex Board,600450,125.50\nBanner 3x6m,,899\n"
	rows, err := ParseTabularFile(strings.NewReader(csvData), "pricelist.csv")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if rows[0]["product name"] != "Corex Board" {
		t.Errorf("expected canonical header 'product name', got row %v", rows[0])
	}
	if rows[0]["price"] != "125.50" {
		t.Errorf("expected price 125.50, got %q", rows[0]["price"])
	}
}

func TestParseTabularFileUnsupportedExtension(t *testing.T) {
	_, err := ParseTabularFile(strings.NewReader("data"), "pricelist.pdf")
	var unsupported *UnsupportedFileTypeError
	if !errors.As(err, &unsupported) {
		t.Fatalf("expected UnsupportedFileTypeError, got %v", err)
	}
	if unsupported.Ext != ".pdf" {
		t.Errorf("expected extension .pdf in error, got %q", unsupported.Ext)
	}
}

func TestParseTabularFileHeaderOnly(t *testing.T) {
	if _, err := ParseTabularFile(strings.NewReader("Product,Price\n"), "pricelist.csv"); err == nil {
		t.Error("expected error for a header-only file")
	}
}

func TestDetectHeaderRow(t *testing.T) {
	grid := [][]string{
		{"ACME Trading (Pty) Ltd", "", "", ""},
		{"Price list 2026", "", "", ""},
		{"", "", "", ""},
		{"SKU", "Product Name", "Unit", "Price"},
		{"600450", "Corex Board", "Each", "125.50"},
	}
	if got := detectHeaderRow(grid); got != 3 {
		t.Errorf("detectHeaderRow = %d, want 3", got)
	}
}

func TestDetectHeaderRowTieGoesToFirst(t *testing.T) {
	grid := [][]string{
		{"One", "Two"},
		{"Three", "Four"},
	}
	if got := detectHeaderRow(grid); got != 0 {
		t.Errorf("detectHeaderRow = %d, want 0 on tie", got)
	}
}

func TestDetectTenderHeaderRow(t *testing.T) {
	grid := [][]string{
		{"TENDER BOQ-2026-001", ""},
		{"Item", "Description", "Unit", "Qty"},
		{"1", "Supply corex boards", "Each", "20"},
	}
	if got := detectTenderHeaderRow(grid); got != 1 {
		t.Errorf("detectTenderHeaderRow = %d, want 1", got)
	}
}

func TestDetectTenderHeaderRowFallback(t *testing.T) {
	grid := [][]string{
		{"no", "hints"},
		{"here", "either"},
	}
	if got := detectTenderHeaderRow(grid); got != 0 {
		t.Errorf("detectTenderHeaderRow = %d, want fallback 0", got)
	}
}

func TestHeaderNames(t *testing.T) {
	got := headerNames([]string{"Price", "", "Price", "Unit (of measure)"})
	want := []string{"price", "column_2", "price_2", "unit of measure"}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("headerNames[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestRowsFromGridSkipsBlankRows(t *testing.T) {
	grid := [][]string{
		{"a", "b"},
		{"1", "2"},
		{"", ""},
		{"3", ""},
	}
	rows := rowsFromGrid(grid, 0)
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if rows[1]["a"] != "3" {
		t.Errorf("expected second row a=3, got %v", rows[1])
	}
}
