package services

import (
	"testing"
	"time"

	"brandquote/testhelpers"
)

func TestGetFiscalYear(t *testing.T) {
	tests := []struct {
		date string
		want string
	}{
		{"2026-01-15", "25-26"},
		{"2026-02-28", "25-26"},
		{"2026-03-01", "26-27"},
		{"2026-05-20", "26-27"},
		{"2026-12-31", "26-27"},
	}
	for _, tt := range tests {
		d, err := time.Parse("2006-01-02", tt.date)
		if err != nil {
			t.Fatalf("bad test date %s: %v", tt.date, err)
		}
		if got := GetFiscalYear(d); got != tt.want {
			t.Errorf("GetFiscalYear(%s) = %q, want %q", tt.date, got, tt.want)
		}
	}
}

func TestFormatDocNumber(t *testing.T) {
	got := formatDocNumber("Q", "CRG-01", "26-27", 3)
	want := "BRQ-Q-CRG-01-26-27-003"
	if got != want {
		t.Errorf("formatDocNumber = %q, want %q", got, want)
	}
}

func TestGenerateQuoteNumberSequence(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	project := testhelpers.CreateTestProject(t, app, "Store Rebrand")

	now, _ := time.Parse("2006-01-02", "2026-09-01")

	first, err := GenerateQuoteNumber(app, project.Id, now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first != "BRQ-Q-TP-01-26-27-001" {
		t.Errorf("unexpected first quote number: %q", first)
	}

	testhelpers.CreateTestQuote(t, app, project.Id, first)

	second, err := GenerateQuoteNumber(app, project.Id, now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if second != "BRQ-Q-TP-01-26-27-002" {
		t.Errorf("unexpected second quote number: %q", second)
	}
}

func TestGenerateInvoiceNumber(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	project := testhelpers.CreateTestProject(t, app, "Store Rebrand")

	now, _ := time.Parse("2006-01-02", "2026-09-01")

	number, err := GenerateInvoiceNumber(app, project.Id, now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if number != "BRQ-INV-TP-01-26-27-001" {
		t.Errorf("unexpected invoice number: %q", number)
	}
}

func TestGenerateQuoteNumberUnknownProject(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	if _, err := GenerateQuoteNumber(app, "missing", time.Now()); err == nil {
		t.Error("expected error for unknown project")
	}
}
