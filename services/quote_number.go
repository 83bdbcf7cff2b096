package services

import (
	"fmt"
	"time"

	"github.com/pocketbase/pocketbase"
)

// GetFiscalYear returns the South African fiscal year string for a
// given date. The SA tax year runs March to February.
// Jan 2026 → "25-26", May 2026 → "26-27"
func GetFiscalYear(t time.Time) string {
	year := t.Year()
	month := t.Month()

	var startYear int
	if month >= time.March {
		startYear = year
	} else {
		startYear = year - 1
	}
	endYear := startYear + 1

	return fmt.Sprintf("%02d-%02d", startYear%100, endYear%100)
}

// formatDocNumber constructs a document number from components. "-" is
// the separator so reference numbers containing "/" stay unambiguous.
func formatDocNumber(kind, projectRef, fiscalYear string, sequence int) string {
	return fmt.Sprintf("BRQ-%s-%s-%s-%03d", kind, projectRef, fiscalYear, sequence)
}

// GenerateQuoteNumber creates the next quote number for a project.
// Format: BRQ-Q-{project_ref}-{fiscal_year}-{sequence}
func GenerateQuoteNumber(app *pocketbase.PocketBase, projectID string, now time.Time) (string, error) {
	return nextDocNumber(app, "quotes", "quote_number", "Q", projectID, now)
}

// GenerateInvoiceNumber creates the next invoice number for a project.
// Format: BRQ-INV-{project_ref}-{fiscal_year}-{sequence}
func GenerateInvoiceNumber(app *pocketbase.PocketBase, projectID string, now time.Time) (string, error) {
	return nextDocNumber(app, "invoices", "invoice_number", "INV", projectID, now)
}

// nextDocNumber counts existing documents for the project and fiscal
// year and returns the next number in sequence. The sequence is
// per project per fiscal year.
func nextDocNumber(app *pocketbase.PocketBase, collection, numberField, kind, projectID string, now time.Time) (string, error) {
	project, err := app.FindRecordById("projects", projectID)
	if err != nil {
		return "", fmt.Errorf("project not found: %w", err)
	}

	projectRef := project.GetString("reference_number")
	if projectRef == "" {
		projectRef = projectID
	}

	fiscalYear := GetFiscalYear(now)
	prefix := fmt.Sprintf("BRQ-%s-%s-%s-", kind, projectRef, fiscalYear)

	existing, err := app.FindRecordsByFilter(
		collection,
		fmt.Sprintf("project = {:projectId} && %s ~ {:prefix}", numberField),
		"",
		0,
		0,
		map[string]any{
			"projectId": projectID,
			"prefix":    prefix + "%",
		},
	)
	if err != nil {
		existing = nil
	}

	return formatDocNumber(kind, projectRef, fiscalYear, len(existing)+1), nil
}
