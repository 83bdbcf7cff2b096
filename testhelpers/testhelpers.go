// Package testhelpers provides utilities for testing PocketBase-based applications.
package testhelpers

import (
	"testing"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"brandquote/collections"
)

// NewTestApp creates a PocketBase instance backed by a temporary directory.
// It bootstraps the app and runs collections.Setup to create all tables.
// The temporary directory is cleaned up automatically when the test finishes.
func NewTestApp(t *testing.T) *pocketbase.PocketBase {
	t.Helper()

	tmpDir := t.TempDir()
	app := pocketbase.NewWithConfig(pocketbase.Config{
		DefaultDataDir: tmpDir,
	})

	if err := app.Bootstrap(); err != nil {
		t.Fatalf("failed to bootstrap test app: %v", err)
	}

	collections.Setup(app)

	return app
}

// CreateTestClient creates a client record with the given name and returns it.
func CreateTestClient(t *testing.T, app *pocketbase.PocketBase, name string) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("clients")
	if err != nil {
		t.Fatalf("failed to find clients collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("name", name)
	record.Set("contact_person", "Test Contact")
	record.Set("email", "client@test.example")
	record.Set("vat_number", "4550123456")

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test client: %v", err)
	}

	return record
}

// CreateTestProject creates a project record with the given name and returns it.
func CreateTestProject(t *testing.T, app *pocketbase.PocketBase, name string) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("projects")
	if err != nil {
		t.Fatalf("failed to find projects collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("name", name)
	record.Set("reference_number", "TP-01")
	record.Set("status", "active")
	record.Set("budget", 100000.0)

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test project: %v", err)
	}

	return record
}

// CreateTestSupplierItem creates a supplier catalog row and returns it.
// The price is stored as a numeric string, matching the schema.
func CreateTestSupplierItem(t *testing.T, app *pocketbase.PocketBase, supplier, sku, productName, price string) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("supplier_items")
	if err != nil {
		t.Fatalf("failed to find supplier_items collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("supplier_name", supplier)
	record.Set("sku", sku)
	record.Set("product_name", productName)
	record.Set("unit", "Each")
	record.Set("price", price)

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test supplier item: %v", err)
	}

	return record
}

// CreateTestTender creates a tender record linked to a project.
func CreateTestTender(t *testing.T, app *pocketbase.PocketBase, projectID, title string) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("tenders")
	if err != nil {
		t.Fatalf("failed to find tenders collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("project", projectID)
	record.Set("title", title)
	record.Set("pricing_mode", "margin")
	record.Set("target_margin_pct", 25.0)

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test tender: %v", err)
	}

	return record
}

// CreateTestTenderItem creates a tender line item.
func CreateTestTenderItem(t *testing.T, app *pocketbase.PocketBase, tenderID string, lineNo int, description string, qty float64) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("tender_items")
	if err != nil {
		t.Fatalf("failed to find tender_items collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("tender", tenderID)
	record.Set("line_no", lineNo)
	record.Set("sort_order", lineNo)
	record.Set("description", description)
	record.Set("unit", "Each")
	record.Set("qty", qty)

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test tender item: %v", err)
	}

	return record
}

// CreateTestQuote creates a quote record linked to a project.
func CreateTestQuote(t *testing.T, app *pocketbase.PocketBase, projectID, quoteNumber string) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("quotes")
	if err != nil {
		t.Fatalf("failed to find quotes collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("project", projectID)
	record.Set("quote_number", quoteNumber)
	record.Set("status", "draft")
	record.Set("date", "2026-09-01")

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test quote: %v", err)
	}

	return record
}

// CreateTestQuoteItem creates a quote line item.
func CreateTestQuoteItem(t *testing.T, app *pocketbase.PocketBase, quoteID string, sortOrder int, description string, qty, unitPrice, vatPercent float64) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("quote_items")
	if err != nil {
		t.Fatalf("failed to find quote_items collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("quote", quoteID)
	record.Set("sort_order", sortOrder)
	record.Set("description", description)
	record.Set("qty", qty)
	record.Set("unit", "Each")
	record.Set("unit_price", unitPrice)
	record.Set("vat_percent", vatPercent)

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test quote item: %v", err)
	}

	return record
}

// CreateTestExpense creates an expense record linked to a project.
func CreateTestExpense(t *testing.T, app *pocketbase.PocketBase, projectID, description string, amount float64) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("expenses")
	if err != nil {
		t.Fatalf("failed to find expenses collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("project", projectID)
	record.Set("description", description)
	record.Set("category", "Materials")
	record.Set("amount", amount)
	record.Set("date", "2026-09-01")

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test expense: %v", err)
	}

	return record
}
