package handlers

import (
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"brandquote/services"
)

// HandleInvoiceCreate creates an invoice for a project. When a quote id
// is supplied the quote's line items are copied over so an accepted
// quote becomes an invoice without retyping.
func HandleInvoiceCreate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		if err := e.Request.ParseForm(); err != nil {
			log.Printf("invoice_create: could not parse form: %v", err)
			return e.String(http.StatusBadRequest, "Invalid form data")
		}

		projectID := strings.TrimSpace(e.Request.FormValue("project"))
		if projectID == "" {
			return e.String(http.StatusBadRequest, "Project is required")
		}

		number, err := services.GenerateInvoiceNumber(app, projectID, time.Now())
		if err != nil {
			log.Printf("invoice_create: %v", err)
			return e.String(http.StatusBadRequest, "Project not found")
		}

		col, err := app.FindCollectionByNameOrId("invoices")
		if err != nil {
			log.Printf("invoice_create: could not find invoices collection: %v", err)
			return e.String(http.StatusInternalServerError, "Internal error")
		}

		invoice := core.NewRecord(col)
		invoice.Set("project", projectID)
		invoice.Set("invoice_number", number)
		invoice.Set("status", "draft")
		invoice.Set("date", time.Now().Format("2006-01-02"))
		invoice.Set("due_date", time.Now().AddDate(0, 0, 30).Format("2006-01-02"))
		invoice.Set("notes", strings.TrimSpace(e.Request.FormValue("notes")))

		if err := app.Save(invoice); err != nil {
			log.Printf("invoice_create: could not save invoice: %v", err)
			return e.String(http.StatusInternalServerError, "Internal error")
		}

		if quoteID := strings.TrimSpace(e.Request.FormValue("quote")); quoteID != "" {
			invoice.Set("quote", quoteID)
			if err := app.Save(invoice); err != nil {
				log.Printf("invoice_create: could not link quote: %v", err)
			}
			if err := copyQuoteLinesToInvoice(app, quoteID, invoice.Id); err != nil {
				log.Printf("invoice_create: could not copy quote lines: %v", err)
			}
		}

		return e.JSON(http.StatusOK, map[string]any{
			"id":            invoice.Id,
			"invoiceNumber": number,
		})
	}
}

func copyQuoteLinesToInvoice(app *pocketbase.PocketBase, quoteID, invoiceID string) error {
	items, err := app.FindRecordsByFilter("quote_items", "quote = {:quoteId}", "sort_order", 0, 0, map[string]any{"quoteId": quoteID})
	if err != nil {
		return fmt.Errorf("could not load quote items: %w", err)
	}

	col, err := app.FindCollectionByNameOrId("invoice_items")
	if err != nil {
		return fmt.Errorf("invoice_items collection not found: %w", err)
	}

	for i, item := range items {
		rec := core.NewRecord(col)
		rec.Set("invoice", invoiceID)
		rec.Set("sort_order", i+1)
		rec.Set("description", item.GetString("description"))
		rec.Set("qty", item.GetFloat("qty"))
		rec.Set("unit", item.GetString("unit"))
		rec.Set("unit_price", item.GetFloat("unit_price"))
		rec.Set("vat_percent", item.GetFloat("vat_percent"))
		if err := app.Save(rec); err != nil {
			return fmt.Errorf("failed to save invoice item %d: %w", i+1, err)
		}
	}
	return nil
}

// HandleInvoiceView returns an invoice with its line items and totals.
func HandleInvoiceView(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		invoiceID := e.Request.PathValue("id")
		invoice, err := app.FindRecordById("invoices", invoiceID)
		if err != nil {
			log.Printf("invoice_view: not found %s: %v", invoiceID, err)
			return e.String(http.StatusNotFound, "Invoice not found")
		}

		lines, totals := quoteLineCalcs(app, "invoice_items", "invoice", invoiceID)
		return e.JSON(http.StatusOK, map[string]any{
			"id":            invoice.Id,
			"invoiceNumber": invoice.GetString("invoice_number"),
			"status":        invoice.GetString("status"),
			"lines":         lines,
			"totals":        totals,
		})
	}
}

// HandleInvoicePDF downloads the invoice as a PDF document.
func HandleInvoicePDF(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		invoiceID := e.Request.PathValue("id")
		data, err := buildDocExportData(app, "invoices", invoiceID, "Tax Invoice")
		if err != nil {
			log.Printf("invoice_pdf: %v", err)
			return e.String(http.StatusNotFound, "Invoice not found")
		}

		content, err := services.GenerateDocPDF(data)
		if err != nil {
			log.Printf("invoice_pdf: %v", err)
			return e.String(http.StatusInternalServerError, "Failed to generate PDF")
		}

		filename := fmt.Sprintf("%s.pdf", data.Number)
		e.Response.Header().Set("Content-Type", "application/pdf")
		e.Response.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
		e.Response.WriteHeader(http.StatusOK)
		_, err = e.Response.Write(content)
		return err
	}
}

// HandleInvoiceMarkPaid flips an invoice to paid.
func HandleInvoiceMarkPaid(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		invoiceID := e.Request.PathValue("id")
		invoice, err := app.FindRecordById("invoices", invoiceID)
		if err != nil {
			log.Printf("invoice_paid: not found %s: %v", invoiceID, err)
			return e.String(http.StatusNotFound, "Invoice not found")
		}

		invoice.Set("status", "paid")
		if err := app.Save(invoice); err != nil {
			log.Printf("invoice_paid: could not save %s: %v", invoiceID, err)
			return e.String(http.StatusInternalServerError, "Internal error")
		}

		return e.JSON(http.StatusOK, map[string]any{"id": invoice.Id, "status": "paid"})
	}
}
