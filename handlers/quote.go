package handlers

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"brandquote/services"
)

// HandleQuoteCreate creates a quote for a project. When a tender id is
// supplied, the tender's priced lines become the quote's line items so
// a won tender turns into a client quotation in one step.
func HandleQuoteCreate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		if err := e.Request.ParseForm(); err != nil {
			log.Printf("quote_create: could not parse form: %v", err)
			return e.String(http.StatusBadRequest, "Invalid form data")
		}

		projectID := strings.TrimSpace(e.Request.FormValue("project"))
		if projectID == "" {
			return e.String(http.StatusBadRequest, "Project is required")
		}

		number, err := services.GenerateQuoteNumber(app, projectID, time.Now())
		if err != nil {
			log.Printf("quote_create: %v", err)
			return e.String(http.StatusBadRequest, "Project not found")
		}

		col, err := app.FindCollectionByNameOrId("quotes")
		if err != nil {
			log.Printf("quote_create: could not find quotes collection: %v", err)
			return e.String(http.StatusInternalServerError, "Internal error")
		}

		quote := core.NewRecord(col)
		quote.Set("project", projectID)
		quote.Set("quote_number", number)
		quote.Set("status", "draft")
		quote.Set("date", time.Now().Format("2006-01-02"))
		quote.Set("valid_until", time.Now().AddDate(0, 1, 0).Format("2006-01-02"))
		quote.Set("notes", strings.TrimSpace(e.Request.FormValue("notes")))

		if err := app.Save(quote); err != nil {
			log.Printf("quote_create: could not save quote: %v", err)
			return e.String(http.StatusInternalServerError, "Internal error")
		}

		// Optional: populate line items from a priced tender.
		if tenderID := strings.TrimSpace(e.Request.FormValue("tender")); tenderID != "" {
			if err := copyTenderLinesToQuote(app, tenderID, quote.Id); err != nil {
				log.Printf("quote_create: could not copy tender lines: %v", err)
			}
		}

		return e.JSON(http.StatusOK, map[string]any{
			"id":          quote.Id,
			"quoteNumber": number,
		})
	}
}

// copyTenderLinesToQuote turns the tender's recalculated lines into
// quote items at their suggested prices.
func copyTenderLinesToQuote(app *pocketbase.PocketBase, tenderID, quoteID string) error {
	state, err := buildTenderState(app, tenderID)
	if err != nil {
		return err
	}

	col, err := app.FindCollectionByNameOrId("quote_items")
	if err != nil {
		return fmt.Errorf("quote_items collection not found: %w", err)
	}

	for i, line := range state.Lines {
		rec := core.NewRecord(col)
		rec.Set("quote", quoteID)
		rec.Set("sort_order", i+1)
		rec.Set("description", line.Description)
		rec.Set("qty", line.Qty)
		rec.Set("unit", line.Unit)
		rec.Set("unit_price", line.SuggestedUnitPrice)
		rec.Set("vat_percent", 15.0)
		if err := app.Save(rec); err != nil {
			return fmt.Errorf("failed to save quote item %d: %w", i+1, err)
		}
	}
	return nil
}

// HandleQuoteView returns a quote with its line items and totals.
func HandleQuoteView(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		quoteID := e.Request.PathValue("id")
		quote, err := app.FindRecordById("quotes", quoteID)
		if err != nil {
			log.Printf("quote_view: not found %s: %v", quoteID, err)
			return e.String(http.StatusNotFound, "Quote not found")
		}

		lines, totals := quoteLineCalcs(app, "quote_items", "quote", quoteID)
		return e.JSON(http.StatusOK, map[string]any{
			"id":          quote.Id,
			"quoteNumber": quote.GetString("quote_number"),
			"status":      quote.GetString("status"),
			"lines":       lines,
			"totals":      totals,
		})
	}
}

// quoteLineCalcs loads a document's line items and computes line and
// aggregate totals.
func quoteLineCalcs(app *pocketbase.PocketBase, collection, relField, docID string) ([]services.QuoteLineCalc, services.QuoteTotals) {
	items, err := app.FindRecordsByFilter(collection, relField+" = {:docId}", "sort_order", 0, 0, map[string]any{"docId": docID})
	if err != nil {
		items = nil
	}

	lines := make([]services.QuoteLineCalc, 0, len(items))
	for _, item := range items {
		lines = append(lines, services.CalcQuoteLine(
			item.GetFloat("unit_price"),
			item.GetFloat("qty"),
			item.GetFloat("vat_percent"),
		))
	}
	return lines, services.CalcQuoteTotals(lines)
}

// HandleQuotePDF downloads the quote as a PDF document.
func HandleQuotePDF(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		quoteID := e.Request.PathValue("id")
		data, err := buildDocExportData(app, "quotes", quoteID, "Quotation")
		if err != nil {
			log.Printf("quote_pdf: %v", err)
			return e.String(http.StatusNotFound, "Quote not found")
		}

		content, err := services.GenerateDocPDF(data)
		if err != nil {
			log.Printf("quote_pdf: %v", err)
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

// HandleQuoteEmail emails the quote PDF to the project's client.
func HandleQuoteEmail(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		quoteID := e.Request.PathValue("id")
		quote, err := app.FindRecordById("quotes", quoteID)
		if err != nil {
			log.Printf("quote_email: not found %s: %v", quoteID, err)
			return e.String(http.StatusNotFound, "Quote not found")
		}

		data, err := buildDocExportData(app, "quotes", quoteID, "Quotation")
		if err != nil {
			log.Printf("quote_email: %v", err)
			return e.String(http.StatusInternalServerError, "Internal error")
		}

		to := clientEmailForProject(app, quote.GetString("project"))
		if override := strings.TrimSpace(e.Request.FormValue("to")); override != "" {
			to = override
		}
		if to == "" {
			return e.String(http.StatusBadRequest, "No recipient email address")
		}

		cfg, err := services.SMTPConfigFromEnv()
		if err != nil {
			log.Printf("quote_email: %v", err)
			return e.String(http.StatusBadRequest, err.Error())
		}

		pdf, err := services.GenerateDocPDF(data)
		if err != nil {
			log.Printf("quote_email: %v", err)
			return e.String(http.StatusInternalServerError, "Failed to generate PDF")
		}

		subject := fmt.Sprintf("Quotation %s", data.Number)
		body := fmt.Sprintf("Please find attached quotation %s for %s.", data.Number, data.ProjectName)
		if err := services.SendDocEmail(cfg, to, subject, body, data.Number+".pdf", pdf); err != nil {
			log.Printf("quote_email: %v", err)
			return e.String(http.StatusInternalServerError, "Failed to send email")
		}

		quote.Set("status", "sent")
		if err := app.Save(quote); err != nil {
			log.Printf("quote_email: could not mark quote sent: %v", err)
		}

		return e.JSON(http.StatusOK, map[string]any{"sent": true, "to": to})
	}
}

// clientEmailForProject resolves the client email behind a project.
func clientEmailForProject(app *pocketbase.PocketBase, projectID string) string {
	project, err := app.FindRecordById("projects", projectID)
	if err != nil {
		return ""
	}
	client, err := app.FindRecordById("clients", project.GetString("client"))
	if err != nil {
		return ""
	}
	return client.GetString("email")
}

// buildDocExportData assembles the PDF payload for a quote or invoice.
func buildDocExportData(app *pocketbase.PocketBase, collection, docID, kind string) (services.DocExportData, error) {
	doc, err := app.FindRecordById(collection, docID)
	if err != nil {
		return services.DocExportData{}, fmt.Errorf("%s not found: %w", kind, err)
	}

	numberField := "quote_number"
	itemsCollection := "quote_items"
	relField := "quote"
	if collection == "invoices" {
		numberField = "invoice_number"
		itemsCollection = "invoice_items"
		relField = "invoice"
	}

	data := services.DocExportData{
		Kind:           kind,
		Number:         doc.GetString(numberField),
		CreatedDate:    doc.GetString("date"),
		ValidUntil:     doc.GetString("valid_until"),
		CompanyName:    envOr("COMPANY_NAME", "Brandquote Studio"),
		CompanyAddress: os.Getenv("COMPANY_ADDRESS"),
		CompanyEmail:   os.Getenv("COMPANY_EMAIL"),
		CompanyVATNo:   os.Getenv("COMPANY_VAT_NO"),
		Notes:          doc.GetString("notes"),
	}

	if project, err := app.FindRecordById("projects", doc.GetString("project")); err == nil {
		data.ProjectName = project.GetString("name")
		if client, err := app.FindRecordById("clients", project.GetString("client")); err == nil {
			data.ClientName = client.GetString("name")
			data.ClientContact = client.GetString("contact_person")
			data.ClientAddress = client.GetString("address")
			data.ClientVATNo = client.GetString("vat_number")
		}
	}

	items, err := app.FindRecordsByFilter(itemsCollection, relField+" = {:docId}", "sort_order", 0, 0, map[string]any{"docId": docID})
	if err != nil {
		items = nil
	}

	var calcs []services.QuoteLineCalc
	for i, item := range items {
		calc := services.CalcQuoteLine(
			item.GetFloat("unit_price"),
			item.GetFloat("qty"),
			item.GetFloat("vat_percent"),
		)
		calcs = append(calcs, calc)
		data.Rows = append(data.Rows, services.DocExportRow{
			Index:       i + 1,
			Description: item.GetString("description"),
			Qty:         calc.Qty,
			Unit:        item.GetString("unit"),
			UnitPrice:   calc.UnitPrice,
			VATPct:      calc.VATPct,
			BeforeVAT:   calc.BeforeVAT,
			Total:       calc.Total,
		})
	}

	totals := services.CalcQuoteTotals(calcs)
	data.TotalBeforeVAT = totals.TotalBeforeVAT
	data.VATAmount = totals.VATAmount
	data.GrandTotal = totals.GrandTotal
	return data, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
