package handlers

import (
	"log"
	"net/http"
	"strings"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"brandquote/services"
)

// HandleTenderCreate creates a tender shell that BOQ files can be
// uploaded into.
func HandleTenderCreate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		if err := e.Request.ParseForm(); err != nil {
			log.Printf("tender_create: could not parse form: %v", err)
			return e.String(http.StatusBadRequest, "Invalid form data")
		}

		title := strings.TrimSpace(e.Request.FormValue("title"))
		if title == "" {
			return e.String(http.StatusBadRequest, "Tender title is required")
		}

		existing, _ := app.FindRecordsByFilter("tenders", "title = {:title}", "", 1, 0, map[string]any{"title": title})
		if len(existing) > 0 {
			return e.String(http.StatusBadRequest, "A tender with this title already exists")
		}

		col, err := app.FindCollectionByNameOrId("tenders")
		if err != nil {
			log.Printf("tender_create: could not find tenders collection: %v", err)
			return e.String(http.StatusInternalServerError, "Internal error")
		}

		record := core.NewRecord(col)
		record.Set("title", title)
		record.Set("reference_number", strings.TrimSpace(e.Request.FormValue("reference_number")))
		record.Set("project", e.Request.FormValue("project"))
		record.Set("pricing_mode", string(services.PricingModeMargin))
		record.Set("target_margin_pct", 25.0)

		if err := app.Save(record); err != nil {
			log.Printf("tender_create: could not save tender: %v", err)
			return e.String(http.StatusInternalServerError, "Internal error")
		}

		return e.JSON(http.StatusOK, map[string]any{"id": record.Id})
	}
}

// HandleTenderUpload parses an uploaded BOQ file into tender line
// items, replacing any lines from a previous upload.
func HandleTenderUpload(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		tenderID := e.Request.PathValue("id")
		if _, err := app.FindRecordById("tenders", tenderID); err != nil {
			log.Printf("tender_upload: tender not found %s: %v", tenderID, err)
			return e.String(http.StatusNotFound, "Tender not found")
		}

		file, header, err := e.Request.FormFile("file")
		if err != nil {
			log.Printf("tender_upload: missing file: %v", err)
			return e.String(http.StatusBadRequest, "No file uploaded")
		}
		defer file.Close()

		lines, err := services.ParseTenderLines(file, header.Filename)
		if err != nil {
			log.Printf("tender_upload: %v", err)
			return e.JSON(http.StatusBadRequest, map[string]any{"error": err.Error()})
		}
		if len(lines) == 0 {
			return e.JSON(http.StatusBadRequest, map[string]any{
				"error": "no usable line items found: check that the file has a description column",
			})
		}

		// Replace previous lines wholesale.
		old, _ := app.FindRecordsByFilter("tender_items", "tender = {:tenderId}", "", 0, 0, map[string]any{"tenderId": tenderID})
		for _, rec := range old {
			if err := app.Delete(rec); err != nil {
				log.Printf("tender_upload: could not delete old line %s: %v", rec.Id, err)
			}
		}

		col, err := app.FindCollectionByNameOrId("tender_items")
		if err != nil {
			log.Printf("tender_upload: could not find tender_items collection: %v", err)
			return e.String(http.StatusInternalServerError, "Internal error")
		}

		for i, line := range lines {
			rec := core.NewRecord(col)
			rec.Set("tender", tenderID)
			rec.Set("line_no", line.LineNo)
			rec.Set("sort_order", i+1)
			rec.Set("description", line.Description)
			rec.Set("unit", line.Unit)
			rec.Set("qty", line.Qty)
			if err := app.Save(rec); err != nil {
				log.Printf("tender_upload: could not save line %d: %v", line.LineNo, err)
			}
		}

		log.Printf("tender_upload: tender %s loaded %d lines from %s", tenderID, len(lines), header.Filename)
		return e.JSON(http.StatusOK, map[string]any{"lines": len(lines)})
	}
}
