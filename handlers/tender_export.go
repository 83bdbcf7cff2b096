package handlers

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"brandquote/services"
)

// HandleTenderExportCSV downloads the priced tender as a CSV file.
func HandleTenderExportCSV(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		tenderID := e.Request.PathValue("id")
		tender, err := app.FindRecordById("tenders", tenderID)
		if err != nil {
			log.Printf("tender_export: not found %s: %v", tenderID, err)
			return e.String(http.StatusNotFound, "Tender not found")
		}

		state, err := buildTenderState(app, tenderID)
		if err != nil {
			log.Printf("tender_export: %v", err)
			return e.String(http.StatusInternalServerError, "Internal error")
		}

		content, err := services.GenerateTenderCSV(state)
		if err != nil {
			log.Printf("tender_export: %v", err)
			return e.String(http.StatusInternalServerError, "Failed to generate CSV")
		}

		filename := fmt.Sprintf("%s-pricing-%s.csv", tender.GetString("title"), time.Now().Format("2006-01-02"))
		e.Response.Header().Set("Content-Type", "text/csv")
		e.Response.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
		e.Response.WriteHeader(http.StatusOK)
		_, err = e.Response.Write(content)
		return err
	}
}
