package handlers

import (
	"log"
	"net/http"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"brandquote/services"
)

// HandleSupplierImport accepts one or more uploaded price lists
// (multipart field "files"), parses them into supplier catalog rows and
// persists the valid ones. A failing file does not abort the rest; the
// response reports per-file errors alongside the import counts. The
// optional "mode" field selects "all" (default, keeps every competing
// offer) or "cheapest" (collapses duplicates to the lowest price).
func HandleSupplierImport(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		if err := e.Request.ParseMultipartForm(32 << 20); err != nil {
			log.Printf("supplier_import: could not parse multipart form: %v", err)
			return e.String(http.StatusBadRequest, "Invalid upload")
		}

		fileHeaders := e.Request.MultipartForm.File["files"]
		if len(fileHeaders) == 0 {
			return e.String(http.StatusBadRequest, "No files uploaded")
		}

		cheapestOnly := e.Request.FormValue("mode") == "cheapest"

		var files []services.ImportFile
		for _, fh := range fileHeaders {
			f, err := fh.Open()
			if err != nil {
				log.Printf("supplier_import: could not open %s: %v", fh.Filename, err)
				continue
			}
			defer f.Close()
			log.Printf("supplier_import: parsing %s (%s)", fh.Filename, humanize.Bytes(uint64(fh.Size)))
			files = append(files, services.ImportFile{Name: fh.Filename, Reader: f})
		}

		result, err := services.ImportSupplierRows(files, cheapestOnly)
		if err != nil {
			log.Printf("supplier_import: %v", err)
			return e.JSON(http.StatusBadRequest, map[string]any{
				"error": err.Error(),
			})
		}

		col, err := app.FindCollectionByNameOrId("supplier_items")
		if err != nil {
			log.Printf("supplier_import: could not find supplier_items collection: %v", err)
			return e.String(http.StatusInternalServerError, "Internal error")
		}

		batchID := uuid.NewString()
		saved := 0
		for _, row := range result.Rows {
			rec := core.NewRecord(col)
			rec.Set("supplier_name", row.SupplierName)
			rec.Set("sku", row.SKU)
			rec.Set("product_name", row.ProductName)
			rec.Set("unit", row.Unit)
			rec.Set("price", services.PriceString(row.Price))
			rec.Set("source_file", row.SourceFile)
			rec.Set("import_batch", batchID)
			if err := app.Save(rec); err != nil {
				log.Printf("supplier_import: could not save row %q: %v", row.ProductName, err)
				continue
			}
			saved++
		}

		log.Printf("supplier_import: batch %s saved %d of %d rows (%d skipped)",
			batchID, saved, result.TotalRows, result.Skipped)

		return e.JSON(http.StatusOK, map[string]any{
			"batchId":    batchID,
			"saved":      saved,
			"totalRows":  result.TotalRows,
			"skipped":    result.Skipped,
			"fileErrors": result.FileErrors,
		})
	}
}
