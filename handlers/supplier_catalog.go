package handlers

import (
	"fmt"
	"log"
	"math"
	"net/http"
	"strings"
	"time"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"brandquote/services"
)

// HandleSupplierList returns the supplier catalog, optionally filtered
// by a "q" search term against supplier name, SKU and product name.
func HandleSupplierList(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		entries, err := loadCatalogEntries(app)
		if err != nil {
			log.Printf("supplier_list: %v", err)
			return e.String(http.StatusInternalServerError, "Internal error")
		}

		if q := services.Canon(e.Request.URL.Query().Get("q")); q != "" {
			var filtered []services.CatalogEntry
			for _, entry := range entries {
				hay := services.Canon(entry.SupplierName + " " + entry.SKU + " " + entry.ProductName)
				if strings.Contains(hay, q) {
					filtered = append(filtered, entry)
				}
			}
			entries = filtered
		}

		return e.JSON(http.StatusOK, map[string]any{
			"items": entries,
			"count": len(entries),
		})
	}
}

// HandleSupplierUpdate edits one supplier catalog row. The price is
// re-validated the same way the importer validates it.
func HandleSupplierUpdate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		itemID := e.Request.PathValue("id")
		record, err := app.FindRecordById("supplier_items", itemID)
		if err != nil {
			log.Printf("supplier_update: not found %s: %v", itemID, err)
			return e.String(http.StatusNotFound, "Supplier item not found")
		}

		if err := e.Request.ParseForm(); err != nil {
			log.Printf("supplier_update: could not parse form: %v", err)
			return e.String(http.StatusBadRequest, "Invalid form data")
		}

		supplierName := strings.TrimSpace(e.Request.FormValue("supplier_name"))
		sku := strings.TrimSpace(e.Request.FormValue("sku"))
		productName := strings.TrimSpace(e.Request.FormValue("product_name"))
		priceRaw := e.Request.FormValue("price")

		if supplierName == "" {
			return e.String(http.StatusBadRequest, "Supplier name is required")
		}
		if sku == "" && productName == "" {
			return e.String(http.StatusBadRequest, "SKU or product name is required")
		}
		price := services.ParseMoney(priceRaw)
		if math.IsNaN(price) || price <= 0 {
			return e.String(http.StatusBadRequest, "Price must be a positive number")
		}

		record.Set("supplier_name", supplierName)
		record.Set("sku", sku)
		record.Set("product_name", productName)
		record.Set("unit", strings.TrimSpace(e.Request.FormValue("unit")))
		record.Set("price", services.PriceString(price))

		if err := app.Save(record); err != nil {
			log.Printf("supplier_update: could not save %s: %v", itemID, err)
			return e.String(http.StatusInternalServerError, "Internal error")
		}

		return e.JSON(http.StatusOK, map[string]any{"id": record.Id})
	}
}

// HandleSupplierDelete removes one supplier catalog row.
func HandleSupplierDelete(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		itemID := e.Request.PathValue("id")
		record, err := app.FindRecordById("supplier_items", itemID)
		if err != nil {
			log.Printf("supplier_delete: not found %s: %v", itemID, err)
			return e.String(http.StatusNotFound, "Supplier item not found")
		}

		if err := app.Delete(record); err != nil {
			log.Printf("supplier_delete: could not delete %s: %v", itemID, err)
			return e.String(http.StatusInternalServerError, "Internal error")
		}

		return e.NoContent(http.StatusNoContent)
	}
}

// HandleCatalogExport downloads the supplier catalog as an Excel
// workbook.
func HandleCatalogExport(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		entries, err := loadCatalogEntries(app)
		if err != nil {
			log.Printf("catalog_export: %v", err)
			return e.String(http.StatusInternalServerError, "Internal error")
		}

		rows := make([]services.SupplierRow, 0, len(entries))
		for _, entry := range entries {
			rows = append(rows, services.SupplierRow{
				SupplierName: entry.SupplierName,
				SKU:          entry.SKU,
				ProductName:  entry.ProductName,
				Unit:         entry.Unit,
				Price:        entry.Price,
			})
		}

		content, err := services.GenerateCatalogExcel(rows)
		if err != nil {
			log.Printf("catalog_export: %v", err)
			return e.String(http.StatusInternalServerError, "Failed to generate Excel file")
		}

		filename := fmt.Sprintf("supplier-catalog-%s.xlsx", time.Now().Format("2006-01-02"))
		e.Response.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		e.Response.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
		e.Response.WriteHeader(http.StatusOK)
		_, err = e.Response.Write(content)
		return err
	}
}
