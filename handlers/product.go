package handlers

import (
	"log"
	"math"
	"net/http"
	"strings"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"brandquote/services"
)

// HandleProductList returns the product catalog with each product's
// current selling price.
func HandleProductList(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		records, err := app.FindRecordsByFilter("products", "id != ''", "name", 0, 0, nil)
		if err != nil {
			log.Printf("product_list: %v", err)
			return e.String(http.StatusInternalServerError, "Internal error")
		}

		items := make([]map[string]any, 0, len(records))
		for _, rec := range records {
			method := rec.GetString("pricing_method")
			price := productPrice(
				method,
				rec.GetFloat("unit_cost"),
				rec.GetFloat("markup_pct"),
				rec.GetFloat("revenue_share_pct"),
			)
			items = append(items, map[string]any{
				"id":              rec.Id,
				"name":            rec.GetString("name"),
				"category":        rec.GetString("category"),
				"unit":            rec.GetString("unit"),
				"pricingMethod":   method,
				"unitCost":        rec.GetFloat("unit_cost"),
				"markupPct":       rec.GetFloat("markup_pct"),
				"revenueSharePct": rec.GetFloat("revenue_share_pct"),
				"sellingPrice":    services.Round2(price),
			})
		}
		return e.JSON(http.StatusOK, map[string]any{"items": items})
	}
}

// HandleProductCreate adds a product with its pricing method.
func HandleProductCreate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		if err := e.Request.ParseForm(); err != nil {
			log.Printf("product_create: could not parse form: %v", err)
			return e.String(http.StatusBadRequest, "Invalid form data")
		}

		name := strings.TrimSpace(e.Request.FormValue("name"))
		if name == "" {
			return e.String(http.StatusBadRequest, "Product name is required")
		}

		method := e.Request.FormValue("pricing_method")
		if method != "cost_plus" && method != "revenue_share" {
			return e.String(http.StatusBadRequest, "Unknown pricing method")
		}

		unitCost := services.ParseMoney(e.Request.FormValue("unit_cost"))
		if math.IsNaN(unitCost) || unitCost < 0 {
			return e.String(http.StatusBadRequest, "Unit cost must be a non-negative number")
		}

		markupPct := 0.0
		revenueSharePct := 0.0
		if method == "cost_plus" {
			markupPct = services.ParseMoney(e.Request.FormValue("markup_pct"))
			if math.IsNaN(markupPct) || markupPct < 0 {
				return e.String(http.StatusBadRequest, "Markup must be a non-negative number")
			}
		} else {
			revenueSharePct = services.ParseMoney(e.Request.FormValue("revenue_share_pct"))
			if math.IsNaN(revenueSharePct) || revenueSharePct < 0 {
				return e.String(http.StatusBadRequest, "Revenue share must be a non-negative number")
			}
			if revenueSharePct >= 100 {
				return e.String(http.StatusBadRequest, "Revenue share must be below 100%")
			}
		}

		col, err := app.FindCollectionByNameOrId("products")
		if err != nil {
			log.Printf("product_create: could not find products collection: %v", err)
			return e.String(http.StatusInternalServerError, "Internal error")
		}

		rec := core.NewRecord(col)
		rec.Set("name", name)
		rec.Set("category", strings.TrimSpace(e.Request.FormValue("category")))
		rec.Set("unit", strings.TrimSpace(e.Request.FormValue("unit")))
		rec.Set("pricing_method", method)
		rec.Set("unit_cost", unitCost)
		rec.Set("markup_pct", markupPct)
		rec.Set("revenue_share_pct", revenueSharePct)

		if err := app.Save(rec); err != nil {
			log.Printf("product_create: could not save product: %v", err)
			return e.String(http.StatusInternalServerError, "Internal error")
		}

		return e.JSON(http.StatusOK, map[string]any{
			"id":           rec.Id,
			"sellingPrice": services.Round2(productPrice(method, unitCost, markupPct, revenueSharePct)),
		})
	}
}

// HandlePricePreview calculates a selling price without persisting
// anything, for interactive what-if checks.
func HandlePricePreview(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		if err := e.Request.ParseForm(); err != nil {
			return e.String(http.StatusBadRequest, "Invalid form data")
		}

		method := e.Request.FormValue("pricing_method")
		if method != "cost_plus" && method != "revenue_share" {
			return e.String(http.StatusBadRequest, "Unknown pricing method")
		}

		unitCost := services.ParseMoney(e.Request.FormValue("unit_cost"))
		pct := services.ParseMoney(e.Request.FormValue("pct"))
		if math.IsNaN(unitCost) || math.IsNaN(pct) {
			return e.String(http.StatusBadRequest, "Cost and percentage must be numbers")
		}

		price := services.Round2(productPrice(method, unitCost, pct, pct))
		return e.JSON(http.StatusOK, map[string]any{
			"sellingPrice": price,
			"formatted":    services.FormatRand(price),
		})
	}
}

func productPrice(method string, unitCost, markupPct, revenueSharePct float64) float64 {
	if method == "revenue_share" {
		return services.CalcRevenueSharePrice(unitCost, revenueSharePct)
	}
	return services.CalcCostPlusPrice(unitCost, markupPct)
}
