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

// HandleTenderView returns the tender's full pricing state: every line
// matched against the current supplier catalog with suggested prices
// and aggregate totals. Matching and pricing are recomputed on every
// request. The state is cheap to derive and never cached.
func HandleTenderView(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		tenderID := e.Request.PathValue("id")
		tender, err := app.FindRecordById("tenders", tenderID)
		if err != nil {
			log.Printf("tender_view: not found %s: %v", tenderID, err)
			return e.String(http.StatusNotFound, "Tender not found")
		}

		state, err := buildTenderState(app, tenderID)
		if err != nil {
			log.Printf("tender_view: %v", err)
			return e.String(http.StatusInternalServerError, "Internal error")
		}

		return e.JSON(http.StatusOK, map[string]any{
			"id":     tender.Id,
			"title":  tender.GetString("title"),
			"state":  state,
			"totals": services.CalcTenderTotals(state.Lines),
		})
	}
}

// HandleTenderSettings updates the pricing mode and its parameters,
// then returns the recalculated state.
func HandleTenderSettings(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		tenderID := e.Request.PathValue("id")
		tender, err := app.FindRecordById("tenders", tenderID)
		if err != nil {
			log.Printf("tender_settings: not found %s: %v", tenderID, err)
			return e.String(http.StatusNotFound, "Tender not found")
		}

		if err := e.Request.ParseForm(); err != nil {
			log.Printf("tender_settings: could not parse form: %v", err)
			return e.String(http.StatusBadRequest, "Invalid form data")
		}

		if mode := e.Request.FormValue("pricing_mode"); mode != "" {
			if mode != string(services.PricingModeMargin) && mode != string(services.PricingModeTargetProfit) {
				return e.String(http.StatusBadRequest, "Unknown pricing mode")
			}
			tender.Set("pricing_mode", mode)
		}
		if v := e.Request.FormValue("target_margin_pct"); v != "" {
			pct := services.ParseMoney(v)
			if math.IsNaN(pct) {
				return e.String(http.StatusBadRequest, "Target margin must be a number")
			}
			tender.Set("target_margin_pct", pct)
		}
		if v := e.Request.FormValue("target_profit_amount"); v != "" {
			amount := services.ParseMoney(v)
			if math.IsNaN(amount) {
				return e.String(http.StatusBadRequest, "Target profit must be a number")
			}
			tender.Set("target_profit_amount", amount)
		}

		if err := app.Save(tender); err != nil {
			log.Printf("tender_settings: could not save %s: %v", tenderID, err)
			return e.String(http.StatusInternalServerError, "Internal error")
		}

		state, err := buildTenderState(app, tenderID)
		if err != nil {
			log.Printf("tender_settings: %v", err)
			return e.String(http.StatusInternalServerError, "Internal error")
		}

		return e.JSON(http.StatusOK, map[string]any{
			"state":  state,
			"totals": services.CalcTenderTotals(state.Lines),
		})
	}
}

// HandleTenderChooseOption records the user's supplier selection for
// one line. An empty source clears the override back to the cheapest
// match.
func HandleTenderChooseOption(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		itemID := e.Request.PathValue("itemId")
		item, err := app.FindRecordById("tender_items", itemID)
		if err != nil {
			log.Printf("tender_choose: item not found %s: %v", itemID, err)
			return e.String(http.StatusNotFound, "Line item not found")
		}

		if err := e.Request.ParseForm(); err != nil {
			return e.String(http.StatusBadRequest, "Invalid form data")
		}

		item.Set("chosen_source", strings.TrimSpace(e.Request.FormValue("source")))
		if err := app.Save(item); err != nil {
			log.Printf("tender_choose: could not save %s: %v", itemID, err)
			return e.String(http.StatusInternalServerError, "Internal error")
		}

		state, err := buildTenderState(app, item.GetString("tender"))
		if err != nil {
			log.Printf("tender_choose: %v", err)
			return e.String(http.StatusInternalServerError, "Internal error")
		}
		return e.JSON(http.StatusOK, map[string]any{
			"state":  state,
			"totals": services.CalcTenderTotals(state.Lines),
		})
	}
}

// HandleTenderCostOverride sets or clears a manual cost per unit on one
// line. Lines with no supplier match stay priceable this way.
func HandleTenderCostOverride(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		itemID := e.Request.PathValue("itemId")
		item, err := app.FindRecordById("tender_items", itemID)
		if err != nil {
			log.Printf("tender_cost: item not found %s: %v", itemID, err)
			return e.String(http.StatusNotFound, "Line item not found")
		}

		if err := e.Request.ParseForm(); err != nil {
			return e.String(http.StatusBadRequest, "Invalid form data")
		}

		raw := strings.TrimSpace(e.Request.FormValue("cost_per_unit"))
		if raw == "" {
			item.Set("cost_override", 0)
		} else {
			cost := services.ParseMoney(raw)
			if math.IsNaN(cost) || cost < 0 {
				return e.String(http.StatusBadRequest, "Cost must be a non-negative number")
			}
			item.Set("cost_override", cost)
		}

		if err := app.Save(item); err != nil {
			log.Printf("tender_cost: could not save %s: %v", itemID, err)
			return e.String(http.StatusInternalServerError, "Internal error")
		}

		state, err := buildTenderState(app, item.GetString("tender"))
		if err != nil {
			log.Printf("tender_cost: %v", err)
			return e.String(http.StatusInternalServerError, "Internal error")
		}
		return e.JSON(http.StatusOK, map[string]any{
			"state":  state,
			"totals": services.CalcTenderTotals(state.Lines),
		})
	}
}
