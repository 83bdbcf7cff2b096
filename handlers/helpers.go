package handlers

import (
	"fmt"
	"math"

	"github.com/pocketbase/pocketbase"

	"brandquote/services"
)

// loadCatalogEntries fetches the full supplier catalog in a stable
// order. Persisted prices are numeric strings; rows whose price no
// longer parses to a positive number are skipped rather than fed to the
// matcher.
func loadCatalogEntries(app *pocketbase.PocketBase) ([]services.CatalogEntry, error) {
	records, err := app.FindRecordsByFilter("supplier_items", "id != ''", "created", 0, 0, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to load supplier catalog: %w", err)
	}

	entries := make([]services.CatalogEntry, 0, len(records))
	for _, rec := range records {
		price := services.ParseMoney(rec.GetString("price"))
		if math.IsNaN(price) || price <= 0 {
			continue
		}
		entries = append(entries, services.CatalogEntry{
			SourceID:     rec.Id,
			SupplierName: rec.GetString("supplier_name"),
			SKU:          rec.GetString("sku"),
			ProductName:  rec.GetString("product_name"),
			Unit:         rec.GetString("unit"),
			Price:        price,
		})
	}
	return entries, nil
}

// buildTenderState assembles the full pricing state for a tender: its
// persisted lines matched against a freshly built catalog index, then
// recalculated. The index is always rebuilt here so a catalog edit can
// never leave a stale index behind.
func buildTenderState(app *pocketbase.PocketBase, tenderID string) (services.TenderState, error) {
	tender, err := app.FindRecordById("tenders", tenderID)
	if err != nil {
		return services.TenderState{}, fmt.Errorf("tender not found: %w", err)
	}

	items, err := app.FindRecordsByFilter("tender_items", "tender = {:tenderId}", "sort_order", 0, 0, map[string]any{"tenderId": tenderID})
	if err != nil {
		return services.TenderState{}, fmt.Errorf("failed to load tender items: %w", err)
	}

	lines := make([]services.TenderLine, 0, len(items))
	for _, item := range items {
		lines = append(lines, services.TenderLine{
			ID:             item.Id,
			LineNo:         int(item.GetFloat("line_no")),
			Description:    item.GetString("description"),
			Unit:           item.GetString("unit"),
			Qty:            item.GetFloat("qty"),
			ChosenSourceID: item.GetString("chosen_source"),
			CostPerUnit:    item.GetFloat("cost_override"),
		})
	}

	entries, err := loadCatalogEntries(app)
	if err != nil {
		return services.TenderState{}, err
	}
	idx := services.BuildMatchIndex(entries)

	state := services.TenderState{
		Lines:           services.MatchTenderLines(idx, lines),
		Mode:            services.PricingMode(tender.GetString("pricing_mode")),
		TargetMarginPct: tender.GetFloat("target_margin_pct"),
		TargetProfitAbs: tender.GetFloat("target_profit_amount"),
	}
	return services.Recalculate(state), nil
}
