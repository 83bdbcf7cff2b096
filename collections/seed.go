package collections

import (
	"fmt"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

// ── Definition structs ───────────────────────────────────────────────────

type productDef struct {
	name          string
	category      string
	unit          string
	unitCost      float64
	pricingMethod string
	markupPct     float64
	revenuePct    float64
}

type supplierItemDef struct {
	supplierName string
	sku          string
	productName  string
	unit         string
	price        string
}

var seedProducts = []productDef{
	{"Corex board 600x450", "Signage", "Each", 85, "cost_plus", 60, 0},
	{"PVC banner 3x6m", "Large Format", "Each", 720, "cost_plus", 45, 0},
	{"Vinyl decal A3", "Vinyl", "Sheet", 28, "revenue_share", 0, 40},
	{"Chromadek sign 1200x900", "Signage", "Each", 640, "cost_plus", 55, 0},
	{"Vehicle wrap (sedan)", "Wraps", "Lump Sum", 8400, "revenue_share", 0, 35},
}

var seedSupplierItems = []supplierItemDef{
	{"PrintCo", "PC-100230", "Corex board 600x450 full colour", "Each", "79.50"},
	{"PrintCo", "PC-100541", "PVC banner 3x6m hemmed eyelets", "Each", "698"},
	{"SignSupply", "SS-88412", "Corex board 600 x 450", "Each", "82"},
	{"SignSupply", "SS-88973", "Chromadek panel 1200x900 printed", "Each", "615.40"},
	{"VinylWorks", "", "Vinyl decal A3 contour cut", "Sheet", "24.95"},
}

// Seed inserts first-run sample data when the database is empty: one
// client with an active project, a starter product catalog and a few
// supplier price rows so matching has something to hit.
func Seed(app *pocketbase.PocketBase) error {
	clientsCol, err := app.FindCollectionByNameOrId("clients")
	if err != nil {
		return fmt.Errorf("clients collection not found: %w", err)
	}

	existing, err := app.FindRecordsByFilter("clients", "id != ''", "", 1, 0, nil)
	if err == nil && len(existing) > 0 {
		return nil // already seeded
	}

	client := core.NewRecord(clientsCol)
	client.Set("name", "Cape Retail Group")
	client.Set("contact_person", "T. Naidoo")
	client.Set("email", "procurement@caperetail.example")
	client.Set("phone", "021 555 0199")
	client.Set("vat_number", "4550123456")
	if err := app.Save(client); err != nil {
		return fmt.Errorf("failed to seed client: %w", err)
	}

	projectsCol, err := app.FindCollectionByNameOrId("projects")
	if err != nil {
		return fmt.Errorf("projects collection not found: %w", err)
	}
	project := core.NewRecord(projectsCol)
	project.Set("client", client.Id)
	project.Set("name", "Store Rebrand Rollout")
	project.Set("reference_number", "CRG-01")
	project.Set("status", "active")
	project.Set("budget", 250000.0)
	if err := app.Save(project); err != nil {
		return fmt.Errorf("failed to seed project: %w", err)
	}

	productsCol, err := app.FindCollectionByNameOrId("products")
	if err != nil {
		return fmt.Errorf("products collection not found: %w", err)
	}
	for _, def := range seedProducts {
		rec := core.NewRecord(productsCol)
		rec.Set("name", def.name)
		rec.Set("category", def.category)
		rec.Set("unit", def.unit)
		rec.Set("unit_cost", def.unitCost)
		rec.Set("pricing_method", def.pricingMethod)
		rec.Set("markup_pct", def.markupPct)
		rec.Set("revenue_share_pct", def.revenuePct)
		if err := app.Save(rec); err != nil {
			return fmt.Errorf("failed to seed product %q: %w", def.name, err)
		}
	}

	supplierCol, err := app.FindCollectionByNameOrId("supplier_items")
	if err != nil {
		return fmt.Errorf("supplier_items collection not found: %w", err)
	}
	for _, def := range seedSupplierItems {
		rec := core.NewRecord(supplierCol)
		rec.Set("supplier_name", def.supplierName)
		rec.Set("sku", def.sku)
		rec.Set("product_name", def.productName)
		rec.Set("unit", def.unit)
		rec.Set("price", def.price)
		rec.Set("source_file", "seed")
		if err := app.Save(rec); err != nil {
			return fmt.Errorf("failed to seed supplier item %q: %w", def.productName, err)
		}
	}

	return nil
}
