package handlers

import (
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"brandquote/services"
)

// HandleFormOptions returns the dropdown lists the line-item and
// settings forms are built from.
func HandleFormOptions(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		return e.JSON(http.StatusOK, map[string]any{
			"units":             services.UnitOptions,
			"vatPercentages":    services.VATOptions,
			"expenseCategories": services.ExpenseCategories,
			"pricingModes":      services.PricingModeOptions,
		})
	}
}
