package collections

import (
	"fmt"
	"log"

	"github.com/pocketbase/pocketbase"
)

// Default pricing settings applied to tenders created before the
// pricing_mode field existed.
const (
	defaultPricingMode  = "margin"
	defaultTargetMargin = 25.0
)

// MigrateTenderPricingDefaults backfills pricing_mode and
// target_margin_pct on tenders that predate those fields, so
// recalculation always has a usable policy.
func MigrateTenderPricingDefaults(app *pocketbase.PocketBase) error {
	tenders, err := app.FindRecordsByFilter("tenders", "pricing_mode = ''", "", 0, 0, nil)
	if err != nil {
		return fmt.Errorf("failed to query tenders: %w", err)
	}
	if len(tenders) == 0 {
		return nil
	}

	migrated := 0
	for _, t := range tenders {
		t.Set("pricing_mode", defaultPricingMode)
		if t.GetFloat("target_margin_pct") == 0 {
			t.Set("target_margin_pct", defaultTargetMargin)
		}
		if err := app.Save(t); err != nil {
			return fmt.Errorf("failed to migrate tender %s: %w", t.Id, err)
		}
		migrated++
	}

	log.Printf("Migrated pricing defaults on %d tender(s)", migrated)
	return nil
}
