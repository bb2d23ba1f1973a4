package collections

import (
	"encoding/json"
	"fmt"
	"log"

	"github.com/pocketbase/pocketbase"

	"quotestudio/services"
)

// MigrateLegacyAddOns upgrades line items saved with the old comma-string
// add-on field to the structured map form. Only SFT items are touched: the
// legacy engine ignored the string under every other unit, so rewriting
// those rows could change their amount. Safe to call on every startup --
// returns early if nothing to migrate.
func MigrateLegacyAddOns(app *pocketbase.PocketBase) error {
	itemsCol, err := app.FindCollectionByNameOrId("line_items")
	if err != nil {
		return fmt.Errorf("migrate: could not find line_items collection: %w", err)
	}

	legacy, err := app.FindRecordsByFilter(
		itemsCol,
		"legacy_add_ons != '' && uom = 'SFT'",
		"",
		0,
		0,
		nil,
	)
	if err != nil {
		return fmt.Errorf("migrate: could not query legacy line items: %w", err)
	}

	if len(legacy) == 0 {
		return nil
	}

	log.Printf("migrate: found %d line item(s) with legacy add-on strings -- upgrading...\n", len(legacy))

	for _, record := range legacy {
		// A structured map already on the record wins; just drop the string.
		if record.GetString("add_ons") == "" {
			addOns := services.ConvertLegacyAddOns(record.GetString("legacy_add_ons"))
			if len(addOns) > 0 {
				addOnsJSON, err := json.Marshal(addOns)
				if err != nil {
					log.Printf("migrate: failed to marshal add-ons for item %s: %v\n", record.Id, err)
					continue
				}
				record.Set("add_ons", string(addOnsJSON))
			}
		}
		record.Set("legacy_add_ons", "")

		if err := app.Save(record); err != nil {
			log.Printf("migrate: failed to upgrade item %s: %v\n", record.Id, err)
			continue
		}
	}

	log.Println("migrate: legacy add-on migration complete.")
	return nil
}
