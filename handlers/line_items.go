package handlers

import (
	"fmt"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"quotestudio/services"
)

// recordToLineItem maps a line_items record onto the pricing engine's type.
func recordToLineItem(r *core.Record) services.LineItem {
	item := services.LineItem{
		Room:           r.GetString("room"),
		ItemName:       r.GetString("item_name"),
		Category:       r.GetString("category"),
		UOM:            r.GetString("uom"),
		CoreMaterial:   r.GetString("core_material"),
		FinishMaterial: r.GetString("finish_material"),
		Length:         r.GetFloat("length"),
		Height:         r.GetFloat("height"),
		Quantity:       r.GetFloat("quantity"),
		Rate:           r.GetFloat("rate"),
		LegacyAddOns:   r.GetString("legacy_add_ons"),
		Amount:         r.GetFloat("amount"),
	}
	r.UnmarshalJSONField("material", &item.Material)
	r.UnmarshalJSONField("add_ons", &item.AddOns)
	return item
}

// loadProjectItems fetches a project's line items in stable display order
// and returns them alongside their backing records.
func loadProjectItems(app *pocketbase.PocketBase, projectID string) ([]services.LineItem, []*core.Record, error) {
	itemsCol, err := app.FindCollectionByNameOrId("line_items")
	if err != nil {
		return nil, nil, fmt.Errorf("line_items collection not found: %w", err)
	}

	records, err := app.FindRecordsByFilter(
		itemsCol,
		"project = {:projectId}",
		"sort_order,created",
		0, 0,
		map[string]any{"projectId": projectID},
	)
	if err != nil {
		return nil, nil, fmt.Errorf("could not query line items: %w", err)
	}

	items := make([]services.LineItem, len(records))
	for i, r := range records {
		items[i] = recordToLineItem(r)
	}
	return items, records, nil
}

// recordToRateCardItem maps a rate_card_items record onto the catalog type.
func recordToRateCardItem(r *core.Record) services.RateCardItem {
	return services.RateCardItem{
		Category:        r.GetString("category"),
		Item:            r.GetString("item"),
		UOM:             r.GetString("uom"),
		Rate:            r.GetFloat("rate"),
		MaterialOptions: r.GetString("material_options"),
		MaterialPrices:  r.GetString("material_prices"),
		AddOns:          r.GetString("add_ons"),
		AddonPrices:     r.GetString("addon_prices"),
	}
}
