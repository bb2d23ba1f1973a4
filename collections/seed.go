package collections

import (
	"encoding/json"
	"fmt"
	"log"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"quotestudio/services"
)

// ── Definition structs ───────────────────────────────────────────────────

type roomDef struct {
	name        string
	floorLength float64
	floorWidth  float64
	items       []itemDef
}

type itemDef struct {
	itemName string
	uom      string
	length   float64
	height   float64
	quantity float64
	rate     float64
	rateCard string // rate card item name to extract materials/add-ons from
	material string // selected material, if any
	addOns   []string
}

// defaultRateCardItems is the catalog a fresh install starts with.
var defaultRateCardItems = []services.RateCardItem{
	{Category: "Wall Work", Item: "POP Wall", UOM: "SFT", Rate: 150, MaterialOptions: "Standard, Premium", AddOns: "None"},
	{Category: "Wall Work", Item: "Wall Painting", UOM: "SFT", Rate: 80, MaterialOptions: "Regular, Texture", AddOns: "None"},
	{Category: "Furniture", Item: "TV Unit", UOM: "SFT", Rate: 1200, MaterialOptions: "Laminate, Veneer, PU", AddOns: "Lights, Profile Door"},
	{Category: "Furniture", Item: "Wardrobe", UOM: "SFT", Rate: 1500, MaterialOptions: "Laminate, Veneer, PU", AddOns: "Lights, Profile Door"},
	{Category: "Furniture", Item: "Kitchen", UOM: "SFT", Rate: 2200, MaterialOptions: "Laminate, Acrylic, PU", AddOns: "Lights, Profile Door"},
	{Category: "Decorative", Item: "False Ceiling", UOM: "SFT", Rate: 220, MaterialOptions: "Regular, Cove", AddOns: "Lights"},
	{Category: "Decorative", Item: "Curtains", UOM: "SFT", Rate: 180, MaterialOptions: "Regular, Blackout", AddOns: "None"},
}

// Seed populates the rate card with the default catalog and inserts one
// demo project. Safe to call on every startup: the rate card part runs only
// when rate_card_items is empty, the demo part only when projects is empty.
func Seed(app *pocketbase.PocketBase) error {
	if err := seedRateCard(app); err != nil {
		return err
	}
	return seedDemoProject(app)
}

func seedRateCard(app *pocketbase.PocketBase) error {
	rateCardCol, err := app.FindCollectionByNameOrId("rate_card_items")
	if err != nil {
		return fmt.Errorf("seed: could not find rate_card_items collection: %w", err)
	}
	existing, err := app.FindAllRecords(rateCardCol)
	if err != nil {
		return fmt.Errorf("seed: could not query rate_card_items: %w", err)
	}
	if len(existing) > 0 {
		return nil // already seeded
	}

	log.Println("seed: rate card is empty – inserting default catalog …")

	for _, item := range defaultRateCardItems {
		r := core.NewRecord(rateCardCol)
		r.Set("category", item.Category)
		r.Set("item", item.Item)
		r.Set("uom", item.UOM)
		r.Set("rate", item.Rate)
		r.Set("material_options", item.MaterialOptions)
		r.Set("material_prices", item.MaterialPrices)
		r.Set("add_ons", item.AddOns)
		r.Set("addon_prices", item.AddonPrices)
		if err := app.Save(r); err != nil {
			return fmt.Errorf("seed: save rate card item %q: %w", item.Item, err)
		}
	}
	return nil
}

func seedDemoProject(app *pocketbase.PocketBase) error {
	projectsCol, err := app.FindCollectionByNameOrId("projects")
	if err != nil {
		return fmt.Errorf("seed: could not find projects collection: %w", err)
	}
	existing, err := app.FindAllRecords(projectsCol)
	if err != nil {
		return fmt.Errorf("seed: could not query projects: %w", err)
	}
	if len(existing) > 0 {
		return nil // already seeded
	}

	log.Println("seed: projects collection is empty – inserting demo project …")

	roomsCol, err := app.FindCollectionByNameOrId("rooms")
	if err != nil {
		return fmt.Errorf("seed: could not find rooms collection: %w", err)
	}
	itemsCol, err := app.FindCollectionByNameOrId("line_items")
	if err != nil {
		return fmt.Errorf("seed: could not find line_items collection: %w", err)
	}

	catalog := make(map[string]services.RateCardItem)
	for _, rc := range defaultRateCardItems {
		catalog[rc.Item] = rc
	}

	project := core.NewRecord(projectsCol)
	project.Set("name", "3BHK Apartment — Whitefield")
	project.Set("client_name", "Ananya Deshpande")
	project.Set("site_address", "Tower B-1204, Prestige Lakeview, Whitefield, Bangalore 560066")
	project.Set("contact_info", "+91 98450 12345")
	project.Set("project_type", "Residential")
	project.Set("gst_percent", 18)
	project.Set("discount_percent", 5)
	if err := app.Save(project); err != nil {
		return fmt.Errorf("seed: save demo project: %w", err)
	}

	rooms := []roomDef{
		{
			name: "Living Room", floorLength: 18, floorWidth: 14,
			items: []itemDef{
				{itemName: "TV Unit", uom: "SFT", length: 8, height: 6, quantity: 1, rate: 1200, rateCard: "TV Unit", material: "Veneer", addOns: []string{"Lights"}},
				{itemName: "False Ceiling", uom: "SFT", length: 18, height: 14, quantity: 1, rate: 220, rateCard: "False Ceiling", material: "Cove", addOns: []string{"Lights"}},
				{itemName: "Wall Painting", uom: "SFT", length: 18, height: 10, quantity: 2, rate: 80, rateCard: "Wall Painting", material: "Texture"},
			},
		},
		{
			name: "Master Bedroom", floorLength: 14, floorWidth: 12,
			items: []itemDef{
				{itemName: "Wardrobe", uom: "SFT", length: 8, height: 7, quantity: 1, rate: 1500, rateCard: "Wardrobe", material: "PU", addOns: []string{"Profile Door"}},
				{itemName: "Curtains", uom: "SFT", length: 6, height: 8, quantity: 2, rate: 180, rateCard: "Curtains", material: "Blackout"},
			},
		},
		{
			name: "Kitchen", floorLength: 12, floorWidth: 10,
			items: []itemDef{
				{itemName: "Kitchen", uom: "SFT", length: 10, height: 7, quantity: 1, rate: 2200, rateCard: "Kitchen", material: "Acrylic", addOns: []string{"Lights", "Profile Door"}},
				{itemName: "POP Wall", uom: "SFT", length: 10, height: 9, quantity: 1, rate: 150, rateCard: "POP Wall"},
			},
		},
	}

	for roomIdx, rd := range rooms {
		room := core.NewRecord(roomsCol)
		room.Set("project", project.Id)
		room.Set("name", rd.name)
		room.Set("floor_length", rd.floorLength)
		room.Set("floor_width", rd.floorWidth)
		room.Set("sort_order", roomIdx+1)
		if err := app.Save(room); err != nil {
			return fmt.Errorf("seed: save room %q: %w", rd.name, err)
		}

		for itemIdx, d := range rd.items {
			item := services.LineItem{
				Room:     rd.name,
				ItemName: d.itemName,
				UOM:      d.uom,
				Length:   d.length,
				Height:   d.height,
				Quantity: d.quantity,
				Rate:     d.rate,
			}

			if rc, ok := catalog[d.rateCard]; ok {
				item.Category = rc.Category
				opts := services.ExtractMaterialOptions(rc)
				if len(opts.Options) > 0 {
					item.Material = &services.MaterialSelection{
						Options:        opts.Options,
						BaseMaterial:   opts.BaseMaterial,
						Selected:       d.material,
						PriceAdditions: opts.PriceAdditions,
					}
				}
				item.AddOns = services.ExtractAddOns(rc)
				for _, name := range d.addOns {
					if a, ok := item.AddOns[name]; ok {
						a.Selected = true
						item.AddOns[name] = a
					}
				}
			}
			item.Amount = services.ComputeItemAmount(item)

			r := core.NewRecord(itemsCol)
			r.Set("project", project.Id)
			r.Set("room", item.Room)
			r.Set("item_name", item.ItemName)
			r.Set("category", item.Category)
			r.Set("uom", item.UOM)
			r.Set("length", item.Length)
			r.Set("height", item.Height)
			r.Set("quantity", item.Quantity)
			r.Set("rate", item.Rate)
			r.Set("amount", item.Amount)
			r.Set("sort_order", itemIdx+1)
			if item.Material != nil {
				materialJSON, err := json.Marshal(item.Material)
				if err != nil {
					return fmt.Errorf("seed: marshal material for %q: %w", item.ItemName, err)
				}
				r.Set("material", string(materialJSON))
			}
			if len(item.AddOns) > 0 {
				addOnsJSON, err := json.Marshal(item.AddOns)
				if err != nil {
					return fmt.Errorf("seed: marshal add-ons for %q: %w", item.ItemName, err)
				}
				r.Set("add_ons", string(addOnsJSON))
			}
			if err := app.Save(r); err != nil {
				return fmt.Errorf("seed: save line item %q: %w", item.ItemName, err)
			}
		}
	}

	log.Println("seed: demo project inserted (3 rooms, 7 line items)")
	return nil
}
