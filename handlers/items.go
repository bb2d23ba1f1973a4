package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"quotestudio/services"
)

// HandleItemCreate adds a line item to a room, either from scratch or
// instantiated from a rate card entry. The stored amount is always computed
// by the pricing engine, never taken from the form.
func HandleItemCreate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		projectID := e.Request.PathValue("id")
		if _, err := app.FindRecordById("projects", projectID); err != nil {
			return ErrorToast(e, http.StatusNotFound, "Project not found")
		}

		if err := e.Request.ParseForm(); err != nil {
			return ErrorToast(e, http.StatusBadRequest, "Invalid form data")
		}

		room := strings.TrimSpace(e.Request.FormValue("room"))
		if room == "" {
			return ErrorToast(e, http.StatusBadRequest, "Room is required")
		}

		item := services.LineItem{
			Room:     room,
			ItemName: strings.TrimSpace(e.Request.FormValue("item_name")),
			Category: strings.TrimSpace(e.Request.FormValue("category")),
			UOM:      e.Request.FormValue("uom"),
			Length:   formFloat(e, "length"),
			Height:   formFloat(e, "height"),
			Quantity: formFloat(e, "quantity"),
			Rate:     formFloat(e, "rate"),
		}
		if item.Category == "Furniture" {
			item.CoreMaterial = strings.TrimSpace(e.Request.FormValue("core_material"))
			item.FinishMaterial = strings.TrimSpace(e.Request.FormValue("finish_material"))
		}

		// A rate card entry fills in whatever the form left blank and
		// contributes the material options and add-on set.
		if rateCardID := e.Request.FormValue("rate_card_id"); rateCardID != "" {
			rcRecord, err := app.FindRecordById("rate_card_items", rateCardID)
			if err != nil {
				log.Printf("item_create: rate card item %s not found: %v", rateCardID, err)
				return ErrorToast(e, http.StatusNotFound, "Rate card entry not found")
			}
			rc := recordToRateCardItem(rcRecord)

			if item.ItemName == "" {
				item.ItemName = rc.Item
			}
			if item.Category == "" {
				item.Category = rc.Category
			}
			if e.Request.FormValue("uom") == "" || item.UOM == services.UOMOptions[0] {
				item.UOM = rc.UOM
			}
			if item.Rate == 0 {
				item.Rate = rc.Rate
			}

			opts := services.ExtractMaterialOptions(rc)
			if len(opts.Options) > 0 {
				item.Material = &services.MaterialSelection{
					Options:        opts.Options,
					BaseMaterial:   opts.BaseMaterial,
					Selected:       opts.BaseMaterial,
					PriceAdditions: opts.PriceAdditions,
				}
			}
			item.AddOns = services.ExtractAddOns(rc)
		}

		if item.ItemName == "" {
			return ErrorToast(e, http.StatusBadRequest, "Item name is required")
		}
		if item.Quantity == 0 {
			item.Quantity = 1
		}
		item.Amount = services.ComputeItemAmount(item)

		itemsCol, err := app.FindCollectionByNameOrId("line_items")
		if err != nil {
			log.Printf("item_create: could not find line_items collection: %v", err)
			return ErrorToast(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		record := core.NewRecord(itemsCol)
		record.Set("project", projectID)
		if err := setLineItemFields(record, item); err != nil {
			log.Printf("item_create: %v", err)
			return ErrorToast(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}
		if err := app.Save(record); err != nil {
			log.Printf("item_create: could not save item: %v", err)
			return ErrorToast(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		SetToast(e, "success", "Item added")
		return redirectTo(e, "/projects/"+projectID)
	}
}

// HandleItemPatch updates individual fields on a line item and recomputes
// the amount from the new state.
func HandleItemPatch(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		itemID := e.Request.PathValue("itemId")
		record, err := app.FindRecordById("line_items", itemID)
		if err != nil {
			return ErrorToast(e, http.StatusNotFound, "Item not found")
		}

		if err := e.Request.ParseForm(); err != nil {
			return ErrorToast(e, http.StatusBadRequest, "Invalid form data")
		}

		item := recordToLineItem(record)

		for key, values := range e.Request.Form {
			if len(values) == 0 {
				continue
			}
			val := values[0]
			switch key {
			case "item_name":
				item.ItemName = strings.TrimSpace(val)
			case "uom":
				item.UOM = val
			case "length":
				item.Length = services.ToFloat(val)
			case "height":
				item.Height = services.ToFloat(val)
			case "quantity":
				item.Quantity = services.ToFloat(val)
			case "rate":
				item.Rate = services.ToFloat(val)
			case "material_selected":
				if item.Material != nil {
					item.Material.Selected = val
				}
			case "selected_add_ons":
				// Multi-value field: every submitted name is toggled on,
				// everything else off.
				selected := make(map[string]bool, len(values))
				for _, name := range values {
					selected[name] = true
				}
				for name, addOn := range item.AddOns {
					addOn.Selected = selected[name]
					item.AddOns[name] = addOn
				}
			}
		}

		item.Amount = services.ComputeItemAmount(item)

		if err := setLineItemFields(record, item); err != nil {
			log.Printf("item_patch: %v", err)
			return ErrorToast(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}
		if err := app.Save(record); err != nil {
			log.Printf("item_patch: could not save %s: %v", itemID, err)
			return ErrorToast(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		SetToast(e, "info", "Item saved")
		e.Response.Header().Set("Content-Type", "application/json")
		return e.String(http.StatusOK, `{"amount": `+strconv.FormatFloat(item.Amount, 'f', 2, 64)+`}`)
	}
}

// HandleItemDelete removes a line item.
func HandleItemDelete(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		projectID := e.Request.PathValue("id")
		itemID := e.Request.PathValue("itemId")

		record, err := app.FindRecordById("line_items", itemID)
		if err != nil {
			log.Printf("item_delete: not found %s: %v", itemID, err)
			return ErrorToast(e, http.StatusNotFound, "Item not found")
		}

		if err := app.Delete(record); err != nil {
			log.Printf("item_delete: error deleting %s: %v", itemID, err)
			return ErrorToast(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		SetToast(e, "success", "Item deleted")
		return redirectTo(e, "/projects/"+projectID)
	}
}

// setLineItemFields writes a LineItem's attributes onto its record,
// serializing the structured fields.
func setLineItemFields(record *core.Record, item services.LineItem) error {
	record.Set("room", item.Room)
	record.Set("item_name", item.ItemName)
	record.Set("category", item.Category)
	record.Set("uom", item.UOM)
	record.Set("core_material", item.CoreMaterial)
	record.Set("finish_material", item.FinishMaterial)
	record.Set("length", item.Length)
	record.Set("height", item.Height)
	record.Set("quantity", item.Quantity)
	record.Set("rate", item.Rate)
	record.Set("legacy_add_ons", item.LegacyAddOns)
	record.Set("amount", item.Amount)

	if item.Material != nil {
		data, err := json.Marshal(item.Material)
		if err != nil {
			return err
		}
		record.Set("material", string(data))
	} else {
		record.Set("material", "")
	}

	if len(item.AddOns) > 0 {
		data, err := json.Marshal(item.AddOns)
		if err != nil {
			return err
		}
		record.Set("add_ons", string(data))
	} else {
		record.Set("add_ons", "")
	}

	return nil
}

// formFloat reads a form value as float64, treating blanks and garbage as 0.
func formFloat(e *core.RequestEvent, key string) float64 {
	return services.ToFloat(e.Request.FormValue(key))
}
