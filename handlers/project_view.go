package handlers

import (
	"fmt"
	"log"
	"net/http"
	"sort"

	"github.com/a-h/templ"
	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"quotestudio/services"
	"quotestudio/templates"
)

func HandleProjectView(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		projectID := e.Request.PathValue("id")
		data, err := buildProjectViewData(app, projectID)
		if err != nil {
			log.Printf("project_view: %v", err)
			return ErrorToast(e, http.StatusNotFound, "Project not found")
		}

		var component templ.Component
		if e.Request.Header.Get("HX-Request") == "true" {
			component = templates.ProjectViewContent(data)
		} else {
			component = templates.ProjectViewPage(data, GetHeaderData(e.Request))
		}
		return component.Render(e.Request.Context(), e.Response)
	}
}

// buildProjectViewData assembles everything the project page shows: room
// sections in saved order, the totals block and the statistics.
func buildProjectViewData(app *pocketbase.PocketBase, projectID string) (templates.ProjectViewData, error) {
	record, err := app.FindRecordById("projects", projectID)
	if err != nil {
		return templates.ProjectViewData{}, fmt.Errorf("project %s not found: %w", projectID, err)
	}

	items, itemRecords, err := loadProjectItems(app, projectID)
	if err != nil {
		return templates.ProjectViewData{}, err
	}

	gstPercent := record.GetFloat("gst_percent")
	discountPercent := record.GetFloat("discount_percent")

	roomTotals := services.RoomTotals(items)
	subtotal := services.Subtotal(roomTotals)
	tax := services.TaxAmount(subtotal, gstPercent)
	discount := services.DiscountAmount(subtotal, discountPercent)
	grandTotal := services.GrandTotal(subtotal, tax, discount)

	data := templates.ProjectViewData{
		ID:              record.Id,
		Name:            record.GetString("name"),
		ClientName:      record.GetString("client_name"),
		SiteAddress:     record.GetString("site_address"),
		ContactInfo:     record.GetString("contact_info"),
		ProjectType:     record.GetString("project_type"),
		GSTPercent:      gstPercent,
		DiscountPercent: discountPercent,
		Rooms:           buildRoomSections(app, projectID, items, itemRecords, roomTotals),
		Totals: templates.TotalsBlock{
			Subtotal:        services.FormatINR(subtotal),
			GSTPercent:      gstPercent,
			TaxAmount:       services.FormatINR(tax),
			DiscountPercent: discountPercent,
			DiscountAmount:  services.FormatINR(discount),
			GrandTotal:      services.FormatINR(grandTotal),
			AmountInWords:   services.AmountToWords(grandTotal),
		},
		Stats:      services.ProjectStatistics(items, roomTotals),
		UOMOptions: services.UOMOptions,
		GSTOptions: services.GSTOptions,
	}

	for uom, amount := range services.BreakdownByUOM(items) {
		count := 0
		for _, item := range items {
			itemUOM := item.UOM
			if itemUOM == "" {
				itemUOM = "Unknown"
			}
			if itemUOM == uom {
				count++
			}
		}
		data.UOMBreakdown = append(data.UOMBreakdown, templates.UOMBreakdownRow{
			UOM:    uom,
			Count:  count,
			Amount: services.FormatINR(amount),
		})
	}
	sort.Slice(data.UOMBreakdown, func(i, j int) bool {
		return data.UOMBreakdown[i].UOM < data.UOMBreakdown[j].UOM
	})

	data.RateCard = loadRateCardOptions(app)
	data.RoomTemplates = loadRoomTemplateOptions(app)

	return data, nil
}

// buildRoomSections groups the line items under their rooms, preserving the
// saved room order and appending name-only groups for items whose room has
// no record (legacy data).
func buildRoomSections(app *pocketbase.PocketBase, projectID string, items []services.LineItem, itemRecords []*core.Record, roomTotals map[string]float64) []templates.RoomSection {
	roomsCol, err := app.FindCollectionByNameOrId("rooms")
	if err != nil {
		return nil
	}
	roomRecords, err := app.FindRecordsByFilter(
		roomsCol,
		"project = {:projectId}",
		"sort_order,created",
		0, 0,
		map[string]any{"projectId": projectID},
	)
	if err != nil {
		roomRecords = nil
	}

	itemsByRoom := make(map[string][]templates.ItemRow)
	for i, item := range items {
		itemsByRoom[item.Room] = append(itemsByRoom[item.Room], templates.ItemRow{
			ID:       itemRecords[i].Id,
			ItemName: item.ItemName,
			UOM:      item.UOM,
			Length:   services.FormatQty(item.Length),
			Height:   services.FormatQty(item.Height),
			Quantity: services.FormatQty(item.Quantity),
			Rate:     services.FormatINR(item.Rate),
			Material: selectedMaterialName(item.Material),
			AddOns:   selectedAddOnSummary(item),
			Amount:   services.FormatINR(item.Amount),
		})
	}

	var sections []templates.RoomSection
	seen := make(map[string]bool)
	for _, room := range roomRecords {
		name := room.GetString("name")
		seen[name] = true
		sections = append(sections, templates.RoomSection{
			ID:    room.Id,
			Name:  name,
			Total: services.FormatINR(roomTotals[name]),
			Items: itemsByRoom[name],
		})
	}

	var orphanNames []string
	for name := range itemsByRoom {
		if !seen[name] {
			orphanNames = append(orphanNames, name)
		}
	}
	sort.Strings(orphanNames)
	for _, name := range orphanNames {
		sections = append(sections, templates.RoomSection{
			Name:  name,
			Total: services.FormatINR(roomTotals[name]),
			Items: itemsByRoom[name],
		})
	}

	return sections
}

func selectedMaterialName(material *services.MaterialSelection) string {
	if material == nil || material.Selected == "" {
		return "—"
	}
	return material.Selected
}

func selectedAddOnSummary(item services.LineItem) string {
	var names []string
	for name, addOn := range item.AddOns {
		if addOn.Selected {
			names = append(names, name)
		}
	}
	if len(names) == 0 {
		if item.LegacyAddOns != "" {
			return item.LegacyAddOns
		}
		return "—"
	}
	sort.Strings(names)
	out := names[0]
	for _, n := range names[1:] {
		out += ", " + n
	}
	return out
}

func loadRateCardOptions(app *pocketbase.PocketBase) []templates.RateCardOption {
	rateCardCol, err := app.FindCollectionByNameOrId("rate_card_items")
	if err != nil {
		return nil
	}
	records, err := app.FindRecordsByFilter(rateCardCol, "id != ''", "category,item", 0, 0, nil)
	if err != nil {
		return nil
	}

	var options []templates.RateCardOption
	for _, r := range records {
		options = append(options, templates.RateCardOption{
			ID:       r.Id,
			Category: r.GetString("category"),
			Item:     r.GetString("item"),
			UOM:      r.GetString("uom"),
			Rate:     services.FormatINR(r.GetFloat("rate")),
		})
	}
	return options
}

func loadRoomTemplateOptions(app *pocketbase.PocketBase) []templates.RoomTemplateOption {
	templatesCol, err := app.FindCollectionByNameOrId("room_templates")
	if err != nil {
		return nil
	}
	records, err := app.FindAllRecords(templatesCol)
	if err != nil {
		return nil
	}

	var options []templates.RoomTemplateOption
	for _, r := range records {
		var items []services.LineItem
		r.UnmarshalJSONField("items", &items)
		options = append(options, templates.RoomTemplateOption{
			ID:        r.Id,
			Name:      r.GetString("name"),
			ItemCount: len(items),
		})
	}
	return options
}
