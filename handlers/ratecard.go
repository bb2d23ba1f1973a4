package handlers

import (
	"log"
	"net/http"
	"sort"
	"strings"

	"github.com/a-h/templ"
	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"quotestudio/services"
	"quotestudio/templates"
)

// HandleRateCardPage renders the rate card manager. When a password has been
// set, editing stays locked until the unlock cookie is present.
func HandleRateCardPage(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		records, err := app.FindRecordsByFilter(
			"rate_card_items",
			"id != ''",
			"category,item",
			0, 0,
			map[string]any{},
		)
		if err != nil {
			log.Printf("rate_card_page: could not query items: %v", err)
			return ErrorToast(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		rows := make([]templates.RateCardRow, 0, len(records))
		categorySet := map[string]bool{}
		for _, r := range records {
			rows = append(rows, templates.RateCardRow{
				ID:              r.Id,
				Category:        r.GetString("category"),
				Item:            r.GetString("item"),
				UOM:             r.GetString("uom"),
				Rate:            services.FormatQty(r.GetFloat("rate")),
				MaterialOptions: r.GetString("material_options"),
				MaterialPrices:  r.GetString("material_prices"),
				AddOns:          r.GetString("add_ons"),
				AddonPrices:     r.GetString("addon_prices"),
			})
			if c := r.GetString("category"); c != "" {
				categorySet[c] = true
			}
		}
		categories := make([]string, 0, len(categorySet))
		for c := range categorySet {
			categories = append(categories, c)
		}
		sort.Strings(categories)

		data := templates.RateCardPageData{
			Rows:       rows,
			Categories: categories,
			UOMOptions: services.UOMOptions,
			Protected:  rateCardProtected(app),
			Unlocked:   rateCardUnlockedCookie(e.Request),
		}

		var component templ.Component
		if e.Request.Header.Get("HX-Request") == "true" {
			component = templates.RateCardContent(data)
		} else {
			component = templates.RateCardPage(data, GetHeaderData(e.Request))
		}
		return component.Render(e.Request.Context(), e.Response)
	}
}

// HandleRateCardCreate adds a catalog entry from the inline form.
func HandleRateCardCreate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		if err := requireRateCardUnlocked(app, e); err != nil {
			return err
		}

		if err := e.Request.ParseForm(); err != nil {
			return ErrorToast(e, http.StatusBadRequest, "Invalid form data")
		}

		item := strings.TrimSpace(e.Request.FormValue("item"))
		if item == "" {
			return ErrorToast(e, http.StatusBadRequest, "Item name is required")
		}
		uom := e.Request.FormValue("uom")
		if uom == "" {
			return ErrorToast(e, http.StatusBadRequest, "UOM is required")
		}

		col, err := app.FindCollectionByNameOrId("rate_card_items")
		if err != nil {
			log.Printf("rate_card_create: collection not found: %v", err)
			return ErrorToast(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		record := core.NewRecord(col)
		record.Set("category", strings.TrimSpace(e.Request.FormValue("category")))
		record.Set("item", item)
		record.Set("uom", uom)
		record.Set("rate", formFloat(e, "rate"))
		record.Set("material_options", strings.TrimSpace(e.Request.FormValue("material_options")))
		record.Set("material_prices", strings.TrimSpace(e.Request.FormValue("material_prices")))
		record.Set("add_ons", strings.TrimSpace(e.Request.FormValue("add_ons")))
		record.Set("addon_prices", strings.TrimSpace(e.Request.FormValue("addon_prices")))

		if err := app.Save(record); err != nil {
			log.Printf("rate_card_create: could not save: %v", err)
			return ErrorToast(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		SetToast(e, "success", "Rate card entry added")
		return redirectTo(e, "/rate-card")
	}
}

// HandleRateCardDelete removes a catalog entry. Existing line items keep
// their copied values, so deletions never touch quotes.
func HandleRateCardDelete(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		if err := requireRateCardUnlocked(app, e); err != nil {
			return err
		}

		record, err := app.FindRecordById("rate_card_items", e.Request.PathValue("itemId"))
		if err != nil {
			return ErrorToast(e, http.StatusNotFound, "Rate card entry not found")
		}

		if err := app.Delete(record); err != nil {
			log.Printf("rate_card_delete: %v", err)
			return ErrorToast(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		SetToast(e, "success", "Rate card entry deleted")
		return redirectTo(e, "/rate-card")
	}
}
