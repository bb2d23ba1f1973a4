package handlers

import (
	"log"
	"net/http"

	"github.com/a-h/templ"
	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"quotestudio/services"
	"quotestudio/templates"
)

func HandleProjectList(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		projectsCol, err := app.FindCollectionByNameOrId("projects")
		if err != nil {
			log.Printf("project_list: could not find projects collection: %v", err)
			return ErrorToast(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		records, err := app.FindAllRecords(projectsCol)
		if err != nil {
			log.Printf("project_list: could not query projects: %v", err)
			return ErrorToast(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		var items []templates.ProjectListItem
		for _, rec := range records {
			lineItems, _, err := loadProjectItems(app, rec.Id)
			if err != nil {
				log.Printf("project_list: %v", err)
				lineItems = nil
			}

			roomTotals := services.RoomTotals(lineItems)
			subtotal := services.Subtotal(roomTotals)
			tax := services.TaxAmount(subtotal, rec.GetFloat("gst_percent"))
			discount := services.DiscountAmount(subtotal, rec.GetFloat("discount_percent"))
			grandTotal := services.GrandTotal(subtotal, tax, discount)

			createdDate := "—"
			if dt := rec.GetDateTime("created"); !dt.IsZero() {
				createdDate = dt.Time().Format("02 Jan 2006")
			}

			items = append(items, templates.ProjectListItem{
				ID:          rec.Id,
				Name:        rec.GetString("name"),
				ClientName:  rec.GetString("client_name"),
				ProjectType: rec.GetString("project_type"),
				RoomCount:   len(roomTotals),
				ItemCount:   len(lineItems),
				GrandTotal:  services.FormatINR(grandTotal),
				CreatedDate: createdDate,
			})
		}

		data := templates.ProjectListData{
			Items:      items,
			TotalCount: len(records),
		}

		var component templ.Component
		if e.Request.Header.Get("HX-Request") == "true" {
			component = templates.ProjectListContent(data)
		} else {
			component = templates.ProjectListPage(data, GetHeaderData(e.Request))
		}
		return component.Render(e.Request.Context(), e.Response)
	}
}
