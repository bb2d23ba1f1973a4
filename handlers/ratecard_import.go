package handlers

import (
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"quotestudio/services"
	"quotestudio/templates"
)

// maxImportSize caps rate card uploads at 10 MB.
const maxImportSize = 10 << 20

// HandleRateCardImport parses an uploaded .xlsx or .csv file and inserts the
// valid rows. The response is an HTMX fragment summarizing the result, with
// every rejected row listed.
func HandleRateCardImport(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		if err := requireRateCardUnlocked(app, e); err != nil {
			return err
		}

		if err := e.Request.ParseMultipartForm(maxImportSize); err != nil {
			return ErrorToast(e, http.StatusBadRequest, "Could not read the uploaded file")
		}

		file, header, err := e.Request.FormFile("file")
		if err != nil {
			return ErrorToast(e, http.StatusBadRequest, "No file uploaded")
		}
		defer file.Close()

		result, err := services.ParseRateCardFile(file, header.Filename)
		if err != nil {
			log.Printf("rate_card_import: parse %s: %v", header.Filename, err)
			return ErrorToast(e, http.StatusBadRequest, "Could not parse the file. Use .xlsx or .csv with the rate card columns.")
		}

		col, err := app.FindCollectionByNameOrId("rate_card_items")
		if err != nil {
			log.Printf("rate_card_import: collection not found: %v", err)
			return ErrorToast(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		for _, item := range result.Items {
			record := core.NewRecord(col)
			record.Set("category", item.Category)
			record.Set("item", item.Item)
			record.Set("uom", item.UOM)
			record.Set("rate", item.Rate)
			record.Set("material_options", item.MaterialOptions)
			record.Set("material_prices", item.MaterialPrices)
			record.Set("add_ons", item.AddOns)
			record.Set("addon_prices", item.AddonPrices)
			if err := app.Save(record); err != nil {
				log.Printf("rate_card_import: could not save %q: %v", item.Item, err)
				result.ValidRows--
				result.ErrorRows++
				result.Errors = append(result.Errors, services.ImportError{
					Field:   "item",
					Message: "could not save " + item.Item,
				})
			}
		}

		data := templates.ImportResultData{
			FileName:  result.FileName,
			TotalRows: result.TotalRows,
			ValidRows: result.ValidRows,
			ErrorRows: result.ErrorRows,
		}
		for _, importErr := range result.Errors {
			data.Errors = append(data.Errors, templates.ImportErrorRow{
				Row:     importErr.Row,
				Field:   importErr.Field,
				Message: importErr.Message,
			})
		}

		if result.ValidRows > 0 {
			SetToast(e, "success", "Rate card imported")
		} else {
			SetToast(e, "warning", "No rows were imported")
		}
		return templates.ImportResultFragment(data).Render(e.Request.Context(), e.Response)
	}
}
