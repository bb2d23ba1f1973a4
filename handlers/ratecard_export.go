package handlers

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"quotestudio/services"
)

// HandleRateCardExport downloads the full rate card as a workbook whose
// columns round-trip through the importer.
func HandleRateCardExport(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		records, err := app.FindRecordsByFilter(
			"rate_card_items",
			"id != ''",
			"category,item",
			0, 0,
			map[string]any{},
		)
		if err != nil {
			log.Printf("rate_card_export: could not query items: %v", err)
			return e.String(http.StatusInternalServerError, "Failed to load rate card")
		}

		items := make([]services.RateCardItem, len(records))
		for i, r := range records {
			items[i] = recordToRateCardItem(r)
		}

		xlsxBytes, err := services.GenerateRateCardExcel(items)
		if err != nil {
			log.Printf("rate_card_export: generate: %v", err)
			return e.String(http.StatusInternalServerError, "Failed to generate Excel file")
		}

		filename := fmt.Sprintf("RateCard_%s.xlsx", time.Now().Format("2006-01-02"))

		e.Response.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		e.Response.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
		e.Response.Write(xlsxBytes)
		return nil
	}
}
