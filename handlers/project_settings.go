package handlers

import (
	"log"
	"net/http"
	"strconv"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

// HandleProjectSettings saves the GST and discount percentages. Totals are
// derived on render, so nothing else needs recomputing here.
func HandleProjectSettings(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		projectID := e.Request.PathValue("id")
		record, err := app.FindRecordById("projects", projectID)
		if err != nil {
			log.Printf("project_settings: not found %s: %v", projectID, err)
			return ErrorToast(e, http.StatusNotFound, "Project not found")
		}

		if err := e.Request.ParseForm(); err != nil {
			return ErrorToast(e, http.StatusBadRequest, "Invalid form data")
		}

		if raw := e.Request.FormValue("gst_percent"); raw != "" {
			if f, err := strconv.ParseFloat(raw, 64); err == nil {
				record.Set("gst_percent", f)
			}
		}
		if raw := e.Request.FormValue("discount_percent"); raw != "" {
			if f, err := strconv.ParseFloat(raw, 64); err == nil {
				record.Set("discount_percent", f)
			}
		}

		if err := app.Save(record); err != nil {
			log.Printf("project_settings: could not save %s: %v", projectID, err)
			return ErrorToast(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		SetToast(e, "success", "Settings saved")
		return redirectTo(e, "/projects/"+projectID)
	}
}
