package handlers

import (
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

// HandleProjectSwitch sets the active-project cookie and sends the client
// to the project page.
func HandleProjectSwitch(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		projectID := e.Request.PathValue("id")
		record, err := app.FindRecordById("projects", projectID)
		if err != nil {
			log.Printf("project_switch: not found %s: %v", projectID, err)
			return ErrorToast(e, http.StatusNotFound, "Project not found")
		}

		http.SetCookie(e.Response, &http.Cookie{
			Name:     "active_project",
			Value:    record.Id,
			Path:     "/",
			MaxAge:   60 * 60 * 24 * 30,
			SameSite: http.SameSiteLaxMode,
		})

		SetToast(e, "info", "Switched to "+record.GetString("name"))
		return redirectTo(e, "/projects/"+record.Id)
	}
}
