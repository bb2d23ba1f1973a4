package handlers

import (
	"log"
	"net/http"
	"strings"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"quotestudio/services"
	"quotestudio/templates"
)

// HandleProjectEdit renders the form pre-filled with the project's fields.
func HandleProjectEdit(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		projectID := e.Request.PathValue("id")
		record, err := app.FindRecordById("projects", projectID)
		if err != nil {
			log.Printf("project_edit: not found %s: %v", projectID, err)
			return ErrorToast(e, http.StatusNotFound, "Project not found")
		}

		data := templates.ProjectFormData{
			ID:              record.Id,
			Name:            record.GetString("name"),
			ClientName:      record.GetString("client_name"),
			SiteAddress:     record.GetString("site_address"),
			ContactInfo:     record.GetString("contact_info"),
			ProjectType:     record.GetString("project_type"),
			ProjectTypes:    services.ProjectTypeOptions,
			GSTPercent:      record.GetFloat("gst_percent"),
			DiscountPercent: record.GetFloat("discount_percent"),
			IsEdit:          true,
		}
		component := templates.ProjectFormPage(data, GetHeaderData(e.Request))
		return component.Render(e.Request.Context(), e.Response)
	}
}

// HandleProjectUpdate saves edited project fields and redirects to the
// project page.
func HandleProjectUpdate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		projectID := e.Request.PathValue("id")
		record, err := app.FindRecordById("projects", projectID)
		if err != nil {
			log.Printf("project_update: not found %s: %v", projectID, err)
			return ErrorToast(e, http.StatusNotFound, "Project not found")
		}

		if err := e.Request.ParseForm(); err != nil {
			return ErrorToast(e, http.StatusBadRequest, "Invalid form data")
		}

		name := strings.TrimSpace(e.Request.FormValue("name"))
		if name == "" {
			return ErrorToast(e, http.StatusBadRequest, "Project name is required")
		}

		duplicate, _ := app.FindRecordsByFilter(
			"projects",
			"name = {:name} && id != {:id}",
			"", 1, 0,
			map[string]any{"name": name, "id": projectID},
		)
		if len(duplicate) > 0 {
			return ErrorToast(e, http.StatusConflict, "A project with this name already exists")
		}

		applyProjectForm(record, e)

		if err := app.Save(record); err != nil {
			log.Printf("project_update: could not save %s: %v", projectID, err)
			return ErrorToast(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		SetToast(e, "success", "Project updated")
		return redirectTo(e, "/projects/"+record.Id)
	}
}
