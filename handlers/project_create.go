package handlers

import (
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"quotestudio/services"
	"quotestudio/templates"
)

// Defaults applied when a new project leaves the percentage fields blank.
const (
	DefaultGSTPercent      = 18
	DefaultDiscountPercent = 0
)

// HandleProjectNew renders the empty project form.
func HandleProjectNew(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		data := templates.ProjectFormData{
			ProjectType:     services.ProjectTypeOptions[0],
			ProjectTypes:    services.ProjectTypeOptions,
			GSTPercent:      DefaultGSTPercent,
			DiscountPercent: DefaultDiscountPercent,
		}
		component := templates.ProjectFormPage(data, GetHeaderData(e.Request))
		return component.Render(e.Request.Context(), e.Response)
	}
}

// HandleProjectCreate saves a new project and redirects to its page.
func HandleProjectCreate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		if err := e.Request.ParseForm(); err != nil {
			return ErrorToast(e, http.StatusBadRequest, "Invalid form data")
		}

		name := strings.TrimSpace(e.Request.FormValue("name"))
		if name == "" {
			return ErrorToast(e, http.StatusBadRequest, "Project name is required")
		}

		existing, _ := app.FindRecordsByFilter(
			"projects",
			"name = {:name}",
			"", 1, 0,
			map[string]any{"name": name},
		)
		if len(existing) > 0 {
			return ErrorToast(e, http.StatusConflict, "A project with this name already exists")
		}

		projectsCol, err := app.FindCollectionByNameOrId("projects")
		if err != nil {
			log.Printf("project_create: could not find projects collection: %v", err)
			return ErrorToast(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		record := core.NewRecord(projectsCol)
		applyProjectForm(record, e)

		if err := app.Save(record); err != nil {
			log.Printf("project_create: could not save project: %v", err)
			return ErrorToast(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		SetToast(e, "success", "Project created")
		return redirectTo(e, "/projects/"+record.Id)
	}
}

// applyProjectForm copies the project form fields onto a record, applying
// the percentage defaults when the fields are blank.
func applyProjectForm(record *core.Record, e *core.RequestEvent) {
	record.Set("name", strings.TrimSpace(e.Request.FormValue("name")))
	record.Set("client_name", strings.TrimSpace(e.Request.FormValue("client_name")))
	record.Set("site_address", strings.TrimSpace(e.Request.FormValue("site_address")))
	record.Set("contact_info", strings.TrimSpace(e.Request.FormValue("contact_info")))

	projectType := e.Request.FormValue("project_type")
	valid := false
	for _, pt := range services.ProjectTypeOptions {
		if projectType == pt {
			valid = true
			break
		}
	}
	if !valid {
		projectType = services.ProjectTypeOptions[0]
	}
	record.Set("project_type", projectType)

	gst := DefaultGSTPercent * 1.0
	if raw := e.Request.FormValue("gst_percent"); raw != "" {
		if f, err := strconv.ParseFloat(raw, 64); err == nil {
			gst = f
		}
	}
	record.Set("gst_percent", gst)

	discount := DefaultDiscountPercent * 1.0
	if raw := e.Request.FormValue("discount_percent"); raw != "" {
		if f, err := strconv.ParseFloat(raw, 64); err == nil {
			discount = f
		}
	}
	record.Set("discount_percent", discount)
}

// redirectTo answers an HTMX request with HX-Redirect and a plain request
// with a 302.
func redirectTo(e *core.RequestEvent, url string) error {
	if e.Request.Header.Get("HX-Request") == "true" {
		e.Response.Header().Set("HX-Redirect", url)
		return e.String(http.StatusOK, "")
	}
	return e.Redirect(http.StatusFound, url)
}
