package handlers

import (
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"quotestudio/services"
)

// sanitizeFilename replaces characters that break Content-Disposition
// filenames or filesystem paths.
func sanitizeFilename(s string) string {
	s = strings.ReplaceAll(s, " ", "-")
	s = strings.ReplaceAll(s, "/", "-")
	s = strings.ReplaceAll(s, "\\", "-")
	s = strings.ReplaceAll(s, ":", "-")
	return s
}

// buildQuoteData loads a project and its items and assembles the export
// payload shared by the Excel and PDF exports.
func buildQuoteData(app *pocketbase.PocketBase, projectID string) (services.QuoteExportData, error) {
	project, err := app.FindRecordById("projects", projectID)
	if err != nil {
		return services.QuoteExportData{}, fmt.Errorf("project %s: %w", projectID, err)
	}

	items, _, err := loadProjectItems(app, projectID)
	if err != nil {
		return services.QuoteExportData{}, fmt.Errorf("items for %s: %w", projectID, err)
	}

	info := services.QuoteProjectInfo{
		Name:        project.GetString("name"),
		ClientName:  project.GetString("client_name"),
		SiteAddress: project.GetString("site_address"),
		ContactInfo: project.GetString("contact_info"),
		ProjectType: project.GetString("project_type"),
		Date:        time.Now().Format("02 Jan 2006"),
	}

	return services.BuildQuoteExportData(
		info,
		items,
		project.GetFloat("gst_percent"),
		project.GetFloat("discount_percent"),
	), nil
}

// HandleQuoteExportExcel generates and downloads the quote workbook for a project.
func HandleQuoteExportExcel(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		projectID := e.Request.PathValue("id")
		if projectID == "" {
			return e.String(http.StatusBadRequest, "Project ID is required")
		}

		data, err := buildQuoteData(app, projectID)
		if err != nil {
			log.Printf("quote_export_excel: %v", err)
			return e.String(http.StatusNotFound, "Project not found")
		}

		xlsxBytes, err := services.GenerateQuoteExcel(data)
		if err != nil {
			log.Printf("quote_export_excel: generate: %v", err)
			return e.String(http.StatusInternalServerError, "Failed to generate Excel file")
		}

		filename := fmt.Sprintf("Quote_%s_%d.xlsx", sanitizeFilename(data.ProjectName), time.Now().Year())

		e.Response.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		e.Response.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
		e.Response.Write(xlsxBytes)
		return nil
	}
}

// HandleQuoteExportPDF generates and downloads the quote PDF for a project.
func HandleQuoteExportPDF(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		projectID := e.Request.PathValue("id")
		if projectID == "" {
			return e.String(http.StatusBadRequest, "Project ID is required")
		}

		data, err := buildQuoteData(app, projectID)
		if err != nil {
			log.Printf("quote_export_pdf: %v", err)
			return e.String(http.StatusNotFound, "Project not found")
		}

		pdfBytes, err := services.GenerateQuotePDF(data)
		if err != nil {
			log.Printf("quote_export_pdf: generate: %v", err)
			return e.String(http.StatusInternalServerError, "Failed to generate PDF file")
		}

		filename := fmt.Sprintf("Quote_%s_%d.pdf", sanitizeFilename(data.ProjectName), time.Now().Year())

		e.Response.Header().Set("Content-Type", "application/pdf")
		e.Response.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
		e.Response.Write(pdfBytes)
		return nil
	}
}
