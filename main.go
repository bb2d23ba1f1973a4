package main

import (
	"log"
	"net/http"
	"os"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/apis"
	"github.com/pocketbase/pocketbase/core"

	"quotestudio/collections"
	"quotestudio/handlers"
)

func main() {
	app := pocketbase.New()

	// Create collections, seed the rate card and demo data, and upgrade
	// legacy add-on strings on startup.
	app.OnServe().BindFunc(func(se *core.ServeEvent) error {
		collections.Setup(app)
		if err := collections.Seed(app); err != nil {
			log.Printf("Warning: seed data failed: %v", err)
		}
		if err := collections.MigrateLegacyAddOns(app); err != nil {
			log.Printf("Warning: legacy add-on migration failed: %v", err)
		}
		return se.Next()
	})

	app.OnServe().BindFunc(func(se *core.ServeEvent) error {
		se.Router.GET("/static/{path...}", apis.Static(os.DirFS("./static"), false))

		se.Router.BindFunc(handlers.ActiveProjectMiddleware(app))

		// ── Project CRUD ─────────────────────────────────────────
		se.Router.GET("/projects", handlers.HandleProjectList(app))
		se.Router.GET("/projects/new", handlers.HandleProjectNew(app))
		se.Router.POST("/projects", handlers.HandleProjectCreate(app))
		se.Router.GET("/projects/{id}/edit", handlers.HandleProjectEdit(app))
		se.Router.POST("/projects/{id}/save", handlers.HandleProjectUpdate(app))
		se.Router.DELETE("/projects/{id}", handlers.HandleProjectDelete(app))
		se.Router.GET("/projects/{id}", handlers.HandleProjectView(app))
		se.Router.POST("/projects/{id}/settings", handlers.HandleProjectSettings(app))
		se.Router.POST("/projects/{id}/switch", handlers.HandleProjectSwitch(app))

		// ── Rooms ────────────────────────────────────────────────
		se.Router.POST("/projects/{id}/rooms", handlers.HandleRoomCreate(app))
		se.Router.DELETE("/projects/{id}/rooms/{roomId}", handlers.HandleRoomDelete(app))
		se.Router.POST("/projects/{id}/rooms/{roomId}/save-template", handlers.HandleRoomSaveTemplate(app))

		// ── Line items ───────────────────────────────────────────
		se.Router.POST("/projects/{id}/items", handlers.HandleItemCreate(app))
		se.Router.PATCH("/projects/{id}/items/{itemId}", handlers.HandleItemPatch(app))
		se.Router.DELETE("/projects/{id}/items/{itemId}", handlers.HandleItemDelete(app))

		// ── Quote export ─────────────────────────────────────────
		se.Router.GET("/projects/{id}/export/excel", handlers.HandleQuoteExportExcel(app))
		se.Router.GET("/projects/{id}/export/pdf", handlers.HandleQuoteExportPDF(app))

		// ── Rate card ────────────────────────────────────────────
		se.Router.GET("/rate-card", handlers.HandleRateCardPage(app))
		se.Router.POST("/rate-card", handlers.HandleRateCardCreate(app))
		se.Router.DELETE("/rate-card/{itemId}", handlers.HandleRateCardDelete(app))
		se.Router.GET("/rate-card/export", handlers.HandleRateCardExport(app))
		se.Router.POST("/rate-card/import", handlers.HandleRateCardImport(app))
		se.Router.POST("/rate-card/protect", handlers.HandleRateCardProtect(app))
		se.Router.POST("/rate-card/unlock", handlers.HandleRateCardUnlock(app))

		// Home goes to the active project when one is selected.
		se.Router.GET("/", func(e *core.RequestEvent) error {
			if active := handlers.GetActiveProject(e.Request); active != nil {
				return e.Redirect(http.StatusFound, "/projects/"+active.ID)
			}
			return e.Redirect(http.StatusFound, "/projects")
		})

		return se.Next()
	})

	if err := app.Start(); err != nil {
		log.Fatal(err)
	}
}
