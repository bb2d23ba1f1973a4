package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"quotestudio/services"
)

// HandleRoomCreate adds a room to a project. When a template is selected its
// items are instantiated into the new room with freshly computed amounts.
func HandleRoomCreate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		projectID := e.Request.PathValue("id")
		if _, err := app.FindRecordById("projects", projectID); err != nil {
			return ErrorToast(e, http.StatusNotFound, "Project not found")
		}

		if err := e.Request.ParseForm(); err != nil {
			return ErrorToast(e, http.StatusBadRequest, "Invalid form data")
		}

		name := strings.TrimSpace(e.Request.FormValue("name"))
		if name == "" {
			return ErrorToast(e, http.StatusBadRequest, "Room name is required")
		}

		duplicate, _ := app.FindRecordsByFilter(
			"rooms",
			"project = {:projectId} && name = {:name}",
			"", 1, 0,
			map[string]any{"projectId": projectID, "name": name},
		)
		if len(duplicate) > 0 {
			return ErrorToast(e, http.StatusConflict, "This project already has a room with that name")
		}

		roomsCol, err := app.FindCollectionByNameOrId("rooms")
		if err != nil {
			log.Printf("room_create: could not find rooms collection: %v", err)
			return ErrorToast(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		room := core.NewRecord(roomsCol)
		room.Set("project", projectID)
		room.Set("name", name)
		if err := app.Save(room); err != nil {
			log.Printf("room_create: could not save room: %v", err)
			return ErrorToast(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		if templateID := e.Request.FormValue("template_id"); templateID != "" {
			if err := applyRoomTemplate(app, projectID, name, templateID); err != nil {
				log.Printf("room_create: apply template %s: %v", templateID, err)
				SetToast(e, "warning", "Room created, but applying the template failed")
				return redirectTo(e, "/projects/"+projectID)
			}
		}

		SetToast(e, "success", "Room added")
		return redirectTo(e, "/projects/"+projectID)
	}
}

// applyRoomTemplate copies a template's items into the given room,
// recomputing every amount on insert.
func applyRoomTemplate(app *pocketbase.PocketBase, projectID, roomName, templateID string) error {
	tpl, err := app.FindRecordById("room_templates", templateID)
	if err != nil {
		return err
	}

	var items []services.LineItem
	if err := tpl.UnmarshalJSONField("items", &items); err != nil {
		return err
	}

	itemsCol, err := app.FindCollectionByNameOrId("line_items")
	if err != nil {
		return err
	}

	for i, item := range items {
		item.Room = roomName
		item.Amount = services.ComputeItemAmount(item)

		r := core.NewRecord(itemsCol)
		r.Set("project", projectID)
		r.Set("room", item.Room)
		r.Set("item_name", item.ItemName)
		r.Set("uom", item.UOM)
		r.Set("length", item.Length)
		r.Set("height", item.Height)
		r.Set("quantity", item.Quantity)
		r.Set("rate", item.Rate)
		r.Set("amount", item.Amount)
		r.Set("sort_order", i+1)
		if item.Material != nil {
			data, err := json.Marshal(item.Material)
			if err != nil {
				return err
			}
			r.Set("material", string(data))
		}
		if len(item.AddOns) > 0 {
			data, err := json.Marshal(item.AddOns)
			if err != nil {
				return err
			}
			r.Set("add_ons", string(data))
		}
		if err := app.Save(r); err != nil {
			return err
		}
	}
	return nil
}

// HandleRoomDelete removes a room and every line item grouped under its
// name within the project.
func HandleRoomDelete(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		projectID := e.Request.PathValue("id")
		roomID := e.Request.PathValue("roomId")

		room, err := app.FindRecordById("rooms", roomID)
		if err != nil {
			log.Printf("room_delete: not found %s: %v", roomID, err)
			return ErrorToast(e, http.StatusNotFound, "Room not found")
		}
		roomName := room.GetString("name")

		if err := app.Delete(room); err != nil {
			log.Printf("room_delete: error deleting %s: %v", roomID, err)
			return ErrorToast(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		// Line items belong to rooms by name, so delete by name match.
		itemsCol, err := app.FindCollectionByNameOrId("line_items")
		if err == nil {
			items, err := app.FindRecordsByFilter(
				itemsCol,
				"project = {:projectId} && room = {:room}",
				"", 0, 0,
				map[string]any{"projectId": projectID, "room": roomName},
			)
			if err == nil {
				for _, item := range items {
					if err := app.Delete(item); err != nil {
						log.Printf("room_delete: could not delete item %s: %v", item.Id, err)
					}
				}
			}
		}

		SetToast(e, "success", "Room deleted")
		return redirectTo(e, "/projects/"+projectID)
	}
}

// HandleRoomSaveTemplate snapshots a room's items as a named template. The
// template name arrives via the HX-Prompt header.
func HandleRoomSaveTemplate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		projectID := e.Request.PathValue("id")
		roomID := e.Request.PathValue("roomId")

		room, err := app.FindRecordById("rooms", roomID)
		if err != nil {
			log.Printf("room_save_template: room not found %s: %v", roomID, err)
			return ErrorToast(e, http.StatusNotFound, "Room not found")
		}

		name := strings.TrimSpace(e.Request.Header.Get("HX-Prompt"))
		if name == "" {
			name = room.GetString("name") + " template"
		}

		itemsCol, err := app.FindCollectionByNameOrId("line_items")
		if err != nil {
			return ErrorToast(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}
		records, err := app.FindRecordsByFilter(
			itemsCol,
			"project = {:projectId} && room = {:room}",
			"sort_order,created", 0, 0,
			map[string]any{"projectId": projectID, "room": room.GetString("name")},
		)
		if err != nil || len(records) == 0 {
			return ErrorToast(e, http.StatusBadRequest, "This room has no items to save")
		}

		items := make([]services.LineItem, len(records))
		for i, r := range records {
			items[i] = recordToLineItem(r)
		}

		itemsJSON, err := json.Marshal(items)
		if err != nil {
			log.Printf("room_save_template: marshal items: %v", err)
			return ErrorToast(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		templatesCol, err := app.FindCollectionByNameOrId("room_templates")
		if err != nil {
			return ErrorToast(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		// Re-saving under an existing name replaces the template.
		existing, _ := app.FindRecordsByFilter(
			templatesCol,
			"name = {:name}",
			"", 1, 0,
			map[string]any{"name": name},
		)
		var tpl *core.Record
		if len(existing) > 0 {
			tpl = existing[0]
		} else {
			tpl = core.NewRecord(templatesCol)
			tpl.Set("name", name)
		}
		tpl.Set("items", string(itemsJSON))

		if err := app.Save(tpl); err != nil {
			log.Printf("room_save_template: could not save template: %v", err)
			return ErrorToast(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		SetToast(e, "success", "Template saved")
		return redirectTo(e, "/projects/"+projectID)
	}
}
