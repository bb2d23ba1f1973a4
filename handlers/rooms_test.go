package handlers

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"quotestudio/testhelpers"
)

func TestHandleRoomCreate_Success(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	project := testhelpers.CreateTestProject(t, app, "Room Project")
	handler := HandleRoomCreate(app)

	req, rec := postForm(t, "/projects/"+project.Id+"/rooms", url.Values{"name": {"Kitchen"}})
	req.SetPathValue("id", project.Id)
	e := newTestRequestEvent(app, req, rec)
	if err := handler(e); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	rooms, err := app.FindRecordsByFilter("rooms", "project = {:p} && name = {:n}", "", 1, 0,
		map[string]any{"p": project.Id, "n": "Kitchen"})
	if err != nil || len(rooms) != 1 {
		t.Fatalf("expected 1 room, got %d (err %v)", len(rooms), err)
	}
}

func TestHandleRoomCreate_DuplicatePerProject(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	project := testhelpers.CreateTestProject(t, app, "Dup Room Project")
	testhelpers.CreateTestRoom(t, app, project.Id, "Kitchen")
	handler := HandleRoomCreate(app)

	req, rec := postForm(t, "/projects/"+project.Id+"/rooms", url.Values{"name": {"Kitchen"}})
	req.SetPathValue("id", project.Id)
	e := newTestRequestEvent(app, req, rec)
	handler(e)
	if rec.Code != http.StatusConflict {
		t.Errorf("expected 409, got %d", rec.Code)
	}

	// The same name in another project is fine.
	other := testhelpers.CreateTestProject(t, app, "Other Project")
	req2, rec2 := postForm(t, "/projects/"+other.Id+"/rooms", url.Values{"name": {"Kitchen"}})
	req2.SetPathValue("id", other.Id)
	e2 := newTestRequestEvent(app, req2, rec2)
	if err := handler(e2); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec2.Code != http.StatusOK {
		t.Errorf("expected 200 for other project, got %d", rec2.Code)
	}
}

func TestHandleRoomDelete_RemovesItemsByName(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	project := testhelpers.CreateTestProject(t, app, "Cascade Project")
	room := testhelpers.CreateTestRoom(t, app, project.Id, "Bedroom")
	testhelpers.CreateTestLineItem(t, app, project.Id, "Bedroom", "Wardrobe", 8, 7, 1, 1500)
	testhelpers.CreateTestLineItem(t, app, project.Id, "Bedroom", "Bed Back Panel", 6, 4, 1, 900)
	// An item in another room with the same project must survive.
	survivor := testhelpers.CreateTestLineItem(t, app, project.Id, "Hall", "TV Unit", 10, 2, 1, 1200)
	handler := HandleRoomDelete(app)

	req := httptest.NewRequest(http.MethodDelete, "/projects/"+project.Id+"/rooms/"+room.Id, nil)
	req.Header.Set("HX-Request", "true")
	req.SetPathValue("id", project.Id)
	req.SetPathValue("roomId", room.Id)
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)
	if err := handler(e); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	remaining, err := app.FindRecordsByFilter("line_items", "project = {:p}", "", 0, 0,
		map[string]any{"p": project.Id})
	if err != nil {
		t.Fatalf("query items: %v", err)
	}
	if len(remaining) != 1 {
		t.Fatalf("expected 1 surviving item, got %d", len(remaining))
	}
	if remaining[0].Id != survivor.Id {
		t.Errorf("wrong item survived: %s", remaining[0].GetString("item_name"))
	}
}

func TestHandleRoomSaveTemplate_AndApply(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	project := testhelpers.CreateTestProject(t, app, "Template Project")
	room := testhelpers.CreateTestRoom(t, app, project.Id, "Master Bedroom")
	testhelpers.CreateTestLineItem(t, app, project.Id, "Master Bedroom", "Wardrobe", 8, 7, 1, 1500)
	saveHandler := HandleRoomSaveTemplate(app)

	req := httptest.NewRequest(http.MethodPost, "/projects/"+project.Id+"/rooms/"+room.Id+"/save-template", nil)
	req.Header.Set("HX-Request", "true")
	req.Header.Set("HX-Prompt", "Standard Bedroom")
	req.SetPathValue("id", project.Id)
	req.SetPathValue("roomId", room.Id)
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)
	if err := saveHandler(e); err != nil {
		t.Fatalf("save template: %v", err)
	}

	templates, err := app.FindRecordsByFilter("room_templates", "name = {:n}", "", 1, 0,
		map[string]any{"n": "Standard Bedroom"})
	if err != nil || len(templates) != 1 {
		t.Fatalf("expected saved template, got %d (err %v)", len(templates), err)
	}

	// Applying it while creating a room reproduces the items with fresh amounts.
	createHandler := HandleRoomCreate(app)
	form := url.Values{
		"name":        {"Guest Bedroom"},
		"template_id": {templates[0].Id},
	}
	req2, rec2 := postForm(t, "/projects/"+project.Id+"/rooms", form)
	req2.SetPathValue("id", project.Id)
	e2 := newTestRequestEvent(app, req2, rec2)
	if err := createHandler(e2); err != nil {
		t.Fatalf("create room from template: %v", err)
	}

	items, err := app.FindRecordsByFilter("line_items", "project = {:p} && room = {:r}", "", 0, 0,
		map[string]any{"p": project.Id, "r": "Guest Bedroom"})
	if err != nil || len(items) != 1 {
		t.Fatalf("expected 1 templated item, got %d (err %v)", len(items), err)
	}
	if items[0].GetString("item_name") != "Wardrobe" {
		t.Errorf("item_name = %q", items[0].GetString("item_name"))
	}
	// 8*7*1*1500
	if got := items[0].GetFloat("amount"); got != 84000 {
		t.Errorf("amount = %v, want 84000", got)
	}
}

func TestHandleRoomSaveTemplate_EmptyRoom(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	project := testhelpers.CreateTestProject(t, app, "Empty Template Project")
	room := testhelpers.CreateTestRoom(t, app, project.Id, "Bare Room")
	handler := HandleRoomSaveTemplate(app)

	req := httptest.NewRequest(http.MethodPost, "/projects/"+project.Id+"/rooms/"+room.Id+"/save-template", nil)
	req.SetPathValue("id", project.Id)
	req.SetPathValue("roomId", room.Id)
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)
	handler(e)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for empty room, got %d", rec.Code)
	}
}
