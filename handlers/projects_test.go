package handlers

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"quotestudio/testhelpers"
)

func postForm(t *testing.T, target string, form url.Values) (*http.Request, *httptest.ResponseRecorder) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("HX-Request", "true")
	rec := httptest.NewRecorder()
	return req, rec
}

func TestHandleProjectCreate_Success(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	handler := HandleProjectCreate(app)

	form := url.Values{
		"name":         {"Villa Renovation"},
		"client_name":  {"Rohit Sharma"},
		"project_type": {"Residential"},
	}
	req, rec := postForm(t, "/projects", form)
	e := newTestRequestEvent(app, req, rec)
	if err := handler(e); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	records, err := app.FindRecordsByFilter("projects", "name = {:name}", "", 1, 0,
		map[string]any{"name": "Villa Renovation"})
	if err != nil || len(records) != 1 {
		t.Fatalf("expected saved project, got %d (err %v)", len(records), err)
	}
	p := records[0]
	if p.GetFloat("gst_percent") != DefaultGSTPercent {
		t.Errorf("gst_percent = %v, want %v", p.GetFloat("gst_percent"), DefaultGSTPercent)
	}
	testhelpers.AssertHXRedirect(t, rec.Header().Get("HX-Redirect"), "/projects/"+p.Id)
}

func TestHandleProjectCreate_RequiresName(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	handler := HandleProjectCreate(app)

	req, rec := postForm(t, "/projects", url.Values{"name": {"   "}})
	e := newTestRequestEvent(app, req, rec)
	handler(e)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
}

func TestHandleProjectCreate_DuplicateName(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	testhelpers.CreateTestProject(t, app, "Twice")
	handler := HandleProjectCreate(app)

	req, rec := postForm(t, "/projects", url.Values{"name": {"Twice"}})
	e := newTestRequestEvent(app, req, rec)
	handler(e)
	if rec.Code != http.StatusConflict {
		t.Errorf("expected 409, got %d", rec.Code)
	}
}

func TestHandleProjectUpdate_DuplicateExcludesSelf(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	project := testhelpers.CreateTestProject(t, app, "Keep Name")
	handler := HandleProjectUpdate(app)

	// Re-saving under its own name is not a conflict.
	form := url.Values{
		"name":         {"Keep Name"},
		"client_name":  {"Updated Client"},
		"project_type": {"Commercial"},
	}
	req, rec := postForm(t, "/projects/"+project.Id+"/save", form)
	req.SetPathValue("id", project.Id)
	e := newTestRequestEvent(app, req, rec)
	if err := handler(e); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	updated, err := app.FindRecordById("projects", project.Id)
	if err != nil {
		t.Fatalf("reload project: %v", err)
	}
	if updated.GetString("client_name") != "Updated Client" {
		t.Errorf("client_name = %q", updated.GetString("client_name"))
	}
	if updated.GetString("project_type") != "Commercial" {
		t.Errorf("project_type = %q", updated.GetString("project_type"))
	}
}

func TestHandleProjectList_RendersProjects(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	testhelpers.CreateTestProject(t, app, "Listed Project")
	handler := HandleProjectList(app)

	req := httptest.NewRequest(http.MethodGet, "/projects", nil)
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)
	if err := handler(e); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	testhelpers.AssertHTMLContains(t, rec.Body.String(), "Listed Project", "Test Client")
}

func TestHandleProjectView_TotalsAndBreakdown(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	project := testhelpers.CreateTestProject(t, app, "View Project")
	testhelpers.CreateTestRoom(t, app, project.Id, "Living Room")
	// 10*10*1*100 = 10000; GST 18% on the project, no discount.
	testhelpers.CreateTestLineItem(t, app, project.Id, "Living Room", "TV Unit", 10, 10, 1, 100)
	handler := HandleProjectView(app)

	req := httptest.NewRequest(http.MethodGet, "/projects/"+project.Id, nil)
	req.SetPathValue("id", project.Id)
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)
	if err := handler(e); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	body := rec.Body.String()
	testhelpers.AssertHTMLContains(t, body,
		"Living Room",
		"TV Unit",
		"10,000.00", // subtotal
		"1,800.00",  // GST
		"11,800.00", // grand total
	)
}

func TestHandleProjectView_NotFound(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	handler := HandleProjectView(app)

	req := httptest.NewRequest(http.MethodGet, "/projects/missing", nil)
	req.SetPathValue("id", "missing")
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)
	handler(e)
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rec.Code)
	}
}

func TestHandleProjectSettings_UpdatesPercents(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	project := testhelpers.CreateTestProject(t, app, "Settings Project")
	handler := HandleProjectSettings(app)

	form := url.Values{
		"gst_percent":      {"12"},
		"discount_percent": {"7.5"},
	}
	req, rec := postForm(t, "/projects/"+project.Id+"/settings", form)
	req.SetPathValue("id", project.Id)
	e := newTestRequestEvent(app, req, rec)
	if err := handler(e); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	updated, _ := app.FindRecordById("projects", project.Id)
	if updated.GetFloat("gst_percent") != 12 {
		t.Errorf("gst_percent = %v, want 12", updated.GetFloat("gst_percent"))
	}
	if updated.GetFloat("discount_percent") != 7.5 {
		t.Errorf("discount_percent = %v, want 7.5", updated.GetFloat("discount_percent"))
	}
}

func TestHandleProjectDelete_RemovesProject(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	project := testhelpers.CreateTestProject(t, app, "Doomed Project")
	handler := HandleProjectDelete(app)

	req := httptest.NewRequest(http.MethodDelete, "/projects/"+project.Id, nil)
	req.Header.Set("HX-Request", "true")
	req.SetPathValue("id", project.Id)
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)
	if err := handler(e); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if _, err := app.FindRecordById("projects", project.Id); err == nil {
		t.Error("expected project to be deleted")
	}
}
