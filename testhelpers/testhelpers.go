// Package testhelpers provides utilities for testing PocketBase-based applications.
package testhelpers

import (
	"strings"
	"testing"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"quotestudio/collections"
)

// NewTestApp creates a PocketBase instance backed by a temporary directory.
// It bootstraps the app and runs collections.Setup to create all tables.
// The temporary directory is cleaned up automatically when the test finishes.
func NewTestApp(t *testing.T) *pocketbase.PocketBase {
	t.Helper()

	tmpDir := t.TempDir()
	app := pocketbase.NewWithConfig(pocketbase.Config{
		DefaultDataDir: tmpDir,
	})

	if err := app.Bootstrap(); err != nil {
		t.Fatalf("failed to bootstrap test app: %v", err)
	}

	collections.Setup(app)

	return app
}

// CreateTestProject creates a project record with the given name and returns it.
func CreateTestProject(t *testing.T, app *pocketbase.PocketBase, name string) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("projects")
	if err != nil {
		t.Fatalf("failed to find projects collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("name", name)
	record.Set("client_name", "Test Client")
	record.Set("project_type", "Residential")
	record.Set("gst_percent", 18)
	record.Set("discount_percent", 0)

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test project: %v", err)
	}

	return record
}

// CreateTestRoom creates a room record linked to a project and returns it.
func CreateTestRoom(t *testing.T, app *pocketbase.PocketBase, projectID, name string) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("rooms")
	if err != nil {
		t.Fatalf("failed to find rooms collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("project", projectID)
	record.Set("name", name)
	record.Set("sort_order", 1)

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test room: %v", err)
	}

	return record
}

// CreateTestLineItem creates a line item in the given room with SFT pricing
// and the amount precomputed as length*height*quantity*rate.
func CreateTestLineItem(t *testing.T, app *pocketbase.PocketBase, projectID, room, itemName string, length, height, quantity, rate float64) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("line_items")
	if err != nil {
		t.Fatalf("failed to find line_items collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("project", projectID)
	record.Set("room", room)
	record.Set("item_name", itemName)
	record.Set("uom", "SFT")
	record.Set("length", length)
	record.Set("height", height)
	record.Set("quantity", quantity)
	record.Set("rate", rate)
	record.Set("amount", length*height*quantity*rate)
	record.Set("sort_order", 1)

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test line item: %v", err)
	}

	return record
}

// CreateTestRateCardItem creates a rate card catalog entry and returns it.
func CreateTestRateCardItem(t *testing.T, app *pocketbase.PocketBase, category, item, uom string, rate float64) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("rate_card_items")
	if err != nil {
		t.Fatalf("failed to find rate_card_items collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("category", category)
	record.Set("item", item)
	record.Set("uom", uom)
	record.Set("rate", rate)
	record.Set("material_options", "Laminate, Veneer")
	record.Set("add_ons", "Lights")

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test rate card item: %v", err)
	}

	return record
}

// AssertHTMLContains checks that body contains all specified fragments.
func AssertHTMLContains(t *testing.T, body string, fragments ...string) {
	t.Helper()

	for _, frag := range fragments {
		if !strings.Contains(body, frag) {
			t.Errorf("expected HTML to contain %q, but it was not found\nbody (first 500 chars): %s",
				frag, truncate(body, 500))
		}
	}
}

// AssertHXRedirect checks that the response has an HX-Redirect header with the expected URL.
func AssertHXRedirect(t *testing.T, headerVal, expectedURL string) {
	t.Helper()

	if headerVal != expectedURL {
		t.Errorf("expected HX-Redirect %q, got %q", expectedURL, headerVal)
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
