package collections_test

import (
	"math"
	"testing"

	"quotestudio/collections"
	"quotestudio/services"
	"quotestudio/testhelpers"
)

func TestSeed_PopulatesDefaultRateCard(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	if err := collections.Seed(app); err != nil {
		t.Fatalf("Seed() error = %v", err)
	}

	rateCardCol, _ := app.FindCollectionByNameOrId("rate_card_items")
	items, err := app.FindAllRecords(rateCardCol)
	if err != nil {
		t.Fatalf("failed to query rate_card_items: %v", err)
	}
	if len(items) != 7 {
		t.Fatalf("expected 7 default rate card items, got %d", len(items))
	}

	byName := make(map[string]float64)
	for _, r := range items {
		byName[r.GetString("item")] = r.GetFloat("rate")
	}
	expected := map[string]float64{
		"POP Wall":      150,
		"Wall Painting": 80,
		"TV Unit":       1200,
		"Wardrobe":      1500,
		"Kitchen":       2200,
		"False Ceiling": 220,
		"Curtains":      180,
	}
	for item, rate := range expected {
		got, ok := byName[item]
		if !ok {
			t.Errorf("missing default rate card item %q", item)
			continue
		}
		if math.Abs(got-rate) > 0.001 {
			t.Errorf("%s rate = %v, want %v", item, got, rate)
		}
	}
}

func TestSeed_Idempotent(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	if err := collections.Seed(app); err != nil {
		t.Fatalf("first Seed() error = %v", err)
	}
	if err := collections.Seed(app); err != nil {
		t.Fatalf("second Seed() error = %v", err)
	}

	rateCardCol, _ := app.FindCollectionByNameOrId("rate_card_items")
	items, _ := app.FindAllRecords(rateCardCol)
	if len(items) != 7 {
		t.Errorf("rate card items duplicated after second Seed(): got %d", len(items))
	}

	projectsCol, _ := app.FindCollectionByNameOrId("projects")
	projects, _ := app.FindAllRecords(projectsCol)
	if len(projects) != 1 {
		t.Errorf("demo project duplicated after second Seed(): got %d", len(projects))
	}
}

func TestSeed_DemoProjectAmountsConsistent(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	if err := collections.Seed(app); err != nil {
		t.Fatalf("Seed() error = %v", err)
	}

	itemsCol, _ := app.FindCollectionByNameOrId("line_items")
	records, err := app.FindAllRecords(itemsCol)
	if err != nil {
		t.Fatalf("failed to query line_items: %v", err)
	}
	if len(records) == 0 {
		t.Fatal("demo project seeded no line items")
	}

	// Every stored amount must match a recompute from the stored fields.
	for _, r := range records {
		item := services.LineItem{
			Room:     r.GetString("room"),
			ItemName: r.GetString("item_name"),
			UOM:      r.GetString("uom"),
			Length:   r.GetFloat("length"),
			Height:   r.GetFloat("height"),
			Quantity: r.GetFloat("quantity"),
			Rate:     r.GetFloat("rate"),
		}
		r.UnmarshalJSONField("material", &item.Material)
		r.UnmarshalJSONField("add_ons", &item.AddOns)

		want := services.ComputeItemAmount(item)
		if got := r.GetFloat("amount"); math.Abs(got-want) > 0.001 {
			t.Errorf("%s/%s: stored amount %v, recomputed %v", item.Room, item.ItemName, got, want)
		}
	}
}
