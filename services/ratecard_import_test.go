package services

import (
	"strings"
	"testing"
)

func TestParseRateCardFile_CSV(t *testing.T) {
	csvData := strings.Join([]string{
		"Category,Item,UOM,Base Rate (₹),Material Options,Add-ons",
		"Furniture,TV Unit,SFT,1200,\"Laminate, Veneer, PU\",\"Lights, Profile Door\"",
		"Wall Work,Wall Painting,SFT,80,\"Regular, Texture\",None",
	}, "\n")

	result, err := ParseRateCardFile(strings.NewReader(csvData), "rates.csv")
	if err != nil {
		t.Fatalf("ParseRateCardFile() error = %v", err)
	}

	if result.TotalRows != 2 || result.ValidRows != 2 || result.ErrorRows != 0 {
		t.Fatalf("summary = %d/%d/%d, want 2/2/0", result.TotalRows, result.ValidRows, result.ErrorRows)
	}

	first := result.Items[0]
	if first.Category != "Furniture" || first.Item != "TV Unit" || first.Rate != 1200 {
		t.Errorf("first item = %+v", first)
	}
	if first.MaterialOptions != "Laminate, Veneer, PU" {
		t.Errorf("MaterialOptions = %q", first.MaterialOptions)
	}
	if result.Items[1].AddOns != "None" {
		t.Errorf("AddOns = %q, want None", result.Items[1].AddOns)
	}
}

func TestParseRateCardFile_RowErrors(t *testing.T) {
	csvData := strings.Join([]string{
		"Category,Item,UOM,Base Rate (₹)",
		"Furniture,,SFT,1200",
		"Furniture,Wardrobe,SFT,cheap",
		"Furniture,Kitchen,SFT,2200",
	}, "\n")

	result, err := ParseRateCardFile(strings.NewReader(csvData), "rates.csv")
	if err != nil {
		t.Fatalf("ParseRateCardFile() error = %v", err)
	}

	if result.TotalRows != 3 || result.ValidRows != 1 || result.ErrorRows != 2 {
		t.Fatalf("summary = %d/%d/%d, want 3/1/2", result.TotalRows, result.ValidRows, result.ErrorRows)
	}
	if len(result.Items) != 1 || result.Items[0].Item != "Kitchen" {
		t.Errorf("Items = %+v, want only Kitchen", result.Items)
	}

	// Errors reference 1-indexed sheet rows (header is row 1).
	if result.Errors[0].Row != 2 || result.Errors[0].Field != "Item" {
		t.Errorf("first error = %+v", result.Errors[0])
	}
	if result.Errors[1].Row != 3 || result.Errors[1].Field != "Base Rate (₹)" {
		t.Errorf("second error = %+v", result.Errors[1])
	}
}

func TestParseRateCardFile_Defaults(t *testing.T) {
	csvData := "Item\nBare Item\n"

	result, err := ParseRateCardFile(strings.NewReader(csvData), "rates.csv")
	if err != nil {
		t.Fatalf("ParseRateCardFile() error = %v", err)
	}

	item := result.Items[0]
	if item.UOM != "SFT" {
		t.Errorf("UOM = %q, want SFT default", item.UOM)
	}
	if item.AddOns != "None" {
		t.Errorf("AddOns = %q, want None default", item.AddOns)
	}
	if item.Rate != 0 {
		t.Errorf("Rate = %v, want 0 default", item.Rate)
	}
}

func TestParseRateCardFile_UnsupportedFormat(t *testing.T) {
	if _, err := ParseRateCardFile(strings.NewReader("x"), "rates.pdf"); err == nil {
		t.Error("expected error for unsupported extension")
	}
}

func TestParseRateCardFile_ExcelRoundTrip(t *testing.T) {
	items := []RateCardItem{
		{Category: "Furniture", Item: "Wardrobe", UOM: "SFT", Rate: 1500,
			MaterialOptions: "Laminate, Veneer, PU", AddOns: "Lights, Profile Door",
			AddonPrices: "Lights:300"},
		{Category: "Decorative", Item: "Curtains", UOM: "SFT", Rate: 180,
			MaterialOptions: "Regular, Blackout", AddOns: "None"},
	}

	xlsx, err := GenerateRateCardExcel(items)
	if err != nil {
		t.Fatalf("GenerateRateCardExcel() error = %v", err)
	}

	result, err := ParseRateCardFile(bytesReader(xlsx), "rates.xlsx")
	if err != nil {
		t.Fatalf("ParseRateCardFile() error = %v", err)
	}

	if result.ValidRows != 2 || len(result.Items) != 2 {
		t.Fatalf("summary = %+v", result)
	}
	got := result.Items[0]
	if got.Item != "Wardrobe" || got.Rate != 1500 || got.AddonPrices != "Lights:300" {
		t.Errorf("round-tripped item = %+v", got)
	}
}
