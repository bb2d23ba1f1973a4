package services

import (
	"math"
	"reflect"
	"testing"
)

func TestComputeItemAmount_ByUOM(t *testing.T) {
	tests := []struct {
		name   string
		item   LineItem
		expect float64
	}{
		{"SFT area times qty times rate", LineItem{UOM: "SFT", Length: 10, Height: 8, Quantity: 1, Rate: 150}, 12000},
		{"RFT length times qty times rate", LineItem{UOM: "RFT", Length: 20, Quantity: 2, Rate: 80}, 3200},
		{"NOS qty times rate", LineItem{UOM: "NOS", Quantity: 4, Rate: 250}, 1000},
		{"unrecognized uom falls back to count", LineItem{UOM: "LOT", Length: 99, Height: 99, Quantity: 3, Rate: 100}, 300},
		{"missing uom falls back to count", LineItem{Quantity: 2, Rate: 50}, 100},
		{"zero quantity", LineItem{UOM: "SFT", Length: 10, Height: 8, Rate: 150}, 0},
		{"zero everything", LineItem{}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeItemAmount(tt.item)
			if math.Abs(got-tt.expect) > 0.001 {
				t.Errorf("ComputeItemAmount(%+v) = %v, want %v", tt.item, got, tt.expect)
			}
		})
	}
}

func TestComputeItemAmount_MaterialSurcharge(t *testing.T) {
	material := &MaterialSelection{
		Options:      []string{"Laminate", "Veneer", "PU"},
		BaseMaterial: "Laminate",
		PriceAdditions: map[string]float64{
			"Laminate": 0,
			"Veneer":   500,
			"PU":       800,
		},
	}

	base := LineItem{UOM: "SFT", Length: 10, Height: 8, Quantity: 1, Rate: 150}

	t.Run("no material selected", func(t *testing.T) {
		item := base
		item.Material = &MaterialSelection{Options: material.Options, PriceAdditions: material.PriceAdditions}
		if got := ComputeItemAmount(item); got != 12000 {
			t.Errorf("amount = %v, want 12000", got)
		}
	})

	t.Run("base material selected equals no selection", func(t *testing.T) {
		item := base
		sel := *material
		sel.Selected = "Laminate"
		item.Material = &sel
		if got := ComputeItemAmount(item); got != 12000 {
			t.Errorf("amount = %v, want 12000", got)
		}
	})

	t.Run("non-base material adds surcharge times area times qty", func(t *testing.T) {
		item := base
		sel := *material
		sel.Selected = "Veneer"
		item.Material = &sel
		// 12000 + 500*10*8*1
		if got := ComputeItemAmount(item); got != 52000 {
			t.Errorf("amount = %v, want 52000", got)
		}
	})

	t.Run("selected material missing from price map adds nothing", func(t *testing.T) {
		item := base
		sel := *material
		sel.Selected = "Glass"
		item.Material = &sel
		if got := ComputeItemAmount(item); got != 12000 {
			t.Errorf("amount = %v, want 12000", got)
		}
	})

	t.Run("RFT surcharge scales by length only", func(t *testing.T) {
		item := LineItem{UOM: "RFT", Length: 20, Quantity: 2, Rate: 80}
		sel := *material
		sel.Selected = "PU"
		item.Material = &sel
		// 3200 + 800*20*2
		if got := ComputeItemAmount(item); got != 35200 {
			t.Errorf("amount = %v, want 35200", got)
		}
	})
}

func TestComputeItemAmount_AddOns(t *testing.T) {
	t.Run("selected add-ons scale like the base rate", func(t *testing.T) {
		item := LineItem{
			UOM: "SFT", Length: 10, Height: 8, Quantity: 1, Rate: 150,
			AddOns: map[string]AddOn{
				"Lights":       {Selected: true, RatePerUnit: 250},
				"Profile Door": {Selected: false, RatePerUnit: 150},
			},
		}
		// 12000 + 250*80
		if got := ComputeItemAmount(item); got != 32000 {
			t.Errorf("amount = %v, want 32000", got)
		}
	})

	t.Run("unselected add-ons cost nothing", func(t *testing.T) {
		item := LineItem{
			UOM: "NOS", Quantity: 2, Rate: 500,
			AddOns: map[string]AddOn{"Lights": {RatePerUnit: 250}},
		}
		if got := ComputeItemAmount(item); got != 1000 {
			t.Errorf("amount = %v, want 1000", got)
		}
	})

	t.Run("NOS add-on scales by quantity alone", func(t *testing.T) {
		item := LineItem{
			UOM: "NOS", Quantity: 3, Rate: 500,
			AddOns: map[string]AddOn{"Handles": {Selected: true, RatePerUnit: 100}},
		}
		// 1500 + 100*3
		if got := ComputeItemAmount(item); got != 1800 {
			t.Errorf("amount = %v, want 1800", got)
		}
	})
}

func TestComputeItemAmount_LegacyAddOns(t *testing.T) {
	tests := []struct {
		name   string
		item   LineItem
		expect float64
	}{
		{
			"profile door at 150 per SFT",
			LineItem{UOM: "SFT", Length: 10, Height: 8, Quantity: 1, Rate: 150, LegacyAddOns: "profile door"},
			24000,
		},
		{
			"lights at 250 per SFT",
			LineItem{UOM: "SFT", Length: 10, Height: 8, Quantity: 1, Rate: 150, LegacyAddOns: "lights"},
			32000,
		},
		{
			"both with mixed case and spaces",
			LineItem{UOM: "SFT", Length: 10, Height: 8, Quantity: 1, Rate: 150, LegacyAddOns: " Profile Door , LIGHTS "},
			44000,
		},
		{
			"unknown names ignored",
			LineItem{UOM: "SFT", Length: 10, Height: 8, Quantity: 1, Rate: 150, LegacyAddOns: "mirror, handles"},
			12000,
		},
		{
			"legacy add-ons inert outside SFT",
			LineItem{UOM: "RFT", Length: 20, Quantity: 2, Rate: 80, LegacyAddOns: "lights"},
			3200,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeItemAmount(tt.item)
			if math.Abs(got-tt.expect) > 0.001 {
				t.Errorf("ComputeItemAmount(%+v) = %v, want %v", tt.item, got, tt.expect)
			}
		})
	}

	t.Run("structured map takes precedence over legacy string", func(t *testing.T) {
		item := LineItem{
			UOM: "SFT", Length: 10, Height: 8, Quantity: 1, Rate: 150,
			AddOns:       map[string]AddOn{"Lights": {Selected: true, RatePerUnit: 250}},
			LegacyAddOns: "profile door",
		}
		// Map contributes 250*80; the legacy string must not also apply.
		if got := ComputeItemAmount(item); got != 32000 {
			t.Errorf("amount = %v, want 32000", got)
		}
	})
}

func TestComputeItemAmount_FurnitureFieldsInert(t *testing.T) {
	plain := LineItem{UOM: "NOS", Quantity: 2, Rate: 5000}
	furniture := plain
	furniture.Category = "Furniture"
	furniture.CoreMaterial = "Plywood"
	furniture.FinishMaterial = "Laminate"

	if got, want := ComputeItemAmount(furniture), ComputeItemAmount(plain); got != want {
		t.Errorf("furniture descriptors changed amount: %v vs %v", got, want)
	}
}

func TestParsePriceMapping(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		expect map[string]float64
	}{
		{"two pairs", "Lights:250,Profile Door:150", map[string]float64{"Lights": 250, "Profile Door": 150}},
		{"malformed segment dropped valid kept", "bad,Lights:250", map[string]float64{"Lights": 250}},
		{"non-numeric price dropped", "Lights:abc,Veneer:500", map[string]float64{"Veneer": 500}},
		{"whitespace trimmed", " Lights : 250 ", map[string]float64{"Lights": 250}},
		{"empty string", "", map[string]float64{}},
		{"only garbage", "a,b,c", map[string]float64{}},
		{"price with extra colon uses first split", "Combo:12:34", map[string]float64{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParsePriceMapping(tt.input)
			if !reflect.DeepEqual(got, tt.expect) {
				t.Errorf("ParsePriceMapping(%q) = %v, want %v", tt.input, got, tt.expect)
			}
		})
	}
}

func TestExtractMaterialOptions(t *testing.T) {
	t.Run("defaults applied when no prices given", func(t *testing.T) {
		got := ExtractMaterialOptions(RateCardItem{MaterialOptions: "Laminate, Veneer, PU"})

		wantOptions := []string{"Laminate", "Veneer", "PU"}
		if !reflect.DeepEqual(got.Options, wantOptions) {
			t.Errorf("Options = %v, want %v", got.Options, wantOptions)
		}
		if got.BaseMaterial != "Laminate" {
			t.Errorf("BaseMaterial = %q, want Laminate", got.BaseMaterial)
		}
		wantPrices := map[string]float64{"Laminate": 0, "Veneer": 500, "PU": 800}
		if !reflect.DeepEqual(got.PriceAdditions, wantPrices) {
			t.Errorf("PriceAdditions = %v, want %v", got.PriceAdditions, wantPrices)
		}
	})

	t.Run("explicit prices override defaults", func(t *testing.T) {
		got := ExtractMaterialOptions(RateCardItem{
			MaterialOptions: "Standard, Veneer",
			MaterialPrices:  "Veneer:650",
		})
		if got.PriceAdditions["Veneer"] != 650 {
			t.Errorf("Veneer = %v, want 650", got.PriceAdditions["Veneer"])
		}
	})

	t.Run("base material always zero even when priced", func(t *testing.T) {
		got := ExtractMaterialOptions(RateCardItem{
			MaterialOptions: "Laminate, Veneer",
			MaterialPrices:  "Laminate:999,Veneer:500",
		})
		if got.PriceAdditions["Laminate"] != 0 {
			t.Errorf("base surcharge = %v, want 0", got.PriceAdditions["Laminate"])
		}
	})

	t.Run("unknown options default to 300", func(t *testing.T) {
		got := ExtractMaterialOptions(RateCardItem{MaterialOptions: "Regular, Blackout"})
		if got.PriceAdditions["Blackout"] != 300 {
			t.Errorf("Blackout = %v, want 300", got.PriceAdditions["Blackout"])
		}
	})

	t.Run("default table is case-insensitive", func(t *testing.T) {
		got := ExtractMaterialOptions(RateCardItem{MaterialOptions: "Standard, VENEER, pu"})
		if got.PriceAdditions["VENEER"] != 500 || got.PriceAdditions["pu"] != 800 {
			t.Errorf("PriceAdditions = %v", got.PriceAdditions)
		}
	})

	t.Run("empty options", func(t *testing.T) {
		got := ExtractMaterialOptions(RateCardItem{})
		if len(got.Options) != 0 || got.BaseMaterial != "" || len(got.PriceAdditions) != 0 {
			t.Errorf("expected empty result, got %+v", got)
		}
	})
}

func TestExtractAddOns(t *testing.T) {
	t.Run("known defaults", func(t *testing.T) {
		got := ExtractAddOns(RateCardItem{AddOns: "Lights, Profile Door"})

		lights, ok := got["Lights"]
		if !ok {
			t.Fatalf("missing Lights in %v", got)
		}
		if lights.Selected {
			t.Error("add-ons must start unselected")
		}
		if lights.RatePerUnit != 250 || lights.Description != "LED strip lighting" {
			t.Errorf("Lights = %+v", lights)
		}

		door := got["Profile Door"]
		if door.RatePerUnit != 150 || door.Description != "Premium profile door finish" {
			t.Errorf("Profile Door = %+v", door)
		}
	})

	t.Run("unknown add-on gets default rate and description", func(t *testing.T) {
		got := ExtractAddOns(RateCardItem{AddOns: "Soft Close"})
		sc := got["Soft Close"]
		if sc.RatePerUnit != 100 {
			t.Errorf("RatePerUnit = %v, want 100", sc.RatePerUnit)
		}
		if sc.Description != "Additional Soft Close feature" {
			t.Errorf("Description = %q", sc.Description)
		}
	})

	t.Run("explicit prices win", func(t *testing.T) {
		got := ExtractAddOns(RateCardItem{AddOns: "Lights", AddonPrices: "Lights:300"})
		if got["Lights"].RatePerUnit != 300 {
			t.Errorf("RatePerUnit = %v, want 300", got["Lights"].RatePerUnit)
		}
	})

	t.Run("literal none means no add-ons", func(t *testing.T) {
		for _, raw := range []string{"None", "none", "NONE", ""} {
			if got := ExtractAddOns(RateCardItem{AddOns: raw}); len(got) != 0 {
				t.Errorf("ExtractAddOns(%q) = %v, want empty", raw, got)
			}
		}
	})
}

func TestToFloat(t *testing.T) {
	tests := []struct {
		name   string
		input  any
		expect float64
	}{
		{"float64", 12.5, 12.5},
		{"int", 7, 7},
		{"numeric string", "42.25", 42.25},
		{"padded numeric string", "  18 ", 18},
		{"garbage string", "abc", 0},
		{"nil", nil, 0},
		{"bool", true, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ToFloat(tt.input); got != tt.expect {
				t.Errorf("ToFloat(%v) = %v, want %v", tt.input, got, tt.expect)
			}
		})
	}
}

func TestConvertLegacyAddOns(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		expect map[string]float64 // name -> rate
	}{
		{"both recognized", "Profile Door, Lights", map[string]float64{"Profile Door": 150, "Lights": 250}},
		{"mixed case", "profile DOOR,LIGHTS", map[string]float64{"Profile Door": 150, "Lights": 250}},
		{"unrecognized dropped", "Lights, Glass Shutter", map[string]float64{"Lights": 250}},
		{"nothing recognized", "Glass Shutter", map[string]float64{}},
		{"empty", "", map[string]float64{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ConvertLegacyAddOns(tt.input)
			if len(got) != len(tt.expect) {
				t.Fatalf("ConvertLegacyAddOns(%q) = %+v, want %d entries", tt.input, got, len(tt.expect))
			}
			for name, rate := range tt.expect {
				a, ok := got[name]
				if !ok {
					t.Errorf("missing add-on %q", name)
					continue
				}
				if !a.Selected {
					t.Errorf("%s: expected Selected=true", name)
				}
				if a.RatePerUnit != rate {
					t.Errorf("%s rate = %v, want %v", name, a.RatePerUnit, rate)
				}
			}
		})
	}
}
