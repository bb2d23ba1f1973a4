// Package services provides the pricing and aggregation logic for quotes.
package services

import (
	"strconv"
	"strings"
)

// LineItem is a single billable row of work within a room. Material and
// AddOns are optional; LegacyAddOns carries the old comma-separated
// representation for projects saved before add-ons became structured.
//
// Furniture items carry two extra descriptive fields (core and finish
// material). They are a single record with an optional payload rather than a
// subtype: the fields are display metadata and never affect the amount.
type LineItem struct {
	Room         string             `json:"room"`
	ItemName     string             `json:"item_name"`
	Category     string             `json:"category,omitempty"`
	UOM          string             `json:"uom"`
	Length       float64            `json:"length"`
	Height       float64            `json:"height"`
	Quantity     float64            `json:"quantity"`
	Rate         float64            `json:"rate"`
	Material     *MaterialSelection `json:"material,omitempty"`
	AddOns       map[string]AddOn   `json:"add_ons,omitempty"`
	LegacyAddOns string             `json:"legacy_add_ons,omitempty"`
	Amount       float64            `json:"amount"`

	// Set only when Category is "Furniture".
	CoreMaterial   string `json:"core_material,omitempty"`
	FinishMaterial string `json:"finish_material,omitempty"`
}

// MaterialSelection holds the material options copied from a rate card entry
// plus the user's current choice. The base material always has surcharge 0.
type MaterialSelection struct {
	Options        []string           `json:"options"`
	BaseMaterial   string             `json:"base_material"`
	Selected       string             `json:"selected"`
	PriceAdditions map[string]float64 `json:"price_additions"`
}

// AddOn is an optional feature priced per unit and toggled independently.
type AddOn struct {
	Selected    bool    `json:"selected"`
	RatePerUnit float64 `json:"rate_per_unit"`
	Description string  `json:"description"`
}

// RateCardItem is a catalog entry from which line items are instantiated.
// MaterialOptions and AddOns are comma-separated names; MaterialPrices and
// AddonPrices are optional "Name:Price,Name:Price" strings.
type RateCardItem struct {
	Category        string  `json:"category"`
	Item            string  `json:"item"`
	UOM             string  `json:"uom"`
	Rate            float64 `json:"rate"`
	MaterialOptions string  `json:"material_options"`
	MaterialPrices  string  `json:"material_prices"`
	AddOns          string  `json:"add_ons"`
	AddonPrices     string  `json:"addon_prices"`
}

// MaterialOptions is the structured result of parsing a rate card entry's
// material columns.
type MaterialOptions struct {
	Options        []string           `json:"options"`
	BaseMaterial   string             `json:"base_material"`
	PriceAdditions map[string]float64 `json:"price_additions"`
}

// Units of measure recognized by the pricing engine. Anything else is
// priced like NOS (count only).
const (
	UOMSquareFeet  = "SFT"
	UOMRunningFeet = "RFT"
	UOMNumbers     = "NOS"
)

// Legacy string add-ons apply only under SFT with these fixed rates.
const (
	legacyProfileDoorRate = 150
	legacyLightsRate      = 250
)

// defaultMaterialRates maps lowercase material names to the per-unit
// surcharge used when the rate card supplies no explicit price.
var defaultMaterialRates = map[string]float64{
	"laminate": 0,
	"veneer":   500,
	"pu":       800,
	"acrylic":  600,
	"premium":  400,
	"texture":  200,
}

// defaultOtherMaterialRate applies to material names absent from the table.
const defaultOtherMaterialRate = 300

// defaultAddOnRate applies to add-on names without a known default.
const defaultAddOnRate = 100

// quantityFactor returns the dimensional multiplier for a UOM:
// area for SFT, length for RFT, 1 for NOS and anything unrecognized.
func quantityFactor(uom string, length, height float64) float64 {
	switch uom {
	case UOMSquareFeet:
		return length * height
	case UOMRunningFeet:
		return length
	default:
		return 1
	}
}

// ComputeItemAmount computes the total cost of a line item from its raw
// attributes. The amount stored on an item is always a cache of this
// function's result and must be recomputed whenever a priced field changes.
//
// The material surcharge and every selected add-on scale by the same
// dimensional factor as the base rate. When both the structured add-on map
// and the legacy string are present, the map wins.
func ComputeItemAmount(item LineItem) float64 {
	factor := quantityFactor(item.UOM, item.Length, item.Height)
	total := factor * item.Quantity * item.Rate

	if item.Material != nil && item.Material.Selected != "" {
		if addition, ok := item.Material.PriceAdditions[item.Material.Selected]; ok {
			total += addition * factor * item.Quantity
		}
	}

	if len(item.AddOns) > 0 {
		for _, addOn := range item.AddOns {
			if !addOn.Selected {
				continue
			}
			total += addOn.RatePerUnit * factor * item.Quantity
		}
	} else if item.LegacyAddOns != "" && item.UOM == UOMSquareFeet {
		area := item.Length * item.Height
		for _, name := range strings.Split(item.LegacyAddOns, ",") {
			switch strings.ToLower(strings.TrimSpace(name)) {
			case "profile door":
				total += legacyProfileDoorRate * area * item.Quantity
			case "lights":
				total += legacyLightsRate * area * item.Quantity
			}
		}
	}

	return total
}

// ConvertLegacyAddOns upgrades a legacy comma-string add-on list to the
// structured map form, preserving the computed amount: only the two add-ons
// the legacy engine recognized are converted (as selected, at the legacy
// rates); anything else in the string was inert and is dropped.
func ConvertLegacyAddOns(s string) map[string]AddOn {
	addOns := make(map[string]AddOn)
	for _, part := range strings.Split(s, ",") {
		switch strings.ToLower(strings.TrimSpace(part)) {
		case "profile door":
			addOns["Profile Door"] = AddOn{
				Selected:    true,
				RatePerUnit: legacyProfileDoorRate,
				Description: "Premium profile door finish",
			}
		case "lights":
			addOns["Lights"] = AddOn{
				Selected:    true,
				RatePerUnit: legacyLightsRate,
				Description: "LED strip lighting",
			}
		}
	}
	return addOns
}

// ParsePriceMapping parses a "Name:Price,Name:Price" string into a map.
// Malformed segments are dropped; well-formed segments in the same string
// are still honored.
func ParsePriceMapping(s string) map[string]float64 {
	prices := make(map[string]float64)
	if s == "" {
		return prices
	}
	for _, pair := range strings.Split(s, ",") {
		name, priceStr, ok := strings.Cut(pair, ":")
		if !ok {
			continue
		}
		price, err := strconv.ParseFloat(strings.TrimSpace(priceStr), 64)
		if err != nil {
			continue
		}
		prices[strings.TrimSpace(name)] = price
	}
	return prices
}

// ExtractMaterialOptions builds the structured material option set for a
// rate card entry. The first listed option is the base material and always
// carries surcharge 0, regardless of any price supplied for it. Every other
// option takes its price from MaterialPrices when present, otherwise from
// the default rate table keyed by lowercase name.
func ExtractMaterialOptions(rc RateCardItem) MaterialOptions {
	result := MaterialOptions{PriceAdditions: make(map[string]float64)}
	if strings.TrimSpace(rc.MaterialOptions) == "" {
		return result
	}

	for _, opt := range strings.Split(rc.MaterialOptions, ",") {
		result.Options = append(result.Options, strings.TrimSpace(opt))
	}

	result.BaseMaterial = result.Options[0]
	result.PriceAdditions[result.BaseMaterial] = 0

	supplied := ParsePriceMapping(rc.MaterialPrices)
	for _, option := range result.Options[1:] {
		if price, ok := supplied[option]; ok {
			result.PriceAdditions[option] = price
			continue
		}
		if price, ok := defaultMaterialRates[strings.ToLower(option)]; ok {
			result.PriceAdditions[option] = price
		} else {
			result.PriceAdditions[option] = defaultOtherMaterialRate
		}
	}

	return result
}

// ExtractAddOns builds the structured add-on set for a rate card entry.
// The literal "none" (any case) means no add-ons. Every add-on starts
// unselected; prices come from AddonPrices when present, otherwise from
// hardcoded defaults for the common add-ons.
func ExtractAddOns(rc RateCardItem) map[string]AddOn {
	addOns := make(map[string]AddOn)
	raw := strings.TrimSpace(rc.AddOns)
	if raw == "" || strings.EqualFold(raw, "none") {
		return addOns
	}

	supplied := ParsePriceMapping(rc.AddonPrices)
	for _, part := range strings.Split(raw, ",") {
		name := strings.TrimSpace(part)
		if name == "" {
			continue
		}

		var rate float64
		var description string
		if price, ok := supplied[name]; ok {
			rate = price
			description = name + " (₹" + strconv.FormatFloat(price, 'f', -1, 64) + " per unit)"
		} else {
			switch strings.ToLower(name) {
			case "profile door":
				rate = legacyProfileDoorRate
				description = "Premium profile door finish"
			case "lights":
				rate = legacyLightsRate
				description = "LED strip lighting"
			default:
				rate = defaultAddOnRate
				description = "Additional " + name + " feature"
			}
		}

		addOns[name] = AddOn{Selected: false, RatePerUnit: rate, Description: description}
	}

	return addOns
}
