package services

import (
	"fmt"
	"sort"
	"strings"
)

// QuoteRow is a single row in the quote export: either a room header or a
// priced line item under it.
type QuoteRow struct {
	IsRoomHeader bool
	Index        string // "1", "1.1", "1.2", "2", ...
	Room         string
	Description  string
	UOM          string
	Length       float64
	Height       float64
	Quantity     float64
	Rate         float64
	Material     string // selected material, if any
	AddOns       string // comma-separated selected add-on names
	Amount       float64
}

// UOMSlice is one entry of the per-UOM amount breakdown, ordered for display.
type UOMSlice struct {
	UOM    string
	Amount float64
}

// QuoteExportData holds everything the Excel and PDF renderers need.
type QuoteExportData struct {
	ProjectName     string
	ClientName      string
	SiteAddress     string
	ContactInfo     string
	ProjectType     string
	Date            string
	Rows            []QuoteRow
	RoomTotals      []RoomStat
	UOMBreakdown    []UOMSlice
	Subtotal        float64
	GSTPercent      float64
	TaxAmount       float64
	DiscountPercent float64
	DiscountAmount  float64
	GrandTotal      float64
	AmountInWords   string
	Stats           ProjectStats
}

// QuoteProjectInfo is the header block of a quote.
type QuoteProjectInfo struct {
	Name        string
	ClientName  string
	SiteAddress string
	ContactInfo string
	ProjectType string
	Date        string
}

// selectedAddOnNames joins the names of selected add-ons in sorted order so
// exports render deterministically.
func selectedAddOnNames(addOns map[string]AddOn) string {
	if len(addOns) == 0 {
		return ""
	}
	var names []string
	for name, addOn := range addOns {
		if addOn.Selected {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return strings.Join(names, ", ")
}

// BuildQuoteExportData shapes line items into room-grouped export rows with
// a totals summary. Rooms appear in order of first appearance in the item
// list; items keep their input order within a room. The totals block applies
// GST and discount once at the subtotal level.
func BuildQuoteExportData(info QuoteProjectInfo, items []LineItem, gstPercent, discountPercent float64) QuoteExportData {
	roomTotals := RoomTotals(items)
	subtotal := Subtotal(roomTotals)
	tax := TaxAmount(subtotal, gstPercent)
	discount := DiscountAmount(subtotal, discountPercent)
	grand := GrandTotal(subtotal, tax, discount)

	data := QuoteExportData{
		ProjectName:     info.Name,
		ClientName:      info.ClientName,
		SiteAddress:     info.SiteAddress,
		ContactInfo:     info.ContactInfo,
		ProjectType:     info.ProjectType,
		Date:            info.Date,
		Subtotal:        subtotal,
		GSTPercent:      gstPercent,
		TaxAmount:       tax,
		DiscountPercent: discountPercent,
		DiscountAmount:  discount,
		GrandTotal:      grand,
		AmountInWords:   AmountToWords(grand),
		Stats:           ProjectStatistics(items, roomTotals),
	}

	// Rooms in order of first appearance.
	var roomOrder []string
	seen := make(map[string]bool)
	for _, item := range items {
		if !seen[item.Room] {
			seen[item.Room] = true
			roomOrder = append(roomOrder, item.Room)
		}
	}

	for ri, room := range roomOrder {
		roomIndex := ri + 1
		data.Rows = append(data.Rows, QuoteRow{
			IsRoomHeader: true,
			Index:        fmt.Sprintf("%d", roomIndex),
			Room:         room,
			Description:  room,
			Amount:       roomTotals[room],
		})
		data.RoomTotals = append(data.RoomTotals, RoomStat{Name: room, Amount: roomTotals[room]})

		itemIndex := 0
		for _, item := range items {
			if item.Room != room {
				continue
			}
			itemIndex++

			material := ""
			if item.Material != nil {
				material = item.Material.Selected
			}

			data.Rows = append(data.Rows, QuoteRow{
				Index:       fmt.Sprintf("%d.%d", roomIndex, itemIndex),
				Room:        room,
				Description: item.ItemName,
				UOM:         item.UOM,
				Length:      item.Length,
				Height:      item.Height,
				Quantity:    item.Quantity,
				Rate:        item.Rate,
				Material:    material,
				AddOns:      selectedAddOnNames(item.AddOns),
				Amount:      item.Amount,
			})
		}
	}

	breakdown := BreakdownByUOM(items)
	uoms := make([]string, 0, len(breakdown))
	for uom := range breakdown {
		uoms = append(uoms, uom)
	}
	sort.Strings(uoms)
	for _, uom := range uoms {
		data.UOMBreakdown = append(data.UOMBreakdown, UOMSlice{UOM: uom, Amount: breakdown[uom]})
	}

	return data
}
