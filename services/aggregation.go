package services

import "sort"

// ProjectStats summarizes a project's priced line items.
type ProjectStats struct {
	TotalRooms      int       `json:"total_rooms"`
	TotalItems      int       `json:"total_items"`
	AvgRoomCost     float64   `json:"avg_room_cost"`
	AvgItemCost     float64   `json:"avg_item_cost"`
	HighestCostRoom RoomStat  `json:"highest_cost_room"`
	HighestCostItem ItemStat  `json:"highest_cost_item"`
}

// RoomStat names a room together with its summed amount.
type RoomStat struct {
	Name   string  `json:"name"`
	Amount float64 `json:"amount"`
}

// ItemStat names an item together with its room and amount.
type ItemStat struct {
	Name   string  `json:"name"`
	Room   string  `json:"room"`
	Amount float64 `json:"amount"`
}

// RoomTotals groups line items by room and sums their amounts. Rooms with
// no items are absent from the result rather than zero-valued.
func RoomTotals(items []LineItem) map[string]float64 {
	totals := make(map[string]float64)
	for _, item := range items {
		totals[item.Room] += item.Amount
	}
	return totals
}

// Subtotal sums all room totals.
func Subtotal(roomTotals map[string]float64) float64 {
	var sum float64
	for _, total := range roomTotals {
		sum += total
	}
	return sum
}

// TaxAmount computes the GST applied once at the subtotal level.
func TaxAmount(subtotal, gstPercent float64) float64 {
	return subtotal * gstPercent / 100
}

// DiscountAmount computes the discount applied once at the subtotal level.
func DiscountAmount(subtotal, discountPercent float64) float64 {
	return subtotal * discountPercent / 100
}

// GrandTotal is subtotal plus tax minus discount. No floor is applied: a
// discount exceeding subtotal+tax produces a negative total.
func GrandTotal(subtotal, taxAmount, discountAmount float64) float64 {
	return subtotal + taxAmount - discountAmount
}

// BreakdownByUOM groups line items by unit of measure and sums their
// amounts. Items without a UOM are grouped under "Unknown".
func BreakdownByUOM(items []LineItem) map[string]float64 {
	breakdown := make(map[string]float64)
	for _, item := range items {
		uom := item.UOM
		if uom == "" {
			uom = "Unknown"
		}
		breakdown[uom] += item.Amount
	}
	return breakdown
}

// ProjectStatistics derives counts, averages and maxima from the current
// line items and room totals. Averages are 0 for empty collections.
//
// Ties for the highest amount are broken deterministically: the first
// maximum wins, scanning items in input order and rooms in sorted name
// order (room totals arrive as a map, which has no natural order).
func ProjectStatistics(items []LineItem, roomTotals map[string]float64) ProjectStats {
	stats := ProjectStats{
		TotalRooms:      len(roomTotals),
		TotalItems:      len(items),
		HighestCostRoom: RoomStat{Name: "None"},
		HighestCostItem: ItemStat{Name: "None", Room: "None"},
	}

	if stats.TotalRooms > 0 {
		stats.AvgRoomCost = Subtotal(roomTotals) / float64(stats.TotalRooms)
	}

	if stats.TotalItems > 0 {
		var itemSum float64
		for _, item := range items {
			itemSum += item.Amount
		}
		stats.AvgItemCost = itemSum / float64(stats.TotalItems)
	}

	if len(roomTotals) > 0 {
		names := make([]string, 0, len(roomTotals))
		for name := range roomTotals {
			names = append(names, name)
		}
		sort.Strings(names)

		best := RoomStat{Name: names[0], Amount: roomTotals[names[0]]}
		for _, name := range names[1:] {
			if roomTotals[name] > best.Amount {
				best = RoomStat{Name: name, Amount: roomTotals[name]}
			}
		}
		stats.HighestCostRoom = best
	}

	if len(items) > 0 {
		best := ItemStat{Name: items[0].ItemName, Room: items[0].Room, Amount: items[0].Amount}
		for _, item := range items[1:] {
			if item.Amount > best.Amount {
				best = ItemStat{Name: item.ItemName, Room: item.Room, Amount: item.Amount}
			}
		}
		stats.HighestCostItem = best
	}

	return stats
}
