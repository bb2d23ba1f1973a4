package services

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"
)

// GenerateQuoteExcel renders a quote as an Excel workbook and returns the
// file contents.
func GenerateQuoteExcel(data QuoteExportData) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Quotation"
	defaultSheet := f.GetSheetName(0)
	if err := f.SetSheetName(defaultSheet, sheetName); err != nil {
		return nil, fmt.Errorf("set sheet name: %w", err)
	}

	// Columns A through I.
	columns := []string{"A", "B", "C", "D", "E", "F", "G", "H", "I"}
	lastCol := columns[len(columns)-1]

	widths := []float64{6, 34, 8, 8, 8, 8, 12, 20, 16}
	for i, col := range columns {
		if err := f.SetColWidth(sheetName, col, col, widths[i]); err != nil {
			return nil, fmt.Errorf("set col width %s: %w", col, err)
		}
	}

	titleStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 16},
	})
	if err != nil {
		return nil, fmt.Errorf("create title style: %w", err)
	}

	subtitleStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Size: 11},
	})
	if err != nil {
		return nil, fmt.Errorf("create subtitle style: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "#FFFFFF", Size: 11},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#333333"}, Pattern: 1},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
		Border: thinBorders(),
	})
	if err != nil {
		return nil, fmt.Errorf("create header style: %w", err)
	}

	roomStyle, err := f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Bold: true, Size: 10},
		Fill:   excelize.Fill{Type: "pattern", Color: []string{"#EFEFEF"}, Pattern: 1},
		Border: thinBorders(),
	})
	if err != nil {
		return nil, fmt.Errorf("create room style: %w", err)
	}

	itemStyle, err := f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Size: 10},
		Border: thinBorders(),
	})
	if err != nil {
		return nil, fmt.Errorf("create item style: %w", err)
	}

	summaryLabelStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Alignment: &excelize.Alignment{Horizontal: "right"},
	})
	if err != nil {
		return nil, fmt.Errorf("create summary label style: %w", err)
	}

	summaryValueStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 11},
	})
	if err != nil {
		return nil, fmt.Errorf("create summary value style: %w", err)
	}

	// ── Header rows ─────────────────────────────────────────────────────

	if err := f.MergeCell(sheetName, "A1", lastCol+"1"); err != nil {
		return nil, fmt.Errorf("merge title: %w", err)
	}
	title := data.ProjectName
	if title == "" {
		title = "Interior Quotation"
	}
	f.SetCellValue(sheetName, "A1", sanitizeExcelCell(title))
	f.SetCellStyle(sheetName, "A1", lastCol+"1", titleStyle)

	headerRow := 2
	for _, line := range []string{
		clientLine(data),
		addressLine(data),
		"Date: " + data.Date,
	} {
		if line == "" {
			continue
		}
		ref := fmt.Sprintf("%d", headerRow)
		if err := f.MergeCell(sheetName, "A"+ref, lastCol+ref); err != nil {
			return nil, fmt.Errorf("merge header row: %w", err)
		}
		f.SetCellValue(sheetName, "A"+ref, sanitizeExcelCell(line))
		f.SetCellStyle(sheetName, "A"+ref, lastCol+ref, subtitleStyle)
		headerRow++
	}

	// ── Column headers ──────────────────────────────────────────────────

	tableHeaderRow := headerRow + 1
	headers := []string{"#", "Item", "UOM", "Length", "Height", "Qty", "Rate", "Material / Add-ons", "Amount"}
	for i, h := range headers {
		f.SetCellValue(sheetName, fmt.Sprintf("%s%d", columns[i], tableHeaderRow), h)
	}
	f.SetCellStyle(sheetName,
		fmt.Sprintf("A%d", tableHeaderRow),
		fmt.Sprintf("%s%d", lastCol, tableHeaderRow),
		headerStyle)

	// ── Data rows ───────────────────────────────────────────────────────

	row := tableHeaderRow + 1
	for _, r := range data.Rows {
		ref := fmt.Sprintf("%d", row)

		if r.IsRoomHeader {
			f.SetCellValue(sheetName, "A"+ref, r.Index)
			if err := f.MergeCell(sheetName, "B"+ref, "H"+ref); err != nil {
				return nil, fmt.Errorf("merge room row: %w", err)
			}
			f.SetCellValue(sheetName, "B"+ref, sanitizeExcelCell(r.Description))
			f.SetCellValue(sheetName, "I"+ref, FormatINR(r.Amount))
			f.SetCellStyle(sheetName, "A"+ref, lastCol+ref, roomStyle)
			row++
			continue
		}

		f.SetCellValue(sheetName, "A"+ref, r.Index)
		f.SetCellValue(sheetName, "B"+ref, sanitizeExcelCell("  "+r.Description))
		f.SetCellValue(sheetName, "C"+ref, sanitizeExcelCell(r.UOM))
		f.SetCellValue(sheetName, "D"+ref, r.Length)
		f.SetCellValue(sheetName, "E"+ref, r.Height)
		f.SetCellValue(sheetName, "F"+ref, r.Quantity)
		f.SetCellValue(sheetName, "G"+ref, FormatINR(r.Rate))
		f.SetCellValue(sheetName, "H"+ref, sanitizeExcelCell(materialAddOnLabel(r)))
		f.SetCellValue(sheetName, "I"+ref, FormatINR(r.Amount))
		f.SetCellStyle(sheetName, "A"+ref, lastCol+ref, itemStyle)
		row++
	}

	// ── Summary rows ────────────────────────────────────────────────────

	row++
	summary := []struct {
		label string
		value string
	}{
		{"Subtotal:", FormatINR(data.Subtotal)},
		{fmt.Sprintf("GST (%.1f%%):", data.GSTPercent), FormatINR(data.TaxAmount)},
		{fmt.Sprintf("Discount (%.1f%%):", data.DiscountPercent), "-" + FormatINR(data.DiscountAmount)},
		{"Grand Total:", FormatINR(data.GrandTotal)},
	}
	for _, s := range summary {
		ref := fmt.Sprintf("%d", row)
		f.SetCellValue(sheetName, "H"+ref, s.label)
		f.SetCellStyle(sheetName, "H"+ref, "H"+ref, summaryLabelStyle)
		f.SetCellValue(sheetName, "I"+ref, s.value)
		f.SetCellStyle(sheetName, "I"+ref, "I"+ref, summaryValueStyle)
		row++
	}

	// Amount in words under the summary block.
	row++
	ref := fmt.Sprintf("%d", row)
	if err := f.MergeCell(sheetName, "A"+ref, lastCol+ref); err != nil {
		return nil, fmt.Errorf("merge words row: %w", err)
	}
	f.SetCellValue(sheetName, "A"+ref, sanitizeExcelCell("Amount in words: "+data.AmountInWords))
	f.SetCellStyle(sheetName, "A"+ref, lastCol+ref, subtitleStyle)

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write excel: %w", err)
	}

	return buf.Bytes(), nil
}

func clientLine(data QuoteExportData) string {
	switch {
	case data.ClientName != "" && data.ContactInfo != "":
		return "Client: " + data.ClientName + " (" + data.ContactInfo + ")"
	case data.ClientName != "":
		return "Client: " + data.ClientName
	default:
		return ""
	}
}

func addressLine(data QuoteExportData) string {
	if data.SiteAddress == "" {
		return ""
	}
	return "Site: " + data.SiteAddress
}

// materialAddOnLabel combines the selected material and add-on names for the
// export's single options column.
func materialAddOnLabel(r QuoteRow) string {
	switch {
	case r.Material != "" && r.AddOns != "":
		return r.Material + " + " + r.AddOns
	case r.Material != "":
		return r.Material
	default:
		return r.AddOns
	}
}

// sanitizeExcelCell prevents formula injection by prefixing dangerous leading
// characters with a single quote. Excel interprets cells starting with =, +, -,
// @, \t or \r as formulas, which can be abused for code execution or data theft.
func sanitizeExcelCell(s string) string {
	if len(s) == 0 {
		return s
	}
	switch s[0] {
	case '=', '+', '-', '@', '\t', '\r', '|':
		return "'" + s
	}
	return s
}

// thinBorders returns excelize borders for all four sides.
func thinBorders() []excelize.Border {
	sides := []string{"left", "top", "bottom", "right"}
	borders := make([]excelize.Border, len(sides))
	for i, side := range sides {
		borders[i] = excelize.Border{
			Type:  side,
			Color: "#000000",
			Style: 1, // thin
		}
	}
	return borders
}
