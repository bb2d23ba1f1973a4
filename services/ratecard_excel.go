package services

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"
)

// rateCardColumns defines the rate card sheet layout shared by export and
// import so the two stay in sync.
var rateCardColumns = []struct {
	Header string
	Width  float64
}{
	{"Category", 16},
	{"Item", 28},
	{"UOM", 8},
	{"Base Rate (₹)", 14},
	{"Material Options", 30},
	{"Material Prices", 26},
	{"Add-ons", 24},
	{"Add-on Prices", 26},
}

// GenerateRateCardExcel renders the rate card as an Excel workbook.
func GenerateRateCardExcel(items []RateCardItem) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := "Rate Card"
	defaultSheet := f.GetSheetName(0)
	if err := f.SetSheetName(defaultSheet, sheet); err != nil {
		return nil, fmt.Errorf("set sheet name: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "#FFFFFF", Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#C62828"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center"},
		Border:    thinBorders(),
	})
	if err != nil {
		return nil, fmt.Errorf("create header style: %w", err)
	}

	rowStyle, err := f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Size: 10},
		Border: thinBorders(),
	})
	if err != nil {
		return nil, fmt.Errorf("create row style: %w", err)
	}

	for i, col := range rateCardColumns {
		ref, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, fmt.Errorf("cell name: %w", err)
		}
		f.SetCellValue(sheet, ref, col.Header)

		name, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return nil, fmt.Errorf("column name: %w", err)
		}
		f.SetColWidth(sheet, name, name, col.Width)
	}
	lastColName, _ := excelize.ColumnNumberToName(len(rateCardColumns))
	f.SetCellStyle(sheet, "A1", lastColName+"1", headerStyle)

	for i, item := range items {
		row := i + 2
		values := []any{
			sanitizeExcelCell(item.Category),
			sanitizeExcelCell(item.Item),
			sanitizeExcelCell(item.UOM),
			item.Rate,
			sanitizeExcelCell(item.MaterialOptions),
			sanitizeExcelCell(item.MaterialPrices),
			sanitizeExcelCell(item.AddOns),
			sanitizeExcelCell(item.AddonPrices),
		}
		for j, v := range values {
			ref, err := excelize.CoordinatesToCellName(j+1, row)
			if err != nil {
				return nil, fmt.Errorf("cell name: %w", err)
			}
			f.SetCellValue(sheet, ref, v)
		}
		f.SetCellStyle(sheet, fmt.Sprintf("A%d", row), fmt.Sprintf("%s%d", lastColName, row), rowStyle)
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write excel: %w", err)
	}
	return buf.Bytes(), nil
}
