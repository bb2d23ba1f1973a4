package services

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ImportError is a single field-level problem on one uploaded row.
type ImportError struct {
	Row     int    `json:"row"`
	Field   string `json:"field"`
	Message string `json:"message"`
}

// RateCardImportResult is returned after parsing an uploaded rate card file.
// Rows with errors are excluded from Items.
type RateCardImportResult struct {
	TotalRows int            `json:"total_rows"`
	ValidRows int            `json:"valid_rows"`
	ErrorRows int            `json:"error_rows"`
	Errors    []ImportError  `json:"errors"`
	Items     []RateCardItem `json:"-"`
	FileName  string         `json:"-"`
}

// rateCardFieldKeys maps normalized column headers to RateCardItem fields.
// Both the export headers and bare snake_case names are accepted.
var rateCardFieldKeys = map[string]string{
	"category":         "category",
	"item":             "item",
	"uom":              "uom",
	"rate":             "rate",
	"base rate (₹)":    "rate",
	"base rate":        "rate",
	"material options": "material_options",
	"material_options": "material_options",
	"material prices":  "material_prices",
	"material_prices":  "material_prices",
	"add-ons":          "add_ons",
	"add_ons":          "add_ons",
	"add-on prices":    "addon_prices",
	"addon_prices":     "addon_prices",
}

// ParseRateCardFile parses an uploaded .xlsx or .csv rate card and validates
// each row. Rows missing an item name or carrying a non-numeric rate are
// reported and skipped; the remaining rows are still imported.
func ParseRateCardFile(file io.Reader, fileName string) (*RateCardImportResult, error) {
	var headers []string
	var dataRows [][]string
	var err error

	lowerName := strings.ToLower(fileName)
	switch {
	case strings.HasSuffix(lowerName, ".csv"):
		headers, dataRows, err = parseRateCardCSV(file)
	case strings.HasSuffix(lowerName, ".xlsx"):
		headers, dataRows, err = parseRateCardExcel(file)
	default:
		return nil, fmt.Errorf("unsupported file format: must be .csv or .xlsx")
	}
	if err != nil {
		return nil, err
	}

	columnKeys := make([]string, len(headers))
	for i, h := range headers {
		columnKeys[i] = rateCardFieldKeys[strings.ToLower(strings.TrimSpace(h))]
	}

	result := &RateCardImportResult{
		TotalRows: len(dataRows),
		FileName:  fileName,
	}

	for rowIdx, row := range dataRows {
		rowNum := rowIdx + 2 // 1-indexed, +1 for the header row

		values := make(map[string]string)
		for colIdx, key := range columnKeys {
			if key == "" {
				continue
			}
			if colIdx < len(row) {
				values[key] = strings.TrimSpace(row[colIdx])
			}
		}

		var rowErrors []ImportError
		if values["item"] == "" {
			rowErrors = append(rowErrors, ImportError{
				Row: rowNum, Field: "Item", Message: "Item name is required",
			})
		}

		rate := 0.0
		if raw := values["rate"]; raw != "" {
			parsed, parseErr := strconv.ParseFloat(raw, 64)
			if parseErr != nil {
				rowErrors = append(rowErrors, ImportError{
					Row: rowNum, Field: "Base Rate (₹)",
					Message: fmt.Sprintf("%q is not a number", raw),
				})
			} else {
				rate = parsed
			}
		}

		if len(rowErrors) > 0 {
			result.Errors = append(result.Errors, rowErrors...)
			continue
		}

		uom := values["uom"]
		if uom == "" {
			uom = UOMSquareFeet
		}
		addOns := values["add_ons"]
		if addOns == "" {
			addOns = "None"
		}

		result.Items = append(result.Items, RateCardItem{
			Category:        values["category"],
			Item:            values["item"],
			UOM:             uom,
			Rate:            rate,
			MaterialOptions: values["material_options"],
			MaterialPrices:  values["material_prices"],
			AddOns:          addOns,
			AddonPrices:     values["addon_prices"],
		})
	}

	errorRowSet := make(map[int]bool)
	for _, e := range result.Errors {
		errorRowSet[e.Row] = true
	}
	result.ErrorRows = len(errorRowSet)
	result.ValidRows = result.TotalRows - result.ErrorRows

	return result, nil
}

// parseRateCardCSV reads a CSV file and returns headers + data rows.
func parseRateCardCSV(file io.Reader) ([]string, [][]string, error) {
	reader := csv.NewReader(file)
	reader.TrimLeadingSpace = true
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	allRows, err := reader.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse CSV: %w", err)
	}
	if len(allRows) < 2 {
		return nil, nil, fmt.Errorf("file must contain a header row and at least one data row")
	}

	return allRows[0], allRows[1:], nil
}

// parseRateCardExcel reads the first sheet of an xlsx file.
func parseRateCardExcel(file io.Reader) ([]string, [][]string, error) {
	f, err := excelize.OpenReader(file)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	sheetName := f.GetSheetName(0)
	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read sheet: %w", err)
	}
	if len(rows) < 2 {
		return nil, nil, fmt.Errorf("file must contain a header row and at least one data row")
	}

	return rows[0], rows[1:], nil
}
