// Package importer reads required-cuts and stock tables from CSV and Excel
// files. It supports automatic delimiter detection, flexible column mapping,
// and case-insensitive header recognition.
package importer

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/piwi3910/BarNest/internal/model"
	"github.com/xuri/excelize/v2"
)

// CutImportResult holds the results of importing a required-cuts table.
type CutImportResult struct {
	Requirements []model.CutRequirement
	Errors       []string
	Warnings     []string
}

// StockImportResult holds the results of importing a stock table.
type StockImportResult struct {
	Units    []model.StockUnit
	Errors   []string
	Warnings []string
}

// CutColumnMapping maps semantic column roles to indices in a cuts table.
type CutColumnMapping struct {
	Tag      int
	Section  int
	Length   int
	Quantity int
	Cost     int
	Note     int
}

// StockColumnMapping maps semantic column roles to indices in a stock table.
type StockColumnMapping struct {
	Label    int
	Length   int
	Quantity int
}

// cutHeaderAliases maps canonical cuts-table column names to their accepted
// aliases (all lowercase).
var cutHeaderAliases = map[string][]string{
	"tag":      {"tag", "label", "name", "group", "item"},
	"section":  {"section", "profile", "steel section", "size"},
	"length":   {"length", "len", "cut length", "cut length (mm)", "length (mm)", "l"},
	"quantity": {"quantity", "qty", "count", "num", "amount", "pcs", "pieces"},
	"cost":     {"cost", "cost/m", "cost per meter", "cost per metre", "cost per meter (zar)", "price/m"},
	"note":     {"note", "notes", "comment", "remark", "description"},
}

// stockHeaderAliases maps canonical stock-table column names to aliases.
var stockHeaderAliases = map[string][]string{
	"label":    {"label", "tag", "name", "stock", "bar"},
	"length":   {"length", "len", "stock length", "stock length (mm)", "length (mm)", "l"},
	"quantity": {"quantity", "qty", "bars", "bars available", "count", "available"},
}

// DetectCSVDelimiter reads the file content and determines the most likely
// CSV delimiter. It tries comma, semicolon, tab, and pipe. The delimiter
// that produces the most consistent column count across lines wins.
func DetectCSVDelimiter(data []byte) rune {
	candidates := []rune{',', ';', '\t', '|'}
	bestDelimiter := ','
	bestScore := 0

	for _, delim := range candidates {
		reader := csv.NewReader(bytes.NewReader(data))
		reader.Comma = delim
		reader.LazyQuotes = true
		reader.FieldsPerRecord = -1 // Allow variable field counts

		records, err := reader.ReadAll()
		if err != nil || len(records) < 1 {
			continue
		}

		firstCols := len(records[0])
		if firstCols < 2 {
			continue
		}

		score := 0
		for _, row := range records {
			if len(row) == firstCols {
				score++
			}
		}

		// Prefer delimiters with higher consistency and more columns
		weighted := score*10 + firstCols
		if weighted > bestScore {
			bestScore = weighted
			bestDelimiter = delim
		}
	}

	return bestDelimiter
}

// DetectCutColumns examines a header row and returns a CutColumnMapping.
// Matching is case-insensitive against the known aliases. Returns the
// mapping and true if a header was detected, or a positional mapping
// (Tag, Section, Length, Quantity, Cost, Note) and false otherwise.
func DetectCutColumns(row []string) (CutColumnMapping, bool) {
	mapping := CutColumnMapping{Tag: -1, Section: -1, Length: -1, Quantity: -1, Cost: -1, Note: -1}

	isHeader := false
	assign := func(role string, i int) {
		switch role {
		case "tag":
			if mapping.Tag == -1 {
				mapping.Tag = i
			}
		case "section":
			if mapping.Section == -1 {
				mapping.Section = i
			}
		case "length":
			if mapping.Length == -1 {
				mapping.Length = i
			}
		case "quantity":
			if mapping.Quantity == -1 {
				mapping.Quantity = i
			}
		case "cost":
			if mapping.Cost == -1 {
				mapping.Cost = i
			}
		case "note":
			if mapping.Note == -1 {
				mapping.Note = i
			}
		}
	}

	for i, cell := range row {
		normalized := strings.ToLower(strings.TrimSpace(cell))
		for role, aliases := range cutHeaderAliases {
			for _, alias := range aliases {
				if normalized == alias {
					isHeader = true
					assign(role, i)
				}
			}
		}
	}

	if !isHeader {
		return CutColumnMapping{Tag: 0, Section: 1, Length: 2, Quantity: 3, Cost: 4, Note: 5}, false
	}
	return mapping, true
}

// DetectStockColumns examines a header row and returns a StockColumnMapping,
// falling back to positional mapping (Label, Length, Quantity).
func DetectStockColumns(row []string) (StockColumnMapping, bool) {
	mapping := StockColumnMapping{Label: -1, Length: -1, Quantity: -1}

	isHeader := false
	for i, cell := range row {
		normalized := strings.ToLower(strings.TrimSpace(cell))
		for role, aliases := range stockHeaderAliases {
			for _, alias := range aliases {
				if normalized == alias {
					isHeader = true
					switch role {
					case "label":
						if mapping.Label == -1 {
							mapping.Label = i
						}
					case "length":
						if mapping.Length == -1 {
							mapping.Length = i
						}
					case "quantity":
						if mapping.Quantity == -1 {
							mapping.Quantity = i
						}
					}
				}
			}
		}
	}

	if !isHeader {
		return StockColumnMapping{Label: 0, Length: 1, Quantity: 2}, false
	}
	return mapping, true
}

// getCell safely retrieves a cell value from a row by column index.
// Returns empty string if the index is out of range or negative.
func getCell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// parseCutRow extracts a CutRequirement from a row using the given mapping.
// Returns the requirement, any error message, and any warning message.
func parseCutRow(row []string, mapping CutColumnMapping, rowLabel string) (model.CutRequirement, string, string) {
	tag := getCell(row, mapping.Tag)
	if tag == "" {
		return model.CutRequirement{}, fmt.Sprintf("%s: Missing tag value", rowLabel), ""
	}

	lengthStr := getCell(row, mapping.Length)
	if lengthStr == "" {
		return model.CutRequirement{}, fmt.Sprintf("%s: Missing length value", rowLabel), ""
	}
	length, err := strconv.ParseFloat(lengthStr, 64)
	if err != nil {
		return model.CutRequirement{}, fmt.Sprintf("%s: Invalid length '%s'", rowLabel, lengthStr), ""
	}

	qtyStr := getCell(row, mapping.Quantity)
	if qtyStr == "" {
		return model.CutRequirement{}, fmt.Sprintf("%s: Missing quantity value", rowLabel), ""
	}
	qty, err := strconv.Atoi(qtyStr)
	if err != nil {
		return model.CutRequirement{}, fmt.Sprintf("%s: Invalid quantity '%s'", rowLabel, qtyStr), ""
	}

	if length <= 0 || qty <= 0 {
		return model.CutRequirement{}, fmt.Sprintf("%s: Length and quantity must be positive", rowLabel), ""
	}

	req := model.NewCutRequirement(tag, length, qty)
	req.Section = getCell(row, mapping.Section)
	req.Note = getCell(row, mapping.Note)

	// Optional cost per metre
	var warning string
	if costStr := getCell(row, mapping.Cost); costStr != "" {
		cost, err := strconv.ParseFloat(costStr, 64)
		if err != nil || cost < 0 {
			warning = fmt.Sprintf("%s: Invalid cost '%s', ignoring", rowLabel, costStr)
		} else {
			req.CostPerMeter = cost
		}
	}

	return req, "", warning
}

// parseStockRow extracts stock units from a row. A quantity of n yields n
// individual units of the same length.
func parseStockRow(row []string, mapping StockColumnMapping, rowLabel string) ([]model.StockUnit, string) {
	label := getCell(row, mapping.Label)

	lengthStr := getCell(row, mapping.Length)
	if lengthStr == "" {
		return nil, fmt.Sprintf("%s: Missing length value", rowLabel)
	}
	length, err := strconv.ParseFloat(lengthStr, 64)
	if err != nil {
		return nil, fmt.Sprintf("%s: Invalid length '%s'", rowLabel, lengthStr)
	}

	qty := 1
	if qtyStr := getCell(row, mapping.Quantity); qtyStr != "" {
		qty, err = strconv.Atoi(qtyStr)
		if err != nil {
			return nil, fmt.Sprintf("%s: Invalid quantity '%s'", rowLabel, qtyStr)
		}
	}

	if length <= 0 || qty <= 0 {
		return nil, fmt.Sprintf("%s: Length and quantity must be positive", rowLabel)
	}

	units := make([]model.StockUnit, 0, qty)
	for i := 0; i < qty; i++ {
		units = append(units, model.NewStockUnit(label, length))
	}
	return units, ""
}

// isEmptyRow returns true if the row has no meaningful content.
func isEmptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// ImportCutsCSV imports a required-cuts table from a CSV file.
// It automatically detects the delimiter and maps columns by header names.
func ImportCutsCSV(path string) CutImportResult {
	result := CutImportResult{}

	data, err := os.ReadFile(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open file: %v", err))
		return result
	}

	if len(bytes.TrimSpace(data)) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	delimiter := DetectCSVDelimiter(data)
	if delimiter != ',' {
		delimName := map[rune]string{';': "semicolon", '\t': "tab", '|': "pipe"}[delimiter]
		result.Warnings = append(result.Warnings, fmt.Sprintf("Detected %s delimiter", delimName))
	}

	records, err := readCSV(bytes.NewReader(data), delimiter)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read CSV: %v", err))
		return result
	}

	return cutsFromRows(records, "Line", result.Warnings)
}

// ImportCutsFromReader imports a required-cuts table from a CSV reader with
// a known delimiter.
func ImportCutsFromReader(reader io.Reader, delimiter rune) CutImportResult {
	records, err := readCSV(reader, delimiter)
	if err != nil {
		return CutImportResult{Errors: []string{fmt.Sprintf("Cannot read CSV: %v", err)}}
	}
	return cutsFromRows(records, "Line", nil)
}

// ImportCutsExcel imports a required-cuts table from an Excel file.
// Reads the first sheet and auto-detects column mapping from headers.
func ImportCutsExcel(path string) CutImportResult {
	rows, errMsg := readExcel(path)
	if errMsg != "" {
		return CutImportResult{Errors: []string{errMsg}}
	}
	return cutsFromRows(rows, "Row", nil)
}

// ImportStockCSV imports a stock table from a CSV file.
func ImportStockCSV(path string) StockImportResult {
	result := StockImportResult{}

	data, err := os.ReadFile(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open file: %v", err))
		return result
	}

	if len(bytes.TrimSpace(data)) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	records, err := readCSV(bytes.NewReader(data), DetectCSVDelimiter(data))
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read CSV: %v", err))
		return result
	}

	return stockFromRows(records, "Line")
}

// ImportStockExcel imports a stock table from an Excel file.
func ImportStockExcel(path string) StockImportResult {
	rows, errMsg := readExcel(path)
	if errMsg != "" {
		return StockImportResult{Errors: []string{errMsg}}
	}
	return stockFromRows(rows, "Row")
}

func readCSV(reader io.Reader, delimiter rune) ([][]string, error) {
	csvReader := csv.NewReader(reader)
	csvReader.Comma = delimiter
	csvReader.LazyQuotes = true
	csvReader.FieldsPerRecord = -1
	return csvReader.ReadAll()
}

func readExcel(path string) ([][]string, string) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Sprintf("Cannot open Excel file: %v", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, "Excel file has no sheets"
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Sprintf("Cannot read Excel data: %v", err)
	}
	if len(rows) == 0 {
		return nil, "Sheet is empty"
	}
	return rows, ""
}

// cutsFromRows is the shared import logic for CSV and Excel cuts tables.
func cutsFromRows(rows [][]string, rowPrefix string, initialWarnings []string) CutImportResult {
	result := CutImportResult{Warnings: initialWarnings}

	if len(rows) == 0 {
		result.Errors = append(result.Errors, "No data rows found")
		return result
	}

	mapping, hasHeader := DetectCutColumns(rows[0])
	startRow := 0
	if hasHeader {
		startRow = 1
		result.Warnings = append(result.Warnings, "Detected header row, skipping")

		missing := []string{}
		if mapping.Tag == -1 {
			missing = append(missing, "Tag")
		}
		if mapping.Length == -1 {
			missing = append(missing, "Length")
		}
		if mapping.Quantity == -1 {
			missing = append(missing, "Quantity")
		}
		if len(missing) > 0 {
			result.Errors = append(result.Errors, fmt.Sprintf("Required columns not found in header: %s", strings.Join(missing, ", ")))
			return result
		}
	} else if len(rows[0]) >= 3 {
		// No recognized header: if the length column of the first row is
		// not numeric it is probably an unrecognized header, skip it.
		if _, err := strconv.ParseFloat(strings.TrimSpace(rows[0][2]), 64); err != nil {
			startRow = 1
			result.Warnings = append(result.Warnings, "Detected header row, skipping")
		}
	}

	for i := startRow; i < len(rows); i++ {
		row := rows[i]
		if isEmptyRow(row) {
			continue
		}

		rowLabel := fmt.Sprintf("%s %d", rowPrefix, i+1)
		req, errMsg, warning := parseCutRow(row, mapping, rowLabel)

		if errMsg != "" {
			result.Errors = append(result.Errors, errMsg)
			continue
		}
		if warning != "" {
			result.Warnings = append(result.Warnings, warning)
		}

		result.Requirements = append(result.Requirements, req)
	}

	return result
}

// stockFromRows is the shared import logic for CSV and Excel stock tables.
func stockFromRows(rows [][]string, rowPrefix string) StockImportResult {
	result := StockImportResult{}

	if len(rows) == 0 {
		result.Errors = append(result.Errors, "No data rows found")
		return result
	}

	mapping, hasHeader := DetectStockColumns(rows[0])
	startRow := 0
	if hasHeader {
		startRow = 1
		result.Warnings = append(result.Warnings, "Detected header row, skipping")

		if mapping.Length == -1 {
			result.Errors = append(result.Errors, "Required column not found in header: Length")
			return result
		}
	} else if len(rows[0]) >= 2 {
		if _, err := strconv.ParseFloat(strings.TrimSpace(rows[0][1]), 64); err != nil {
			startRow = 1
			result.Warnings = append(result.Warnings, "Detected header row, skipping")
		}
	}

	for i := startRow; i < len(rows); i++ {
		row := rows[i]
		if isEmptyRow(row) {
			continue
		}

		rowLabel := fmt.Sprintf("%s %d", rowPrefix, i+1)
		units, errMsg := parseStockRow(row, mapping, rowLabel)
		if errMsg != "" {
			result.Errors = append(result.Errors, errMsg)
			continue
		}
		result.Units = append(result.Units, units...)
	}

	return result
}
