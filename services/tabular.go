package services

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	xls "github.com/extrame/xls"
	"github.com/xuri/excelize/v2"
)

// headerScanLimit bounds how deep into a sheet the header-row heuristic
// looks. Real supplier price lists often carry logos, titles and blank
// rows above the actual header, but never 80 of them.
const headerScanLimit = 80

// UnsupportedFileTypeError is returned when an upload has an extension
// the importer cannot parse. The extension is kept so the user-facing
// message can name it.
type UnsupportedFileTypeError struct {
	Ext string
}

func (e *UnsupportedFileTypeError) Error() string {
	return fmt.Sprintf("unsupported file type %q: expected .csv, .xlsx or .xls", e.Ext)
}

// ParseTabularFile reads a CSV or spreadsheet upload into row maps keyed
// by canonicalized header name. Spreadsheets go through densest-sheet
// selection and label-density header detection; CSVs are assumed to have
// their header on the first line.
func ParseTabularFile(r io.Reader, filename string) ([]map[string]string, error) {
	return parseTabular(r, filename, detectHeaderRow)
}

// ParseTenderFile is the tender/BOQ variant: same readers, but the
// header row is found by fixed column-name hints ("description", "qty",
// "unit", ...) because tender files are expected to be close to
// well-formed.
func ParseTenderFile(r io.Reader, filename string) ([]map[string]string, error) {
	return parseTabular(r, filename, detectTenderHeaderRow)
}

func parseTabular(r io.Reader, filename string, pickHeader func([][]string) int) ([]map[string]string, error) {
	ext := strings.ToLower(filepath.Ext(filename))

	var grid [][]string
	var err error
	switch ext {
	case ".csv":
		return parseCSVRows(r)
	case ".xlsx":
		grid, err = readXLSXGrid(r)
	case ".xls":
		grid, err = readXLSGrid(r)
	default:
		return nil, &UnsupportedFileTypeError{Ext: ext}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", filepath.Base(filename), err)
	}
	if len(grid) == 0 {
		return nil, fmt.Errorf("file must contain a header row and at least one data row")
	}

	headerIdx := pickHeader(grid)
	rows := rowsFromGrid(grid, headerIdx)
	if len(rows) == 0 {
		return nil, fmt.Errorf("file must contain a header row and at least one data row")
	}
	return rows, nil
}

// parseCSVRows reads a CSV with a first-line header. LazyQuotes and
// variable field counts keep hand-edited exports parseable.
func parseCSVRows(r io.Reader) ([]map[string]string, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	allRows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse CSV: %w", err)
	}
	if len(allRows) < 2 {
		return nil, fmt.Errorf("file must contain a header row and at least one data row")
	}

	return rowsFromGrid(allRows, 0), nil
}

// readXLSXGrid loads an .xlsx workbook and returns the densest sheet as
// an array of rows. Density is the count of non-empty cells: supplier
// workbooks often carry cover or notes sheets next to the price list.
func readXLSXGrid(r io.Reader) ([][]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	var best [][]string
	bestCount := -1
	for _, name := range f.GetSheetList() {
		rows, err := f.GetRows(name)
		if err != nil {
			continue
		}
		count := countNonEmptyCells(rows)
		if count > bestCount {
			best = rows
			bestCount = count
		}
	}
	if best == nil {
		return nil, fmt.Errorf("workbook has no readable sheets")
	}
	return best, nil
}

// readXLSGrid handles legacy .xls workbooks via extrame/xls. Row width is
// probed cell by cell because the format does not reliably report the
// last used column.
func readXLSGrid(r io.Reader) ([][]string, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	wb, err := xls.OpenReader(bytes.NewReader(b), "utf-8")
	if err != nil || wb == nil {
		return nil, fmt.Errorf("failed to open .xls workbook: %w", err)
	}

	var best [][]string
	bestCount := -1
	for i := 0; i < wb.NumSheets(); i++ {
		sheet := wb.GetSheet(i)
		if sheet == nil {
			continue
		}
		grid := xlsSheetGrid(sheet)
		count := countNonEmptyCells(grid)
		if count > bestCount {
			best = grid
			bestCount = count
		}
	}
	if best == nil {
		return nil, fmt.Errorf("workbook has no readable sheets")
	}
	return best, nil
}

func xlsSheetGrid(sheet *xls.WorkSheet) [][]string {
	const probeMax = 256

	maxCols := 1
	for i := 0; i <= int(sheet.MaxRow); i++ {
		row := sheet.Row(i)
		if row == nil {
			continue
		}
		for j := 0; j < probeMax; j++ {
			if strings.TrimSpace(row.Col(j)) != "" && j+1 > maxCols {
				maxCols = j + 1
			}
		}
	}

	grid := make([][]string, 0, int(sheet.MaxRow)+1)
	for i := 0; i <= int(sheet.MaxRow); i++ {
		row := sheet.Row(i)
		cols := make([]string, maxCols)
		if row != nil {
			for j := 0; j < maxCols; j++ {
				cols[j] = row.Col(j)
			}
		}
		grid = append(grid, cols)
	}
	return grid
}

func countNonEmptyCells(rows [][]string) int {
	count := 0
	for _, row := range rows {
		for _, cell := range row {
			if strings.TrimSpace(cell) != "" {
				count++
			}
		}
	}
	return count
}

// detectHeaderRow scans the first 80 rows and picks the one with the most
// cells that are non-empty and not purely numeric. The most label-like
// row. Ties go to the first occurrence, so a title row above an equally
// dense header still loses to it only when strictly denser.
func detectHeaderRow(grid [][]string) int {
	bestIdx := 0
	bestScore := -1
	limit := len(grid)
	if limit > headerScanLimit {
		limit = headerScanLimit
	}
	for i := 0; i < limit; i++ {
		score := 0
		for _, cell := range grid[i] {
			cell = strings.TrimSpace(cell)
			if cell == "" {
				continue
			}
			if _, err := strconv.ParseFloat(cell, 64); err == nil {
				continue
			}
			score++
		}
		if score > bestScore {
			bestScore = score
			bestIdx = i
		}
	}
	return bestIdx
}

// Column names that identify a tender header row.
var tenderHeaderHints = []string{"description", "qty", "quantity", "unit", "uom", "item", "line", "rate"}

// detectTenderHeaderRow returns the first row where at least two cells
// look like known tender column names, falling back to row 0.
func detectTenderHeaderRow(grid [][]string) int {
	limit := len(grid)
	if limit > headerScanLimit {
		limit = headerScanLimit
	}
	for i := 0; i < limit; i++ {
		hits := 0
		for _, cell := range grid[i] {
			c := Canon(cell)
			if c == "" {
				continue
			}
			for _, hint := range tenderHeaderHints {
				if strings.Contains(c, hint) {
					hits++
					break
				}
			}
		}
		if hits >= 2 {
			return i
		}
	}
	return 0
}

var headerNonWord = regexp.MustCompile(`[^a-z0-9_ ]`)

// canonHeader normalizes one header cell: lowercase, strip non-word
// characters, collapse whitespace.
func canonHeader(h string) string {
	h = strings.ToLower(strings.TrimSpace(h))
	h = headerNonWord.ReplaceAllString(h, " ")
	return strings.Join(strings.Fields(h), " ")
}

// headerNames canonicalizes a header row, naming blank cells
// positionally and disambiguating duplicates with _2, _3 suffixes.
func headerNames(headerRow []string) []string {
	names := make([]string, len(headerRow))
	seen := make(map[string]int, len(headerRow))
	for i, h := range headerRow {
		name := canonHeader(h)
		if name == "" {
			name = fmt.Sprintf("column_%d", i+1)
		}
		seen[name]++
		if n := seen[name]; n > 1 {
			name = fmt.Sprintf("%s_%d", name, n)
		}
		names[i] = name
	}
	return names
}

// rowsFromGrid converts everything after the header row into maps keyed
// by canonical header name, excluding fully-blank rows.
func rowsFromGrid(grid [][]string, headerIdx int) []map[string]string {
	if headerIdx >= len(grid) {
		return nil
	}
	headers := headerNames(grid[headerIdx])

	var out []map[string]string
	for r := headerIdx + 1; r < len(grid); r++ {
		rec := grid[r]
		row := make(map[string]string, len(headers))
		empty := true
		for c, name := range headers {
			var v string
			if c < len(rec) {
				v = strings.TrimSpace(rec[c])
			}
			row[name] = v
			if v != "" {
				empty = false
			}
		}
		if !empty {
			out = append(out, row)
		}
	}
	return out
}
