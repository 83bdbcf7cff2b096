package services

import (
	"fmt"
	"io"
	"math"
	"path/filepath"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

// SupplierRow is one recognized (supplier, product) price observation
// from an uploaded price list. Rows that fail validation never leave the
// importer, so downstream code only ever sees this shape.
type SupplierRow struct {
	SupplierName string
	SKU          string
	ProductName  string
	Unit         string
	Price        float64
	SourceFile   string
}

// Ordered header aliases per logical field. Earlier entries win; the
// strict pass requires the whole canonical header to equal the alias,
// the loose pass accepts substring containment. Extend these lists
// rather than touching the matching code. The ordering is part of the
// tie-break contract and must be preserved.
var (
	supplierAliases = []string{"supplier", "supplier name", "vendor", "vendor name", "brand", "manufacturer"}
	skuAliases      = []string{"sku", "code", "item code", "product code", "stock code", "part no", "part number", "article", "ref"}
	nameAliases     = []string{"product name", "product", "description", "item description", "item name", "item", "name", "title"}
	unitAliases     = []string{"unit", "uom", "unit of measure", "pack size", "per"}
	priceAliases    = []string{"unit price", "sell price", "selling price", "price excl vat", "price zar", "price", "unit cost", "cost price", "cost", "amount", "rate", "zar", "rand"}
)

// pickField resolves one logical field from a row using the two-pass
// strict-then-loose policy. Keys are visited in sorted order so the
// outcome is deterministic for any given row.
func pickField(row map[string]string, aliases []string) string {
	keys := make([]string, 0, len(row))
	for k := range row {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, alias := range aliases {
		for _, k := range keys {
			if k == alias && row[k] != "" {
				return row[k]
			}
		}
	}
	for _, alias := range aliases {
		for _, k := range keys {
			if strings.Contains(k, alias) && row[k] != "" {
				return row[k]
			}
		}
	}
	return ""
}

// CoerceSupplierRows maps arbitrary parsed rows onto the supplier
// catalog schema. Rows without a SKU or product name, or without a
// finite positive price, are silently dropped. Spreadsheets routinely
// contain subtotal, footer and blank rows, and dropping them is policy,
// not an error. fallbackSupplier (the upload's base file name) is used
// when a price list has no supplier column of its own.
func CoerceSupplierRows(rawRows []map[string]string, fallbackSupplier string) []SupplierRow {
	var out []SupplierRow
	for _, raw := range rawRows {
		row := SupplierRow{
			SupplierName: strings.TrimSpace(pickField(raw, supplierAliases)),
			SKU:          strings.TrimSpace(pickField(raw, skuAliases)),
			ProductName:  strings.TrimSpace(pickField(raw, nameAliases)),
			Unit:         strings.TrimSpace(pickField(raw, unitAliases)),
			Price:        ParseMoney(pickField(raw, priceAliases)),
		}
		if row.SKU == "" && row.ProductName == "" {
			continue
		}
		if math.IsNaN(row.Price) || math.IsInf(row.Price, 0) || row.Price <= 0 {
			continue
		}
		if row.SupplierName == "" {
			row.SupplierName = fallbackSupplier
		}
		out = append(out, row)
	}
	return out
}

// DedupKey identifies "the same product" across supplier rows: the SKU
// when present, otherwise the canonicalized product name.
func DedupKey(row SupplierRow) string {
	if sku := strings.TrimSpace(row.SKU); sku != "" {
		return "sku:" + sku
	}
	return "name:" + Canon(row.ProductName)
}

// CollapseToCheapest keeps one row per dedup key (the lowest-priced
// offer), preserving first-appearance order. Used only by the
// "cheapest only" import mode; the default keeps every competing offer.
func CollapseToCheapest(rows []SupplierRow) []SupplierRow {
	best := make(map[string]int)
	var out []SupplierRow
	for _, row := range rows {
		key := DedupKey(row)
		if i, ok := best[key]; ok {
			if row.Price < out[i].Price {
				out[i] = row
			}
			continue
		}
		best[key] = len(out)
		out = append(out, row)
	}
	return out
}

// PriceString serializes a price for persistence, which stores numeric
// values as strings.
func PriceString(price float64) string {
	return decimal.NewFromFloat(price).String()
}

// ImportFile is one uploaded price list.
type ImportFile struct {
	Name   string
	Reader io.Reader
}

// ImportResult summarizes a multi-file supplier import.
type ImportResult struct {
	Rows       []SupplierRow
	TotalRows  int      // parsed rows before validation
	Skipped    int      // rows dropped by validation
	FileErrors []string // per-file parse failures, surfaced but non-fatal
}

// ImportSupplierRows parses every uploaded file into supplier catalog
// rows. A failure in one file does not abort the rest; its error is
// collected and the remaining files still contribute. It fails only
// when the whole import yields zero valid rows, which distinguishes
// "wrong file shape" from "some rows were skipped".
func ImportSupplierRows(files []ImportFile, cheapestOnly bool) (*ImportResult, error) {
	res := &ImportResult{}
	for _, f := range files {
		rawRows, err := ParseTabularFile(f.Reader, f.Name)
		if err != nil {
			res.FileErrors = append(res.FileErrors, fmt.Sprintf("%s: %v", filepath.Base(f.Name), err))
			continue
		}
		fallback := supplierNameFromFile(f.Name)
		rows := CoerceSupplierRows(rawRows, fallback)
		for i := range rows {
			rows[i].SourceFile = filepath.Base(f.Name)
		}
		res.TotalRows += len(rawRows)
		res.Skipped += len(rawRows) - len(rows)
		res.Rows = append(res.Rows, rows...)
	}

	if len(res.Rows) == 0 {
		if len(res.FileErrors) > 0 {
			return nil, fmt.Errorf("no valid rows imported: %s", strings.Join(res.FileErrors, "; "))
		}
		return nil, fmt.Errorf("no valid rows found: check that the file has product name or SKU and price columns")
	}

	if cheapestOnly {
		before := len(res.Rows)
		res.Rows = CollapseToCheapest(res.Rows)
		res.Skipped += before - len(res.Rows)
	}
	return res, nil
}

// supplierNameFromFile derives a supplier name from an upload's base
// file name, minus extension.
func supplierNameFromFile(filename string) string {
	base := filepath.Base(filename)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
