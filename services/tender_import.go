package services

import (
	"io"
	"math"
	"strconv"
	"strings"
)

// Tender/BOQ column aliases. Same ordered strict-then-loose matching as
// the supplier importer.
var (
	tenderLineNoAliases = []string{"line no", "line", "item no", "sl no", "no", "sr no"}
	tenderDescAliases   = []string{"description", "item description", "scope of work", "scope", "item", "particulars"}
	tenderUnitAliases   = []string{"unit", "uom", "unit of measure"}
	tenderQtyAliases    = []string{"qty", "quantity"}
)

// ParseTenderLines reads an uploaded bill of quantities into tender
// lines. The description is the only hard requirement per row; it is
// what drives supplier matching; rows without one are dropped. Line
// numbers fall back to the row's position, quantities default to 0.
func ParseTenderLines(r io.Reader, filename string) ([]TenderLine, error) {
	rawRows, err := ParseTenderFile(r, filename)
	if err != nil {
		return nil, err
	}

	var lines []TenderLine
	for i, raw := range rawRows {
		desc := strings.TrimSpace(pickField(raw, tenderDescAliases))
		if desc == "" {
			continue
		}

		lineNo := i + 1
		if v := pickField(raw, tenderLineNoAliases); v != "" {
			if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil && n > 0 {
				lineNo = n
			}
		}

		qty := ParseMoney(pickField(raw, tenderQtyAliases))
		if math.IsNaN(qty) || qty < 0 {
			qty = 0
		}

		lines = append(lines, TenderLine{
			LineNo:      lineNo,
			Description: desc,
			Unit:        strings.TrimSpace(pickField(raw, tenderUnitAliases)),
			Qty:         qty,
		})
	}
	return lines, nil
}

// MatchTenderLines (re)matches every line against the catalog index,
// preserving a previously chosen supplier when it is still among the
// new candidates. The input slice is not mutated.
func MatchTenderLines(idx *MatchIndex, lines []TenderLine) []TenderLine {
	out := make([]TenderLine, len(lines))
	copy(out, lines)
	for i := range out {
		line := &out[i]
		line.SupplierOptions = FindOptionsFor(idx, line.Description, DefaultOptionLimit)
		line.ChosenSourceID = ResolveChosenSource(line.SupplierOptions, line.ChosenSourceID)
	}
	return out
}
