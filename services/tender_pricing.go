package services

// PricingMode selects how suggested prices are derived from cost.
type PricingMode string

const (
	// PricingModeMargin applies a flat percentage markup to every line.
	PricingModeMargin PricingMode = "margin"
	// PricingModeTargetProfit distributes a fixed absolute profit goal
	// across lines in proportion to their share of total cost.
	PricingModeTargetProfit PricingMode = "targetProfit"
)

// TenderLine is one row of an uploaded bill of quantities together with
// its matching and pricing state.
type TenderLine struct {
	ID                 string           `json:"id"`
	LineNo             int              `json:"lineNo"`
	Description        string           `json:"description"`
	Unit               string           `json:"unit,omitempty"`
	Qty                float64          `json:"qty"`
	SupplierOptions    []SupplierOption `json:"supplierOptions"`
	ChosenSourceID     string           `json:"chosenSourceId,omitempty"`
	CostPerUnit        float64          `json:"costPerUnit"`
	ProductCost        float64          `json:"productCost,omitempty"` // cost of a directly mapped catalog product
	SuggestedUnitPrice float64          `json:"suggestedUnitPrice"`
	SuggestedLineTotal float64          `json:"suggestedLineTotal"`
}

// TenderState is an aggregate pricing session over a tender's lines.
type TenderState struct {
	Lines           []TenderLine `json:"lines"`
	Mode            PricingMode  `json:"pricingMode"`
	TargetMarginPct float64      `json:"targetMarginPct"`
	TargetProfitAbs float64      `json:"targetProfitAbsolute"`
}

// TenderTotals aggregates cost, price and margin across all lines.
type TenderTotals struct {
	Cost      float64 `json:"cost"`
	Price     float64 `json:"price"`
	Profit    float64 `json:"profit"`
	MarginPct float64 `json:"marginPct"`
}

// Recalculate computes suggested unit prices and line totals for every
// line. It is a pure function of the state: the input is not mutated,
// and recalculating twice without other changes yields identical
// output. Suggested values are rounded to 2 decimals before storage so
// downstream totals sum the displayed figures, not the raw floats.
func Recalculate(state TenderState) TenderState {
	out := state
	out.Lines = make([]TenderLine, len(state.Lines))
	copy(out.Lines, state.Lines)

	// Target-profit allocation needs the cost basis of the whole tender.
	var totalCostBasis float64
	if out.Mode == PricingModeTargetProfit {
		for i := range out.Lines {
			line := &out.Lines[i]
			totalCostBasis += line.Qty * resolveCost(line)
		}
	}

	for i := range out.Lines {
		line := &out.Lines[i]
		cost := resolveCost(line)
		line.CostPerUnit = cost

		var unitPrice float64
		switch out.Mode {
		case PricingModeTargetProfit:
			var lineProfit float64
			if totalCostBasis > 0 {
				share := (line.Qty * cost) / totalCostBasis
				lineProfit = out.TargetProfitAbs * share
			}
			qtyDiv := line.Qty
			if qtyDiv < 1 {
				qtyDiv = 1
			}
			unitPrice = cost + lineProfit/qtyDiv
		default:
			unitPrice = cost * (1 + out.TargetMarginPct/100)
		}

		qty := line.Qty
		if qty < 0 {
			qty = 0
		}
		line.SuggestedUnitPrice = Round2(unitPrice)
		line.SuggestedLineTotal = Round2(line.SuggestedUnitPrice * qty)
	}
	return out
}

// resolveCost picks a line's effective cost per unit: an already
// resolved positive cost wins, then the chosen supplier option's price,
// then a directly mapped product's cost.
func resolveCost(line *TenderLine) float64 {
	if line.CostPerUnit > 0 {
		return line.CostPerUnit
	}
	if line.ChosenSourceID != "" {
		for _, opt := range line.SupplierOptions {
			if opt.SourceID == line.ChosenSourceID {
				return opt.Price
			}
		}
	}
	if line.ProductCost > 0 {
		return line.ProductCost
	}
	return 0
}

// CalcTenderTotals sums cost and suggested price across lines. Margin
// percent falls back to 0 on a zero cost basis rather than dividing by
// zero.
func CalcTenderTotals(lines []TenderLine) TenderTotals {
	var totals TenderTotals
	for i := range lines {
		totals.Cost += lines[i].Qty * lines[i].CostPerUnit
		totals.Price += lines[i].SuggestedLineTotal
	}
	totals.Profit = totals.Price - totals.Cost
	if totals.Cost > 0 {
		totals.MarginPct = (totals.Profit / totals.Cost) * 100
	}
	return totals
}
