// Package services provides the pricing, import, matching and export
// logic behind the quotation and tender tooling.
package services

// CalcCostPlusPrice applies a flat percentage markup to a unit cost.
func CalcCostPlusPrice(unitCost, markupPct float64) float64 {
	return unitCost * (1 + markupPct/100)
}

// CalcRevenueSharePrice prices a unit so that revenuePct of the selling
// price is gross profit: price = cost / (1 - revenuePct/100). A share of
// 100% or more has no finite price; 0 is returned.
func CalcRevenueSharePrice(unitCost, revenuePct float64) float64 {
	if revenuePct >= 100 {
		return 0
	}
	return unitCost / (1 - revenuePct/100)
}

// QuoteLineCalc holds the calculated amounts for one quote or invoice line.
type QuoteLineCalc struct {
	UnitPrice float64
	Qty       float64
	VATPct    float64
	BeforeVAT float64 // UnitPrice * Qty
	VATAmount float64 // BeforeVAT * VATPct / 100
	Total     float64 // BeforeVAT + VATAmount
}

// CalcQuoteLine calculates one line's totals.
func CalcQuoteLine(unitPrice, qty, vatPct float64) QuoteLineCalc {
	beforeVAT := unitPrice * qty
	vatAmount := beforeVAT * vatPct / 100
	return QuoteLineCalc{
		UnitPrice: unitPrice,
		Qty:       qty,
		VATPct:    vatPct,
		BeforeVAT: beforeVAT,
		VATAmount: vatAmount,
		Total:     beforeVAT + vatAmount,
	}
}

// QuoteTotals holds the aggregated totals for a quote or invoice.
type QuoteTotals struct {
	TotalBeforeVAT float64
	VATAmount      float64
	GrandTotal     float64
}

// CalcQuoteTotals sums all line amounts into document totals.
func CalcQuoteTotals(lines []QuoteLineCalc) QuoteTotals {
	var totals QuoteTotals
	for _, line := range lines {
		totals.TotalBeforeVAT += line.BeforeVAT
		totals.VATAmount += line.VATAmount
	}
	totals.GrandTotal = totals.TotalBeforeVAT + totals.VATAmount
	return totals
}

// ProjectBudgetStatus compares a project's budget against recorded
// expenses.
type ProjectBudgetStatus struct {
	Budget    float64
	Spent     float64
	Remaining float64
	SpentPct  float64
}

// CalcProjectBudget sums expenses against a project budget. SpentPct is
// 0 for a zero budget rather than a division by zero.
func CalcProjectBudget(budget float64, expenses []float64) ProjectBudgetStatus {
	status := ProjectBudgetStatus{Budget: budget}
	for _, e := range expenses {
		status.Spent += e
	}
	status.Remaining = budget - status.Spent
	if budget > 0 {
		status.SpentPct = (status.Spent / budget) * 100
	}
	return status
}
