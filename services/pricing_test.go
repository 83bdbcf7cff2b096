package services

import (
	"math"
	"testing"
)

func TestCalcCostPlusPrice(t *testing.T) {
	tests := []struct {
		cost   float64
		markup float64
		want   float64
	}{
		{100, 20, 120},
		{50, 0, 50},
		{80, 100, 160},
	}
	for _, tt := range tests {
		if got := CalcCostPlusPrice(tt.cost, tt.markup); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("CalcCostPlusPrice(%v, %v) = %v, want %v", tt.cost, tt.markup, got, tt.want)
		}
	}
}

func TestCalcRevenueSharePrice(t *testing.T) {
	tests := []struct {
		cost  float64
		share float64
		want  float64
	}{
		{60, 40, 100},
		{50, 0, 50},
		{100, 100, 0}, // no finite price
		{100, 150, 0},
	}
	for _, tt := range tests {
		if got := CalcRevenueSharePrice(tt.cost, tt.share); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("CalcRevenueSharePrice(%v, %v) = %v, want %v", tt.cost, tt.share, got, tt.want)
		}
	}
}

func TestCalcQuoteLine(t *testing.T) {
	line := CalcQuoteLine(100, 3, 15)
	if line.BeforeVAT != 300 {
		t.Errorf("expected before VAT 300, got %v", line.BeforeVAT)
	}
	if line.VATAmount != 45 {
		t.Errorf("expected VAT 45, got %v", line.VATAmount)
	}
	if line.Total != 345 {
		t.Errorf("expected total 345, got %v", line.Total)
	}
}

func TestCalcQuoteTotals(t *testing.T) {
	lines := []QuoteLineCalc{
		CalcQuoteLine(100, 1, 15),
		CalcQuoteLine(200, 2, 0),
	}

	totals := CalcQuoteTotals(lines)
	if totals.TotalBeforeVAT != 500 {
		t.Errorf("expected 500 before VAT, got %v", totals.TotalBeforeVAT)
	}
	if totals.VATAmount != 15 {
		t.Errorf("expected VAT 15, got %v", totals.VATAmount)
	}
	if totals.GrandTotal != 515 {
		t.Errorf("expected grand total 515, got %v", totals.GrandTotal)
	}
}

func TestCalcProjectBudget(t *testing.T) {
	status := CalcProjectBudget(10000, []float64{2500, 1500})
	if status.Spent != 4000 {
		t.Errorf("expected spent 4000, got %v", status.Spent)
	}
	if status.Remaining != 6000 {
		t.Errorf("expected remaining 6000, got %v", status.Remaining)
	}
	if math.Abs(status.SpentPct-40) > 1e-9 {
		t.Errorf("expected 40%% spent, got %v", status.SpentPct)
	}
}

func TestCalcProjectBudgetZeroBudget(t *testing.T) {
	status := CalcProjectBudget(0, []float64{100})
	if status.SpentPct != 0 {
		t.Errorf("expected SpentPct 0 for zero budget, got %v", status.SpentPct)
	}
	if status.Remaining != -100 {
		t.Errorf("expected remaining -100, got %v", status.Remaining)
	}
}
