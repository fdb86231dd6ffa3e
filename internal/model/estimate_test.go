package model

import "testing"

func TestCalculatePurchaseEstimate(t *testing.T) {
	reqs := []CutRequirement{
		{Tag: "A", Length: 1000, Quantity: 10},
		{Tag: "B", Length: 500, Quantity: 4},
	}

	// 12000 cut + 28 kerf = 12028 over 6000 bars: 2.004 bars exact,
	// 3 minimum, 10% waste keeps 3.
	est := CalculatePurchaseEstimate(reqs, 6000, 2, 10, 80)

	if !almostEqual(est.TotalCutLength, 12000) {
		t.Errorf("total cut length = %f", est.TotalCutLength)
	}
	if !almostEqual(est.KerfAllowance, 28) {
		t.Errorf("kerf allowance = %f", est.KerfAllowance)
	}
	if est.BarsNeededMin != 3 {
		t.Errorf("min bars = %d, want 3", est.BarsNeededMin)
	}
	if est.BarsWithWaste != 3 {
		t.Errorf("bars with waste = %d, want 3", est.BarsWithWaste)
	}
	if !almostEqual(est.MetersOrdered, 18) {
		t.Errorf("meters = %f, want 18", est.MetersOrdered)
	}
	if !almostEqual(est.EstimatedCost, 18*80) {
		t.Errorf("cost = %f", est.EstimatedCost)
	}
}

func TestCalculatePurchaseEstimate_WasteFactorAddsBars(t *testing.T) {
	reqs := []CutRequirement{{Tag: "A", Length: 2900, Quantity: 2}}

	// 5800 over 6000: exactly 0.967 bars, 1 minimum; 50% waste pushes the
	// recommendation to 2.
	est := CalculatePurchaseEstimate(reqs, 6000, 0, 50, 0)
	if est.BarsNeededMin != 1 {
		t.Errorf("min bars = %d", est.BarsNeededMin)
	}
	if est.BarsWithWaste != 2 {
		t.Errorf("bars with waste = %d, want 2", est.BarsWithWaste)
	}
}

func TestCalculatePurchaseEstimate_SkipsInvalidRows(t *testing.T) {
	reqs := []CutRequirement{
		{Tag: "A", Length: -100, Quantity: 2},
		{Tag: "B", Length: 1000, Quantity: 0},
		{Tag: "C", Length: 1000, Quantity: 1},
	}
	est := CalculatePurchaseEstimate(reqs, 6000, 2, 0, 0)
	if !almostEqual(est.TotalCutLength, 1000) {
		t.Errorf("total cut length = %f, want 1000", est.TotalCutLength)
	}
}

func TestCalculatePurchaseEstimate_ZeroStockLength(t *testing.T) {
	reqs := []CutRequirement{{Tag: "A", Length: 1000, Quantity: 1}}
	est := CalculatePurchaseEstimate(reqs, 0, 2, 10, 50)
	if est.BarsNeededMin != 0 || est.BarsWithWaste != 0 || est.MetersOrdered != 0 {
		t.Errorf("expected empty estimate, got %+v", est)
	}
}
