package model

import "math"

// PurchaseEstimate holds the results of a quick bar purchasing calculation.
// It sizes an order without running a full nesting pass: total cut length
// plus kerf allowance divided by the stock length, with a waste factor on
// top.
type PurchaseEstimate struct {
	TotalCutLength float64 `json:"total_cut_length"` // mm, all cuts summed
	KerfAllowance  float64 `json:"kerf_allowance"`   // mm, one kerf per cut
	StockLength    float64 `json:"stock_length"`     // mm per bar
	BarsNeededMin  int     `json:"bars_needed_min"`  // ceiling of exact requirement
	BarsWithWaste  int     `json:"bars_with_waste"`  // recommended order including waste factor
	WastePercent   float64 `json:"waste_percent"`    // waste factor applied (e.g. 10 for 10%)
	MetersOrdered  float64 `json:"meters_ordered"`   // recommended order in metres
	CostPerMeter   float64 `json:"cost_per_meter"`
	EstimatedCost  float64 `json:"estimated_cost"`
}

// CalculatePurchaseEstimate computes how many bars to buy for a cut list.
// The kerf allowance is pessimistic: one kerf per cut, since the estimate
// cannot know which cut will be last on its bar.
func CalculatePurchaseEstimate(reqs []CutRequirement, stockLength, kerf, wastePercent, costPerMeter float64) PurchaseEstimate {
	var totalCut, kerfAllowance float64
	for _, r := range reqs {
		if r.Length <= 0 || r.Quantity <= 0 {
			continue
		}
		totalCut += r.Length * float64(r.Quantity)
		kerfAllowance += kerf * float64(r.Quantity)
	}

	if stockLength <= 0 {
		return PurchaseEstimate{
			TotalCutLength: totalCut,
			KerfAllowance:  kerfAllowance,
			WastePercent:   wastePercent,
			CostPerMeter:   costPerMeter,
		}
	}

	exact := (totalCut + kerfAllowance) / stockLength
	minBars := int(math.Ceil(exact))

	wasteFactor := 1.0 + (wastePercent / 100.0)
	barsWithWaste := int(math.Ceil(exact * wasteFactor))
	if barsWithWaste < minBars {
		barsWithWaste = minBars
	}

	meters := float64(barsWithWaste) * stockLength / 1000.0

	return PurchaseEstimate{
		TotalCutLength: totalCut,
		KerfAllowance:  kerfAllowance,
		StockLength:    stockLength,
		BarsNeededMin:  minBars,
		BarsWithWaste:  barsWithWaste,
		WastePercent:   wastePercent,
		MetersOrdered:  meters,
		CostPerMeter:   costPerMeter,
		EstimatedCost:  meters * costPerMeter,
	}
}
