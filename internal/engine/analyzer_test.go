package engine

import (
	"testing"

	"github.com/piwi3910/BarNest/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sharedBarPlan() model.NestingPlan {
	// One 6000 bar holding a 3000 A cut and a 1000 B cut with a 2mm kerf:
	// used 4002, leftover 1998, kerf loss 2.
	return model.NestingPlan{
		Bars: []model.BarAllocation{
			{
				Length: 6000,
				Kerf:   2,
				Placements: []model.Placement{
					{Item: model.DemandItem{Tag: "A", Length: 3000}, Offset: 0},
					{Item: model.DemandItem{Tag: "B", Length: 1000}, Offset: 3002},
				},
				Leftover: 1998,
			},
		},
	}
}

func TestSummarize_ProratesSharedBars(t *testing.T) {
	perTag, overall := Summarize(sharedBarPlan(), nil)

	require.Len(t, perTag, 2)
	a, b := perTag[0], perTag[1]
	assert.Equal(t, "A", a.Tag)
	assert.Equal(t, "B", b.Tag)

	// A holds 3000 of the 4000 product on the bar: a 75% share of kerf,
	// waste and stock consumed.
	assert.Equal(t, 1, a.BarsUsed)
	assert.Equal(t, 1, a.CutsPlaced)
	assert.InDelta(t, 3000.0, a.ProductLength, 1e-6)
	assert.InDelta(t, 1.5, a.KerfLoss, 1e-6)
	assert.InDelta(t, 1498.5, a.Waste, 1e-6)
	assert.InDelta(t, 4.5, a.MetersOrdered, 1e-6)

	assert.InDelta(t, 0.5, b.KerfLoss, 1e-6)
	assert.InDelta(t, 499.5, b.Waste, 1e-6)
	assert.InDelta(t, 1.5, b.MetersOrdered, 1e-6)

	assert.Equal(t, 1, overall.BarsUsed)
	assert.Equal(t, 2, overall.CutsPlaced)
	assert.InDelta(t, 4000.0, overall.ProductLength, 1e-6)
	assert.InDelta(t, 2.0, overall.KerfLoss, 1e-6)
	assert.InDelta(t, 1998.0, overall.Waste, 1e-6)
	assert.InDelta(t, 6.0, overall.MetersOrdered, 1e-6)
}

func TestSummarize_TagSharesSumToBarTotals(t *testing.T) {
	perTag, overall := Summarize(sharedBarPlan(), nil)

	var kerf, waste, meters float64
	for _, s := range perTag {
		kerf += s.KerfLoss
		waste += s.Waste
		meters += s.MetersOrdered
	}
	assert.InDelta(t, overall.KerfLoss, kerf, 1e-6)
	assert.InDelta(t, overall.Waste, waste, 1e-6)
	assert.InDelta(t, overall.MetersOrdered, meters, 1e-6)
}

func TestSummarize_CostPerTag(t *testing.T) {
	reqs := []model.CutRequirement{
		{Tag: "A", Length: 3000, Quantity: 1, CostPerMeter: 0},
		{Tag: "A", Length: 3000, Quantity: 1, CostPerMeter: 85.50},
		{Tag: "B", Length: 1000, Quantity: 1, CostPerMeter: 42.00},
	}

	perTag, overall := Summarize(sharedBarPlan(), reqs)
	require.Len(t, perTag, 2)

	// First non-zero rate per tag wins.
	assert.InDelta(t, 85.50, perTag[0].CostPerMeter, 1e-6)
	assert.InDelta(t, 4.5*85.50, perTag[0].TotalCost, 1e-6)
	assert.InDelta(t, 1.5*42.00, perTag[1].TotalCost, 1e-6)

	// Tags carry different rates, so the overall cost is the tag sum.
	assert.InDelta(t, perTag[0].TotalCost+perTag[1].TotalCost, overall.TotalCost, 1e-6)
}

func TestSummarize_Unmet(t *testing.T) {
	plan := model.NestingPlan{
		Unmet: []model.UnmetItem{
			{Item: model.DemandItem{Tag: "A", Length: 7000}, Reason: model.NoStockLongEnough},
			{Item: model.DemandItem{Tag: "A", Length: 1500}, Reason: model.InventoryExhausted},
		},
	}

	perTag, overall := Summarize(plan, nil)
	require.Len(t, perTag, 1)
	assert.Equal(t, 2, perTag[0].UnmetCount)
	assert.InDelta(t, 8500.0, perTag[0].UnmetLength, 1e-6)
	assert.Equal(t, 2, overall.UnmetCount)
	assert.InDelta(t, 8500.0, overall.UnmetLength, 1e-6)
}

func TestSummarize_Idempotent(t *testing.T) {
	plan := sharedBarPlan()
	firstTags, firstOverall := Summarize(plan, nil)
	secondTags, secondOverall := Summarize(plan, nil)

	assert.Equal(t, firstTags, secondTags)
	assert.Equal(t, firstOverall, secondOverall)
}

func TestSummarize_EmptyPlan(t *testing.T) {
	perTag, overall := Summarize(model.NestingPlan{}, nil)
	assert.Empty(t, perTag)
	assert.Equal(t, model.SummaryStat{}, overall)
}

func TestSummarize_Utilization(t *testing.T) {
	_, overall := Summarize(sharedBarPlan(), nil)
	// 4000 product out of 6000 consumed.
	assert.InDelta(t, 4000.0/6000.0*100.0, overall.Utilization, 1e-6)
}
