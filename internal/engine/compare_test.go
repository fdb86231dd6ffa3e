package engine

import (
	"testing"

	"github.com/piwi3910/BarNest/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompareScenarios_IndependentSnapshots(t *testing.T) {
	// Both scenarios run against the same two-bar inventory; each must see
	// the full inventory, not the other's leavings.
	reqs := []model.CutRequirement{req("A", 2500, 2)}
	stock := []model.StockUnit{bar(3000), bar(3000)}

	scenarios := []ComparisonScenario{
		{Name: "first", Settings: stockSettings(2)},
		{Name: "second", Settings: stockSettings(2)},
	}
	results := CompareScenarios(scenarios, reqs, stock)

	require.Len(t, results, 2)
	for _, r := range results {
		require.NoError(t, r.Err)
		assert.Equal(t, 2, r.BarsUsed)
		assert.Equal(t, 0, r.UnmetCount)
	}
}

func TestCompareScenarios_ThinnerBladeNeverWorse(t *testing.T) {
	reqs := []model.CutRequirement{req("A", 1000, 6)}

	results := CompareScenarios([]ComparisonScenario{
		{Name: "wide", Settings: catalogSettings(10, 3000)},
		{Name: "thin", Settings: catalogSettings(0, 3000)},
	}, reqs, nil)

	require.Len(t, results, 2)
	require.NoError(t, results[0].Err)
	require.NoError(t, results[1].Err)
	assert.LessOrEqual(t, results[1].BarsUsed, results[0].BarsUsed)
}

func TestCompareScenarios_ReportsErrors(t *testing.T) {
	results := CompareScenarios([]ComparisonScenario{
		{Name: "bad kerf", Settings: catalogSettings(-1, 3000)},
	}, []model.CutRequirement{req("A", 100, 1)}, nil)

	require.Len(t, results, 1)
	assert.ErrorIs(t, results[0].Err, ErrInvalidKerf)
}

func TestBuildDefaultScenarios(t *testing.T) {
	base := model.NestSettings{
		Kerf:         3,
		Mode:         model.ModeRequiredCuts,
		StockLengths: []float64{6000, 9000, 13000},
	}

	scenarios := BuildDefaultScenarios(base)
	require.Len(t, scenarios, 3)
	assert.Equal(t, "Current Settings", scenarios[0].Name)
	assert.InDelta(t, 1.5, scenarios[1].Settings.Kerf, 1e-6)
	assert.Equal(t, []float64{13000}, scenarios[2].Settings.StockLengths)
}

func TestBuildDefaultScenarios_ThinKerfSkipped(t *testing.T) {
	base := model.NestSettings{
		Kerf:         0.8,
		Mode:         model.ModeFromStock,
		StockLengths: []float64{6000},
	}

	scenarios := BuildDefaultScenarios(base)
	require.Len(t, scenarios, 1)
	assert.Equal(t, base, scenarios[0].Settings)
}
