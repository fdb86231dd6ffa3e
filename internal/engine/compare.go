package engine

import (
	"fmt"

	"github.com/piwi3910/BarNest/internal/model"
)

// ComparisonScenario defines a named set of settings to compare.
type ComparisonScenario struct {
	Name     string
	Settings model.NestSettings
}

// ComparisonResult holds the nesting plan and computed statistics for a
// single scenario.
type ComparisonResult struct {
	Scenario     ComparisonScenario
	Plan         model.NestingPlan
	BarsUsed     int
	CutsPlaced   int
	WastePercent float64
	UnmetCount   int
	Err          error
}

// CompareScenarios runs the planner for each scenario and returns the
// results in scenario order. Each run gets its own supply snapshot built
// from the same base requirements and stock, so trials never deplete each
// other's inventory and each fixed scenario stays deterministic.
func CompareScenarios(scenarios []ComparisonScenario, reqs []model.CutRequirement, stock []model.StockUnit) []ComparisonResult {
	results := make([]ComparisonResult, 0, len(scenarios))

	for _, scenario := range scenarios {
		planner := New(scenario.Settings)
		plan, _, err := planner.Plan(reqs, stock)

		wastePercent := 0.0
		if util := plan.TotalUtilization(); util > 0 {
			wastePercent = 100.0 - util
		}

		results = append(results, ComparisonResult{
			Scenario:     scenario,
			Plan:         plan,
			BarsUsed:     len(plan.Bars),
			CutsPlaced:   plan.CutsPlaced(),
			WastePercent: wastePercent,
			UnmetCount:   len(plan.Unmet),
			Err:          err,
		})
	}

	return results
}

// BuildDefaultScenarios generates what-if scenarios around the current
// settings: a thinner blade and restricted catalog choices.
func BuildDefaultScenarios(base model.NestSettings) []ComparisonScenario {
	scenarios := []ComparisonScenario{
		{Name: "Current Settings", Settings: base},
	}

	if base.Kerf > 1.0 {
		thin := base
		thin.Kerf = base.Kerf * 0.5
		scenarios = append(scenarios, ComparisonScenario{
			Name:     fmt.Sprintf("Kerf %.1fmm (half)", thin.Kerf),
			Settings: thin,
		})
	}

	// Restricting the catalog to a single length shows the cost of
	// ordering only one bar size.
	if base.Mode == model.ModeRequiredCuts && len(base.StockLengths) > 1 {
		longest := base.StockLengths[0]
		for _, l := range base.StockLengths {
			if l > longest {
				longest = l
			}
		}
		only := base
		only.StockLengths = []float64{longest}
		scenarios = append(scenarios, ComparisonScenario{
			Name:     fmt.Sprintf("Only %.0fmm bars", longest),
			Settings: only,
		})
	}

	return scenarios
}
