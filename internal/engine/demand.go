// Package engine implements the bar nesting planner: demand aggregation,
// the two supply models, the packing heuristic and plan analysis.
package engine

import (
	"sort"

	"github.com/piwi3910/BarNest/internal/model"
)

// AggregateDemand validates a sequence of cut requirements and expands them
// into individual demand items sorted by descending length. Ties keep input
// order so identical inputs always produce identical demand.
//
// Invalid rows (non-positive length or quantity, empty tag) are skipped and
// reported as rejections; the run continues. Callers decide whether any
// rejection is a hard failure.
func AggregateDemand(reqs []model.CutRequirement) ([]model.DemandItem, []model.Rejection) {
	var demand []model.DemandItem
	var rejected []model.Rejection

	for _, r := range reqs {
		switch {
		case r.Tag == "":
			rejected = append(rejected, model.Rejection{Requirement: r, Reason: "empty tag"})
			continue
		case r.Length <= 0:
			rejected = append(rejected, model.Rejection{Requirement: r, Reason: "non-positive length"})
			continue
		case r.Quantity <= 0:
			rejected = append(rejected, model.Rejection{Requirement: r, Reason: "non-positive quantity"})
			continue
		}
		for i := 0; i < r.Quantity; i++ {
			demand = append(demand, model.DemandItem{
				Tag:     r.Tag,
				Section: r.Section,
				Length:  r.Length,
			})
		}
	}

	// Longest first; stable so equal lengths keep input order.
	sort.SliceStable(demand, func(i, j int) bool {
		return demand[i].Length > demand[j].Length
	})

	return demand, rejected
}
