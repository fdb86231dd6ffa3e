package engine

import (
	"errors"

	"github.com/piwi3910/BarNest/internal/model"
)

// tolerance absorbs floating-point noise in fit checks and invariants.
const tolerance = 1e-6

var (
	// ErrInvalidKerf is returned for a negative kerf, or a kerf at least
	// as long as the shortest stock length. No feasible plan exists.
	ErrInvalidKerf = errors.New("kerf must be non-negative and shorter than the shortest stock length")
	// ErrEmptyDemand is returned when no valid demand items remain after
	// aggregation.
	ErrEmptyDemand = errors.New("no valid cut requirements")
	// ErrNoSupply is returned when the supply pool is empty.
	ErrNoSupply = errors.New("no stock lengths available")
)

// Planner runs the 1D nesting algorithm: a deterministic best-fit-decreasing
// heuristic adapted to kerf loss and the two supply modes.
//
// The heuristic is a deliberate, explainable choice over exact optimization,
// which is NP-hard. The tie-break order is fixed so identical input always
// yields an identical plan: descending demand length, best-fit smallest
// leftover among open bars, earliest-opened bar, smallest-fit stock when
// opening.
type Planner struct {
	Settings model.NestSettings
}

func New(settings model.NestSettings) *Planner {
	return &Planner{Settings: settings}
}

// Plan validates and aggregates the requirements, builds the supply for the
// configured mode, and nests the demand. The rejections list is returned
// even on error so callers can report skipped rows.
//
// In required-cuts mode the supply is the settings' stock length catalog;
// stock is ignored. In from-stock mode the supply is a snapshot of stock.
func (p *Planner) Plan(reqs []model.CutRequirement, stock []model.StockUnit) (model.NestingPlan, []model.Rejection, error) {
	demand, rejected := AggregateDemand(reqs)
	if len(demand) == 0 {
		return model.NestingPlan{}, rejected, ErrEmptyDemand
	}

	var supply Supply
	if p.Settings.Mode == model.ModeFromStock {
		supply = NewInventory(stock)
	} else {
		supply = NewCatalog(p.Settings.StockLengths)
	}

	plan, err := p.PlanDemand(demand, supply)
	return plan, rejected, err
}

// PlanDemand nests pre-aggregated demand against an already built supply.
// The demand slice must be sorted descending by length (AggregateDemand
// output). The supply is depleted in place; pass a snapshot the run owns.
func (p *Planner) PlanDemand(demand []model.DemandItem, supply Supply) (model.NestingPlan, error) {
	if len(demand) == 0 {
		return model.NestingPlan{}, ErrEmptyDemand
	}
	if supply.Longest() == 0 {
		return model.NestingPlan{}, ErrNoSupply
	}
	kerf := p.Settings.Kerf
	if kerf < 0 || kerf >= supply.Shortest() {
		return model.NestingPlan{}, ErrInvalidKerf
	}

	longest := supply.Longest()

	type openBar struct {
		stock model.StockUnit
		items []model.DemandItem
		used  float64 // product length + kerf between cuts
	}
	var bars []openBar
	var unmet []model.UnmetItem

	for _, item := range demand {
		// Items longer than anything the supply ever had can never be
		// placed. Detected up front so the reason is distinct from
		// running out of stock.
		if item.Length > longest+tolerance {
			unmet = append(unmet, model.UnmetItem{Item: item, Reason: model.NoStockLongEnough})
			continue
		}

		// Best fit across open bars: smallest leftover after placing.
		// Every open bar already holds a cut, so placing here always
		// charges one kerf. Strict comparison keeps the earliest-opened
		// bar on ties.
		best := -1
		bestLeft := 0.0
		for i := range bars {
			left := bars[i].stock.Length - (bars[i].used + kerf + item.Length)
			if left < -tolerance {
				continue
			}
			if best < 0 || left < bestLeft {
				best = i
				bestLeft = left
			}
		}
		if best >= 0 {
			bars[best].items = append(bars[best].items, item)
			bars[best].used += kerf + item.Length
			continue
		}

		// No open bar fits: open the smallest stock able to hold the
		// item alone (a first and only cut carries no kerf).
		unit, ok := supply.Open(item.Length)
		if !ok {
			unmet = append(unmet, model.UnmetItem{Item: item, Reason: model.InventoryExhausted})
			continue
		}
		bars = append(bars, openBar{
			stock: unit,
			items: []model.DemandItem{item},
			used:  item.Length,
		})
	}

	// Bars close only now; the final cut on each bar carries no kerf, so
	// used already excludes it and the leftover is exact.
	plan := model.NestingPlan{Unmet: unmet}
	for _, b := range bars {
		alloc := model.BarAllocation{
			StockID:    b.stock.ID,
			StockLabel: b.stock.Label,
			Length:     b.stock.Length,
			Kerf:       kerf,
			Leftover:   b.stock.Length - b.used,
		}
		offset := 0.0
		for _, item := range b.items {
			alloc.Placements = append(alloc.Placements, model.Placement{Item: item, Offset: offset})
			offset += item.Length + kerf
		}
		plan.Bars = append(plan.Bars, alloc)
	}
	return plan, nil
}
