package engine

import (
	"sort"

	"github.com/piwi3910/BarNest/internal/model"
)

// Supply is the capability shared by both supply models: given a minimum
// usable length, produce a bar or report unavailability. The planner is
// written once against this interface; mode selection is configuration.
type Supply interface {
	// Longest returns the longest bar length this supply could ever
	// produce, including already consumed units. Zero means no supply.
	Longest() float64
	// Shortest returns the shortest bar length in the supply pool.
	Shortest() float64
	// Open produces the smallest bar able to hold min. The second return
	// is false when the supply cannot produce such a bar.
	Open(min float64) (model.StockUnit, bool)
}

// Catalog is the open supply model: an ascending set of standard stock
// lengths with unlimited availability per length.
type Catalog struct {
	lengths []float64
}

// NewCatalog builds a catalog from the given lengths. The input is copied
// and sorted ascending; non-positive and duplicate lengths are dropped.
func NewCatalog(lengths []float64) *Catalog {
	seen := make(map[float64]bool, len(lengths))
	cleaned := make([]float64, 0, len(lengths))
	for _, l := range lengths {
		if l > 0 && !seen[l] {
			seen[l] = true
			cleaned = append(cleaned, l)
		}
	}
	sort.Float64s(cleaned)
	return &Catalog{lengths: cleaned}
}

// Lengths returns the catalog lengths in ascending order.
func (c *Catalog) Lengths() []float64 {
	return append([]float64(nil), c.lengths...)
}

func (c *Catalog) Longest() float64 {
	if len(c.lengths) == 0 {
		return 0
	}
	return c.lengths[len(c.lengths)-1]
}

func (c *Catalog) Shortest() float64 {
	if len(c.lengths) == 0 {
		return 0
	}
	return c.lengths[0]
}

// Open returns an anonymous bar of the smallest catalog length that holds
// min. Catalog supply is unlimited, so this never depletes anything.
func (c *Catalog) Open(min float64) (model.StockUnit, bool) {
	for _, l := range c.lengths {
		if l >= min-tolerance {
			return model.StockUnit{Length: l}, true
		}
	}
	return model.StockUnit{}, false
}

// Inventory is the closed supply model: a fixed multiset of physical bars,
// each consumable at most once. An Inventory is an owned snapshot; the
// planner depletes its copy and never the caller's slice, so independent
// runs cannot interfere.
type Inventory struct {
	units    []model.StockUnit
	consumed []bool
}

// NewInventory builds an inventory snapshot from the given units. The
// slice is copied; bars with non-positive length are dropped.
func NewInventory(units []model.StockUnit) *Inventory {
	cleaned := make([]model.StockUnit, 0, len(units))
	for _, u := range units {
		if u.Length > 0 {
			cleaned = append(cleaned, u)
		}
	}
	return &Inventory{
		units:    cleaned,
		consumed: make([]bool, len(cleaned)),
	}
}

// Clone returns an independent copy with the same remaining units.
func (inv *Inventory) Clone() *Inventory {
	return &Inventory{
		units:    append([]model.StockUnit(nil), inv.units...),
		consumed: append([]bool(nil), inv.consumed...),
	}
}

// Longest reports over the full pool, consumed units included, so the
// planner can distinguish "never had stock that long" from exhaustion.
func (inv *Inventory) Longest() float64 {
	var longest float64
	for _, u := range inv.units {
		if u.Length > longest {
			longest = u.Length
		}
	}
	return longest
}

func (inv *Inventory) Shortest() float64 {
	var shortest float64
	for _, u := range inv.units {
		if shortest == 0 || u.Length < shortest {
			shortest = u.Length
		}
	}
	return shortest
}

// Remaining returns the unconsumed units ordered by descending length.
func (inv *Inventory) Remaining() []model.StockUnit {
	var rem []model.StockUnit
	for i, u := range inv.units {
		if !inv.consumed[i] {
			rem = append(rem, u)
		}
	}
	sort.SliceStable(rem, func(i, j int) bool {
		return rem[i].Length > rem[j].Length
	})
	return rem
}

// Open consumes the smallest unconsumed unit able to hold min, preserving
// longer bars for later large demand. Equal lengths are taken in stored
// order for determinism.
func (inv *Inventory) Open(min float64) (model.StockUnit, bool) {
	best := -1
	for i, u := range inv.units {
		if inv.consumed[i] || u.Length < min-tolerance {
			continue
		}
		if best < 0 || u.Length < inv.units[best].Length {
			best = i
		}
	}
	if best < 0 {
		return model.StockUnit{}, false
	}
	inv.consumed[best] = true
	return inv.units[best], true
}
