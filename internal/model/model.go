package model

import (
	"time"

	"github.com/google/uuid"
)

// Mode selects the supply semantics for a nesting run.
type Mode string

const (
	// ModeRequiredCuts nests against an open catalog of standard stock
	// lengths with unlimited supply per length. Used when stock has not
	// been purchased yet.
	ModeRequiredCuts Mode = "required_cuts"
	// ModeFromStock nests against a closed, countable inventory of bars
	// that are depleted as they are consumed.
	ModeFromStock Mode = "from_stock"
)

// CutRequirement is one row of the required-cuts table: a cut length,
// how many of it are needed, and a tag grouping related cuts for reporting.
// Section, cost and note are carried through to reports and have no effect
// on packing.
type CutRequirement struct {
	ID           string  `json:"id"`
	Tag          string  `json:"tag"`
	Section      string  `json:"section,omitempty"`        // e.g. "FLAT 50x5"
	Length       float64 `json:"length"`                   // mm
	Quantity     int     `json:"quantity"`
	CostPerMeter float64 `json:"cost_per_meter,omitempty"` // currency per metre of stock
	Note         string  `json:"note,omitempty"`
}

func NewCutRequirement(tag string, length float64, qty int) CutRequirement {
	return CutRequirement{
		ID:       uuid.New().String()[:8],
		Tag:      tag,
		Length:   length,
		Quantity: qty,
	}
}

// DemandItem is a single required piece, produced by expanding a
// CutRequirement by its quantity. The planner consumes DemandItems so that
// ordering and tie-breaks operate on individual pieces.
type DemandItem struct {
	Tag     string  `json:"tag"`
	Section string  `json:"section,omitempty"`
	Length  float64 `json:"length"` // mm
}

// StockDefinition is a candidate bar length available from an open catalog.
type StockDefinition struct {
	Length float64 `json:"length"` // mm
}

// StockUnit is one physical bar in a closed inventory. It can be consumed
// at most once; the planner operates on snapshots so consumption never
// leaks between independent runs.
type StockUnit struct {
	ID     string  `json:"id"`
	Label  string  `json:"label,omitempty"`
	Length float64 `json:"length"` // mm
}

func NewStockUnit(label string, length float64) StockUnit {
	return StockUnit{
		ID:     uuid.New().String()[:8],
		Label:  label,
		Length: length,
	}
}

// Placement is one cut placed on a bar at a cumulative offset from the
// bar's left end. The kerf gap sits after the cut, except after the last
// cut on the bar.
type Placement struct {
	Item   DemandItem `json:"item"`
	Offset float64    `json:"offset"` // mm from left end
}

// BarAllocation is one stock bar with the cuts assigned to it.
//
// Invariant: ProductLength() + KerfLoss() + Leftover == Length within
// floating-point tolerance.
type BarAllocation struct {
	StockID    string      `json:"stock_id,omitempty"` // set in from-stock mode
	StockLabel string      `json:"stock_label,omitempty"`
	Length     float64     `json:"length"` // mm
	Kerf       float64     `json:"kerf"`   // mm charged per intermediate cut
	Placements []Placement `json:"placements"`
	Leftover   float64     `json:"leftover"` // mm
}

// ProductLength returns the total length of product cut from this bar,
// excluding kerf.
func (b BarAllocation) ProductLength() float64 {
	var total float64
	for _, p := range b.Placements {
		total += p.Item.Length
	}
	return total
}

// KerfLoss returns the material lost to the blade on this bar. The kerf is
// charged between cuts only: n cuts cost n-1 blade gaps.
func (b BarAllocation) KerfLoss() float64 {
	if len(b.Placements) < 2 {
		return 0
	}
	return b.Kerf * float64(len(b.Placements)-1)
}

// Used returns the consumed length of the bar including kerf.
func (b BarAllocation) Used() float64 {
	return b.ProductLength() + b.KerfLoss()
}

// Utilization returns the product fraction of the bar as a percentage.
func (b BarAllocation) Utilization() float64 {
	if b.Length == 0 {
		return 0
	}
	return (b.ProductLength() / b.Length) * 100.0
}

// UnmetReason classifies why a demand item could not be placed.
type UnmetReason string

const (
	// NoStockLongEnough: the item's raw length exceeds every available or
	// cataloged stock length. Detected before placement is attempted.
	NoStockLongEnough UnmetReason = "no_stock_long_enough"
	// InventoryExhausted: from-stock mode only; supply ran out before the
	// demand was satisfied.
	InventoryExhausted UnmetReason = "inventory_exhausted"
)

func (r UnmetReason) String() string {
	switch r {
	case NoStockLongEnough:
		return "No stock long enough"
	case InventoryExhausted:
		return "Inventory exhausted"
	default:
		return string(r)
	}
}

// UnmetItem is a demand item that could not be assigned to any bar.
type UnmetItem struct {
	Item   DemandItem  `json:"item"`
	Reason UnmetReason `json:"reason"`
}

// NestingPlan is the planner's output: an ordered list of bar allocations
// plus the demand that could not be placed.
//
// Invariant: every DemandItem appears in exactly one BarAllocation or in
// the unmet list, never both, never omitted.
type NestingPlan struct {
	Bars  []BarAllocation `json:"bars"`
	Unmet []UnmetItem     `json:"unmet,omitempty"`
}

// CutsPlaced returns the total number of cuts across all bars.
func (p NestingPlan) CutsPlaced() int {
	total := 0
	for _, b := range p.Bars {
		total += len(b.Placements)
	}
	return total
}

// TotalWaste returns the summed leftover length across all bars.
func (p NestingPlan) TotalWaste() float64 {
	var total float64
	for _, b := range p.Bars {
		total += b.Leftover
	}
	return total
}

// TotalUtilization returns the overall product fraction of all consumed
// stock as a percentage.
func (p NestingPlan) TotalUtilization() float64 {
	var product, stock float64
	for _, b := range p.Bars {
		product += b.ProductLength()
		stock += b.Length
	}
	if stock == 0 {
		return 0
	}
	return (product / stock) * 100.0
}

// Rejection records a requirement that failed validation and was excluded
// from the demand. Per-row problems never abort the run.
type Rejection struct {
	Requirement CutRequirement `json:"requirement"`
	Reason      string         `json:"reason"`
}

// NestSettings holds the configuration recognised by the nesting engine.
type NestSettings struct {
	Kerf         float64   `json:"kerf"`          // mm lost per intermediate cut
	Mode         Mode      `json:"mode"`
	StockLengths []float64 `json:"stock_lengths"` // catalog lengths, ascending (required-cuts mode)
}

func DefaultSettings() NestSettings {
	return NestSettings{
		Kerf:         2.0,
		Mode:         ModeRequiredCuts,
		StockLengths: []float64{6000, 9000, 13000},
	}
}

// SummaryStat holds derived statistics for one tag, or for the whole plan
// when Tag is empty.
type SummaryStat struct {
	Tag           string  `json:"tag,omitempty"`
	BarsUsed      int     `json:"bars_used"`
	CutsPlaced    int     `json:"cuts_placed"`
	ProductLength float64 `json:"product_length"` // mm, excluding kerf
	KerfLoss      float64 `json:"kerf_loss"`      // mm
	Waste         float64 `json:"waste"`          // mm leftover
	Utilization   float64 `json:"utilization"`    // percent
	UnmetCount    int     `json:"unmet_count"`
	UnmetLength   float64 `json:"unmet_length"`   // mm
	MetersOrdered float64 `json:"meters_ordered"` // total stock length consumed, in metres
	CostPerMeter  float64 `json:"cost_per_meter,omitempty"`
	TotalCost     float64 `json:"total_cost,omitempty"`
}

// ProjectMeta holds the job details printed on report headers.
type ProjectMeta struct {
	Name          string `json:"name"`
	Location      string `json:"location,omitempty"`
	PersonCutting string `json:"person_cutting,omitempty"`
	Supplier      string `json:"supplier,omitempty"`
	OrderNumber   string `json:"order_number,omitempty"`
	DrawingNumber string `json:"drawing_number,omitempty"`
	Revision      string `json:"revision,omitempty"`
	Material      string `json:"material,omitempty"`
	Date          string `json:"date,omitempty"` // YYYY-MM-DD
}

// Project ties everything together for save/load and summary reporting.
type Project struct {
	Meta         ProjectMeta      `json:"meta"`
	Requirements []CutRequirement `json:"requirements"`
	Stock        []StockUnit      `json:"stock,omitempty"`
	Settings     NestSettings     `json:"settings"`
	Plan         *NestingPlan     `json:"plan,omitempty"`
	Stats        []SummaryStat    `json:"stats,omitempty"`
}

func NewProject(name string) Project {
	return Project{
		Meta: ProjectMeta{
			Name: name,
			Date: time.Now().Format("2006-01-02"),
		},
		Requirements: []CutRequirement{},
		Settings:     DefaultSettings(),
	}
}
