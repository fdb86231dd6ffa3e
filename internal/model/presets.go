package model

import "github.com/google/uuid"

// StockPreset is a reusable stock bar definition: a named standard length
// for a given steel section.
type StockPreset struct {
	ID      string  `json:"id"`
	Name    string  `json:"name"`
	Section string  `json:"section,omitempty"`
	Length  float64 `json:"length"` // mm
}

// NewStockPreset creates a new StockPreset with a generated ID.
func NewStockPreset(name, section string, length float64) StockPreset {
	return StockPreset{
		ID:      uuid.New().String()[:8],
		Name:    name,
		Section: section,
		Length:  length,
	}
}

// ToStockUnits expands a preset into qty individual stock units.
func (sp StockPreset) ToStockUnits(qty int) []StockUnit {
	units := make([]StockUnit, 0, qty)
	for i := 0; i < qty; i++ {
		units = append(units, NewStockUnit(sp.Name, sp.Length))
	}
	return units
}

// Presets holds the user's saved stock bar definitions.
type Presets struct {
	Stocks []StockPreset `json:"stocks"`
}

// DefaultPresets returns presets populated with common mill lengths.
func DefaultPresets() Presets {
	return Presets{
		Stocks: []StockPreset{
			NewStockPreset("Flat Bar 6m", "FLAT 50x5", 6000),
			NewStockPreset("Flat Bar 9m", "FLAT 50x5", 9000),
			NewStockPreset("Flat Bar 13m", "FLAT 50x5", 13000),
			NewStockPreset("Angle 6m", "ANGLE 50x50x5", 6000),
			NewStockPreset("Angle 9m", "ANGLE 50x50x5", 9000),
			NewStockPreset("Square Tube 6m", "SHS 50x50x2", 6000),
		},
	}
}

// FindStockByID returns a pointer to the preset with the given ID, or nil.
func (p *Presets) FindStockByID(id string) *StockPreset {
	for i := range p.Stocks {
		if p.Stocks[i].ID == id {
			return &p.Stocks[i]
		}
	}
	return nil
}

// FindStockByName returns a pointer to the first preset with the given name, or nil.
func (p *Presets) FindStockByName(name string) *StockPreset {
	for i := range p.Stocks {
		if p.Stocks[i].Name == name {
			return &p.Stocks[i]
		}
	}
	return nil
}

// StockNames returns the preset names in stored order.
func (p *Presets) StockNames() []string {
	names := make([]string, len(p.Stocks))
	for i, s := range p.Stocks {
		names[i] = s.Name
	}
	return names
}
