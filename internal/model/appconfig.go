package model

// AppConfig holds application-wide preferences and default settings.
type AppConfig struct {
	// Defaults applied to new projects
	DefaultKerf         float64   `json:"default_kerf"`
	DefaultStockLengths []float64 `json:"default_stock_lengths"`
	DefaultMaterial     string    `json:"default_material"`

	// Application preferences
	RecentProjects []string `json:"recent_projects"`
}

// DefaultAppConfig returns an AppConfig populated with defaults matching
// DefaultSettings().
func DefaultAppConfig() AppConfig {
	defaults := DefaultSettings()
	return AppConfig{
		DefaultKerf:         defaults.Kerf,
		DefaultStockLengths: defaults.StockLengths,
		DefaultMaterial:     "Mild Steel",
		RecentProjects:      []string{},
	}
}

// ApplyToSettings copies the defaults from AppConfig into a NestSettings
// struct, used when creating a new project.
func (c AppConfig) ApplyToSettings(s *NestSettings) {
	s.Kerf = c.DefaultKerf
	if len(c.DefaultStockLengths) > 0 {
		s.StockLengths = append([]float64(nil), c.DefaultStockLengths...)
	}
}
