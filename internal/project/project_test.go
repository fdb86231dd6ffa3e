package project

import (
	"path/filepath"
	"testing"

	"github.com/piwi3910/BarNest/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveLoadProject(t *testing.T) {
	path := filepath.Join(t.TempDir(), "jobs", "gate.json")

	proj := model.NewProject("Workshop Gate")
	proj.Meta.Material = "Mild Steel"
	proj.Requirements = []model.CutRequirement{
		{ID: "r1", Tag: "Frame", Length: 1800, Quantity: 4},
	}
	proj.Stock = []model.StockUnit{{ID: "s1", Label: "Rack A", Length: 6000}}
	proj.Plan = &model.NestingPlan{
		Bars: []model.BarAllocation{
			{
				StockID: "s1",
				Length:  6000,
				Kerf:    2,
				Placements: []model.Placement{
					{Item: model.DemandItem{Tag: "Frame", Length: 1800}, Offset: 0},
				},
				Leftover: 4200,
			},
		},
	}

	require.NoError(t, SaveProject(path, proj))

	loaded, err := LoadProject(path)
	require.NoError(t, err)
	assert.Equal(t, proj.Meta, loaded.Meta)
	assert.Equal(t, proj.Requirements, loaded.Requirements)
	assert.Equal(t, proj.Stock, loaded.Stock)
	require.NotNil(t, loaded.Plan)
	assert.Equal(t, *proj.Plan, *loaded.Plan)
}

func TestLoadProject_MissingFile(t *testing.T) {
	_, err := LoadProject(filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
}

func TestLoadProject_InvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, SaveAppConfig(path, model.DefaultAppConfig()))

	// Valid JSON but not a project: the name check rejects it.
	_, err := LoadProject(path)
	assert.Error(t, err)
}

func TestSaveLoadAppConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")

	config := model.AppConfig{
		DefaultKerf:         3.5,
		DefaultStockLengths: []float64{4000, 12000},
		DefaultMaterial:     "Stainless 304",
		RecentProjects:      []string{"/jobs/gate.json"},
	}
	require.NoError(t, SaveAppConfig(path, config))

	loaded, err := LoadAppConfig(path)
	require.NoError(t, err)
	assert.Equal(t, config, loaded)
}

func TestLoadAppConfig_MissingReturnsDefaults(t *testing.T) {
	loaded, err := LoadAppConfig(filepath.Join(t.TempDir(), "config.json"))
	require.NoError(t, err)
	assert.Equal(t, model.DefaultAppConfig(), loaded)
}

func TestAddRecentProject(t *testing.T) {
	config := model.DefaultAppConfig()

	AddRecentProject(&config, "/jobs/a.json")
	AddRecentProject(&config, "/jobs/b.json")
	AddRecentProject(&config, "/jobs/a.json")

	// Most recent first, no duplicates.
	assert.Equal(t, []string{"/jobs/a.json", "/jobs/b.json"}, config.RecentProjects)
}

func TestAddRecentProject_Cap(t *testing.T) {
	config := model.DefaultAppConfig()
	for i := 0; i < 15; i++ {
		AddRecentProject(&config, filepath.Join("/jobs", string(rune('a'+i))+".json"))
	}
	assert.Len(t, config.RecentProjects, maxRecentProjects)
}

func TestLoadPresets_MissingCreatesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "presets.json")

	presets, err := LoadPresets(path)
	require.NoError(t, err)
	assert.Equal(t, len(model.DefaultPresets().Stocks), len(presets.Stocks))

	// The defaults are persisted for the next load.
	assert.FileExists(t, path)
}

func TestSaveLoadPresets(t *testing.T) {
	path := filepath.Join(t.TempDir(), "presets.json")

	presets := model.Presets{Stocks: []model.StockPreset{
		{ID: "p1", Name: "Channel 6m", Section: "PFC 100x50", Length: 6000},
	}}
	require.NoError(t, SavePresets(path, presets))

	loaded, err := LoadPresets(path)
	require.NoError(t, err)
	assert.Equal(t, presets, loaded)
}

func TestImportPresets_MergesAndSkipsDuplicates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "import.json")
	incoming := model.Presets{Stocks: []model.StockPreset{
		{ID: "p1", Name: "Channel 6m", Length: 6000},
		{ID: "p2", Name: "Channel 9m", Length: 9000},
	}}
	require.NoError(t, SavePresets(path, incoming))

	existing := model.Presets{Stocks: []model.StockPreset{
		{ID: "p1", Name: "Channel 6m (mine)", Length: 6000},
	}}
	merged, err := ImportPresets(path, existing)
	require.NoError(t, err)

	require.Len(t, merged.Stocks, 2)
	assert.Equal(t, "Channel 6m (mine)", merged.Stocks[0].Name, "existing entry wins on ID clash")
	assert.Equal(t, "p2", merged.Stocks[1].ID)
}

func TestBackupRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "backup", "barnest-backup.json")

	config := model.DefaultAppConfig()
	config.DefaultKerf = 2.8
	presets := model.DefaultPresets()

	require.NoError(t, ExportAllData(path, config, presets))

	backup, err := ImportAllData(path)
	require.NoError(t, err)
	assert.Equal(t, "1.0.0", backup.Version)
	assert.NotEmpty(t, backup.CreatedAt)
	assert.Equal(t, config, backup.Config)
	assert.Equal(t, presets, backup.Presets)
}

func TestImportAllData_RejectsMissingVersion(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, SaveAppConfig(path, model.DefaultAppConfig()))

	_, err := ImportAllData(path)
	assert.Error(t, err)
}
