package project

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/piwi3910/BarNest/internal/model"
)

// DefaultPresetsPath returns the default file path for stock presets.
// This is located at ~/.barnest/presets.json.
func DefaultPresetsPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".barnest", "presets.json"), nil
}

// SavePresets writes the stock presets to the specified JSON file.
// It creates parent directories if they do not exist.
func SavePresets(path string, presets model.Presets) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(presets, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// LoadPresets reads the stock presets from the specified JSON file.
// If the file does not exist, it returns the default presets and saves them.
func LoadPresets(path string) (model.Presets, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			presets := model.DefaultPresets()
			if saveErr := SavePresets(path, presets); saveErr != nil {
				return presets, saveErr
			}
			return presets, nil
		}
		return model.Presets{}, err
	}
	var presets model.Presets
	if err := json.Unmarshal(data, &presets); err != nil {
		return model.Presets{}, err
	}
	return presets, nil
}

// LoadOrCreatePresets loads presets from the default path, creating the
// file with default entries when missing.
func LoadOrCreatePresets() (model.Presets, string, error) {
	path, err := DefaultPresetsPath()
	if err != nil {
		return model.DefaultPresets(), "", err
	}
	presets, err := LoadPresets(path)
	return presets, path, err
}

// ImportPresets imports presets from a user-specified JSON file, merging
// them with the existing presets. Duplicate IDs are skipped.
func ImportPresets(path string, existing model.Presets) (model.Presets, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return existing, err
	}
	var imported model.Presets
	if err := json.Unmarshal(data, &imported); err != nil {
		return existing, err
	}

	stockIDs := make(map[string]bool, len(existing.Stocks))
	for _, s := range existing.Stocks {
		stockIDs[s.ID] = true
	}
	for _, s := range imported.Stocks {
		if !stockIDs[s.ID] {
			existing.Stocks = append(existing.Stocks, s)
			stockIDs[s.ID] = true
		}
	}

	return existing, nil
}
