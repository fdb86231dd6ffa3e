package project

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/piwi3910/BarNest/internal/model"
)

// SaveProject writes a project to the specified JSON file, creating parent
// directories if needed.
func SaveProject(path string, proj model.Project) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(proj, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal project: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}

// LoadProject reads a project from the specified JSON file.
func LoadProject(path string) (model.Project, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.Project{}, fmt.Errorf("failed to read project file: %w", err)
	}
	var proj model.Project
	if err := json.Unmarshal(data, &proj); err != nil {
		return model.Project{}, fmt.Errorf("failed to parse project file: %w", err)
	}
	if proj.Meta.Name == "" {
		return model.Project{}, fmt.Errorf("invalid project file: missing project name")
	}
	return proj, nil
}
