package project

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/piwi3910/AtlasPack/internal/model"
)

// ProjectExt is the file extension used for saved projects.
const ProjectExt = ".atlas.json"

// SaveProject writes the project, including its last pack result, to path.
func SaveProject(path string, p model.Project) error {
	if err := writeJSON(path, p); err != nil {
		return fmt.Errorf("failed to save project: %w", err)
	}
	return nil
}

// LoadProject reads a project from path. Settings absent from the file fall
// back to DefaultSettings.
func LoadProject(path string) (model.Project, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.Project{}, fmt.Errorf("failed to read project: %w", err)
	}
	p := model.NewProject()
	if err := json.Unmarshal(data, &p); err != nil {
		return model.Project{}, fmt.Errorf("failed to parse project: %w", err)
	}
	if p.Sprites == nil {
		p.Sprites = []model.Sprite{}
	}
	return p, nil
}

// MergeSprites appends the sprites of imported to existing, skipping any
// whose ID is already present.
func MergeSprites(existing, imported []model.Sprite) []model.Sprite {
	ids := make(map[string]bool, len(existing))
	for _, s := range existing {
		ids[s.ID] = true
	}
	for _, s := range imported {
		if !ids[s.ID] {
			existing = append(existing, s)
			ids[s.ID] = true
		}
	}
	return existing
}
