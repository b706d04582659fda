package services

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/oguzhanc/extpipe/internal/models"
)

// ManifestService reads and patches unit manifest files.
type ManifestService struct{}

// NewManifestService creates a new manifest service
func NewManifestService() *ManifestService {
	return &ManifestService{}
}

// Load reads a unit's manifest into its typed form.
func (s *ManifestService) Load(unit *models.Unit) (*models.Manifest, error) {
	content, err := os.ReadFile(unit.ManifestPath())
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest for %s: %w", unit.Path, err)
	}

	manifest := &models.Manifest{}
	if err := json.Unmarshal(content, manifest); err != nil {
		return nil, fmt.Errorf("failed to parse manifest for %s: %w", unit.Path, err)
	}

	return manifest, nil
}

// PatchAuthors writes the resolved author list into the unit's
// manifest. The file is treated as a generic JSON object so fields
// this suite does not own survive the rewrite.
func (s *ManifestService) PatchAuthors(unit *models.Unit, authors []models.AuthorEntry) error {
	content, err := os.ReadFile(unit.ManifestPath())
	if err != nil {
		return fmt.Errorf("failed to read manifest for %s: %w", unit.Path, err)
	}

	var document map[string]interface{}
	if err := json.Unmarshal(content, &document); err != nil {
		return fmt.Errorf("failed to parse manifest for %s: %w", unit.Path, err)
	}

	document["authors"] = authors

	patched, err := json.MarshalIndent(document, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode manifest for %s: %w", unit.Path, err)
	}

	if err := os.WriteFile(unit.ManifestPath(), append(patched, '\n'), 0644); err != nil {
		return fmt.Errorf("failed to write manifest for %s: %w", unit.Path, err)
	}

	return nil
}
