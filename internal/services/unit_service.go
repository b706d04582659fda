package services

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/oguzhanc/extpipe/internal/models"
)

// UnitService discovers the distributable units under the content root.
// Units are laid out as <lang>/<name>/ directories, each carrying a
// manifest file.
type UnitService struct {
	contentDir string
}

// NewUnitService creates a new unit service
func NewUnitService(contentDir string) *UnitService {
	return &UnitService{contentDir: contentDir}
}

// ListUnits walks the content root and returns every directory pair
// that carries a manifest. Directories without one are skipped.
func (s *UnitService) ListUnits() ([]*models.Unit, error) {
	langs, err := os.ReadDir(s.contentDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read content directory %s: %w", s.contentDir, err)
	}

	var units []*models.Unit
	for _, lang := range langs {
		if !lang.IsDir() {
			continue
		}

		names, err := os.ReadDir(filepath.Join(s.contentDir, lang.Name()))
		if err != nil {
			continue
		}

		for _, name := range names {
			if !name.IsDir() {
				continue
			}

			unit := models.NewUnit(s.contentDir, lang.Name(), name.Name())
			if _, err := os.Stat(unit.ManifestPath()); err != nil {
				continue
			}
			units = append(units, unit)
		}
	}

	return units, nil
}

// UnitFromPath reconstructs a unit from its "<lang>/<name>" path key.
func (s *UnitService) UnitFromPath(unitPath string) (*models.Unit, error) {
	parts := strings.Split(unitPath, "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return nil, fmt.Errorf("invalid unit path: %q", unitPath)
	}
	return models.NewUnit(s.contentDir, parts[0], parts[1]), nil
}
