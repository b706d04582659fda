package services

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListUnits(t *testing.T) {
	contentDir := t.TempDir()

	// Two proper units, one directory without a manifest, one loose file
	require.NoError(t, os.MkdirAll(filepath.Join(contentDir, "en", "example"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(contentDir, "en", "example", "manifest.json"), []byte("{}"), 0644))
	require.NoError(t, os.MkdirAll(filepath.Join(contentDir, "de", "beispiel"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(contentDir, "de", "beispiel", "manifest.json"), []byte("{}"), 0644))
	require.NoError(t, os.MkdirAll(filepath.Join(contentDir, "en", "draft"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(contentDir, "README.md"), []byte("readme"), 0644))

	service := NewUnitService(contentDir)
	units, err := service.ListUnits()

	require.NoError(t, err)
	require.Len(t, units, 2)
	assert.Equal(t, "de/beispiel", units[0].Path)
	assert.Equal(t, "en/example", units[1].Path)
}

func TestListUnitsMissingContentDir(t *testing.T) {
	service := NewUnitService(filepath.Join(t.TempDir(), "missing"))

	_, err := service.ListUnits()
	assert.Error(t, err)
}

func TestUnitFromPath(t *testing.T) {
	service := NewUnitService("./extensions")

	unit, err := service.UnitFromPath("en/example")
	require.NoError(t, err)
	assert.Equal(t, "en", unit.Lang)
	assert.Equal(t, "example", unit.Name)
	assert.Equal(t, "en/example", unit.Path)
	assert.Equal(t, filepath.Join("extensions", "en", "example"), unit.Dir)
}

func TestUnitFromPathInvalid(t *testing.T) {
	service := NewUnitService("./extensions")

	for _, path := range []string{"", "en", "en/", "/example", "en/example/extra"} {
		_, err := service.UnitFromPath(path)
		assert.Error(t, err, "path %q should be rejected", path)
	}
}
