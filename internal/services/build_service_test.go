package services

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oguzhanc/extpipe/internal/models"
)

func newTestUnit(t *testing.T, manifest string, sources ...string) *models.Unit {
	t.Helper()

	contentDir := t.TempDir()
	unit := models.NewUnit(contentDir, "en", "example")
	require.NoError(t, os.MkdirAll(unit.Dir, 0755))
	if manifest != "" {
		require.NoError(t, os.WriteFile(unit.ManifestPath(), []byte(manifest), 0644))
	}
	for _, source := range sources {
		require.NoError(t, os.WriteFile(filepath.Join(unit.Dir, source), []byte("content"), 0644))
	}
	return unit
}

func TestCheckUnitPass(t *testing.T) {
	unit := newTestUnit(t, `{"name": "Example", "version": "1.2.0"}`, "index.js")

	service := NewBuildService(NewManifestService())
	outcome := service.CheckUnit(unit)

	assert.Equal(t, models.OutcomeStatusPass, outcome.Status)
	assert.Empty(t, outcome.Message)
	assert.Equal(t, "en/example", outcome.UnitPath)
}

func TestCheckUnitFailures(t *testing.T) {
	testCases := []struct {
		name     string
		manifest string
		sources  []string
		expected string
	}{
		{
			name:     "Missing manifest",
			manifest: "",
			sources:  []string{"index.js"},
			expected: "manifest unreadable",
		},
		{
			name:     "Malformed manifest",
			manifest: "not json",
			sources:  []string{"index.js"},
			expected: "manifest unreadable",
		},
		{
			name:     "Missing name",
			manifest: `{"version": "1.0.0"}`,
			sources:  []string{"index.js"},
			expected: "missing a name",
		},
		{
			name:     "Missing version",
			manifest: `{"name": "Example"}`,
			sources:  []string{"index.js"},
			expected: "missing a version",
		},
		{
			name:     "Malformed version",
			manifest: `{"name": "Example", "version": "v1-beta"}`,
			sources:  []string{"index.js"},
			expected: "not well-formed",
		},
		{
			name:     "No sources",
			manifest: `{"name": "Example", "version": "1.0.0"}`,
			sources:  nil,
			expected: "no source files",
		},
	}

	service := NewBuildService(NewManifestService())

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			unit := newTestUnit(t, tc.manifest, tc.sources...)

			outcome := service.CheckUnit(unit)

			assert.Equal(t, models.OutcomeStatusFail, outcome.Status)
			assert.Contains(t, outcome.Message, tc.expected)
		})
	}
}

func TestCheckUnitCollectsAllFailures(t *testing.T) {
	unit := newTestUnit(t, `{"version": "oops"}`)

	service := NewBuildService(NewManifestService())
	outcome := service.CheckUnit(unit)

	assert.Equal(t, models.OutcomeStatusFail, outcome.Status)
	assert.Contains(t, outcome.Message, "missing a name")
	assert.Contains(t, outcome.Message, "not well-formed")
	assert.Contains(t, outcome.Message, "no source files")
}
