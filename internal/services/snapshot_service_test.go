package services

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshotServiceMissingFile(t *testing.T) {
	service := NewSnapshotService(filepath.Join(t.TempDir(), "missing.json"))

	assert.Empty(t, service.ContactsFor("en/example"))
}

func TestSnapshotServiceMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "contributors.json")
	require.NoError(t, os.WriteFile(path, []byte("not json"), 0644))

	service := NewSnapshotService(path)

	assert.Empty(t, service.ContactsFor("en/example"))
}

func TestSnapshotServiceContactsFor(t *testing.T) {
	path := filepath.Join(t.TempDir(), "contributors.json")
	content := `{
		"en/example": [
			{"email": "a@x.com", "name": "Alice", "commits": 3, "firstCommit": "2023-01-01"},
			{"email": "b@x.com", "name": "Bob", "commits": 1, "firstCommit": "2023-05-01"}
		]
	}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	service := NewSnapshotService(path)

	records := service.ContactsFor("en/example")
	require.Len(t, records, 2)
	assert.Equal(t, "a@x.com", records[0].Email)
	assert.Equal(t, "Alice", records[0].Name)
	assert.Equal(t, 3, records[0].Commits)
	assert.Equal(t, "2023-01-01", records[0].FirstCommit)

	assert.Empty(t, service.ContactsFor("de/other"))
}

func TestSnapshotServiceLoadsOnce(t *testing.T) {
	path := filepath.Join(t.TempDir(), "contributors.json")
	content := `{"en/example": [{"email": "a@x.com", "name": "Alice", "commits": 3, "firstCommit": "2023-01-01"}]}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	service := NewSnapshotService(path)
	require.Len(t, service.ContactsFor("en/example"), 1)

	// Rewriting the file after the first read has no effect: the
	// snapshot is immutable input for the rest of the run
	require.NoError(t, os.WriteFile(path, []byte(`{}`), 0644))
	assert.Len(t, service.ContactsFor("en/example"), 1)
}
