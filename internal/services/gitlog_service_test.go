package services

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLogLines(t *testing.T) {
	lines := []string{
		"a@x.com|Alice|2024-01-05T09:00:00+02:00",
		"a@x.com|Alice|2024-01-02T09:00:00+02:00",
		"b@x.com|Bob|2024-02-01T09:00:00+02:00",
		"a@x.com|Alice|2024-03-01T09:00:00+02:00",
	}

	records := parseLogLines(lines)

	require.Len(t, records, 2)
	assert.Equal(t, "a@x.com", records[0].Email)
	assert.Equal(t, 3, records[0].Commits)
	assert.Equal(t, "2024-01-02", records[0].FirstCommit)
	assert.Equal(t, "b@x.com", records[1].Email)
	assert.Equal(t, 1, records[1].Commits)
	assert.Equal(t, "2024-02-01", records[1].FirstCommit)
}

func TestParseLogLinesNameFollowsEarliestCommit(t *testing.T) {
	lines := []string{
		"a@x.com|Alice Married|2024-06-01T09:00:00+02:00",
		"a@x.com|Alice|2024-01-01T09:00:00+02:00",
	}

	records := parseLogLines(lines)

	require.Len(t, records, 1)
	assert.Equal(t, "Alice", records[0].Name)
}

func TestParseLogLinesDropsMalformedLines(t *testing.T) {
	testCases := []struct {
		name string
		line string
	}{
		{name: "Missing date", line: "bob@x.com|Bob Smith|"},
		{name: "Missing name", line: "bob@x.com||2024-01-01T00:00:00Z"},
		{name: "Missing email", line: "|Bob Smith|2024-01-01T00:00:00Z"},
		{name: "Too few fields", line: "bob@x.com|Bob Smith"},
		{name: "Truncated date", line: "bob@x.com|Bob Smith|2024-01"},
		{name: "Empty line", line: ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			lines := []string{
				tc.line,
				"a@x.com|Alice|2024-01-01T00:00:00Z",
			}

			records := parseLogLines(lines)

			// The malformed line vanishes without affecting others
			require.Len(t, records, 1)
			assert.Equal(t, "a@x.com", records[0].Email)
			assert.Equal(t, 1, records[0].Commits)
		})
	}
}

func TestParseLogLinesEmptyInput(t *testing.T) {
	assert.Empty(t, parseLogLines(nil))
	assert.Empty(t, parseLogLines([]string{""}))
}

func TestCollectContactsQueryFailure(t *testing.T) {
	// Pointing the service at a directory that does not exist makes
	// the git invocation fault; that must read as "no live commits"
	service := NewGitLogService(filepath.Join(t.TempDir(), "missing"), "2024-01-01")

	assert.Empty(t, service.CollectContacts("en/example"))
}
