package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDescriptionFromFilename(t *testing.T) {
	assert.Equal(t, "create activity log entries",
		descriptionFromFilename("2026-01-12-001-create-activity-log-entries.sql"))
	assert.Equal(t, "no prefix", descriptionFromFilename("no-prefix.sql"))
}

func TestMigrationFiles_SortedByName(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"2026-01-12-001-b.sql", "2026-01-05-002-a.sql", "2026-01-05-001-a.sql", "notes.txt"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("SELECT 1;"), 0o644))
	}

	files, err := migrationFiles(dir)
	require.NoError(t, err)
	require.Len(t, files, 3)
	assert.Equal(t, "2026-01-05-001-a.sql", filepath.Base(files[0]))
	assert.Equal(t, "2026-01-12-001-b.sql", filepath.Base(files[2]))

	_, err = migrationFiles(t.TempDir())
	assert.Error(t, err)
}

func TestRepositoryMigrations_Present(t *testing.T) {
	files, err := migrationFiles(filepath.Join("..", "..", "db"))
	require.NoError(t, err)
	assert.Equal(t, "2026-01-05-001-create-users-and-profiles.sql", filepath.Base(files[0]),
		"first migration creates the migrations table")
}
