package migration

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"
	"time"

	"github.com/atedres/boldnet-sub000/migrations"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeName(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"add sections table", "add_sections_table"},
		{"Add-Sections-Table", "add_sections_table"},
		{"ADD_SECTIONS_TABLE", "add_sections_table"},
		{"add__sections__table", "add_sections_table"},
		{"Add Pages 123", "add_pages_123"},
		{"   spaces   ", "spaces"},
		{"special!@#$chars", "specialchars"},
		{"trailing_", "trailing"},
		{"_leading", "leading"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, sanitizeName(tt.input))
		})
	}
}

func TestCreateMigration(t *testing.T) {
	dir := t.TempDir()
	at := time.Date(2026, 10, 18, 9, 30, 0, 0, time.UTC)

	mf, err := createMigrationAt(dir, "Add hero column", "Store hero overrides", at)
	require.NoError(t, err)

	assert.Equal(t, "20261018093000", mf.Version)
	assert.Equal(t, filepath.Join(dir, "20261018093000_add_hero_column.up.sql"), mf.UpPath)
	assert.Equal(t, filepath.Join(dir, "20261018093000_add_hero_column.down.sql"), mf.DownPath)

	up, err := os.ReadFile(mf.UpPath)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(up), "-- Migration: add hero column"))
	assert.Contains(t, string(up), "Store hero overrides")

	_, err = os.Stat(mf.DownPath)
	assert.NoError(t, err)
}

func TestCreateMigration_RefusesToOverwrite(t *testing.T) {
	dir := t.TempDir()
	at := time.Now()

	_, err := createMigrationAt(dir, "same", "", at)
	require.NoError(t, err)
	_, err = createMigrationAt(dir, "same", "", at)
	assert.Error(t, err)
}

func TestCreateMigration_EmptyName(t *testing.T) {
	_, err := CreateMigration(t.TempDir(), "!!!", "")
	assert.Error(t, err)
}

func TestListMigrations(t *testing.T) {
	fsys := fstest.MapFS{
		"20261018090100_b.up.sql":   {},
		"20261018090100_b.down.sql": {},
		"20261018090000_a.up.sql":   {},
		"20261018090000_a.down.sql": {},
		"notes.txt":                 {},
		"bad_version.up.sql":        {},
	}

	entries, err := ListMigrations(fsys)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, Entry{Version: 20261018090000, Name: "a"}, entries[0])
	assert.Equal(t, Entry{Version: 20261018090100, Name: "b"}, entries[1])

	pending := Pending(entries, 20261018090000)
	require.Len(t, pending, 1)
	assert.Equal(t, "b", pending[0].Name)
	assert.Len(t, Pending(entries, 0), 2)
}

func TestListMigrations_MissingDir(t *testing.T) {
	entries, err := ListMigrations(os.DirFS(filepath.Join(t.TempDir(), "missing")))
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestEmbeddedMigrationsArePaired(t *testing.T) {
	entries, err := ListMigrations(migrations.FS)
	require.NoError(t, err)
	require.NotEmpty(t, entries)

	for _, e := range entries {
		down := fmt.Sprintf("%d_%s.down.sql", e.Version, e.Name)
		_, err := fs.Stat(migrations.FS, down)
		assert.NoError(t, err, "missing %s", down)
	}
}
