package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/atedres/boldnet-sub000/internal/infrastructure/persistence"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const demoFixture = `
sections:
  - type: hero
    content:
      title: Boldnet
      subtitle: Digital agency
  - type: clients
clients:
  - name: Acme
    logoUrl: https://cdn.example.com/acme.png
settings:
  site_settings:
    siteName: Boldnet
`

func TestSeedCommand(t *testing.T) {
	dir := t.TempDir()
	fixture := filepath.Join(dir, "fixture.yaml")
	require.NoError(t, os.WriteFile(fixture, []byte(demoFixture), 0o600))
	dbPath := filepath.Join(dir, "site.db")

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"seed", "--sqlite", dbPath, fixture})
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		sqlitePath = ""
	})

	require.NoError(t, rootCmd.ExecuteContext(context.Background()))
	assert.Contains(t, out.String(), "Seeded 2 sections, 0 pages, 1 entities, 1 settings (0 skipped)")

	db, err := persistence.OpenSQLite(dbPath, nil)
	require.NoError(t, err)
	defer db.Close()
	sections, err := persistence.NewRepositories(db.DB).Sections.FindAll(context.Background())
	require.NoError(t, err)
	assert.Len(t, sections, 2)
}

func TestSeedCommand_MissingFixture(t *testing.T) {
	rootCmd.SetArgs([]string{"seed", filepath.Join(t.TempDir(), "missing.yaml")})
	t.Cleanup(func() { rootCmd.SetArgs(nil) })

	err := rootCmd.ExecuteContext(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to open fixture")
}
