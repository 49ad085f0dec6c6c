package migration

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateMigration(t *testing.T) {
	t.Run("creates an up and down file pair", func(t *testing.T) {
		dir := t.TempDir()

		mf, err := CreateMigration(dir, "Add Price Overrides", "customer specific pricing")
		require.NoError(t, err)

		assert.Len(t, mf.Version, 14)
		assert.Equal(t, filepath.Join(dir, mf.Version+"_add_price_overrides.up.sql"), mf.UpPath)
		assert.Equal(t, filepath.Join(dir, mf.Version+"_add_price_overrides.down.sql"), mf.DownPath)

		up, err := os.ReadFile(mf.UpPath)
		require.NoError(t, err)
		assert.Contains(t, string(up), "Add Price Overrides")
		assert.Contains(t, string(up), "customer specific pricing")

		down, err := os.ReadFile(mf.DownPath)
		require.NoError(t, err)
		assert.Contains(t, string(down), "Rollback")
	})

	t.Run("creates the migrations directory when missing", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "nested", "migrations")

		mf, err := CreateMigration(dir, "init", "")
		require.NoError(t, err)
		assert.FileExists(t, mf.UpPath)
	})
}

func TestSanitizeName(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"create catalog tables", "create_catalog_tables"},
		{"Add-Price--Overrides", "add_price_overrides"},
		{"trailing space ", "trailing_space"},
		{"UPPER123", "upper123"},
		{"éé accents éé", "accents"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, sanitizeName(tt.input))
		})
	}
}

func TestListMigrations(t *testing.T) {
	t.Run("returns sorted pair base names", func(t *testing.T) {
		dir := t.TempDir()
		for _, name := range []string{
			"20260102000000_second.up.sql",
			"20260102000000_second.down.sql",
			"20260101000000_first.up.sql",
			"20260101000000_first.down.sql",
			"notes.txt",
		} {
			require.NoError(t, os.WriteFile(filepath.Join(dir, name), nil, 0o644))
		}

		migrations, err := ListMigrations(dir)
		require.NoError(t, err)
		assert.Equal(t, []string{"20260101000000_first", "20260102000000_second"}, migrations)
	})

	t.Run("missing directory yields an empty list", func(t *testing.T) {
		migrations, err := ListMigrations(filepath.Join(t.TempDir(), "absent"))
		require.NoError(t, err)
		assert.Empty(t, migrations)
	})
}
