package migration

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeName(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"add vehicles table", "add_vehicles_table"},
		{"Add-Vehicles-Table", "add_vehicles_table"},
		{"ADD_VEHICLES_TABLE", "add_vehicles_table"},
		{"add__alert__index", "add_alert_index"},
		{"Add Licenses 123", "add_licenses_123"},
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

func writeFiles(t *testing.T, dir string, names ...string) {
	t.Helper()
	for _, n := range names {
		require.NoError(t, os.WriteFile(filepath.Join(dir, n), []byte("-- test"), 0o644))
	}
}

func TestCreateMigration(t *testing.T) {
	dir := t.TempDir()

	mf, err := CreateMigration(dir, "add vehicle mileage", "Track odometer readings")
	require.NoError(t, err)

	assert.Equal(t, "000001", mf.Version)
	assert.Equal(t, filepath.Join(dir, "000001_add_vehicle_mileage.up.sql"), mf.UpPath)
	assert.Equal(t, filepath.Join(dir, "000001_add_vehicle_mileage.down.sql"), mf.DownPath)

	up, err := os.ReadFile(mf.UpPath)
	require.NoError(t, err)
	assert.Contains(t, string(up), "add vehicle mileage")
	assert.Contains(t, string(up), "Track odometer readings")

	down, err := os.ReadFile(mf.DownPath)
	require.NoError(t, err)
	assert.Contains(t, string(down), "Rollback")
}

func TestCreateMigration_NumbersAfterExisting(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir,
		"000001_init_schema.up.sql", "000001_init_schema.down.sql",
		"000007_add_alerts.up.sql", "000007_add_alerts.down.sql",
	)

	mf, err := CreateMigration(dir, "contract renewals", "")
	require.NoError(t, err)

	assert.Equal(t, "000008", mf.Version)
}

func TestCreateMigration_CreatesDirectory(t *testing.T) {
	nested := filepath.Join(t.TempDir(), "nested", "migrations")

	_, err := CreateMigration(nested, "test", "")
	require.NoError(t, err)

	info, err := os.Stat(nested)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestCreateMigration_RejectsEmptyName(t *testing.T) {
	_, err := CreateMigration(t.TempDir(), "!!!", "")
	assert.Error(t, err)
}

func TestListMigrations(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir,
		"000002_add_licenses.up.sql", "000002_add_licenses.down.sql",
		"000001_init_schema.up.sql", "000001_init_schema.down.sql",
		"README.md", ".gitkeep",
	)
	require.NoError(t, os.Mkdir(filepath.Join(dir, "subdir.up.sql"), 0o755))

	migrations, err := ListMigrations(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"000001_init_schema", "000002_add_licenses"}, migrations)
}

func TestListMigrations_MissingDirectory(t *testing.T) {
	migrations, err := ListMigrations(filepath.Join(t.TempDir(), "absent"))
	require.NoError(t, err)
	assert.Empty(t, migrations)
}

func TestRepositoryMigrations(t *testing.T) {
	dir := filepath.Join("..", "..", "..", "migrations")

	migrations, err := ListMigrations(dir)
	require.NoError(t, err)
	require.NotEmpty(t, migrations)
	assert.Equal(t, "000001_init_schema", migrations[0])

	for _, m := range migrations {
		_, err := os.Stat(filepath.Join(dir, m+".down.sql"))
		assert.NoError(t, err, "missing down migration for %s", m)
	}
}
