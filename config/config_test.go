package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	v := viper.New()
	SetDefaults(v)

	var cfg Config
	require.NoError(t, v.Unmarshal(&cfg))

	assert.Equal(t, "gms.db", cfg.Database.Path)
	assert.Equal(t, 50, cfg.Search.Limit)
	assert.InDelta(t, 0.3, cfg.Search.MinScore, 1e-9)
	assert.Equal(t, 1000, cfg.Search.WorkingSet)
	assert.Equal(t, 2, cfg.Search.MinQueryLen)
	assert.InDelta(t, 0.8, cfg.Linkage.CustomerThreshold, 1e-9)
	assert.InDelta(t, 0.9, cfg.Linkage.VehicleThreshold, 1e-9)
	assert.InDelta(t, 0.9, cfg.Import.AutoLinkThreshold, 1e-9)
	assert.Equal(t, 2, cfg.Import.MaxHeaderDistance)
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "gms.toml")
	content := `
[database]
path = "/var/lib/gms/garage.db"

[search]
limit = 25

[linkage]
customer_threshold = 0.85
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, "/var/lib/gms/garage.db", cfg.Database.Path)
	assert.Equal(t, 25, cfg.Search.Limit)
	assert.InDelta(t, 0.85, cfg.Linkage.CustomerThreshold, 1e-9)

	// Untouched keys keep their defaults
	assert.InDelta(t, 0.9, cfg.Linkage.VehicleThreshold, 1e-9)
	assert.InDelta(t, 0.3, cfg.Search.MinScore, 1e-9)
}

func TestLoadFromFileMissing(t *testing.T) {
	_, err := LoadFromFile(filepath.Join(t.TempDir(), "absent.toml"))
	assert.Error(t, err)
}

func TestGetDatabasePathEnvOverride(t *testing.T) {
	Reset()
	t.Setenv("DB_PATH", "/tmp/override.db")

	path, err := GetDatabasePath()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/override.db", path)
}

func TestGetString(t *testing.T) {
	Reset()
	assert.Equal(t, "50", GetString("search.limit"))

	t.Setenv("GMS_SEARCH_LIMIT", "75")
	Reset()
	assert.Equal(t, "75", GetString("search.limit"))
}

func TestCreateBackupRotation(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")

	// No file yet: backup is a no-op
	require.NoError(t, createBackup(path))
	_, err := os.Stat(path + ".back1")
	assert.True(t, os.IsNotExist(err))

	// First backup
	require.NoError(t, os.WriteFile(path, []byte("gen1"), 0644))
	require.NoError(t, createBackup(path))
	data, err := os.ReadFile(path + ".back1")
	require.NoError(t, err)
	assert.Equal(t, "gen1", string(data))

	// Second backup rotates gen1 to .back2
	require.NoError(t, os.WriteFile(path, []byte("gen2"), 0644))
	require.NoError(t, createBackup(path))

	data, err = os.ReadFile(path + ".back1")
	require.NoError(t, err)
	assert.Equal(t, "gen2", string(data))

	data, err = os.ReadFile(path + ".back2")
	require.NoError(t, err)
	assert.Equal(t, "gen1", string(data))
}
