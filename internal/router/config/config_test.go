package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.ServerAddress)
	assert.Equal(t, StoragePostgres, cfg.StorageDriver)
	assert.Equal(t, "file://migrations", cfg.MigrationURL)
	assert.Equal(t, 5*time.Second, cfg.RequestTimeout)
	assert.False(t, cfg.SeedDemoData)
}

func TestLoadConfigFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	content := "SERVER_ADDRESS=:9090\nSTORAGE_DRIVER=sqlite\nSQLITE_PATH=/tmp/rfp.db\nREQUEST_TIMEOUT=2s\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "app.env"), []byte(content), 0o600))
	t.Setenv("SERVER_ADDRESS", ":7070")
	t.Setenv("SEED_DEMO_DATA", "true")

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, ":7070", cfg.ServerAddress)
	assert.Equal(t, StorageSQLite, cfg.StorageDriver)
	assert.Equal(t, "/tmp/rfp.db", cfg.SQLitePath)
	assert.Equal(t, 2*time.Second, cfg.RequestTimeout)
	assert.True(t, cfg.SeedDemoData)
}
