package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "coopstore.yml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yml"))
	require.NoError(t, err)
	assert.Equal(t, StorageBolt, cfg.Storage.Type)
	assert.Equal(t, 1880, cfg.Web.Port)
	assert.Equal(t, filepath.Join("/var/coopstore", "data", "coopstore.db"), cfg.Storage.BoltPath)
	assert.Equal(t, filepath.Join("/var/coopstore", "logs", "coopstore.log"), cfg.Logger.Filename)
	assert.Equal(t, "Local", DefaultAppConfig.System.Location, "defaults are not mutated")
}

func TestLoadConfigFile(t *testing.T) {
	path := writeConfig(t, `
system:
  appid: shop
  workdir: /tmp/shop
web:
  port: 9090
storage:
  type: Bolt
  autosave: "@every 1m"
`)
	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "shop", cfg.System.Appid)
	assert.Equal(t, 9090, cfg.Web.Port)
	assert.True(t, cfg.Web.Enabled, "unset keys keep defaults")
	assert.Equal(t, StorageBolt, cfg.Storage.Type)
	assert.Equal(t, "/tmp/shop/data/coopstore.db", cfg.Storage.BoltPath)
	assert.Equal(t, "@every 1m", cfg.Storage.Autosave)
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	t.Setenv("COOPSTORE_WEB_PORT", "7070")
	t.Setenv("COOPSTORE_WEB_ENABLED", "false")
	t.Setenv("COOPSTORE_NODE_ID", "12")
	t.Setenv("COOPSTORE_STORAGE_AUTOSAVE", "")
	t.Setenv("COOPSTORE_STORAGE_SAVE_ON_EXIT", "not-a-bool")

	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, 7070, cfg.Web.Port)
	assert.False(t, cfg.Web.Enabled)
	assert.Equal(t, int64(12), cfg.System.NodeID)
	assert.Empty(t, cfg.Storage.Autosave, "an empty value disables autosave")
	assert.True(t, cfg.Storage.SaveOnExit, "unparsable values are ignored")
}

func TestLoadConfigValidation(t *testing.T) {
	_, err := LoadConfig(writeConfig(t, "storage:\n  type: postgres\n"))
	assert.ErrorContains(t, err, "dsn")

	_, err = LoadConfig(writeConfig(t, "storage:\n  type: redis\n"))
	assert.Error(t, err)

	_, err = LoadConfig(writeConfig(t, "web:\n  port: 70000\n"))
	assert.Error(t, err)

	_, err = LoadConfig(writeConfig(t, "system: [broken"))
	assert.Error(t, err)
}

func TestConfigStringMasksDsn(t *testing.T) {
	cfg := *DefaultAppConfig
	cfg.Storage.Dsn = "postgres://coop:secret@db/coop"
	out := cfg.String()
	assert.NotContains(t, out, "secret")
	assert.Contains(t, out, "******")
	assert.Equal(t, "postgres://coop:secret@db/coop", cfg.Storage.Dsn)
}
