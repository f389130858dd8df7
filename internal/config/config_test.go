package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setTempHome(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	return home
}

func TestLoadConfigMissingFile(t *testing.T) {
	setTempHome(t)

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, &Config{}, cfg)
}

func TestSaveAndLoadConfig(t *testing.T) {
	home := setTempHome(t)

	require.NoError(t, SaveConfig(&Config{Profile: "dev", Region: "eu-west-1"}))

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "dev", cfg.Profile)
	assert.Equal(t, "eu-west-1", cfg.Region)

	info, err := os.Stat(filepath.Join(home, ".nimbus", "config.yaml"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestSetProfilePreservesRegion(t *testing.T) {
	setTempHome(t)

	require.NoError(t, SaveConfig(&Config{Profile: "old", Region: "us-east-1"}))
	require.NoError(t, SetProfile("new"))

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "new", cfg.Profile)
	assert.Equal(t, "us-east-1", cfg.Region)
}

func TestGetSavedProfile(t *testing.T) {
	setTempHome(t)

	assert.Empty(t, GetSavedProfile())

	require.NoError(t, SetProfile("dev"))
	assert.Equal(t, "dev", GetSavedProfile())
}

func TestLoadConfigInvalidYAML(t *testing.T) {
	home := setTempHome(t)

	dir := filepath.Join(home, ".nimbus")
	require.NoError(t, os.MkdirAll(dir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("{not yaml"), 0600))

	_, err := LoadConfig()
	assert.Error(t, err)
}
