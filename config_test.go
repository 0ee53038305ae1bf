package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadOrCreateConfigCreatesDefaults(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "retrotv", "config.json")

	config, err := LoadOrCreateConfig(configPath)
	require.NoError(t, err)

	assert.Equal(t, DefaultPort, config.Port)
	assert.Equal(t, DefaultAutoIntervalS, config.AutoIntervalS)
	assert.Equal(t, DefaultIPCSocket, config.IPCSocket)
	assert.Equal(t, DefaultProbeWorkers, config.ProbeWorkers)
	assert.NotEmpty(t, config.AuthToken)
	assert.NotEmpty(t, config.CachePath)

	// The file was written and reloads with the same token
	_, err = os.Stat(configPath)
	require.NoError(t, err)

	reloaded, err := LoadOrCreateConfig(configPath)
	require.NoError(t, err)
	assert.Equal(t, config.AuthToken, reloaded.AuthToken)
}

func TestLoadOrCreateConfigFillsMissingFields(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.json")
	partial := map[string]interface{}{
		"port":       9090,
		"base_paths": []string{"/videos"},
	}
	data, err := json.Marshal(partial)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(configPath, data, 0600))

	config, err := LoadOrCreateConfig(configPath)
	require.NoError(t, err)

	assert.Equal(t, 9090, config.Port)
	assert.Equal(t, []string{"/videos"}, config.BasePaths)
	assert.Equal(t, DefaultAutoIntervalS, config.AutoIntervalS)
	assert.Equal(t, DefaultIPCSocket, config.IPCSocket)
	assert.Equal(t, DefaultSeekDelayMS, config.SeekDelayMS)
	assert.NotEmpty(t, config.CachePath)
}

func TestLoadOrCreateConfigRejectsBadJSON(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(configPath, []byte("not json"), 0600))

	_, err := LoadOrCreateConfig(configPath)
	assert.Error(t, err)
}

func TestEnvOverrides(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.json")

	t.Setenv("RETROTV_PORT", "9999")
	t.Setenv("RETROTV_HWDEC", "mmal")
	t.Setenv("RETROTV_BASE_PATHS", "/a:/b")

	config, err := LoadOrCreateConfig(configPath)
	require.NoError(t, err)

	assert.Equal(t, 9999, config.Port)
	assert.Equal(t, "mmal", config.HWDec)
	assert.Equal(t, []string{"/a", "/b"}, config.BasePaths)
}
