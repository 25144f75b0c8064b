package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, ".", cfg.Project.Root)
	assert.True(t, cfg.Devices.AvailableOnly)
	assert.Equal(t, 30, cfg.Devices.Timeout)
	assert.Equal(t, "Debug", cfg.Build.Configuration)
	assert.Equal(t, FormatTable, cfg.UI.Format)
	assert.NoError(t, cfg.Validate())
}

func TestLoadFileOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
project:
  root: /repos/app
build:
  configuration: Release
ui:
  format: json
  colored_output: false
`), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/repos/app", cfg.Project.Root)
	assert.Equal(t, "Release", cfg.Build.Configuration)
	assert.Equal(t, FormatJSON, cfg.UI.Format)
	assert.False(t, cfg.UI.ColoredOutput)
	assert.NoError(t, cfg.Validate())
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("XBASE_BUILD_CONFIGURATION", "Release")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "Release", cfg.Build.Configuration)
}

func TestLoadMissingFileFallsBackToDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, ".", cfg.Project.Root)
}

func TestValidateRejectsUnknownFormat(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	cfg.UI.Format = "xml"
	assert.Error(t, cfg.Validate())
}

func TestValidateRejectsZeroTimeout(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	cfg.Devices.Timeout = 0
	assert.Error(t, cfg.Validate())
}
