package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"solar_battery_sim/internal/model"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, model.DefaultParams(), cfg.Params)
}

func TestLoad_MergesOverDefaults(t *testing.T) {
	path := writeConfig(t, `
addr: ":9000"
params:
  latitude_deg: 52.5
  load_w: 40
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":9000", cfg.Addr)
	assert.Equal(t, 52.5, cfg.Params.LatitudeDeg)
	assert.Equal(t, 40.0, cfg.Params.LoadW)
	// Untouched fields keep defaults.
	assert.Equal(t, "frontend/build", cfg.FrontendDir)
	assert.Equal(t, 1000.0, cfg.Params.BatteryCapacityWh)
	assert.Equal(t, 45, cfg.Params.StepMinutes)
}

func TestLoad_InvalidParams(t *testing.T) {
	path := writeConfig(t, `
params:
  latitude_deg: 89
`)

	_, err := Load(path)
	assert.ErrorIs(t, err, model.ErrLatitudeRange)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestLoad_MalformedYAML(t *testing.T) {
	path := writeConfig(t, "addr: [unclosed")
	_, err := Load(path)
	assert.Error(t, err)
}
