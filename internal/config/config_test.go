package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gisim/gisim-go/internal/game/rules"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "console", cfg.Logging.Format)
	assert.Equal(t, 10000, cfg.Dispatch.MaxSteps)
	assert.Equal(t, 4, cfg.Board.ZoneCapacity)
	assert.Empty(t, cfg.Catalogue.Path)
	assert.False(t, cfg.Journal.Enabled)

	first, err := cfg.Dispatch.FirstPlayerID()
	require.NoError(t, err)
	assert.Equal(t, rules.PlayerOne, first)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := []byte(`
logging:
  level: debug
  format: json
dispatch:
  max_steps: 500
  first_player: PLAYER2
board:
  zone_capacity: 2
journal:
  enabled: true
  directory: /tmp/journals
`)
	require.NoError(t, os.WriteFile(path, data, 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, 500, cfg.Dispatch.MaxSteps)
	assert.Equal(t, 2, cfg.Board.ZoneCapacity)
	assert.True(t, cfg.Journal.Enabled)
	assert.Equal(t, "/tmp/journals", cfg.Journal.Directory)

	first, err := cfg.Dispatch.FirstPlayerID()
	require.NoError(t, err)
	assert.Equal(t, rules.PlayerTwo, first)
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("GISIM_DISPATCH_MAX_STEPS", "42")
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 42, cfg.Dispatch.MaxSteps)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	data := []byte(`
logging:
  level: loud
dispatch:
  first_player: PLAYER9
board:
  zone_capacity: 0
`)
	require.NoError(t, os.WriteFile(path, data, 0o644))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "logging.level")
	assert.Contains(t, err.Error(), "dispatch.first_player")
	assert.Contains(t, err.Error(), "board.zone_capacity")
}
