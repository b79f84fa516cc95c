package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "armory.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 30, cfg.Game.TickRate)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Len(t, cfg.Loadout.Groups, 3)
	assert.NotEmpty(t, cfg.Catalog)
	for _, w := range cfg.Catalog {
		assert.NotZero(t, w.PutAway, w.ID)
		assert.NotZero(t, w.TakeOut, w.ID)
	}
	assert.Equal(t, time.Second/30, cfg.Game.TickDuration())
}

func TestLoad_File(t *testing.T) {
	path := writeConfig(t, `
server:
  port: 9000
  admin: true
game:
  tickRate: 60
  allowIdentical: true
loadout:
  groups:
    - name: Primary
      keys: ["1"]
    - name: Sidearm
      keys: ["2", "3"]
  starting: [smg]
catalog:
  - id: smg
    group: Primary
    putAway: 250ms
    takeOut: 1s
    magazine: 25
  - id: deagle
    name: Desert Eagle
    group: Sidearm
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9000, cfg.Server.Port)
	assert.True(t, cfg.Server.Admin)
	assert.Equal(t, 60, cfg.Game.TickRate)
	assert.True(t, cfg.Game.AllowIdentical)
	require.Len(t, cfg.Loadout.Groups, 2)
	assert.Equal(t, []string{"2", "3"}, cfg.Loadout.Groups[1].Keys)

	require.Len(t, cfg.Catalog, 2)
	smg := cfg.Catalog[0]
	assert.Equal(t, 250*time.Millisecond, smg.PutAway)
	assert.Equal(t, time.Second, smg.TakeOut)
	assert.Equal(t, "smg", smg.Name, "name falls back to id")
	assert.Equal(t, "smg_pickup", smg.Template)
	assert.Equal(t, "Desert Eagle", cfg.Catalog[1].Name)
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("ARMORY_GAME_TICKRATE", "20")
	t.Setenv("ARMORY_LOG_LEVEL", "debug")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 20, cfg.Game.TickRate)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		cfg, err := Load("")
		require.NoError(t, err)
		return cfg
	}

	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"zero tick rate", func(c *Config) { c.Game.TickRate = 0 }},
		{"bad log level", func(c *Config) { c.Log.Level = "loud" }},
		{"bad constraint", func(c *Config) { c.Server.ClientConstraint = "~~1" }},
		{"duplicate group", func(c *Config) {
			c.Loadout.Groups = append(c.Loadout.Groups, GroupConfig{Name: "Melee", Keys: []string{"9"}})
		}},
		{"duplicate key across groups", func(c *Config) {
			c.Loadout.Groups[1].Keys = append(c.Loadout.Groups[1].Keys, "1")
		}},
		{"group without slots", func(c *Config) { c.Loadout.Groups[0].Keys = nil }},
		{"weapon in unknown group", func(c *Config) { c.Catalog[0].Group = "Heavy" }},
		{"duplicate weapon", func(c *Config) { c.Catalog = append(c.Catalog, c.Catalog[0]) }},
		{"unknown starting weapon", func(c *Config) { c.Loadout.Starting = []string{"bfg"} }},
		{"negative force", func(c *Config) { c.Catalog[0].Force = -1 }},
		{"replay without dir", func(c *Config) { c.Replay.Enabled, c.Replay.Dir = true, "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := Validate(cfg)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrValidationFailed), "got %v", err)
		})
	}

	assert.ErrorIs(t, Validate(nil), ErrNilConfig)
}

func TestWatch_NoFile(t *testing.T) {
	w, err := Watch("")
	require.NoError(t, err)
	assert.Equal(t, 8080, w.Config().Server.Port)

	var got *Config
	w.OnChange(func(c *Config) { got = c })
	assert.Nil(t, got, "callbacks fire only on file change")
}
