package server

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/duetstage/singoff/internal/party"
)

func writeConfig(t *testing.T, src string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "server.hcl")
	require.NoError(t, os.WriteFile(path, []byte(src), 0o644))
	return path
}

func TestLoadServerConfigMissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadServerConfig(filepath.Join(t.TempDir(), "nope.hcl"))
	require.NoError(t, err)

	assert.Equal(t, "localhost:8080", cfg.GetServerAddress())
	assert.Equal(t, 9, cfg.Game.GridSize)
	assert.NoError(t, cfg.Validate())
}

func TestLoadServerConfigParsesFile(t *testing.T) {
	path := writeConfig(t, `
server {
  address = "0.0.0.0"
  port    = 9090
}

game {
  grid_size = 16
  seed      = 99
  mode      = "duet"
  source    = "playlist"
  playlist_id = 2
}

team "Larks" {
  profiles = [10, 11, 12]
}

team "Wrens" {
  profiles = [20, 21]
}
`)

	cfg, err := LoadServerConfig(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "0.0.0.0:9090", cfg.GetServerAddress())
	assert.Equal(t, int64(99), cfg.Game.Seed)
	assert.Equal(t, "info", cfg.Server.LogLevel, "defaults fill unset fields")

	pc, err := cfg.PartyConfig()
	require.NoError(t, err)
	assert.Equal(t, 16, pc.GridSize)
	assert.Equal(t, [2]string{"Larks", "Wrens"}, pc.TeamNames)
	assert.Equal(t, []int{20, 21}, pc.Rosters[1])
	assert.Equal(t, party.ModeDuet, pc.Mode)
	assert.Equal(t, party.SourcePlaylist, pc.Source)
}

func TestServerConfigValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*ServerConfig)
	}{
		{"bad port", func(c *ServerConfig) { c.Server.Port = 70000 }},
		{"one team", func(c *ServerConfig) { c.Teams = c.Teams[:1] }},
		{"empty roster", func(c *ServerConfig) { c.Teams[0].Profiles = nil }},
		{"unknown mode", func(c *ServerConfig) { c.Game.Mode = "karaoke" }},
		{"unknown source", func(c *ServerConfig) { c.Game.Source = "radio" }},
		{"bad grid", func(c *ServerConfig) { c.Game.GridSize = 12 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultServerConfig()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestLoadServerConfigRejectsBadHCL(t *testing.T) {
	path := writeConfig(t, `server { port = `)
	_, err := LoadServerConfig(path)
	assert.Error(t, err)
}
