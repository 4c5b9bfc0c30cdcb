package server

import (
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/duetstage/singoff/internal/party"
)

// ServerConfig represents the complete server configuration
type ServerConfig struct {
	Server ServerSettings `hcl:"server,block"`
	Game   GameSettings   `hcl:"game,block"`
	Teams  []TeamConfig   `hcl:"team,block"`
}

// ServerSettings contains server-level configuration
type ServerSettings struct {
	Address  string `hcl:"address,optional"`
	Port     int    `hcl:"port,optional"`
	LogLevel string `hcl:"log_level,optional"`
	LogFile  string `hcl:"log_file,optional"`
}

// GameSettings selects the tournament shape and song source.
type GameSettings struct {
	GridSize   int    `hcl:"grid_size,optional"`
	Seed       int64  `hcl:"seed,optional"`
	Mode       string `hcl:"mode,optional"`
	Source     string `hcl:"source,optional"`
	CategoryID int    `hcl:"category_id,optional"`
	PlaylistID int    `hcl:"playlist_id,optional"`
	Library    string `hcl:"library,optional"`
}

// TeamConfig defines one team and its player profile IDs.
type TeamConfig struct {
	Name     string `hcl:"name,label"`
	Profiles []int  `hcl:"profiles"`
}

// DefaultServerConfig returns default server configuration
func DefaultServerConfig() *ServerConfig {
	return &ServerConfig{
		Server: ServerSettings{
			Address:  "localhost",
			Port:     8080,
			LogLevel: "info",
			LogFile:  "singoff-server.log",
		},
		Game: GameSettings{
			GridSize: 9,
			Mode:     "standard",
			Source:   "all",
			Library:  "library.hcl",
		},
		Teams: []TeamConfig{
			{Name: "Team 1", Profiles: []int{1, 2, 3}},
			{Name: "Team 2", Profiles: []int{4, 5, 6}},
		},
	}
}

// LoadServerConfig loads server configuration from HCL file
func LoadServerConfig(filename string) (*ServerConfig, error) {
	// Missing file falls back to a playable local default.
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return DefaultServerConfig(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var config ServerConfig
	diags = gohcl.DecodeBody(file.Body, nil, &config)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	applyDefaults(&config)
	return &config, nil
}

func applyDefaults(config *ServerConfig) {
	if config.Server.Address == "" {
		config.Server.Address = "localhost"
	}
	if config.Server.Port == 0 {
		config.Server.Port = 8080
	}
	if config.Server.LogLevel == "" {
		config.Server.LogLevel = "info"
	}
	if config.Server.LogFile == "" {
		config.Server.LogFile = "singoff-server.log"
	}
	if config.Game.GridSize == 0 {
		config.Game.GridSize = 9
	}
	if config.Game.Mode == "" {
		config.Game.Mode = "standard"
	}
	if config.Game.Source == "" {
		config.Game.Source = "all"
	}
	if config.Game.Library == "" {
		config.Game.Library = "library.hcl"
	}
}

// Validate validates the server configuration
func (c *ServerConfig) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Server.Port)
	}

	if len(c.Teams) != 2 {
		return fmt.Errorf("exactly two teams must be configured, got %d", len(c.Teams))
	}
	for _, team := range c.Teams {
		if team.Name == "" {
			return fmt.Errorf("team name must not be empty")
		}
		if len(team.Profiles) == 0 {
			return fmt.Errorf("team %s: at least one profile required", team.Name)
		}
	}

	if _, err := parseMode(c.Game.Mode); err != nil {
		return err
	}
	if _, err := parseSource(c.Game.Source); err != nil {
		return err
	}

	// Grid size, roster limits and source parameters get the full check in
	// PartyConfig, which the stage machine also runs before building a
	// tournament.
	if _, err := c.PartyConfig(); err != nil {
		return err
	}
	return nil
}

// PartyConfig converts the game settings into an engine configuration.
func (c *ServerConfig) PartyConfig() (*party.Config, error) {
	mode, err := parseMode(c.Game.Mode)
	if err != nil {
		return nil, err
	}
	source, err := parseSource(c.Game.Source)
	if err != nil {
		return nil, err
	}

	cfg := &party.Config{
		GridSize:   c.Game.GridSize,
		Source:     source,
		CategoryID: c.Game.CategoryID,
		PlaylistID: c.Game.PlaylistID,
		Mode:       mode,
	}
	for i, team := range c.Teams {
		if i >= 2 {
			break
		}
		cfg.TeamNames[i] = team.Name
		cfg.Rosters[i] = append([]int(nil), team.Profiles...)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func parseMode(s string) (party.GameMode, error) {
	switch s {
	case "standard":
		return party.ModeStandard, nil
	case "duet":
		return party.ModeDuet, nil
	case "medley":
		return party.ModeMedley, nil
	}
	return 0, fmt.Errorf("invalid game mode %q", s)
}

func parseSource(s string) (party.SongSource, error) {
	switch s {
	case "all":
		return party.SourceAllSongs, nil
	case "category":
		return party.SourceCategory, nil
	case "playlist":
		return party.SourcePlaylist, nil
	}
	return 0, fmt.Errorf("invalid song source %q", s)
}

// GetServerAddress returns the full server address
func (c *ServerConfig) GetServerAddress() string {
	return fmt.Sprintf("%s:%d", c.Server.Address, c.Server.Port)
}
