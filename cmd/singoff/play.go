package main

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/duetstage/singoff/internal/catalog"
	"github.com/duetstage/singoff/internal/randutil"
	"github.com/duetstage/singoff/internal/server"
	"github.com/duetstage/singoff/internal/tui"
)

// PlayCmd hosts a tournament on the local terminal.
type PlayCmd struct {
	Config   string `short:"c" default:"singoff.hcl" help:"Path to HCL configuration file"`
	GridSize int    `short:"g" help:"Grid size override (9, 16 or 25)"`
	Seed     *int64 `help:"Deterministic RNG seed (optional)"`
	LogFile  string `help:"Write logs to this file instead of discarding them"`
	LogLevel string `short:"l" default:"info" help:"Log level for the log file"`
}

func (c *PlayCmd) Run() error {
	cfg, err := server.LoadServerConfig(c.Config)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if c.GridSize != 0 {
		cfg.Game.GridSize = c.GridSize
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	lib, err := catalog.LoadLibrary(cfg.Game.Library)
	if err != nil {
		return fmt.Errorf("loading song library: %w", err)
	}

	partyCfg, err := cfg.PartyConfig()
	if err != nil {
		return err
	}

	seed := cfg.Game.Seed
	if c.Seed != nil {
		seed = *c.Seed
	}
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	// The terminal belongs to the TUI; logs go to a file or nowhere.
	logger, closeLog, err := setupFileLogger(c.LogFile, c.LogLevel)
	if err != nil {
		return err
	}
	defer closeLog()
	logger.Info("starting local tournament", "grid", partyCfg.GridSize, "seed", seed)

	model := tui.New(partyCfg, lib, randutil.New(seed), logger)
	_, err = tea.NewProgram(model, tea.WithAltScreen()).Run()
	return err
}
