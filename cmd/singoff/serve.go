package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/duetstage/singoff/internal/catalog"
	"github.com/duetstage/singoff/internal/server"
)

// ServeCmd runs the WebSocket server for remote host UIs.
type ServeCmd struct {
	Config   string `short:"c" default:"singoff.hcl" help:"Path to HCL configuration file"`
	Addr     string `short:"a" help:"Server address to bind to (overrides config)"`
	LogLevel string `short:"l" help:"Log level (overrides config)"`
	Seed     *int64 `help:"Deterministic RNG seed (optional)"`
}

func (c *ServeCmd) Run() error {
	cfg, err := server.LoadServerConfig(c.Config)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if c.LogLevel != "" {
		cfg.Server.LogLevel = c.LogLevel
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	addr := cfg.GetServerAddress()
	if c.Addr != "" {
		addr = c.Addr
	}

	logger := setupLogger(cfg.Server.LogLevel)

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

	svc := server.NewService(partyCfg, lib, seed, logger)
	srv := server.NewServer(addr, svc, logger)

	logger.Info("starting sing-off server",
		"addr", addr,
		"grid", partyCfg.GridSize,
		"songs", lib.Catalog.CountAll(),
		"seed", seed)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		logger.Info("shutting down server")
		_ = srv.Stop()
	}()

	return srv.Start()
}
