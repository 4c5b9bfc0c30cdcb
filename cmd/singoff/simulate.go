package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/duetstage/singoff/internal/catalog"
	"github.com/duetstage/singoff/internal/simulator"
)

// SimulateCmd runs headless tournaments for engine smoke tests and balance
// experiments.
type SimulateCmd struct {
	Tournaments int           `short:"n" default:"100" help:"Number of tournaments to run"`
	GridSize    int           `short:"g" default:"9" help:"Grid size (9, 16 or 25)"`
	Seed        int64         `default:"1" help:"Base RNG seed; tournament i uses seed+i"`
	Parallelism int           `short:"p" default:"4" help:"Concurrent tournaments"`
	Timeout     time.Duration `default:"30s" help:"Per-tournament timeout"`
	Library     string        `help:"Song library HCL file (default: synthetic catalog)"`
	Debug       bool          `help:"Enable debug logging"`
}

func (c *SimulateCmd) Run() error {
	level := "info"
	if c.Debug {
		level = "debug"
	}
	logger := setupLogger(level)

	var lib *catalog.Library
	if c.Library != "" {
		var err error
		lib, err = catalog.LoadLibrary(c.Library)
		if err != nil {
			return fmt.Errorf("loading song library: %w", err)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	start := time.Now()
	stats, err := simulator.New(simulator.Config{
		Tournaments: c.Tournaments,
		GridSize:    c.GridSize,
		Seed:        c.Seed,
		Parallelism: c.Parallelism,
		Timeout:     c.Timeout,
		Library:     lib,
		Logger:      logger,
	}).Run(ctx)
	if err != nil {
		return err
	}

	elapsed := time.Since(start)
	fmt.Printf("Tournaments:   %d in %s\n", stats.Tournaments, elapsed.Round(time.Millisecond))
	fmt.Printf("Performances:  %d (%d ties)\n", stats.RoundsPlayed, stats.Ties)
	fmt.Printf("Cells won:     team 1 %d, team 2 %d\n", stats.CellsWonTeam1, stats.CellsWonTeam2)
	fmt.Printf("Tournaments:   team 1 %d, team 2 %d, drawn %d\n",
		stats.TournamentsWon1, stats.TournamentsWon2, stats.TournamentDraws)
	return nil
}
