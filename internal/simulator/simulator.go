// Package simulator runs complete seeded tournaments without a UI, for
// smoke-testing the engine and for balance experiments on grid sizes and
// catalog shapes.
package simulator

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/duetstage/singoff/internal/catalog"
	"github.com/duetstage/singoff/internal/party"
	"github.com/duetstage/singoff/internal/randutil"
	"github.com/duetstage/singoff/internal/session"
)

// Config holds configuration for a simulation batch.
type Config struct {
	Tournaments int
	GridSize    int
	Seed        int64
	Parallelism int
	Timeout     time.Duration
	Library     *catalog.Library // nil uses a synthetic catalog
	Logger      *log.Logger
}

// Stats aggregates results across simulated tournaments.
type Stats struct {
	Tournaments     int
	RoundsPlayed    int // performances, including tie replays
	Ties            int
	CellsWonTeam1   int
	CellsWonTeam2   int
	TournamentsWon1 int
	TournamentsWon2 int
	TournamentDraws int

	mu sync.Mutex
}

func (s *Stats) add(r runResult) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Tournaments++
	s.RoundsPlayed += r.roundsPlayed
	s.Ties += r.ties
	s.CellsWonTeam1 += r.cells1
	s.CellsWonTeam2 += r.cells2
	switch {
	case r.cells1 > r.cells2:
		s.TournamentsWon1++
	case r.cells2 > r.cells1:
		s.TournamentsWon2++
	default:
		s.TournamentDraws++
	}
}

type runResult struct {
	roundsPlayed int
	ties         int
	cells1       int
	cells2       int
}

// Simulator runs tournament simulations.
type Simulator struct {
	config Config
}

// New creates a simulator with the given configuration.
func New(config Config) *Simulator {
	if config.Parallelism < 1 {
		config.Parallelism = 1
	}
	// A shared library is mutated by every run (sung flags, category
	// filter), so those batches run sequentially.
	if config.Library != nil {
		config.Parallelism = 1
	}
	if config.Timeout <= 0 {
		config.Timeout = 30 * time.Second
	}
	if config.Logger == nil {
		config.Logger = log.Default()
	}
	return &Simulator{config: config}
}

// Run executes the batch and returns aggregate statistics. Each tournament
// gets an independent seed derived from the batch seed so results are
// reproducible regardless of parallelism.
func (s *Simulator) Run(ctx context.Context) (*Stats, error) {
	stats := &Stats{}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.config.Parallelism)

	for i := 0; i < s.config.Tournaments; i++ {
		seed := s.config.Seed + int64(i)
		g.Go(func() error {
			runCtx, cancel := context.WithTimeout(ctx, s.config.Timeout)
			defer cancel()

			result, err := s.runTournament(runCtx, seed)
			if err != nil {
				return fmt.Errorf("tournament with seed %d: %w", seed, err)
			}
			stats.add(result)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return stats, nil
}

type nopNav struct{}

func (nopNav) FadeTo(party.Screen) {}

// runTournament plays one full tournament with scripted hosts: the acting
// team always picks the first open cell and a random pool song, and both
// singers score random points.
func (s *Simulator) runTournament(ctx context.Context, seed int64) (runResult, error) {
	rng := randutil.New(seed)

	lib := s.config.Library
	if lib == nil {
		lib = syntheticLibrary(s.config.GridSize)
	}

	sess := session.New()
	cfg := &party.Config{
		GridSize:  s.config.GridSize,
		TeamNames: [2]string{"Team 1", "Team 2"},
		Rosters:   [2][]int{{1, 2, 3}, {4, 5, 6}},
		Source:    party.SourceAllSongs,
		Mode:      party.ModeStandard,
	}

	machine := party.NewMachine(cfg, party.Deps{
		Rng:       rng,
		Catalog:   lib.Catalog,
		Playlists: lib.Playlists,
		Session:   sess,
		Nav:       nopNav{},
	}, s.config.Logger)

	if err := machine.Next(); err != nil {
		return runResult{}, err
	}
	if err := machine.Next(); err != nil {
		return runResult{}, err
	}

	var result runResult
	t := machine.Tournament()

	// Tie replays can stretch a tournament past its grid size, but a run
	// that exceeds this bound has wedged.
	maxRounds := s.config.GridSize * 10
	for !t.Complete() {
		if err := ctx.Err(); err != nil {
			return runResult{}, err
		}
		if result.roundsPlayed >= maxRounds {
			return runResult{}, fmt.Errorf("no progress after %d performances", result.roundsPlayed)
		}

		cell := firstOpenCell(t)
		if err := machine.SelectRound(cell); err != nil {
			return runResult{}, err
		}
		if err := machine.Next(); err != nil {
			return runResult{}, err
		}

		round := &t.Rounds[cell-1]
		songID := round.SongID
		if songID == 0 {
			songID = t.SongPool[rng.Intn(len(t.SongPool))]
		}
		if err := machine.SongSelected(songID); err != nil {
			return runResult{}, err
		}

		sess.SetResult(0, float64(rng.Intn(10001))/100)
		sess.SetResult(1, float64(rng.Intn(10001))/100)

		if err := machine.LeavingHighscore(); err != nil {
			return runResult{}, err
		}

		result.roundsPlayed++
		if !round.Finished {
			result.ties++
		}
	}

	result.cells1 = t.Wins(1)
	result.cells2 = t.Wins(2)
	return result, nil
}

func firstOpenCell(t *party.Tournament) int {
	for i := range t.Rounds {
		if !t.Rounds[i].Finished {
			return i + 1
		}
	}
	return 0
}

// syntheticLibrary builds a catalog comfortably larger than the biggest pool
// a grid of this size can demand.
func syntheticLibrary(gridSize int) *catalog.Library {
	n := gridSize*2 + 10
	songs := make([]party.Song, n)
	for i := range songs {
		songs[i] = party.Song{
			ID:     i + 1,
			Title:  fmt.Sprintf("Song %d", i+1),
			Artist: "Simulated",
			Modes:  party.NewModeSet(party.ModeStandard, party.ModeDuet, party.ModeMedley),
			Duet:   i%3 == 0,
		}
	}
	return &catalog.Library{Catalog: catalog.New(songs), Playlists: catalog.NewPlaylists()}
}
