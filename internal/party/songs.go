package party

import (
	"errors"
	"fmt"
)

// ErrNotEnoughSongs is returned when the catalog cannot supply enough
// distinct eligible songs to fill the pool.
var ErrNotEnoughSongs = errors.New("not enough eligible songs for the tournament")

// maxGatherPasses bounds how often the builder re-queries the catalog when
// the candidate set runs dry before the pool is full. Re-gathering picks up
// newly unlocked songs or category changes; without a bound a short catalog
// would loop forever.
const maxGatherPasses = 3

// SongPoolBuilder assembles the randomized, deduplicated song pool from the
// configured source, filtered to songs that support the configured game
// mode.
type SongPoolBuilder struct {
	rng       Rand
	catalog   SongCatalog
	playlists Playlists
}

// NewSongPoolBuilder creates a builder over the given catalog and playlist
// store.
func NewSongPoolBuilder(rng Rand, catalog SongCatalog, playlists Playlists) *SongPoolBuilder {
	return &SongPoolBuilder{rng: rng, catalog: catalog, playlists: playlists}
}

// Build produces a pool of target distinct song IDs in random order. The
// candidate set is regathered between passes so catalog changes are picked
// up; if the catalog still cannot fill the pool after maxGatherPasses the
// builder gives up with ErrNotEnoughSongs.
func (b *SongPoolBuilder) Build(cfg *Config, target int) ([]int, error) {
	pool := make([]int, 0, target)
	inPool := make(map[int]bool, target)

	for pass := 0; pass < maxGatherPasses && len(pool) < target; pass++ {
		candidates, err := b.gather(cfg, inPool)
		if err != nil {
			return nil, err
		}
		for len(candidates) > 0 && len(pool) < target {
			j := b.rng.Intn(len(candidates))
			id := candidates[j]
			candidates = append(candidates[:j], candidates[j+1:]...)
			pool = append(pool, id)
			inPool[id] = true
		}
	}

	if len(pool) < target {
		return nil, fmt.Errorf("%w: have %d of %d (source %s, mode %s)",
			ErrNotEnoughSongs, len(pool), target, cfg.Source, cfg.Mode)
	}
	return pool, nil
}

// gather collects every eligible candidate for the configured source that is
// not already in the pool.
func (b *SongPoolBuilder) gather(cfg *Config, exclude map[int]bool) ([]int, error) {
	switch cfg.Source {
	case SourceAllSongs:
		return b.gatherVisible(cfg.Mode, exclude), nil

	case SourceCategory:
		// The catalog's category filter is activated only around the query.
		b.catalog.SetCategoryFilter(cfg.CategoryID)
		candidates := b.gatherVisible(cfg.Mode, exclude)
		b.catalog.SetCategoryFilter(NoCategory)
		return candidates, nil

	case SourcePlaylist:
		var candidates []int
		seen := make(map[int]bool)
		n := b.playlists.Count(cfg.PlaylistID)
		for i := 0; i < n; i++ {
			id, ok := b.playlists.Entry(cfg.PlaylistID, i)
			if !ok || seen[id] || exclude[id] {
				continue
			}
			seen[id] = true
			song, ok := b.catalog.ByID(id)
			if !ok || !song.Modes.Supports(cfg.Mode) {
				continue
			}
			candidates = append(candidates, id)
		}
		return candidates, nil
	}
	return nil, fmt.Errorf("unknown song source %d", cfg.Source)
}

func (b *SongPoolBuilder) gatherVisible(mode GameMode, exclude map[int]bool) []int {
	var candidates []int
	seen := make(map[int]bool)
	n := b.catalog.CountVisible()
	for i := 0; i < n; i++ {
		song, ok := b.catalog.Visible(i)
		if !ok || seen[song.ID] || exclude[song.ID] {
			continue
		}
		seen[song.ID] = true
		if !song.Modes.Supports(mode) {
			continue
		}
		candidates = append(candidates, song.ID)
	}
	return candidates
}
