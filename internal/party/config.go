package party

import "fmt"

// Tournament limits exposed to the host configuration UI.
const (
	MinPlayers        = 2
	MaxPlayers        = 20
	MinTeams          = 2
	MaxTeams          = 2
	MinPlayersPerTeam = 1
	MaxPlayersPerTeam = 10
)

// SupportedGridSizes are the playable grid sizes (3x3, 4x4, 5x5).
var SupportedGridSizes = []int{9, 16, 25}

// Config holds the static tournament parameters chosen on the config and
// names screens before a tournament is built.
type Config struct {
	GridSize   int
	TeamNames  [2]string
	Rosters    [2][]int // profile IDs per team
	Source     SongSource
	CategoryID int
	PlaylistID int
	Mode       GameMode
}

// MaxRoundCount returns the number of rounds a tournament with this config
// plays, which is the grid size.
func (c *Config) MaxRoundCount() int {
	return c.GridSize
}

// Validate checks the config against the tournament limits. A tournament
// must not be built from an invalid config.
func (c *Config) Validate() error {
	if !isSupportedGridSize(c.GridSize) {
		return fmt.Errorf("unsupported grid size %d (want one of %v)", c.GridSize, SupportedGridSizes)
	}

	total := 0
	for team := 0; team < 2; team++ {
		n := len(c.Rosters[team])
		if n < MinPlayersPerTeam || n > MaxPlayersPerTeam {
			return fmt.Errorf("team %d has %d players, want %d-%d", team+1, n, MinPlayersPerTeam, MaxPlayersPerTeam)
		}
		total += n
	}
	if total < MinPlayers || total > MaxPlayers {
		return fmt.Errorf("%d players total, want %d-%d", total, MinPlayers, MaxPlayers)
	}

	if c.Source == SourcePlaylist && c.PlaylistID < 0 {
		return fmt.Errorf("playlist source selected without a playlist")
	}
	if c.Source == SourceCategory && c.CategoryID < 0 {
		return fmt.Errorf("category source selected without a category")
	}
	return nil
}

func isSupportedGridSize(n int) bool {
	for _, s := range SupportedGridSizes {
		if n == s {
			return true
		}
	}
	return false
}
