package party

// Rand supplies the randomness for player draws, song pools and the
// starting-team coin flip. *math/rand.Rand satisfies it; tests can supply a
// scripted sequence.
type Rand interface {
	Intn(n int) int
}

// GameMode is the performance mode the tournament is played in.
type GameMode int

const (
	ModeStandard GameMode = iota
	ModeDuet
	ModeMedley
)

func (m GameMode) String() string {
	switch m {
	case ModeStandard:
		return "standard"
	case ModeDuet:
		return "duet"
	case ModeMedley:
		return "medley"
	}
	return "unknown"
}

// ModeSet is the set of performance modes a song supports.
type ModeSet uint8

// NewModeSet builds a mode set from individual modes.
func NewModeSet(modes ...GameMode) ModeSet {
	var s ModeSet
	for _, m := range modes {
		s |= 1 << uint(m)
	}
	return s
}

// Supports reports whether the set contains the given mode.
func (s ModeSet) Supports(m GameMode) bool {
	return s&(1<<uint(m)) != 0
}

// SongSource selects where the song pool is drawn from.
type SongSource int

const (
	SourceAllSongs SongSource = iota
	SourceCategory
	SourcePlaylist
)

func (s SongSource) String() string {
	switch s {
	case SourceAllSongs:
		return "all"
	case SourceCategory:
		return "category"
	case SourcePlaylist:
		return "playlist"
	}
	return "unknown"
}

// Song is the catalog metadata the engine needs to build pools and bind
// performance slots.
type Song struct {
	ID       int
	Title    string
	Artist   string
	Category int
	Modes    ModeSet
	Duet     bool
}

// NoCategory disables the catalog category filter.
const NoCategory = -1

// SongCatalog is the song library collaborator. Visible iteration respects
// the active category filter.
type SongCatalog interface {
	CountAll() int
	CountVisible() int
	ByID(id int) (Song, bool)
	Visible(i int) (Song, bool)
	SetCategoryFilter(categoryID int)
	MarkSung(id int)
	ResetSungFlags()
}

// Playlists resolves playlist entries to song IDs.
type Playlists interface {
	Count(playlistID int) int
	Entry(playlistID, i int) (songID int, ok bool)
}

// PerformerSlot is one bound performer in the session. The engine writes the
// profile binding and duet voice; the session owns scoring.
type PerformerSlot struct {
	ProfileID int
	DuetVoice int // -1 when not singing a duet part
}

// PerformanceSession is the singing subsystem boundary. It produces the raw
// points the ScoreEvaluator consumes.
type PerformanceSession interface {
	Reset()
	ClearSongs()
	AddSong(songID int)
	SetSlotCount(n int)
	Slots() []*PerformerSlot
	Results() []float64
}

// Screen is a handle into the host's screen registry.
type Screen int

const (
	ScreenPartyHub Screen = iota
	ScreenConfig
	ScreenNames
	ScreenMain
	ScreenSing
)

func (s Screen) String() string {
	switch s {
	case ScreenPartyHub:
		return "party-hub"
	case ScreenConfig:
		return "config"
	case ScreenNames:
		return "names"
	case ScreenMain:
		return "main"
	case ScreenSing:
		return "sing"
	}
	return "unknown"
}

// Navigator performs screen navigation on behalf of the engine.
type Navigator interface {
	FadeTo(screen Screen)
}
