package party

import (
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
)

// Stage is one phase of the tournament flow.
type Stage int

const (
	StageConfig Stage = iota
	StageNames
	StageMain
	StageSinging
)

func (s Stage) String() string {
	switch s {
	case StageConfig:
		return "config"
	case StageNames:
		return "names"
	case StageMain:
		return "main"
	case StageSinging:
		return "singing"
	}
	return "unknown"
}

type stageEvent int

const (
	eventNext stageEvent = iota
	eventBack
)

func (e stageEvent) String() string {
	if e == eventBack {
		return "back"
	}
	return "next"
}

// ErrInvalidTransition signals that the host drove the machine out of its
// supported transition graph. This is a programming error on the host side,
// not a recoverable runtime condition; hosts must treat it as fatal.
var ErrInvalidTransition = errors.New("invalid stage transition")

// errSessionUnavailable aborts a round start when the performance session
// cannot supply two performer slots. Never escapes Next: the round is left
// unstarted and the host may retry.
var errSessionUnavailable = errors.New("performance session unavailable")

// transitions is the explicit stage x event table. Config's back action is
// special-cased in Back: it exits to the party hub without a stage change.
var transitions = map[Stage]map[stageEvent]Stage{
	StageConfig:  {eventNext: StageNames},
	StageNames:   {eventNext: StageMain, eventBack: StageConfig},
	StageMain:    {eventNext: StageSinging, eventBack: StageConfig},
	StageSinging: {eventNext: StageMain},
}

// stageScreens maps each stage to its screen. Singing routes to the shared
// song-performance screen rather than a stage-specific one.
var stageScreens = map[Stage]Screen{
	StageConfig:  ScreenConfig,
	StageNames:   ScreenNames,
	StageMain:    ScreenMain,
	StageSinging: ScreenSing,
}

// Deps are the collaborators the machine composes. Rng, Catalog, Playlists,
// Session and Nav are required; Bus defaults to an in-memory bus.
type Deps struct {
	Rng       Rand
	Catalog   SongCatalog
	Playlists Playlists
	Session   PerformanceSession
	Nav       Navigator
	Bus       EventBus
}

// Machine is the top-level tournament controller. It owns the tournament
// aggregate exclusively; all mutation happens through its methods on the
// host's single event-dispatch thread.
type Machine struct {
	stage      Stage
	cfg        *Config
	tournament *Tournament

	rng       Rand
	catalog   SongCatalog
	playlists Playlists
	session   PerformanceSession
	nav       Navigator
	bus       EventBus

	allocator *PlayerAllocator
	songs     *SongPoolBuilder
	score     ScoreEvaluator

	logger *log.Logger
}

// NewMachine creates a stage machine in the Config stage.
func NewMachine(cfg *Config, deps Deps, logger *log.Logger) *Machine {
	bus := deps.Bus
	if bus == nil {
		bus = NewEventBus()
	}
	return &Machine{
		stage:     StageConfig,
		cfg:       cfg,
		rng:       deps.Rng,
		catalog:   deps.Catalog,
		playlists: deps.Playlists,
		session:   deps.Session,
		nav:       deps.Nav,
		bus:       bus,
		allocator: NewPlayerAllocator(deps.Rng),
		songs:     NewSongPoolBuilder(deps.Rng, deps.Catalog, deps.Playlists),
		logger:    logger.WithPrefix("party"),
	}
}

// Stage returns the current stage.
func (m *Machine) Stage() Stage {
	return m.stage
}

// Config returns the tournament configuration for host UI binding.
func (m *Machine) Config() *Config {
	return m.cfg
}

// Tournament returns the running tournament aggregate, or nil before the
// first Names -> Main transition.
func (m *Machine) Tournament() *Tournament {
	return m.tournament
}

// Events returns the event bus front ends subscribe to.
func (m *Machine) Events() EventBus {
	return m.bus
}

// Next advances the machine one stage. Transition side effects run before
// the stage changes; a failed Names -> Main build leaves the machine in
// Names, and an unavailable session leaves it in Main with no effect.
func (m *Machine) Next() error {
	next, ok := transitions[m.stage][eventNext]
	if !ok {
		return fmt.Errorf("%w: next from %s", ErrInvalidTransition, m.stage)
	}

	switch m.stage {
	case StageConfig:
		// Nothing to prepare; the names screen edits the config in place.

	case StageNames:
		if err := m.buildTournament(); err != nil {
			return err
		}

	case StageMain:
		if err := m.startRound(); err != nil {
			if errors.Is(err, errSessionUnavailable) {
				m.logger.Warn("round start abandoned", "round", m.tournament.SingRoundNr, "reason", err)
				return nil
			}
			return err
		}

	case StageSinging:
		if err := m.returnToMain(); err != nil {
			// The transition still completes; the host surfaces the error
			// (e.g. an empty catalog) and the user can back out.
			m.enter(next)
			return err
		}
	}

	m.enter(next)
	return nil
}

// Back returns to the Config stage from Names or Main. From Config it
// requests navigation to the party hub and mutates nothing; any other stage
// is an invalid transition.
func (m *Machine) Back() error {
	if m.stage == StageConfig {
		m.nav.FadeTo(ScreenPartyHub)
		return nil
	}

	prev, ok := transitions[m.stage][eventBack]
	if !ok {
		return fmt.Errorf("%w: back from %s", ErrInvalidTransition, m.stage)
	}
	m.enter(prev)
	return nil
}

// enter commits a stage change, publishes it and requests navigation to the
// stage's screen.
func (m *Machine) enter(next Stage) {
	from := m.stage
	m.stage = next
	m.logger.Debug("stage changed", "from", from, "to", next)
	m.bus.Publish(StageChangedEvent{From: from, To: next, timestamp: time.Now()})
	m.nav.FadeTo(stageScreens[next])
}

// buildTournament populates a brand-new tournament record on Names -> Main.
// The previous record (including a partially played one) is discarded
// wholesale.
func (m *Machine) buildTournament() error {
	if err := m.cfg.Validate(); err != nil {
		return fmt.Errorf("tournament misconfigured: %w", err)
	}

	t := NewTournament(m.cfg.GridSize)
	t.ActingTeam = m.rng.Intn(2)
	t.Rounds = BuildRounds(m.cfg.GridSize)

	jokers := ComputeJokers(m.cfg.GridSize)
	t.NumJokerRandom = jokers.Random
	t.NumJokerRetry = jokers.Retry

	m.catalog.ResetSungFlags()

	rosterSizes := [2]int{len(m.cfg.Rosters[0]), len(m.cfg.Rosters[1])}
	counts := [2]int{
		playerDrawCount(m.cfg.GridSize, jokers.Retry[0]),
		playerDrawCount(m.cfg.GridSize, jokers.Retry[1]),
	}
	t.PlayerQueue = m.allocator.DrawJoint(rosterSizes, counts)

	pool, err := m.songs.Build(m.cfg, m.songPoolTarget(jokers))
	if err != nil {
		return err
	}
	t.SongPool = pool

	m.tournament = t
	m.logger.Info("tournament built",
		"grid", t.GridSize,
		"startingTeam", t.ActingTeam+1,
		"songs", len(t.SongPool))
	m.bus.Publish(TournamentStartedEvent{
		GridSize:     t.GridSize,
		StartingTeam: t.ActingTeam,
		Jokers:       jokers,
		timestamp:    time.Now(),
	})
	return nil
}

func (m *Machine) songPoolTarget(jokers JokerCounts) int {
	return m.cfg.GridSize + jokers.Random[0] + jokers.Random[1]
}

// playerDrawCount is how many singers a team has drawn at once: one per
// cell, one per retry joker, plus a spare so the next-up singer can always
// be shown on the main screen.
func playerDrawCount(gridSize, retryJokers int) int {
	return gridSize + retryJokers + 1
}

// SelectRound chooses the cell to sing next. Called from the main screen
// before Next moves into Singing.
func (m *Machine) SelectRound(roundNr int) error {
	if m.stage != StageMain {
		return fmt.Errorf("%w: select round in %s", ErrInvalidTransition, m.stage)
	}
	t := m.tournament
	if roundNr < 1 || roundNr > len(t.Rounds) {
		return fmt.Errorf("round %d out of range 1-%d", roundNr, len(t.Rounds))
	}
	if t.Rounds[roundNr-1].Finished {
		return fmt.Errorf("round %d is already decided", roundNr)
	}
	t.SingRoundNr = roundNr
	return nil
}

// startRound binds the current cell's performers to the performance session.
// If no cell is selected the first undecided one is taken. When the session
// cannot supply two slots the start is abandoned with tournament state
// untouched.
func (m *Machine) startRound() error {
	t := m.tournament
	if t.SingRoundNr == 0 {
		for i := range t.Rounds {
			if !t.Rounds[i].Finished {
				t.SingRoundNr = i + 1
				break
			}
		}
	}
	round := t.CurrentRound()
	if round == nil {
		return fmt.Errorf("no singable round in a %d-cell grid", len(t.Rounds))
	}

	m.session.Reset()
	m.session.SetSlotCount(2)
	slots := m.session.Slots()
	if len(slots) < 2 {
		return fmt.Errorf("%w: %d slots", errSessionUnavailable, len(slots))
	}

	// Singers are drawn lazily the first time a cell is sung; a tied cell
	// keeps its singers on replay.
	if round.SingerTeam1 < 0 {
		round.SingerTeam1 = m.nextSingerPos(0)
	}
	if round.SingerTeam2 < 0 {
		round.SingerTeam2 = m.nextSingerPos(1)
	}

	m.bindSlots(round, slots)

	m.logger.Debug("round started",
		"round", t.SingRoundNr,
		"singer1", round.SingerTeam1,
		"singer2", round.SingerTeam2)
	m.bus.Publish(RoundStartedEvent{
		RoundNr:   t.SingRoundNr,
		Profile1:  slots[0].ProfileID,
		Profile2:  slots[1].ProfileID,
		timestamp: time.Now(),
	})
	return nil
}

// bindSlots points the two session slots at the round's singers and tags
// duet voices when the chosen song supports them.
func (m *Machine) bindSlots(round *Round, slots []*PerformerSlot) {
	t := m.tournament
	slots[0].ProfileID = m.cfg.Rosters[0][t.PlayerQueue[0][round.SingerTeam1]]
	slots[1].ProfileID = m.cfg.Rosters[1][t.PlayerQueue[1][round.SingerTeam2]]
	slots[0].DuetVoice = -1
	slots[1].DuetVoice = -1

	if round.SongID != 0 {
		if song, ok := m.catalog.ByID(round.SongID); ok && song.Duet {
			slots[0].DuetVoice = 0
			slots[1].DuetVoice = 1
		}
	}
}

// nextSingerPos consumes the team's next drawn position, topping the queue
// up with a fresh single-team draw if it has run dry.
func (m *Machine) nextSingerPos(team int) int {
	t := m.tournament
	pos := t.takeSingerPos(team)
	if pos >= 0 {
		return pos
	}
	m.replenishPlayers(team)
	return t.takeSingerPos(team)
}

func (m *Machine) replenishPlayers(team int) {
	t := m.tournament
	count := playerDrawCount(t.GridSize, t.NumJokerRetry[team])
	batch := m.allocator.DrawTeam(len(m.cfg.Rosters[team]), count)
	t.PlayerQueue[team] = append(t.PlayerQueue[team], batch...)
	m.logger.Debug("player queue replenished", "team", team+1, "drawn", count)
}

// returnToMain runs the Singing -> Main side effects: flip the acting team
// and top up whichever pools have emptied.
func (m *Machine) returnToMain() error {
	t := m.tournament
	t.ActingTeam = 1 - t.ActingTeam
	t.SingRoundNr = 0

	for team := 0; team < 2; team++ {
		if t.RemainingPlayers(team) == 0 {
			m.replenishPlayers(team)
		}
	}

	if len(t.SongPool) == 0 && !t.Complete() {
		jokers := JokerCounts{Random: t.NumJokerRandom, Retry: t.NumJokerRetry}
		pool, err := m.songs.Build(m.cfg, m.songPoolTarget(jokers))
		if err != nil {
			return err
		}
		t.SongPool = pool
		m.logger.Debug("song pool replenished", "songs", len(pool))
	}
	return nil
}

// SongSelected records the chosen song for the current cell, loads it into
// the performance session and requests navigation to the performance screen.
// On a tie replay the cell's previous song may be re-confirmed even though
// it is no longer in the pool.
func (m *Machine) SongSelected(songID int) error {
	if m.stage != StageSinging {
		return fmt.Errorf("%w: song selected in %s", ErrInvalidTransition, m.stage)
	}
	t := m.tournament
	round := t.CurrentRound()
	if round == nil {
		return fmt.Errorf("no round selected")
	}

	if round.SongID != songID {
		if !t.removeSong(songID) {
			return fmt.Errorf("song %d is not in the pool", songID)
		}
		round.SongID = songID
	}

	m.session.ClearSongs()
	m.session.AddSong(songID)
	if slots := m.session.Slots(); len(slots) >= 2 {
		m.bindSlots(round, slots)
	}

	m.bus.Publish(SongChosenEvent{RoundNr: t.SingRoundNr, SongID: songID, timestamp: time.Now()})
	m.nav.FadeTo(ScreenSing)
	return nil
}

// LeavingHighscore is called when the host leaves the results screen: it
// marks the played song as sung, evaluates the score and advances the
// machine back to the main screen.
func (m *Machine) LeavingHighscore() error {
	if m.stage != StageSinging {
		return fmt.Errorf("%w: leaving highscore in %s", ErrInvalidTransition, m.stage)
	}
	t := m.tournament
	round := t.CurrentRound()
	if round == nil {
		return fmt.Errorf("no round selected")
	}

	if round.SongID != 0 {
		m.catalog.MarkSung(round.SongID)
	}

	roundNr := t.SingRoundNr
	m.score.Evaluate(t, m.session)
	m.bus.Publish(RoundScoredEvent{
		RoundNr:   roundNr,
		Points1:   round.PointsTeam1,
		Points2:   round.PointsTeam2,
		Winner:    round.Winner,
		Finished:  round.Finished,
		timestamp: time.Now(),
	})

	if round.Finished {
		m.logger.Info("round decided",
			"round", roundNr,
			"winner", round.Winner,
			"points1", round.PointsTeam1,
			"points2", round.PointsTeam2)
	} else {
		m.logger.Info("round tied, cell stays open", "round", roundNr, "points", round.PointsTeam1)
	}

	return m.Next()
}

// UseRetryJoker redraws the current cell's singer for the given team,
// consuming one retry joker and the next drawn queue position. Only legal
// while singing: before then the cell has no singers to redraw.
func (m *Machine) UseRetryJoker(team int) error {
	if m.stage != StageSinging {
		return fmt.Errorf("%w: retry joker in %s", ErrInvalidTransition, m.stage)
	}
	if team < 0 || team > 1 {
		return fmt.Errorf("no team %d", team)
	}
	t := m.tournament
	round := t.CurrentRound()
	if round == nil {
		return fmt.Errorf("no round selected")
	}
	if t.NumJokerRetry[team] == 0 {
		return fmt.Errorf("team %d has no retry jokers left", team+1)
	}

	pos := m.nextSingerPos(team)
	if team == 0 {
		round.SingerTeam1 = pos
	} else {
		round.SingerTeam2 = pos
	}
	t.NumJokerRetry[team]--

	if slots := m.session.Slots(); len(slots) >= 2 {
		m.bindSlots(round, slots)
	}
	m.logger.Info("retry joker used", "team", team+1, "round", t.SingRoundNr)
	return nil
}

// UseRandomJoker swaps the current cell's song for a random one from the
// pool, consuming one random joker. Returns the replacement song ID. Like
// the retry joker it is only legal while singing.
func (m *Machine) UseRandomJoker(team int) (int, error) {
	if m.stage != StageSinging {
		return 0, fmt.Errorf("%w: random joker in %s", ErrInvalidTransition, m.stage)
	}
	if team < 0 || team > 1 {
		return 0, fmt.Errorf("no team %d", team)
	}
	t := m.tournament
	round := t.CurrentRound()
	if round == nil {
		return 0, fmt.Errorf("no round selected")
	}
	if t.NumJokerRandom[team] == 0 {
		return 0, fmt.Errorf("team %d has no random jokers left", team+1)
	}
	if len(t.SongPool) == 0 {
		return 0, fmt.Errorf("song pool is empty")
	}

	id := t.SongPool[m.rng.Intn(len(t.SongPool))]
	t.removeSong(id)
	round.SongID = id
	t.NumJokerRandom[team]--

	m.session.ClearSongs()
	m.session.AddSong(id)
	if slots := m.session.Slots(); len(slots) >= 2 {
		m.bindSlots(round, slots)
	}

	m.logger.Info("random joker used", "team", team+1, "round", t.SingRoundNr, "song", id)
	m.bus.Publish(SongChosenEvent{RoundNr: t.SingRoundNr, SongID: id, timestamp: time.Now()})
	return id, nil
}
