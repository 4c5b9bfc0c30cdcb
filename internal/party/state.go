package party

// Round is one grid cell of the tournament: a song plus the two designated
// singers and their eventual result.
type Round struct {
	SongID      int // 0 until a song is chosen for this cell
	SingerTeam1 int // position in team 1's drawn player sequence, -1 until assigned
	SingerTeam2 int
	PointsTeam1 int
	PointsTeam2 int
	Winner      int // 0 undecided, 1 or 2
	Finished    bool
}

// Tournament is the aggregate state of one running tournament. It is built
// fresh on every Names -> Main transition; an abandoned attempt never leaks
// into a new one because the whole record is replaced, not reset in place.
type Tournament struct {
	GridSize int

	Rounds []Round

	// Drawn player-index sequences per team and the consumption cursor into
	// each. Values index into the team's roster.
	PlayerQueue [2][]int
	NextPlayer  [2]int

	// Remaining selectable song IDs. Selection removes entries; replenishment
	// rebuilds to the target length.
	SongPool []int

	// 1-based cursors. CurrentRoundNr counts completed rounds plus one;
	// SingRoundNr is the cell currently chosen for singing (0 = none).
	CurrentRoundNr int
	SingRoundNr    int

	NumJokerRandom [2]int
	NumJokerRetry  [2]int

	ActingTeam int // 0 or 1
}

// NewTournament builds an empty tournament record for the given grid size.
// Rounds, queues and the song pool are populated by the stage machine.
func NewTournament(gridSize int) *Tournament {
	return &Tournament{
		GridSize:       gridSize,
		CurrentRoundNr: 1,
	}
}

// CurrentRound returns the round at SingRoundNr, or nil when no cell is
// selected.
func (t *Tournament) CurrentRound() *Round {
	if t.SingRoundNr < 1 || t.SingRoundNr > len(t.Rounds) {
		return nil
	}
	return &t.Rounds[t.SingRoundNr-1]
}

// RemainingPlayers returns how many drawn-but-unconsumed player indices the
// team still has.
func (t *Tournament) RemainingPlayers(team int) int {
	return len(t.PlayerQueue[team]) - t.NextPlayer[team]
}

// takeSingerPos consumes the next drawn position for the team and returns
// it. Returns -1 when the queue is exhausted.
func (t *Tournament) takeSingerPos(team int) int {
	if t.RemainingPlayers(team) == 0 {
		return -1
	}
	pos := t.NextPlayer[team]
	t.NextPlayer[team]++
	return pos
}

// removeSong removes a song ID from the pool. Returns false if the song is
// not in the pool.
func (t *Tournament) removeSong(songID int) bool {
	for i, id := range t.SongPool {
		if id == songID {
			t.SongPool = append(t.SongPool[:i], t.SongPool[i+1:]...)
			return true
		}
	}
	return false
}

// FinishedRounds returns the number of decided cells.
func (t *Tournament) FinishedRounds() int {
	n := 0
	for i := range t.Rounds {
		if t.Rounds[i].Finished {
			n++
		}
	}
	return n
}

// Wins returns how many rounds the given team (1 or 2) has won.
func (t *Tournament) Wins(team int) int {
	n := 0
	for i := range t.Rounds {
		if t.Rounds[i].Winner == team {
			n++
		}
	}
	return n
}

// Complete reports whether the whole grid has been decided.
func (t *Tournament) Complete() bool {
	return len(t.Rounds) > 0 && t.FinishedRounds() == len(t.Rounds)
}
