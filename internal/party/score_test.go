package party

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scoringTournament(t *testing.T) *Tournament {
	t.Helper()
	tn := NewTournament(9)
	tn.Rounds = BuildRounds(9)
	tn.SingRoundNr = 1
	return tn
}

func TestEvaluateWin(t *testing.T) {
	tn := scoringTournament(t)
	session := newFakeSession()
	session.results = []float64{87.4, 62.9}

	ScoreEvaluator{}.Evaluate(tn, session)

	round := &tn.Rounds[0]
	assert.Equal(t, 87, round.PointsTeam1)
	assert.Equal(t, 63, round.PointsTeam2)
	assert.Equal(t, 1, round.Winner)
	assert.True(t, round.Finished)
	assert.Equal(t, 2, tn.CurrentRoundNr)
}

func TestEvaluateTeam2Win(t *testing.T) {
	tn := scoringTournament(t)
	session := newFakeSession()
	session.results = []float64{10, 55.5}

	ScoreEvaluator{}.Evaluate(tn, session)

	round := &tn.Rounds[0]
	assert.Equal(t, 2, round.Winner)
	assert.True(t, round.Finished)
	assert.Equal(t, 2, tn.CurrentRoundNr)
}

func TestEvaluateTieLeavesRoundOpen(t *testing.T) {
	tn := scoringTournament(t)
	session := newFakeSession()
	session.results = []float64{70.2, 70.2}

	before := tn.CurrentRoundNr
	ScoreEvaluator{}.Evaluate(tn, session)

	round := &tn.Rounds[0]
	assert.False(t, round.Finished)
	assert.Equal(t, 0, round.Winner)
	assert.Equal(t, before, tn.CurrentRoundNr, "a tie must not advance the round counter")
}

func TestEvaluateFinishedRoundDoesNotAdvanceAgain(t *testing.T) {
	tn := scoringTournament(t)
	session := newFakeSession()
	session.results = []float64{87, 63}

	ScoreEvaluator{}.Evaluate(tn, session)
	require.Equal(t, 2, tn.CurrentRoundNr)

	// Re-evaluating the same already-finished round must not advance twice.
	ScoreEvaluator{}.Evaluate(tn, session)
	assert.Equal(t, 2, tn.CurrentRoundNr)
	assert.Equal(t, 1, tn.Rounds[0].Winner)
}

func TestEvaluateRoundsToNearestInteger(t *testing.T) {
	tn := scoringTournament(t)
	session := newFakeSession()
	session.results = []float64{49.5, 49.4}

	ScoreEvaluator{}.Evaluate(tn, session)

	round := &tn.Rounds[0]
	assert.Equal(t, 50, round.PointsTeam1)
	assert.Equal(t, 49, round.PointsTeam2)
	assert.Equal(t, 1, round.Winner)
}

func TestEvaluateWithoutResultsIsNoOp(t *testing.T) {
	tn := scoringTournament(t)
	session := newFakeSession()
	session.results = []float64{80}

	ScoreEvaluator{}.Evaluate(tn, session)

	assert.Equal(t, 1, tn.CurrentRoundNr)
	assert.False(t, tn.Rounds[0].Finished)
}
