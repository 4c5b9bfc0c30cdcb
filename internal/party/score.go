package party

import "math"

// ScoreEvaluator converts raw performance points into a round result,
// applying the tie-retry rule: a tied cell is left unfinished and replayed
// later instead of being marked complete.
type ScoreEvaluator struct{}

// Evaluate reads the raw points for both performers, stores the rounded
// scores on the current sing round and decides the winner. The round-advance
// counter moves only when the round transitions to finished, so ties never
// advance it and re-evaluating an already finished round never advances it
// twice.
func (ScoreEvaluator) Evaluate(t *Tournament, session PerformanceSession) {
	round := t.CurrentRound()
	if round == nil {
		return
	}

	results := session.Results()
	if len(results) < 2 {
		return
	}

	wasFinished := round.Finished
	round.PointsTeam1 = int(math.Round(results[0]))
	round.PointsTeam2 = int(math.Round(results[1]))

	switch {
	case round.PointsTeam1 > round.PointsTeam2:
		round.Winner = 1
		round.Finished = true
	case round.PointsTeam1 < round.PointsTeam2:
		round.Winner = 2
		round.Finished = true
	default:
		// Tie: the cell stays open and is sung again later.
		round.Winner = 0
		round.Finished = false
	}

	if !wasFinished && round.Finished {
		t.CurrentRoundNr++
	}
}
