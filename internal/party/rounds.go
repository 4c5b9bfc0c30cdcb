package party

// JokerCounts is the per-team joker allowance derived from the grid size.
// Random jokers widen the song pool, retry jokers widen the player draw
// sequences.
type JokerCounts struct {
	Random [2]int
	Retry  [2]int
}

// jokerTable maps grid size to joker allowances. Sizes not present yield
// zero counts, which downstream logic treats as a misconfigured tournament.
var jokerTable = map[int]JokerCounts{
	9:  {Random: [2]int{1, 1}, Retry: [2]int{0, 0}},
	16: {Random: [2]int{2, 2}, Retry: [2]int{1, 1}},
	25: {Random: [2]int{3, 3}, Retry: [2]int{2, 2}},
}

// ComputeJokers returns the joker allowance for the grid size. Grid size is
// validated upstream by Config.Validate; an unsupported size here returns
// zero counts rather than guessing.
func ComputeJokers(gridSize int) JokerCounts {
	return jokerTable[gridSize]
}

// BuildRounds produces gridSize empty rounds. Cell order only matters for
// display; the engine treats the result as independent slots. Singers are
// unassigned (-1) until a cell is first sung.
func BuildRounds(gridSize int) []Round {
	rounds := make([]Round, gridSize)
	for i := range rounds {
		rounds[i].SingerTeam1 = -1
		rounds[i].SingerTeam2 = -1
	}
	return rounds
}
