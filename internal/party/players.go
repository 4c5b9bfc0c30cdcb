package party

// PlayerAllocator draws player indices for a team without replacement,
// refilling the draw pool once a full pass of the roster is exhausted. Every
// roster index appears once before any index repeats, so nobody sits out
// twice before everyone has sung.
type PlayerAllocator struct {
	rng Rand
}

// NewPlayerAllocator creates an allocator using the supplied random source.
func NewPlayerAllocator(rng Rand) *PlayerAllocator {
	return &PlayerAllocator{rng: rng}
}

// DrawJoint draws sequences for both teams in lockstep, with independent
// pools and independent refill per team. Used for the initial allocation so
// the draw order matches the on-screen reveal.
func (a *PlayerAllocator) DrawJoint(rosterSizes [2]int, counts [2]int) [2][]int {
	var pools [2][]int
	var out [2][]int
	for team := 0; team < 2; team++ {
		out[team] = make([]int, 0, counts[team])
	}

	longest := counts[0]
	if counts[1] > longest {
		longest = counts[1]
	}

	for i := 0; i < longest; i++ {
		for team := 0; team < 2; team++ {
			if i >= counts[team] {
				continue
			}
			out[team] = append(out[team], a.drawOne(&pools[team], rosterSizes[team]))
		}
	}
	return out
}

// DrawTeam draws a sequence for a single team, used for mid-tournament
// replenishment when that team's queue has been consumed.
func (a *PlayerAllocator) DrawTeam(rosterSize, count int) []int {
	var pool []int
	out := make([]int, 0, count)
	for i := 0; i < count; i++ {
		out = append(out, a.drawOne(&pool, rosterSize))
	}
	return out
}

// drawOne picks a uniformly random entry from the pool, refilling it to the
// full roster range first if it is empty.
func (a *PlayerAllocator) drawOne(pool *[]int, rosterSize int) int {
	if len(*pool) == 0 {
		refilled := make([]int, rosterSize)
		for i := range refilled {
			refilled[i] = i
		}
		*pool = refilled
	}
	j := a.rng.Intn(len(*pool))
	v := (*pool)[j]
	*pool = append((*pool)[:j], (*pool)[j+1:]...)
	return v
}
