package party

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// assertPassProperty checks that within each full pass of the roster no
// value repeats and every roster index appears before any recurs.
func assertPassProperty(t *testing.T, seq []int, rosterSize int) {
	t.Helper()
	for start := 0; start < len(seq); start += rosterSize {
		end := start + rosterSize
		if end > len(seq) {
			end = len(seq)
		}
		seen := make(map[int]bool)
		for _, v := range seq[start:end] {
			require.GreaterOrEqual(t, v, 0)
			require.Less(t, v, rosterSize)
			assert.False(t, seen[v], "value %d repeated within a pass", v)
			seen[v] = true
		}
		// A complete pass covers the whole roster.
		if end-start == rosterSize {
			assert.Len(t, seen, rosterSize)
		}
	}
}

func TestDrawTeamLengthAndPasses(t *testing.T) {
	tests := []struct {
		name       string
		rosterSize int
		count      int
	}{
		{name: "no wraparound", rosterSize: 10, count: 9},
		{name: "exact pass", rosterSize: 3, count: 3},
		{name: "wraparound once", rosterSize: 4, count: 10},
		{name: "tiny roster many draws", rosterSize: 1, count: 12},
		{name: "grid plus retry", rosterSize: 5, count: 16 + 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			alloc := NewPlayerAllocator(rand.New(rand.NewSource(42)))
			seq := alloc.DrawTeam(tt.rosterSize, tt.count)
			require.Len(t, seq, tt.count)
			assertPassProperty(t, seq, tt.rosterSize)
		})
	}
}

func TestDrawJointLengths(t *testing.T) {
	alloc := NewPlayerAllocator(rand.New(rand.NewSource(7)))
	queues := alloc.DrawJoint([2]int{4, 6}, [2]int{10, 12})

	require.Len(t, queues[0], 10)
	require.Len(t, queues[1], 12)
	assertPassProperty(t, queues[0], 4)
	assertPassProperty(t, queues[1], 6)
}

func TestDrawJointLockstepIsDeterministic(t *testing.T) {
	// Always picking pool index 0 makes the interleaved consumption visible:
	// team 1 draws from a 2-player roster, team 2 from a 3-player roster.
	alloc := NewPlayerAllocator(&scriptRand{})
	queues := alloc.DrawJoint([2]int{2, 3}, [2]int{3, 3})

	assert.Equal(t, []int{0, 1, 0}, queues[0])
	assert.Equal(t, []int{0, 1, 2}, queues[1])
}

func TestDrawTeamPoolRefillOnExhaustion(t *testing.T) {
	// Scripted draws: one full pass of a 2-player roster, then the pool must
	// refill before the third draw.
	alloc := NewPlayerAllocator(&scriptRand{seq: []int{1, 0, 1}})
	seq := alloc.DrawTeam(2, 3)

	assert.Equal(t, []int{1, 0, 1}, seq)
}
