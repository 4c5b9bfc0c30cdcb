package party

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeJokers(t *testing.T) {
	tests := []struct {
		name     string
		gridSize int
		random   [2]int
		retry    [2]int
	}{
		{name: "3x3", gridSize: 9, random: [2]int{1, 1}, retry: [2]int{0, 0}},
		{name: "4x4", gridSize: 16, random: [2]int{2, 2}, retry: [2]int{1, 1}},
		{name: "5x5", gridSize: 25, random: [2]int{3, 3}, retry: [2]int{2, 2}},
		{name: "unsupported size", gridSize: 12, random: [2]int{0, 0}, retry: [2]int{0, 0}},
		{name: "zero", gridSize: 0, random: [2]int{0, 0}, retry: [2]int{0, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			jokers := ComputeJokers(tt.gridSize)
			assert.Equal(t, tt.random, jokers.Random)
			assert.Equal(t, tt.retry, jokers.Retry)
		})
	}
}

func TestBuildRounds(t *testing.T) {
	rounds := BuildRounds(16)
	require.Len(t, rounds, 16)

	for i, r := range rounds {
		assert.Equal(t, 0, r.SongID, "round %d should have no song", i)
		assert.Equal(t, -1, r.SingerTeam1, "round %d singer 1 unassigned", i)
		assert.Equal(t, -1, r.SingerTeam2, "round %d singer 2 unassigned", i)
		assert.Equal(t, 0, r.Winner)
		assert.False(t, r.Finished)
	}
}
