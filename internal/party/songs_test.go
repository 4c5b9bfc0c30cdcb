package party

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assertNoDuplicates(t *testing.T, pool []int) {
	t.Helper()
	seen := make(map[int]bool)
	for _, id := range pool {
		assert.False(t, seen[id], "song %d appears twice in the pool", id)
		seen[id] = true
	}
}

func TestBuildAllSongs(t *testing.T) {
	catalog := newFakeCatalog(songRange(20)...)
	builder := NewSongPoolBuilder(rand.New(rand.NewSource(3)), catalog, &fakePlaylists{})
	cfg := &Config{GridSize: 9, Source: SourceAllSongs, Mode: ModeStandard}

	pool, err := builder.Build(cfg, 11)
	require.NoError(t, err)
	require.Len(t, pool, 11)
	assertNoDuplicates(t, pool)
}

func TestBuildFiltersByGameMode(t *testing.T) {
	songs := songRange(6)
	// Only half the catalog can be sung as a medley.
	for i := range songs {
		if i%2 == 0 {
			songs[i].Modes = NewModeSet(ModeStandard, ModeMedley)
		}
	}
	catalog := newFakeCatalog(songs...)
	builder := NewSongPoolBuilder(rand.New(rand.NewSource(1)), catalog, &fakePlaylists{})
	cfg := &Config{Source: SourceAllSongs, Mode: ModeMedley}

	pool, err := builder.Build(cfg, 3)
	require.NoError(t, err)
	require.Len(t, pool, 3)
	for _, id := range pool {
		song, ok := catalog.ByID(id)
		require.True(t, ok)
		assert.True(t, song.Modes.Supports(ModeMedley), "song %d does not support medley", id)
	}
}

func TestBuildCategoryTogglesFilter(t *testing.T) {
	songs := songRange(10)
	for i := range songs {
		songs[i].Category = i % 2 // categories 0 and 1
	}
	catalog := newFakeCatalog(songs...)
	builder := NewSongPoolBuilder(rand.New(rand.NewSource(5)), catalog, &fakePlaylists{})
	cfg := &Config{Source: SourceCategory, CategoryID: 1, Mode: ModeStandard}

	pool, err := builder.Build(cfg, 4)
	require.NoError(t, err)
	require.Len(t, pool, 4)
	assertNoDuplicates(t, pool)

	for _, id := range pool {
		song, _ := catalog.ByID(id)
		assert.Equal(t, 1, song.Category)
	}

	// The filter is activated around the query and cleared afterwards.
	require.NotEmpty(t, catalog.filterCalls)
	assert.Equal(t, 1, catalog.filterCalls[0])
	assert.Equal(t, NoCategory, catalog.filterCalls[len(catalog.filterCalls)-1])
	assert.Equal(t, NoCategory, catalog.filter)
}

func TestBuildPlaylistSource(t *testing.T) {
	catalog := newFakeCatalog(songRange(10)...)
	playlists := &fakePlaylists{lists: map[int][]int{
		// Duplicate entry and an unknown song must both be skipped.
		7: {2, 4, 4, 6, 8, 99},
	}}
	builder := NewSongPoolBuilder(rand.New(rand.NewSource(9)), catalog, playlists)
	cfg := &Config{Source: SourcePlaylist, PlaylistID: 7, Mode: ModeStandard}

	pool, err := builder.Build(cfg, 4)
	require.NoError(t, err)
	require.ElementsMatch(t, []int{2, 4, 6, 8}, pool)
}

func TestBuildNotEnoughSongs(t *testing.T) {
	catalog := newFakeCatalog(songRange(5)...)
	builder := NewSongPoolBuilder(rand.New(rand.NewSource(2)), catalog, &fakePlaylists{})
	cfg := &Config{Source: SourceAllSongs, Mode: ModeStandard}

	_, err := builder.Build(cfg, 11)
	require.ErrorIs(t, err, ErrNotEnoughSongs)
}

func TestBuildRandomizesOrder(t *testing.T) {
	catalog := newFakeCatalog(songRange(30)...)
	cfg := &Config{Source: SourceAllSongs, Mode: ModeStandard}

	a, err := NewSongPoolBuilder(rand.New(rand.NewSource(1)), catalog, &fakePlaylists{}).Build(cfg, 20)
	require.NoError(t, err)
	b, err := NewSongPoolBuilder(rand.New(rand.NewSource(2)), catalog, &fakePlaylists{}).Build(cfg, 20)
	require.NoError(t, err)

	assert.NotEqual(t, a, b, "different seeds should give different pool orders")
}
