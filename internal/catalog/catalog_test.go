package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/duetstage/singoff/internal/party"
)

func testSongs() []party.Song {
	return []party.Song{
		{ID: 1, Title: "One", Category: 1, Modes: party.NewModeSet(party.ModeStandard)},
		{ID: 2, Title: "Two", Category: 1, Modes: party.NewModeSet(party.ModeStandard, party.ModeDuet), Duet: true},
		{ID: 3, Title: "Three", Category: 2, Modes: party.NewModeSet(party.ModeStandard)},
	}
}

func TestCatalogVisibility(t *testing.T) {
	c := New(testSongs())

	assert.Equal(t, 3, c.CountAll())
	assert.Equal(t, 3, c.CountVisible())

	c.SetCategoryFilter(1)
	assert.Equal(t, 3, c.CountAll())
	require.Equal(t, 2, c.CountVisible())

	first, ok := c.Visible(0)
	require.True(t, ok)
	assert.Equal(t, 1, first.ID)
	second, ok := c.Visible(1)
	require.True(t, ok)
	assert.Equal(t, 2, second.ID)
	_, ok = c.Visible(2)
	assert.False(t, ok)

	// ByID ignores the filter.
	song, ok := c.ByID(3)
	require.True(t, ok)
	assert.Equal(t, "Three", song.Title)

	c.SetCategoryFilter(party.NoCategory)
	assert.Equal(t, 3, c.CountVisible())
}

func TestCatalogSungFlags(t *testing.T) {
	c := New(testSongs())

	c.MarkSung(2)
	assert.True(t, c.Sung(2))
	assert.False(t, c.Sung(1))

	c.ResetSungFlags()
	assert.False(t, c.Sung(2))
}

func TestPlaylists(t *testing.T) {
	p := NewPlaylists()
	p.Add(4, "Warmup", []int{3, 1})

	assert.Equal(t, "Warmup", p.Name(4))
	assert.Equal(t, 2, p.Count(4))
	assert.Equal(t, 0, p.Count(99))

	id, ok := p.Entry(4, 1)
	require.True(t, ok)
	assert.Equal(t, 1, id)
	_, ok = p.Entry(4, 2)
	assert.False(t, ok)
}

func TestParseLibrary(t *testing.T) {
	src := []byte(`
song "Take On Me" {
  id       = 1
  artist   = "a-ha"
  category = 1
  modes    = ["standard", "duet"]
  duet     = true
}

song "Africa" {
  id     = 2
  artist = "Toto"
}

playlist "Warmup" {
  id    = 1
  songs = [2, 1]
}
`)

	lib, err := ParseLibrary(src, "library.hcl")
	require.NoError(t, err)

	require.Equal(t, 2, lib.Catalog.CountAll())
	song, ok := lib.Catalog.ByID(1)
	require.True(t, ok)
	assert.Equal(t, "Take On Me", song.Title)
	assert.True(t, song.Duet)
	assert.True(t, song.Modes.Supports(party.ModeDuet))

	// Missing modes default to standard only.
	africa, ok := lib.Catalog.ByID(2)
	require.True(t, ok)
	assert.True(t, africa.Modes.Supports(party.ModeStandard))
	assert.False(t, africa.Modes.Supports(party.ModeDuet))

	assert.Equal(t, 2, lib.Playlists.Count(1))
}

func TestParseLibraryErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{
			name: "duplicate id",
			src: `
song "A" { id = 1 }
song "B" { id = 1 }
`,
		},
		{
			name: "unknown mode",
			src: `
song "A" {
  id    = 1
  modes = ["rap"]
}
`,
		},
		{
			name: "playlist with unknown song",
			src: `
song "A" { id = 1 }
playlist "P" {
  id    = 1
  songs = [1, 5]
}
`,
		},
		{
			name: "non-positive id",
			src:  `song "A" { id = 0 }`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseLibrary([]byte(tt.src), "library.hcl")
			assert.Error(t, err)
		})
	}
}
