// Package catalog provides the in-memory song catalog and playlist store the
// tournament engine draws from, loadable from an HCL song library file.
package catalog

import (
	"github.com/duetstage/singoff/internal/party"
)

// Catalog is an in-memory party.SongCatalog. Visibility respects the active
// category filter; sung flags track which songs have been performed in the
// running tournament.
type Catalog struct {
	songs  []party.Song
	byID   map[int]int // song ID -> index into songs
	filter int
	sung   map[int]bool
}

// New creates a catalog over the given songs. Song order is preserved for
// visible iteration.
func New(songs []party.Song) *Catalog {
	c := &Catalog{
		songs:  songs,
		byID:   make(map[int]int, len(songs)),
		filter: party.NoCategory,
		sung:   make(map[int]bool),
	}
	for i, s := range songs {
		c.byID[s.ID] = i
	}
	return c
}

// CountAll returns the total number of songs regardless of filtering.
func (c *Catalog) CountAll() int {
	return len(c.songs)
}

// CountVisible returns the number of songs passing the category filter.
func (c *Catalog) CountVisible() int {
	if c.filter == party.NoCategory {
		return len(c.songs)
	}
	n := 0
	for i := range c.songs {
		if c.songs[i].Category == c.filter {
			n++
		}
	}
	return n
}

// Visible returns the i-th song passing the category filter.
func (c *Catalog) Visible(i int) (party.Song, bool) {
	if c.filter == party.NoCategory {
		if i < 0 || i >= len(c.songs) {
			return party.Song{}, false
		}
		return c.songs[i], true
	}
	for _, s := range c.songs {
		if s.Category != c.filter {
			continue
		}
		if i == 0 {
			return s, true
		}
		i--
	}
	return party.Song{}, false
}

// ByID looks a song up by its ID, ignoring the category filter.
func (c *Catalog) ByID(id int) (party.Song, bool) {
	i, ok := c.byID[id]
	if !ok {
		return party.Song{}, false
	}
	return c.songs[i], true
}

// SetCategoryFilter restricts visible iteration to one category.
// party.NoCategory clears the filter.
func (c *Catalog) SetCategoryFilter(categoryID int) {
	c.filter = categoryID
}

// MarkSung flags a song as performed in the current tournament.
func (c *Catalog) MarkSung(id int) {
	c.sung[id] = true
}

// Sung reports whether a song has been performed since the last reset.
func (c *Catalog) Sung(id int) bool {
	return c.sung[id]
}

// ResetSungFlags clears all sung flags, called at tournament start.
func (c *Catalog) ResetSungFlags() {
	c.sung = make(map[int]bool)
}

// Playlists is an in-memory party.Playlists store.
type Playlists struct {
	names map[int]string
	lists map[int][]int
}

// NewPlaylists creates an empty playlist store.
func NewPlaylists() *Playlists {
	return &Playlists{
		names: make(map[int]string),
		lists: make(map[int][]int),
	}
}

// Add registers a playlist under the given ID.
func (p *Playlists) Add(id int, name string, songIDs []int) {
	p.names[id] = name
	p.lists[id] = songIDs
}

// Name returns a playlist's display name.
func (p *Playlists) Name(id int) string {
	return p.names[id]
}

// Count returns the number of entries in a playlist; zero for unknown
// playlists.
func (p *Playlists) Count(playlistID int) int {
	return len(p.lists[playlistID])
}

// Entry returns the i-th song ID of a playlist.
func (p *Playlists) Entry(playlistID, i int) (int, bool) {
	list := p.lists[playlistID]
	if i < 0 || i >= len(list) {
		return 0, false
	}
	return list[i], true
}

// IDs returns the registered playlist IDs in unspecified order.
func (p *Playlists) IDs() []int {
	ids := make([]int, 0, len(p.lists))
	for id := range p.lists {
		ids = append(ids, id)
	}
	return ids
}
