package party

import (
	"io"

	"github.com/charmbracelet/log"
)

// scriptRand replays a fixed sequence of draws; once the script runs out it
// keeps returning 0 (pick the first remaining candidate).
type scriptRand struct {
	seq []int
	i   int
}

func (r *scriptRand) Intn(n int) int {
	if r.i < len(r.seq) {
		v := r.seq[r.i] % n
		r.i++
		return v
	}
	return 0
}

type fakeCatalog struct {
	songs  []Song
	filter int
	sung   map[int]bool

	filterCalls []int
	resetCalls  int
}

func newFakeCatalog(songs ...Song) *fakeCatalog {
	return &fakeCatalog{songs: songs, filter: NoCategory, sung: make(map[int]bool)}
}

func (c *fakeCatalog) CountAll() int { return len(c.songs) }

func (c *fakeCatalog) CountVisible() int {
	n := 0
	for _, s := range c.songs {
		if c.filter == NoCategory || s.Category == c.filter {
			n++
		}
	}
	return n
}

func (c *fakeCatalog) Visible(i int) (Song, bool) {
	for _, s := range c.songs {
		if c.filter != NoCategory && s.Category != c.filter {
			continue
		}
		if i == 0 {
			return s, true
		}
		i--
	}
	return Song{}, false
}

func (c *fakeCatalog) ByID(id int) (Song, bool) {
	for _, s := range c.songs {
		if s.ID == id {
			return s, true
		}
	}
	return Song{}, false
}

func (c *fakeCatalog) SetCategoryFilter(categoryID int) {
	c.filter = categoryID
	c.filterCalls = append(c.filterCalls, categoryID)
}

func (c *fakeCatalog) MarkSung(id int) { c.sung[id] = true }
func (c *fakeCatalog) ResetSungFlags() { c.sung = make(map[int]bool); c.resetCalls++ }

type fakePlaylists struct {
	lists map[int][]int
}

func (p *fakePlaylists) Count(playlistID int) int { return len(p.lists[playlistID]) }

func (p *fakePlaylists) Entry(playlistID, i int) (int, bool) {
	list := p.lists[playlistID]
	if i < 0 || i >= len(list) {
		return 0, false
	}
	return list[i], true
}

// fakeSession supplies up to maxSlots performer slots and scripted results.
type fakeSession struct {
	maxSlots int
	slots    []*PerformerSlot
	songs    []int
	results  []float64
	resets   int
}

func newFakeSession() *fakeSession { return &fakeSession{maxSlots: 2} }

func (s *fakeSession) Reset() {
	s.resets++
	s.slots = nil
	s.songs = nil
}

func (s *fakeSession) ClearSongs() { s.songs = nil }

func (s *fakeSession) AddSong(songID int) { s.songs = append(s.songs, songID) }

func (s *fakeSession) SetSlotCount(n int) {
	if n > s.maxSlots {
		n = s.maxSlots
	}
	s.slots = make([]*PerformerSlot, n)
	for i := range s.slots {
		s.slots[i] = &PerformerSlot{DuetVoice: -1}
	}
}

func (s *fakeSession) Slots() []*PerformerSlot { return s.slots }

func (s *fakeSession) Results() []float64 { return s.results }

type fakeNav struct {
	fades []Screen
}

func (n *fakeNav) FadeTo(screen Screen) { n.fades = append(n.fades, screen) }

func (n *fakeNav) last() Screen {
	if len(n.fades) == 0 {
		return -1
	}
	return n.fades[len(n.fades)-1]
}

func testLogger() *log.Logger {
	return log.New(io.Discard)
}

// songRange builds n standard-mode songs with IDs starting at 1.
func songRange(n int) []Song {
	songs := make([]Song, n)
	for i := range songs {
		songs[i] = Song{
			ID:    i + 1,
			Title: "Song",
			Modes: NewModeSet(ModeStandard, ModeDuet),
		}
	}
	return songs
}
