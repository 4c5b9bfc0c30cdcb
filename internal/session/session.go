// Package session implements the performance-session collaborator: the
// performer slots bound by the tournament engine and the raw points produced
// by the singing subsystem.
package session

import "github.com/duetstage/singoff/internal/party"

// Session is an in-process party.PerformanceSession. Front ends (or tests)
// record raw points with SetResult after a performance completes.
type Session struct {
	slots   []*party.PerformerSlot
	songs   []int
	results []float64
}

// New creates an empty session.
func New() *Session {
	return &Session{}
}

// Reset clears slots, songs and results for a new round.
func (s *Session) Reset() {
	s.slots = nil
	s.songs = nil
	s.results = nil
}

// ClearSongs drops the queued songs, keeping slots and results.
func (s *Session) ClearSongs() {
	s.songs = nil
}

// AddSong queues a song for the performance.
func (s *Session) AddSong(songID int) {
	s.songs = append(s.songs, songID)
}

// Songs returns the queued song IDs.
func (s *Session) Songs() []int {
	return s.songs
}

// CurrentSong returns the most recently queued song, or 0.
func (s *Session) CurrentSong() int {
	if len(s.songs) == 0 {
		return 0
	}
	return s.songs[len(s.songs)-1]
}

// SetSlotCount allocates n performer slots, discarding previous bindings and
// results.
func (s *Session) SetSlotCount(n int) {
	s.slots = make([]*party.PerformerSlot, n)
	for i := range s.slots {
		s.slots[i] = &party.PerformerSlot{DuetVoice: -1}
	}
	s.results = make([]float64, n)
}

// Slots returns the performer slots for binding.
func (s *Session) Slots() []*party.PerformerSlot {
	return s.slots
}

// SetResult records the raw points for a slot. Out-of-range slots are
// ignored.
func (s *Session) SetResult(slot int, points float64) {
	if slot < 0 || slot >= len(s.results) {
		return
	}
	s.results[slot] = points
}

// Results returns the raw points per slot.
func (s *Session) Results() []float64 {
	return s.results
}
