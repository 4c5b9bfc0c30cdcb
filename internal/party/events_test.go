package party

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingSubscriber struct {
	events []Event
}

func (r *recordingSubscriber) OnEvent(event Event) {
	r.events = append(r.events, event)
}

func (r *recordingSubscriber) types() []EventType {
	types := make([]EventType, len(r.events))
	for i, e := range r.events {
		types[i] = e.EventType()
	}
	return types
}

func TestEventBusSubscribeUnsubscribe(t *testing.T) {
	bus := NewEventBus()
	a := &recordingSubscriber{}
	b := &recordingSubscriber{}
	bus.Subscribe(a)
	bus.Subscribe(b)

	bus.Publish(StageChangedEvent{From: StageConfig, To: StageNames})
	require.Len(t, a.events, 1)
	require.Len(t, b.events, 1)

	bus.Unsubscribe(a)
	bus.Publish(StageChangedEvent{From: StageNames, To: StageMain})
	assert.Len(t, a.events, 1)
	assert.Len(t, b.events, 2)
}

func TestMachinePublishesLifecycleEvents(t *testing.T) {
	catalog := newFakeCatalog(songRange(20)...)
	session := newFakeSession()
	sub := &recordingSubscriber{}
	bus := NewEventBus()
	bus.Subscribe(sub)

	cfg := &Config{
		GridSize: 9,
		Rosters:  [2][]int{{1, 2}, {3, 4}},
		Source:   SourceAllSongs,
		Mode:     ModeStandard,
	}
	m := NewMachine(cfg, Deps{
		Rng:       rand.New(rand.NewSource(5)),
		Catalog:   catalog,
		Playlists: &fakePlaylists{},
		Session:   session,
		Nav:       &fakeNav{},
		Bus:       bus,
	}, testLogger())

	require.NoError(t, m.Next())
	require.NoError(t, m.Next())
	require.NoError(t, m.SelectRound(1))
	require.NoError(t, m.Next())
	require.NoError(t, m.SongSelected(m.Tournament().SongPool[0]))
	session.results = []float64{60, 40}
	require.NoError(t, m.LeavingHighscore())

	assert.Equal(t, []EventType{
		EventTypeStageChanged,      // config -> names
		EventTypeTournamentStarted, // built before entering main
		EventTypeStageChanged,      // names -> main
		EventTypeRoundStarted,
		EventTypeStageChanged, // main -> singing
		EventTypeSongChosen,
		EventTypeRoundScored,
		EventTypeStageChanged, // singing -> main
	}, sub.types())
}
