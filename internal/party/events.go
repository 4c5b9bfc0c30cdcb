package party

import "time"

// EventType identifies a tournament event.
type EventType string

const (
	EventTypeStageChanged      EventType = "stage_changed"
	EventTypeTournamentStarted EventType = "tournament_started"
	EventTypeRoundStarted      EventType = "round_started"
	EventTypeSongChosen        EventType = "song_chosen"
	EventTypeRoundScored       EventType = "round_scored"
)

func (et EventType) String() string {
	return string(et)
}

// Event is anything published on the tournament event bus.
type Event interface {
	EventType() EventType
	Timestamp() time.Time
}

// StageChangedEvent is published after every completed transition.
type StageChangedEvent struct {
	From      Stage
	To        Stage
	timestamp time.Time
}

func (e StageChangedEvent) EventType() EventType { return EventTypeStageChanged }
func (e StageChangedEvent) Timestamp() time.Time { return e.timestamp }

// TournamentStartedEvent is published when a fresh tournament is built on
// the Names -> Main transition.
type TournamentStartedEvent struct {
	GridSize     int
	StartingTeam int
	Jokers       JokerCounts
	timestamp    time.Time
}

func (e TournamentStartedEvent) EventType() EventType { return EventTypeTournamentStarted }
func (e TournamentStartedEvent) Timestamp() time.Time { return e.timestamp }

// RoundStartedEvent is published when a cell's performers have been bound to
// the session.
type RoundStartedEvent struct {
	RoundNr   int
	Profile1  int
	Profile2  int
	timestamp time.Time
}

func (e RoundStartedEvent) EventType() EventType { return EventTypeRoundStarted }
func (e RoundStartedEvent) Timestamp() time.Time { return e.timestamp }

// SongChosenEvent is published when the acting team commits to a song.
type SongChosenEvent struct {
	RoundNr   int
	SongID    int
	timestamp time.Time
}

func (e SongChosenEvent) EventType() EventType { return EventTypeSongChosen }
func (e SongChosenEvent) Timestamp() time.Time { return e.timestamp }

// RoundScoredEvent is published after score evaluation, including ties.
type RoundScoredEvent struct {
	RoundNr   int
	Points1   int
	Points2   int
	Winner    int // 0 on a tie
	Finished  bool
	timestamp time.Time
}

func (e RoundScoredEvent) EventType() EventType { return EventTypeRoundScored }
func (e RoundScoredEvent) Timestamp() time.Time { return e.timestamp }

// EventSubscriber receives published events.
type EventSubscriber interface {
	OnEvent(event Event)
}

// EventBus manages event publishing and subscription.
type EventBus interface {
	Subscribe(subscriber EventSubscriber)
	Unsubscribe(subscriber EventSubscriber)
	Publish(event Event)
}

// SimpleEventBus is a basic in-memory event bus implementation.
type SimpleEventBus struct {
	subscribers []EventSubscriber
}

// NewEventBus creates a new event bus.
func NewEventBus() EventBus {
	return &SimpleEventBus{subscribers: make([]EventSubscriber, 0)}
}

// Subscribe adds a subscriber to receive events.
func (bus *SimpleEventBus) Subscribe(subscriber EventSubscriber) {
	bus.subscribers = append(bus.subscribers, subscriber)
}

// Unsubscribe removes a subscriber.
func (bus *SimpleEventBus) Unsubscribe(subscriber EventSubscriber) {
	for i, sub := range bus.subscribers {
		if sub == subscriber {
			bus.subscribers = append(bus.subscribers[:i], bus.subscribers[i+1:]...)
			break
		}
	}
}

// Publish sends an event to all subscribers synchronously, matching the
// engine's single-threaded dispatch model.
func (bus *SimpleEventBus) Publish(event Event) {
	for _, subscriber := range bus.subscribers {
		subscriber.OnEvent(event)
	}
}
