package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/duetstage/singoff/internal/catalog"
	"github.com/duetstage/singoff/internal/party"
	"github.com/duetstage/singoff/internal/randutil"
	"github.com/duetstage/singoff/internal/session"
)

// Service owns the stage machine on behalf of remote host UIs. Commands
// from all connections are serialized through its mutex, which satisfies
// the engine's single-dispatch-thread requirement.
type Service struct {
	mu      sync.Mutex
	machine *party.Machine
	session *session.Session
	logger  *log.Logger

	screen    party.Screen
	broadcast func(*Message)
}

// NewService builds the machine over the given library with a seeded random
// source.
func NewService(cfg *party.Config, lib *catalog.Library, seed int64, logger *log.Logger) *Service {
	svc := &Service{
		session: session.New(),
		logger:  logger.WithPrefix("service"),
		screen:  party.ScreenConfig,
	}
	svc.machine = party.NewMachine(cfg, party.Deps{
		Rng:       randutil.New(seed),
		Catalog:   lib.Catalog,
		Playlists: lib.Playlists,
		Session:   svc.session,
		Nav:       svc,
	}, logger)
	svc.machine.Events().Subscribe(svc)
	return svc
}

// SetBroadcaster wires the function used to push navigation and event
// messages to every connected client.
func (s *Service) SetBroadcaster(f func(*Message)) {
	s.broadcast = f
}

// FadeTo implements party.Navigator by broadcasting the target screen.
func (s *Service) FadeTo(screen party.Screen) {
	s.screen = screen
	s.push(MessageTypeNavigate, NavigateData{Screen: screen.String()})
}

// OnEvent implements party.EventSubscriber, forwarding engine events to all
// clients.
func (s *Service) OnEvent(event party.Event) {
	data := EventData{Event: event.EventType().String()}
	switch e := event.(type) {
	case party.RoundStartedEvent:
		data.Round = e.RoundNr
	case party.SongChosenEvent:
		data.Round = e.RoundNr
		data.SongID = e.SongID
	case party.RoundScoredEvent:
		data.Round = e.RoundNr
		data.Winner = e.Winner
		data.Points1 = e.Points1
		data.Points2 = e.Points2
	}
	s.push(MessageTypeEvent, data)
}

func (s *Service) push(messageType MessageType, data interface{}) {
	if s.broadcast == nil {
		return
	}
	msg, err := NewMessage(messageType, data)
	if err != nil {
		s.logger.Error("failed to build broadcast message", "type", messageType, "error", err)
		return
	}
	s.broadcast(msg)
}

// Dispatch executes one host command and returns the reply. A non-nil error
// means the command violated the state machine contract; the connection
// must report it as fatal and drop the client.
func (s *Service) Dispatch(msg *Message) (*Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := s.apply(msg)
	if err != nil && errors.Is(err, party.ErrInvalidTransition) {
		s.logger.Error("state machine contract violated", "type", msg.Type, "error", err)
		return nil, err
	}

	var reply *Message
	var buildErr error
	if err != nil {
		reply, buildErr = NewMessage(MessageTypeError, ErrorData{Message: err.Error()})
	} else {
		reply, buildErr = NewMessage(MessageTypeState, s.snapshotLocked())
	}
	if buildErr != nil {
		return nil, buildErr
	}
	reply.RequestID = msg.RequestID
	return reply, nil
}

func (s *Service) apply(msg *Message) error {
	switch msg.Type {
	case MessageTypeGetState:
		return nil

	case MessageTypeNext:
		return s.machine.Next()

	case MessageTypeBack:
		return s.machine.Back()

	case MessageTypeSelectRound:
		var data SelectRoundData
		if err := json.Unmarshal(msg.Data, &data); err != nil {
			return fmt.Errorf("bad select_round payload: %w", err)
		}
		return s.machine.SelectRound(data.Round)

	case MessageTypeSongSelected:
		var data SongSelectedData
		if err := json.Unmarshal(msg.Data, &data); err != nil {
			return fmt.Errorf("bad song_selected payload: %w", err)
		}
		return s.machine.SongSelected(data.SongID)

	case MessageTypeSetResults:
		var data SetResultsData
		if err := json.Unmarshal(msg.Data, &data); err != nil {
			return fmt.Errorf("bad set_results payload: %w", err)
		}
		for i, points := range data.Points {
			s.session.SetResult(i, points)
		}
		return nil

	case MessageTypeLeavingHighscore:
		return s.machine.LeavingHighscore()

	case MessageTypeUseJoker:
		var data UseJokerData
		if err := json.Unmarshal(msg.Data, &data); err != nil {
			return fmt.Errorf("bad use_joker payload: %w", err)
		}
		switch data.Joker {
		case "retry":
			return s.machine.UseRetryJoker(data.Team)
		case "random":
			_, err := s.machine.UseRandomJoker(data.Team)
			return err
		}
		return fmt.Errorf("unknown joker %q", data.Joker)
	}
	return fmt.Errorf("unknown message type %q", msg.Type)
}

// Snapshot returns the current tournament state for UI binding.
func (s *Service) Snapshot() StateData {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Service) snapshotLocked() StateData {
	cfg := s.machine.Config()
	state := StateData{
		Stage:     s.machine.Stage().String(),
		Screen:    s.screen.String(),
		TeamNames: cfg.TeamNames,
		GridSize:  cfg.GridSize,
	}

	t := s.machine.Tournament()
	if t == nil {
		return state
	}

	state.CurrentRoundNr = t.CurrentRoundNr
	state.SingRoundNr = t.SingRoundNr
	state.ActingTeam = t.ActingTeam
	state.JokerRandom = t.NumJokerRandom
	state.JokerRetry = t.NumJokerRetry
	state.SongPool = append([]int(nil), t.SongPool...)
	state.Rounds = make([]RoundState, len(t.Rounds))
	for i, r := range t.Rounds {
		state.Rounds[i] = RoundState{
			SongID:      r.SongID,
			SingerTeam1: r.SingerTeam1,
			SingerTeam2: r.SingerTeam2,
			PointsTeam1: r.PointsTeam1,
			PointsTeam2: r.PointsTeam2,
			Winner:      r.Winner,
			Finished:    r.Finished,
		}
	}
	return state
}
