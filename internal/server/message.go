package server

import (
	"encoding/json"
	"time"
)

// MessageType identifies a WebSocket message.
type MessageType string

const (
	// Client -> server
	MessageTypeNext             MessageType = "next"
	MessageTypeBack             MessageType = "back"
	MessageTypeSelectRound      MessageType = "select_round"
	MessageTypeSongSelected     MessageType = "song_selected"
	MessageTypeSetResults       MessageType = "set_results"
	MessageTypeLeavingHighscore MessageType = "leaving_highscore"
	MessageTypeUseJoker         MessageType = "use_joker"
	MessageTypeGetState         MessageType = "get_state"

	// Server -> client
	MessageTypeState    MessageType = "state"
	MessageTypeNavigate MessageType = "navigate"
	MessageTypeEvent    MessageType = "event"
	MessageTypeError    MessageType = "error"
)

// Message is the JSON envelope exchanged with host UI clients.
type Message struct {
	Type      MessageType     `json:"type"`
	Data      json.RawMessage `json:"data,omitempty"`
	Timestamp time.Time       `json:"timestamp"`
	RequestID string          `json:"requestId,omitempty"`
}

// NewMessage creates a message with the current timestamp.
func NewMessage(messageType MessageType, data interface{}) (*Message, error) {
	var raw json.RawMessage
	if data != nil {
		bytes, err := json.Marshal(data)
		if err != nil {
			return nil, err
		}
		raw = bytes
	}
	return &Message{
		Type:      messageType,
		Data:      raw,
		Timestamp: time.Now(),
	}, nil
}

// Client -> server payloads

type SelectRoundData struct {
	Round int `json:"round"`
}

type SongSelectedData struct {
	SongID int `json:"songId"`
}

type SetResultsData struct {
	Points []float64 `json:"points"`
}

type UseJokerData struct {
	Team  int    `json:"team"`  // 0 or 1
	Joker string `json:"joker"` // "random" or "retry"
}

// Server -> client payloads

type NavigateData struct {
	Screen string `json:"screen"`
}

type ErrorData struct {
	Message string `json:"message"`
	Fatal   bool   `json:"fatal,omitempty"`
}

type EventData struct {
	Event   string `json:"event"`
	Round   int    `json:"round,omitempty"`
	SongID  int    `json:"songId,omitempty"`
	Winner  int    `json:"winner,omitempty"`
	Points1 int    `json:"points1,omitempty"`
	Points2 int    `json:"points2,omitempty"`
}

// RoundState mirrors one grid cell for UI binding.
type RoundState struct {
	SongID      int  `json:"songId"`
	SingerTeam1 int  `json:"singerTeam1"`
	SingerTeam2 int  `json:"singerTeam2"`
	PointsTeam1 int  `json:"pointsTeam1"`
	PointsTeam2 int  `json:"pointsTeam2"`
	Winner      int  `json:"winner"`
	Finished    bool `json:"finished"`
}

// StateData is the full tournament snapshot sent after every command.
type StateData struct {
	Stage          string       `json:"stage"`
	Screen         string       `json:"screen"`
	TeamNames      [2]string    `json:"teamNames"`
	GridSize       int          `json:"gridSize"`
	Rounds         []RoundState `json:"rounds,omitempty"`
	SongPool       []int        `json:"songPool,omitempty"`
	CurrentRoundNr int          `json:"currentRoundNr"`
	SingRoundNr    int          `json:"singRoundNr"`
	ActingTeam     int          `json:"actingTeam"`
	JokerRandom    [2]int       `json:"jokerRandom"`
	JokerRetry     [2]int       `json:"jokerRetry"`
}
