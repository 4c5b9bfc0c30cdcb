package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWebSocketRoundTrip(t *testing.T) {
	svc, _ := testService(t)
	srv := NewServer("127.0.0.1:0", svc, testLoggerDiscard())
	go srv.run()
	defer func() { _ = srv.Stop() }()

	ts := httptest.NewServer(http.HandlerFunc(srv.handleWebSocket))
	defer ts.Close()

	url := "ws" + strings.TrimPrefix(ts.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))

	// A fresh client gets the current snapshot unprompted.
	var msg Message
	require.NoError(t, conn.ReadJSON(&msg))
	assert.Equal(t, MessageTypeState, msg.Type)

	cmd, err := NewMessage(MessageTypeNext, nil)
	require.NoError(t, err)
	cmd.RequestID = "r1"
	require.NoError(t, conn.WriteJSON(cmd))

	// Broadcast navigate/event messages may arrive before the reply.
	for {
		require.NoError(t, conn.ReadJSON(&msg))
		if msg.RequestID == "r1" {
			break
		}
	}
	require.Equal(t, MessageTypeState, msg.Type)

	var state StateData
	require.NoError(t, json.Unmarshal(msg.Data, &state))
	assert.Equal(t, "names", state.Stage)
}

func TestHealthEndpoint(t *testing.T) {
	svc, _ := testService(t)
	srv := NewServer("127.0.0.1:0", svc, testLoggerDiscard())

	rec := httptest.NewRecorder()
	srv.handleHealth(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "OK", rec.Body.String())
}
