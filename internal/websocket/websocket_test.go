package websocket

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/abrezinsky/pinplanner/internal/logger"
	"github.com/abrezinsky/pinplanner/internal/models"
	"github.com/abrezinsky/pinplanner/internal/planner"
)

// fakeSource serves a fixed board state
type fakeSource struct {
	mu    sync.Mutex
	state models.BoardState
}

func (f *fakeSource) State() models.BoardState {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

func newHub(t *testing.T) (*Hub, *fakeSource) {
	t.Helper()
	source := &fakeSource{state: models.BoardState{
		BoardID:         "arduino_uno",
		BoardName:       "Arduino Uno",
		Assignments:     []planner.Assignment{{PinIndex: 13, ComponentID: "led"}},
		AvailablePower:  2,
		AvailableGround: 3,
	}}
	hub := New(logger.Discard(), source)
	hub.Start()
	t.Cleanup(hub.Stop)
	return hub, source
}

// boardStateMessage mirrors the JSON of a board_state message
type boardStateMessage struct {
	Type    string            `json:"type"`
	Payload models.BoardState `json:"payload"`
}

func readBoardState(t *testing.T, ws *websocket.Conn) boardStateMessage {
	t.Helper()
	ws.SetReadDeadline(time.Now().Add(2 * time.Second))
	var msg boardStateMessage
	if err := ws.ReadJSON(&msg); err != nil {
		t.Fatalf("failed to read message: %v", err)
	}
	return msg
}

func dial(t *testing.T, hub *Hub) *websocket.Conn {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(hub.ServeWs))
	t.Cleanup(server.Close)

	ws, _, err := websocket.DefaultDialer.Dial("ws"+server.URL[4:], nil)
	if err != nil {
		t.Fatalf("failed to connect: %v", err)
	}
	t.Cleanup(func() { ws.Close() })
	return ws
}

func waitForClients(t *testing.T, hub *Hub, n int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for hub.ClientCount() != n {
		if time.Now().After(deadline) {
			t.Fatalf("expected %d clients, got %d", n, hub.ClientCount())
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestNew_CreatesHubWithDependencies(t *testing.T) {
	hub := New(logger.Discard(), &fakeSource{})

	if hub.clients == nil {
		t.Error("expected clients map to be initialized")
	}
	if hub.broadcast == nil || hub.register == nil || hub.unregister == nil {
		t.Error("expected channels to be initialized")
	}
	if hub.source == nil {
		t.Error("expected state source to be set")
	}
}

func TestHub_BroadcastWithNoClients(t *testing.T) {
	hub, _ := newHub(t)

	done := make(chan bool)
	go func() {
		hub.BroadcastBoardState(models.BoardState{BoardID: "esp32_devkit"})
		done <- true
	}()

	select {
	case <-done:
	case <-time.After(100 * time.Millisecond):
		t.Error("BroadcastBoardState blocked with no clients")
	}
}

func TestHub_BroadcastAfterStopDoesNotBlock(t *testing.T) {
	hub := New(logger.Discard(), nil)
	hub.Stop()
	hub.Stop() // second stop is harmless

	done := make(chan bool)
	go func() {
		for i := 0; i < 100; i++ {
			hub.BroadcastMessage("noise", i)
		}
		done <- true
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Error("broadcast blocked on a stopped hub")
	}
}

func TestHub_ClientRegistration(t *testing.T) {
	hub, _ := newHub(t)

	client := &Client{hub: hub, send: make(chan models.WSMessage, 256)}
	hub.register <- client
	waitForClients(t, hub, 1)

	select {
	case msg := <-client.send:
		if msg.Type != MessageBoardState {
			t.Errorf("expected initial %s, got %s", MessageBoardState, msg.Type)
		}
	case <-time.After(time.Second):
		t.Fatal("expected initial board state on register")
	}

	hub.unregister <- client
	waitForClients(t, hub, 0)

	if _, ok := <-client.send; ok {
		t.Error("expected send channel to be closed on unregister")
	}
}

func TestServeWs_InitialBoardState(t *testing.T) {
	hub, _ := newHub(t)
	ws := dial(t, hub)

	msg := readBoardState(t, ws)
	if msg.Type != MessageBoardState {
		t.Fatalf("expected %s, got %s", MessageBoardState, msg.Type)
	}
	if msg.Payload.BoardID != "arduino_uno" || msg.Payload.AvailableGround != 3 {
		t.Errorf("unexpected payload: %+v", msg.Payload)
	}
	if len(msg.Payload.Assignments) != 1 || msg.Payload.Assignments[0].PinIndex != 13 {
		t.Errorf("unexpected assignments: %+v", msg.Payload.Assignments)
	}
}

func TestServeWs_BroadcastToClients(t *testing.T) {
	hub, _ := newHub(t)
	first := dial(t, hub)
	second := dial(t, hub)
	readBoardState(t, first)
	readBoardState(t, second)
	waitForClients(t, hub, 2)

	hub.BroadcastBoardState(models.BoardState{
		BoardID:     "raspberry_pi_4",
		Assignments: []planner.Assignment{},
	})

	for _, ws := range []*websocket.Conn{first, second} {
		msg := readBoardState(t, ws)
		if msg.Payload.BoardID != "raspberry_pi_4" {
			t.Errorf("expected broadcast board, got %q", msg.Payload.BoardID)
		}
	}
}

func TestServeWs_SkipsOlderBoardStates(t *testing.T) {
	hub, source := newHub(t)
	source.mu.Lock()
	source.state.Version = 3
	source.mu.Unlock()

	ws := dial(t, hub)
	if msg := readBoardState(t, ws); msg.Payload.Version != 3 {
		t.Fatalf("expected initial version 3, got %d", msg.Payload.Version)
	}
	waitForClients(t, hub, 1)

	hub.BroadcastBoardState(models.BoardState{BoardID: "arduino_uno", Version: 2})
	hub.BroadcastBoardState(models.BoardState{BoardID: "arduino_uno", Version: 3})
	hub.BroadcastBoardState(models.BoardState{BoardID: "esp32_devkit", Version: 5})
	hub.BroadcastBoardState(models.BoardState{BoardID: "arduino_uno", Version: 4})
	hub.BroadcastBoardState(models.BoardState{BoardID: "raspberry_pi_4", Version: 6})

	for _, want := range []uint64{5, 6} {
		msg := readBoardState(t, ws)
		if msg.Payload.Version != want {
			t.Fatalf("expected version %d, got %d (%s)", want, msg.Payload.Version, msg.Payload.BoardID)
		}
	}
}

func TestServeWs_PayloadFieldNames(t *testing.T) {
	hub, _ := newHub(t)
	ws := dial(t, hub)

	ws.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, raw, err := ws.ReadMessage()
	if err != nil {
		t.Fatalf("failed to read: %v", err)
	}

	var generic map[string]map[string]interface{}
	if err := json.Unmarshal(raw, &generic); err != nil {
		t.Fatalf("failed to unmarshal: %v", err)
	}
	for _, key := range []string{"board_id", "assignments", "available_power", "available_ground"} {
		if _, ok := generic["payload"][key]; !ok {
			t.Errorf("expected payload key %q in %s", key, raw)
		}
	}
}

func TestServeWs_ClientDisconnect(t *testing.T) {
	hub, _ := newHub(t)
	ws := dial(t, hub)
	readBoardState(t, ws)
	waitForClients(t, hub, 1)

	ws.Close()
	waitForClients(t, hub, 0)
}

func TestServeWs_IgnoresClientMessages(t *testing.T) {
	hub, _ := newHub(t)
	ws := dial(t, hub)
	readBoardState(t, ws)

	if err := ws.WriteJSON(models.WSMessage{Type: "hello"}); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	if err := ws.WriteMessage(websocket.TextMessage, []byte("not json")); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	hub.BroadcastBoardState(models.BoardState{BoardID: "esp32_devkit"})
	if msg := readBoardState(t, ws); msg.Payload.BoardID != "esp32_devkit" {
		t.Errorf("expected connection to stay usable, got %+v", msg)
	}
}

func TestServeWs_RejectsPlainHTTP(t *testing.T) {
	hub, _ := newHub(t)

	req := httptest.NewRequest(http.MethodGet, "/ws", nil)
	w := httptest.NewRecorder()
	hub.ServeWs(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for non-upgrade request, got %d", w.Code)
	}
}
