package websocket

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"techmastery/models"

	"github.com/gorilla/websocket"
)

func dialTestClient(t *testing.T) (*websocket.Conn, func()) {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			t.Errorf("upgrade: %v", err)
			return
		}
		RegisterProgressClient(&ProgressClient{Conn: conn, UserID: "u1"})
	}))

	u := "ws" + server.URL[len("http"):]
	conn, _, err := websocket.DefaultDialer.Dial(u, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	return conn, func() {
		conn.Close()
		server.Close()
	}
}

func waitForClients(t *testing.T, want int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if ProgressClientCount() >= want {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("expected %d registered clients, got %d", want, ProgressClientCount())
}

func TestBroadcastProgressEvent(t *testing.T) {
	conn, cleanup := dialTestClient(t)
	defer cleanup()

	waitForClients(t, 1)

	event := models.ProgressEvent{
		Type:        "progress_updated",
		UserID:      "u1",
		ChallengeID: 42,
		Points:      25,
		TotalPoints: 25,
		Timestamp:   time.Now(),
	}
	BroadcastProgressEvent(event)

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var received models.ProgressEvent
	if err := conn.ReadJSON(&received); err != nil {
		t.Fatalf("read broadcast: %v", err)
	}
	if received.Type != "progress_updated" || received.ChallengeID != 42 || received.Points != 25 {
		t.Fatalf("unexpected event: %+v", received)
	}
}

func TestUnregisterProgressClient(t *testing.T) {
	conn, cleanup := dialTestClient(t)
	defer cleanup()
	_ = conn

	waitForClients(t, 1)
	before := ProgressClientCount()

	// Grab any registered client and unregister it.
	progressMutex.RLock()
	var client *ProgressClient
	for c := range progressClients {
		client = c
		break
	}
	progressMutex.RUnlock()

	UnregisterProgressClient(client)
	if got := ProgressClientCount(); got != before-1 {
		t.Fatalf("expected %d clients, got %d", before-1, got)
	}

	// Double unregister is a no-op.
	UnregisterProgressClient(client)
}
