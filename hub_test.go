package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"gitlandbot/internal/board"
	"gitlandbot/internal/protocol"
)

func startHub(t *testing.T) (*Hub, string) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	hub := newHub()
	go hub.run(ctx)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		serveWs(hub, w, r)
	}))
	t.Cleanup(func() {
		cancel()
		server.Close()
	})
	return hub, "ws" + strings.TrimPrefix(server.URL, "http")
}

func dial(t *testing.T, url string) *websocket.Conn {
	t.Helper()
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readMessage(t *testing.T, conn *websocket.Conn) protocol.Message {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	var msg protocol.Message
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatalf("read: %v", err)
	}
	return msg
}

func testReport(agent, move string) *protocol.CycleReport {
	return &protocol.CycleReport{
		ID:       agent + "-" + move,
		Agent:    agent,
		Team:     "blue",
		Position: board.Position{X: 1, Y: 2},
		Move:     move,
		Width:    2,
		Height:   1,
		Board:    "cb,ux\n",
	}
}

func TestHubWelcomesAndBroadcasts(t *testing.T) {
	hub, url := startHub(t)
	conn := dial(t, url)

	welcome := readMessage(t, conn)
	if welcome.Type != protocol.TypeWelcome || welcome.SpectatorID == "" {
		t.Fatalf("first message = %+v, want welcome with id", welcome)
	}
	if len(welcome.Agents) != 0 {
		t.Errorf("agents = %v, want none before any cycle", welcome.Agents)
	}

	hub.Publish(testReport("SimonMiaou", "left"))

	msg := readMessage(t, conn)
	if msg.Type != protocol.TypeCycle || msg.Report == nil {
		t.Fatalf("message = %+v, want cycle", msg)
	}
	if msg.Report.Agent != "SimonMiaou" || msg.Report.Move != "left" {
		t.Errorf("report = %+v", msg.Report)
	}
	if msg.Report.Position != (board.Position{X: 1, Y: 2}) {
		t.Errorf("position = %v", msg.Report.Position)
	}
}

func TestHubReplaysLatestToLateJoiner(t *testing.T) {
	hub, url := startHub(t)

	hub.Publish(testReport("zed", "up"))
	hub.Publish(testReport("amy", "down"))
	hub.Publish(testReport("zed", "right"))

	// reports are queued; give the hub a moment to drain them
	deadline := time.Now().Add(5 * time.Second)
	for len(hub.reports) > 0 && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	time.Sleep(50 * time.Millisecond)

	conn := dial(t, url)
	welcome := readMessage(t, conn)
	if welcome.Type != protocol.TypeWelcome {
		t.Fatalf("first message = %+v", welcome)
	}
	if len(welcome.Agents) != 2 || welcome.Agents[0] != "amy" || welcome.Agents[1] != "zed" {
		t.Fatalf("agents = %v, want [amy zed]", welcome.Agents)
	}

	first := readMessage(t, conn)
	second := readMessage(t, conn)
	if first.Report.Agent != "amy" || first.Report.Move != "down" {
		t.Errorf("first replay = %+v", first.Report)
	}
	if second.Report.Agent != "zed" || second.Report.Move != "right" {
		t.Errorf("second replay = %+v, want latest zed report", second.Report)
	}
}

func TestHubPublishAfterStopDoesNotBlock(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	hub := newHub()
	stopped := make(chan struct{})
	go func() {
		hub.run(ctx)
		close(stopped)
	}()
	cancel()
	<-stopped

	done := make(chan struct{})
	go func() {
		for i := 0; i < 32; i++ {
			hub.Publish(testReport("a", "idle"))
		}
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Publish blocked on a stopped hub")
	}
}
