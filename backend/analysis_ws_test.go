package main

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gorilla/websocket"
)

func TestAnalysisStreamDeliversEvents(t *testing.T) {
	hub := NewAnalysisHub()
	done := make(chan struct{})
	defer close(done)
	go hub.Run(done)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		serveAnalysisWS(hub, w, r)
	}))
	defer server.Close()

	url := "ws" + strings.TrimPrefix(server.URL, "http")
	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial failed: %v", err)
	}
	defer conn.Close()
	if resp != nil && resp.Body != nil {
		resp.Body.Close()
	}

	deadline := time.Now().Add(2 * time.Second)
	for !hub.HasClients() && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	if !hub.HasClients() {
		t.Fatalf("client never registered")
	}

	hub.Publish(AnalysisEvent{Depth: 1, Final: true})

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, payload, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	var msg struct {
		Type string `json:"type"`
	}
	if err := sonic.Unmarshal(payload, &msg); err != nil {
		t.Fatalf("bad payload %q: %v", payload, err)
	}
	if msg.Type != "analysis" {
		t.Fatalf("expected an analysis message, got %q", msg.Type)
	}
}
