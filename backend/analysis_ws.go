package main

import (
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// AnalysisHub streams AnalysisEvents to subscribed clients while the engine
// thinks. Intermediate events are throttled; final events always go out.
type AnalysisHub struct {
	mu          sync.Mutex
	clients     map[*Client]struct{}
	events      chan AnalysisEvent
	lastPublish time.Time
}

func NewAnalysisHub() *AnalysisHub {
	return &AnalysisHub{
		clients: make(map[*Client]struct{}),
		events:  make(chan AnalysisEvent, 64),
	}
}

func (h *AnalysisHub) Run(done <-chan struct{}) {
	for {
		select {
		case <-done:
			return
		case event := <-h.events:
			h.mu.Lock()
			for client := range h.clients {
				client.sendJSON(wsMessage{Type: "analysis", Payload: event})
			}
			h.mu.Unlock()
		}
	}
}

func (h *AnalysisHub) Publish(event AnalysisEvent) {
	if !event.Final {
		throttle := time.Duration(GetConfig().AnalysisThrottleMs) * time.Millisecond
		h.mu.Lock()
		if throttle > 0 && !h.lastPublish.IsZero() && time.Since(h.lastPublish) < throttle {
			h.mu.Unlock()
			return
		}
		h.lastPublish = time.Now()
		h.mu.Unlock()
	}
	select {
	case h.events <- event:
	default:
	}
}

func (h *AnalysisHub) Register(c *Client) {
	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()
}

func (h *AnalysisHub) Unregister(c *Client) {
	h.mu.Lock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
	}
	h.mu.Unlock()
}

func (h *AnalysisHub) HasClients() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients) > 0
}

func serveAnalysisWS(hub *AnalysisHub, w http.ResponseWriter, r *http.Request) {
	upgrader := websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	client := &Client{send: make(chan []byte, 32)}
	hub.Register(client)

	go func() {
		defer conn.Close()
		_ = client.writePump(conn)
	}()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			hub.Unregister(client)
			return
		}
	}
}
