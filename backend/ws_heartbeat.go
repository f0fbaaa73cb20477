package main

import (
	"time"

	"github.com/gorilla/websocket"
)

// Long AI think times can leave a subscription silent for minutes; a ping
// message keeps intermediaries from dropping the connection.
const clientPingInterval = 30 * time.Second

// writePump drains the client's send queue onto the connection and emits a
// ping whenever the link has been idle for a full interval. It returns when
// the queue closes or a write fails.
func (c *Client) writePump(conn *websocket.Conn) error {
	ping := mustMarshal(wsMessage{Type: "ping"})
	idle := time.NewTimer(clientPingInterval)
	defer idle.Stop()

	for {
		select {
		case msg, ok := <-c.send:
			if !ok {
				return nil
			}
			if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return err
			}
			resetIdleTimer(idle)
		case <-idle.C:
			if err := conn.WriteMessage(websocket.TextMessage, ping); err != nil {
				return err
			}
			idle.Reset(clientPingInterval)
		}
	}
}

func resetIdleTimer(t *time.Timer) {
	if !t.Stop() {
		select {
		case <-t.C:
		default:
		}
	}
	t.Reset(clientPingInterval)
}
