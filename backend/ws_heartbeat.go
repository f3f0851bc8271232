package main

import (
	"time"

	"github.com/gorilla/websocket"
)

const (
	wsIdlePingInterval = 30 * time.Second
	wsWriteTimeout     = 10 * time.Second
)

// writeWSWithHeartbeat drains the send channel into the connection.
// When the link has been idle for a full interval it sends a ping
// control frame, which keeps proxies from reaping the connection.
func writeWSWithHeartbeat(conn *websocket.Conn, send <-chan []byte) error {
	ticker := time.NewTicker(wsIdlePingInterval)
	defer ticker.Stop()
	idleSince := time.Now()

	for {
		select {
		case msg, ok := <-send:
			if !ok {
				return nil
			}
			_ = conn.SetWriteDeadline(time.Now().Add(wsWriteTimeout))
			if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return err
			}
			idleSince = time.Now()
		case <-ticker.C:
			if time.Since(idleSince) < wsIdlePingInterval {
				continue
			}
			_ = conn.SetWriteDeadline(time.Now().Add(wsWriteTimeout))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return err
			}
			idleSince = time.Now()
		}
	}
}
