package main

import (
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
)

// HintHub fans AI move suggestions out to hint subscribers. Separate
// from the main hub so hint traffic never queues behind game state.
type HintHub struct {
	mu      sync.Mutex
	clients map[*hintClient]struct{}
	publish chan hintPayload
}

type hintClient struct {
	send chan []byte
}

func NewHintHub() *HintHub {
	return &HintHub{
		clients: make(map[*hintClient]struct{}),
		publish: make(chan hintPayload, 16),
	}
}

func (h *HintHub) Run(done <-chan struct{}) {
	for {
		select {
		case <-done:
			return
		case payload := <-h.publish:
			data, err := jsonMarshalMessage("hint", payload)
			if err != nil {
				continue
			}
			h.mu.Lock()
			for client := range h.clients {
				select {
				case client.send <- data:
				default:
				}
			}
			h.mu.Unlock()
		}
	}
}

func (h *HintHub) Publish(payload hintPayload) {
	select {
	case h.publish <- payload:
	default:
	}
}

func (h *HintHub) HasClients() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients) > 0
}

func (h *HintHub) register(c *hintClient) {
	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()
}

func (h *HintHub) unregister(c *hintClient) {
	h.mu.Lock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
	}
	h.mu.Unlock()
}

func serveHintWS(hub *HintHub, w http.ResponseWriter, r *http.Request) {
	upgrader := websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	client := &hintClient{send: make(chan []byte, 16)}
	hub.register(client)

	go func() {
		defer conn.Close()
		_ = writeWSWithHeartbeat(conn, client.send)
	}()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			hub.unregister(client)
			return
		}
	}
}
