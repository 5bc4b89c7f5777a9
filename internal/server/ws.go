package server

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow local connections
	},
}

// ValuesHandler broadcasts live per-binding gesture values over WebSocket —
// the feedback the settings UI shows next to each binding. The pipeline
// publishes into it via Publish/PublishTrigger; connected clients receive
// the latest state at a fixed cadence.
type ValuesHandler struct {
	mu          sync.RWMutex
	clients     map[*websocket.Conn]bool
	values      map[string]float64
	lastGesture string
}

// NewValuesHandler creates a ValuesHandler and starts its broadcast loop.
func NewValuesHandler() *ValuesHandler {
	h := &ValuesHandler{
		clients: make(map[*websocket.Conn]bool),
		values:  make(map[string]float64),
	}
	go h.broadcast()
	return h
}

// Publish records the latest continuous value for a binding.
func (h *ValuesHandler) Publish(id string, value float64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.values[id] = value
}

// PublishTrigger records the most recent fired trigger binding.
func (h *ValuesHandler) PublishTrigger(id, name string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.lastGesture = name
}

// ServeHTTP handles WebSocket upgrade requests.
func (h *ValuesHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("websocket upgrade error: %v", err)
		return
	}
	defer conn.Close()

	h.mu.Lock()
	h.clients[conn] = true
	h.mu.Unlock()

	defer func() {
		h.mu.Lock()
		delete(h.clients, conn)
		h.mu.Unlock()
	}()

	// Keep connection alive by reading messages
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
}

// broadcast pushes the latest values to all connected clients.
func (h *ValuesHandler) broadcast() {
	ticker := time.NewTicker(66 * time.Millisecond) // ~15 FPS
	defer ticker.Stop()

	for range ticker.C {
		h.mu.RLock()
		if len(h.clients) == 0 {
			h.mu.RUnlock()
			continue
		}

		msg, _ := json.Marshal(map[string]any{
			"values":       h.values,
			"last_gesture": h.lastGesture,
			"timestamp":    time.Now().UnixMilli(),
		})

		for conn := range h.clients {
			conn.WriteMessage(websocket.TextMessage, msg)
		}
		h.mu.RUnlock()
	}
}
