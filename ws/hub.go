package ws

import (
	"encoding/json"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

type Client struct {
	Conn   *websocket.Conn
	Send   chan []byte
	UserID string
}

// Hub fans change events out to every connected admin console.
type Hub struct {
	clients map[*websocket.Conn]*Client
	mu      sync.RWMutex
	log     zerolog.Logger
}

func NewHub(log zerolog.Logger) *Hub {
	return &Hub{
		clients: make(map[*websocket.Conn]*Client),
		log:     log,
	}
}

// Event is the payload pushed to admin consoles.
type Event struct {
	Type string `json:"type"`
	ID   string `json:"id,omitempty"`
}

type Stats struct {
	Clients int `json:"clients"`
}

func (h *Hub) Register(conn *websocket.Conn, userID string) *Client {
	client := &Client{
		Conn:   conn,
		Send:   make(chan []byte, 256),
		UserID: userID,
	}

	h.mu.Lock()
	h.clients[conn] = client
	h.mu.Unlock()

	go h.writePump(client)
	return client
}

func (h *Hub) Unregister(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if client, ok := h.clients[conn]; ok {
		close(client.Send)
		delete(h.clients, conn)
	}
}

// Broadcast never blocks; slow clients miss messages.
func (h *Hub) Broadcast(data []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, client := range h.clients {
		select {
		case client.Send <- data:
		default:
			h.log.Warn().Str("user_id", client.UserID).Msg("admin ws client too slow, message dropped")
		}
	}
}

// Publish sends {"type": eventType, "id": id} to all admin consoles.
func (h *Hub) Publish(eventType, id string) {
	data, err := json.Marshal(Event{Type: eventType, ID: id})
	if err != nil {
		h.log.Error().Err(err).Msg("marshal ws event")
		return
	}
	h.Broadcast(data)
}

func (h *Hub) Stats() Stats {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return Stats{Clients: len(h.clients)}
}

// readPump blocks until the client goes away.
func (h *Hub) readPump(conn *websocket.Conn) {
	defer h.Unregister(conn)
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
}

func (h *Hub) writePump(client *Client) {
	defer func() {
		_ = client.Conn.WriteMessage(websocket.CloseMessage, []byte{})
		_ = client.Conn.Close()
	}()
	for msg := range client.Send {
		if err := client.Conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			break
		}
	}
}
