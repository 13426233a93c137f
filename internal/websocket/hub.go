package websocket

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/hawkerhub/hawkerhub-backend/pkg/logger"
)

// Event is one message on the admin feed.
type Event struct {
	Type      string      `json:"type"`
	Payload   interface{} `json:"payload"`
	Timestamp time.Time   `json:"timestamp"`
}

// Client is one connected admin dashboard session.
type Client struct {
	Hub     *Hub
	Conn    *Conn
	AdminID uint
	Send    chan []byte
}

// Hub fans governance events out to every connected admin. One admin may
// hold several sessions (multiple devices/tabs).
type Hub struct {
	clients    map[uint][]*Client
	register   chan *Client
	unregister chan *Client
	broadcast  chan []byte
	mu         sync.RWMutex
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[uint][]*Client),
		register:   make(chan *Client, 64),
		unregister: make(chan *Client, 64),
		broadcast:  make(chan []byte, 256),
	}
}

// Run processes registrations and broadcasts until the process exits.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client.AdminID] = append(h.clients[client.AdminID], client)
			h.mu.Unlock()
			logger.Info("Admin feed client connected", map[string]interface{}{
				"admin_id": client.AdminID,
				"sessions": len(h.clients[client.AdminID]),
			})

		case client := <-h.unregister:
			h.mu.Lock()
			if sessions, ok := h.clients[client.AdminID]; ok {
				remaining := make([]*Client, 0, len(sessions))
				for _, c := range sessions {
					if c != client {
						remaining = append(remaining, c)
					}
				}
				if len(remaining) == 0 {
					delete(h.clients, client.AdminID)
				} else {
					h.clients[client.AdminID] = remaining
				}
				close(client.Send)
			}
			h.mu.Unlock()
			logger.Info("Admin feed client disconnected", map[string]interface{}{
				"admin_id": client.AdminID,
			})

		case message := <-h.broadcast:
			h.mu.RLock()
			for _, sessions := range h.clients {
				for _, client := range sessions {
					select {
					case client.Send <- message:
					default:
						// Slow consumer; drop the message rather than
						// block the hub.
					}
				}
			}
			h.mu.RUnlock()
		}
	}
}

// BroadcastEvent pushes a governance event to every connected admin.
// Implements the service.Notifier interface.
func (h *Hub) BroadcastEvent(eventType string, payload interface{}) {
	event := Event{
		Type:      eventType,
		Payload:   payload,
		Timestamp: time.Now(),
	}

	message, err := json.Marshal(event)
	if err != nil {
		logger.Error("Failed to marshal admin feed event", err, map[string]interface{}{
			"type": eventType,
		})
		return
	}

	select {
	case h.broadcast <- message:
	default:
		logger.Warn("Admin feed broadcast buffer full, dropping event", map[string]interface{}{
			"type": eventType,
		})
	}
}
