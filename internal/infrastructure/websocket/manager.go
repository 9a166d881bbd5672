package websocket

import (
	"context"
	"encoding/json"
	"log"
	"sync"

	"github.com/gorilla/websocket"
)

// Client represents a WebSocket connection for one signed-in phone number.
type Client struct {
	Phone string
	Conn  *websocket.Conn
	Send  chan []byte
}

// Event is the envelope pushed to connected clients.
type Event struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload,omitempty"`
}

// Manager manages all active WebSocket connections.
type Manager struct {
	clients    map[string]*Client
	Register   chan *Client
	Unregister chan *Client
	mutex      sync.RWMutex
}

func NewManager() *Manager {
	return &Manager{
		clients:    make(map[string]*Client),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
	}
}

// Start runs the manager's main loop in a goroutine.
func (m *Manager) Start(ctx context.Context) {
	go func() {
		for {
			select {
			case client := <-m.Register:
				m.mutex.Lock()
				m.clients[client.Phone] = client
				m.mutex.Unlock()
				log.Printf("Client registered: %s", client.Phone)

			case client := <-m.Unregister:
				m.mutex.Lock()
				if _, ok := m.clients[client.Phone]; ok {
					delete(m.clients, client.Phone)
					close(client.Send)
				}
				m.mutex.Unlock()
				log.Printf("Client unregistered: %s", client.Phone)

			case <-ctx.Done():
				return
			}
		}
	}()
}

// SendToUser pushes an event to a specific phone if it is connected.
// Disconnected recipients are silently skipped; delivery is best effort.
func (m *Manager) SendToUser(phone string, event Event) {
	data, err := json.Marshal(event)
	if err != nil {
		log.Printf("Failed to marshal event for %s: %v", phone, err)
		return
	}

	m.mutex.RLock()
	client, ok := m.clients[phone]
	m.mutex.RUnlock()

	if ok {
		select {
		case client.Send <- data:
		default:
			log.Printf("Dropping event for slow client %s", phone)
		}
	}
}

// IsConnected reports whether the phone currently holds a connection.
func (m *Manager) IsConnected(phone string) bool {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	_, ok := m.clients[phone]
	return ok
}

// ReadPump drains the connection until it closes, then unregisters.
func (c *Client) ReadPump(m *Manager) {
	defer func() {
		m.Unregister <- c
		c.Conn.Close()
	}()

	for {
		if _, _, err := c.Conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("error: %v", err)
			}
			break
		}
	}
}

// WritePump sends queued events to the WebSocket connection.
func (c *Client) WritePump() {
	defer c.Conn.Close()

	for {
		message, ok := <-c.Send
		if !ok {
			c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
			return
		}

		if err := c.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
			return
		}
	}
}
