package ws

import (
	"encoding/json"
	"log"
	"sync"
)

// MessageType defines the type of WebSocket message
type MessageType string

const (
	MsgResponseSubmitted MessageType = "response_submitted"
	MsgScoreboardUpdate  MessageType = "scoreboard_update"
	MsgError             MessageType = "error"
)

// Message is the WebSocket envelope format
type Message struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// Hub manages WebSocket connections of form owners watching their forms
type Hub struct {
	// formID -> open watcher connections
	watchers map[string]map[*Connection]bool

	mu sync.RWMutex

	register   chan *Connection
	unregister chan *Connection
	broadcast  chan *BroadcastMessage
}

// Connection represents one watcher's WebSocket connection
type Connection struct {
	FormID string
	UserID string
	Send   chan []byte
	Hub    *Hub
}

// BroadcastMessage is a message to fan out to a form's watchers
type BroadcastMessage struct {
	FormID  string
	Message *Message
}

// NewHub creates a new WebSocket hub
func NewHub() *Hub {
	h := &Hub{
		watchers:   make(map[string]map[*Connection]bool),
		register:   make(chan *Connection),
		unregister: make(chan *Connection),
		broadcast:  make(chan *BroadcastMessage, 256),
	}
	go h.run()
	return h
}

func (h *Hub) run() {
	for {
		select {
		case conn := <-h.register:
			h.mu.Lock()
			if h.watchers[conn.FormID] == nil {
				h.watchers[conn.FormID] = make(map[*Connection]bool)
			}
			h.watchers[conn.FormID][conn] = true
			h.mu.Unlock()
			log.Printf("Watcher %s connected to form %s", conn.UserID, conn.FormID)

		case conn := <-h.unregister:
			h.mu.Lock()
			if conns, ok := h.watchers[conn.FormID]; ok {
				if conns[conn] {
					delete(conns, conn)
					close(conn.Send)
					if len(conns) == 0 {
						delete(h.watchers, conn.FormID)
					}
				}
			}
			h.mu.Unlock()
			log.Printf("Watcher %s disconnected from form %s", conn.UserID, conn.FormID)

		case msg := <-h.broadcast:
			h.mu.RLock()
			data, _ := json.Marshal(msg.Message)
			for conn := range h.watchers[msg.FormID] {
				select {
				case conn.Send <- data:
				default:
					// Drop message if buffer full
				}
			}
			h.mu.RUnlock()
		}
	}
}

// Register adds a connection
func (h *Hub) Register(conn *Connection) {
	h.register <- conn
}

// Unregister removes a connection
func (h *Hub) Unregister(conn *Connection) {
	h.unregister <- conn
}

// NotifyForm sends a message to every watcher of a form (implements service.Notifier)
func (h *Hub) NotifyForm(formID string, msgType string, payload interface{}) {
	data, _ := json.Marshal(payload)
	h.broadcast <- &BroadcastMessage{
		FormID: formID,
		Message: &Message{
			Type:    MessageType(msgType),
			Payload: data,
		},
	}
}
