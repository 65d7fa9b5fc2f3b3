package websocket

import (
	"context"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/jvoverseas/intake_backend/models"
	"github.com/labstack/gommon/log"
)

// Notification types
const (
	NotificationTypeConnected   = "connected"
	NotificationTypeLeadCreated = "lead_created"
)

const (
	writeWait       = 5 * time.Second
	broadcastBuffer = 64
)

// Notification represents a message sent over WebSocket
type Notification struct {
	Type    string      `json:"type"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	UserID  string      `json:"userID,omitempty"`
}

// Client is one connected admin session.
type Client struct {
	UserID string
	Conn   *websocket.Conn

	mu sync.Mutex
}

func (c *Client) send(n Notification) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	_ = c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
	return c.Conn.WriteJSON(n)
}

// Hub fans new leads out to connected admins. Delivery is best effort:
// a full buffer or a broken connection drops the message.
type Hub struct {
	clients    map[*Client]bool
	register   chan *Client
	unregister chan *Client
	broadcast  chan Notification
	done       chan struct{}
	mu         sync.RWMutex
	logger     *log.Logger
}

// NewHub creates a new Hub instance
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan Notification, broadcastBuffer),
		done:       make(chan struct{}),
		logger:     log.New("ws"),
	}
}

// Run starts the hub's event loop and closes every connection when ctx ends.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			h.mu.Lock()
			for client := range h.clients {
				client.Conn.Close()
				delete(h.clients, client)
			}
			h.mu.Unlock()
			return
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			h.mu.Unlock()
		case client := <-h.unregister:
			h.remove(client)
		case n := <-h.broadcast:
			h.mu.RLock()
			targets := make([]*Client, 0, len(h.clients))
			for client := range h.clients {
				targets = append(targets, client)
			}
			h.mu.RUnlock()

			for _, client := range targets {
				if err := client.send(n); err != nil {
					h.logger.Warnf("dropping admin %s: %v", client.UserID, err)
					h.remove(client)
				}
			}
		}
	}
}

// join reports false once the hub has stopped.
func (h *Hub) join(client *Client) bool {
	select {
	case h.register <- client:
		return true
	case <-h.done:
		return false
	}
}

func (h *Hub) leave(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

func (h *Hub) remove(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[client]; ok {
		delete(h.clients, client)
		client.Conn.Close()
	}
}

// BroadcastLead queues a lead_created event. It never blocks.
func (h *Hub) BroadcastLead(lead *models.Lead) {
	select {
	case h.broadcast <- Notification{Type: NotificationTypeLeadCreated, Data: lead}:
	default:
		h.logger.Warn("lead feed buffer full, event dropped")
	}
}

// ClientCount reports connected admins.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
