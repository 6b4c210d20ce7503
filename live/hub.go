package live

import (
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/delmonaco/poker-tracker/models"
	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
)

// Message is the wire envelope for leaderboard pushes.
type Message struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

const messageTypeLeaderboard = "LEADERBOARD_UPDATED"

// Client is one websocket subscriber.
type Client struct {
	Hub      *Hub
	Conn     *websocket.Conn
	Send     chan []byte
	IsClosed bool
	Mu       sync.Mutex
}

// Hub fans the current leaderboard out to every connected subscriber. A new
// subscriber immediately receives the latest snapshot, so clients render
// without waiting for the next mutation.
type Hub struct {
	Register   chan *Client
	Unregister chan *Client

	clients  map[*Client]bool
	snapshot []byte
	mu       sync.RWMutex
	logger   *slog.Logger
}

func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
		clients:    make(map[*Client]bool),
		logger:     logger,
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.Register:
			h.mu.Lock()
			h.clients[client] = true
			snapshot := h.snapshot
			h.mu.Unlock()
			h.logger.Debug("leaderboard subscriber connected", "subscribers", h.subscriberCount())

			if snapshot != nil {
				client.Mu.Lock()
				if !client.IsClosed {
					select {
					case client.Send <- snapshot:
					default:
					}
				}
				client.Mu.Unlock()
			}

		case client := <-h.Unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				client.Mu.Lock()
				if !client.IsClosed {
					close(client.Send)
					client.IsClosed = true
				}
				client.Mu.Unlock()
				delete(h.clients, client)
			}
			h.mu.Unlock()
			h.logger.Debug("leaderboard subscriber disconnected", "subscribers", h.subscriberCount())
		}
	}
}

// BroadcastLeaderboard serializes the rows once and pushes them to every
// subscriber. Slow subscribers are skipped rather than blocked on.
func (h *Hub) BroadcastLeaderboard(rows []models.LeaderboardRow) {
	messageBytes, err := json.Marshal(Message{
		Type:    messageTypeLeaderboard,
		Payload: rows,
	})
	if err != nil {
		h.logger.Error("failed to marshal leaderboard message", "error", err)
		return
	}

	h.mu.Lock()
	h.snapshot = messageBytes
	h.mu.Unlock()

	h.mu.RLock()
	defer h.mu.RUnlock()
	for client := range h.clients {
		client.Mu.Lock()
		if client.IsClosed {
			client.Mu.Unlock()
			continue
		}
		select {
		case client.Send <- messageBytes:
		default:
			h.logger.Warn("subscriber send buffer full, dropping leaderboard update")
		}
		client.Mu.Unlock()
	}
}

func (h *Hub) subscriberCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// ReadPump drains the connection to run the pong handler; inbound payloads
// are ignored.
func (c *Client) ReadPump() {
	defer func() {
		c.Hub.Unregister <- c
		c.Conn.Close()
		c.Mu.Lock()
		c.IsClosed = true
		c.Mu.Unlock()
	}()
	c.Conn.SetReadLimit(maxMessageSize)
	c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error { c.Conn.SetReadDeadline(time.Now().Add(pongWait)); return nil })

	for {
		if _, _, err := c.Conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.Hub.logger.Warn("unexpected websocket close", "error", err)
			}
			break
		}
	}
}

func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
		c.Mu.Lock()
		c.IsClosed = true
		c.Mu.Unlock()
	}()
	for {
		select {
		case message, ok := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			w, err := c.Conn.NextWriter(websocket.TextMessage)
			if err != nil {
				return
			}
			w.Write(message)

			// Flush anything that queued up behind this write.
			n := len(c.Send)
			for i := 0; i < n; i++ {
				w.Write(<-c.Send)
			}

			if err := w.Close(); err != nil {
				return
			}
		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
