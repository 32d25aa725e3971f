package live

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
	"github.com/mauv0809/padel-tournament/internal/metrics"
)

var _ Broadcaster = &Hub{}

// Hub keeps one room of websocket clients per category. Rooms are only
// touched from the Run goroutine.
type Hub struct {
	register   chan *client
	unregister chan *client
	broadcast  chan envelope
	done       chan struct{}
	rooms      map[string]map[*client]bool
	metrics    metrics.Metrics
	upgrader   websocket.Upgrader
}

// NewHub creates a hub. allowedOrigins restricts the websocket handshake;
// an empty list or "*" accepts any origin.
func NewHub(metrics metrics.Metrics, allowedOrigins []string) *Hub {
	h := &Hub{
		register:   make(chan *client),
		unregister: make(chan *client),
		broadcast:  make(chan envelope, 64),
		done:       make(chan struct{}),
		rooms:      make(map[string]map[*client]bool),
		metrics:    metrics,
	}
	h.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     originChecker(allowedOrigins),
	}
	return h
}

func originChecker(allowed []string) func(r *http.Request) bool {
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" || len(allowed) == 0 {
			return true
		}
		for _, a := range allowed {
			if a == "*" || a == origin {
				return true
			}
		}
		return false
	}
}

// Run serves registrations and broadcasts until ctx is cancelled.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			for _, room := range h.rooms {
				for c := range room {
					close(c.send)
				}
			}
			h.rooms = map[string]map[*client]bool{}
			h.metrics.SetLiveConnections(0)
			log.Info("Live hub stopped")
			return

		case c := <-h.register:
			room, ok := h.rooms[c.category]
			if !ok {
				room = make(map[*client]bool)
				h.rooms[c.category] = room
			}
			room[c] = true
			h.metrics.SetLiveConnections(h.count())
			log.Debug("Client subscribed", "category", c.category, "clients", len(room))
			if data, err := json.Marshal(Message{Type: TypeSubscribed, Category: c.category}); err == nil {
				c.send <- data
			}

		case c := <-h.unregister:
			h.drop(c)

		case env := <-h.broadcast:
			for c := range h.rooms[env.category] {
				select {
				case c.send <- env.data:
				default:
					log.Warn("Dropping slow live client", "category", c.category)
					h.drop(c)
				}
			}
		}
	}
}

func (h *Hub) drop(c *client) {
	room, ok := h.rooms[c.category]
	if !ok || !room[c] {
		return
	}
	delete(room, c)
	close(c.send)
	if len(room) == 0 {
		delete(h.rooms, c.category)
	}
	h.metrics.SetLiveConnections(h.count())
	log.Debug("Client unsubscribed", "category", c.category)
}

func (h *Hub) count() int {
	n := 0
	for _, room := range h.rooms {
		n += len(room)
	}
	return n
}

// Publish queues a message for every subscriber of category. It never blocks
// once the hub has stopped.
func (h *Hub) Publish(category, msgType string, payload any) {
	data, err := json.Marshal(Message{Type: msgType, Category: category, Payload: payload})
	if err != nil {
		log.Error("Failed to marshal live message", "error", err, "type", msgType)
		return
	}
	select {
	case h.broadcast <- envelope{category: category, data: data}:
	case <-h.done:
	}
}

// ServeWS upgrades the request and subscribes the connection to category.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request, category string) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already wrote the HTTP error.
		log.Warn("Failed to upgrade websocket", "error", err, "category", category)
		return
	}
	c := &client{hub: h, conn: conn, send: make(chan []byte, sendBuffer), category: category}
	select {
	case h.register <- c:
	case <-h.done:
		conn.Close()
		return
	}
	go c.writePump()
	go c.readPump()
}

// readPump only watches for the peer going away; subscribers never send data.
func (c *client) readPump() {
	defer func() {
		select {
		case c.hub.unregister <- c:
		case <-c.hub.done:
		}
		c.conn.Close()
	}()
	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error { return c.conn.SetReadDeadline(time.Now().Add(pongWait)) })
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Warn("Live client read error", "error", err, "category", c.category)
			}
			return
		}
	}
}

func (c *client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()
	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				log.Debug("Live client write failed", "error", err, "category", c.category)
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
