package live

import (
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
	sendBuffer     = 64
)

// Message types pushed to subscribers.
const (
	TypeSubscribed       = "subscribed"
	TypeResultRecorded   = "result_recorded"
	TypeStandingsUpdated = "standings_updated"
	TypeBracketUpdated   = "bracket_updated"
)

// Message is the JSON frame written to every subscriber of a category.
type Message struct {
	Type     string `json:"type"`
	Category string `json:"category"`
	Payload  any    `json:"payload,omitempty"`
}

// Broadcaster fans category updates out to connected browsers.
type Broadcaster interface {
	Publish(category, msgType string, payload any)
}

type client struct {
	hub      *Hub
	conn     *websocket.Conn
	send     chan []byte
	category string
}

type envelope struct {
	category string
	data     []byte
}
