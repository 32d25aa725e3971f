package pubsub

import (
	"time"

	"cloud.google.com/go/pubsub"
)

type client struct {
	client *pubsub.Client
}

// logClient stands in for Pub/Sub when no project is configured. Messages are
// encoded, logged and dropped.
type logClient struct{}

// EventType represents the type of event/message sent via pubsub. It doubles
// as the topic name.
type EventType string

const (
	EventResultRecorded   EventType = "result-recorded"
	EventStandingsUpdated EventType = "standings-updated"
	EventBracketAdvanced  EventType = "bracket-advanced"
)

// ResultEvent is published after a match result has been stored.
type ResultEvent struct {
	MatchID    string    `msgpack:"match_id"`
	Category   string    `msgpack:"category"`
	Phase      string    `msgpack:"phase"`
	GroupID    string    `msgpack:"group_id,omitempty"`
	WinnerID   string    `msgpack:"winner_id"`
	Advanced   []string  `msgpack:"advanced,omitempty"`
	Champion   string    `msgpack:"champion,omitempty"`
	RecordedAt time.Time `msgpack:"recorded_at"`
}

// PushMessage is the JSON envelope Pub/Sub push subscriptions POST to the
// service. Data holds the base64 encoded msgpack payload.
type PushMessage struct {
	Subscription string `json:"subscription"`
	Message      struct {
		ID   string `json:"messageId"`
		Data string `json:"data"`
	} `json:"message"`
}
