// Package live pushes match events to WebSocket subscribers.
package live

import (
	"time"

	"github.com/maxviazov/boxscore-tracker/internal/model"
)

// Message types on the wire.
const (
	TypeEvent       = "match_event"
	TypeSubscribed  = "subscribed"
	TypeError       = "error"
	TypeSubscribe   = "subscribe"
	TypeUnsubscribe = "unsubscribe"
)

// ServerMessage is every frame the server writes.
type ServerMessage struct {
	Type      string            `json:"type"`
	Event     *model.MatchEvent `json:"event,omitempty"`
	MatchID   string            `json:"match_id,omitempty"`
	Error     string            `json:"error,omitempty"`
	Timestamp time.Time         `json:"timestamp"`
}

// ClientMessage changes the subscription. An empty match id means every match.
type ClientMessage struct {
	Type    string `json:"type"`
	MatchID string `json:"match_id"`
}
