package model

import (
	"strings"
	"time"
)

// Side selects one of the two teams of a box score.
type Side int

const (
	SideUnknown Side = iota
	SideA
	SideB
)

// ParseSide accepts teamA/home/a and teamB/away/b, case-insensitively.
func ParseSide(s string) Side {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "teama", "home", "a":
		return SideA
	case "teamb", "away", "b":
		return SideB
	default:
		return SideUnknown
	}
}

func (s Side) String() string {
	switch s {
	case SideA:
		return "teamA"
	case SideB:
		return "teamB"
	default:
		return "unknown"
	}
}

// Screen is the application state machine position: LoggedOut → Home ⇄ MatchDetail.
type Screen int

const (
	ScreenLoggedOut Screen = iota
	ScreenHome
	ScreenMatchDetail
)

func (s Screen) String() string {
	switch s {
	case ScreenHome:
		return "home"
	case ScreenMatchDetail:
		return "match_detail"
	default:
		return "logged_out"
	}
}

// MarshalText renders the screen by name in JSON views.
func (s Screen) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// EventType names what happened to a match.
type EventType string

const (
	EventMatchCreated EventType = "match_created"
	EventMatchDeleted EventType = "match_deleted"
	EventStatAdjusted EventType = "stat_adjusted"
	EventCourtToggled EventType = "court_toggled"
	EventRosterSaved  EventType = "roster_saved"
)

// MatchEvent is published after every successful mutation of the match list.
// Match is nil for deletions.
type MatchEvent struct {
	Type    EventType `json:"type"`
	MatchID string    `json:"match_id"`
	Match   *Match    `json:"match,omitempty"`
	Totals  *Totals   `json:"totals,omitempty"`
	At      time.Time `json:"at"`
}
