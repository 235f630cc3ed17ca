// Package model contains domain entities and DTOs used across layers.
// I keep it lean and focused on data shapes; the only behavior here is derived values.
package model

import (
	"fmt"
	"strings"
	"time"
)

const (
	// RosterSize is the fixed number of players generated per team.
	RosterSize = 15
	// MaxOnCourt is the cap of simultaneously active players per team.
	MaxOnCourt = 5
)

// StatLine is the fixed set of per-player counters. Team totals reuse the same shape.
type StatLine struct {
	Minutes             int `json:"min"`
	TwoPtMade           int `json:"2pt_m"`
	TwoPtAttempted      int `json:"2pt_a"`
	ThreePtMade         int `json:"3pt_m"`
	ThreePtAttempted    int `json:"3pt_a"`
	FreeThrowsMade      int `json:"ft_m"`
	FreeThrowsAttempted int `json:"ft_a"`
	OffensiveRebounds   int `json:"oreb"`
	DefensiveRebounds   int `json:"dreb"`
	Assists             int `json:"ast"`
	Steals              int `json:"stl"`
	Blocks              int `json:"blk"`
	Turnovers           int `json:"to"`
	Fouls               int `json:"pf"`
	PlusMinus           int `json:"plus_minus"`
	Points              int `json:"pts"`
}

// Rebounds is derived from the offensive/defensive split and never stored.
func (s StatLine) Rebounds() int { return s.OffensiveRebounds + s.DefensiveRebounds }

// ComputePoints returns 2·2PM + 3·3PM + FTM.
func (s StatLine) ComputePoints() int {
	return 2*s.TwoPtMade + 3*s.ThreePtMade + s.FreeThrowsMade
}

// Add returns the counter-wise sum of two stat lines.
func (s StatLine) Add(o StatLine) StatLine {
	return StatLine{
		Minutes:             s.Minutes + o.Minutes,
		TwoPtMade:           s.TwoPtMade + o.TwoPtMade,
		TwoPtAttempted:      s.TwoPtAttempted + o.TwoPtAttempted,
		ThreePtMade:         s.ThreePtMade + o.ThreePtMade,
		ThreePtAttempted:    s.ThreePtAttempted + o.ThreePtAttempted,
		FreeThrowsMade:      s.FreeThrowsMade + o.FreeThrowsMade,
		FreeThrowsAttempted: s.FreeThrowsAttempted + o.FreeThrowsAttempted,
		OffensiveRebounds:   s.OffensiveRebounds + o.OffensiveRebounds,
		DefensiveRebounds:   s.DefensiveRebounds + o.DefensiveRebounds,
		Assists:             s.Assists + o.Assists,
		Steals:              s.Steals + o.Steals,
		Blocks:              s.Blocks + o.Blocks,
		Turnovers:           s.Turnovers + o.Turnovers,
		Fouls:               s.Fouls + o.Fouls,
		PlusMinus:           s.PlusMinus + o.PlusMinus,
		Points:              s.Points + o.Points,
	}
}

// Shooting formats a make/attempt pair the way the box score displays it, e.g. "3-5".
func (s StatLine) Shooting(shot Shot) string {
	m, a := s.ShotPair(shot)
	return fmt.Sprintf("%d-%d", m, a)
}

// ShotPair returns makes and attempts for one shot category.
func (s StatLine) ShotPair(shot Shot) (made, attempted int) {
	switch shot {
	case ShotTwo:
		return s.TwoPtMade, s.TwoPtAttempted
	case ShotThree:
		return s.ThreePtMade, s.ThreePtAttempted
	case ShotFreeThrow:
		return s.FreeThrowsMade, s.FreeThrowsAttempted
	default:
		return 0, 0
	}
}

// Player is one roster entry. ID and Slot are fixed at roster generation.
type Player struct {
	ID        string `json:"id"`
	Slot      int    `json:"slot"`
	Number    int    `json:"number"`
	FirstName string `json:"name"`
	Surname   string `json:"surname"`
	OnCourt   bool   `json:"isOnCourt"`
	StatLine
}

// FullName is "First Last".
func (p Player) FullName() string {
	return strings.TrimSpace(p.FirstName + " " + p.Surname)
}

// Team is a name plus an ordered roster; order is the display order.
type Team struct {
	Name   string   `json:"name"`
	Roster []Player `json:"roster"`
}

// OnCourtCount returns how many roster players are flagged active.
func (t Team) OnCourtCount() int {
	n := 0
	for _, p := range t.Roster {
		if p.OnCourt {
			n++
		}
	}
	return n
}

// BoxScore holds both teams of a match.
type BoxScore struct {
	TeamA Team `json:"teamA"`
	TeamB Team `json:"teamB"`
}

// Team returns a pointer to the team on the given side, or nil for an unknown side.
func (b *BoxScore) Team(side Side) *Team {
	switch side {
	case SideA:
		return &b.TeamA
	case SideB:
		return &b.TeamB
	default:
		return nil
	}
}

// Clone returns a deep copy; rosters never alias the source.
func (b BoxScore) Clone() BoxScore {
	return BoxScore{TeamA: b.TeamA.clone(), TeamB: b.TeamB.clone()}
}

func (t Team) clone() Team {
	out := Team{Name: t.Name}
	if t.Roster != nil {
		out.Roster = make([]Player, len(t.Roster))
		copy(out.Roster, t.Roster)
	}
	return out
}

// Match is one game. ID is immutable; name and box score may be edited.
type Match struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Date      string    `json:"date"`
	BoxScore  BoxScore  `json:"boxScore"`
	CreatedAt time.Time `json:"created_at"`
}

// Clone returns a deep copy of the match.
func (m Match) Clone() Match {
	m.BoxScore = m.BoxScore.Clone()
	return m
}

// MatchName builds the display name "<home> vs <away> - <date>".
func MatchName(home, away, date string) string {
	return fmt.Sprintf("%s vs %s - %s", home, away, date)
}

// Totals is the read-only projection of both teams' summed counters.
type Totals struct {
	TeamA StatLine `json:"teamA"`
	TeamB StatLine `json:"teamB"`
}
