package model

import "strings"

// StatID enumerates the counters a user may adjust. Points is derived and has no ID.
type StatID int

const (
	StatUnknown StatID = iota
	StatMinutes
	StatTwoPtMade
	StatTwoPtAttempted
	StatThreePtMade
	StatThreePtAttempted
	StatFreeThrowsMade
	StatFreeThrowsAttempted
	StatOffensiveRebounds
	StatDefensiveRebounds
	StatAssists
	StatSteals
	StatBlocks
	StatTurnovers
	StatFouls
	StatPlusMinus
)

// StatKind classifies how an adjustment is applied.
type StatKind int

const (
	KindUnknown StatKind = iota
	KindSimple
	KindMake
	KindAttempt
)

// Shot is a make/attempt category.
type Shot int

const (
	ShotNone Shot = iota
	ShotTwo
	ShotThree
	ShotFreeThrow
)

var statNames = map[StatID]string{
	StatMinutes:             "min",
	StatTwoPtMade:           "2pt_m",
	StatTwoPtAttempted:      "2pt_a",
	StatThreePtMade:         "3pt_m",
	StatThreePtAttempted:    "3pt_a",
	StatFreeThrowsMade:      "ft_m",
	StatFreeThrowsAttempted: "ft_a",
	StatOffensiveRebounds:   "oreb",
	StatDefensiveRebounds:   "dreb",
	StatAssists:             "ast",
	StatSteals:              "stl",
	StatBlocks:              "blk",
	StatTurnovers:           "to",
	StatFouls:               "pf",
	StatPlusMinus:           "plus_minus",
}

// aliases accepted on input; older clients sent ftm/fta and plusMinus.
var statAliases = map[string]StatID{
	"ftm":       StatFreeThrowsMade,
	"fta":       StatFreeThrowsAttempted,
	"plusminus": StatPlusMinus,
}

var statByName = func() map[string]StatID {
	m := make(map[string]StatID, len(statNames)+len(statAliases))
	for id, name := range statNames {
		m[name] = id
	}
	for alias, id := range statAliases {
		m[alias] = id
	}
	return m
}()

// ParseStatID maps a wire name to its StatID; unknown names yield StatUnknown.
func ParseStatID(name string) StatID {
	id, ok := statByName[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return StatUnknown
	}
	return id
}

func (s StatID) String() string {
	if name, ok := statNames[s]; ok {
		return name
	}
	return "unknown"
}

// Kind reports whether the stat is a simple counter, a shot make or a shot attempt.
func (s StatID) Kind() StatKind {
	switch s {
	case StatTwoPtMade, StatThreePtMade, StatFreeThrowsMade:
		return KindMake
	case StatTwoPtAttempted, StatThreePtAttempted, StatFreeThrowsAttempted:
		return KindAttempt
	case StatMinutes, StatOffensiveRebounds, StatDefensiveRebounds, StatAssists,
		StatSteals, StatBlocks, StatTurnovers, StatFouls, StatPlusMinus:
		return KindSimple
	default:
		return KindUnknown
	}
}

// Shot returns the shot category for make/attempt stats and ShotNone otherwise.
func (s StatID) Shot() Shot {
	switch s {
	case StatTwoPtMade, StatTwoPtAttempted:
		return ShotTwo
	case StatThreePtMade, StatThreePtAttempted:
		return ShotThree
	case StatFreeThrowsMade, StatFreeThrowsAttempted:
		return ShotFreeThrow
	default:
		return ShotNone
	}
}

// Counter returns a pointer to the field backing a simple stat, or nil.
func (s *StatLine) Counter(id StatID) *int {
	switch id {
	case StatMinutes:
		return &s.Minutes
	case StatOffensiveRebounds:
		return &s.OffensiveRebounds
	case StatDefensiveRebounds:
		return &s.DefensiveRebounds
	case StatAssists:
		return &s.Assists
	case StatSteals:
		return &s.Steals
	case StatBlocks:
		return &s.Blocks
	case StatTurnovers:
		return &s.Turnovers
	case StatFouls:
		return &s.Fouls
	case StatPlusMinus:
		return &s.PlusMinus
	default:
		return nil
	}
}

// ShotCounters returns pointers to the make and attempt fields of a shot category.
func (s *StatLine) ShotCounters(shot Shot) (made, attempted *int) {
	switch shot {
	case ShotTwo:
		return &s.TwoPtMade, &s.TwoPtAttempted
	case ShotThree:
		return &s.ThreePtMade, &s.ThreePtAttempted
	case ShotFreeThrow:
		return &s.FreeThrowsMade, &s.FreeThrowsAttempted
	default:
		return nil, nil
	}
}
